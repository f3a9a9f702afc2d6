package object

import (
	"fmt"
	"os"
)

// AbbrevLen returns the length of the shortest prefix of h that no other
// object in the store shares, never less than MinAbbrev and never more than
// the full id. Loose objects and every valid pack index are consulted on
// each call; a source that cannot be read contributes nothing.
func (s *Store) AbbrevLen(id Hash) int {
	h, err := ParseHash(string(id))
	if err != nil {
		s.logger.Debug("abbrev: invalid id", "hash", string(id), "error", err)
		return MinAbbrev
	}

	n := MinAbbrev
	if loose, err := s.looseRequiredPrefix(h); err != nil {
		s.logger.Debug("abbrev: loose objects skipped", "dir", s.looseDir(h), "error", err)
	} else {
		n = max(n, loose)
	}
	n = max(n, s.packRequiredPrefix(h))
	return min(n, HashHexSize)
}

// Abbrev returns h truncated to AbbrevLen(h).
func (s *Store) Abbrev(id Hash) string {
	h, err := ParseHash(string(id))
	if err != nil {
		return string(id)
	}
	return h.Short(s.AbbrevLen(h))
}

// looseRequiredPrefix compares h against the other loose objects in its
// fan-out directory. An empty or absent directory requires only the
// directory name itself.
func (s *Store) looseRequiredPrefix(h Hash) (int, error) {
	entries, err := os.ReadDir(s.looseDir(h))
	if err != nil {
		if os.IsNotExist(err) {
			return looseDirLen, nil
		}
		return 0, fmt.Errorf("read loose dir: %w", err)
	}

	rest := string(h[looseDirLen:])
	shared := -1
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || len(name) != HashHexSize-looseDirLen || !isHex(name) {
			continue
		}
		if name == rest {
			continue
		}
		shared = max(shared, commonHexString(name, rest))
	}
	if shared < 0 {
		return looseDirLen, nil
	}
	return looseDirLen + 1 + shared, nil
}

// packRequiredPrefix returns the largest requirement over all readable pack
// indexes. Files failing validation are skipped whole.
func (s *Store) packRequiredPrefix(h Hash) int {
	paths, err := s.packIndexPaths()
	if err != nil {
		s.logger.Debug("abbrev: pack directory skipped", "dir", s.root, "error", err)
		return 0
	}
	best := 0
	for _, path := range paths {
		err := withPackIndex(path, func(idx *PackIndex) error {
			best = max(best, idx.RequiredPrefix(h))
			return nil
		})
		if err != nil {
			s.logger.Debug("abbrev: pack index skipped", "path", path, "error", err)
		}
	}
	return best
}
