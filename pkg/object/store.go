package object

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/statusline/pkg/logging"
)

// Store is a read-only view over an objects/ directory using the 2-character
// fan-out layout for loose objects (objects/ab/cdef0123...) and idx v2 files
// under objects/pack/.
type Store struct {
	root   string
	logger logging.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger routes diagnostics about unreadable sources to l.
func WithLogger(l logging.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates a Store rooted at the given objects directory.
func NewStore(root string, opts ...StoreOption) *Store {
	s := &Store{root: root, logger: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the objects directory the store reads from.
func (s *Store) Root() string { return s.root }

// looseDir returns the fan-out directory that would hold h.
func (s *Store) looseDir(h Hash) string {
	return filepath.Join(s.root, string(h[:looseDirLen]))
}

// packIndexPaths lists objects/pack/*.idx. A missing pack directory yields
// no paths.
func (s *Store) packIndexPaths() ([]string, error) {
	dir := filepath.Join(s.root, "pack")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".idx") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}
