package repo

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// RemoteTracking returns the upstream branch configured for the current
// branch. It reports false when HEAD is not a branch, when no upstream is
// configured, or when the config cannot be read.
func (r *Repo) RemoteTracking() (string, bool) {
	ref, err := r.Head()
	if err != nil {
		r.logger.Debug("remote tracking: head unreadable", "error", err)
		return "", false
	}
	if !ref.IsBranch() {
		return "", false
	}
	return r.Upstream(ref.Branch)
}

// Upstream returns the short name of branch's configured merge target.
func (r *Repo) Upstream(branch string) (string, bool) {
	path := r.commonPath("config")
	f, err := os.Open(path)
	if err != nil {
		r.logMissing("read config", path, err)
		return "", false
	}
	defer f.Close()

	upstream, ok, err := scanUpstream(f, branch)
	if err != nil {
		r.logger.Debug("read config: partial read", "path", path, "error", err)
	}
	return upstream, ok
}

// scanUpstream walks the config line by line. A section starts at a header
// exactly matching [branch "<name>"] and runs over the indented lines that
// follow; the first unindented line ends it. Only "merge = refs/heads/..."
// inside such a section counts, so same-named keys elsewhere are ignored.
// Repeated sections are honoured and the last merge entry wins.
func scanUpstream(rd io.Reader, branch string) (string, bool, error) {
	header := `[branch "` + branch + `"]`

	var (
		upstream  string
		found     bool
		inSection bool
	)
	scanner := bufio.NewScanner(rd)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !isIndented(line) {
			inSection = strings.TrimSpace(line) == header
			continue
		}
		if !inSection {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok || strings.TrimSpace(key) != "merge" {
			continue
		}
		value = strings.TrimSpace(value)
		if name, ok := strings.CutPrefix(value, headsPrefix); ok && name != "" {
			upstream, found = name, true
		}
	}
	return upstream, found, scanner.Err()
}

func isIndented(line string) bool {
	return line[0] == '\t' || line[0] == ' '
}
