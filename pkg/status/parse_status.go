package status

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedHeader is returned when a "# " header line carries a value
// that cannot be parsed.
var ErrMalformedHeader = errors.New("malformed status header")

// Counts aggregates a porcelain v2 status stream. Head, Upstream and OID are
// copied from the branch headers when present.
type Counts struct {
	Head     string `json:"head,omitempty"`
	Upstream string `json:"upstream,omitempty"`
	OID      string `json:"oid,omitempty"`

	Ahead     int `json:"ahead"`
	Behind    int `json:"behind"`
	Stashes   int `json:"stashes"`
	Unmerged  int `json:"unmerged"`
	Staged    int `json:"staged"`
	Dirty     int `json:"dirty"`
	Untracked int `json:"untracked"`
}

// Parse reads the output of "git status --porcelain=2 --branch --show-stash".
// Leading "# " lines are headers; every other line describes one path.
// Unparseable path lines are skipped, while a malformed header fails the
// whole parse with ErrMalformedHeader.
func Parse(data []byte) (Counts, error) {
	var c Counts
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inHeaders := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if inHeaders {
			if rest, ok := strings.CutPrefix(line, "# "); ok {
				if err := parseStatusHeader(rest, &c); err != nil {
					return Counts{}, err
				}
				continue
			}
			inHeaders = false
		}
		parseStatusEntry(line, &c)
	}
	if err := scanner.Err(); err != nil {
		return Counts{}, fmt.Errorf("read status stream: %w", err)
	}
	return c, nil
}

func parseStatusHeader(line string, c *Counts) error {
	key, value, _ := strings.Cut(line, " ")
	value = strings.TrimSpace(value)

	switch key {
	case "branch.oid":
		c.OID = value
	case "branch.head":
		c.Head = value
	case "branch.upstream":
		// origin/feature/x -> feature/x
		_, branch, ok := strings.Cut(value, "/")
		if !ok || branch == "" {
			return fmt.Errorf("%w: upstream %q", ErrMalformedHeader, value)
		}
		c.Upstream = branch
	case "branch.ab":
		fields := strings.Fields(value)
		if len(fields) != 2 {
			return fmt.Errorf("%w: ab %q", ErrMalformedHeader, value)
		}
		ahead, err := parseDelta(fields[0], '+')
		if err != nil {
			return err
		}
		behind, err := parseDelta(fields[1], '-')
		if err != nil {
			return err
		}
		c.Ahead, c.Behind = ahead, behind
	case "stash":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: stash %q", ErrMalformedHeader, value)
		}
		c.Stashes = n
	}
	return nil
}

// parseDelta parses a signed count like "+2" or "-1".
func parseDelta(field string, sign byte) (int, error) {
	if len(field) < 2 || field[0] != sign {
		return 0, fmt.Errorf("%w: delta %q", ErrMalformedHeader, field)
	}
	n, err := strconv.Atoi(field[1:])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: delta %q", ErrMalformedHeader, field)
	}
	return n, nil
}

// parseStatusEntry classifies one path line. Porcelain v2 ordinary and
// rename entries ("1 XY ...", "2 XY ...") and bare "XY path" lines are
// accepted; "?" is untracked, "u" unmerged, "!" ignored.
func parseStatusEntry(line string, c *Counts) {
	fields := strings.SplitN(line, " ", 3)
	marker := fields[0]

	switch {
	case strings.HasPrefix(marker, "?"):
		c.Untracked++
		return
	case marker == "u":
		c.Unmerged++
		return
	case marker == "!":
		return
	}

	code := marker
	if marker == "1" || marker == "2" {
		if len(fields) < 2 {
			return
		}
		code = fields[1]
	}
	if len(code) != 2 || len(fields) < 2 {
		return
	}
	if code[0] != '.' {
		c.Staged++
	}
	if code[1] != '.' {
		c.Dirty++
	}
}

// String renders the non-zero counters, for example "v1 ^2 *3 ~4 +5 !6 ?7".
func (c Counts) String() string {
	parts := make([]string, 0, 7)
	for _, item := range []struct {
		sym string
		n   int
	}{
		{"v", c.Behind},
		{"^", c.Ahead},
		{"*", c.Stashes},
		{"~", c.Unmerged},
		{"+", c.Staged},
		{"!", c.Dirty},
		{"?", c.Untracked},
	} {
		if item.n != 0 {
			parts = append(parts, item.sym+strconv.Itoa(item.n))
		}
	}
	return strings.Join(parts, " ")
}
