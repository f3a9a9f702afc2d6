package repo

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// StateKind tags the in-progress operation reported by State.
type StateKind int

const (
	StateNone StateKind = iota
	StateMerging
	StateRebasing
	StateCherryPicking
	StateReverting
	StateBisecting
)

func (k StateKind) String() string {
	switch k {
	case StateMerging:
		return "merge"
	case StateRebasing:
		return "rebase"
	case StateCherryPicking:
		return "cherry-pick"
	case StateReverting:
		return "revert"
	case StateBisecting:
		return "bisect"
	default:
		return ""
	}
}

// RepoState is the in-progress operation, if any. Interactive, Done and Todo
// are only meaningful for StateRebasing.
type RepoState struct {
	Kind        StateKind
	Interactive bool
	Done        int
	Todo        int
}

// Active reports whether any operation is in progress.
func (s RepoState) Active() bool { return s.Kind != StateNone }

func (s RepoState) String() string {
	if s.Kind != StateRebasing {
		return s.Kind.String()
	}
	name := "rebase"
	if s.Interactive {
		name = "rebase-i"
	}
	if s.Done == 0 && s.Todo == 0 {
		return name
	}
	return fmt.Sprintf("%s %d/%d", name, s.Done, s.Done+s.Todo)
}

// stateProbe checks one marker under the control directory.
type stateProbe struct {
	marker string
	detect func(r *Repo, path string) (RepoState, bool)
}

// statePriority is the fixed detection order. Only the first match is
// reported even when several markers coexist, e.g. a conflicted merge during
// a rebase reports StateRebasing.
var statePriority = []stateProbe{
	{"BISECT_LOG", fileMarker(StateBisecting)},
	{"REVERT_HEAD", fileMarker(StateReverting)},
	{"CHERRY_PICK_HEAD", fileMarker(StateCherryPicking)},
	{"rebase-merge", detectRebaseMerge},
	{"rebase-apply", detectRebaseApply},
	{"MERGE_HEAD", fileMarker(StateMerging)},
}

// State classifies the in-progress operation. It never fails: unreadable
// markers are treated as absent and unreadable counters as zero.
func (r *Repo) State() RepoState {
	for _, probe := range statePriority {
		if s, ok := probe.detect(r, r.gitPath(probe.marker)); ok {
			return s
		}
	}
	return RepoState{}
}

func fileMarker(kind StateKind) func(*Repo, string) (RepoState, bool) {
	return func(r *Repo, path string) (RepoState, bool) {
		if _, err := os.Stat(path); err != nil {
			r.logMissing("state marker", path, err)
			return RepoState{}, false
		}
		return RepoState{Kind: kind}, true
	}
}

func detectRebaseMerge(r *Repo, dir string) (RepoState, bool) {
	if !r.isDir(dir) {
		return RepoState{}, false
	}
	s := RepoState{Kind: StateRebasing}
	if _, err := os.Stat(filepath.Join(dir, "interactive")); err == nil {
		s.Interactive = true
	}
	s.Todo = r.countLines(filepath.Join(dir, "git-rebase-todo"), isTodoLine)
	s.Done = r.countLines(filepath.Join(dir, "done"), nil)
	return s, true
}

// detectRebaseApply handles am-style rebases, which track progress with
// numeric "next" and "last" files instead of todo lists.
func detectRebaseApply(r *Repo, dir string) (RepoState, bool) {
	if !r.isDir(dir) {
		return RepoState{}, false
	}
	s := RepoState{Kind: StateRebasing}
	next := r.readCounter(filepath.Join(dir, "next"))
	last := r.readCounter(filepath.Join(dir, "last"))
	if next > 0 && last >= next-1 {
		s.Done = next - 1
		s.Todo = last - next + 1
	}
	return s, true
}

func isTodoLine(line string) bool {
	line = strings.TrimSpace(line)
	return line != "" && !strings.HasPrefix(line, "#")
}

func (r *Repo) isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		r.logMissing("state marker", path, err)
		return false
	}
	return info.IsDir()
}

// countLines counts lines of path accepted by keep (all lines when keep is
// nil). A missing or unreadable file counts as zero.
func (r *Repo) countLines(path string, keep func(string) bool) int {
	f, err := os.Open(path)
	if err != nil {
		r.logMissing("count lines", path, err)
		return 0
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if keep == nil || keep(scanner.Text()) {
			n++
		}
	}
	if err := scanner.Err(); err != nil {
		r.logger.Debug("count lines: partial read", "path", path, "error", err)
	}
	return n
}

func (r *Repo) readCounter(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		r.logMissing("read counter", path, err)
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || n < 0 {
		r.logger.Debug("read counter: not a number", "path", path, "content", string(data))
		return 0
	}
	return n
}

// logMissing logs err unless it merely reports absence.
func (r *Repo) logMissing(op, path string, err error) {
	if os.IsNotExist(err) {
		return
	}
	r.logger.Debug(op+": unreadable", "path", path, "error", err)
}
