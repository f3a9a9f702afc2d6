package repo

import (
	"fmt"
	"strings"
)

// Snapshot is everything the fast prompt path knows about a repository,
// read once from disk. It is never updated; build a new one per render.
type Snapshot struct {
	RootDir  string
	Ref      Reference
	Abbrev   string // abbreviated commit, set only for a detached HEAD
	Upstream string // empty when no upstream is configured
	State    RepoState
	Stashes  int
}

// Snapshot resolves HEAD and gathers the best-effort details around it.
// Only a failure to read HEAD is returned.
func (r *Repo) Snapshot() (*Snapshot, error) {
	ref, err := r.Head()
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		RootDir: r.RootDir,
		Ref:     ref,
		State:   r.State(),
		Stashes: r.StashCount(),
	}
	switch ref.Kind {
	case RefBranch:
		snap.Upstream, _ = r.Upstream(ref.Branch)
	case RefCommit:
		snap.Abbrev = r.Store.Abbrev(ref.Commit)
	}
	return snap, nil
}

// Head returns the branch name, "@" plus the abbreviated commit, or "?".
func (s *Snapshot) Head() string {
	switch s.Ref.Kind {
	case RefBranch:
		return s.Ref.Branch
	case RefCommit:
		return "@" + s.Abbrev
	default:
		return "?"
	}
}

// String renders a plain one-line summary, for example
// "feature:main rebase-i 2/5 *3". The upstream is shown only when it
// differs from the branch name.
func (s *Snapshot) String() string {
	var b strings.Builder
	b.WriteString(s.Head())
	if s.Upstream != "" && s.Upstream != s.Ref.Branch {
		b.WriteString(":")
		b.WriteString(s.Upstream)
	}
	if s.State.Active() {
		b.WriteString(" ")
		b.WriteString(s.State.String())
	}
	if s.Stashes > 0 {
		fmt.Fprintf(&b, " *%d", s.Stashes)
	}
	return b.String()
}
