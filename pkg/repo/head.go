package repo

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/statusline/pkg/object"
)

const (
	refPrefix   = "ref:"
	headsPrefix = "refs/heads/"
)

// RefKind tags which variant of Reference is active.
type RefKind int

const (
	RefUnknown RefKind = iota
	RefBranch
	RefCommit
)

func (k RefKind) String() string {
	switch k {
	case RefBranch:
		return "branch"
	case RefCommit:
		return "commit"
	default:
		return "unknown"
	}
}

// Reference is the resolved HEAD: a named branch, a detached commit, or
// unknown. Only the field matching Kind is set.
type Reference struct {
	Kind   RefKind
	Branch string
	Commit object.Hash
}

func (ref Reference) IsBranch() bool   { return ref.Kind == RefBranch }
func (ref Reference) IsDetached() bool { return ref.Kind == RefCommit }

func (ref Reference) String() string {
	switch ref.Kind {
	case RefBranch:
		return ref.Branch
	case RefCommit:
		return string(ref.Commit)
	default:
		return "?"
	}
}

// Head reads HEAD from the control directory. A symbolic link or a "ref:"
// line pointing under refs/heads/ yields a branch; a bare id yields a
// detached commit. Anything else resolves to RefUnknown rather than an
// error. Only a missing or unreadable HEAD is reported as an error.
func (r *Repo) Head() (Reference, error) {
	path := r.gitPath("HEAD")
	info, err := os.Lstat(path)
	if err != nil {
		return Reference{}, ioError("head", path, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(path)
		if err != nil {
			return Reference{}, ioError("head", path, err)
		}
		return branchFromRefPath(filepath.ToSlash(target)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Reference{}, ioError("head", path, err)
	}
	return parseHead(string(data)), nil
}

func parseHead(content string) Reference {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, refPrefix) {
		target := strings.TrimSpace(strings.TrimPrefix(content, refPrefix))
		if !strings.HasPrefix(target, headsPrefix) {
			return Reference{}
		}
		return branchFromRefPath(target)
	}

	fields := strings.Fields(content)
	if len(fields) == 0 {
		return Reference{}
	}
	h, err := object.ParseHash(fields[0])
	if err != nil {
		return Reference{}
	}
	return Reference{Kind: RefCommit, Commit: h}
}

// branchFromRefPath extracts the branch name following refs/heads/ in p.
// Symlinked HEADs may carry a leading path, so the prefix is searched for.
func branchFromRefPath(p string) Reference {
	i := strings.Index(p, headsPrefix)
	if i < 0 {
		return Reference{}
	}
	if i > 0 && p[i-1] != '/' {
		return Reference{}
	}
	name := strings.TrimSpace(p[i+len(headsPrefix):])
	if name == "" || strings.HasSuffix(name, "/") {
		return Reference{}
	}
	return Reference{Kind: RefBranch, Branch: name}
}
