package repo

import (
	"path/filepath"

	"github.com/odvcencio/statusline/pkg/logging"
	"github.com/odvcencio/statusline/pkg/object"
)

// ControlDirName is the entry searched for in each ancestor directory.
const ControlDirName = ".git"

// Repo is a located repository. It is an immutable handle: every query reads
// the disk afresh and nothing is cached between calls.
type Repo struct {
	RootDir   string        // working tree root
	GitDir    string        // control directory (per-worktree state, HEAD)
	CommonDir string        // shared control directory (objects, config, logs)
	Store     *object.Store // object store under CommonDir/objects

	logger logging.Logger
}

// Option configures Open.
type Option func(*Repo)

// WithLogger routes diagnostics from best-effort queries to l.
func WithLogger(l logging.Logger) Option {
	return func(r *Repo) {
		if l != nil {
			r.logger = l
		}
	}
}

func newRepo(root, gitDir, commonDir string, opts ...Option) *Repo {
	r := &Repo{
		RootDir:   root,
		GitDir:    gitDir,
		CommonDir: commonDir,
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Store = object.NewStore(filepath.Join(commonDir, "objects"), object.WithLogger(r.logger))
	return r
}

func (r *Repo) gitPath(elem ...string) string {
	return filepath.Join(append([]string{r.GitDir}, elem...)...)
}

func (r *Repo) commonPath(elem ...string) string {
	return filepath.Join(append([]string{r.CommonDir}, elem...)...)
}

// Abbreviate returns the shortest unambiguous prefix length for id.
func (r *Repo) Abbreviate(id object.Hash) int {
	return r.Store.AbbrevLen(id)
}
