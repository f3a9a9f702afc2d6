package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const gitdirPrefix = "gitdir:"

// Open searches upward from path for a .git entry and opens the innermost
// repository. A .git directory is used as-is. A .git file (worktrees and
// submodules) must hold "gitdir: <path>", resolved relative to the file's
// directory; the directory holding the file stays the working tree root.
//
// Errors match ErrNotFound when no repository encloses path, ErrInvalidData
// when an indirection file is malformed, and ErrIO otherwise.
func Open(path string, opts ...Option) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &Error{Op: "open", Path: path, Kind: ErrIO, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, ioError("open", abs, err)
	}
	if !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := abs
	for {
		entry := filepath.Join(cur, ControlDirName)
		info, err := os.Stat(entry)
		switch {
		case err == nil && info.IsDir():
			return openControlDir(cur, entry, opts...)
		case err == nil && info.Mode().IsRegular():
			gitDir, err := readGitdirFile(entry)
			if err != nil {
				return nil, err
			}
			return openControlDir(cur, gitDir, opts...)
		case err == nil:
			return nil, invalidData("open", entry, "unsupported file mode %s", info.Mode())
		case !errors.Is(err, os.ErrNotExist):
			return nil, ioError("open", entry, err)
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, &Error{
				Op:   "open",
				Path: abs,
				Kind: ErrNotFound,
				Err:  fmt.Errorf("not a repository (or any parent up to %s)", cur),
			}
		}
		cur = parent
	}
}

// readGitdirFile resolves the control directory named by an indirection file.
func readGitdirFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ioError("read gitdir", path, err)
	}
	content := strings.TrimSpace(string(data))
	if !strings.HasPrefix(content, gitdirPrefix) {
		return "", invalidData("read gitdir", path, "missing %q prefix", gitdirPrefix)
	}
	target := strings.TrimSpace(strings.TrimPrefix(content, gitdirPrefix))
	if target == "" || strings.ContainsAny(target, "\n\x00") {
		return "", invalidData("read gitdir", path, "malformed target %q", target)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Clean(target), nil
}

// openControlDir validates gitDir and resolves its common directory.
func openControlDir(root, gitDir string, opts ...Option) (*Repo, error) {
	info, err := os.Stat(gitDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, invalidData("open", gitDir, "control directory does not exist")
		}
		return nil, ioError("open", gitDir, err)
	}
	if !info.IsDir() {
		return nil, invalidData("open", gitDir, "control directory is not a directory")
	}

	commonDir, err := readCommonDir(gitDir)
	if err != nil {
		return nil, err
	}
	return newRepo(root, gitDir, commonDir, opts...), nil
}

// readCommonDir follows the commondir file linked worktrees carry. Without
// one, the control directory is its own common directory.
func readCommonDir(gitDir string) (string, error) {
	path := filepath.Join(gitDir, "commondir")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return gitDir, nil
		}
		return "", ioError("read commondir", path, err)
	}
	target := strings.TrimSpace(string(data))
	if target == "" {
		return "", invalidData("read commondir", path, "empty")
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(gitDir, target)
	}
	return filepath.Clean(target), nil
}
