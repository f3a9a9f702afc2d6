package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/odvcencio/statusline/pkg/logging"
	"github.com/odvcencio/statusline/pkg/repo"
)

const defaultDebounce = 150 * time.Millisecond

// Watcher rebuilds a repository snapshot whenever the control files that
// feed it change. Object stores are not watched.
type Watcher struct {
	repo     *repo.Repo
	onChange func(*repo.Snapshot)
	logger   logging.Logger
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// New returns a Watcher calling onChange with each fresh snapshot.
func New(r *repo.Repo, onChange func(*repo.Snapshot)) *Watcher {
	return &Watcher{repo: r, onChange: onChange, logger: logging.Nop(), debounce: defaultDebounce}
}

func (w *Watcher) SetLogger(l logging.Logger) {
	if l != nil {
		w.logger = l
	}
}

func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// watchDirs lists the directories whose entries affect a snapshot.
func (w *Watcher) watchDirs() []string {
	dirs := []string{
		w.repo.GitDir,
		filepath.Join(w.repo.GitDir, "rebase-merge"),
		filepath.Join(w.repo.GitDir, "rebase-apply"),
		filepath.Join(w.repo.CommonDir, "logs", "refs"),
	}
	if w.repo.CommonDir != w.repo.GitDir {
		dirs = append(dirs, w.repo.CommonDir)
	}
	return dirs
}

// Run emits an initial snapshot, then one per burst of relevant changes,
// until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.watchDirs() {
		w.add(fw, dir)
	}
	w.emit()

	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if isIgnored(ev.Name) {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					w.add(fw, ev.Name)
				}
			}
			w.schedule()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) add(fw *fsnotify.Watcher, dir string) {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return
	}
	if err := fw.Add(dir); err != nil {
		w.logger.Warn("watcher add failed", "path", dir, "error", err)
	}
}

// isIgnored drops lock files and object writes, which never change a
// snapshot on their own.
func isIgnored(path string) bool {
	if path == "" {
		return true
	}
	if strings.HasSuffix(path, ".lock") {
		return true
	}
	sep := string(filepath.Separator)
	return strings.Contains(path, sep+"objects"+sep) || filepath.Base(path) == "objects"
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.emit)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watcher) emit() {
	snap, err := w.repo.Snapshot()
	if err != nil {
		w.logger.Warn("snapshot failed", "root", w.repo.RootDir, "error", err)
		return
	}
	if w.onChange != nil {
		w.onChange(snap)
	}
}
