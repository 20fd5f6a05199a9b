package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/glimpse-tui/glimpse/internal/csync"
)

// FileWatcher monitors the browsed directory for changes with
// debouncing. Rapid bursts (a build touching dozens of files, an
// editor's save dance) collapse into a single onChange callback after
// things settle, and the preview cache invalidates just once.
type FileWatcher struct {
	// Configuration
	debounceDelay time.Duration
	ignorePaths   []string

	// Debouncing state
	timer        *time.Timer
	timerMu      sync.Mutex
	pendingPaths *csync.Map[string, struct{}]

	// Callback when changes are ready
	onChange func([]string)

	// Filesystem backend
	fsw   *fsnotify.Watcher
	dir   string
	fswMu sync.Mutex

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
}

// NewWatcher creates a file watcher with the specified debounce delay.
// The onChange callback receives the settled set of changed paths.
func NewWatcher(debounceDelay time.Duration, onChange func([]string)) *FileWatcher {
	ctx, cancel := context.WithCancel(context.Background())

	return &FileWatcher{
		debounceDelay: debounceDelay,
		ignorePaths:   defaultIgnorePaths(),
		pendingPaths:  csync.NewMap[string, struct{}](),
		onChange:      onChange,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Watch starts monitoring dir, replacing whatever directory was
// watched before; the browser calls this again on every descend or
// ascend. Events arrive on an fsnotify goroutine and flow through
// FileChanged, so the debounce rules apply the same as for manually
// reported changes.
func (w *FileWatcher) Watch(dir string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	w.fswMu.Lock()
	if w.fsw != nil {
		w.fsw.Close()
	}
	w.fsw = fsw
	w.dir = dir
	w.fswMu.Unlock()

	go w.run(fsw)
	return nil
}

// Dir returns the directory currently being watched.
func (w *FileWatcher) Dir() string {
	w.fswMu.Lock()
	defer w.fswMu.Unlock()
	return w.dir
}

// run pumps fsnotify events until the watcher stops.
func (w *FileWatcher) run(fsw *fsnotify.Watcher) {
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.FileChanged(event.Name)
			}
		case _, ok := <-fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are not actionable here; the preview will
			// simply go stale until the next selection.
		}
	}
}

// FileChanged notifies the watcher of a file change. Multiple rapid
// calls are debounced into a single onChange callback.
func (w *FileWatcher) FileChanged(path string) {
	if w.shouldIgnore(path) {
		return
	}

	w.pendingPaths.Set(path, struct{}{})

	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	// Reset timer
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceDelay, w.processPending)
}

// SetIgnorePaths updates the paths to ignore.
func (w *FileWatcher) SetIgnorePaths(paths []string) {
	w.ignorePaths = paths
}

// Stop shuts down the watcher and its fsnotify backend.
func (w *FileWatcher) Stop() {
	w.cancel()

	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timerMu.Unlock()

	w.fswMu.Lock()
	if w.fsw != nil {
		w.fsw.Close()
		w.fsw = nil
	}
	w.fswMu.Unlock()
}

// processPending is called after the debounce delay. It drains the
// pending set and triggers the onChange callback.
func (w *FileWatcher) processPending() {
	w.timerMu.Lock()
	w.timer = nil
	w.timerMu.Unlock()

	pending := w.pendingPaths.Take()
	if len(pending) == 0 || w.onChange == nil {
		return
	}

	paths := make([]string, 0, len(pending))
	for path := range pending {
		paths = append(paths, path)
	}
	w.onChange(paths)
}

// shouldIgnore filters out paths whose previews nobody will miss.
func (w *FileWatcher) shouldIgnore(path string) bool {
	for _, ignore := range w.ignorePaths {
		if strings.Contains(path, ignore) {
			return true
		}
	}

	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}

	switch filepath.Ext(base) {
	case ".swp", ".swo", ".tmp", ".part":
		return true
	}

	return false
}

// defaultIgnorePaths returns directories that are never worth a cache
// invalidation.
func defaultIgnorePaths() []string {
	return []string{
		".git",
		"node_modules",
		"__pycache__",
	}
}
