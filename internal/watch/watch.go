// Package watch coalesces filesystem change events into debounced,
// path-keyed batches for incremental graph updates.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// skippedDirs are never descended into or watched, matching the walker's
// own exclusion set.
var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

// ChangeKind classifies the latest known state of a batched path.
type ChangeKind int

const (
	Created ChangeKind = iota
	Modified
	Removed
)

func (k ChangeKind) String() string {
	switch k {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Batch maps each changed absolute path to its most recent ChangeKind
// observed during one debounce window. A path that was created then
// modified within the window collapses to a single Created entry; a path
// that was created then removed collapses to Removed.
type Batch map[string]ChangeKind

// Handler processes one debounced batch. Run serializes handler calls:
// the next batch is not assembled until the previous Handler call returns.
type Handler func(batch Batch)

// Watcher watches one or more root directories, recursively, for changes
// to files accepted by include, debouncing bursts of events into batches
// delivered to a Handler.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	include  func(path string) bool
	handler  Handler
	log      *slog.Logger

	mu      sync.Mutex
	pending Batch
	timer   *time.Timer
}

// New creates a Watcher rooted at each of roots, recursively adding watches
// to every directory not in skippedDirs. include filters which regular
// files produce batch entries; directory-only events (mkdir, rmdir) are
// still used to maintain the recursive watch set but never themselves
// appear in a Batch.
func New(roots []string, debounce time.Duration, include func(path string) bool, handler Handler, log *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	w := &Watcher{fsw: fsw, debounce: debounce, include: include, handler: handler, log: log, pending: make(Batch)}

	for _, root := range roots {
		if err := w.addTree(root); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// addTree registers a watch on dir and every non-skipped subdirectory.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() != filepath.Base(root) && skippedDirs[d.Name()] {
			return fs.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}

// Run drives the event loop until ctx is cancelled or a fatal watcher
// error occurs. It drains the current debounce batch before returning.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.flush()
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch event error", "error", err)
		}
	}
}

// Close stops the underlying fsnotify watcher and any pending debounce
// timer.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	info, statErr := os.Stat(ev.Name)
	isDir := statErr == nil && info.IsDir()

	if ev.Op&fsnotify.Create != 0 && isDir {
		if !skippedDirs[filepath.Base(ev.Name)] {
			if err := w.addTree(ev.Name); err != nil {
				w.log.Warn("watch: failed to add new directory", "path", ev.Name, "error", err)
			}
		}
		return
	}
	if isDir {
		return
	}
	if w.include != nil && !w.include(ev.Name) {
		return
	}

	var kind ChangeKind
	switch {
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		kind = Removed
	case ev.Op&fsnotify.Create != 0:
		kind = Created
	case ev.Op&fsnotify.Write != 0:
		kind = Modified
	default:
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[ev.Name] = mergeKind(w.pending, ev.Name, kind)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

// mergeKind resolves the net effect of a path's prior batched kind and a
// newly observed kind within the same debounce window. A path with no
// prior entry takes its own kind; a prior Created followed by a Modified
// stays Created, since the caller only needs to know the file is new,
// not that it changed twice before the batch flushed.
func mergeKind(pending Batch, path string, next ChangeKind) ChangeKind {
	prior, seen := pending[path]
	if !seen {
		return next
	}
	if prior == Created && next == Modified {
		return Created
	}
	return next
}

func (w *Watcher) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return
	}
	batch := w.pending
	w.pending = make(Batch)
	w.timer = nil

	w.handler(batch)
}
