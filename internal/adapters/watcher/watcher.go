// Package watcher reports debounced changes to puzzle input files.
package watcher

import (
	"context"
	"fmt"
	"iter"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/caves/internal/core/domain"
	"go.trai.ch/caves/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultDebounceWindow is the quiet period after which a batch of changes is reported.
const DefaultDebounceWindow = 100 * time.Millisecond

// relevantOps are the operations that can change a file's content.
const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

var _ ports.Watcher = (*Watcher)(nil)

// Watcher implements ports.Watcher with fsnotify. Parent directories are
// watched rather than the files themselves, so files replaced by editors
// keep being tracked.
type Watcher struct {
	window time.Duration
	logger ports.Logger
}

// New creates a Watcher with the given debounce window.
func New(window time.Duration, logger ports.Logger) *Watcher {
	return &Watcher{window: window, logger: logger}
}

// Watch starts watching paths and returns the sequence of changed batches.
func (w *Watcher) Watch(ctx context.Context, paths []string) (iter.Seq[[]string], error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fsw.Close()
			return nil, zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", p)
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", dir)
		}
	}

	return func(yield func([]string) bool) {
		defer func() { _ = fsw.Close() }()

		done := make(chan struct{})
		defer close(done)

		batches := make(chan []string)
		debouncer := NewDebouncer(w.window, func(changed []string) {
			select {
			case batches <- changed:
			case <-done:
			}
		})
		defer debouncer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if event.Op&relevantOps == 0 {
					continue
				}
				name := filepath.Clean(event.Name)
				if _, watched := targets[name]; watched {
					debouncer.Add(name)
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				if w.logger != nil {
					w.logger.Warn(fmt.Sprintf("watcher: %v", err))
				}
			case batch := <-batches:
				if !yield(batch) {
					return
				}
			}
		}
	}, nil
}
