// Package watcher reports changes to files in a tasks directory, with
// debouncing.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is the quiet period after the last event before the callback
// fires. Saves replace the file through a rename, which arrives as several
// events; they collapse into one notification.
const DefaultDelay = 100 * time.Millisecond

// Watcher watches a directory and invokes a callback, debounced, when a
// matching entry changes. The directory is watched rather than the file so
// that rename-over saves keep being observed.
type Watcher struct {
	fsw      *fsnotify.Watcher
	match    func(name string) bool
	delay    time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	callback func()
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay overrides DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) { w.delay = d }
}

// WithMatch restricts notifications to entries whose base name satisfies fn.
func WithMatch(fn func(name string) bool) Option {
	return func(w *Watcher) { w.match = fn }
}

// New creates a Watcher on dir. callback runs on its own goroutine.
func New(dir string, callback func(), opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{fsw: fsw, callback: callback, delay: DefaultDelay}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run starts the watch loop. It blocks until the context is canceled.
// Errors from the underlying watcher are passed to the optional errFn callback.
func (w *Watcher) Run(ctx context.Context, errFn func(error)) {
	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if w.match != nil && !w.match(filepath.Base(event.Name)) {
				continue
			}
			w.debounce()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if errFn != nil {
				errFn(err)
			}
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) debounce() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.callback)
}
