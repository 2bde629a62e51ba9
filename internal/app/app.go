// Package app implements the task tracker operations. Each operation
// resolves the current storage file, runs against a Store for it, and
// returns domain values; rendering is left to the caller.
package app

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/twiced-technology-gmbh/tasktrack/internal/config"
	"github.com/twiced-technology-gmbh/tasktrack/internal/date"
	"github.com/twiced-technology-gmbh/tasktrack/internal/logging"
	"github.com/twiced-technology-gmbh/tasktrack/internal/state"
	"github.com/twiced-technology-gmbh/tasktrack/internal/storage"
	"github.com/twiced-technology-gmbh/tasktrack/internal/store"
)

// Locker runs fn while excluding other writers of the tasks directory.
type Locker interface {
	WithLock(fn func() error) error
}

type noLock struct{}

func (noLock) WithLock(fn func() error) error { return fn() }

// App wires the configuration, storage, and state tracker together.
type App struct {
	cfg     *config.Config
	fs      *storage.FS
	tracker *state.Tracker
	locker  Locker
	logger  *log.Logger
}

// Option configures an App.
type Option func(*App)

// WithLocker serializes mutations through l.
func WithLocker(l Locker) Option {
	return func(a *App) { a.locker = l }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) { a.logger = l }
}

// New returns an App over cfg and fs.
func New(cfg *config.Config, fs *storage.FS, opts ...Option) *App {
	a := &App{cfg: cfg, fs: fs, locker: noLock{}}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = logging.OrDiscard(a.logger)
	a.tracker = state.NewTracker(fs, cfg.TasksDir, a.logger)
	return a
}

// Config returns the configuration the App was built with.
func (a *App) Config() *config.Config {
	return a.cfg
}

// CurrentFilePath returns the storage file operations run against: the
// remembered one when it still exists, otherwise today's default.
func (a *App) CurrentFilePath() string {
	if p, ok := a.tracker.CurrentFilePath(); ok {
		return p
	}
	return a.cfg.DefaultFilePath()
}

func (a *App) store() *store.Store {
	return store.New(a.fs, a.CurrentFilePath(), a.logger)
}

func (a *App) now() time.Time {
	return a.cfg.Clock.Now()
}

// fileLabel returns the date embedded in a storage file path, or the base
// name when the path does not follow the date pattern.
func fileLabel(path string) string {
	base := filepath.Base(path)
	if d, ok := date.FromFileName(base); ok {
		return d.String()
	}
	return base
}
