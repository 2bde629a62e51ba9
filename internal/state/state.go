// Package state remembers which storage file is current across separate
// invocations, through a one-line pointer file in the tasks directory.
package state

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/twiced-technology-gmbh/tasktrack/internal/logging"
	"github.com/twiced-technology-gmbh/tasktrack/internal/storage"
)

// FileName is the name of the pointer file inside the tasks directory.
const FileName = ".current-task-file"

// Tracker reads and writes the current-file pointer. It never fails: an
// unreadable pointer reads as unset and a failed write is only logged.
type Tracker struct {
	fs       *storage.FS
	tasksDir string
	logger   *log.Logger
}

// NewTracker returns a Tracker for the pointer file in tasksDir.
func NewTracker(fs *storage.FS, tasksDir string, logger *log.Logger) *Tracker {
	return &Tracker{fs: fs, tasksDir: tasksDir, logger: logging.OrDiscard(logger)}
}

// Path returns the pointer file path.
func (t *Tracker) Path() string {
	return filepath.Join(t.tasksDir, FileName)
}

// CurrentFilePath returns the remembered storage file. ok is false when the
// pointer is absent, unreadable, blank, or names a file that no longer exists.
func (t *Tracker) CurrentFilePath() (path string, ok bool) {
	exists, err := t.fs.Exists(t.Path())
	if err != nil || !exists {
		return "", false
	}

	content, err := t.fs.ReadFile(t.Path())
	if err != nil {
		t.logger.Debug("ignoring unreadable current-file pointer", "path", t.Path(), "err", err)
		return "", false
	}

	target := strings.TrimSpace(content)
	if target == "" {
		return "", false
	}
	if exists, err := t.fs.Exists(target); err != nil || !exists {
		t.logger.Debug("current-file pointer names a missing file", "target", target)
		return "", false
	}
	return target, true
}

// SaveCurrentFilePath records path as current. Failures are swallowed and
// nothing is rolled back; the pointer is bookkeeping, not data.
func (t *Tracker) SaveCurrentFilePath(path string) {
	if err := t.fs.EnsureDir(t.tasksDir); err != nil {
		t.logger.Debug("could not create tasks directory for pointer", "dir", t.tasksDir, "err", err)
		return
	}
	if err := t.fs.WriteFile(t.Path(), strings.TrimSpace(path)); err != nil {
		t.logger.Debug("could not save current-file pointer", "path", t.Path(), "err", err)
	}
}
