package app

import (
	"path/filepath"
	"time"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
	"github.com/twiced-technology-gmbh/tasktrack/internal/date"
	"github.com/twiced-technology-gmbh/tasktrack/internal/prompt"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

// ClearQuestion is asked before ClearAll removes anything.
const ClearQuestion = "Are you sure you want to clear all tasks? This action cannot be undone. (y/n): "

// FileEntry describes one date-stamped storage file.
type FileEntry struct {
	Date     date.Date `json:"date"`
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// CurrentFile identifies the storage file operations run against.
type CurrentFile struct {
	// Label is the file's date, or its base name when it carries none.
	Label  string `json:"label"`
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	// Default is true when the pointer is unset and today's file is used.
	Default bool `json:"default"`
}

// SwitchFileByDate makes the storage file for the YYYY-MM-DD date in s the
// current one. The file must already exist; it is never created here, and
// on failure the pointer is left as it was.
func (a *App) SwitchFileByDate(s string) (date.Date, error) {
	d, err := date.Parse(s)
	if err != nil {
		return date.Date{}, err
	}

	path := a.cfg.FilePath(d)
	exists, err := a.fs.Exists(path)
	if err != nil {
		return date.Date{}, err
	}
	if !exists {
		return date.Date{}, clierr.Newf(clierr.FileNotFound,
			"Tasks file for date %s does not exist. File: %s", d, path).
			WithDetails(map[string]any{"date": d.String(), "path": path})
	}

	err = a.locker.WithLock(func() error {
		a.tracker.SaveCurrentFilePath(path)
		return nil
	})
	if err != nil {
		return date.Date{}, err
	}
	a.logger.Info("switched current file", "path", path)
	return d, nil
}

// ListFiles returns the date-stamped storage files in the tasks directory,
// oldest date first. A missing directory yields an empty list.
func (a *App) ListFiles() ([]FileEntry, error) {
	names, err := a.fs.ReadDir(a.cfg.TasksDir)
	if err != nil {
		return nil, err
	}

	files := make([]FileEntry, 0, len(names))
	for _, name := range names {
		d, ok := date.FromFileName(name)
		if !ok {
			continue
		}
		path := filepath.Join(a.cfg.TasksDir, name)
		info, err := a.fs.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir {
			continue
		}
		files = append(files, FileEntry{
			Date:     d,
			Name:     name,
			Path:     path,
			Size:     info.Size,
			Modified: info.Modified,
		})
	}
	// ReadDir sorts by name, and YYYY-MM-DD names sort chronologically.
	return files, nil
}

// CurrentFile reports which storage file is current.
func (a *App) CurrentFile() (CurrentFile, error) {
	path, remembered := a.tracker.CurrentFilePath()
	if !remembered {
		path = a.cfg.DefaultFilePath()
	}
	exists, err := a.fs.Exists(path)
	if err != nil {
		return CurrentFile{}, err
	}
	return CurrentFile{Label: fileLabel(path), Path: path, Exists: exists, Default: !remembered}, nil
}

// ClearAll empties the current storage file after c confirms. A declined
// confirmation is a Cancelled error and nothing is written.
func (a *App) ClearAll(c prompt.Confirmer) error {
	ok, err := c.Confirm(ClearQuestion)
	if err != nil {
		return clierr.Wrap(clierr.InternalError, err, "reading confirmation: %v", err)
	}
	if !ok {
		return clierr.New(clierr.Cancelled, "Clear operation cancelled.")
	}

	err = a.locker.WithLock(func() error {
		return a.store().SaveAll([]task.Task{})
	})
	if err != nil {
		return err
	}
	a.logger.Info("cleared tasks", "path", a.CurrentFilePath())
	return nil
}
