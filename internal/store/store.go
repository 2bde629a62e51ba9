// Package store implements durable CRUD over one JSON task file.
package store

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
	"github.com/twiced-technology-gmbh/tasktrack/internal/logging"
	"github.com/twiced-technology-gmbh/tasktrack/internal/storage"
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

// Store reads and writes the task collection kept in a single file as a
// pretty-printed JSON array. Insertion order is preserved.
type Store struct {
	fs     *storage.FS
	path   string
	logger *log.Logger
}

// New returns a Store over the file at path.
func New(fs *storage.FS, path string, logger *log.Logger) *Store {
	return &Store{fs: fs, path: path, logger: logging.OrDiscard(logger)}
}

// Path returns the storage file path.
func (s *Store) Path() string {
	return s.path
}

// FindAll returns every task in the file. A missing or blank file is an
// empty collection; anything that is not a JSON array of tasks is a
// ParseError.
func (s *Store) FindAll() ([]task.Task, error) {
	exists, err := s.fs.Exists(s.path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []task.Task{}, nil
	}

	content, err := s.fs.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return []task.Task{}, nil
	}

	if !strings.HasPrefix(trimmed, "[") {
		if !json.Valid([]byte(trimmed)) {
			return nil, s.syntaxError(decodeError(trimmed))
		}
		return nil, s.shapeError(nil)
	}

	var tasks []task.Task
	if err := json.Unmarshal([]byte(trimmed), &tasks); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, s.shapeError(err)
		}
		return nil, s.syntaxError(err)
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

// FindByID returns the task with the given id. ok is false when absent.
func (s *Store) FindByID(id string) (t task.Task, ok bool, err error) {
	tasks, err := s.FindAll()
	if err != nil {
		return task.Task{}, false, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, true, nil
		}
	}
	return task.Task{}, false, nil
}

// Exists reports whether a task with id is stored.
func (s *Store) Exists(id string) (bool, error) {
	_, ok, err := s.FindByID(id)
	return ok, err
}

// Save upserts t by id: an existing entry is replaced in place, otherwise
// t is appended. The whole collection is written back.
func (s *Store) Save(t task.Task) error {
	if t.ID == "" {
		return clierr.New(clierr.InvalidTask, "Task must have an ID to save")
	}

	tasks, err := s.FindAll()
	if err != nil {
		return err
	}

	replaced := false
	for i := range tasks {
		if tasks[i].ID == t.ID {
			tasks[i] = t
			replaced = true
			break
		}
	}
	if !replaced {
		tasks = append(tasks, t)
	}
	return s.SaveAll(tasks)
}

// SaveAll replaces the file content with tasks, creating the containing
// directory when needed.
func (s *Store) SaveAll(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return clierr.Wrap(clierr.InternalError, err, "encoding tasks: %v", err)
	}

	if err := s.fs.EnsureDir(filepath.Dir(s.path)); err != nil {
		return err
	}
	if err := s.fs.WriteFile(s.path, string(data)+"\n"); err != nil {
		return err
	}
	s.logger.Debug("wrote tasks file", "path", s.path, "tasks", len(tasks))
	return nil
}

// Delete removes every entry with id. An absent id is not an error.
func (s *Store) Delete(id string) error {
	tasks, err := s.FindAll()
	if err != nil {
		return err
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return s.SaveAll(kept)
}

func (s *Store) syntaxError(err error) *clierr.Error {
	return clierr.Wrap(clierr.ParseError, err,
		"Invalid JSON in tasks file: %s. %v", s.path, err).
		WithDetails(map[string]any{"path": s.path})
}

func (s *Store) shapeError(err error) *clierr.Error {
	return clierr.Wrap(clierr.ParseError, err,
		"Tasks file does not contain a valid array: %s", s.path).
		WithDetails(map[string]any{"path": s.path})
}

// decodeError returns the decoder's complaint about malformed content.
func decodeError(content string) error {
	var v any
	if err := json.Unmarshal([]byte(content), &v); err != nil {
		return err
	}
	return errors.New("unexpected content")
}
