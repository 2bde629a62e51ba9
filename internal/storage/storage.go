// Package storage reads and writes text files and directories on an
// afero filesystem, surfacing every failure as a clierr StorageError.
package storage

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// FileInfo is the subset of file metadata the task tracker reports.
type FileInfo struct {
	Name     string
	Size     int64
	Modified time.Time
	IsDir    bool
}

// FS is a text-file facade over an afero.Fs.
type FS struct {
	fs afero.Fs
}

// New wraps fsys. Use afero.NewOsFs() for the real filesystem or
// afero.NewMemMapFs() in tests.
func New(fsys afero.Fs) *FS {
	return &FS{fs: fsys}
}

// Exists reports whether path exists.
func (s *FS) Exists(path string) (bool, error) {
	ok, err := afero.Exists(s.fs, path)
	if err != nil {
		return false, clierr.Storage("check", path, err)
	}
	return ok, nil
}

// ReadFile returns the content of path. A missing file is a StorageError
// with os_code ENOENT.
func (s *FS) ReadFile(path string) (string, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", clierr.Storage("read", path, err)
	}
	return string(data), nil
}

// WriteFile replaces the content of path. The data goes to a temporary file
// in the same directory first and is renamed over path, so a failed write
// leaves the previous content in place.
func (s *FS) WriteFile(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return clierr.Storage("write", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return clierr.Storage("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return clierr.Storage("write", path, err)
	}
	if err := s.fs.Chmod(tmpName, fileMode); err != nil {
		_ = s.fs.Remove(tmpName)
		return clierr.Storage("write", path, err)
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		_ = s.fs.Remove(tmpName)
		return clierr.Storage("write", path, err)
	}
	return nil
}

// EnsureDir creates path and any missing parents.
func (s *FS) EnsureDir(path string) error {
	if err := s.fs.MkdirAll(path, dirMode); err != nil {
		return clierr.Storage("create directory", path, err)
	}
	return nil
}

// ReadDir returns the entry names of directory path, sorted by name.
// A missing directory yields an empty list.
func (s *FS) ReadDir(path string) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, clierr.Storage("read directory", path, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Stat returns metadata for path.
func (s *FS) Stat(path string) (FileInfo, error) {
	fi, err := s.fs.Stat(path)
	if err != nil {
		return FileInfo{}, clierr.Storage("stat", path, err)
	}
	return FileInfo{
		Name:     fi.Name(),
		Size:     fi.Size(),
		Modified: fi.ModTime(),
		IsDir:    fi.IsDir(),
	}, nil
}
