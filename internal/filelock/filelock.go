// Package filelock serializes read-modify-write cycles on a tasks directory
// between cooperating processes with an advisory lock file.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the lock file created inside the locked directory.
const FileName = ".lock"

const (
	lockFileMode = 0o600
	dirMode      = 0o750
)

// Lock is a held lock on a directory.
type Lock struct {
	f *os.File
}

// Acquire takes the exclusive lock on dir, creating dir and its lock file
// as needed. It blocks until no other process holds the lock.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // path is the configured tasks dir
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}
	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}
	return &Lock{f: f}, nil
}

// Release drops the lock. Calling it more than once is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	f := l.f
	l.f = nil
	unlockErr := unlockFile(f)
	closeErr := f.Close()
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}

// Dir locks one directory for the duration of a callback.
type Dir string

// WithLock runs fn while holding the lock on d.
func (d Dir) WithLock(fn func() error) error {
	l, err := Acquire(string(d))
	if err != nil {
		return err
	}
	defer l.Release() //nolint:errcheck // released on every path; close errors are not actionable
	return fn()
}
