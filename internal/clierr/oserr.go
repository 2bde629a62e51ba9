package clierr

import (
	"errors"
	"io/fs"
	"syscall"
)

// OSCode returns the platform error name carried by err (for example
// "ENOENT" or "EACCES"), or "" when err has no OS-level code.
func OSCode(err error) string {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errnoName(errno)
	}
	// Filesystems that do not surface errno values (in-memory ones, for
	// instance) still report the portable fs sentinels.
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "ENOENT"
	case errors.Is(err, fs.ErrPermission):
		return "EACCES"
	case errors.Is(err, fs.ErrExist):
		return "EEXIST"
	}
	return ""
}

// Storage wraps an I/O failure on path as a StorageError. The message is
// specialised for permission and disk-full failures.
func Storage(op, path string, err error) *Error {
	code := OSCode(err)
	var msg string
	switch code {
	case "EACCES", "EPERM":
		msg = "Permission denied: cannot " + op + " " + path
	case "ENOSPC":
		msg = "Disk full: cannot " + op + " " + path
	case "ENOENT":
		msg = "File not found: " + path
	default:
		msg = "Error trying to " + op + " " + path + ": " + err.Error()
	}
	details := map[string]any{"path": path, "op": op}
	if code != "" {
		details["os_code"] = code
	}
	return Wrap(StorageError, err, "%s", msg).WithDetails(details)
}
