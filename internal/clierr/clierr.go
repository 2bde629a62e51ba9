// Package clierr defines structured error types for CLI commands.
// Errors carry a machine-readable code, a human-readable message,
// optional details for JSON output, and an optional wrapped cause.
package clierr

import (
	"errors"
	"fmt"
)

// Error code constants, uppercase and underscore-separated.
const (
	InvalidTask     = "INVALID_TASK"
	InvalidTaskID   = "INVALID_TASK_ID"
	TaskNotFound    = "TASK_NOT_FOUND"
	InvalidDate     = "INVALID_DATE"
	FileNotFound    = "FILE_NOT_FOUND"
	StorageError    = "STORAGE_ERROR"
	ParseError      = "PARSE_ERROR"
	Cancelled       = "CANCELLED"
	MissingArgument = "MISSING_ARGUMENT"
	InvalidConfig   = "INVALID_CONFIG"
	InternalError   = "INTERNAL_ERROR"
)

// Error represents a structured CLI error with a machine-readable code.
type Error struct {
	Code    string
	Message string
	Details map[string]any

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is a *Error with the same code, so callers can
// match a kind with errors.Is(err, clierr.New(clierr.TaskNotFound, "")).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error that keeps cause reachable through errors.Unwrap.
func Wrap(code string, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: cause}
}

// WithDetails returns the error with the given details map attached.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode returns 2 for InternalError, 1 for all others.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // exit code 2 for internal errors
	}
	return 1
}

// CodeOf returns the code of the first *Error in err's chain, or
// InternalError when err does not carry one.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return InternalError
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
