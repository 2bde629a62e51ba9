// Package task defines the Task record and the pure functions that
// validate it and produce new versions of it.
package task

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the sortable ISO-8601 form used for createdAt and updatedAt.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Task is a unit of work as persisted in a storage file. Values are
// treated as immutable: the With* functions return a new version.
type Task struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// New validates description and returns a fresh todo task stamped with now.
func New(description string, now time.Time) (Task, error) {
	d, err := ValidateDescription(description)
	if err != nil {
		return Task{}, err
	}
	ts := Timestamp(now)
	return Task{
		ID:          uuid.NewString(),
		Description: d,
		Status:      StatusTodo,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}, nil
}

// WithDescription returns t with a new trimmed description and a refreshed
// updatedAt.
func WithDescription(t Task, description string, now time.Time) (Task, error) {
	d, err := ValidateDescription(description)
	if err != nil {
		return Task{}, err
	}
	t.Description = d
	t.UpdatedAt = touch(t, now)
	return t, nil
}

// WithStatus normalizes and validates status, then returns t carrying it.
// updatedAt is refreshed even when the status does not change.
func WithStatus(t Task, status string, now time.Time) (Task, error) {
	s, err := ParseStatus(status)
	if err != nil {
		return Task{}, err
	}
	t.Status = s
	t.UpdatedAt = touch(t, now)
	return t, nil
}

// Timestamp formats t in the stored ISO-8601 form, always in UTC.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTimestamp parses a stored timestamp. Any RFC 3339 value is accepted
// so files written by other tools still load.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
}

// touch returns the new updatedAt for t, never earlier than createdAt.
func touch(t Task, now time.Time) string {
	ts := Timestamp(now)
	if created, err := ParseTimestamp(t.CreatedAt); err == nil && now.Before(created) {
		return t.CreatedAt
	}
	return ts
}
