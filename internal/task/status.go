package task

import (
	"strings"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
)

// Status is the lifecycle state of a task, stored in underscored form.
type Status string

// Statuses.
const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses returns the valid statuses in lifecycle order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// Normalize converts the CLI spelling of a status (in-progress) to the
// stored form (in_progress). It does not validate.
func Normalize(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}

// ParseStatus normalizes s and checks it against the closed status set.
func ParseStatus(s string) (Status, error) {
	normalized := Status(Normalize(s))
	if normalized.Valid() {
		return normalized, nil
	}
	return "", clierr.Newf(clierr.InvalidTask,
		"Invalid status: %s. Valid statuses are: %s", s, statusList()).
		WithDetails(map[string]any{
			"status":  s,
			"allowed": Statuses(),
		})
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (s Status) String() string { return string(s) }

func statusList() string {
	all := Statuses()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
