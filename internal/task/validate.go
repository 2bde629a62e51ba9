package task

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
)

// MaxDescriptionLength is the longest description accepted, in characters,
// after trimming.
const MaxDescriptionLength = 500

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateDescription trims d and checks that it is non-empty and at most
// MaxDescriptionLength characters. It returns the trimmed form.
func ValidateDescription(d string) (string, error) {
	trimmed := strings.TrimSpace(d)
	if err := validate.Var(trimmed, "required"); err != nil {
		return "", clierr.New(clierr.InvalidTask, "Description cannot be empty").
			WithDetails(map[string]any{"description": d})
	}
	if err := validate.Var(trimmed, "max=500"); err != nil {
		return "", clierr.Newf(clierr.InvalidTask,
			"Description cannot exceed %d characters (got %d)",
			MaxDescriptionLength, len([]rune(trimmed))).
			WithDetails(map[string]any{
				"length": len([]rune(trimmed)),
				"max":    MaxDescriptionLength,
			})
	}
	return trimmed, nil
}

// ValidateID checks that id has the canonical UUID shape
// (8-4-4-4-12 hex digits). Malformed ids are rejected before any lookup.
func ValidateID(id string) error {
	if err := validate.Var(id, "required,uuid"); err != nil {
		return clierr.Newf(clierr.InvalidTaskID,
			"Invalid task ID format: %q. Expected a UUID such as c2a01015-c3c2-4605-930b-cdcaf5ff16ca", id).
			WithDetails(map[string]any{"input": id})
	}
	return nil
}

// CanonicalID returns id in the lowercase form new ids are generated in.
func CanonicalID(id string) string {
	return strings.ToLower(id)
}

// NotFound returns the TaskNotFound error for a well-formed id that is absent.
func NotFound(id string) *clierr.Error {
	return clierr.Newf(clierr.TaskNotFound, "Task with ID %s not found", id).
		WithDetails(map[string]any{"id": id})
}
