// Package config resolves where the task tracker keeps its files and loads
// the optional per-directory settings file.
package config

const (
	// DefaultTasksDir is the tasks directory used when neither --dir nor
	// TASK_DIR is given, relative to the working directory.
	DefaultTasksDir = "tasks"

	// ConfigFileName is the optional settings file inside the tasks directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the settings file schema version.
	CurrentVersion = 1

	// EnvDir overrides the tasks directory.
	EnvDir = "TASK_DIR"
	// EnvLogLevel overrides the configured log level.
	EnvLogLevel = "TASK_LOG_LEVEL"
)

// OutputFormats are the values accepted for the output setting.
var OutputFormats = []string{"text", "table", "compact", "json"}
