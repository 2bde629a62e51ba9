package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
	"github.com/twiced-technology-gmbh/tasktrack/internal/date"
	"github.com/twiced-technology-gmbh/tasktrack/internal/logging"
	"github.com/twiced-technology-gmbh/tasktrack/internal/storage"
)

// File is the on-disk shape of config.yml. Every field is optional.
type File struct {
	Version  int    `yaml:"version" validate:"oneof=0 1"`
	LogLevel string `yaml:"log_level,omitempty" validate:"omitempty,loglevel"`
	Color    *bool  `yaml:"color,omitempty"`
	Output   string `yaml:"output,omitempty" validate:"omitempty,oneof=text table compact json"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		return logging.ValidLevel(fl.Field().String())
	})
	return v
}

// Config is the resolved runtime configuration, built once at startup and
// passed to the components that need it.
type Config struct {
	// TasksDir is the absolute directory holding the storage files.
	TasksDir string
	// Clock supplies "now" for timestamps and today's default file.
	Clock date.Clock
	// LogLevel is the diagnostic log level name.
	LogLevel string
	// Color is false when the settings file disables styling.
	Color bool
	// Output is the default output format, or "" for the built-in default.
	Output string
}

// Options are the inputs Load resolves a Config from.
type Options struct {
	// Dir is the --dir flag value, "" when unset.
	Dir string
	// Getenv reads environment variables. Defaults to os.Getenv.
	Getenv func(string) string
	// Clock defaults to date.SystemClock.
	Clock date.Clock
}

// ConfigPath returns the settings file path.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.TasksDir, ConfigFileName)
}

// FilePath returns the storage file path for d.
func (c *Config) FilePath(d date.Date) string {
	return filepath.Join(c.TasksDir, d.FileName())
}

// DefaultFilePath returns the storage file for today's date.
func (c *Config) DefaultFilePath() string {
	return c.FilePath(date.Today(c.Clock))
}

// ResolveDir picks the tasks directory: the flag, then TASK_DIR, then
// ./tasks. The result is absolute.
func ResolveDir(flagDir string, getenv func(string) string) (string, error) {
	dir := strings.TrimSpace(flagDir)
	if dir == "" && getenv != nil {
		dir = strings.TrimSpace(getenv(EnvDir))
	}
	if dir == "" {
		dir = DefaultTasksDir
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", clierr.Wrap(clierr.InvalidConfig, err, "resolving tasks directory %s: %v", dir, err)
	}
	return abs, nil
}

// Load resolves the tasks directory and reads the optional settings file
// through fs. A missing settings file yields defaults.
func Load(fs *storage.FS, opts Options) (*Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	clock := opts.Clock
	if clock == nil {
		clock = date.SystemClock{}
	}

	dir, err := ResolveDir(opts.Dir, getenv)
	if err != nil {
		return nil, err
	}
	cfg := &Config{TasksDir: dir, Clock: clock, LogLevel: logging.DefaultLevel, Color: true}

	f, err := ReadFile(fs, cfg.ConfigPath())
	if err != nil {
		return nil, err
	}
	if f != nil {
		cfg.apply(f)
	}
	if lvl := strings.TrimSpace(getenv(EnvLogLevel)); lvl != "" {
		cfg.LogLevel = lvl
	}
	return cfg, nil
}

// ReadFile parses and validates the settings file at path. It returns nil,
// nil when the file does not exist.
func ReadFile(fs *storage.FS, path string) (*File, error) {
	exists, err := fs.Exists(path)
	if err != nil || !exists {
		return nil, err
	}
	content, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal([]byte(content), &f); err != nil {
		return nil, clierr.Wrap(clierr.InvalidConfig, err, "parsing %s: %v", path, err).
			WithDetails(map[string]any{"path": path})
	}
	if err := f.Validate(); err != nil {
		return nil, clierr.Wrap(clierr.InvalidConfig, err, "%s: %v", path, err).
			WithDetails(map[string]any{"path": path})
	}
	return &f, nil
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks the settings for errors. A zero version is accepted and
// means the current one.
func (f *File) Validate() error {
	err := validate.Struct(f)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	switch fe := fieldErrs[0]; fe.StructField() {
	case "Version":
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, f.Version, CurrentVersion)
	case "LogLevel":
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalid, f.LogLevel)
	case "Output":
		return fmt.Errorf("%w: output must be one of %s", ErrInvalid, strings.Join(OutputFormats, ", "))
	default:
		return fmt.Errorf("%w: %s", ErrInvalid, fe.Error())
	}
}

func (c *Config) apply(f *File) {
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
	if f.Color != nil {
		c.Color = *f.Color
	}
	c.Output = f.Output
}
