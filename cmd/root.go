// Package cmd implements the task CLI commands.
package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/tasktrack/internal/app"
	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
	"github.com/twiced-technology-gmbh/tasktrack/internal/config"
	"github.com/twiced-technology-gmbh/tasktrack/internal/date"
	"github.com/twiced-technology-gmbh/tasktrack/internal/filelock"
	"github.com/twiced-technology-gmbh/tasktrack/internal/logging"
	"github.com/twiced-technology-gmbh/tasktrack/internal/output"
	"github.com/twiced-technology-gmbh/tasktrack/internal/storage"
)

// version is set at build time via ldflags.
var version = "dev"

const usageText = `Task Tracker CLI - Usage

Commands:
  add "description"                    Add a new task
  update <id> "description"            Update a task's description
  delete <id>                          Delete a task (alias: rm)
  mark-in-progress <id>                Mark a task as in progress
  mark-done <id>                       Mark a task as done
  list [status]                        List all tasks, optionally filtered by status (alias: ls)
  list-files                           List all available task files
  current-file                         Show the date of the current task file
  clear                                Clear all tasks
  set-file-date "YYYY-MM-DD"           Select a file by date
  watch                                Print the list again whenever the current file changes
  tui                                  Open the interactive board

Arguments:
  <id>                                 UUID of the task
  "description"                        Description of the task

Status values for list:
  todo                                 Show only todo tasks
  in-progress                          Show only in-progress tasks
  done                                 Show only done tasks

Global flags:
  --dir <path>                         Tasks directory (default: $TASK_DIR, then ./tasks)
  --json | --table | --compact         Output format (default: $TASK_OUTPUT, then text)
  --no-color                           Disable styling

Examples:
  task add "Buy groceries"
  task update c2a01015-c3c2-4605-930b-cdcaf5ff16ca "Buy groceries and cook dinner"
  task delete c2a01015-c3c2-4605-930b-cdcaf5ff16ca
  task mark-in-progress c2a01015-c3c2-4605-930b-cdcaf5ff16ca
  task mark-done c2a01015-c3c2-4605-930b-cdcaf5ff16ca
  task list
  task list done
  task list in-progress
  task list todo
  task list-files
  task current-file
  task clear
  task set-file-date "2024-06-15"
`

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	json    bool
	table   bool
	compact bool
	dir     string
	noColor bool
}

// runtime carries the process collaborators a command tree runs against.
// Everything is explicit so the tree can run in-process under test.
type runtime struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	fs     afero.Fs
	clock  date.Clock
	getenv func(string) string
	lock   bool

	flags globalFlags

	cfg    *config.Config
	app    *app.App
	logger *log.Logger
}

// Option configures an in-process run.
type Option func(*runtime)

// WithStdin sets the stream the clear prompt reads from.
func WithStdin(r io.Reader) Option { return func(rt *runtime) { rt.stdin = r } }

// WithStderr sets where prompts and diagnostics go.
func WithStderr(w io.Writer) Option { return func(rt *runtime) { rt.stderr = w } }

// WithClock sets the clock used for timestamps and today's file.
func WithClock(c date.Clock) Option { return func(rt *runtime) { rt.clock = c } }

// WithEnv replaces environment lookups.
func WithEnv(getenv func(string) string) Option { return func(rt *runtime) { rt.getenv = getenv } }

// WithFs runs against fs instead of the OS filesystem. Cross-process
// locking is only available on the OS filesystem and is turned off.
func WithFs(fs afero.Fs) Option {
	return func(rt *runtime) {
		rt.fs = fs
		rt.lock = false
	}
}

func newRuntime(opts ...Option) *runtime {
	rt := &runtime{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: io.Discard,
		fs:     afero.NewOsFs(),
		clock:  date.SystemClock{},
		getenv: os.Getenv,
		lock:   true,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

func newRootCmd(rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:                "task",
		Short:              "Track tasks in date-stamped JSON files",
		Version:            version,
		SilenceErrors:      true,
		SilenceUsage:       true,
		// Unknown first tokens and flags land here instead of failing, and print help.
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), usageText)
			return err
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(rt.stdout)
	root.SetErr(rt.stderr)
	root.SetIn(rt.stdin)

	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(c *cobra.Command, args []string) {
		if c == root {
			fmt.Fprint(c.OutOrStdout(), usageText)
			return
		}
		defaultHelp(c, args)
	})

	pf := root.PersistentFlags()
	pf.BoolVar(&rt.flags.json, "json", false, "output as JSON")
	pf.BoolVar(&rt.flags.table, "table", false, "output as table")
	pf.BoolVar(&rt.flags.compact, "compact", false, "compact one-line-per-record output")
	pf.BoolVar(&rt.flags.compact, "oneline", false, "alias for --compact")
	pf.StringVar(&rt.flags.dir, "dir", "", "path to the tasks directory")
	pf.BoolVar(&rt.flags.noColor, "no-color", false, "disable color output")
	root.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "directory" {
			name = "dir"
		}
		return pflag.NormalizedName(name)
	})

	root.AddCommand(
		newAddCmd(rt),
		newUpdateCmd(rt),
		newDeleteCmd(rt),
		newMarkInProgressCmd(rt),
		newMarkDoneCmd(rt),
		newListCmd(rt),
		newListFilesCmd(rt),
		newCurrentFileCmd(rt),
		newClearCmd(rt),
		newSetFileDateCmd(rt),
		newWatchCmd(rt),
		newTUICmd(rt),
	)
	return root
}

// ops loads the configuration on first use and returns the App for it.
func (rt *runtime) ops() (*app.App, error) {
	if rt.app != nil {
		return rt.app, nil
	}
	fs := storage.New(rt.fs)
	cfg, err := config.Load(fs, config.Options{Dir: rt.flags.dir, Getenv: rt.getenv, Clock: rt.clock})
	if err != nil {
		return nil, err
	}
	rt.cfg = cfg
	rt.logger = logging.New(rt.stderr, cfg.LogLevel)

	if rt.flags.noColor || rt.getenv("NO_COLOR") != "" || !cfg.Color || !isTerminal(rt.stdout) {
		output.DisableColor()
	}

	opts := []app.Option{app.WithLogger(rt.logger)}
	if rt.lock {
		opts = append(opts, app.WithLocker(filelock.Dir(cfg.TasksDir)))
	}
	rt.app = app.New(cfg, fs, opts...)
	rt.logger.Debug("configured", "tasks_dir", cfg.TasksDir, "current", rt.app.CurrentFilePath())
	return rt.app, nil
}

// format returns the output format from flags, TASK_OUTPUT, and config.
func (rt *runtime) format() output.Format {
	fallback := ""
	if rt.cfg != nil {
		fallback = rt.cfg.Output
	}
	return output.Detect(rt.flags.json, rt.flags.table, rt.flags.compact, rt.getenv(output.EnvOutput), fallback)
}

func (rt *runtime) jsonMode() bool {
	return rt.format() == output.FormatJSON
}

// message prints a mutation's success text, or its JSON envelope.
func (rt *runtime) message(w io.Writer, status string, data any, format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if rt.format() == output.FormatJSON {
		return output.JSON(w, output.Result{Status: status, Message: text, Data: data})
	}
	output.Messagef(w, "%s", text)
	return nil
}

func execute(ctx context.Context, rt *runtime, args []string) error {
	root := newRootCmd(rt)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// writeError renders err as "Error: <message>", or as the JSON error
// envelope in JSON mode.
func writeError(w io.Writer, err error, jsonMode bool) {
	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) {
		cliErr = clierr.Wrap(clierr.InternalError, err, "%v", err)
	}
	if jsonMode {
		output.JSONError(w, cliErr.Code, cliErr.Message, cliErr.Details)
		return
	}
	fmt.Fprintln(w, "Error: "+cliErr.Message)
}

// Dispatch runs args in-process and returns what the command printed. A
// failure is rendered into the returned text as "Error: <message>" and is
// also returned so callers can inspect its kind.
func Dispatch(ctx context.Context, args []string, opts ...Option) (string, error) {
	var buf bytes.Buffer
	rt := newRuntime(append([]Option{func(rt *runtime) { rt.stdout = &buf }}, opts...)...)
	err := execute(ctx, rt, args)
	if err != nil {
		writeError(&buf, err, rt.jsonMode())
	}
	return buf.String(), err
}

// Execute runs the CLI against the process environment and exits.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	rt := newRuntime(WithStderr(os.Stderr))
	err := execute(ctx, rt, os.Args[1:])
	stop()
	if err == nil {
		return
	}

	if rt.jsonMode() {
		writeError(os.Stdout, err, true)
	} else {
		writeError(os.Stderr, err, false)
	}
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
