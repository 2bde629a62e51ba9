package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasktrack/internal/app"
	"github.com/twiced-technology-gmbh/tasktrack/internal/output"
	"github.com/twiced-technology-gmbh/tasktrack/internal/state"
	"github.com/twiced-technology-gmbh/tasktrack/internal/storage"
	"github.com/twiced-technology-gmbh/tasktrack/internal/watcher"
)

func newWatchCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [status]",
		Short: "Print the list again whenever the current file changes",
		Long: `Prints the task list, then prints it again each time the current task file
changes or another file is made current, until interrupted.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := rt.ops()
			if err != nil {
				return err
			}
			filter := ""
			if len(args) > 0 {
				filter = args[0]
			}
			return runWatch(cmd, rt, ops, filter)
		},
	}
}

func runWatch(cmd *cobra.Command, rt *runtime, ops *app.App, filter string) error {
	out := cmd.OutOrStdout()
	render := func() error {
		tasks, err := ops.List(filter)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, dimHeader(ops))
		return output.Tasks(out, rt.format(), tasks)
	}
	// A bad filter or unreadable file fails before watching starts.
	if err := render(); err != nil {
		return err
	}

	changed := make(chan struct{}, 1)
	w, err := watchCurrentFile(rt, ops, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()

	ctx := cmd.Context()
	go w.Run(ctx, func(err error) { rt.logger.Warn("watch error", "err", err) })

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			fmt.Fprintln(out)
			if err := render(); err != nil {
				fmt.Fprintln(out, "Error: "+err.Error())
			}
		}
	}
}

// watchCurrentFile calls changed when the current task file or the pointer
// to it changes. The current file is resolved on every event, so switching
// files retargets the watch.
func watchCurrentFile(rt *runtime, ops *app.App, changed func()) (*watcher.Watcher, error) {
	dir := ops.Config().TasksDir
	if err := storage.New(rt.fs).EnsureDir(dir); err != nil {
		return nil, err
	}
	w, err := watcher.New(dir, changed, watcher.WithMatch(func(name string) bool {
		return name == state.FileName || name == filepath.Base(ops.CurrentFilePath())
	}))
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	return w, nil
}

func dimHeader(ops *app.App) string {
	return "== " + filepath.Base(ops.CurrentFilePath()) + " =="
}
