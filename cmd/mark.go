package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

func newMarkInProgressCmd(rt *runtime) *cobra.Command {
	return newMarkCmd(rt, "mark-in-progress", "Mark a task as in progress", task.StatusInProgress,
		"Task marked as in progress")
}

func newMarkDoneCmd(rt *runtime) *cobra.Command {
	return newMarkCmd(rt, "mark-done", "Mark a task as done", task.StatusDone, "Task marked as done")
}

func newMarkCmd(rt *runtime, name, short string, status task.Status, success string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <id>",
		Short: short,
		Args:  requireArgs("id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := rt.ops()
			if err != nil {
				return err
			}
			var t task.Task
			if status == task.StatusDone {
				t, err = ops.MarkDone(args[0])
			} else {
				t, err = ops.MarkInProgress(args[0])
			}
			if err != nil {
				return err
			}
			return rt.message(cmd.OutOrStdout(), string(status), t, "%s", success)
		},
	}
}
