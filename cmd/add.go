package cmd

import (
	"github.com/spf13/cobra"
)

func newAddCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   `add "description"`,
		Short: "Add a new task",
		Long:  "Adds a todo task to the current task file, creating the file on first use.",
		Args:  requireArgs("description"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := rt.ops()
			if err != nil {
				return err
			}
			t, err := ops.Add(args[0])
			if err != nil {
				return err
			}
			return rt.message(cmd.OutOrStdout(), "added", t, "Task added successfully (UUID: %s)", t.ID)
		},
	}
}
