package cmd

import (
	"github.com/spf13/cobra"
)

func newUpdateCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   `update <id> "description"`,
		Short: "Update a task's description",
		Args:  requireArgs("id", "description"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := rt.ops()
			if err != nil {
				return err
			}
			t, err := ops.Update(args[0], args[1])
			if err != nil {
				return err
			}
			return rt.message(cmd.OutOrStdout(), "updated", t, "Task updated successfully")
		},
	}
}
