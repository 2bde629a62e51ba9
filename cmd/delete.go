package cmd

import (
	"github.com/spf13/cobra"
)

func newDeleteCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    requireArgs("id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := rt.ops()
			if err != nil {
				return err
			}
			t, err := ops.Delete(args[0])
			if err != nil {
				return err
			}
			return rt.message(cmd.OutOrStdout(), "deleted", t, "Task deleted successfully")
		},
	}
}
