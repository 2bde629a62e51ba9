package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasktrack/internal/output"
	"github.com/twiced-technology-gmbh/tasktrack/internal/prompt"
)

func newCurrentFileCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "current-file",
		Short: "Show the date of the current task file",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops, err := rt.ops()
			if err != nil {
				return err
			}
			cur, err := ops.CurrentFile()
			if err != nil {
				return err
			}
			if rt.format() == output.FormatJSON {
				return output.JSON(cmd.OutOrStdout(), cur)
			}
			output.Messagef(cmd.OutOrStdout(), "Current task file: %s", cur.Label)
			return nil
		},
	}
}

func newSetFileDateCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   `set-file-date "YYYY-MM-DD"`,
		Short: "Select a file by date",
		Long:  "Makes the existing task file for the given date current for later commands. The file is never created.",
		Args:  requireArgs("date (YYYY-MM-DD)"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := rt.ops()
			if err != nil {
				return err
			}
			d, err := ops.SwitchFileByDate(args[0])
			if err != nil {
				return err
			}
			return rt.message(cmd.OutOrStdout(), "switched", map[string]string{"date": d.String()},
				"Switched to tasks file for date: %s", d)
		},
	}
}

func newClearCmd(rt *runtime) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all tasks",
		Long:  "Removes every task from the current task file after a y/n confirmation read from stdin.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops, err := rt.ops()
			if err != nil {
				return err
			}
			var c prompt.Confirmer = prompt.NewLineConfirmer(cmd.InOrStdin(), rt.stderr)
			if yes {
				c = prompt.Always(true)
			}
			if err := ops.ClearAll(c); err != nil {
				return err
			}
			return rt.message(cmd.OutOrStdout(), "cleared", nil, "All tasks cleared successfully")
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}
