package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasktrack/internal/output"
)

func newListCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "list [todo|in-progress|done]",
		Aliases: []string{"ls"},
		Short:   "List tasks in the current file",
		Long:    "Lists the tasks of the current task file in the order they were added, optionally only those with one status.",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := rt.ops()
			if err != nil {
				return err
			}
			filter := ""
			if len(args) > 0 {
				filter = args[0]
			}
			tasks, err := ops.List(filter)
			if err != nil {
				return err
			}
			return output.Tasks(cmd.OutOrStdout(), rt.format(), tasks)
		},
	}
}

func newListFilesCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list-files",
		Short: "List all available task files",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops, err := rt.ops()
			if err != nil {
				return err
			}
			files, err := ops.ListFiles()
			if err != nil {
				return err
			}
			return output.Files(cmd.OutOrStdout(), rt.format(), files)
		},
	}
}
