package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasktrack/internal/tui"
)

func newTUICmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops, err := rt.ops()
			if err != nil {
				return err
			}
			model := tui.NewBoard(ops)
			p := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))

			// Without a watcher the board still works; r reloads by hand.
			if w, err := watchCurrentFile(rt, ops, func() { p.Send(tui.ReloadMsg{}) }); err == nil {
				defer w.Close()
				go w.Run(cmd.Context(), nil)
			} else {
				rt.logger.Debug("live reload off", "err", err)
			}

			_, err = p.Run()
			return err
		},
	}
}
