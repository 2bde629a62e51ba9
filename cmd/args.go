package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
)

// requireArgs checks that the named positional arguments are present and
// names the missing ones. Extra arguments are ignored.
func requireArgs(names ...string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) >= len(names) {
			return nil
		}
		missing := names[len(args):]
		msg := "Missing required argument: " + missing[0]
		if len(missing) > 1 {
			msg = "Missing required arguments: " + strings.Join(missing, " and ")
		}
		return clierr.New(clierr.MissingArgument, msg).
			WithDetails(map[string]any{"missing": missing})
	}
}
