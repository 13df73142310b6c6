package cli

import (
	"github.com/spf13/cobra"

	"github.com/odvcencio/furry-ref/report"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <script>",
		Short: "Replay a script and list the resulting history entries",
		Long: `Replay an edit script and print the undo/redo history it leaves
behind, from the seed to the last redoable entry. The current entry is
marked with '*'.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runHistory(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	result, err := replay(opts, formatter, path, cmd)
	if err != nil {
		return err
	}
	if formatter.JSON() {
		return formatter.Success(result.Entries)
	}
	if err := report.RenderEntries(cmd.OutOrStdout(), result.Entries); err != nil {
		return WrapExitError(ExitFailure, "rendering history", err)
	}
	return nil
}
