// Package cli implements the furry-ref command line.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/odvcencio/furry-ref/logging"
	"github.com/odvcencio/furry-ref/report"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Format    string // text | markdown | html | json
	LogFormat string // console | json
	Color     bool
	Style     string

	logger *zap.Logger
}

// Logger returns the logger configured by the root command, or a no-op
// logger when the command runs on its own.
func (o *RootOptions) Logger() *zap.Logger {
	if o.logger == nil {
		return zap.NewNop()
	}
	return o.logger
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// NewRootCommand creates the furry-ref root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "furry-ref",
		Short: "Replay edit scripts through an undo/redo history",
		Long: `furry-ref replays edit scripts against a document and records every
change in an undo/redo history. Scripts are YAML or CUE files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := report.ParseFormat(opts.Format); err != nil {
				return WrapExitError(ExitCommandError, "bad --format", err)
			}
			if !slices.Contains([]string{"console", "json"}, opts.LogFormat) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid log format %q: must be console or json", opts.LogFormat))
			}
			level := "warn"
			if opts.Verbose {
				level = "debug"
			}
			opts.logger = logging.New(logging.LevelFromEnv(level), logging.ParseFormat(opts.LogFormat), cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|markdown|html|json)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "console", "log format (console|json)")
	cmd.PersistentFlags().BoolVar(&opts.Color, "color", false, "highlight JSON snapshots in text output")
	cmd.PersistentFlags().StringVar(&opts.Style, "style", report.DefaultStyle, "highlight style")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}
