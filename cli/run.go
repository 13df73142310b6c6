package cli

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/odvcencio/furry-ref/logging"
	"github.com/odvcencio/furry-ref/report"
	"github.com/odvcencio/furry-ref/script"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Replay a script and report every step",
		Long: `Replay an edit script against its seed document.

Prints one row per step with the history position after the step,
followed by the final document.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runScript(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	format, err := report.ParseFormat(opts.Format)
	if err != nil {
		return WrapExitError(ExitCommandError, "bad --format", err)
	}

	result, err := replay(opts, formatter, path, cmd)
	if err != nil {
		return err
	}

	if format == report.FormatJSON {
		return formatter.Success(result)
	}
	out := cmd.OutOrStdout()
	if err := report.Render(out, result, format); err != nil {
		return WrapExitError(ExitFailure, "rendering report", err)
	}
	logging.For(opts.Logger(), logging.ComponentReport).Debugw("rendered report",
		"format", format, "frames", len(result.Frames))
	if opts.Color && format == report.FormatText {
		if err := report.Highlight(out, result.Final, opts.Style); err != nil {
			return WrapExitError(ExitFailure, "highlighting final document", err)
		}
	}
	return nil
}

// replay loads and runs a script, reporting failures through formatter.
func replay(opts *RootOptions, formatter *OutputFormatter, path string, cmd *cobra.Command) (*script.Result, error) {
	s, err := loadScript(formatter, path)
	if err != nil {
		return nil, err
	}
	formatter.VerboseLog("Loaded %s: %d step(s)", path, len(s.Steps))

	result, err := script.Run(cmd.Context(), s, script.Options{
		Logger: opts.Logger().Named(logging.ComponentScript),
	})
	if err != nil {
		_ = formatter.Error(ErrCodeRun, err.Error(), nil)
		return nil, WrapExitError(ExitFailure, ErrCodeRun, err)
	}
	return result, nil
}

func loadScript(formatter *OutputFormatter, path string) (*script.Script, error) {
	s, err := script.Load(path)
	if err == nil {
		return s, nil
	}

	var verr *script.ValidationError
	switch {
	case errors.As(err, &verr):
		_ = formatter.Error(ErrCodeValidation, verr.Error(), verr.Details())
		return nil, WrapExitError(ExitFailure, ErrCodeValidation, err)
	case errors.Is(err, fs.ErrNotExist):
		_ = formatter.Error(ErrCodeNotFound, "script not found: "+path, nil)
		return nil, WrapExitError(ExitCommandError, ErrCodeNotFound, err)
	default:
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, ErrCodeGeneric, err)
	}
}
