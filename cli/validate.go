package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/furry-ref/logging"
	"github.com/odvcencio/furry-ref/script"
)

// ValidationResult describes one checked script.
type ValidationResult struct {
	File  string `json:"file"`
	Valid bool   `json:"valid"`
	Name  string `json:"name,omitempty"`
	Steps int    `json:"steps,omitempty"`
	Error string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <script>...",
		Short: "Check scripts against the schema without running them",
		Long: `Validate edit scripts against the embedded CUE schema.

Every path is parsed as well, so a script that validates will not fail
on a malformed path when it runs.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	log := logging.For(opts.Logger(), logging.ComponentCLI)

	results := make([]ValidationResult, 0, len(paths))
	code := ExitSuccess
	for _, path := range paths {
		formatter.VerboseLog("Validating %s", path)
		s, err := script.Load(path)
		if err != nil {
			log.Debugw("validation failed", "file", path, "error", err)
			res := ValidationResult{File: path, Error: err.Error()}
			var verr *script.ValidationError
			if errors.As(err, &verr) {
				res.Error = verr.Details()
				code = max(code, ExitFailure)
			} else {
				// Unreadable files are argument errors, not invalid scripts.
				code = ExitCommandError
			}
			results = append(results, res)
			continue
		}
		results = append(results, ValidationResult{File: path, Valid: true, Name: s.Name, Steps: len(s.Steps)})
	}

	if formatter.JSON() {
		if code == ExitSuccess {
			if err := formatter.Success(results); err != nil {
				return err
			}
		} else {
			_ = formatter.Error(ErrCodeValidation, "invalid scripts", results)
		}
	} else {
		out := cmd.OutOrStdout()
		for _, res := range results {
			if res.Valid {
				fmt.Fprintf(out, "✓ %s (%s, %d steps)\n", res.File, res.Name, res.Steps)
			} else {
				fmt.Fprintf(out, "✗ %s\n  %s\n", res.File, res.Error)
			}
		}
	}

	if code != ExitSuccess {
		return NewExitError(code, fmt.Sprintf("%s: %d of %d script(s) invalid", ErrCodeValidation, countInvalid(results), len(results)))
	}
	return nil
}

func countInvalid(results []ValidationResult) int {
	n := 0
	for _, res := range results {
		if !res.Valid {
			n++
		}
	}
	return n
}
