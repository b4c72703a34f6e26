package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitepulse/siteaudit/internal/patterns"
)

// ValidationResult holds pattern-registry validation results.
type ValidationResult struct {
	Valid   bool              `json:"valid"`
	Version string            `json:"version,omitempty"`
	Counts  map[string]int    `json:"counts,omitempty"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// ValidationError is one registry validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <patterns-dir>",
		Short: "Validate a CUE pattern registry",
		Long: `Validate a CUE pattern registry directory without scoring anything.

Compiles the registry: checks the document shape, engine types, badge
categories, and that every pattern is a valid regular expression.

Example:
  siteaudit validate ./registry
  siteaudit validate ./registry --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	reg, err := patterns.LoadDir(dir)
	if err != nil {
		return outputValidationFailure(formatter, err)
	}

	formatter.VerboseLog("Compiled registry version %s from %s", reg.Version, dir)

	result := ValidationResult{
		Valid:   true,
		Version: reg.Version,
		Counts: map[string]int{
			"engines":          len(reg.Engines),
			"ctas":             len(reg.CTAs),
			"review_platforms": len(reg.ReviewPlatforms),
			"badges":           len(reg.Badges),
			"social":           len(reg.Social),
		},
	}

	if formatter.Format == "json" {
		return formatter.SuccessJSON(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Registry valid (version %s)\n", reg.Version)
	fmt.Fprintf(formatter.Writer, "  engines: %d, ctas: %d, review platforms: %d, badges: %d, social: %d\n",
		result.Counts["engines"], result.Counts["ctas"],
		result.Counts["review_platforms"], result.Counts["badges"], result.Counts["social"])
	return nil
}

func outputValidationFailure(formatter *OutputFormatter, err error) error {
	vErr := ValidationError{Field: "registry", Message: err.Error()}

	var compileErr *patterns.CompileError
	if errors.As(err, &compileErr) {
		vErr.Field = compileErr.Field
		vErr.Message = compileErr.Message
		if compileErr.Pos.IsValid() {
			vErr.File = compileErr.Pos.Filename()
			vErr.Line = compileErr.Pos.Line()
		}
	}

	if formatter.Format == "json" {
		result := ValidationResult{Valid: false, Errors: []ValidationError{vErr}}
		if err := formatter.ErrorJSON(result, ErrCodeRegistry, vErr.Message); err != nil {
			return err
		}
		return NewExitError(ExitFailure, "registry validation failed")
	}

	fmt.Fprintln(formatter.Writer, "✗ Registry validation failed")
	if vErr.File != "" {
		fmt.Fprintf(formatter.Writer, "  %s:%d\n", vErr.File, vErr.Line)
	}
	fmt.Fprintf(formatter.Writer, "  %s: %s\n", vErr.Field, vErr.Message)
	return NewExitError(ExitFailure, "registry validation failed")
}
