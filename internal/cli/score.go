package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sitepulse/siteaudit/internal/audit"
	"github.com/sitepulse/siteaudit/internal/patterns"
	"github.com/sitepulse/siteaudit/internal/pipeline"
)

// ScoreOptions holds flags for the score command.
type ScoreOptions struct {
	*RootOptions
	PatternsDir string
}

// NewScoreCommand creates the score command.
func NewScoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "score <audit-file>",
		Short: "Score a normalized audit",
		Long: `Score a normalized audit file (JSON or YAML).

Runs signal detection against the crawled HTML, evaluates the finding
rules, and computes category and overall scores. The scoring output is
printed; the input file is not modified.

Example:
  siteaudit score audit.json
  siteaudit score --patterns ./registry audit.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.PatternsDir, "patterns", "", "directory with a CUE pattern registry (default: embedded registry)")

	return cmd
}

func runScore(opts *ScoreOptions, auditPath string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	reg, err := loadRegistry(opts.PatternsDir)
	if err != nil {
		_ = formatter.Error(ErrCodeRegistry, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load pattern registry", err)
	}

	a, err := LoadAudit(auditPath)
	if err != nil {
		_ = formatter.Error(ErrCodeAuditFile, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load audit", err)
	}
	formatter.VerboseLog("Loaded audit %s (%s)", a.AuditID, a.Domain)

	out, err := pipeline.Run(a, pipeline.Options{Registry: reg})
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "scoring failed", err)
	}

	if formatter.Format == "json" {
		return formatter.SuccessJSON(out)
	}
	printScoreSummary(formatter, a, out)
	return nil
}

func printScoreSummary(formatter *OutputFormatter, a *audit.NormalizedAudit, out audit.ScoringOutput) {
	w := formatter.Writer
	fmt.Fprintf(w, "Audit %s (%s)\n", a.AuditID, a.Domain)
	fmt.Fprintf(w, "Overall score:   %.1f\n", out.OverallScore)
	fmt.Fprintf(w, "Projected score: %.1f (with product: %.1f)\n",
		out.ProjectedScore, out.ProjectedScoreWithProduct)
	fmt.Fprintf(w, "Est. conversion loss: %.1f%%\n", out.EstimatedImpact.ConversionLossPercent)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Category scores:")
	for _, c := range audit.Categories {
		cs := out.CategoryScores[c]
		fmt.Fprintf(w, "  %-12s %6.1f  (%d findings", c, cs.Score, len(cs.Findings))
		if cs.BlockerCount > 0 {
			fmt.Fprintf(w, ", %d blockers", cs.BlockerCount)
		}
		fmt.Fprintln(w, ")")
	}

	if len(out.TopIssues) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Top issues:")
		for i, f := range out.TopIssues {
			fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, f.Severity, f.Title)
		}
	}
	if len(out.FastWins) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Fast wins:")
		for i, f := range out.FastWins {
			fmt.Fprintf(w, "  %d. %s\n", i+1, f.Title)
		}
	}
}

// loadRegistry resolves the pattern registry: a directory override when
// given, the embedded default otherwise.
func loadRegistry(dir string) (*patterns.Registry, error) {
	if dir == "" {
		return patterns.Default(), nil
	}
	return patterns.LoadDir(dir)
}

// configureLogging installs the process-wide slog handler. Diagnostics go
// to stderr so JSON output on stdout stays parseable.
func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
