package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitepulse/siteaudit/internal/export"
	"github.com/sitepulse/siteaudit/internal/pipeline"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Database    string
	PatternsDir string
	SkipScoring bool

	// BatchGenerator allows overriding the batch ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	BatchGenerator export.BatchIDGenerator
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <audit-file>...",
		Short: "Score audits and export them to the warehouse",
		Long: `Score one or more normalized audit files and export the results to a
SQLite warehouse.

Each audit is scored (unless --skip-scoring is set), flattened into its
row set, and written in one transaction. Re-exporting an audit replaces
its previous rows. A failing audit does not interrupt the rest of the
batch; the batch summary reports per-audit outcomes.

Example:
  siteaudit export --db ./warehouse.db audit1.json audit2.yaml
  siteaudit export --db ./warehouse.db --skip-scoring prescored.json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite warehouse (required)")
	cmd.Flags().StringVar(&opts.PatternsDir, "patterns", "", "directory with a CUE pattern registry (default: embedded registry)")
	cmd.Flags().BoolVar(&opts.SkipScoring, "skip-scoring", false, "export audits as-is without running the scoring pipeline")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runExport(opts *ExportOptions, auditPaths []string, cmd *cobra.Command) error {
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

	audits, err := LoadAudits(auditPaths)
	if err != nil {
		_ = formatter.Error(ErrCodeAuditFile, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load audits", err)
	}
	formatter.VerboseLog("Loaded %d audit(s)", len(audits))

	if !opts.SkipScoring {
		for _, a := range audits {
			if _, err := pipeline.Run(a, pipeline.Options{Registry: reg}); err != nil {
				_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return WrapExitError(ExitFailure, fmt.Sprintf("scoring audit %s failed", a.AuditID), err)
			}
		}
	}

	w, err := export.OpenWarehouse(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeWarehouse, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open warehouse", err)
	}
	defer w.Close()

	exporter := export.NewExporter(w, opts.BatchGenerator, nil, nil)
	batch, err := exporter.ExportBatch(cmd.Context(), audits)
	if err != nil {
		_ = formatter.Error(ErrCodeWarehouse, err.Error(), nil)
		return WrapExitError(ExitCommandError, "export batch aborted", err)
	}

	if formatter.Format == "json" {
		if err := formatter.SuccessJSON(batch); err != nil {
			return err
		}
	} else {
		printBatchSummary(formatter, batch)
	}

	if batch.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d audit(s) failed to export", batch.Failed, len(batch.Results)))
	}
	return nil
}

func printBatchSummary(formatter *OutputFormatter, batch export.BatchResult) {
	w := formatter.Writer
	fmt.Fprintf(w, "Batch %s: %d succeeded, %d failed\n", batch.BatchID, batch.Succeeded, batch.Failed)
	for _, r := range batch.Results {
		if r.Success {
			fmt.Fprintf(w, "  ✓ %s\n", r.AuditID)
		} else {
			fmt.Fprintf(w, "  ✗ %s: %s\n", r.AuditID, r.Error)
		}
	}
}
