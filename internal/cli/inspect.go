package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitepulse/siteaudit/internal/export"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Database string
	Domain   string
}

// inspectResult is the payload for one inspected audit.
type inspectResult struct {
	Audit     export.AuditRow     `json:"audit"`
	Findings  []export.FindingRow `json:"findings"`
	RowCounts map[string]int      `json:"row_counts"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect [audit-id]",
		Short: "Inspect exported audits in the warehouse",
		Long: `Inspect the warehouse: show one exported audit with its findings and
child-row counts, or list audit IDs for a domain with --domain.

Example:
  siteaudit inspect --db ./warehouse.db 7f9c2ba4e88f827d
  siteaudit inspect --db ./warehouse.db --domain seasidehotel.example`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite warehouse (required)")
	cmd.Flags().StringVar(&opts.Domain, "domain", "", "list audit IDs exported for a domain")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runInspect(opts *InspectOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Domain == "" && len(args) == 0 {
		return NewExitError(ExitCommandError, "provide an audit id or --domain")
	}

	w, err := export.OpenWarehouse(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeWarehouse, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open warehouse", err)
	}
	defer w.Close()

	ctx := cmd.Context()

	if opts.Domain != "" {
		ids, err := w.ListAuditIDs(ctx, opts.Domain)
		if err != nil {
			_ = formatter.Error(ErrCodeWarehouse, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to list audits", err)
		}
		if formatter.Format == "json" {
			return formatter.SuccessJSON(map[string]any{"domain": opts.Domain, "audit_ids": ids})
		}
		fmt.Fprintf(formatter.Writer, "%d audit(s) for %s:\n", len(ids), opts.Domain)
		for _, id := range ids {
			fmt.Fprintf(formatter.Writer, "  %s\n", id)
		}
		return nil
	}

	auditID := args[0]
	row, err := w.ReadAudit(ctx, auditID)
	if err != nil {
		_ = formatter.Error(ErrCodeWarehouse, err.Error(), nil)
		return WrapExitError(ExitCommandError, fmt.Sprintf("audit %s not found", auditID), err)
	}
	findings, err := w.ReadFindings(ctx, auditID)
	if err != nil {
		_ = formatter.Error(ErrCodeWarehouse, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read findings", err)
	}
	counts, err := w.CountChildRows(ctx, auditID)
	if err != nil {
		_ = formatter.Error(ErrCodeWarehouse, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to count child rows", err)
	}

	result := inspectResult{Audit: row, Findings: findings, RowCounts: counts}
	if formatter.Format == "json" {
		return formatter.SuccessJSON(result)
	}
	printInspectSummary(formatter, result)
	return nil
}

func printInspectSummary(formatter *OutputFormatter, r inspectResult) {
	w := formatter.Writer
	fmt.Fprintf(w, "Audit %s (%s) - %s\n", r.Audit.AuditID, r.Audit.Domain, r.Audit.Status)
	fmt.Fprintf(w, "Exported at %s\n", r.Audit.InsertedAt.Format("2006-01-02 15:04:05 MST"))
	if r.Audit.OverallScore != nil {
		fmt.Fprintf(w, "Overall score: %.1f\n", *r.Audit.OverallScore)
	} else {
		fmt.Fprintln(w, "Overall score: (not scored)")
	}

	fmt.Fprintf(w, "\n%d finding(s):\n", len(r.Findings))
	for _, f := range r.Findings {
		marker := " "
		if f.IsTopIssue {
			marker = "!"
		}
		fmt.Fprintf(w, "  %s [%s/%s] %s\n", marker, f.Category, f.Severity, f.Title)
	}

	fmt.Fprintln(w, "\nChild rows:")
	for _, table := range []string{
		"audit_findings", "crawl_pages", "booking_steps",
		"session_replays", "module_errors", "lighthouse_opportunities",
	} {
		fmt.Fprintf(w, "  %-24s %d\n", table, r.RowCounts[table])
	}
}
