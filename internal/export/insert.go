package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// timeFormat is the canonical TEXT encoding for timestamp columns.
// RFC 3339 with nanoseconds sorts lexicographically in UTC.
const timeFormat = time.RFC3339Nano

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode timestamp %q: %w", s, err)
	}
	return t, nil
}

// encodeList serializes a string list column as JSON text. A nil list
// stores as NULL.
func encodeList(list []string) (any, error) {
	if list == nil {
		return nil, nil
	}
	data, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("encode list: %w", err)
	}
	return string(data), nil
}

func decodeList(s sql.NullString) ([]string, error) {
	if !s.Valid {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(s.String), &list); err != nil {
		return nil, fmt.Errorf("decode list %q: %w", s.String, err)
	}
	return list, nil
}

// Insert writes one row set in a single transaction. The audit row and
// every child row commit together or not at all.
//
// Inserting an audit_id that already exists fails with a constraint
// error; use Replace to overwrite a prior export.
func (w *Warehouse) Insert(ctx context.Context, rows RowSet) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert row set: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := insertRowSet(ctx, tx, rows); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert row set: commit: %w", err)
	}
	return nil
}

// Replace overwrites any prior export of the same audit: the existing
// audit row and all of its child rows are deleted, then the new row set
// is inserted, in one transaction. Re-exporting an audit is therefore
// idempotent at the warehouse level.
func (w *Warehouse) Replace(ctx context.Context, rows RowSet) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace row set: begin tx: %w", err)
	}
	defer tx.Rollback()

	// Child rows cascade from the audits delete.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM audits WHERE audit_id = ?`, rows.Audit.AuditID,
	); err != nil {
		return fmt.Errorf("replace row set: delete existing: %w", err)
	}

	if err := insertRowSet(ctx, tx, rows); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace row set: commit: %w", err)
	}
	return nil
}

func insertRowSet(ctx context.Context, tx *sql.Tx, rows RowSet) error {
	if err := insertAudit(ctx, tx, rows.Audit); err != nil {
		return err
	}
	for _, f := range rows.Findings {
		if err := insertFinding(ctx, tx, f); err != nil {
			return err
		}
	}
	for _, p := range rows.CrawlPages {
		if err := insertCrawlPage(ctx, tx, p); err != nil {
			return err
		}
	}
	for _, s := range rows.BookingSteps {
		if err := insertBookingStep(ctx, tx, s); err != nil {
			return err
		}
	}
	for _, r := range rows.Replays {
		if err := insertReplay(ctx, tx, r); err != nil {
			return err
		}
	}
	for _, e := range rows.ModuleErrors {
		if err := insertModuleError(ctx, tx, e); err != nil {
			return err
		}
	}
	for _, o := range rows.Opportunities {
		if err := insertOpportunity(ctx, tx, o); err != nil {
			return err
		}
	}
	return nil
}

func insertAudit(ctx context.Context, tx *sql.Tx, row AuditRow) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO audits (
			audit_id, domain, status, generated_at, inserted_at,
			campaign_source, campaign_medium, campaign_name,
			overall_score, projected_score, projected_score_with_product,
			conversion_loss_percent, scoring_version,
			conversion_score, trust_score, performance_score,
			seo_score, mobile_score, security_score, blocker_count,
			perf_score_mobile, perf_score_desktop, lcp_ms_mobile, cls_mobile,
			pages_crawled,
			booking_engine_name, booking_engine_type, booking_engine_confidence,
			cta_found, cta_location, clicks_to_book, friction_score,
			reviews_found, review_rating, review_count,
			trust_signal_score, trust_badge_count,
			https, indexable, has_viewport_meta,
			error_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		row.AuditID,
		row.Domain,
		row.Status,
		encodeTime(row.GeneratedAt),
		encodeTime(row.InsertedAt),
		row.CampaignSource,
		row.CampaignMedium,
		row.CampaignName,
		row.OverallScore,
		row.ProjectedScore,
		row.ProjectedScoreWithProduct,
		row.ConversionLossPercent,
		row.ScoringVersion,
		row.ConversionScore,
		row.TrustScore,
		row.PerformanceScore,
		row.SEOScore,
		row.MobileScore,
		row.SecurityScore,
		row.BlockerCount,
		row.PerfScoreMobile,
		row.PerfScoreDesktop,
		row.LCPMsMobile,
		row.CLSMobile,
		row.PagesCrawled,
		row.BookingEngineName,
		row.BookingEngineType,
		row.BookingEngineConfidence,
		row.CTAFound,
		row.CTALocation,
		row.ClicksToBook,
		row.FrictionScore,
		row.ReviewsFound,
		row.ReviewRating,
		row.ReviewCount,
		row.TrustSignals,
		row.TrustBadgeCount,
		row.HTTPS,
		row.Indexable,
		row.HasViewportMeta,
		row.ErrorCount,
	)
	if err != nil {
		return fmt.Errorf("insert audit %s: %w", row.AuditID, err)
	}
	return nil
}

func insertFinding(ctx context.Context, tx *sql.Tx, row FindingRow) error {
	evidence, err := encodeList(row.Evidence)
	if err != nil {
		return fmt.Errorf("insert finding %s: %w", row.FindingID, err)
	}
	tags, err := encodeList(row.Tags)
	if err != nil {
		return fmt.Errorf("insert finding %s: %w", row.FindingID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO audit_findings (
			audit_id, finding_id, category, severity, title,
			impact, confidence, penalty, evidence, fix, effort, tags,
			is_top_issue, is_fast_win, ranking, inserted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		row.AuditID,
		row.FindingID,
		row.Category,
		row.Severity,
		row.Title,
		row.Impact,
		row.Confidence,
		row.Penalty,
		evidence,
		row.Fix,
		row.Effort,
		tags,
		row.IsTopIssue,
		row.IsFastWin,
		row.Ranking,
		encodeTime(row.InsertedAt),
	)
	if err != nil {
		return fmt.Errorf("insert finding %s: %w", row.FindingID, err)
	}
	return nil
}

func insertCrawlPage(ctx context.Context, tx *sql.Tx, row CrawlPageRow) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO crawl_pages (
			audit_id, url, title, status_code, load_time_ms,
			cta_count, above_fold_cta_count, form_count,
			trust_element_count, policy_link_count,
			script_count, stylesheet_count, image_count, inserted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		row.AuditID,
		row.URL,
		row.Title,
		row.StatusCode,
		row.LoadTimeMs,
		row.CTACount,
		row.AboveFoldCTACount,
		row.FormCount,
		row.TrustElementCount,
		row.PolicyLinkCount,
		row.ScriptCount,
		row.StylesheetCount,
		row.ImageCount,
		encodeTime(row.InsertedAt),
	)
	if err != nil {
		return fmt.Errorf("insert crawl page %s: %w", row.URL, err)
	}
	return nil
}

func insertBookingStep(ctx context.Context, tx *sql.Tx, row BookingStepRow) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO booking_steps (
			audit_id, step_index, url, description, duration_ms, inserted_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`,
		row.AuditID,
		row.StepIndex,
		row.URL,
		row.Description,
		row.DurationMs,
		encodeTime(row.InsertedAt),
	)
	if err != nil {
		return fmt.Errorf("insert booking step %d: %w", row.StepIndex, err)
	}
	return nil
}

func insertReplay(ctx context.Context, tx *sql.Tx, row SessionReplayRow) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO session_replays (
			audit_id, url, storage_key, duration_ms, inserted_at
		) VALUES (?, ?, ?, ?, ?)
	`,
		row.AuditID,
		row.URL,
		row.StorageKey,
		row.DurationMs,
		encodeTime(row.InsertedAt),
	)
	if err != nil {
		return fmt.Errorf("insert session replay %s: %w", row.StorageKey, err)
	}
	return nil
}

func insertModuleError(ctx context.Context, tx *sql.Tx, row ModuleErrorRow) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO module_errors (
			audit_id, module, severity, message, retriable, inserted_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`,
		row.AuditID,
		row.Module,
		row.Severity,
		row.Message,
		row.Retriable,
		encodeTime(row.InsertedAt),
	)
	if err != nil {
		return fmt.Errorf("insert module error %s: %w", row.Module, err)
	}
	return nil
}

func insertOpportunity(ctx context.Context, tx *sql.Tx, row LighthouseOpportunityRow) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO lighthouse_opportunities (
			audit_id, strategy, opportunity_id, title, description,
			estimated_savings_ms, inserted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		row.AuditID,
		row.Strategy,
		row.OpportunityID,
		row.Title,
		row.Description,
		row.EstimatedSavingsMs,
		encodeTime(row.InsertedAt),
	)
	if err != nil {
		return fmt.Errorf("insert opportunity %s: %w", row.OpportunityID, err)
	}
	return nil
}
