package export

import (
	"context"
	"database/sql"
	"fmt"
)

// ReadAudit retrieves the wide audit row by ID.
// Returns sql.ErrNoRows if not found.
func (w *Warehouse) ReadAudit(ctx context.Context, auditID string) (AuditRow, error) {
	row := w.db.QueryRowContext(ctx, `
		SELECT audit_id, domain, status, generated_at, inserted_at,
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
		FROM audits
		WHERE audit_id = ?
	`, auditID)

	var (
		a                       AuditRow
		generatedAt, insertedAt string
	)
	err := row.Scan(
		&a.AuditID, &a.Domain, &a.Status, &generatedAt, &insertedAt,
		&a.CampaignSource, &a.CampaignMedium, &a.CampaignName,
		&a.OverallScore, &a.ProjectedScore, &a.ProjectedScoreWithProduct,
		&a.ConversionLossPercent, &a.ScoringVersion,
		&a.ConversionScore, &a.TrustScore, &a.PerformanceScore,
		&a.SEOScore, &a.MobileScore, &a.SecurityScore, &a.BlockerCount,
		&a.PerfScoreMobile, &a.PerfScoreDesktop, &a.LCPMsMobile, &a.CLSMobile,
		&a.PagesCrawled,
		&a.BookingEngineName, &a.BookingEngineType, &a.BookingEngineConfidence,
		&a.CTAFound, &a.CTALocation, &a.ClicksToBook, &a.FrictionScore,
		&a.ReviewsFound, &a.ReviewRating, &a.ReviewCount,
		&a.TrustSignals, &a.TrustBadgeCount,
		&a.HTTPS, &a.Indexable, &a.HasViewportMeta,
		&a.ErrorCount,
	)
	if err != nil {
		return AuditRow{}, fmt.Errorf("read audit %s: %w", auditID, err)
	}

	if a.GeneratedAt, err = decodeTime(generatedAt); err != nil {
		return AuditRow{}, fmt.Errorf("read audit %s: %w", auditID, err)
	}
	if a.InsertedAt, err = decodeTime(insertedAt); err != nil {
		return AuditRow{}, fmt.Errorf("read audit %s: %w", auditID, err)
	}
	return a, nil
}

// ReadFindings returns every finding row for an audit with deterministic
// ordering: ORDER BY finding_id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if the audit has no findings.
func (w *Warehouse) ReadFindings(ctx context.Context, auditID string) ([]FindingRow, error) {
	rows, err := w.db.QueryContext(ctx, `
		SELECT audit_id, finding_id, category, severity, title,
			impact, confidence, penalty, evidence, fix, effort, tags,
			is_top_issue, is_fast_win, ranking, inserted_at
		FROM audit_findings
		WHERE audit_id = ?
		ORDER BY finding_id COLLATE BINARY ASC
	`, auditID)
	if err != nil {
		return nil, fmt.Errorf("query findings: %w", err)
	}
	defer rows.Close()

	var findings []FindingRow
	for rows.Next() {
		var (
			f              FindingRow
			evidence, tags sql.NullString
			insertedAt     string
		)
		err := rows.Scan(
			&f.AuditID, &f.FindingID, &f.Category, &f.Severity, &f.Title,
			&f.Impact, &f.Confidence, &f.Penalty, &evidence, &f.Fix,
			&f.Effort, &tags, &f.IsTopIssue, &f.IsFastWin, &f.Ranking,
			&insertedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan finding: %w", err)
		}
		if f.Evidence, err = decodeList(evidence); err != nil {
			return nil, fmt.Errorf("scan finding %s: %w", f.FindingID, err)
		}
		if f.Tags, err = decodeList(tags); err != nil {
			return nil, fmt.Errorf("scan finding %s: %w", f.FindingID, err)
		}
		if f.InsertedAt, err = decodeTime(insertedAt); err != nil {
			return nil, fmt.Errorf("scan finding %s: %w", f.FindingID, err)
		}
		findings = append(findings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate findings: %w", err)
	}

	if findings == nil {
		findings = []FindingRow{}
	}
	return findings, nil
}

// ListAuditIDs returns the IDs of every exported audit for a domain,
// most recent insert first; ties break on audit_id for determinism.
func (w *Warehouse) ListAuditIDs(ctx context.Context, domain string) ([]string, error) {
	rows, err := w.db.QueryContext(ctx, `
		SELECT audit_id FROM audits
		WHERE domain = ?
		ORDER BY inserted_at DESC, audit_id COLLATE BINARY ASC
	`, domain)
	if err != nil {
		return nil, fmt.Errorf("query audit ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan audit id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit ids: %w", err)
	}

	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// CountChildRows returns per-table row counts for one audit. Used by the
// inspect command and by tests verifying replace semantics.
func (w *Warehouse) CountChildRows(ctx context.Context, auditID string) (map[string]int, error) {
	tables := []string{
		"audit_findings",
		"crawl_pages",
		"booking_steps",
		"session_replays",
		"module_errors",
		"lighthouse_opportunities",
	}

	counts := make(map[string]int, len(tables))
	for _, table := range tables {
		var n int
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE audit_id = ?", table)
		if err := w.db.QueryRowContext(ctx, query, auditID).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}
