package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sitepulse/siteaudit/internal/audit"
)

func openTestWarehouse(t *testing.T) *Warehouse {
	t.Helper()
	path := filepath.Join(t.TempDir(), "warehouse.db")
	w, err := OpenWarehouse(path)
	if err != nil {
		t.Fatalf("OpenWarehouse() failed: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w
}

// sampleRowSet builds a small but fully populated row set.
func sampleRowSet(auditID string) RowSet {
	f1 := audit.Finding{
		ID:         "finding-a",
		Category:   audit.CategoryConversion,
		Severity:   audit.SeverityBlocker,
		Title:      "No booking engine detected",
		Impact:     0.9,
		Confidence: 0.9,
		Penalty:    30,
		Evidence:   []string{"no engine patterns matched"},
		Fix:        "Install an embedded booking engine",
		Effort:     audit.EffortHigh,
	}
	f2 := audit.Finding{
		ID:         "finding-b",
		Category:   audit.CategorySEO,
		Severity:   audit.SeverityMinor,
		Title:      "Missing meta description",
		Impact:     0.4,
		Confidence: 0.9,
		Penalty:    6,
		Effort:     audit.EffortLow,
	}

	s := scoringWith(f1, f2)
	s.TopIssues = []audit.Finding{f1}
	s.FastWins = []audit.Finding{f2}

	rating := 4.5
	a := &audit.NormalizedAudit{
		AuditID:     auditID,
		Domain:      "example.com",
		Status:      audit.StatusComplete,
		GeneratedAt: time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC),
		Scoring:     s,
		Crawl: &audit.CrawlSignals{
			PagesCrawled: 2,
			Pages: []audit.CrawlPage{
				{URL: "https://example.com/", StatusCode: 200, LoadTimeMs: 812},
				{URL: "https://example.com/rooms", StatusCode: 200, LoadTimeMs: 640},
			},
		},
		Booking: &audit.BookingSignals{
			Facts: audit.BookingFacts{ClicksToBook: 4, FrictionScore: 20},
			Steps: []audit.BookingStep{{URL: "https://example.com/book", DurationMs: 1200}},
		},
		Trust: &audit.TrustSignals{
			Facts: audit.TrustFacts{
				Reviews:    audit.ReviewFacts{Found: true, Source: audit.ReviewPlatform, Rating: &rating},
				TrustScore: 60,
			},
		},
		Errors: []audit.ModuleError{
			{Module: "performance", Severity: audit.ModuleErrorWarn, Message: "lighthouse timeout", Retriable: true},
		},
	}
	return Transform(a, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
}

func TestOpenWarehouse_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehouse.db")

	w, err := OpenWarehouse(path)
	if err != nil {
		t.Fatalf("OpenWarehouse() failed: %v", err)
	}
	defer w.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpenWarehouse_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehouse.db")

	for i := 0; i < 3; i++ {
		w, err := OpenWarehouse(path)
		if err != nil {
			t.Fatalf("OpenWarehouse() iteration %d failed: %v", i, err)
		}
		w.Close()
	}

	w, err := OpenWarehouse(path)
	if err != nil {
		t.Fatalf("final OpenWarehouse() failed: %v", err)
	}
	defer w.Close()

	tables := []string{
		"audits", "audit_findings", "crawl_pages", "booking_steps",
		"session_replays", "module_errors", "lighthouse_opportunities",
	}
	for _, table := range tables {
		var name string
		err := w.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found after idempotent opens: %v", table, err)
		}
	}
}

func TestOpenWarehouse_Pragmas(t *testing.T) {
	w := openTestWarehouse(t)

	if err := w.verifyPragma("journal_mode", "wal"); err != nil {
		t.Error(err)
	}
	if err := w.verifyPragma("foreign_keys", "1"); err != nil {
		t.Error(err)
	}
}

func TestOpenWarehouse_SchemaVersion(t *testing.T) {
	w := openTestWarehouse(t)

	var version int
	if err := w.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("query user_version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("user_version = %d, expected %d", version, currentSchemaVersion)
	}
}

func TestInsertAndReadAudit(t *testing.T) {
	w := openTestWarehouse(t)
	ctx := context.Background()
	rows := sampleRowSet("aud-roundtrip")

	if err := w.Insert(ctx, rows); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	got, err := w.ReadAudit(ctx, "aud-roundtrip")
	if err != nil {
		t.Fatalf("ReadAudit() failed: %v", err)
	}

	if got.Domain != "example.com" {
		t.Errorf("domain = %q, expected %q", got.Domain, "example.com")
	}
	if got.OverallScore == nil || *got.OverallScore != 90 {
		t.Errorf("overall_score = %v, expected 90", got.OverallScore)
	}
	if got.ReviewRating == nil || *got.ReviewRating != 4.5 {
		t.Errorf("review_rating = %v, expected 4.5", got.ReviewRating)
	}
	if got.PerfScoreMobile != nil {
		t.Errorf("perf_score_mobile = %v, expected NULL", got.PerfScoreMobile)
	}
	if !got.InsertedAt.Equal(rows.Audit.InsertedAt) {
		t.Errorf("inserted_at = %v, expected %v", got.InsertedAt, rows.Audit.InsertedAt)
	}
	if got.ErrorCount != 1 {
		t.Errorf("error_count = %d, expected 1", got.ErrorCount)
	}
}

func TestInsertDuplicateAuditFails(t *testing.T) {
	w := openTestWarehouse(t)
	ctx := context.Background()
	rows := sampleRowSet("aud-dup")

	if err := w.Insert(ctx, rows); err != nil {
		t.Fatalf("first Insert() failed: %v", err)
	}
	if err := w.Insert(ctx, rows); err == nil {
		t.Error("second Insert() of same audit_id should fail, got nil")
	}
}

func TestReadFindingsRoundtrip(t *testing.T) {
	w := openTestWarehouse(t)
	ctx := context.Background()

	if err := w.Insert(ctx, sampleRowSet("aud-f")); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	findings, err := w.ReadFindings(ctx, "aud-f")
	if err != nil {
		t.Fatalf("ReadFindings() failed: %v", err)
	}
	if len(findings) != 2 {
		t.Fatalf("got %d findings, expected 2", len(findings))
	}

	// Deterministic ordering by finding_id.
	if findings[0].FindingID != "finding-a" || findings[1].FindingID != "finding-b" {
		t.Errorf("findings out of order: %q, %q", findings[0].FindingID, findings[1].FindingID)
	}

	a := findings[0]
	if !a.IsTopIssue || a.IsFastWin {
		t.Errorf("finding-a flags = top:%v fast:%v, expected top only", a.IsTopIssue, a.IsFastWin)
	}
	if a.Ranking == nil || *a.Ranking != 1 {
		t.Errorf("finding-a ranking = %v, expected 1", a.Ranking)
	}
	if len(a.Evidence) != 1 || a.Evidence[0] != "no engine patterns matched" {
		t.Errorf("finding-a evidence = %v", a.Evidence)
	}

	b := findings[1]
	if b.IsTopIssue || !b.IsFastWin {
		t.Errorf("finding-b flags = top:%v fast:%v, expected fast only", b.IsTopIssue, b.IsFastWin)
	}
	if b.Evidence != nil {
		t.Errorf("finding-b evidence = %v, expected nil for NULL column", b.Evidence)
	}
}

func TestReadFindingsEmptyAudit(t *testing.T) {
	w := openTestWarehouse(t)
	ctx := context.Background()

	a := &audit.NormalizedAudit{
		AuditID:     "aud-empty",
		Domain:      "example.com",
		Status:      audit.StatusPartial,
		GeneratedAt: time.Now().UTC(),
	}
	if err := w.Insert(ctx, Transform(a, time.Now())); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	findings, err := w.ReadFindings(ctx, "aud-empty")
	if err != nil {
		t.Fatalf("ReadFindings() failed: %v", err)
	}
	if findings == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(findings) != 0 {
		t.Errorf("got %d findings, expected 0", len(findings))
	}
}

func TestReplaceOverwritesPriorExport(t *testing.T) {
	w := openTestWarehouse(t)
	ctx := context.Background()

	if err := w.Insert(ctx, sampleRowSet("aud-r")); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	// Re-export a slimmer version of the same audit.
	slim := &audit.NormalizedAudit{
		AuditID:     "aud-r",
		Domain:      "example.com",
		Status:      audit.StatusPartial,
		GeneratedAt: time.Now().UTC(),
		Scoring: scoringWith(audit.Finding{
			ID:       "finding-c",
			Category: audit.CategorySEO,
			Severity: audit.SeverityMinor,
			Penalty:  6,
			Effort:   audit.EffortLow,
		}),
	}
	if err := w.Replace(ctx, Transform(slim, time.Now())); err != nil {
		t.Fatalf("Replace() failed: %v", err)
	}

	got, err := w.ReadAudit(ctx, "aud-r")
	if err != nil {
		t.Fatalf("ReadAudit() after replace failed: %v", err)
	}
	if got.Status != "partial" {
		t.Errorf("status = %q, expected %q after replace", got.Status, "partial")
	}

	counts, err := w.CountChildRows(ctx, "aud-r")
	if err != nil {
		t.Fatalf("CountChildRows() failed: %v", err)
	}
	if counts["audit_findings"] != 1 {
		t.Errorf("audit_findings = %d, expected 1 (old findings removed)", counts["audit_findings"])
	}
	if counts["crawl_pages"] != 0 {
		t.Errorf("crawl_pages = %d, expected 0 (old pages removed)", counts["crawl_pages"])
	}
	if counts["module_errors"] != 0 {
		t.Errorf("module_errors = %d, expected 0", counts["module_errors"])
	}
}

func TestReplaceOnEmptyWarehouse(t *testing.T) {
	w := openTestWarehouse(t)
	ctx := context.Background()

	// Replace with no prior export behaves like a plain insert.
	if err := w.Replace(ctx, sampleRowSet("aud-new")); err != nil {
		t.Fatalf("Replace() on fresh warehouse failed: %v", err)
	}
	if _, err := w.ReadAudit(ctx, "aud-new"); err != nil {
		t.Fatalf("ReadAudit() failed: %v", err)
	}
}

func TestListAuditIDs(t *testing.T) {
	w := openTestWarehouse(t)
	ctx := context.Background()

	older := sampleRowSet("aud-older")
	older.Audit.InsertedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	newer := sampleRowSet("aud-newer")
	newer.Audit.InsertedAt = time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	if err := w.Insert(ctx, older); err != nil {
		t.Fatalf("Insert(older) failed: %v", err)
	}
	if err := w.Insert(ctx, newer); err != nil {
		t.Fatalf("Insert(newer) failed: %v", err)
	}

	ids, err := w.ListAuditIDs(ctx, "example.com")
	if err != nil {
		t.Fatalf("ListAuditIDs() failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "aud-newer" || ids[1] != "aud-older" {
		t.Errorf("ids = %v, expected newest first", ids)
	}

	none, err := w.ListAuditIDs(ctx, "other.example")
	if err != nil {
		t.Fatalf("ListAuditIDs(other) failed: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty slice for unknown domain, got %v", none)
	}
}
