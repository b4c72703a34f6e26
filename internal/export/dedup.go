package export

import (
	"time"

	"github.com/sitepulse/siteaudit/internal/audit"
)

// mergedFinding carries one deduplicated finding with its list
// memberships resolved.
type mergedFinding struct {
	finding    audit.Finding
	isTopIssue bool
	isFastWin  bool
	ranking    *int
}

// mergeFindings deduplicates findings across the category lists,
// topIssues, and fastWins into one entry per unique ID, preserving first-
// insertion order.
//
// Insertion order is category findings (fixed category order), then
// topIssues, then fastWins. A later insertion with a known ID overwrites
// the payload - safe, because an ID is definitionally the same finding -
// but keeps the entry's original position.
//
// Ranking precedence is fixed: an ID present in topIssues takes its
// 1-based topIssues rank even when it also appears in fastWins.
func mergeFindings(scoring *audit.ScoringOutput) []mergedFinding {
	if scoring == nil {
		return nil
	}

	var order []string
	byID := make(map[string]*mergedFinding)

	insert := func(f audit.Finding) *mergedFinding {
		m, ok := byID[f.ID]
		if !ok {
			m = &mergedFinding{}
			byID[f.ID] = m
			order = append(order, f.ID)
		}
		m.finding = f
		return m
	}

	for _, c := range audit.Categories {
		for _, f := range scoring.CategoryScores[c].Findings {
			insert(f)
		}
	}
	for i, f := range scoring.TopIssues {
		m := insert(f)
		m.isTopIssue = true
		rank := i + 1
		m.ranking = &rank
	}
	for i, f := range scoring.FastWins {
		m := insert(f)
		m.isFastWin = true
		if m.ranking == nil {
			rank := i + 1
			m.ranking = &rank
		}
	}

	merged := make([]mergedFinding, 0, len(order))
	for _, id := range order {
		merged = append(merged, *byID[id])
	}
	return merged
}

// findingRows flattens the merged findings into rows.
func findingRows(auditID string, scoring *audit.ScoringOutput, insertedAt time.Time) []FindingRow {
	var rows []FindingRow
	for _, m := range mergeFindings(scoring) {
		rows = append(rows, FindingRow{
			AuditID:    auditID,
			FindingID:  m.finding.ID,
			Category:   string(m.finding.Category),
			Severity:   string(m.finding.Severity),
			Title:      m.finding.Title,
			Impact:     m.finding.Impact,
			Confidence: m.finding.Confidence,
			Penalty:    m.finding.Penalty,
			Evidence:   m.finding.Evidence,
			Fix:        m.finding.Fix,
			Effort:     string(m.finding.Effort),
			Tags:       m.finding.Tags,
			IsTopIssue: m.isTopIssue,
			IsFastWin:  m.isFastWin,
			Ranking:    m.ranking,
			InsertedAt: insertedAt,
		})
	}
	return rows
}
