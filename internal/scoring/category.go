package scoring

import "github.com/sitepulse/siteaudit/internal/audit"

// ScoreCategories buckets findings by category and scores each bucket:
// 100 minus the sum of penalties, clamped to [0,100]. Every category is
// present in the result, empty ones at exactly 100.
func ScoreCategories(findings []audit.Finding) map[audit.Category]audit.CategoryScore {
	scores := make(map[audit.Category]audit.CategoryScore, len(audit.Categories))
	for _, c := range audit.Categories {
		scores[c] = audit.CategoryScore{Category: c, Score: 100, Findings: []audit.Finding{}}
	}

	for _, f := range findings {
		cs, ok := scores[f.Category]
		if !ok {
			// Unknown category: a rule bug, not a scoring concern. Skip
			// rather than invent a seventh bucket.
			continue
		}
		cs.Findings = append(cs.Findings, f)
		cs.Score -= f.Penalty
		if f.Severity == audit.SeverityBlocker {
			cs.BlockerCount++
		}
		scores[f.Category] = cs
	}

	for c, cs := range scores {
		cs.Score = clampScore(cs.Score)
		scores[c] = cs
	}
	return scores
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
