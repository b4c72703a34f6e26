package scoring

import (
	"slices"
	"strings"

	"github.com/sitepulse/siteaudit/internal/audit"
)

// Per-finding conversion-loss contribution in percentage points, by
// severity, scaled by impact*confidence. The total is capped: stacked
// heuristics must not claim the site converts nobody.
var severityLossPoints = map[audit.Severity]float64{
	audit.SeverityBlocker: 8,
	audit.SeverityMajor:   4,
	audit.SeverityMinor:   1.5,
	audit.SeverityTrivial: 0.5,
}

const maxConversionLossPercent = 35.0

const maxImpactContributors = 3

// EstimateImpact estimates how much booking conversion the findings are
// costing, with the finding IDs that contribute most.
func EstimateImpact(findings []audit.Finding) audit.EstimatedImpact {
	type contribution struct {
		id     string
		points float64
	}

	var total float64
	contribs := make([]contribution, 0, len(findings))
	for _, f := range findings {
		points := severityLossPoints[f.Severity] * f.Impact * f.Confidence
		if points <= 0 {
			continue
		}
		total += points
		contribs = append(contribs, contribution{id: f.ID, points: points})
	}

	if total > maxConversionLossPercent {
		total = maxConversionLossPercent
	}

	slices.SortStableFunc(contribs, func(a, b contribution) int {
		if a.points != b.points {
			if a.points > b.points {
				return -1
			}
			return 1
		}
		return strings.Compare(a.id, b.id)
	})
	if len(contribs) > maxImpactContributors {
		contribs = contribs[:maxImpactContributors]
	}

	out := audit.EstimatedImpact{ConversionLossPercent: total}
	for _, c := range contribs {
		out.TopContributors = append(out.TopContributors, c.id)
	}
	return out
}
