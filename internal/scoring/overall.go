package scoring

import (
	"fmt"
	"time"

	"github.com/sitepulse/siteaudit/internal/audit"
)

// ScorerVersion stamps every ScoringOutput. Bump on any change to
// weights, thresholds, or selection rules.
const ScorerVersion = "1.4.0"

// CategoryWeights blends category scores into the overall score. The
// weights sum to 1.0 and bias toward conversion and trust, the two
// categories most directly tied to booking revenue. The map must not be
// mutated.
var CategoryWeights = map[audit.Category]float64{
	audit.CategoryConversion:  0.30,
	audit.CategoryTrust:       0.20,
	audit.CategoryPerformance: 0.15,
	audit.CategorySEO:         0.15,
	audit.CategoryMobile:      0.10,
	audit.CategorySecurity:    0.10,
}

// productUpliftPoints is the fixed additional improvement assumed when the
// audited product's own remediation is applied on top of the fixes.
const productUpliftPoints = 5.0

// Compute assembles the complete scoring output for one audit's findings.
//
// The projected score re-runs the category blend with every finding's
// penalty zeroed: it is "the score if everything found here were fixed".
// Both projected values are guaranteed >= the overall score and <= 100.
func Compute(a *audit.NormalizedAudit, findings []audit.Finding, patternsVersion string, now time.Time) audit.ScoringOutput {
	categoryScores := ScoreCategories(findings)

	overall := weightedBlend(categoryScores)
	projected := projectedScore(findings)
	if projected < overall {
		projected = overall
	}
	withProduct := clampScore(projected + productUpliftPoints)
	if withProduct < projected {
		withProduct = projected
	}

	version := ScorerVersion
	if patternsVersion != "" {
		version = fmt.Sprintf("%s+patterns.%s", ScorerVersion, patternsVersion)
	}

	return audit.ScoringOutput{
		OverallScore:              overall,
		ProjectedScore:            projected,
		ProjectedScoreWithProduct: withProduct,
		EstimatedImpact:           EstimateImpact(findings),
		CategoryScores:            categoryScores,
		TopIssues:                 TopIssues(findings),
		FastWins:                  FastWins(findings),
		GeneratedAt:               now.UTC(),
		Version:                   version,
	}
}

func weightedBlend(scores map[audit.Category]audit.CategoryScore) float64 {
	var overall float64
	for _, c := range audit.Categories {
		overall += scores[c].Score * CategoryWeights[c]
	}
	return clampScore(overall)
}

// projectedScore is the weighted blend with every penalty zeroed. Each
// category recovers to 100, so the blend does too; the recomputation is
// kept explicit so a future non-fixable penalty class only changes one
// place.
func projectedScore(findings []audit.Finding) float64 {
	zeroed := make([]audit.Finding, len(findings))
	copy(zeroed, findings)
	for i := range zeroed {
		zeroed[i].Penalty = 0
	}
	return weightedBlend(ScoreCategories(zeroed))
}
