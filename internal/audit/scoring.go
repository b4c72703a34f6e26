package audit

import "time"

// CategoryScore aggregates one category's findings.
type CategoryScore struct {
	Category     Category  `json:"category" yaml:"category"`
	Score        float64   `json:"score" yaml:"score"` // [0,100]
	BlockerCount int       `json:"blocker_count" yaml:"blocker_count"`
	Findings     []Finding `json:"findings" yaml:"findings"`
}

// EstimatedImpact is the conversion-loss estimate attached to the scoring
// output: how much booking conversion the detected issues are costing, and
// which findings contribute most.
type EstimatedImpact struct {
	ConversionLossPercent float64  `json:"conversion_loss_percent" yaml:"conversion_loss_percent"`
	TopContributors       []string `json:"top_contributors,omitempty" yaml:"top_contributors,omitempty"`
}

// ScoringOutput is the complete scoring result for one audit.
//
// CategoryScores always contains every category, even when a category has
// no findings. TopIssues and FastWins may overlap with category findings
// and with each other; overlap is resolved at export time by finding ID.
type ScoringOutput struct {
	OverallScore              float64                    `json:"overall_score" yaml:"overall_score"`
	ProjectedScore            float64                    `json:"projected_score" yaml:"projected_score"`
	ProjectedScoreWithProduct float64                    `json:"projected_score_with_product" yaml:"projected_score_with_product"`
	EstimatedImpact           EstimatedImpact            `json:"estimated_impact" yaml:"estimated_impact"`
	CategoryScores            map[Category]CategoryScore `json:"category_scores" yaml:"category_scores"`
	TopIssues                 []Finding                  `json:"top_issues" yaml:"top_issues"`
	FastWins                  []Finding                  `json:"fast_wins" yaml:"fast_wins"`
	GeneratedAt               time.Time                  `json:"generated_at" yaml:"generated_at"`
	Version                   string                     `json:"version" yaml:"version"`
}
