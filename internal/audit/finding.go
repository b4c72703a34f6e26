package audit

// Category is the fixed set of audit categories. Every finding belongs to
// exactly one; the scorer emits all six even when empty.
type Category string

const (
	CategoryConversion  Category = "conversion"
	CategoryTrust       Category = "trust"
	CategoryPerformance Category = "performance"
	CategorySEO         Category = "seo"
	CategoryMobile      Category = "mobile"
	CategorySecurity    Category = "security"
)

// Categories lists all categories in fixed display order. The slice must
// not be mutated.
var Categories = []Category{
	CategoryConversion,
	CategoryTrust,
	CategoryPerformance,
	CategorySEO,
	CategoryMobile,
	CategorySecurity,
}

// Severity orders findings by how badly they hurt their category.
type Severity string

const (
	SeverityBlocker Severity = "blocker"
	SeverityMajor   Severity = "major"
	SeverityMinor   Severity = "minor"
	SeverityTrivial Severity = "trivial"
)

// SeverityRank returns a sort rank, blocker first. Unknown severities sort
// last.
func SeverityRank(s Severity) int {
	switch s {
	case SeverityBlocker:
		return 0
	case SeverityMajor:
		return 1
	case SeverityMinor:
		return 2
	case SeverityTrivial:
		return 3
	}
	return 4
}

// Effort estimates how much work a fix takes.
type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// Finding is a single scored, evidenced issue attributed to one category.
//
// A Finding is immutable once produced. Its ID is content-addressed over
// the rule that produced it and the audit it was produced for, so the same
// rule evaluated against the same inputs always yields the same ID. The
// same ID appearing in two lists refers to the same logical finding.
type Finding struct {
	ID         string   `json:"id" yaml:"id"`
	Category   Category `json:"category" yaml:"category"`
	Severity   Severity `json:"severity" yaml:"severity"`
	Title      string   `json:"title" yaml:"title"`
	Impact     float64  `json:"impact" yaml:"impact"`         // [0,1]
	Confidence float64  `json:"confidence" yaml:"confidence"` // [0,1]
	Penalty    float64  `json:"penalty" yaml:"penalty"`       // points off the category score
	Evidence   []string `json:"evidence,omitempty" yaml:"evidence,omitempty"`
	Fix        string   `json:"fix,omitempty" yaml:"fix,omitempty"`
	Effort     Effort   `json:"effort" yaml:"effort"`
	Tags       []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}
