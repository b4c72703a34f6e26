package scoring

import (
	"slices"
	"strings"

	"github.com/sitepulse/siteaudit/internal/audit"
)

// List lengths for the ranked selections.
const (
	maxTopIssues = 5
	maxFastWins  = 5
)

// fastWinMinImpact filters fast-win candidates: a fix must be low effort
// AND worth doing.
const fastWinMinImpact = 0.4

// TopIssues ranks all findings by how badly they hurt: severity first,
// then penalty, then impact, with the finding ID as the final tie-break so
// the order is total and reproducible.
func TopIssues(findings []audit.Finding) []audit.Finding {
	ranked := make([]audit.Finding, len(findings))
	copy(ranked, findings)

	slices.SortStableFunc(ranked, func(a, b audit.Finding) int {
		if d := audit.SeverityRank(a.Severity) - audit.SeverityRank(b.Severity); d != 0 {
			return d
		}
		if a.Penalty != b.Penalty {
			if a.Penalty > b.Penalty {
				return -1
			}
			return 1
		}
		if a.Impact != b.Impact {
			if a.Impact > b.Impact {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})

	if len(ranked) > maxTopIssues {
		ranked = ranked[:maxTopIssues]
	}
	return ranked
}

// FastWins selects high-impact, low-effort findings, ordered by impact
// then penalty then ID. A finding may appear in both TopIssues and
// FastWins; overlap is resolved by ID at export time.
func FastWins(findings []audit.Finding) []audit.Finding {
	var wins []audit.Finding
	for _, f := range findings {
		if f.Effort == audit.EffortLow && f.Impact >= fastWinMinImpact {
			wins = append(wins, f)
		}
	}

	slices.SortStableFunc(wins, func(a, b audit.Finding) int {
		if a.Impact != b.Impact {
			if a.Impact > b.Impact {
				return -1
			}
			return 1
		}
		if a.Penalty != b.Penalty {
			if a.Penalty > b.Penalty {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})

	if len(wins) > maxFastWins {
		wins = wins[:maxFastWins]
	}
	return wins
}
