package rules

import (
	"github.com/sitepulse/siteaudit/internal/audit"
)

// Rule is one named finding rule. Slug is the stable identifier that
// salts the finding ID; it never changes once shipped.
type Rule struct {
	Slug     string
	Category audit.Category
	Evaluate func(a *audit.NormalizedAudit) *audit.Finding
}

// All lists every rule in declaration order. The slice is append-only and
// must not be mutated; registry order fixes emission order only, each rule
// is independent of the others.
var All = concat(
	conversionRules,
	trustRules,
	performanceRules,
	seoRules,
	mobileRules,
	securityRules,
)

func concat(groups ...[]Rule) []Rule {
	var all []Rule
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}

// EvaluateAll runs every rule against the audit and collects the emitted
// findings in registry order. The audit is read-only throughout.
func EvaluateAll(a *audit.NormalizedAudit) []audit.Finding {
	var findings []audit.Finding
	for _, r := range All {
		if f := r.Evaluate(a); f != nil {
			findings = append(findings, *f)
		}
	}
	return findings
}

// finding assembles a Finding with its content-addressed ID. facts must
// hold only strings, ints, bools, and arrays/maps thereof.
func finding(a *audit.NormalizedAudit, slug string, facts map[string]any, f audit.Finding) *audit.Finding {
	f.ID = audit.MustFindingID(a.AuditID, slug, facts)
	return &f
}
