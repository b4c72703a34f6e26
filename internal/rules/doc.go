// Package rules maps a normalized audit snapshot to findings.
//
// A rule is a pure function: it inspects one or more signal bundles and
// either abstains (nil) or emits exactly one finding. Rules never mutate
// the audit and never depend on each other; the registry order only fixes
// the order findings are emitted in, not their content. A rule whose
// bundle is absent abstains - partial audits produce partial findings,
// never errors.
//
// Finding IDs are content-addressed over (audit, rule slug, salient
// facts), so re-evaluating the same snapshot always reproduces the same
// IDs. That stability is what makes cross-list dedup at export time safe.
package rules
