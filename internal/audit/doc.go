// Package audit provides the canonical data model for website audits.
//
// This package contains type definitions and identity helpers only. All
// other internal packages import audit; audit imports nothing internal.
// This keeps the data model the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Every optional signal bundle is a pointer; nil means "not collected"
//     and every downstream stage must degrade to null, never fail
//   - All JSON tags use snake_case
//   - Finding IDs are content-addressed and stable across re-runs of the
//     same rule against the same inputs
package audit
