// Package detect classifies one page's rendered HTML into structured fact
// records.
//
// Detectors are pure functions of (html, registry). They never fail:
// malformed or hostile HTML produces a fully-populated fact record whose
// unmatched signals read false/zero. Structured-data parsing is wrapped so
// a bad JSON-LD block is skipped and detection falls through to the next
// strategy.
//
// The heavy pattern tables live in internal/patterns; this package keeps
// only the small fixed pattern families (date pickers, contact channels,
// legal pages) that are detector mechanics rather than configuration.
package detect
