// Package patterns provides the versioned detector pattern registry.
//
// All detector pattern tables - booking engines, call-to-action phrases,
// review platforms, trust badges, social platforms - are data, not code.
// They are authored in CUE, compiled once into an immutable Registry, and
// handed to the detectors. Adding an engine or a badge is a registry edit;
// detector logic never changes.
//
// A default registry ships embedded in the binary (registry.cue). An
// operator can point the CLI at a directory of override CUE files instead;
// overrides replace the embedded registry wholesale rather than merging.
//
// Ordering matters and is preserved from the CUE source: booking-engine
// detection returns the first matching engine, and equal-priority CTA
// matches resolve to the first entry in table order.
package patterns
