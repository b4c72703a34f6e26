package patterns

import (
	"regexp"

	"github.com/sitepulse/siteaudit/internal/audit"
)

// Registry is the compiled, immutable pattern registry. All regexps are
// pre-compiled case-insensitive. Slices preserve CUE source order; callers
// must not mutate them.
type Registry struct {
	Version string

	// Engines is scanned in order; the first engine whose pattern set
	// matches wins.
	Engines []Engine

	// GenericBooking is the fallback booking-form pattern set, consulted
	// only when no named engine matched.
	GenericBooking []*regexp.Regexp

	// CTAs is scanned in order, keeping the highest-priority match.
	// Equal priorities resolve to the earlier table entry.
	CTAs []CTA

	ReviewPlatforms []ReviewPlatform
	Badges          []Badge
	Social          []Social
}

// Engine is one named booking engine with its match patterns.
type Engine struct {
	Name     string
	Type     audit.EngineType
	Patterns []*regexp.Regexp
}

// CTA is one call-to-action phrase with its priority.
type CTA struct {
	Text     string
	Priority int
	Patterns []*regexp.Regexp
}

// ReviewPlatform is one known review platform. Rating and Count are
// optional sub-patterns with one capture group each; nil when the platform
// exposes no parseable rating or count.
type ReviewPlatform struct {
	Name     string
	Patterns []*regexp.Regexp
	Rating   *regexp.Regexp
	Count    *regexp.Regexp
}

// Badge is one trust badge.
type Badge struct {
	Name     string
	Category audit.BadgeCategory
	Patterns []*regexp.Regexp
}

// Social is one social platform profile pattern set.
type Social struct {
	Name     string
	Patterns []*regexp.Regexp
}
