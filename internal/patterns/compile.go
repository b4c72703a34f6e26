package patterns

import (
	"fmt"
	"regexp"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/sitepulse/siteaudit/internal/audit"
)

// rawRegistry mirrors the CUE document shape. Decoded first, then
// validated and compiled into a Registry.
type rawRegistry struct {
	Version         string              `json:"version"`
	Engines         []rawEngine         `json:"engines"`
	GenericBooking  []string            `json:"generic_booking"`
	CTAs            []rawCTA            `json:"ctas"`
	ReviewPlatforms []rawReviewPlatform `json:"review_platforms"`
	Badges          []rawBadge          `json:"badges"`
	Social          []rawSocial         `json:"social"`
}

type rawEngine struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Patterns []string `json:"patterns"`
}

type rawCTA struct {
	Text     string   `json:"text"`
	Priority int      `json:"priority"`
	Patterns []string `json:"patterns"`
}

type rawReviewPlatform struct {
	Name          string   `json:"name"`
	Patterns      []string `json:"patterns"`
	RatingPattern string   `json:"rating_pattern,omitempty"`
	CountPattern  string   `json:"count_pattern,omitempty"`
}

type rawBadge struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Patterns []string `json:"patterns"`
}

type rawSocial struct {
	Name     string   `json:"name"`
	Patterns []string `json:"patterns"`
}

var validEngineTypes = map[string]audit.EngineType{
	"embedded": audit.EngineEmbedded,
	"redirect": audit.EngineRedirect,
	"native":   audit.EngineNative,
}

var validBadgeCategories = map[string]audit.BadgeCategory{
	"security":     audit.BadgeSecurity,
	"industry":     audit.BadgeIndustry,
	"payment":      audit.BadgePayment,
	"verification": audit.BadgeVerification,
}

// Compile parses a CUE value into a Registry.
//
// The CUE value must be the registry document root. Source order of
// engines and CTAs is preserved; it is part of the detection contract.
func Compile(v cue.Value) (*Registry, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	var raw rawRegistry
	if err := v.Decode(&raw); err != nil {
		return nil, formatCUEError(err)
	}

	if raw.Version == "" {
		return nil, &CompileError{Field: "version", Message: "version is required", Pos: v.Pos()}
	}
	if len(raw.Engines) == 0 {
		return nil, &CompileError{Field: "engines", Message: "at least one engine is required", Pos: v.Pos()}
	}
	if len(raw.CTAs) == 0 {
		return nil, &CompileError{Field: "ctas", Message: "at least one CTA is required", Pos: v.Pos()}
	}

	reg := &Registry{Version: raw.Version}

	for i, e := range raw.Engines {
		engineType, ok := validEngineTypes[e.Type]
		if !ok {
			return nil, &CompileError{
				Field:   fmt.Sprintf("engines[%d].type", i),
				Message: fmt.Sprintf("invalid engine type %q (want embedded, redirect, or native)", e.Type),
			}
		}
		res, err := compilePatternSet(fmt.Sprintf("engines[%d]", i), e.Patterns)
		if err != nil {
			return nil, err
		}
		reg.Engines = append(reg.Engines, Engine{Name: e.Name, Type: engineType, Patterns: res})
	}

	// generic_booking is optional: without it, detection ends at the named
	// engine table and no fallback engine is reported.
	if len(raw.GenericBooking) > 0 {
		generic, err := compilePatternSet("generic_booking", raw.GenericBooking)
		if err != nil {
			return nil, err
		}
		reg.GenericBooking = generic
	}

	for i, c := range raw.CTAs {
		res, err := compilePatternSet(fmt.Sprintf("ctas[%d]", i), c.Patterns)
		if err != nil {
			return nil, err
		}
		reg.CTAs = append(reg.CTAs, CTA{Text: c.Text, Priority: c.Priority, Patterns: res})
	}

	for i, p := range raw.ReviewPlatforms {
		res, err := compilePatternSet(fmt.Sprintf("review_platforms[%d]", i), p.Patterns)
		if err != nil {
			return nil, err
		}
		platform := ReviewPlatform{Name: p.Name, Patterns: res}
		if p.RatingPattern != "" {
			platform.Rating, err = compilePattern(fmt.Sprintf("review_platforms[%d].rating_pattern", i), p.RatingPattern)
			if err != nil {
				return nil, err
			}
		}
		if p.CountPattern != "" {
			platform.Count, err = compilePattern(fmt.Sprintf("review_platforms[%d].count_pattern", i), p.CountPattern)
			if err != nil {
				return nil, err
			}
		}
		reg.ReviewPlatforms = append(reg.ReviewPlatforms, platform)
	}

	for i, b := range raw.Badges {
		category, ok := validBadgeCategories[b.Category]
		if !ok {
			return nil, &CompileError{
				Field:   fmt.Sprintf("badges[%d].category", i),
				Message: fmt.Sprintf("invalid badge category %q", b.Category),
			}
		}
		res, err := compilePatternSet(fmt.Sprintf("badges[%d]", i), b.Patterns)
		if err != nil {
			return nil, err
		}
		reg.Badges = append(reg.Badges, Badge{Name: b.Name, Category: category, Patterns: res})
	}

	for i, s := range raw.Social {
		res, err := compilePatternSet(fmt.Sprintf("social[%d]", i), s.Patterns)
		if err != nil {
			return nil, err
		}
		reg.Social = append(reg.Social, Social{Name: s.Name, Patterns: res})
	}

	return reg, nil
}

// compilePatternSet compiles a non-empty list of case-insensitive regexps.
func compilePatternSet(field string, pats []string) ([]*regexp.Regexp, error) {
	if len(pats) == 0 {
		return nil, &CompileError{Field: field, Message: "at least one pattern is required"}
	}
	compiled := make([]*regexp.Regexp, 0, len(pats))
	for _, p := range pats {
		re, err := compilePattern(field, p)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func compilePattern(field, pat string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + pat)
	if err != nil {
		return nil, &CompileError{Field: field, Message: fmt.Sprintf("invalid pattern %q: %v", pat, err)}
	}
	return re, nil
}

// CompileError reports a registry compile failure with CUE position info
// when available.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return firstErr
}
