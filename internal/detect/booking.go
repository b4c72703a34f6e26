package detect

import (
	"regexp"

	"github.com/sitepulse/siteaudit/internal/audit"
	"github.com/sitepulse/siteaudit/internal/patterns"
)

// Confidence levels for booking-engine detection. A named engine match is
// high confidence; the generic booking-form fallback is a weaker signal.
const (
	engineConfidence  = 0.9
	genericConfidence = 0.6
)

// GenericEngineName is the engine name reported when only the generic
// booking-form fallback matched.
const GenericEngineName = "generic"

// aboveFoldFraction: a CTA whose first match starts within the first fifth
// of the document counts as above the fold.
const aboveFoldDenominator = 5

// maxClicksToBook caps the clicks-to-book heuristic.
const maxClicksToBook = 10

var (
	datePickerRe = regexp.MustCompile(`(?i)type="date"|datepicker|daterange|flatpickr|check[ -]?in[ -]?date`)
	guestSelRe   = regexp.MustCompile(`(?i)<select[^>]*(?:guest|adult|occupanc)|guests?[ -]selector|number[ -]of[ -]guests`)
	instantRe    = regexp.MustCompile(`(?i)instant[ -](?:book|confirmation)|book[ -]instantly`)
)

// Booking evaluates the full booking-flow fact set for one page.
//
// Never errors: unmatched signals resolve to false/zero. Engine detection
// scans the registry's ordered engine table and returns the first match;
// if none matches, the generic booking-form fallback is consulted before
// concluding "none detected".
func Booking(html string, reg *patterns.Registry) audit.BookingFacts {
	facts := audit.BookingFacts{
		Engine: detectEngine(html, reg),
		CTA:    detectCTA(html, reg),
	}
	facts.HasDatePicker = datePickerRe.MatchString(html)
	facts.HasGuestSelector = guestSelRe.MatchString(html)
	facts.InstantBook = instantRe.MatchString(html)
	facts.ClicksToBook = clicksToBook(facts)
	facts.FrictionScore = frictionScore(facts)
	return facts
}

func detectEngine(html string, reg *patterns.Registry) audit.EngineFacts {
	for _, engine := range reg.Engines {
		for _, re := range engine.Patterns {
			if re.MatchString(html) {
				return audit.EngineFacts{
					Detected:   true,
					Name:       engine.Name,
					Type:       engine.Type,
					Confidence: engineConfidence,
				}
			}
		}
	}
	for _, re := range reg.GenericBooking {
		if re.MatchString(html) {
			return audit.EngineFacts{
				Detected:   true,
				Name:       GenericEngineName,
				Type:       audit.EngineEmbedded,
				Confidence: genericConfidence,
			}
		}
	}
	return audit.EngineFacts{}
}

// detectCTA scans the priority-ordered CTA table and keeps the single
// highest-priority match. Equal priorities keep the earlier table entry,
// regardless of where each phrase appears in the document.
func detectCTA(html string, reg *patterns.Registry) audit.CTAFacts {
	best := audit.CTAFacts{Location: audit.CTANone}

	for _, cta := range reg.CTAs {
		offset := -1
		for _, re := range cta.Patterns {
			loc := re.FindStringIndex(html)
			if loc == nil {
				continue
			}
			if offset < 0 || loc[0] < offset {
				offset = loc[0]
			}
		}
		if offset < 0 {
			continue
		}
		if !best.Found || cta.Priority > best.Priority {
			best = audit.CTAFacts{
				Found:    true,
				Text:     cta.Text,
				Priority: cta.Priority,
				Offset:   offset,
				Location: foldLocation(offset, len(html)),
			}
		}
	}
	return best
}

func foldLocation(offset, totalLen int) audit.CTALocation {
	if offset*aboveFoldDenominator < totalLen {
		return audit.CTAAboveFold
	}
	return audit.CTABelowFold
}

// clicksToBook estimates the clicks between landing and a confirmed
// booking by additive heuristic steps, capped at 10.
func clicksToBook(f audit.BookingFacts) int {
	clicks := 1 // the CTA click itself
	if f.Engine.Detected && f.Engine.Type == audit.EngineRedirect {
		clicks++
	}
	if !f.HasDatePicker {
		clicks += 2
	}
	if !f.HasGuestSelector {
		clicks++
	}
	if !f.InstantBook {
		clicks += 2
	}
	clicks += 2 // payment and confirmation
	if clicks > maxClicksToBook {
		clicks = maxClicksToBook
	}
	return clicks
}

// frictionScore is a 0-100 heuristic of how many obstacles stand between
// a visitor and a completed booking. Independent of clicksToBook except
// for the two click-count tiers.
func frictionScore(f audit.BookingFacts) int {
	score := 0
	switch {
	case !f.CTA.Found:
		score += 40
	case f.CTA.Location == audit.CTABelowFold:
		score += 15
	}
	switch {
	case !f.Engine.Detected:
		score += 25
	case f.Engine.Type == audit.EngineRedirect:
		score += 10
	}
	if !f.HasDatePicker {
		score += 10
	}
	if !f.InstantBook {
		score += 15
	}
	switch {
	case f.ClicksToBook > 5:
		score += 15
	case f.ClicksToBook > 3:
		score += 5
	}
	if score > 100 {
		score = 100
	}
	return score
}
