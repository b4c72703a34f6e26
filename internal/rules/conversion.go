package rules

import (
	"fmt"

	"github.com/sitepulse/siteaudit/internal/audit"
)

var conversionRules = []Rule{
	{Slug: "conversion/no-cta", Category: audit.CategoryConversion, Evaluate: noCTA},
	{Slug: "conversion/cta-below-fold", Category: audit.CategoryConversion, Evaluate: ctaBelowFold},
	{Slug: "conversion/no-booking-engine", Category: audit.CategoryConversion, Evaluate: noBookingEngine},
	{Slug: "conversion/redirect-booking-engine", Category: audit.CategoryConversion, Evaluate: redirectBookingEngine},
	{Slug: "conversion/high-booking-friction", Category: audit.CategoryConversion, Evaluate: highBookingFriction},
	{Slug: "conversion/no-date-picker", Category: audit.CategoryConversion, Evaluate: noDatePicker},
	{Slug: "conversion/no-instant-book", Category: audit.CategoryConversion, Evaluate: noInstantBook},
}

func noCTA(a *audit.NormalizedAudit) *audit.Finding {
	if a.Booking == nil || a.Booking.Facts.CTA.Found {
		return nil
	}
	return finding(a, "conversion/no-cta", nil, audit.Finding{
		Category:   audit.CategoryConversion,
		Severity:   audit.SeverityBlocker,
		Title:      "No visible call-to-action",
		Impact:     0.9,
		Confidence: 0.85,
		Penalty:    25,
		Evidence:   []string{"no booking call-to-action phrase was found anywhere on the page"},
		Fix:        "Add a prominent booking button (e.g. \"Book Now\") near the top of the page.",
		Effort:     audit.EffortLow,
		Tags:       []string{"cta", "booking"},
	})
}

func ctaBelowFold(a *audit.NormalizedAudit) *audit.Finding {
	if a.Booking == nil {
		return nil
	}
	cta := a.Booking.Facts.CTA
	if !cta.Found || cta.Location != audit.CTABelowFold {
		return nil
	}
	return finding(a, "conversion/cta-below-fold", map[string]any{"text": cta.Text}, audit.Finding{
		Category:   audit.CategoryConversion,
		Severity:   audit.SeverityMinor,
		Title:      "Call-to-action is below the fold",
		Impact:     0.5,
		Confidence: 0.7,
		Penalty:    10,
		Evidence:   []string{fmt.Sprintf("%q only appears in the lower part of the page", cta.Text)},
		Fix:        "Move the booking button into the header or hero section so it is visible without scrolling.",
		Effort:     audit.EffortLow,
		Tags:       []string{"cta"},
	})
}

func noBookingEngine(a *audit.NormalizedAudit) *audit.Finding {
	if a.Booking == nil || a.Booking.Facts.Engine.Detected {
		return nil
	}
	return finding(a, "conversion/no-booking-engine", nil, audit.Finding{
		Category:   audit.CategoryConversion,
		Severity:   audit.SeverityBlocker,
		Title:      "No online booking engine detected",
		Impact:     0.95,
		Confidence: 0.8,
		Penalty:    30,
		Evidence:   []string{"no booking engine or booking form was found on the site"},
		Fix:        "Integrate a direct booking engine so guests can reserve without calling or emailing.",
		Effort:     audit.EffortHigh,
		Tags:       []string{"booking", "engine"},
	})
}

func redirectBookingEngine(a *audit.NormalizedAudit) *audit.Finding {
	if a.Booking == nil {
		return nil
	}
	engine := a.Booking.Facts.Engine
	if !engine.Detected || engine.Type != audit.EngineRedirect {
		return nil
	}
	return finding(a, "conversion/redirect-booking-engine", map[string]any{"engine": engine.Name}, audit.Finding{
		Category:   audit.CategoryConversion,
		Severity:   audit.SeverityMinor,
		Title:      "Booking engine redirects off-site",
		Impact:     0.4,
		Confidence: 0.75,
		Penalty:    8,
		Evidence:   []string{fmt.Sprintf("booking via %s leaves the site, which adds a step and drops brand context", engine.Name)},
		Fix:        "Switch to an embedded booking widget so guests complete the reservation on your domain.",
		Effort:     audit.EffortMedium,
		Tags:       []string{"booking", "engine"},
	})
}

func highBookingFriction(a *audit.NormalizedAudit) *audit.Finding {
	if a.Booking == nil {
		return nil
	}
	f := a.Booking.Facts
	if f.FrictionScore < 60 {
		return nil
	}
	facts := map[string]any{"friction": f.FrictionScore, "clicks": f.ClicksToBook}
	return finding(a, "conversion/high-booking-friction", facts, audit.Finding{
		Category:   audit.CategoryConversion,
		Severity:   audit.SeverityMajor,
		Title:      "Booking flow has high friction",
		Impact:     0.7,
		Confidence: 0.7,
		Penalty:    15,
		Evidence: []string{
			fmt.Sprintf("friction score %d/100", f.FrictionScore),
			fmt.Sprintf("an estimated %d clicks to complete a booking", f.ClicksToBook),
		},
		Fix:    "Reduce the steps between the call-to-action and a confirmed reservation.",
		Effort: audit.EffortMedium,
		Tags:   []string{"booking", "friction"},
	})
}

func noDatePicker(a *audit.NormalizedAudit) *audit.Finding {
	if a.Booking == nil || a.Booking.Facts.HasDatePicker {
		return nil
	}
	return finding(a, "conversion/no-date-picker", nil, audit.Finding{
		Category:   audit.CategoryConversion,
		Severity:   audit.SeverityMinor,
		Title:      "No availability date picker",
		Impact:     0.45,
		Confidence: 0.65,
		Penalty:    8,
		Evidence:   []string{"no check-in/check-out date picker was found"},
		Fix:        "Add a date picker so guests can check availability without leaving the page.",
		Effort:     audit.EffortMedium,
		Tags:       []string{"booking"},
	})
}

func noInstantBook(a *audit.NormalizedAudit) *audit.Finding {
	if a.Booking == nil || a.Booking.Facts.InstantBook {
		return nil
	}
	return finding(a, "conversion/no-instant-book", nil, audit.Finding{
		Category:   audit.CategoryConversion,
		Severity:   audit.SeverityMinor,
		Title:      "No instant confirmation",
		Impact:     0.4,
		Confidence: 0.6,
		Penalty:    6,
		Evidence:   []string{"bookings do not appear to confirm instantly"},
		Fix:        "Offer instant confirmation; request-to-book flows lose impatient guests to OTAs.",
		Effort:     audit.EffortMedium,
		Tags:       []string{"booking"},
	})
}
