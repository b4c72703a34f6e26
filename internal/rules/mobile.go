package rules

import (
	"fmt"

	"github.com/sitepulse/siteaudit/internal/audit"
)

var mobileRules = []Rule{
	{Slug: "mobile/no-viewport-meta", Category: audit.CategoryMobile, Evaluate: noViewportMeta},
	{Slug: "mobile/not-mobile-friendly", Category: audit.CategoryMobile, Evaluate: notMobileFriendly},
	{Slug: "mobile/low-mobile-performance", Category: audit.CategoryMobile, Evaluate: lowMobilePerformance},
}

func noViewportMeta(a *audit.NormalizedAudit) *audit.Finding {
	if a.Tech == nil || a.Tech.HasViewportMeta {
		return nil
	}
	return finding(a, "mobile/no-viewport-meta", nil, audit.Finding{
		Category:   audit.CategoryMobile,
		Severity:   audit.SeverityBlocker,
		Title:      "Page is not mobile-scaled",
		Impact:     0.85,
		Confidence: 0.95,
		Penalty:    30,
		Evidence:   []string{"no viewport meta tag: phones render the desktop layout zoomed out"},
		Fix:        "Add <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">.",
		Effort:     audit.EffortLow,
		Tags:       []string{"viewport"},
	})
}

func notMobileFriendly(a *audit.NormalizedAudit) *audit.Finding {
	if a.Tech == nil || a.Tech.MobileFriendly || !a.Tech.HasViewportMeta {
		// Without the viewport tag the blocker above already fires.
		return nil
	}
	return finding(a, "mobile/not-mobile-friendly", nil, audit.Finding{
		Category:   audit.CategoryMobile,
		Severity:   audit.SeverityMajor,
		Title:      "Layout is not mobile friendly",
		Impact:     0.7,
		Confidence: 0.8,
		Penalty:    20,
		Evidence:   []string{"the layout fails mobile-friendliness checks (tap targets, text size, overflow)"},
		Fix:        "Adopt a responsive layout; most booking traffic arrives on phones.",
		Effort:     audit.EffortHigh,
		Tags:       []string{"responsive"},
	})
}

func lowMobilePerformance(a *audit.NormalizedAudit) *audit.Finding {
	if a.Performance == nil || a.Performance.Mobile == nil {
		return nil
	}
	score := a.Performance.Mobile.Scores.Performance
	if score == nil || *score >= 45 {
		return nil
	}
	facts := map[string]any{"score": int(*score)}
	return finding(a, "mobile/low-mobile-performance", facts, audit.Finding{
		Category:   audit.CategoryMobile,
		Severity:   audit.SeverityMajor,
		Title:      "Slow on mobile connections",
		Impact:     0.65,
		Confidence: 0.9,
		Penalty:    15,
		Evidence:   []string{fmt.Sprintf("mobile performance score is %.0f/100", *score)},
		Fix:        "Serve responsive images and trim scripts; test on a throttled mobile connection.",
		Effort:     audit.EffortMedium,
		Tags:       []string{"lighthouse"},
	})
}
