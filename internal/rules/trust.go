package rules

import (
	"fmt"

	"github.com/sitepulse/siteaudit/internal/audit"
)

var trustRules = []Rule{
	{Slug: "trust/no-reviews", Category: audit.CategoryTrust, Evaluate: noReviews},
	{Slug: "trust/low-review-rating", Category: audit.CategoryTrust, Evaluate: lowReviewRating},
	{Slug: "trust/missing-contact-info", Category: audit.CategoryTrust, Evaluate: missingContactInfo},
	{Slug: "trust/no-trust-badges", Category: audit.CategoryTrust, Evaluate: noTrustBadges},
	{Slug: "trust/missing-legal-pages", Category: audit.CategoryTrust, Evaluate: missingLegalPages},
	{Slug: "trust/no-social-presence", Category: audit.CategoryTrust, Evaluate: noSocialPresence},
}

func noReviews(a *audit.NormalizedAudit) *audit.Finding {
	if a.Trust == nil || a.Trust.Facts.Reviews.Found {
		return nil
	}
	return finding(a, "trust/no-reviews", nil, audit.Finding{
		Category:   audit.CategoryTrust,
		Severity:   audit.SeverityMajor,
		Title:      "No guest reviews on the site",
		Impact:     0.8,
		Confidence: 0.75,
		Penalty:    20,
		Evidence:   []string{"no review markup, review-platform widget, or review text was found"},
		Fix:        "Embed reviews from TripAdvisor or Google so guests see social proof before booking.",
		Effort:     audit.EffortMedium,
		Tags:       []string{"reviews", "social-proof"},
	})
}

func lowReviewRating(a *audit.NormalizedAudit) *audit.Finding {
	if a.Trust == nil {
		return nil
	}
	r := a.Trust.Facts.Reviews
	if !r.Found || r.Rating == nil || *r.Rating >= 4.0 {
		return nil
	}
	facts := map[string]any{"rating": fmt.Sprintf("%.1f", *r.Rating)}
	return finding(a, "trust/low-review-rating", facts, audit.Finding{
		Category:   audit.CategoryTrust,
		Severity:   audit.SeverityMajor,
		Title:      "Displayed review rating is low",
		Impact:     0.6,
		Confidence: r.Confidence,
		Penalty:    12,
		Evidence:   []string{fmt.Sprintf("the site shows a %.1f rating, below the 4.0 guests expect", *r.Rating)},
		Fix:        "Feature your strongest review source, and work recent positive reviews onto the page.",
		Effort:     audit.EffortMedium,
		Tags:       []string{"reviews"},
	})
}

func missingContactInfo(a *audit.NormalizedAudit) *audit.Finding {
	if a.Trust == nil {
		return nil
	}
	c := a.Trust.Facts.Contact
	if c.Phone || c.Email || c.Address {
		return nil
	}
	return finding(a, "trust/missing-contact-info", nil, audit.Finding{
		Category:   audit.CategoryTrust,
		Severity:   audit.SeverityMajor,
		Title:      "No contact information visible",
		Impact:     0.65,
		Confidence: 0.8,
		Penalty:    15,
		Evidence:   []string{"no phone number, email address, or street address was found"},
		Fix:        "Put a phone number and email in the header or footer of every page.",
		Effort:     audit.EffortLow,
		Tags:       []string{"contact"},
	})
}

func noTrustBadges(a *audit.NormalizedAudit) *audit.Finding {
	if a.Trust == nil || len(a.Trust.Facts.Badges) > 0 {
		return nil
	}
	return finding(a, "trust/no-trust-badges", nil, audit.Finding{
		Category:   audit.CategoryTrust,
		Severity:   audit.SeverityMinor,
		Title:      "No trust badges",
		Impact:     0.35,
		Confidence: 0.6,
		Penalty:    6,
		Evidence:   []string{"no security, payment, or industry badges were found"},
		Fix:        "Display recognizable badges (secure checkout, accepted cards, industry certifications).",
		Effort:     audit.EffortLow,
		Tags:       []string{"badges"},
	})
}

func missingLegalPages(a *audit.NormalizedAudit) *audit.Finding {
	if a.Trust == nil {
		return nil
	}
	legal := a.Trust.Facts.Legal
	if legal.Privacy && legal.Terms {
		return nil
	}
	facts := map[string]any{"privacy": legal.Privacy, "terms": legal.Terms}
	var missing []string
	if !legal.Privacy {
		missing = append(missing, "no privacy policy link was found")
	}
	if !legal.Terms {
		missing = append(missing, "no terms page link was found")
	}
	return finding(a, "trust/missing-legal-pages", facts, audit.Finding{
		Category:   audit.CategoryTrust,
		Severity:   audit.SeverityMinor,
		Title:      "Missing legal pages",
		Impact:     0.3,
		Confidence: 0.7,
		Penalty:    5,
		Evidence:   missing,
		Fix:        "Link a privacy policy and booking terms from the footer.",
		Effort:     audit.EffortLow,
		Tags:       []string{"legal"},
	})
}

func noSocialPresence(a *audit.NormalizedAudit) *audit.Finding {
	if a.Trust == nil || len(a.Trust.Facts.SocialPlatforms) > 0 {
		return nil
	}
	return finding(a, "trust/no-social-presence", nil, audit.Finding{
		Category:   audit.CategoryTrust,
		Severity:   audit.SeverityTrivial,
		Title:      "No social profiles linked",
		Impact:     0.2,
		Confidence: 0.6,
		Penalty:    3,
		Evidence:   []string{"no links to social platforms were found"},
		Fix:        "Link active social profiles so guests can verify the property is real and current.",
		Effort:     audit.EffortLow,
		Tags:       []string{"social"},
	})
}
