package rules

import "github.com/sitepulse/siteaudit/internal/audit"

var seoRules = []Rule{
	{Slug: "seo/not-indexable", Category: audit.CategorySEO, Evaluate: notIndexable},
	{Slug: "seo/missing-title", Category: audit.CategorySEO, Evaluate: missingTitle},
	{Slug: "seo/missing-meta-description", Category: audit.CategorySEO, Evaluate: missingMetaDescription},
	{Slug: "seo/no-structured-data", Category: audit.CategorySEO, Evaluate: noStructuredData},
	{Slug: "seo/no-sitemap", Category: audit.CategorySEO, Evaluate: noSitemap},
}

func notIndexable(a *audit.NormalizedAudit) *audit.Finding {
	if a.SEO == nil || a.SEO.Indexable {
		return nil
	}
	return finding(a, "seo/not-indexable", nil, audit.Finding{
		Category:   audit.CategorySEO,
		Severity:   audit.SeverityBlocker,
		Title:      "Site is blocked from search engines",
		Impact:     1.0,
		Confidence: 0.95,
		Penalty:    40,
		Evidence:   []string{"the site is not indexable (robots directives or meta tags block crawlers)"},
		Fix:        "Remove the noindex directive / robots.txt block so search engines can list the site.",
		Effort:     audit.EffortLow,
		Tags:       []string{"indexing"},
	})
}

func missingTitle(a *audit.NormalizedAudit) *audit.Finding {
	if a.SEO == nil || a.SEO.HasTitle {
		return nil
	}
	return finding(a, "seo/missing-title", nil, audit.Finding{
		Category:   audit.CategorySEO,
		Severity:   audit.SeverityMinor,
		Title:      "Missing page title",
		Impact:     0.4,
		Confidence: 0.95,
		Penalty:    6,
		Evidence:   []string{"the homepage has no <title> tag"},
		Fix:        "Give every page a descriptive title including the property name and location.",
		Effort:     audit.EffortLow,
		Tags:       []string{"on-page"},
	})
}

func missingMetaDescription(a *audit.NormalizedAudit) *audit.Finding {
	if a.SEO == nil || a.SEO.HasMetaDescription {
		return nil
	}
	return finding(a, "seo/missing-meta-description", nil, audit.Finding{
		Category:   audit.CategorySEO,
		Severity:   audit.SeverityMinor,
		Title:      "Missing meta description",
		Impact:     0.35,
		Confidence: 0.95,
		Penalty:    6,
		Evidence:   []string{"the homepage has no meta description"},
		Fix:        "Write a meta description that sells the stay; it becomes your search snippet.",
		Effort:     audit.EffortLow,
		Tags:       []string{"on-page"},
	})
}

func noStructuredData(a *audit.NormalizedAudit) *audit.Finding {
	if a.SEO == nil || a.SEO.HasStructuredData {
		return nil
	}
	return finding(a, "seo/no-structured-data", nil, audit.Finding{
		Category:   audit.CategorySEO,
		Severity:   audit.SeverityMinor,
		Title:      "No structured data markup",
		Impact:     0.3,
		Confidence: 0.85,
		Penalty:    5,
		Evidence:   []string{"no schema.org markup (Hotel, LocalBusiness, reviews) was found"},
		Fix:        "Add Hotel/LocalBusiness structured data so search results show ratings and amenities.",
		Effort:     audit.EffortMedium,
		Tags:       []string{"structured-data"},
	})
}

func noSitemap(a *audit.NormalizedAudit) *audit.Finding {
	if a.SEO == nil || a.SEO.HasSitemap {
		return nil
	}
	return finding(a, "seo/no-sitemap", nil, audit.Finding{
		Category:   audit.CategorySEO,
		Severity:   audit.SeverityTrivial,
		Title:      "No XML sitemap",
		Impact:     0.2,
		Confidence: 0.8,
		Penalty:    3,
		Evidence:   []string{"no sitemap.xml was found"},
		Fix:        "Publish a sitemap.xml and reference it from robots.txt.",
		Effort:     audit.EffortLow,
		Tags:       []string{"indexing"},
	})
}
