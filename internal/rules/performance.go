package rules

import (
	"fmt"

	"github.com/sitepulse/siteaudit/internal/audit"
)

var performanceRules = []Rule{
	{Slug: "performance/low-performance-score", Category: audit.CategoryPerformance, Evaluate: lowPerformanceScore},
	{Slug: "performance/slow-lcp", Category: audit.CategoryPerformance, Evaluate: slowLCP},
	{Slug: "performance/high-cls", Category: audit.CategoryPerformance, Evaluate: highCLS},
	{Slug: "performance/slow-ttfb", Category: audit.CategoryPerformance, Evaluate: slowTTFB},
}

// primaryResult picks the measurement the performance rules read: mobile
// when present (most guests book from phones), desktop otherwise.
func primaryResult(a *audit.NormalizedAudit) *audit.LighthouseResult {
	if a.Performance == nil {
		return nil
	}
	if a.Performance.Mobile != nil {
		return a.Performance.Mobile
	}
	return a.Performance.Desktop
}

func lowPerformanceScore(a *audit.NormalizedAudit) *audit.Finding {
	res := primaryResult(a)
	if res == nil || res.Scores.Performance == nil {
		return nil
	}
	score := *res.Scores.Performance
	if score >= 50 {
		return nil
	}
	severity := audit.SeverityMajor
	penalty := 18.0
	if score < 30 {
		severity = audit.SeverityBlocker
		penalty = 30
	}
	facts := map[string]any{"strategy": res.Strategy, "score": int(score)}
	return finding(a, "performance/low-performance-score", facts, audit.Finding{
		Category:   audit.CategoryPerformance,
		Severity:   severity,
		Title:      "Page performance score is low",
		Impact:     0.75,
		Confidence: 0.9,
		Penalty:    penalty,
		Evidence:   []string{fmt.Sprintf("%s performance score is %.0f/100", res.Strategy, score)},
		Fix:        "Compress images, defer third-party scripts, and enable caching.",
		Effort:     audit.EffortMedium,
		Tags:       []string{"lighthouse"},
	})
}

func slowLCP(a *audit.NormalizedAudit) *audit.Finding {
	res := primaryResult(a)
	if res == nil || res.Metrics.LCPMs == nil {
		return nil
	}
	lcp := *res.Metrics.LCPMs
	if lcp <= 2500 {
		return nil
	}
	severity := audit.SeverityMinor
	penalty := 8.0
	if lcp > 4000 {
		severity = audit.SeverityMajor
		penalty = 15
	}
	facts := map[string]any{"strategy": res.Strategy, "lcp_ms": int(lcp)}
	return finding(a, "performance/slow-lcp", facts, audit.Finding{
		Category:   audit.CategoryPerformance,
		Severity:   severity,
		Title:      "Largest content loads slowly",
		Impact:     0.6,
		Confidence: 0.9,
		Penalty:    penalty,
		Evidence:   []string{fmt.Sprintf("largest contentful paint is %.1fs on %s", lcp/1000, res.Strategy)},
		Fix:        "Optimize the hero image (size, format, preload) so the page is usable sooner.",
		Effort:     audit.EffortLow,
		Tags:       []string{"lighthouse", "lcp"},
	})
}

func highCLS(a *audit.NormalizedAudit) *audit.Finding {
	res := primaryResult(a)
	if res == nil || res.Metrics.CLS == nil || *res.Metrics.CLS <= 0.25 {
		return nil
	}
	facts := map[string]any{"strategy": res.Strategy, "cls_x100": int(*res.Metrics.CLS * 100)}
	return finding(a, "performance/high-cls", facts, audit.Finding{
		Category:   audit.CategoryPerformance,
		Severity:   audit.SeverityMinor,
		Title:      "Page layout shifts while loading",
		Impact:     0.4,
		Confidence: 0.85,
		Penalty:    8,
		Evidence:   []string{fmt.Sprintf("cumulative layout shift is %.2f on %s", *res.Metrics.CLS, res.Strategy)},
		Fix:        "Reserve space for images and embeds so content stops jumping under the visitor's finger.",
		Effort:     audit.EffortLow,
		Tags:       []string{"lighthouse", "cls"},
	})
}

func slowTTFB(a *audit.NormalizedAudit) *audit.Finding {
	res := primaryResult(a)
	if res == nil || res.Metrics.TTFBMs == nil || *res.Metrics.TTFBMs <= 1800 {
		return nil
	}
	facts := map[string]any{"strategy": res.Strategy, "ttfb_ms": int(*res.Metrics.TTFBMs)}
	return finding(a, "performance/slow-ttfb", facts, audit.Finding{
		Category:   audit.CategoryPerformance,
		Severity:   audit.SeverityMinor,
		Title:      "Server responds slowly",
		Impact:     0.35,
		Confidence: 0.8,
		Penalty:    6,
		Evidence:   []string{fmt.Sprintf("time to first byte is %.1fs on %s", *res.Metrics.TTFBMs/1000, res.Strategy)},
		Fix:        "Add page caching or upgrade hosting; the server itself is the bottleneck.",
		Effort:     audit.EffortMedium,
		Tags:       []string{"lighthouse", "ttfb"},
	})
}
