package export

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/sitepulse/siteaudit/internal/audit"
)

// goldenAudit builds a fully populated audit with fixed values. The
// resulting row set is compared byte-for-byte against the golden file;
// regenerate with: go test ./internal/export -update
func goldenAudit() *audit.NormalizedAudit {
	rating := 4.6
	count := 128
	perfMobile := 62.0
	perfDesktop := 78.0
	lcp := 3200.0
	cls := 0.08

	f := audit.Finding{
		ID:         "finding-a",
		Category:   audit.CategoryConversion,
		Severity:   audit.SeverityBlocker,
		Title:      "No booking engine detected",
		Impact:     0.9,
		Confidence: 0.9,
		Penalty:    30,
		Evidence:   []string{"no engine patterns matched"},
		Fix:        "Install an embedded booking engine",
		Effort:     audit.EffortHigh,
	}

	scores := make(map[audit.Category]audit.CategoryScore, len(audit.Categories))
	for _, c := range audit.Categories {
		scores[c] = audit.CategoryScore{Category: c, Score: 100, Findings: []audit.Finding{}}
	}
	scores[audit.CategoryConversion] = audit.CategoryScore{
		Category:     audit.CategoryConversion,
		Score:        70,
		BlockerCount: 1,
		Findings:     []audit.Finding{f},
	}

	return &audit.NormalizedAudit{
		AuditID:     "aud-golden",
		Domain:      "seasidehotel.example",
		Status:      audit.StatusComplete,
		GeneratedAt: time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC),
		Inputs: audit.Inputs{
			Campaign: &audit.Campaign{Source: "google", Medium: "cpc", Campaign: "spring-launch"},
		},
		Scoring: &audit.ScoringOutput{
			OverallScore:              91,
			ProjectedScore:            100,
			ProjectedScoreWithProduct: 100,
			EstimatedImpact: audit.EstimatedImpact{
				ConversionLossPercent: 6.48,
				TopContributors:       []string{"finding-a"},
			},
			CategoryScores: scores,
			TopIssues:      []audit.Finding{f},
			Version:        "1.4.0+patterns.2026.08.0",
		},
		Performance: &audit.PerformanceSignals{
			Mobile: &audit.LighthouseResult{
				Strategy: "mobile",
				Scores:   audit.LighthouseScores{Performance: &perfMobile},
				Metrics:  audit.LighthouseMetrics{LCPMs: &lcp, CLS: &cls},
				Opportunities: []audit.LighthouseOpportunity{{
					ID:                 "render-blocking-resources",
					Title:              "Eliminate render-blocking resources",
					EstimatedSavingsMs: 600,
				}},
			},
			Desktop: &audit.LighthouseResult{
				Strategy: "desktop",
				Scores:   audit.LighthouseScores{Performance: &perfDesktop},
			},
		},
		Crawl: &audit.CrawlSignals{
			PagesCrawled: 1,
			Pages: []audit.CrawlPage{{
				URL:        "https://seasidehotel.example/",
				Title:      "Seaside Hotel",
				StatusCode: 200,
				LoadTimeMs: 812,
				CTAs:       []audit.DetectedCTA{{Text: "Book Now", AboveFold: true}},
				Resources:  audit.ResourceCounts{Scripts: 12, Stylesheets: 3, Images: 24},
			}},
		},
		Tech: &audit.TechSignals{HasViewportMeta: true, MobileFriendly: true},
		SEO:  &audit.SEOSignals{Indexable: true, HasTitle: true},
		Trust: &audit.TrustSignals{
			Facts: audit.TrustFacts{
				Reviews: audit.ReviewFacts{
					Found:      true,
					Source:     audit.ReviewStructured,
					Rating:     &rating,
					Count:      &count,
					Confidence: 1,
				},
				Badges: []audit.BadgeFacts{
					{Name: "ssl", Category: audit.BadgeSecurity},
					{Name: "pci", Category: audit.BadgePayment},
				},
				TrustScore: 86,
			},
		},
		Security: &audit.SecuritySignals{HTTPS: true, HSTS: true},
		Booking: &audit.BookingSignals{
			Facts: audit.BookingFacts{
				Engine: audit.EngineFacts{
					Detected:   true,
					Name:       "cloudbeds",
					Type:       audit.EngineEmbedded,
					Confidence: 0.9,
				},
				CTA: audit.CTAFacts{
					Found:    true,
					Text:     "Book Now",
					Priority: 100,
					Offset:   420,
					Location: audit.CTAAboveFold,
				},
				HasDatePicker:    true,
				HasGuestSelector: true,
				InstantBook:      true,
				ClicksToBook:     3,
			},
			Steps: []audit.BookingStep{{
				URL:         "https://seasidehotel.example/book",
				Description: "booking widget opened",
				DurationMs:  1200,
			}},
		},
		Artifacts: &audit.Artifacts{
			SessionReplays: []audit.SessionReplay{{
				URL:        "https://seasidehotel.example/",
				StorageKey: "replays/aud-golden/0",
				DurationMs: 18000,
			}},
		},
		Errors: []audit.ModuleError{{
			Module:    "performance",
			Severity:  audit.ModuleErrorWarn,
			Message:   "desktop metrics incomplete",
			Retriable: true,
		}},
	}
}

func TestTransformGolden(t *testing.T) {
	rows := Transform(goldenAudit(), time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	data, err := json.MarshalIndent(rows, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "complete_audit", data)
}
