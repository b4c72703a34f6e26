package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitepulse/siteaudit/internal/audit"
)

func emptyAudit() *audit.NormalizedAudit {
	return &audit.NormalizedAudit{
		AuditID: "audit-test-1",
		Domain:  "seasideinn.example",
		Status:  audit.StatusPartial,
	}
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestAllRulesAbstainOnEmptyAudit(t *testing.T) {
	// An audit with no signal bundles must produce no findings, not
	// errors: absent bundles degrade to abstention.
	findings := EvaluateAll(emptyAudit())
	assert.Empty(t, findings)
}

func TestRuleSlugsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range All {
		assert.False(t, seen[r.Slug], "duplicate slug %s", r.Slug)
		seen[r.Slug] = true
	}
}

func TestEvaluateAllDeterministicIDs(t *testing.T) {
	a := emptyAudit()
	a.Booking = &audit.BookingSignals{} // all facts zero: several rules fire
	a.Security = &audit.SecuritySignals{HTTPS: false}

	first := EvaluateAll(a)
	second := EvaluateAll(a)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestNoCTAFiresAndAbstains(t *testing.T) {
	a := emptyAudit()
	a.Booking = &audit.BookingSignals{}

	f := noCTA(a)
	require.NotNil(t, f)
	assert.Equal(t, audit.CategoryConversion, f.Category)
	assert.Equal(t, audit.SeverityBlocker, f.Severity)
	assert.NotEmpty(t, f.ID)
	assert.NotEmpty(t, f.Evidence)

	a.Booking.Facts.CTA = audit.CTAFacts{Found: true, Location: audit.CTAAboveFold}
	assert.Nil(t, noCTA(a))
}

func TestCTABelowFold(t *testing.T) {
	a := emptyAudit()
	a.Booking = &audit.BookingSignals{}
	a.Booking.Facts.CTA = audit.CTAFacts{Found: true, Text: "Book Now", Location: audit.CTABelowFold}

	f := ctaBelowFold(a)
	require.NotNil(t, f)
	assert.Equal(t, audit.SeverityMinor, f.Severity)

	a.Booking.Facts.CTA.Location = audit.CTAAboveFold
	assert.Nil(t, ctaBelowFold(a))
}

func TestHighBookingFrictionThreshold(t *testing.T) {
	a := emptyAudit()
	a.Booking = &audit.BookingSignals{}
	a.Booking.Facts.FrictionScore = 59
	assert.Nil(t, highBookingFriction(a))

	a.Booking.Facts.FrictionScore = 60
	a.Booking.Facts.ClicksToBook = 8
	f := highBookingFriction(a)
	require.NotNil(t, f)
	assert.Len(t, f.Evidence, 2)
}

func TestLowReviewRating(t *testing.T) {
	a := emptyAudit()
	a.Trust = &audit.TrustSignals{}
	a.Trust.Facts.Reviews = audit.ReviewFacts{
		Found: true, Source: audit.ReviewPlatform, Rating: floatPtr(3.4), Confidence: 0.8,
	}

	f := lowReviewRating(a)
	require.NotNil(t, f)
	assert.Equal(t, 0.8, f.Confidence)

	a.Trust.Facts.Reviews.Rating = floatPtr(4.3)
	assert.Nil(t, lowReviewRating(a))

	a.Trust.Facts.Reviews.Rating = nil
	assert.Nil(t, lowReviewRating(a), "no rating means no low-rating claim")
}

func TestLowPerformanceScoreSeverityTiers(t *testing.T) {
	a := emptyAudit()
	a.Performance = &audit.PerformanceSignals{
		Mobile: &audit.LighthouseResult{
			Strategy: "mobile",
			Scores:   audit.LighthouseScores{Performance: floatPtr(42)},
		},
	}

	f := lowPerformanceScore(a)
	require.NotNil(t, f)
	assert.Equal(t, audit.SeverityMajor, f.Severity)

	a.Performance.Mobile.Scores.Performance = floatPtr(25)
	f = lowPerformanceScore(a)
	require.NotNil(t, f)
	assert.Equal(t, audit.SeverityBlocker, f.Severity)

	a.Performance.Mobile.Scores.Performance = floatPtr(50)
	assert.Nil(t, lowPerformanceScore(a))
}

func TestPerformanceRulesPreferMobile(t *testing.T) {
	a := emptyAudit()
	a.Performance = &audit.PerformanceSignals{
		Mobile:  &audit.LighthouseResult{Strategy: "mobile", Metrics: audit.LighthouseMetrics{LCPMs: floatPtr(5200)}},
		Desktop: &audit.LighthouseResult{Strategy: "desktop", Metrics: audit.LighthouseMetrics{LCPMs: floatPtr(1200)}},
	}

	f := slowLCP(a)
	require.NotNil(t, f)
	assert.Equal(t, audit.SeverityMajor, f.Severity)
	assert.Contains(t, f.Evidence[0], "mobile")
}

func TestNotIndexableBlocker(t *testing.T) {
	a := emptyAudit()
	a.SEO = &audit.SEOSignals{Indexable: false}

	f := notIndexable(a)
	require.NotNil(t, f)
	assert.Equal(t, audit.SeverityBlocker, f.Severity)
	assert.Equal(t, 1.0, f.Impact)
}

func TestViewportBlockerSuppressesMobileFriendly(t *testing.T) {
	a := emptyAudit()
	a.Tech = &audit.TechSignals{HasViewportMeta: false, MobileFriendly: false}

	require.NotNil(t, noViewportMeta(a))
	assert.Nil(t, notMobileFriendly(a), "viewport blocker already covers this")

	a.Tech.HasViewportMeta = true
	assert.Nil(t, noViewportMeta(a))
	require.NotNil(t, notMobileFriendly(a))
}

func TestSecurityRulesRequireHTTPSContext(t *testing.T) {
	a := emptyAudit()
	a.Security = &audit.SecuritySignals{HTTPS: false, MixedContent: true, HSTS: false}

	require.NotNil(t, noHTTPS(a))
	// Mixed content and HSTS are only meaningful on an HTTPS site.
	assert.Nil(t, mixedContent(a))
	assert.Nil(t, noHSTS(a))

	a.Security.HTTPS = true
	assert.Nil(t, noHTTPS(a))
	require.NotNil(t, mixedContent(a))
	require.NotNil(t, noHSTS(a))
}

func TestExpiringCertificate(t *testing.T) {
	a := emptyAudit()
	a.Security = &audit.SecuritySignals{HTTPS: true, HSTS: true}
	assert.Nil(t, expiringCertificate(a), "unknown expiry is not a finding")

	a.Security.CertExpiryDays = intPtr(5)
	f := expiringCertificate(a)
	require.NotNil(t, f)
	assert.Contains(t, f.Evidence[0], "5 days")

	a.Security.CertExpiryDays = intPtr(90)
	assert.Nil(t, expiringCertificate(a))
}

func TestFindingsDoNotMutateAudit(t *testing.T) {
	a := emptyAudit()
	a.Booking = &audit.BookingSignals{}
	before := *a.Booking

	_ = EvaluateAll(a)
	assert.Equal(t, before, *a.Booking)
}
