package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitepulse/siteaudit/internal/audit"
)

func TestTrustEmptyHTML(t *testing.T) {
	facts := Trust("", reg)

	assert.False(t, facts.Reviews.Found)
	assert.Equal(t, audit.ReviewNone, facts.Reviews.Source)
	assert.Empty(t, facts.Badges)
	assert.False(t, facts.Contact.Phone)
	assert.Empty(t, facts.SocialPlatforms)
	assert.Equal(t, 0, facts.TrustScore)
}

func TestStructuredReviewsWin(t *testing.T) {
	// Both JSON-LD markup and a TripAdvisor widget are present; the
	// machine-readable markup takes precedence at confidence 1.0.
	html := `
	<script type="application/ld+json">
	{"@type": "Hotel", "aggregateRating": {"@type": "AggregateRating", "ratingValue": "4.6", "reviewCount": 128}}
	</script>
	<div class="ta_widget">4.0 of 5 - 30 reviews on tripadvisor.com</div>`

	facts := Trust(html, reg)
	require.True(t, facts.Reviews.Found)
	assert.Equal(t, audit.ReviewStructured, facts.Reviews.Source)
	assert.Equal(t, 1.0, facts.Reviews.Confidence)
	require.NotNil(t, facts.Reviews.Rating)
	assert.Equal(t, 4.6, *facts.Reviews.Rating)
	require.NotNil(t, facts.Reviews.Count)
	assert.Equal(t, 128, *facts.Reviews.Count)
}

func TestMalformedStructuredDataFallsThrough(t *testing.T) {
	html := `
	<script type="application/ld+json">{not valid json</script>
	<div class="ta_widget">4.5 of 5 based on 210 reviews (tripadvisor.com)</div>`

	facts := Trust(html, reg)
	require.True(t, facts.Reviews.Found)
	assert.Equal(t, audit.ReviewPlatform, facts.Reviews.Source)
	assert.Equal(t, "TripAdvisor", facts.Reviews.Platform)
	require.NotNil(t, facts.Reviews.Rating)
	assert.Equal(t, 4.5, *facts.Reviews.Rating)
	require.NotNil(t, facts.Reviews.Count)
	assert.Equal(t, 210, *facts.Reviews.Count)
}

func TestGenericReviewFallback(t *testing.T) {
	facts := Trust(`<span>Rated 4.2 out of 5 by our guests</span>`, reg)

	require.True(t, facts.Reviews.Found)
	assert.Equal(t, audit.ReviewGeneric, facts.Reviews.Source)
	require.NotNil(t, facts.Reviews.Rating)
	assert.Equal(t, 4.2, *facts.Reviews.Rating)
}

func TestBadgesMultipleCoOccur(t *testing.T) {
	html := `<img alt="Norton Secured"> <img alt="PayPal Verified"> <img alt="BBB Accredited">`

	facts := Trust(html, reg)
	require.Len(t, facts.Badges, 3)

	categories := map[audit.BadgeCategory]bool{}
	for _, b := range facts.Badges {
		categories[b.Category] = true
	}
	assert.True(t, categories[audit.BadgeSecurity])
	assert.True(t, categories[audit.BadgePayment])
	assert.True(t, categories[audit.BadgeVerification])
}

func TestContactDetection(t *testing.T) {
	html := `Call (555) 123-4567 or write to stay@seasideinn.com. Visit us at 14 Harbor Road.`

	facts := Trust(html, reg)
	assert.True(t, facts.Contact.Phone)
	assert.True(t, facts.Contact.Email)
	assert.True(t, facts.Contact.Address)
}

func TestSocialDetection(t *testing.T) {
	html := `<a href="https://facebook.com/seasideinn"></a><a href="https://instagram.com/seasideinn"></a>`

	facts := Trust(html, reg)
	assert.ElementsMatch(t, []string{"facebook", "instagram"}, facts.SocialPlatforms)
}

func TestTrustScoreFullExample(t *testing.T) {
	// Reviews with rating >= 4.0 and count >= 10 (35) + 2 badges (10) +
	// phone/email/address (20) + 2 social platforms (6) + testimonials
	// (5) + privacy and terms (10) = 86.
	html := `
	<script type="application/ld+json">
	{"aggregateRating": {"ratingValue": 4.5, "reviewCount": 120}}
	</script>
	<img alt="Norton Secured"> <img alt="PayPal Verified">
	Call (555) 123-4567 or stay@seasideinn.com, 14 Harbor Road
	<a href="https://facebook.com/seasideinn">f</a>
	<a href="https://instagram.com/seasideinn">i</a>
	<h2>Testimonials</h2>
	<a href="/privacy">Privacy Policy</a>
	<a href="/terms">Terms and Conditions</a>`

	facts := Trust(html, reg)
	require.True(t, facts.Reviews.Found)
	require.Len(t, facts.Badges, 2)
	require.Len(t, facts.SocialPlatforms, 2)
	assert.Equal(t, 86, facts.TrustScore)
}

func TestTrustScoreBadgeCap(t *testing.T) {
	html := `<img alt="Norton Secured"> <img alt="McAfee Secure"> <img alt="PayPal Verified">
	<img alt="BBB Accredited"> <img alt="AAA Approved">`

	facts := Trust(html, reg)
	require.Len(t, facts.Badges, 5)
	// 5 badges x 5 points, capped at 20.
	assert.Equal(t, 20, facts.TrustScore)
}
