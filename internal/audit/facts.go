package audit

// Detector fact records. These are produced by internal/detect against one
// page's rendered HTML and consumed by finding rules; they are not
// persisted independently of the audit. Every field is always populated:
// an unmatched signal is false/zero, never absent.

// EngineType classifies how a booking engine integrates with the site.
type EngineType string

const (
	EngineEmbedded EngineType = "embedded"
	EngineRedirect EngineType = "redirect"
	EngineNative   EngineType = "native"
)

// CTALocation is the heuristic placement of the winning call-to-action.
type CTALocation string

const (
	CTAAboveFold CTALocation = "above-fold"
	CTABelowFold CTALocation = "below-fold"
	CTANone      CTALocation = "none"
)

// BookingFacts is the full booking-flow fact set for one page.
type BookingFacts struct {
	Engine           EngineFacts `json:"engine" yaml:"engine"`
	CTA              CTAFacts    `json:"cta" yaml:"cta"`
	HasDatePicker    bool        `json:"has_date_picker" yaml:"has_date_picker"`
	HasGuestSelector bool        `json:"has_guest_selector" yaml:"has_guest_selector"`
	InstantBook      bool        `json:"instant_book" yaml:"instant_book"`
	ClicksToBook     int         `json:"clicks_to_book" yaml:"clicks_to_book"`
	FrictionScore    int         `json:"friction_score" yaml:"friction_score"`
}

// EngineFacts describes the detected booking engine, if any.
type EngineFacts struct {
	Detected   bool       `json:"detected" yaml:"detected"`
	Name       string     `json:"name,omitempty" yaml:"name,omitempty"`
	Type       EngineType `json:"type,omitempty" yaml:"type,omitempty"`
	Confidence float64    `json:"confidence" yaml:"confidence"`
}

// CTAFacts describes the highest-priority call-to-action match.
type CTAFacts struct {
	Found    bool        `json:"found" yaml:"found"`
	Text     string      `json:"text,omitempty" yaml:"text,omitempty"`
	Priority int         `json:"priority" yaml:"priority"`
	Offset   int         `json:"offset" yaml:"offset"`
	Location CTALocation `json:"location" yaml:"location"`
}

// ReviewSource ranks how a review signal was found, most trustworthy first.
type ReviewSource string

const (
	ReviewStructured ReviewSource = "structured" // machine-readable review markup
	ReviewPlatform   ReviewSource = "platform"   // known review-platform widget
	ReviewGeneric    ReviewSource = "generic"    // loose "stars / out of 5" text
	ReviewNone       ReviewSource = "none"
)

// TrustFacts is the full trust-signal fact set for one page.
type TrustFacts struct {
	Reviews         ReviewFacts  `json:"reviews" yaml:"reviews"`
	Badges          []BadgeFacts `json:"badges,omitempty" yaml:"badges,omitempty"`
	Contact         ContactFacts `json:"contact" yaml:"contact"`
	SocialPlatforms []string     `json:"social_platforms,omitempty" yaml:"social_platforms,omitempty"`
	HasTestimonials bool         `json:"has_testimonials" yaml:"has_testimonials"`
	Legal           LegalFacts   `json:"legal" yaml:"legal"`
	TrustScore      int          `json:"trust_score" yaml:"trust_score"`
}

// ReviewFacts describes detected review signals.
type ReviewFacts struct {
	Found      bool         `json:"found" yaml:"found"`
	Source     ReviewSource `json:"source" yaml:"source"`
	Platform   string       `json:"platform,omitempty" yaml:"platform,omitempty"`
	Rating     *float64     `json:"rating,omitempty" yaml:"rating,omitempty"`
	Count      *int         `json:"count,omitempty" yaml:"count,omitempty"`
	Confidence float64      `json:"confidence" yaml:"confidence"`
}

// BadgeCategory groups trust badges by what they vouch for.
type BadgeCategory string

const (
	BadgeSecurity     BadgeCategory = "security"
	BadgeIndustry     BadgeCategory = "industry"
	BadgePayment      BadgeCategory = "payment"
	BadgeVerification BadgeCategory = "verification"
)

// BadgeFacts is one detected trust badge. Badges carry no priority and
// multiple badges may co-occur.
type BadgeFacts struct {
	Name     string        `json:"name" yaml:"name"`
	Category BadgeCategory `json:"category" yaml:"category"`
}

// ContactFacts records which contact channels were detected.
type ContactFacts struct {
	Phone   bool `json:"phone" yaml:"phone"`
	Email   bool `json:"email" yaml:"email"`
	Address bool `json:"address" yaml:"address"`
}

// LegalFacts records which legal pages were detected.
type LegalFacts struct {
	Privacy bool `json:"privacy" yaml:"privacy"`
	Terms   bool `json:"terms" yaml:"terms"`
}
