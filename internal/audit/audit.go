package audit

import "time"

// Status describes the completion state of an audit run.
type Status string

const (
	StatusPending  Status = "pending"
	StatusComplete Status = "complete"
	StatusPartial  Status = "partial"
	StatusError    Status = "error"
)

// NormalizedAudit is the root record for one audit run.
//
// AuditID is immutable and is the join key for every derived row. Any
// signal bundle may be absent (partial audit); downstream stages treat a
// nil bundle as "no data", never as an error. An audit passes through the
// scoring/export core exactly once and its outputs are write-once.
type NormalizedAudit struct {
	AuditID     string    `json:"audit_id" yaml:"audit_id"`
	Domain      string    `json:"domain" yaml:"domain"`
	Status      Status    `json:"status" yaml:"status"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Inputs      Inputs    `json:"inputs" yaml:"inputs"`

	Performance *PerformanceSignals `json:"performance,omitempty" yaml:"performance,omitempty"`
	Crawl       *CrawlSignals       `json:"crawl,omitempty" yaml:"crawl,omitempty"`
	Tech        *TechSignals        `json:"tech,omitempty" yaml:"tech,omitempty"`
	SEO         *SEOSignals         `json:"seo,omitempty" yaml:"seo,omitempty"`
	Trust       *TrustSignals       `json:"trust,omitempty" yaml:"trust,omitempty"`
	Security    *SecuritySignals    `json:"security,omitempty" yaml:"security,omitempty"`
	Content     *ContentSignals     `json:"content,omitempty" yaml:"content,omitempty"`
	Booking     *BookingSignals     `json:"booking,omitempty" yaml:"booking,omitempty"`

	Scoring   *ScoringOutput `json:"scoring,omitempty" yaml:"scoring,omitempty"`
	Artifacts *Artifacts     `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`

	Errors []ModuleError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Inputs records what was requested for this audit run, plus campaign
// attribution supplied by the lead-generation funnel.
type Inputs struct {
	PagesRequested []string  `json:"pages_requested,omitempty" yaml:"pages_requested,omitempty"`
	Campaign       *Campaign `json:"campaign,omitempty" yaml:"campaign,omitempty"`
}

// Campaign carries marketing attribution for the audit request.
type Campaign struct {
	Source   string `json:"source,omitempty" yaml:"source,omitempty"`
	Medium   string `json:"medium,omitempty" yaml:"medium,omitempty"`
	Campaign string `json:"campaign,omitempty" yaml:"campaign,omitempty"`
}

// ModuleErrorSeverity classifies an upstream module failure.
type ModuleErrorSeverity string

const (
	ModuleErrorWarn  ModuleErrorSeverity = "warn"
	ModuleErrorError ModuleErrorSeverity = "error"
)

// ModuleError records a per-module failure upstream of the scoring core
// (performance measurement timeout, crawl failure). Failures attach to the
// audit instead of aborting it; an audit with errors still scores and
// exports whatever its available bundles allow.
type ModuleError struct {
	Module    string              `json:"module" yaml:"module"`
	Severity  ModuleErrorSeverity `json:"severity" yaml:"severity"`
	Message   string              `json:"message" yaml:"message"`
	Retriable bool                `json:"retriable" yaml:"retriable"`
}

// PerformanceSignals holds one measurement result per strategy. Either
// strategy may be absent independently.
type PerformanceSignals struct {
	Mobile  *LighthouseResult `json:"mobile,omitempty" yaml:"mobile,omitempty"`
	Desktop *LighthouseResult `json:"desktop,omitempty" yaml:"desktop,omitempty"`
}

// Result returns the measurement for a strategy name, or nil.
func (p *PerformanceSignals) Result(strategy string) *LighthouseResult {
	if p == nil {
		return nil
	}
	switch strategy {
	case "mobile":
		return p.Mobile
	case "desktop":
		return p.Desktop
	}
	return nil
}

// LighthouseResult is one performance measurement for a (page, strategy)
// pair: category sub-scores, raw timing metrics, and improvement
// opportunities.
type LighthouseResult struct {
	Strategy      string                  `json:"strategy" yaml:"strategy"`
	Scores        LighthouseScores        `json:"scores" yaml:"scores"`
	Metrics       LighthouseMetrics       `json:"metrics" yaml:"metrics"`
	Opportunities []LighthouseOpportunity `json:"opportunities,omitempty" yaml:"opportunities,omitempty"`
}

// LighthouseScores are category sub-scores on a 0-100 scale. Pointers:
// a missing category nulls out rather than reading as zero.
type LighthouseScores struct {
	Performance   *float64 `json:"performance,omitempty" yaml:"performance,omitempty"`
	Accessibility *float64 `json:"accessibility,omitempty" yaml:"accessibility,omitempty"`
	BestPractices *float64 `json:"best_practices,omitempty" yaml:"best_practices,omitempty"`
	SEO           *float64 `json:"seo,omitempty" yaml:"seo,omitempty"`
}

// LighthouseMetrics are raw timing measurements in milliseconds, except
// CLS which is unitless.
type LighthouseMetrics struct {
	FCPMs  *float64 `json:"fcp_ms,omitempty" yaml:"fcp_ms,omitempty"`
	LCPMs  *float64 `json:"lcp_ms,omitempty" yaml:"lcp_ms,omitempty"`
	TBTMs  *float64 `json:"tbt_ms,omitempty" yaml:"tbt_ms,omitempty"`
	TTFBMs *float64 `json:"ttfb_ms,omitempty" yaml:"ttfb_ms,omitempty"`
	CLS    *float64 `json:"cls,omitempty" yaml:"cls,omitempty"`
}

// LighthouseOpportunity is one suggested improvement with its estimated
// saving.
type LighthouseOpportunity struct {
	ID                 string  `json:"id" yaml:"id"`
	Title              string  `json:"title" yaml:"title"`
	Description        string  `json:"description,omitempty" yaml:"description,omitempty"`
	EstimatedSavingsMs float64 `json:"estimated_savings_ms" yaml:"estimated_savings_ms"`
}

// CrawlSignals holds crawler-derived page structure for every crawled page.
type CrawlSignals struct {
	PagesCrawled int         `json:"pages_crawled" yaml:"pages_crawled"`
	Pages        []CrawlPage `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// CrawlPage is one crawled page's observed structure. RawHTML is the
// rendered document when the crawler captured it; detectors consume it and
// it is never exported.
type CrawlPage struct {
	URL           string         `json:"url" yaml:"url"`
	Title         string         `json:"title,omitempty" yaml:"title,omitempty"`
	StatusCode    int            `json:"status_code" yaml:"status_code"`
	LoadTimeMs    float64        `json:"load_time_ms" yaml:"load_time_ms"`
	CTAs          []DetectedCTA  `json:"ctas,omitempty" yaml:"ctas,omitempty"`
	Forms         []DetectedForm `json:"forms,omitempty" yaml:"forms,omitempty"`
	TrustElements []string       `json:"trust_elements,omitempty" yaml:"trust_elements,omitempty"`
	PolicyLinks   []string       `json:"policy_links,omitempty" yaml:"policy_links,omitempty"`
	Resources     ResourceCounts `json:"resources" yaml:"resources"`
	RawHTML       string         `json:"raw_html,omitempty" yaml:"raw_html,omitempty"`
}

// DetectedCTA is a crawler-observed call-to-action element.
type DetectedCTA struct {
	Text      string `json:"text" yaml:"text"`
	AboveFold bool   `json:"above_fold" yaml:"above_fold"`
}

// DetectedForm is a crawler-observed form.
type DetectedForm struct {
	Type   string `json:"type" yaml:"type"`
	Fields int    `json:"fields" yaml:"fields"`
}

// ResourceCounts are per-page asset counts.
type ResourceCounts struct {
	Scripts     int `json:"scripts" yaml:"scripts"`
	Stylesheets int `json:"stylesheets" yaml:"stylesheets"`
	Images      int `json:"images" yaml:"images"`
}

// TechSignals describe the detected technology stack.
type TechSignals struct {
	CMS             string   `json:"cms,omitempty" yaml:"cms,omitempty"`
	Analytics       []string `json:"analytics,omitempty" yaml:"analytics,omitempty"`
	HasViewportMeta bool     `json:"has_viewport_meta" yaml:"has_viewport_meta"`
	MobileFriendly  bool     `json:"mobile_friendly" yaml:"mobile_friendly"`
}

// SEOSignals describe indexability and on-page SEO facts.
type SEOSignals struct {
	Indexable          bool `json:"indexable" yaml:"indexable"`
	HasTitle           bool `json:"has_title" yaml:"has_title"`
	HasMetaDescription bool `json:"has_meta_description" yaml:"has_meta_description"`
	HasStructuredData  bool `json:"has_structured_data" yaml:"has_structured_data"`
	HasSitemap         bool `json:"has_sitemap" yaml:"has_sitemap"`
	HasRobotsTxt       bool `json:"has_robots_txt" yaml:"has_robots_txt"`
	H1Count            int  `json:"h1_count" yaml:"h1_count"`
}

// TrustSignals wrap the trust-signal detector facts for the audited site.
type TrustSignals struct {
	Facts TrustFacts `json:"facts" yaml:"facts"`
}

// SecuritySignals describe transport security facts.
type SecuritySignals struct {
	HTTPS          bool `json:"https" yaml:"https"`
	HSTS           bool `json:"hsts" yaml:"hsts"`
	MixedContent   bool `json:"mixed_content" yaml:"mixed_content"`
	CertExpiryDays *int `json:"cert_expiry_days,omitempty" yaml:"cert_expiry_days,omitempty"`
}

// ContentSignals describe content volume and freshness.
type ContentSignals struct {
	WordCount  int        `json:"word_count" yaml:"word_count"`
	ImageCount int        `json:"image_count" yaml:"image_count"`
	LastUpdate *time.Time `json:"last_update,omitempty" yaml:"last_update,omitempty"`
}

// BookingSignals wrap the booking-flow detector facts plus the observed
// booking path.
type BookingSignals struct {
	Facts BookingFacts  `json:"facts" yaml:"facts"`
	Steps []BookingStep `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// BookingStep is one step of the crawler-observed booking path, indexed by
// position in Steps.
type BookingStep struct {
	URL         string  `json:"url" yaml:"url"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	DurationMs  float64 `json:"duration_ms" yaml:"duration_ms"`
}

// Artifacts are captured recordings attached to the audit.
type Artifacts struct {
	SessionReplays []SessionReplay `json:"session_replays,omitempty" yaml:"session_replays,omitempty"`
}

// SessionReplay is one recorded browsing session.
type SessionReplay struct {
	URL        string  `json:"url" yaml:"url"`
	StorageKey string  `json:"storage_key" yaml:"storage_key"`
	DurationMs float64 `json:"duration_ms" yaml:"duration_ms"`
}
