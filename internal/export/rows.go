package export

import "time"

// RowSet is everything one audit flattens into. Child rows are
// independently insertable tables, all foreign-keyed by AuditID.
type RowSet struct {
	Audit         AuditRow                   `json:"audit"`
	Findings      []FindingRow               `json:"findings"`
	CrawlPages    []CrawlPageRow             `json:"crawl_pages"`
	BookingSteps  []BookingStepRow           `json:"booking_steps"`
	Replays       []SessionReplayRow         `json:"session_replays"`
	ModuleErrors  []ModuleErrorRow           `json:"module_errors"`
	Opportunities []LighthouseOpportunityRow `json:"lighthouse_opportunities"`
}

// AuditRow is the wide one-row-per-audit record. Pointer columns are
// nullable: a nil means the source bundle was absent, never "zero".
type AuditRow struct {
	AuditID     string    `json:"audit_id"`
	Domain      string    `json:"domain"`
	Status      string    `json:"status"`
	GeneratedAt time.Time `json:"generated_at"`
	InsertedAt  time.Time `json:"inserted_at"`

	CampaignSource *string `json:"campaign_source"`
	CampaignMedium *string `json:"campaign_medium"`
	CampaignName   *string `json:"campaign_name"`

	OverallScore              *float64 `json:"overall_score"`
	ProjectedScore            *float64 `json:"projected_score"`
	ProjectedScoreWithProduct *float64 `json:"projected_score_with_product"`
	ConversionLossPercent     *float64 `json:"conversion_loss_percent"`
	ScoringVersion            *string  `json:"scoring_version"`

	ConversionScore  *float64 `json:"conversion_score"`
	TrustScore       *float64 `json:"trust_score"`
	PerformanceScore *float64 `json:"performance_score"`
	SEOScore         *float64 `json:"seo_score"`
	MobileScore      *float64 `json:"mobile_score"`
	SecurityScore    *float64 `json:"security_score"`
	BlockerCount     *int     `json:"blocker_count"`

	PerfScoreMobile  *float64 `json:"perf_score_mobile"`
	PerfScoreDesktop *float64 `json:"perf_score_desktop"`
	LCPMsMobile      *float64 `json:"lcp_ms_mobile"`
	CLSMobile        *float64 `json:"cls_mobile"`

	PagesCrawled *int `json:"pages_crawled"`

	BookingEngineName       *string  `json:"booking_engine_name"`
	BookingEngineType       *string  `json:"booking_engine_type"`
	BookingEngineConfidence *float64 `json:"booking_engine_confidence"`
	CTAFound                *bool    `json:"cta_found"`
	CTALocation             *string  `json:"cta_location"`
	ClicksToBook            *int     `json:"clicks_to_book"`
	FrictionScore           *int     `json:"friction_score"`

	ReviewsFound    *bool    `json:"reviews_found"`
	ReviewRating    *float64 `json:"review_rating"`
	ReviewCount     *int     `json:"review_count"`
	TrustSignals    *int     `json:"trust_signal_score"`
	TrustBadgeCount *int     `json:"trust_badge_count"`

	HTTPS           *bool `json:"https"`
	Indexable       *bool `json:"indexable"`
	HasViewportMeta *bool `json:"has_viewport_meta"`

	ErrorCount int `json:"error_count"`
}

// FindingRow is one deduplicated finding. IsTopIssue and IsFastWin are
// independent; Ranking is the 1-based position in topIssues when present
// there, else in fastWins, else null.
type FindingRow struct {
	AuditID    string    `json:"audit_id"`
	FindingID  string    `json:"finding_id"`
	Category   string    `json:"category"`
	Severity   string    `json:"severity"`
	Title      string    `json:"title"`
	Impact     float64   `json:"impact"`
	Confidence float64   `json:"confidence"`
	Penalty    float64   `json:"penalty"`
	Evidence   []string  `json:"evidence"`
	Fix        string    `json:"fix"`
	Effort     string    `json:"effort"`
	Tags       []string  `json:"tags"`
	IsTopIssue bool      `json:"is_top_issue"`
	IsFastWin  bool      `json:"is_fast_win"`
	Ranking    *int      `json:"ranking"`
	InsertedAt time.Time `json:"inserted_at"`
}

// CrawlPageRow is one crawled page with its sub-counts.
type CrawlPageRow struct {
	AuditID           string    `json:"audit_id"`
	URL               string    `json:"url"`
	Title             string    `json:"title"`
	StatusCode        int       `json:"status_code"`
	LoadTimeMs        float64   `json:"load_time_ms"`
	CTACount          int       `json:"cta_count"`
	AboveFoldCTACount int       `json:"above_fold_cta_count"`
	FormCount         int       `json:"form_count"`
	TrustElementCount int       `json:"trust_element_count"`
	PolicyLinkCount   int       `json:"policy_link_count"`
	ScriptCount       int       `json:"script_count"`
	StylesheetCount   int       `json:"stylesheet_count"`
	ImageCount        int       `json:"image_count"`
	InsertedAt        time.Time `json:"inserted_at"`
}

// BookingStepRow is one booking-path step, indexed by position.
type BookingStepRow struct {
	AuditID     string    `json:"audit_id"`
	StepIndex   int       `json:"step_index"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	DurationMs  float64   `json:"duration_ms"`
	InsertedAt  time.Time `json:"inserted_at"`
}

// SessionReplayRow maps one captured session 1:1.
type SessionReplayRow struct {
	AuditID    string    `json:"audit_id"`
	URL        string    `json:"url"`
	StorageKey string    `json:"storage_key"`
	DurationMs float64   `json:"duration_ms"`
	InsertedAt time.Time `json:"inserted_at"`
}

// ModuleErrorRow maps one upstream module failure 1:1.
type ModuleErrorRow struct {
	AuditID    string    `json:"audit_id"`
	Module     string    `json:"module"`
	Severity   string    `json:"severity"`
	Message    string    `json:"message"`
	Retriable  bool      `json:"retriable"`
	InsertedAt time.Time `json:"inserted_at"`
}

// LighthouseOpportunityRow is one improvement opportunity, tagged with the
// measurement strategy that produced it.
type LighthouseOpportunityRow struct {
	AuditID            string    `json:"audit_id"`
	Strategy           string    `json:"strategy"`
	OpportunityID      string    `json:"opportunity_id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	EstimatedSavingsMs float64   `json:"estimated_savings_ms"`
	InsertedAt         time.Time `json:"inserted_at"`
}
