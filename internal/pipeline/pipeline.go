// Package pipeline composes the scoring core end to end: HTML signal
// detection, finding rules, and scoring, applied to one normalized audit.
//
// The pipeline degrades instead of failing: an audit with no crawled HTML
// skips detection and scores from whatever bundles it carries. Running an
// audit through the pipeline is deterministic for a fixed registry and
// clock.
package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sitepulse/siteaudit/internal/audit"
	"github.com/sitepulse/siteaudit/internal/detect"
	"github.com/sitepulse/siteaudit/internal/patterns"
	"github.com/sitepulse/siteaudit/internal/rules"
	"github.com/sitepulse/siteaudit/internal/scoring"
)

// Options configures one pipeline run. Zero value is usable: the embedded
// default registry, the wall clock, and the default logger.
type Options struct {
	Registry *patterns.Registry
	Clock    func() time.Time
	Logger   *slog.Logger
}

// Run detects signals, evaluates rules, and scores the audit in place.
// The computed scoring output is attached to the audit and returned.
//
// Detection runs against the first crawled page's rendered HTML. When no
// HTML was captured, existing detector bundles are left untouched and
// rules evaluate whatever the audit already carries.
func Run(a *audit.NormalizedAudit, opts Options) (audit.ScoringOutput, error) {
	if a == nil {
		return audit.ScoringOutput{}, fmt.Errorf("pipeline: nil audit")
	}
	if a.AuditID == "" {
		return audit.ScoringOutput{}, fmt.Errorf("pipeline: audit has no id")
	}

	reg := opts.Registry
	if reg == nil {
		reg = patterns.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if html := primaryHTML(a); html != "" {
		bookingFacts := detect.Booking(html, reg)
		if a.Booking == nil {
			a.Booking = &audit.BookingSignals{}
		}
		a.Booking.Facts = bookingFacts

		trustFacts := detect.Trust(html, reg)
		if a.Trust == nil {
			a.Trust = &audit.TrustSignals{}
		}
		a.Trust.Facts = trustFacts

		logger.Debug("signal detection complete",
			"audit_id", a.AuditID,
			"engine_detected", bookingFacts.Engine.Detected,
			"trust_score", trustFacts.TrustScore,
		)
	} else {
		logger.Debug("no rendered html, skipping detection", "audit_id", a.AuditID)
	}

	findings := rules.EvaluateAll(a)
	out := scoring.Compute(a, findings, reg.Version, clock())
	a.Scoring = &out

	logger.Info("audit scored",
		"audit_id", a.AuditID,
		"domain", a.Domain,
		"overall_score", out.OverallScore,
		"findings", len(findings),
	)
	return out, nil
}

// primaryHTML returns the rendered HTML of the first crawled page that
// captured any, or "".
func primaryHTML(a *audit.NormalizedAudit) string {
	if a.Crawl == nil {
		return ""
	}
	for _, p := range a.Crawl.Pages {
		if p.RawHTML != "" {
			return p.RawHTML
		}
	}
	return ""
}
