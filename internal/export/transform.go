package export

import (
	"time"

	"github.com/sitepulse/siteaudit/internal/audit"
)

// Transform flattens one normalized audit into its row set.
//
// Pure and total: a partial audit nulls out the columns its missing
// bundles would have filled and produces empty child lists, it never
// fails. The inserted_at timestamp is captured exactly once, here, so
// every row of the set carries an identical value.
func Transform(a *audit.NormalizedAudit, now time.Time) RowSet {
	insertedAt := now.UTC()

	return RowSet{
		Audit:         auditRow(a, insertedAt),
		Findings:      findingRows(a.AuditID, a.Scoring, insertedAt),
		CrawlPages:    crawlPageRows(a, insertedAt),
		BookingSteps:  bookingStepRows(a, insertedAt),
		Replays:       replayRows(a, insertedAt),
		ModuleErrors:  moduleErrorRows(a, insertedAt),
		Opportunities: opportunityRows(a, insertedAt),
	}
}

func auditRow(a *audit.NormalizedAudit, insertedAt time.Time) AuditRow {
	row := AuditRow{
		AuditID:     a.AuditID,
		Domain:      a.Domain,
		Status:      string(a.Status),
		GeneratedAt: a.GeneratedAt,
		InsertedAt:  insertedAt,
		ErrorCount:  len(a.Errors),
	}

	if c := a.Inputs.Campaign; c != nil {
		row.CampaignSource = strPtr(c.Source)
		row.CampaignMedium = strPtr(c.Medium)
		row.CampaignName = strPtr(c.Campaign)
	}

	if s := a.Scoring; s != nil {
		row.OverallScore = &s.OverallScore
		row.ProjectedScore = &s.ProjectedScore
		row.ProjectedScoreWithProduct = &s.ProjectedScoreWithProduct
		row.ConversionLossPercent = &s.EstimatedImpact.ConversionLossPercent
		row.ScoringVersion = strPtr(s.Version)

		row.ConversionScore = categoryScorePtr(s, audit.CategoryConversion)
		row.TrustScore = categoryScorePtr(s, audit.CategoryTrust)
		row.PerformanceScore = categoryScorePtr(s, audit.CategoryPerformance)
		row.SEOScore = categoryScorePtr(s, audit.CategorySEO)
		row.MobileScore = categoryScorePtr(s, audit.CategoryMobile)
		row.SecurityScore = categoryScorePtr(s, audit.CategorySecurity)

		blockers := 0
		for _, c := range audit.Categories {
			blockers += s.CategoryScores[c].BlockerCount
		}
		row.BlockerCount = &blockers
	}

	if p := a.Performance; p != nil {
		if p.Mobile != nil {
			row.PerfScoreMobile = p.Mobile.Scores.Performance
			row.LCPMsMobile = p.Mobile.Metrics.LCPMs
			row.CLSMobile = p.Mobile.Metrics.CLS
		}
		if p.Desktop != nil {
			row.PerfScoreDesktop = p.Desktop.Scores.Performance
		}
	}

	if c := a.Crawl; c != nil {
		row.PagesCrawled = &c.PagesCrawled
	}

	if b := a.Booking; b != nil {
		f := b.Facts
		if f.Engine.Detected {
			row.BookingEngineName = strPtr(f.Engine.Name)
			row.BookingEngineType = strPtr(string(f.Engine.Type))
			row.BookingEngineConfidence = &f.Engine.Confidence
		}
		row.CTAFound = &f.CTA.Found
		row.CTALocation = strPtr(string(f.CTA.Location))
		row.ClicksToBook = &f.ClicksToBook
		row.FrictionScore = &f.FrictionScore
	}

	if t := a.Trust; t != nil {
		f := t.Facts
		row.ReviewsFound = &f.Reviews.Found
		row.ReviewRating = f.Reviews.Rating
		row.ReviewCount = f.Reviews.Count
		row.TrustSignals = &f.TrustScore
		badgeCount := len(f.Badges)
		row.TrustBadgeCount = &badgeCount
	}

	if s := a.Security; s != nil {
		row.HTTPS = &s.HTTPS
	}
	if s := a.SEO; s != nil {
		row.Indexable = &s.Indexable
	}
	if t := a.Tech; t != nil {
		row.HasViewportMeta = &t.HasViewportMeta
	}

	return row
}

func crawlPageRows(a *audit.NormalizedAudit, insertedAt time.Time) []CrawlPageRow {
	if a.Crawl == nil {
		return nil
	}
	var rows []CrawlPageRow
	for _, p := range a.Crawl.Pages {
		aboveFold := 0
		for _, cta := range p.CTAs {
			if cta.AboveFold {
				aboveFold++
			}
		}
		rows = append(rows, CrawlPageRow{
			AuditID:           a.AuditID,
			URL:               p.URL,
			Title:             p.Title,
			StatusCode:        p.StatusCode,
			LoadTimeMs:        p.LoadTimeMs,
			CTACount:          len(p.CTAs),
			AboveFoldCTACount: aboveFold,
			FormCount:         len(p.Forms),
			TrustElementCount: len(p.TrustElements),
			PolicyLinkCount:   len(p.PolicyLinks),
			ScriptCount:       p.Resources.Scripts,
			StylesheetCount:   p.Resources.Stylesheets,
			ImageCount:        p.Resources.Images,
			InsertedAt:        insertedAt,
		})
	}
	return rows
}

func bookingStepRows(a *audit.NormalizedAudit, insertedAt time.Time) []BookingStepRow {
	if a.Booking == nil {
		return nil
	}
	var rows []BookingStepRow
	for i, s := range a.Booking.Steps {
		rows = append(rows, BookingStepRow{
			AuditID:     a.AuditID,
			StepIndex:   i,
			URL:         s.URL,
			Description: s.Description,
			DurationMs:  s.DurationMs,
			InsertedAt:  insertedAt,
		})
	}
	return rows
}

func replayRows(a *audit.NormalizedAudit, insertedAt time.Time) []SessionReplayRow {
	if a.Artifacts == nil {
		return nil
	}
	var rows []SessionReplayRow
	for _, r := range a.Artifacts.SessionReplays {
		rows = append(rows, SessionReplayRow{
			AuditID:    a.AuditID,
			URL:        r.URL,
			StorageKey: r.StorageKey,
			DurationMs: r.DurationMs,
			InsertedAt: insertedAt,
		})
	}
	return rows
}

func moduleErrorRows(a *audit.NormalizedAudit, insertedAt time.Time) []ModuleErrorRow {
	var rows []ModuleErrorRow
	for _, e := range a.Errors {
		rows = append(rows, ModuleErrorRow{
			AuditID:    a.AuditID,
			Module:     e.Module,
			Severity:   string(e.Severity),
			Message:    e.Message,
			Retriable:  e.Retriable,
			InsertedAt: insertedAt,
		})
	}
	return rows
}

// opportunityRows iterates both measurement strategies independently;
// each row is tagged with its originating strategy.
func opportunityRows(a *audit.NormalizedAudit, insertedAt time.Time) []LighthouseOpportunityRow {
	if a.Performance == nil {
		return nil
	}
	var rows []LighthouseOpportunityRow
	for _, strategy := range []string{"mobile", "desktop"} {
		res := a.Performance.Result(strategy)
		if res == nil {
			continue
		}
		for _, op := range res.Opportunities {
			rows = append(rows, LighthouseOpportunityRow{
				AuditID:            a.AuditID,
				Strategy:           strategy,
				OpportunityID:      op.ID,
				Title:              op.Title,
				Description:        op.Description,
				EstimatedSavingsMs: op.EstimatedSavingsMs,
				InsertedAt:         insertedAt,
			})
		}
	}
	return rows
}

func strPtr(s string) *string { return &s }

func categoryScorePtr(s *audit.ScoringOutput, c audit.Category) *float64 {
	cs, ok := s.CategoryScores[c]
	if !ok {
		return nil
	}
	score := cs.Score
	return &score
}
