package detect

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/sitepulse/siteaudit/internal/audit"
	"github.com/sitepulse/siteaudit/internal/patterns"
)

// Confidence levels for review detection, by strategy. Machine-readable
// markup is authoritative; loose text matching is a weak signal.
const (
	structuredConfidence = 1.0
	platformConfidence   = 0.8
	genericReviewConf    = 0.4
)

var (
	jsonLDRe = regexp.MustCompile(`(?is)<script[^>]*type\s*=\s*["']application/ld\+json["'][^>]*>(.*?)</script>`)

	genericRatingRe = regexp.MustCompile(`(?i)([0-9](?:\.[0-9])?)\s*(?:out\s*of|/)\s*5`)
	genericStarsRe  = regexp.MustCompile(`(?i)stars?`)
	genericReviewRe = regexp.MustCompile(`(?i)reviews?`)

	phoneRe = regexp.MustCompile(`(?i)tel:|(?:\+?\d{1,2}[ .-]?)?\(?\d{3}\)?[ .-]\d{3}[ .-]\d{4}`)
	emailRe = regexp.MustCompile(`(?i)mailto:|[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)
	addrRe  = regexp.MustCompile(`(?i)\d+\s+\w+\s+(?:street|st\.|avenue|ave\.?|road|rd\.|boulevard|blvd\.?|lane|drive|dr\.|highway|hwy)|p\.?o\.?\s*box\s+\d+`)

	testimonialRe = regexp.MustCompile(`(?i)testimonials?|what\s+our\s+guests\s+say|guest\s+stories`)
	privacyRe     = regexp.MustCompile(`(?i)privacy\s+policy|href="[^"]*privacy`)
	termsRe       = regexp.MustCompile(`(?i)terms\s+(?:of\s+(?:service|use)|and\s+conditions)|href="[^"]*terms`)
)

// Trust score contribution caps, per subsystem.
const (
	reviewBasePoints    = 15
	reviewRatingPoints  = 10 // rating >= 4.0
	reviewCountPoints   = 10 // count >= 10
	badgePointsEach     = 5
	badgePointsCap      = 20
	phonePoints         = 8
	emailPoints         = 6
	addressPoints       = 6
	socialPointsEach    = 3
	socialPointsCap     = 10
	testimonialPoints   = 5
	privacyPoints       = 5
	termsPoints         = 5
	goodRatingThreshold = 4.0
	goodCountThreshold  = 10
)

// Trust evaluates the full trust-signal fact set for one page.
//
// Review detection tries strategies in decreasing trust order: structured
// review markup first, known platform widgets second, loose "stars / out
// of 5" text last. A malformed structured-data block is skipped silently.
func Trust(html string, reg *patterns.Registry) audit.TrustFacts {
	facts := audit.TrustFacts{
		Reviews: detectReviews(html, reg),
		Badges:  detectBadges(html, reg),
		Contact: audit.ContactFacts{
			Phone:   phoneRe.MatchString(html),
			Email:   emailRe.MatchString(html),
			Address: addrRe.MatchString(html),
		},
		SocialPlatforms: detectSocial(html, reg),
		HasTestimonials: testimonialRe.MatchString(html),
		Legal: audit.LegalFacts{
			Privacy: privacyRe.MatchString(html),
			Terms:   termsRe.MatchString(html),
		},
	}
	facts.TrustScore = trustScore(facts)
	return facts
}

func detectReviews(html string, reg *patterns.Registry) audit.ReviewFacts {
	if r, ok := detectStructuredReviews(html); ok {
		return r
	}
	for _, platform := range reg.ReviewPlatforms {
		for _, re := range platform.Patterns {
			if !re.MatchString(html) {
				continue
			}
			r := audit.ReviewFacts{
				Found:      true,
				Source:     audit.ReviewPlatform,
				Platform:   platform.Name,
				Confidence: platformConfidence,
			}
			if platform.Rating != nil {
				if m := platform.Rating.FindStringSubmatch(html); m != nil {
					if v, err := strconv.ParseFloat(m[1], 64); err == nil {
						r.Rating = &v
					}
				}
			}
			if platform.Count != nil {
				if m := platform.Count.FindStringSubmatch(html); m != nil {
					if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
						r.Count = &n
					}
				}
			}
			return r
		}
	}
	if m := genericRatingRe.FindStringSubmatch(html); m != nil {
		r := audit.ReviewFacts{Found: true, Source: audit.ReviewGeneric, Confidence: genericReviewConf}
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			r.Rating = &v
		}
		return r
	}
	if genericStarsRe.MatchString(html) && genericReviewRe.MatchString(html) {
		return audit.ReviewFacts{Found: true, Source: audit.ReviewGeneric, Confidence: genericReviewConf}
	}
	return audit.ReviewFacts{Source: audit.ReviewNone}
}

// detectStructuredReviews scans JSON-LD blocks for aggregate review
// markup. Parse failures are skipped; detection falls through to the next
// strategy.
func detectStructuredReviews(html string) (audit.ReviewFacts, bool) {
	for _, m := range jsonLDRe.FindAllStringSubmatch(html, -1) {
		var doc any
		if err := json.Unmarshal([]byte(m[1]), &doc); err != nil {
			continue
		}
		if rating, count, ok := findAggregateRating(doc); ok {
			r := audit.ReviewFacts{
				Found:      true,
				Source:     audit.ReviewStructured,
				Confidence: structuredConfidence,
			}
			if rating != nil {
				r.Rating = rating
			}
			if count != nil {
				r.Count = count
			}
			return r, true
		}
	}
	return audit.ReviewFacts{}, false
}

// findAggregateRating walks a decoded JSON-LD document looking for an
// aggregateRating node (or a node typed AggregateRating).
func findAggregateRating(doc any) (*float64, *int, bool) {
	switch node := doc.(type) {
	case map[string]any:
		if agg, ok := node["aggregateRating"]; ok {
			if rating, count, found := parseAggregateNode(agg); found {
				return rating, count, true
			}
		}
		if t, _ := node["@type"].(string); strings.EqualFold(t, "AggregateRating") {
			if rating, count, found := parseAggregateNode(node); found {
				return rating, count, true
			}
		}
		for _, v := range node {
			if rating, count, found := findAggregateRating(v); found {
				return rating, count, true
			}
		}
	case []any:
		for _, v := range node {
			if rating, count, found := findAggregateRating(v); found {
				return rating, count, true
			}
		}
	}
	return nil, nil, false
}

func parseAggregateNode(v any) (*float64, *int, bool) {
	node, ok := v.(map[string]any)
	if !ok {
		return nil, nil, false
	}
	rating := jsonNumber(node["ratingValue"])
	var count *int
	for _, key := range []string{"reviewCount", "ratingCount"} {
		if f := jsonNumber(node[key]); f != nil {
			n := int(*f)
			count = &n
			break
		}
	}
	if rating == nil && count == nil {
		return nil, nil, false
	}
	return rating, count, true
}

// jsonNumber reads a JSON-LD numeric field that may arrive as a number or
// a string.
func jsonNumber(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return &f
		}
	}
	return nil
}

// detectBadges returns every matching badge. Badges carry no priority and
// multiple badges may co-occur.
func detectBadges(html string, reg *patterns.Registry) []audit.BadgeFacts {
	var badges []audit.BadgeFacts
	for _, badge := range reg.Badges {
		for _, re := range badge.Patterns {
			if re.MatchString(html) {
				badges = append(badges, audit.BadgeFacts{Name: badge.Name, Category: badge.Category})
				break
			}
		}
	}
	return badges
}

func detectSocial(html string, reg *patterns.Registry) []string {
	var found []string
	for _, platform := range reg.Social {
		for _, re := range platform.Patterns {
			if re.MatchString(html) {
				found = append(found, platform.Name)
				break
			}
		}
	}
	return found
}

// trustScore is additive with per-subsystem caps, clamped to [0,100].
func trustScore(f audit.TrustFacts) int {
	score := 0

	if f.Reviews.Found {
		score += reviewBasePoints
		if f.Reviews.Rating != nil && *f.Reviews.Rating >= goodRatingThreshold {
			score += reviewRatingPoints
		}
		if f.Reviews.Count != nil && *f.Reviews.Count >= goodCountThreshold {
			score += reviewCountPoints
		}
	}

	badgePoints := len(f.Badges) * badgePointsEach
	if badgePoints > badgePointsCap {
		badgePoints = badgePointsCap
	}
	score += badgePoints

	if f.Contact.Phone {
		score += phonePoints
	}
	if f.Contact.Email {
		score += emailPoints
	}
	if f.Contact.Address {
		score += addressPoints
	}

	socialPoints := len(f.SocialPlatforms) * socialPointsEach
	if socialPoints > socialPointsCap {
		socialPoints = socialPointsCap
	}
	score += socialPoints

	if f.HasTestimonials {
		score += testimonialPoints
	}
	if f.Legal.Privacy {
		score += privacyPoints
	}
	if f.Legal.Terms {
		score += termsPoints
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
