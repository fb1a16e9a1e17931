// Package matching scores a job's industries against a candidate's accumulated experience.
package matching

import (
	"fmt"
	"math"

	"github.com/jonathan/industry-match/internal/industry"
	"github.com/jonathan/industry-match/internal/types"
)

// Scoring weights
const (
	ExactMatchScore   = 1.0
	RelatedMatchScore = 0.5
	// MaxYearsBoost is the largest bonus years can add to a tag's score.
	MaxYearsBoost = 0.2
	// BoostSaturationYears is where the years boost reaches MaxYearsBoost.
	BoostSaturationYears = 5.0
)

// NotApplicableReason is the only reason given when a job declares no industries.
const NotApplicableReason = "Job industry not provided"

// ComputeIndustryMatch scores job tags against a candidate's industry years.
//
// Job tags are expected in canonical form; duplicates are scored once, keeping first-seen
// order. An empty tag set yields a nil Percent with IsNA set, so callers can exclude the
// job from ranking instead of treating it as a zero.
func ComputeIndustryMatch(jobTags []string, years types.IndustryYears) *types.MatchResult {
	result := &types.MatchResult{
		MatchedExact:   []types.ExactMatch{},
		MatchedRelated: []types.RelatedMatch{},
		Missing:        []string{},
		Reasons:        []string{},
	}

	tags := dedupe(jobTags)
	if len(tags) == 0 {
		result.IsNA = true
		result.Reasons = append(result.Reasons, NotApplicableReason)
		return result
	}

	var total float64
	for _, tag := range tags {
		total += scoreTag(tag, years, result)
	}

	percent := int(math.Round(total / float64(len(tags)) * 100))
	result.Percent = &percent
	result.Reasons = buildReasons(result)

	return result
}

// ScoreJob parses a raw job industry string, falling back to the company lookup when the
// posting has no industry, and scores the result.
func ScoreJob(rawIndustry, company string, years types.IndustryYears) *types.MatchResult {
	return ComputeIndustryMatch(industry.SeedJobTags(rawIndustry, company), years)
}

// scoreTag classifies one job tag into the result's partitions and returns its contribution.
func scoreTag(tag string, years types.IndustryYears, result *types.MatchResult) float64 {
	if y := years[tag]; y > 0 {
		result.MatchedExact = append(result.MatchedExact, types.ExactMatch{Tag: tag, Years: y})
		return clamp(ExactMatchScore + YearsBoost(y))
	}

	// First related tag with experience wins.
	for _, related := range industry.RelatedIndustries(tag) {
		if y := years[related]; y > 0 {
			result.MatchedRelated = append(result.MatchedRelated, types.RelatedMatch{
				JobTag:     tag,
				MatchedVia: related,
				Years:      y,
			})
			return clamp(RelatedMatchScore + YearsBoost(y))
		}
	}

	result.Missing = append(result.Missing, tag)
	return 0
}

// YearsBoost returns the bonus for years of experience: linear up to BoostSaturationYears,
// flat at MaxYearsBoost after.
func YearsBoost(years float64) float64 {
	if years <= 0 {
		return 0
	}
	return math.Min(years/BoostSaturationYears, 1) * MaxYearsBoost
}

func clamp(score float64) float64 {
	return math.Max(0, math.Min(score, 1))
}

func buildReasons(result *types.MatchResult) []string {
	reasons := make([]string, 0, len(result.MatchedExact)+len(result.MatchedRelated)+len(result.Missing))

	for _, m := range result.MatchedExact {
		reasons = append(reasons, fmt.Sprintf("Exact match: %s (%s yrs)",
			industry.CapitalizeIndustryTag(m.Tag), formatYears(m.Years)))
	}
	for _, m := range result.MatchedRelated {
		reasons = append(reasons, fmt.Sprintf("Related match: %s via %s (%s yrs)",
			industry.CapitalizeIndustryTag(m.JobTag), industry.CapitalizeIndustryTag(m.MatchedVia), formatYears(m.Years)))
	}
	for _, tag := range result.Missing {
		reasons = append(reasons, fmt.Sprintf("No match: %s", industry.CapitalizeIndustryTag(tag)))
	}

	return reasons
}

func formatYears(years float64) string {
	return fmt.Sprintf("%.1f", years)
}

func dedupe(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, exists := seen[tag]; exists {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
