package experience

import (
	"math"
	"strings"
	"time"

	"github.com/jonathan/industry-match/internal/industry"
	"github.com/jonathan/industry-match/internal/types"
)

const (
	// daysPerYear is the average Gregorian year length used for all year arithmetic.
	daysPerYear = 365.25
	// maxYearsPerRow caps a single work-history entry.
	maxYearsPerRow = 10.0
)

// dateLayouts are tried in order when parsing work-history dates.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01",
	"2006",
}

// Accumulator converts work history into per-industry years of experience.
// The zero value uses the wall clock.
type Accumulator struct {
	// Now returns the instant used for open-ended rows and the profile timestamp.
	Now func() time.Time
}

// NewAccumulator returns an Accumulator that reads the wall clock.
func NewAccumulator() *Accumulator {
	return &Accumulator{Now: time.Now}
}

func (a *Accumulator) now() time.Time {
	if a == nil || a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// ComputeYearsForRow computes the years of experience for one row against the wall clock.
func ComputeYearsForRow(startDate string, endDate *string, isCurrent *bool) float64 {
	return NewAccumulator().YearsForRow(startDate, endDate, isCurrent)
}

// BuildIndustryYearsFromWorkExperience rebuilds a candidate's profile against the wall clock.
func BuildIndustryYearsFromWorkExperience(candidateID string, rows []types.WorkExperienceRow) *types.IndustryProfile {
	return NewAccumulator().Build(candidateID, rows)
}

// YearsForRow returns the elapsed years between start and the effective end of a row.
//
// An unparseable or missing start yields 0. A current row without an end date runs until
// now. Otherwise a present end date is parsed and falls back to now when unparseable, and a
// missing end date also means now, so isCurrent never overrides an explicit end date.
// End before start yields 0. The result is capped at 10 years.
func (a *Accumulator) YearsForRow(startDate string, endDate *string, isCurrent *bool) float64 {
	return a.rowYears(types.WorkExperienceRow{StartDate: startDate, EndDate: endDate, IsCurrent: isCurrent})
}

func (a *Accumulator) rowYears(row types.WorkExperienceRow) float64 {
	start, ok := parseDate(row.StartDate)
	if !ok {
		return 0
	}

	end := effectiveEnd(row, a.now())
	if end.Before(start) {
		return 0
	}

	years := end.Sub(start).Hours() / (24 * daysPerYear)
	years = math.Max(years, 0)
	return math.Min(years, maxYearsPerRow)
}

// effectiveEnd resolves the instant a row stops accruing experience.
func effectiveEnd(row types.WorkExperienceRow, now time.Time) time.Time {
	endText := strings.TrimSpace(row.EndDateValue())
	if row.Current() && endText == "" {
		return now
	}
	if parsed, ok := parseDate(endText); ok {
		return parsed
	}
	// Missing or unparseable end date.
	return now
}

// Build classifies each row's position and adds its years to every tag it maps to.
// Rows whose position matches no industry are skipped. Tags nobody contributed to are absent.
// The whole profile is rebuilt from rows on every call.
func (a *Accumulator) Build(candidateID string, rows []types.WorkExperienceRow) *types.IndustryProfile {
	years := make(types.IndustryYears)

	for _, row := range rows {
		tags := industry.IndustriesForPosition(row.Position)
		if len(tags) == 0 {
			continue
		}

		rowYears := a.rowYears(row)
		if rowYears <= 0 {
			continue
		}

		// Years are credited in full to every matched tag, not split between them.
		for _, tag := range tags {
			years[tag] += rowYears
		}
	}

	return &types.IndustryProfile{
		CandidateID:   candidateID,
		IndustryYears: years,
		UpdatedAt:     a.now().UTC(),
	}
}

// parseDate parses a work-history date in any of the accepted layouts.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
