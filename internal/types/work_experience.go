// Package types provides type definitions for structured data used throughout the industry-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// WorkHistory is the on-disk / over-the-wire form of a candidate's full work history.
type WorkHistory struct {
	CandidateID string              `json:"candidate_id,omitempty"`
	Rows        []WorkExperienceRow `json:"work_experience"`
}

// WorkExperienceRow is one entry of a candidate's work history.
// Dates are kept as the raw text the profile editor stored; the accumulator parses them.
type WorkExperienceRow struct {
	Position  string  `json:"position" validate:"max=300"`
	StartDate string  `json:"start_date" validate:"max=64"`
	EndDate   *string `json:"end_date,omitempty" validate:"omitempty,max=64"`
	IsCurrent *bool   `json:"is_current,omitempty"`
}

// EndDateValue returns the end date text, or "" when absent.
func (r WorkExperienceRow) EndDateValue() string {
	if r.EndDate == nil {
		return ""
	}
	return *r.EndDate
}

// Current reports whether the row is flagged as the candidate's current job.
func (r WorkExperienceRow) Current() bool {
	return r.IsCurrent != nil && *r.IsCurrent
}
