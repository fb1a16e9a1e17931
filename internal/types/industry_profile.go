package types

import "time"

// IndustryYears maps a canonical industry tag to accumulated years of experience.
// Tags with no experience are absent rather than present at zero.
type IndustryYears map[string]float64

// IndustryProfile is the derived, persisted industry experience of one candidate.
// It is always rebuilt from the complete work history.
type IndustryProfile struct {
	CandidateID   string        `json:"candidate_id"`
	IndustryYears IndustryYears `json:"industry_years"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Tags returns the number of industries with recorded experience.
func (p *IndustryProfile) Tags() int {
	if p == nil {
		return 0
	}
	return len(p.IndustryYears)
}
