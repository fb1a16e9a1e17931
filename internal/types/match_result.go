package types

// ExactMatch records a job tag the candidate has direct experience in.
type ExactMatch struct {
	Tag   string  `json:"tag"`
	Years float64 `json:"years"`
}

// RelatedMatch records a job tag reached through an adjacent industry.
type RelatedMatch struct {
	JobTag     string  `json:"job_tag"`
	MatchedVia string  `json:"matched_via"`
	Years      float64 `json:"years"`
}

// MatchResult is the score of one job's industries against one candidate.
// MatchedExact, MatchedRelated and Missing partition the job's tag set.
// Percent is nil (and IsNA true) only when the job declared no industries.
type MatchResult struct {
	Percent        *int           `json:"percent"`
	IsNA           bool           `json:"is_na"`
	MatchedExact   []ExactMatch   `json:"matched_exact"`
	MatchedRelated []RelatedMatch `json:"matched_related"`
	Missing        []string       `json:"missing"`
	Reasons        []string       `json:"reasons"`
}

// Scored reports whether the result carries a real percentage.
func (r *MatchResult) Scored() bool {
	return r != nil && r.Percent != nil
}
