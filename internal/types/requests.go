package types

import (
	"github.com/go-playground/validator/v10"
)

// MatchRequest scores one job against a candidate.
// The candidate is given either by ID (profile loaded from the store) or by an inline years map.
type MatchRequest struct {
	JobIndustry   string        `json:"job_industry,omitempty" validate:"max=2000"`
	JobTags       []string      `json:"job_tags,omitempty" validate:"omitempty,max=100,dive,max=100"`
	Company       string        `json:"company,omitempty" validate:"max=200"`
	CandidateID   string        `json:"candidate_id,omitempty" validate:"required_without=IndustryYears,omitempty,uuid"`
	IndustryYears IndustryYears `json:"industry_years,omitempty" validate:"required_without=CandidateID,omitempty,dive,keys,min=1,max=100,endkeys,gte=0"`
}

// ReplaceWorkExperienceRequest replaces a candidate's full work history.
type ReplaceWorkExperienceRequest struct {
	Rows []WorkExperienceRow `json:"work_experience" validate:"max=200,dive"`
}

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ReplaceWorkExperienceRequest using the validator.
func (r *ReplaceWorkExperienceRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
