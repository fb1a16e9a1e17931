package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/industry-match/internal/industry"
	"github.com/jonathan/industry-match/internal/matching"
	"github.com/jonathan/industry-match/internal/observability"
	"github.com/jonathan/industry-match/internal/types"
)

// MatchResponse is the body returned by POST /match.
type MatchResponse struct {
	JobTags []string `json:"job_tags"`
	*types.MatchResult
}

// handleMatch scores a job's industries against inline years or a stored profile.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorFromErr(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFromErr(w, validationError(err))
		return
	}

	years := req.IndustryYears
	if years == nil {
		if s.store == nil {
			s.errorResponse(w, http.StatusServiceUnavailable, "profile store not configured")
			return
		}
		stored, err := s.store.GetIndustryProfile(r.Context(), req.CandidateID)
		if err != nil {
			s.errorFromErr(w, fmt.Errorf("failed to load industry profile: %w", err))
			return
		}
		if stored == nil {
			s.errorFromErr(w, &ErrProfileNotFound{CandidateID: req.CandidateID})
			return
		}
		years = stored.IndustryYears
	}

	tags := requestJobTags(&req)
	result := matching.ComputeIndustryMatch(tags, years)
	observability.RecordMatch(result)

	s.jsonResponse(w, http.StatusOK, MatchResponse{JobTags: tags, MatchResult: result})
}

// requestJobTags merges the raw industry string with explicit tags, both canonicalized.
// The company lookup is consulted only when neither yields a tag.
func requestJobTags(req *types.MatchRequest) []string {
	tags := industry.ParseIndustryTags(req.JobIndustry)
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		seen[tag] = struct{}{}
	}
	for _, raw := range req.JobTags {
		tag := industry.CanonicalTag(raw)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	if len(tags) == 0 {
		return industry.IndustriesForCompany(req.Company)
	}
	return tags
}

// validationError converts validator output into an ErrValidation naming the first failing field.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{
			Field:   fe.Namespace(),
			Message: fmt.Sprintf("failed '%s' validation", fe.Tag()),
		}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}
