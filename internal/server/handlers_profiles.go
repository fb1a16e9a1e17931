package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/industry-match/internal/server/middleware"
	"github.com/jonathan/industry-match/internal/types"
)

// authorizeCandidate resolves the {id} path value and checks it against the token subject.
// It writes the error response itself and returns false when the request must stop.
func (s *Server) authorizeCandidate(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorFromErr(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return "", false
	}

	subject, err := middleware.GetCandidateID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	if subject != id {
		s.errorFromErr(w, &ErrForbidden{})
		return "", false
	}

	return id.String(), true
}

func (s *Server) handleGetIndustryProfile(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := s.authorizeCandidate(w, r)
	if !ok {
		return
	}

	stored, err := s.store.GetIndustryProfile(r.Context(), candidateID)
	if err != nil {
		s.errorFromErr(w, fmt.Errorf("failed to load industry profile: %w", err))
		return
	}
	if stored == nil {
		s.errorFromErr(w, &ErrProfileNotFound{CandidateID: candidateID})
		return
	}

	s.jsonResponse(w, http.StatusOK, stored)
}

// handleReplaceWorkExperience stores the full work history, then rebuilds the profile from it.
func (s *Server) handleReplaceWorkExperience(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := s.authorizeCandidate(w, r)
	if !ok {
		return
	}

	var req types.ReplaceWorkExperienceRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorFromErr(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFromErr(w, validationError(err))
		return
	}
	if req.Rows == nil {
		req.Rows = []types.WorkExperienceRow{}
	}

	if err := s.store.ReplaceWorkExperience(r.Context(), candidateID, req.Rows); err != nil {
		s.errorFromErr(w, fmt.Errorf("failed to store work experience: %w", err))
		return
	}

	refreshed, err := s.refresher.Refresh(r.Context(), candidateID, req.Rows)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, refreshed)
}

func (s *Server) handleRefreshIndustryProfile(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := s.authorizeCandidate(w, r)
	if !ok {
		return
	}

	refreshed, err := s.refresher.RefreshFromStore(r.Context(), candidateID)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, refreshed)
}
