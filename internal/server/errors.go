// Package server provides the HTTP REST API for industry matching and candidate profiles.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/industry-match/internal/profile"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrProfileNotFound indicates the candidate has no persisted industry profile
type ErrProfileNotFound struct {
	CandidateID string
}

func (e *ErrProfileNotFound) Error() string {
	return fmt.Sprintf("industry profile not found: %s", e.CandidateID)
}

// ErrForbidden indicates the authenticated candidate may not access another candidate's data
type ErrForbidden struct{}

func (e *ErrForbidden) Error() string {
	return "forbidden"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var notFoundErr *ErrProfileNotFound
	var forbiddenErr *ErrForbidden
	var persistErr *profile.PersistError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &forbiddenErr):
		return http.StatusForbidden
	case errors.Is(err, profile.ErrNoStore):
		return http.StatusServiceUnavailable
	case errors.As(err, &persistErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
