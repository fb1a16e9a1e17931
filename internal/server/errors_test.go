package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/industry-match/internal/profile"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &ErrValidation{Field: "job_tags", Message: "too many"}, http.StatusBadRequest},
		{"not found", &ErrProfileNotFound{CandidateID: "abc"}, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", &ErrProfileNotFound{CandidateID: "abc"}), http.StatusNotFound},
		{"forbidden", &ErrForbidden{}, http.StatusForbidden},
		{"no store", profile.ErrNoStore, http.StatusServiceUnavailable},
		{"persist", &profile.PersistError{CandidateID: "abc", Cause: errors.New("down")}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "validation error: id - must be a UUID", (&ErrValidation{Field: "id", Message: "must be a UUID"}).Error())
	assert.Equal(t, "industry profile not found: abc", (&ErrProfileNotFound{CandidateID: "abc"}).Error())
	assert.Equal(t, "forbidden", (&ErrForbidden{}).Error())
}
