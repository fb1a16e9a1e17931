// Package profile recomputes a candidate's industry profile from work history and persists it.
package profile

import (
	"errors"
	"fmt"
)

// ErrNoStore is returned when a refresh needs persistence but the refresher has no store.
var ErrNoStore = errors.New("no profile store configured")

// PersistError represents a failed profile write after the fallback was tried
type PersistError struct {
	CandidateID string
	Cause       error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist industry profile for %s: %v", e.CandidateID, e.Cause)
}

func (e *PersistError) Unwrap() error {
	return e.Cause
}
