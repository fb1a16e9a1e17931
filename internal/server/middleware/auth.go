// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// candidateIDKey is the context key for storing the authenticated candidate ID.
const candidateIDKey ContextKey = "candidateID"

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (CandidateIDGetter, error)
}

// CandidateIDGetter is an interface for extracting the candidate ID from token claims.
type CandidateIDGetter interface {
	GetCandidateID() uuid.UUID
}

// AuthMiddleware creates middleware that validates bearer tokens and adds the candidate ID
// to the request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				unauthorized(w)
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				unauthorized(w)
				return
			}

			candidateID := claims.GetCandidateID()
			if candidateID == uuid.Nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), candidateIDKey, candidateID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from a case-insensitive "Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], parts[1] != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}` + "\n"))
}

// GetCandidateID extracts the authenticated candidate ID from the request context.
func GetCandidateID(r *http.Request) (uuid.UUID, error) {
	candidateID, ok := r.Context().Value(candidateIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("candidate ID not found in request context")
	}
	return candidateID, nil
}

// WithCandidateID returns a context carrying an authenticated candidate ID.
func WithCandidateID(ctx context.Context, candidateID uuid.UUID) context.Context {
	return context.WithValue(ctx, candidateIDKey, candidateID)
}
