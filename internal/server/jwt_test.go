package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/industry-match/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-at-least-16-chars"

func setupTestJWTService(_ *testing.T, expirationHours int) *JWTService {
	cfg := &config.JWTConfig{
		Secret:          testJWTSecret,
		Issuer:          config.DefaultJWTIssuer,
		ExpirationHours: expirationHours,
	}
	return NewJWTService(cfg)
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := setupTestJWTService(t, 24)
	candidateID := uuid.New()

	token, err := service.GenerateToken(candidateID)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	assert.Len(t, parts, 3, "JWT should have 3 parts")
}

func TestJWTService_ValidateToken_RoundTrip(t *testing.T) {
	service := setupTestJWTService(t, 24)
	candidateID := uuid.New()

	token, err := service.GenerateToken(candidateID)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, candidateID, claims.CandidateID)
	assert.Equal(t, candidateID, claims.GetCandidateID())
	assert.Equal(t, candidateID.String(), claims.Subject)
	assert.Equal(t, config.DefaultJWTIssuer, claims.Issuer)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestJWTService_ValidateToken_Rejects(t *testing.T) {
	service := setupTestJWTService(t, 24)
	candidateID := uuid.New()

	signed := func(t *testing.T, method jwt.SigningMethod, claims *Claims, secret string) string {
		t.Helper()
		token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return token
	}
	validClaims := func() *Claims {
		now := time.Now()
		return &Claims{
			CandidateID: candidateID,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   candidateID.String(),
				Issuer:    config.DefaultJWTIssuer,
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
		}
	}

	t.Run("empty", func(t *testing.T) {
		_, err := service.ValidateToken("")
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := service.ValidateToken("not.a.jwt")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signed(t, jwt.SigningMethodHS256, validClaims(), "another-secret-of-enough-length")
		_, err := service.ValidateToken(token)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "signature")
	})

	t.Run("expired", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		_, err := service.ValidateToken(signed(t, jwt.SigningMethodHS256, claims, testJWTSecret))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = nil
		_, err := service.ValidateToken(signed(t, jwt.SigningMethodHS256, claims, testJWTSecret))
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := validClaims()
		claims.Issuer = "someone-else"
		_, err := service.ValidateToken(signed(t, jwt.SigningMethodHS256, claims, testJWTSecret))
		assert.Error(t, err)
	})

	t.Run("other HMAC algorithm", func(t *testing.T) {
		_, err := service.ValidateToken(signed(t, jwt.SigningMethodHS512, validClaims(), testJWTSecret))
		assert.Error(t, err)
	})
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t, 1)
	candidateID := uuid.New()

	token, err := service.GenerateToken(candidateID)
	require.NoError(t, err)

	validator := service.AsTokenValidator()
	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, candidateID, claims.GetCandidateID())

	_, err = validator.ValidateToken("garbage")
	assert.Error(t, err)
}
