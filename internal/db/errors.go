package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUpsertUnsupported is returned when the database rejects the whole-profile upsert.
// Callers fall back to PatchIndustryProfile.
var ErrUpsertUnsupported = errors.New("profile upsert not supported")

// SQLSTATE codes that mean the ON CONFLICT write cannot be used
const (
	sqlStateInvalidColumnReference = "42P10"
	sqlStateFeatureNotSupported    = "0A000"
)

// classifyUpsertError maps upsert rejections onto ErrUpsertUnsupported and wraps everything else.
func classifyUpsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateInvalidColumnReference, sqlStateFeatureNotSupported:
			return fmt.Errorf("%w: %s", ErrUpsertUnsupported, pgErr.Message)
		}
	}
	return fmt.Errorf("failed to replace industry profile: %w", err)
}
