package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/industry-match/internal/types"
)

// -----------------------------------------------------------------------------
// Industry Profile Methods
// -----------------------------------------------------------------------------

// GetIndustryProfile retrieves a candidate's persisted industry profile.
// Returns nil, nil when the candidate has none.
func (db *DB) GetIndustryProfile(ctx context.Context, candidateID string) (*types.IndustryProfile, error) {
	id, err := parseCandidateID(candidateID)
	if err != nil {
		return nil, err
	}

	var raw []byte
	var updatedAt time.Time
	err = db.pool.QueryRow(ctx,
		`SELECT industry_years, updated_at
		 FROM candidate_industry_profiles WHERE candidate_id = $1`,
		id,
	).Scan(&raw, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get industry profile: %w", err)
	}

	years := make(types.IndustryYears)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &years); err != nil {
			return nil, fmt.Errorf("failed to unmarshal industry years: %w", err)
		}
	}

	return &types.IndustryProfile{
		CandidateID:   id.String(),
		IndustryYears: years,
		UpdatedAt:     updatedAt,
	}, nil
}

// ReplaceIndustryProfile writes the whole profile, creating or overwriting the candidate's row.
// Returns an error wrapping ErrUpsertUnsupported when the database rejects the upsert.
func (db *DB) ReplaceIndustryProfile(ctx context.Context, profile *types.IndustryProfile) error {
	id, payload, err := profilePayload(profile)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO candidate_industry_profiles (candidate_id, industry_years, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (candidate_id) DO UPDATE
		 SET industry_years = EXCLUDED.industry_years, updated_at = EXCLUDED.updated_at`,
		id, payload, profile.UpdatedAt,
	)
	if err != nil {
		return classifyUpsertError(err)
	}
	return nil
}

// PatchIndustryProfile updates the years map and timestamp of an existing row, inserting the
// row only when none exists. It avoids ON CONFLICT entirely.
func (db *DB) PatchIndustryProfile(ctx context.Context, profile *types.IndustryProfile) error {
	id, payload, err := profilePayload(profile)
	if err != nil {
		return err
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE candidate_industry_profiles
		 SET industry_years = $2, updated_at = $3
		 WHERE candidate_id = $1`,
		id, payload, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to patch industry profile: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO candidate_industry_profiles (candidate_id, industry_years, updated_at)
		 VALUES ($1, $2, $3)`,
		id, payload, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert industry profile: %w", err)
	}
	return nil
}

// ListCandidateIDs returns every candidate with stored work history, in id order.
func (db *DB) ListCandidateIDs(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT DISTINCT candidate_id FROM work_experience ORDER BY candidate_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan candidate id: %w", err)
		}
		ids = append(ids, id.String())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}

	return ids, nil
}

// profilePayload validates the profile and encodes its years map as a flat JSON object.
func profilePayload(profile *types.IndustryProfile) (uuid.UUID, []byte, error) {
	if profile == nil {
		return uuid.Nil, nil, fmt.Errorf("industry profile is nil")
	}
	id, err := parseCandidateID(profile.CandidateID)
	if err != nil {
		return uuid.Nil, nil, err
	}

	years := profile.IndustryYears
	if years == nil {
		years = types.IndustryYears{}
	}
	payload, err := json.Marshal(years)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("failed to marshal industry years: %w", err)
	}
	return id, payload, nil
}

func parseCandidateID(candidateID string) (uuid.UUID, error) {
	id, err := uuid.Parse(candidateID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid candidate id %q: %w", candidateID, err)
	}
	return id, nil
}
