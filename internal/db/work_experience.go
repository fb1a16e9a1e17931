package db

import (
	"context"
	"fmt"

	"github.com/jonathan/industry-match/internal/types"
)

// -----------------------------------------------------------------------------
// Work Experience Methods
// -----------------------------------------------------------------------------

// ListWorkExperience returns a candidate's work history in the order it was saved.
func (db *DB) ListWorkExperience(ctx context.Context, candidateID string) ([]types.WorkExperienceRow, error) {
	id, err := parseCandidateID(candidateID)
	if err != nil {
		return nil, err
	}

	rows, err := db.pool.Query(ctx,
		`SELECT position, start_date, end_date, is_current
		 FROM work_experience WHERE candidate_id = $1
		 ORDER BY ordinal`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list work experience: %w", err)
	}
	defer rows.Close()

	history := make([]types.WorkExperienceRow, 0)
	for rows.Next() {
		var row types.WorkExperienceRow
		if err := rows.Scan(&row.Position, &row.StartDate, &row.EndDate, &row.IsCurrent); err != nil {
			return nil, fmt.Errorf("failed to scan work experience: %w", err)
		}
		history = append(history, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work experience: %w", err)
	}

	return history, nil
}

// ReplaceWorkExperience swaps a candidate's whole work history in one transaction.
func (db *DB) ReplaceWorkExperience(ctx context.Context, candidateID string, history []types.WorkExperienceRow) error {
	id, err := parseCandidateID(candidateID)
	if err != nil {
		return err
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM work_experience WHERE candidate_id = $1`, id); err != nil {
		return fmt.Errorf("failed to clear work experience: %w", err)
	}

	for i, row := range history {
		_, err := tx.Exec(ctx,
			`INSERT INTO work_experience (candidate_id, ordinal, position, start_date, end_date, is_current)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			id, i, row.Position, row.StartDate, row.EndDate, row.IsCurrent,
		)
		if err != nil {
			return fmt.Errorf("failed to insert work experience row %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit work experience: %w", err)
	}
	return nil
}
