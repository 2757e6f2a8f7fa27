package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// challengeCompletionRepository implements daily challenge completion data access
type challengeCompletionRepository struct {
	db *sql.DB
}

// NewChallengeCompletionRepository creates a new challenge completion repository
func NewChallengeCompletionRepository(db *sql.DB) *challengeCompletionRepository {
	return &challengeCompletionRepository{
		db: db,
	}
}

// GetCompletedStepIndexes retrieves the step indexes the user completed on the
// given UTC date (YYYY-MM-DD)
func (r *challengeCompletionRepository) GetCompletedStepIndexes(ctx context.Context, userID int, date string) ([]int, error) {
	query := `
		SELECT step_index
		FROM challenge_completions
		WHERE user_id = ? AND challenge_date = ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query challenge completions: %w", err)
	}
	defer rows.Close()

	var stepIndexes []int
	for rows.Next() {
		var stepIndex int
		if err := rows.Scan(&stepIndex); err != nil {
			return nil, fmt.Errorf("failed to scan step index: %w", err)
		}
		stepIndexes = append(stepIndexes, stepIndex)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return stepIndexes, nil
}

// MarkComplete records a completed challenge step for the given UTC date
//
// INSERT IGNORE makes repeated completions of the same step idempotent.
func (r *challengeCompletionRepository) MarkComplete(ctx context.Context, userID int, date string, stepIndex int) error {
	query := `
		INSERT IGNORE INTO challenge_completions (user_id, challenge_date, step_index, created_at)
		VALUES (?, ?, ?, UTC_TIMESTAMP())
	`

	if _, err := r.db.ExecContext(ctx, query, userID, date, stepIndex); err != nil {
		return fmt.Errorf("failed to mark challenge complete: %w", err)
	}

	return nil
}
