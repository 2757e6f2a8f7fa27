package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hanyustudent/backend/internal/models"
)

// speedChallengeRepository implements speed challenge score data access
type speedChallengeRepository struct {
	db *sql.DB
}

// NewSpeedChallengeRepository creates a new speed challenge repository
func NewSpeedChallengeRepository(db *sql.DB) *speedChallengeRepository {
	return &speedChallengeRepository{
		db: db,
	}
}

// Create inserts a finished speed challenge attempt
func (r *speedChallengeRepository) Create(ctx context.Context, score *models.SpeedChallengeScore) error {
	query := `
		INSERT INTO speed_challenge_scores (user_id, score, time_used_seconds, created_at)
		VALUES (?, ?, ?, UTC_TIMESTAMP())
	`

	result, err := r.db.ExecContext(ctx, query,
		score.UserID,
		score.Score,
		score.TimeUsedSeconds,
	)
	if err != nil {
		return fmt.Errorf("failed to create speed challenge score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	score.ID = int(id)
	return nil
}

// GetBest retrieves the user's best attempt: highest score, ties broken by
// lower time used. Returns (nil, nil) when the user has no attempts.
func (r *speedChallengeRepository) GetBest(ctx context.Context, userID int) (*models.SpeedChallengeScore, error) {
	query := `
		SELECT id, user_id, score, time_used_seconds, created_at
		FROM speed_challenge_scores
		WHERE user_id = ?
		ORDER BY score DESC, time_used_seconds ASC
		LIMIT 1
	`

	best := &models.SpeedChallengeScore{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&best.ID,
		&best.UserID,
		&best.Score,
		&best.TimeUsedSeconds,
		&best.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get best speed challenge score: %w", err)
	}

	return best, nil
}
