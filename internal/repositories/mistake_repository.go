package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hanyustudent/backend/internal/models"
)

// mistakeRepository implements mistake record data access
type mistakeRepository struct {
	db *sql.DB
}

// NewMistakeRepository creates a new mistake repository
func NewMistakeRepository(db *sql.DB) *mistakeRepository {
	return &mistakeRepository{
		db: db,
	}
}

// GetLastCreatedAt retrieves the timestamp of the most recent mistake for the
// exact (user, word, testType) triple. Returns (nil, nil) when none exists.
func (r *mistakeRepository) GetLastCreatedAt(ctx context.Context, userID, wordID int, testType models.TestType) (*time.Time, error) {
	query := `
		SELECT created_at
		FROM mistakes
		WHERE user_id = ? AND word_id = ? AND test_type = ?
		ORDER BY created_at DESC
		LIMIT 1
	`

	var createdAt time.Time
	err := r.db.QueryRowContext(ctx, query, userID, wordID, testType).Scan(&createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last mistake time: %w", err)
	}

	return &createdAt, nil
}

// Create inserts a new mistake record
func (r *mistakeRepository) Create(ctx context.Context, mistake *models.MistakeRecord) error {
	query := `
		INSERT INTO mistakes (user_id, word_id, test_type, created_at)
		VALUES (?, ?, ?, UTC_TIMESTAMP())
	`

	result, err := r.db.ExecContext(ctx, query,
		mistake.UserID,
		mistake.WordID,
		mistake.TestType,
	)
	if err != nil {
		return fmt.Errorf("failed to create mistake record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	mistake.ID = int(id)
	return nil
}

// CountByUserID returns the total number of mistake rows for a user
func (r *mistakeRepository) CountByUserID(ctx context.Context, userID int) (int, error) {
	query := `SELECT COUNT(*) FROM mistakes WHERE user_id = ?`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count mistakes: %w", err)
	}

	return count, nil
}

// GetUniqueWordIDs returns the distinct word IDs across all mistake rows for a user
func (r *mistakeRepository) GetUniqueWordIDs(ctx context.Context, userID int) ([]int, error) {
	query := `
		SELECT DISTINCT word_id
		FROM mistakes
		WHERE user_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mistake word IDs: %w", err)
	}
	defer rows.Close()

	var wordIDs []int
	for rows.Next() {
		var wordID int
		if err := rows.Scan(&wordID); err != nil {
			return nil, fmt.Errorf("failed to scan word ID: %w", err)
		}
		wordIDs = append(wordIDs, wordID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return wordIDs, nil
}

// GetAllByUserID retrieves all mistake rows for a user, newest first
func (r *mistakeRepository) GetAllByUserID(ctx context.Context, userID int) ([]models.MistakeRecord, error) {
	query := `
		SELECT id, user_id, word_id, test_type, created_at
		FROM mistakes
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mistakes: %w", err)
	}
	defer rows.Close()

	var mistakes []models.MistakeRecord
	for rows.Next() {
		var mistake models.MistakeRecord
		err := rows.Scan(
			&mistake.ID,
			&mistake.UserID,
			&mistake.WordID,
			&mistake.TestType,
			&mistake.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mistake: %w", err)
		}
		mistakes = append(mistakes, mistake)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return mistakes, nil
}

// DeleteByUserID deletes all mistake rows for a user
func (r *mistakeRepository) DeleteByUserID(ctx context.Context, userID int) error {
	query := `DELETE FROM mistakes WHERE user_id = ?`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete mistakes: %w", err)
	}

	return nil
}
