package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hanyustudent/backend/internal/models"
)

// sessionProgressRepository implements session progress data access
type sessionProgressRepository struct {
	db *sql.DB
}

// NewSessionProgressRepository creates a new session progress repository
func NewSessionProgressRepository(db *sql.DB) *sessionProgressRepository {
	return &sessionProgressRepository{
		db: db,
	}
}

// Get retrieves the session progress row for a user
//
// Returns (nil, nil) when no row exists so the service can create it lazily.
func (r *sessionProgressRepository) Get(ctx context.Context, userID int) (*models.SessionProgress, error) {
	query := `
		SELECT user_id, current_session, total_study_time, last_studied
		FROM session_progress
		WHERE user_id = ?
		LIMIT 1
	`

	progress := &models.SessionProgress{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&progress.UserID,
		&progress.CurrentSession,
		&progress.TotalStudyTime,
		&progress.LastStudied,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session progress: %w", err)
	}

	return progress, nil
}

// Create inserts a fresh session progress row with current_session = 0
//
// INSERT IGNORE keeps concurrent lazy creation idempotent.
func (r *sessionProgressRepository) Create(ctx context.Context, userID int) error {
	query := `
		INSERT IGNORE INTO session_progress (user_id, current_session, total_study_time, last_studied)
		VALUES (?, 0, 0, NOW())
	`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to create session progress: %w", err)
	}

	return nil
}

// Update merges the provided fields into the row, always stamping last_studied
func (r *sessionProgressRepository) Update(ctx context.Context, userID int, fields models.UpdateSessionProgressRequest) error {
	setParts := []string{"last_studied = NOW()"}
	var args []any

	if fields.CurrentSession != nil {
		setParts = append(setParts, "current_session = ?")
		args = append(args, *fields.CurrentSession)
	}
	if fields.TotalStudyTime != nil {
		setParts = append(setParts, "total_study_time = ?")
		args = append(args, *fields.TotalStudyTime)
	}

	query := fmt.Sprintf(`
		UPDATE session_progress
		SET %s
		WHERE user_id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, userID)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update session progress: %w", err)
	}

	return nil
}

// Delete removes the session progress row for a user
//
// Deleting a missing row is not an error; the next Get recreates it at zero.
func (r *sessionProgressRepository) Delete(ctx context.Context, userID int) error {
	query := `DELETE FROM session_progress WHERE user_id = ?`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete session progress: %w", err)
	}

	return nil
}
