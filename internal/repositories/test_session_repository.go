package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// testSessionRepository implements test completion marker data access
type testSessionRepository struct {
	db *sql.DB
}

// NewTestSessionRepository creates a new test session repository
func NewTestSessionRepository(db *sql.DB) *testSessionRepository {
	return &testSessionRepository{
		db: db,
	}
}

// Create inserts a completion marker for a finished test
func (r *testSessionRepository) Create(ctx context.Context, userID int) error {
	query := `
		INSERT INTO test_sessions (user_id, completed_at)
		VALUES (?, UTC_TIMESTAMP())
	`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to create test session: %w", err)
	}

	return nil
}

// CountByUserID returns the number of completed tests for a user
func (r *testSessionRepository) CountByUserID(ctx context.Context, userID int) (int, error) {
	query := `SELECT COUNT(*) FROM test_sessions WHERE user_id = ?`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count test sessions: %w", err)
	}

	return count, nil
}

// DeleteByUserID deletes all test session rows for a user
func (r *testSessionRepository) DeleteByUserID(ctx context.Context, userID int) error {
	query := `DELETE FROM test_sessions WHERE user_id = ?`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete test sessions: %w", err)
	}

	return nil
}
