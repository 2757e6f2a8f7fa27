package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hanyustudent/backend/internal/models"
)

// activityLogRepository implements append-only activity log data access
type activityLogRepository struct {
	db *sql.DB
}

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(db *sql.DB) *activityLogRepository {
	return &activityLogRepository{
		db: db,
	}
}

// Create appends an activity log entry
func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLogEntry) error {
	query := `
		INSERT INTO activity_log (user_id, activity_type, duration_seconds, created_at)
		VALUES (?, ?, ?, UTC_TIMESTAMP())
	`

	result, err := r.db.ExecContext(ctx, query,
		entry.UserID,
		entry.Type,
		entry.DurationSeconds,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity log entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	entry.ID = int(id)
	return nil
}

// GetStudyDates retrieves the distinct UTC calendar dates with study activity
// for a user, formatted as YYYY-MM-DD
func (r *activityLogRepository) GetStudyDates(ctx context.Context, userID int) ([]string, error) {
	query := `
		SELECT DISTINCT DATE_FORMAT(created_at, '%Y-%m-%d')
		FROM activity_log
		WHERE user_id = ? AND activity_type = 'study'
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query study dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan study date: %w", err)
		}
		dates = append(dates, date)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return dates, nil
}

// SumDuration returns the total logged duration in seconds for a user
func (r *activityLogRepository) SumDuration(ctx context.Context, userID int) (int, error) {
	query := `
		SELECT COALESCE(SUM(duration_seconds), 0)
		FROM activity_log
		WHERE user_id = ?
	`

	var total int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum activity duration: %w", err)
	}

	return total, nil
}

// DeleteByUserID deletes all activity log entries for a user
func (r *activityLogRepository) DeleteByUserID(ctx context.Context, userID int) error {
	query := `DELETE FROM activity_log WHERE user_id = ?`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete activity log entries: %w", err)
	}

	return nil
}
