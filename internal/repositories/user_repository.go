package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hanyustudent/backend/internal/models"
)

// userRepository implements user data access
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, display_name, reminders_enabled, created_at)
		VALUES (?, ?, ?, ?, UTC_TIMESTAMP())
	`

	result, err := r.db.ExecContext(ctx, query,
		user.Email,
		user.PasswordHash,
		user.DisplayName,
		user.RemindersEnabled,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByEmail retrieves a user by email. Returns (nil, nil) when none exists.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, display_name, reminders_enabled, created_at
		FROM users
		WHERE email = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.RemindersEnabled,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, display_name, reminders_enabled, created_at
		FROM users
		WHERE id = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.RemindersEnabled,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// UpdateReminders updates the reminder preference flag for a user
func (r *userRepository) UpdateReminders(ctx context.Context, userID int, enabled bool) error {
	query := `UPDATE users SET reminders_enabled = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, enabled, userID); err != nil {
		return fmt.Errorf("failed to update reminder preference: %w", err)
	}

	return nil
}

// GetReminderRecipients retrieves users with reminders enabled who have no
// study activity on the current UTC date
func (r *userRepository) GetReminderRecipients(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT u.id, u.email, u.display_name
		FROM users u
		WHERE u.reminders_enabled = 1
		  AND NOT EXISTS (
			SELECT 1
			FROM activity_log a
			WHERE a.user_id = u.id
			  AND a.activity_type = 'study'
			  AND DATE(a.created_at) = UTC_DATE()
		  )
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminder recipients: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.DisplayName); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}
