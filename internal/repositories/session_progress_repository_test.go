package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hanyustudent/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupSessionProgressTestRepository creates a session progress repository with a mock database
func setupSessionProgressTestRepository(t *testing.T) (*sessionProgressRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewSessionProgressRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestSessionProgressRepository_Get(t *testing.T) {
	lastStudied := time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedNil   bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"user_id", "current_session", "total_study_time", "last_studied"}).
					AddRow(1, 4, 7200, lastStudied)
				mock.ExpectQuery(`SELECT user_id, current_session, total_study_time, last_studied\s+FROM session_progress\s+WHERE user_id = \?\s+LIMIT 1`).
					WithArgs(1).
					WillReturnRows(rows)
			},
		},
		{
			name: "missing row yields nil without error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT user_id, current_session`).
					WithArgs(1).
					WillReturnError(sql.ErrNoRows)
			},
			expectedNil: true,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT user_id, current_session`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSessionProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			progress, err := repo.Get(context.Background(), 1)

			if tt.expectedError {
				assert.Error(t, err)
			} else if tt.expectedNil {
				assert.NoError(t, err)
				assert.Nil(t, progress)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, progress)
				assert.Equal(t, 4, progress.CurrentSession)
				assert.Equal(t, 7200, progress.TotalStudyTime)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionProgressRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupSessionProgressTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`INSERT IGNORE INTO session_progress \(user_id, current_session, total_study_time, last_studied\)\s+VALUES \(\?, 0, 0, NOW\(\)\)`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), 1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionProgressRepository_Update(t *testing.T) {
	currentSession := 3
	studyTime := 5400

	tests := []struct {
		name      string
		fields    models.UpdateSessionProgressRequest
		setupMock func(sqlmock.Sqlmock)
	}{
		{
			name:   "both fields",
			fields: models.UpdateSessionProgressRequest{CurrentSession: &currentSession, TotalStudyTime: &studyTime},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE session_progress\s+SET last_studied = NOW\(\), current_session = \?, total_study_time = \?\s+WHERE user_id = \?`).
					WithArgs(3, 5400, 1).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:   "current session only",
			fields: models.UpdateSessionProgressRequest{CurrentSession: &currentSession},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE session_progress\s+SET last_studied = NOW\(\), current_session = \?\s+WHERE user_id = \?`).
					WithArgs(3, 1).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:   "no fields still stamps last_studied",
			fields: models.UpdateSessionProgressRequest{},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE session_progress\s+SET last_studied = NOW\(\)\s+WHERE user_id = \?`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSessionProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Update(context.Background(), 1, tt.fields)

			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionProgressRepository_Update_SameValueIsNotAnError(t *testing.T) {
	repo, mock, cleanup := setupSessionProgressTestRepository(t)
	defer cleanup()

	currentSession := 2
	// MySQL reports zero affected rows when values did not change
	mock.ExpectExec(`UPDATE session_progress`).
		WithArgs(2, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), 1, models.UpdateSessionProgressRequest{CurrentSession: &currentSession})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionProgressRepository_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
	}{
		{
			name: "existing row",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM session_progress WHERE user_id = \?`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "missing row is not an error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM session_progress WHERE user_id = \?`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSessionProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Delete(context.Background(), 1)

			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
