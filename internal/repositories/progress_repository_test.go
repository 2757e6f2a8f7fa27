package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hanyustudent/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupProgressTestRepository creates a progress repository with a mock database
func setupProgressTestRepository(t *testing.T) (*progressRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewProgressRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewProgressRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewProgressRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestProgressRepository_MarkLearned(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "success - new record",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO progress_records \(user_id, word_id, is_learned, study_count, last_studied\)\s+VALUES \(\?, \?, 1, 1, NOW\(\)\)\s+ON DUPLICATE KEY UPDATE`).
					WithArgs(1, 7).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name: "success - existing record updated",
			setupMock: func(mock sqlmock.Sqlmock) {
				// MySQL reports 2 affected rows for an upsert that updated
				mock.ExpectExec(`INSERT INTO progress_records`).
					WithArgs(1, 7).
					WillReturnResult(sqlmock.NewResult(0, 2))
			},
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO progress_records`).
					WithArgs(1, 7).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.MarkLearned(context.Background(), 1, 7)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProgressRepository_GetAllWithLearnedFlag(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name: "success - mixed learned flags",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "chinese", "pinyin", "english", "difficulty", "is_learned"}).
					AddRow(1, "你好", "nǐ hǎo", "hello", "beginner", true).
					AddRow(2, "谢谢", "xiè xie", "thanks; thank you", "beginner", false)
				mock.ExpectQuery(`SELECT w\.id, w\.chinese, w\.pinyin, w\.english, w\.difficulty,\s+COALESCE\(p\.is_learned, 0\)\s+FROM vocabulary_words w\s+LEFT JOIN progress_records p ON p\.word_id = w\.id AND p\.user_id = \?\s+ORDER BY w\.id`).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectedCount: 2,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT w\.id, w\.chinese`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			words, err := repo.GetAllWithLearnedFlag(context.Background(), 1)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, words, tt.expectedCount)
				assert.True(t, words[0].IsLearned)
				assert.False(t, words[1].IsLearned)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProgressRepository_GetRecentlyLearned(t *testing.T) {
	repo, mock, cleanup := setupProgressTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "chinese", "pinyin", "english", "difficulty"}).
		AddRow(9, "水", "shuǐ", "water", "beginner").
		AddRow(4, "猫", "māo", "cat", "beginner")
	mock.ExpectQuery(`SELECT w\.id, w\.chinese, w\.pinyin, w\.english, w\.difficulty\s+FROM vocabulary_words w\s+INNER JOIN progress_records p ON p\.word_id = w\.id\s+WHERE p\.user_id = \? AND p\.is_learned = 1\s+ORDER BY p\.last_studied DESC\s+LIMIT \?`).
		WithArgs(1, 20).
		WillReturnRows(rows)

	words, err := repo.GetRecentlyLearned(context.Background(), 1, 20)

	assert.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, 9, words[0].ID)
	assert.Equal(t, models.DifficultyBeginner, words[0].Difficulty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepository_CountLearned(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(63)
				mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM progress_records\s+WHERE user_id = \? AND is_learned = 1`).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectedCount: 63,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\)`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			count, err := repo.CountLearned(context.Background(), 1)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Zero(t, count)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedCount, count)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProgressRepository_CountLearnedByDifficulty(t *testing.T) {
	repo, mock, cleanup := setupProgressTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"difficulty", "COUNT(*)"}).
		AddRow("beginner", 30).
		AddRow("advanced", 2)
	mock.ExpectQuery(`SELECT w\.difficulty, COUNT\(\*\)\s+FROM progress_records p\s+INNER JOIN vocabulary_words w ON w\.id = p\.word_id\s+WHERE p\.user_id = \? AND p\.is_learned = 1\s+GROUP BY w\.difficulty`).
		WithArgs(1).
		WillReturnRows(rows)

	counts, err := repo.CountLearnedByDifficulty(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, 30, counts[models.DifficultyBeginner])
	assert.Equal(t, 2, counts[models.DifficultyAdvanced])
	assert.Zero(t, counts[models.DifficultyIntermediate])
	assert.NoError(t, mock.ExpectationsWereMet())
}
