package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hanyustudent/backend/internal/models"
)

// progressRepository implements per-user, per-word progress data access
type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *sql.DB) *progressRepository {
	return &progressRepository{
		db: db,
	}
}

// MarkLearned upserts a progress record for the word
//
// A new record starts with study_count = 1; an existing record keeps
// is_learned = 1 and increments study_count, so re-studying counts.
func (r *progressRepository) MarkLearned(ctx context.Context, userID, wordID int) error {
	query := `
		INSERT INTO progress_records (user_id, word_id, is_learned, study_count, last_studied)
		VALUES (?, ?, 1, 1, NOW())
		ON DUPLICATE KEY UPDATE
			is_learned = 1,
			study_count = study_count + 1,
			last_studied = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, userID, wordID); err != nil {
		return fmt.Errorf("failed to mark word learned: %w", err)
	}

	return nil
}

// GetAllWithLearnedFlag retrieves the full vocabulary left-joined with the
// user's progress. Words without a record carry isLearned = false.
func (r *progressRepository) GetAllWithLearnedFlag(ctx context.Context, userID int) ([]models.WordWithProgress, error) {
	query := `
		SELECT w.id, w.chinese, w.pinyin, w.english, w.difficulty,
		       COALESCE(p.is_learned, 0)
		FROM vocabulary_words w
		LEFT JOIN progress_records p ON p.word_id = w.id AND p.user_id = ?
		ORDER BY w.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query words with progress: %w", err)
	}
	defer rows.Close()

	var words []models.WordWithProgress
	for rows.Next() {
		var word models.WordWithProgress
		err := rows.Scan(
			&word.ID,
			&word.Chinese,
			&word.Pinyin,
			&word.English,
			&word.Difficulty,
			&word.IsLearned,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, word)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return words, nil
}

// GetRecentlyLearned retrieves up to limit learned words ordered by last_studied descending
func (r *progressRepository) GetRecentlyLearned(ctx context.Context, userID, limit int) ([]models.VocabularyWord, error) {
	query := `
		SELECT w.id, w.chinese, w.pinyin, w.english, w.difficulty
		FROM vocabulary_words w
		INNER JOIN progress_records p ON p.word_id = w.id
		WHERE p.user_id = ? AND p.is_learned = 1
		ORDER BY p.last_studied DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recently learned words: %w", err)
	}
	defer rows.Close()

	var words []models.VocabularyWord
	for rows.Next() {
		var word models.VocabularyWord
		err := rows.Scan(
			&word.ID,
			&word.Chinese,
			&word.Pinyin,
			&word.English,
			&word.Difficulty,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, word)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return words, nil
}

// CountLearned returns the number of learned words for a user
func (r *progressRepository) CountLearned(ctx context.Context, userID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM progress_records
		WHERE user_id = ? AND is_learned = 1
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count learned words: %w", err)
	}

	return count, nil
}

// CountLearnedByDifficulty returns the learned word count per difficulty tier
func (r *progressRepository) CountLearnedByDifficulty(ctx context.Context, userID int) (map[models.Difficulty]int, error) {
	query := `
		SELECT w.difficulty, COUNT(*)
		FROM progress_records p
		INNER JOIN vocabulary_words w ON w.id = p.word_id
		WHERE p.user_id = ? AND p.is_learned = 1
		GROUP BY w.difficulty
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count learned words by difficulty: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Difficulty]int)
	for rows.Next() {
		var difficulty models.Difficulty
		var count int
		if err := rows.Scan(&difficulty, &count); err != nil {
			return nil, fmt.Errorf("failed to scan difficulty count: %w", err)
		}
		counts[difficulty] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return counts, nil
}

// DeleteByUserID deletes all progress records for a user
func (r *progressRepository) DeleteByUserID(ctx context.Context, userID int) error {
	query := `DELETE FROM progress_records WHERE user_id = ?`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete progress records: %w", err)
	}

	return nil
}
