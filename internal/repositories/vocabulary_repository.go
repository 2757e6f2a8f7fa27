package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hanyustudent/backend/internal/models"
)

// vocabularyRepository implements read access to the seeded vocabulary
type vocabularyRepository struct {
	db *sql.DB
}

// NewVocabularyRepository creates a new vocabulary repository
func NewVocabularyRepository(db *sql.DB) *vocabularyRepository {
	return &vocabularyRepository{
		db: db,
	}
}

// GetByID retrieves a vocabulary word by ID
func (r *vocabularyRepository) GetByID(ctx context.Context, id int) (*models.VocabularyWord, error) {
	query := `
		SELECT id, chinese, pinyin, english, difficulty
		FROM vocabulary_words
		WHERE id = ?
		LIMIT 1
	`

	word := &models.VocabularyWord{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&word.ID,
		&word.Chinese,
		&word.Pinyin,
		&word.English,
		&word.Difficulty,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("word not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word by ID: %w", err)
	}

	return word, nil
}

// GetTotalCount returns the total number of vocabulary words
func (r *vocabularyRepository) GetTotalCount(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM vocabulary_words`

	var count int
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count vocabulary words: %w", err)
	}

	return count, nil
}

// CountByDifficulty returns the number of vocabulary words per difficulty tier
func (r *vocabularyRepository) CountByDifficulty(ctx context.Context) (map[models.Difficulty]int, error) {
	query := `
		SELECT difficulty, COUNT(*)
		FROM vocabulary_words
		GROUP BY difficulty
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count words by difficulty: %w", err)
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

// GetLearnedWords retrieves up to limit learned words for a user in random order
func (r *vocabularyRepository) GetLearnedWords(ctx context.Context, userID, limit int) ([]models.VocabularyWord, error) {
	query := `
		SELECT w.id, w.chinese, w.pinyin, w.english, w.difficulty
		FROM vocabulary_words w
		INNER JOIN progress_records p ON p.word_id = w.id
		WHERE p.user_id = ? AND p.is_learned = 1
		ORDER BY RAND()
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query learned words: %w", err)
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

// GetByIDs retrieves vocabulary words by their IDs
func (r *vocabularyRepository) GetByIDs(ctx context.Context, wordIDs []int) ([]models.VocabularyWord, error) {
	if len(wordIDs) == 0 {
		return []models.VocabularyWord{}, nil
	}

	// Build query with placeholders
	placeholders := make([]string, len(wordIDs))
	args := make([]any, len(wordIDs))
	for i, id := range wordIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT id, chinese, pinyin, english, difficulty
		FROM vocabulary_words
		WHERE id IN (%s)
	`, strings.Join(placeholders, ","))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
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
