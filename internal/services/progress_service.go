package services

import (
	"context"
	"fmt"

	"github.com/hanyustudent/backend/internal/models"
)

// ProgressRepository defines methods for progress record data access
type ProgressRepository interface {
	// MarkLearned upserts the progress record for a word: creates it with
	// studyCount = 1, or marks it learned and increments studyCount.
	MarkLearned(ctx context.Context, userID, wordID int) error
	// GetAllWithLearnedFlag retrieves the full vocabulary with the user's learned flags
	GetAllWithLearnedFlag(ctx context.Context, userID int) ([]models.WordWithProgress, error)
	// GetRecentlyLearned retrieves up to limit learned words, most recently studied first
	GetRecentlyLearned(ctx context.Context, userID, limit int) ([]models.VocabularyWord, error)
	// CountLearned returns the number of learned words for a user
	CountLearned(ctx context.Context, userID int) (int, error)
	// CountLearnedByDifficulty returns the learned word count per difficulty tier
	CountLearnedByDifficulty(ctx context.Context, userID int) (map[models.Difficulty]int, error)
	// DeleteByUserID deletes all progress records for a user
	DeleteByUserID(ctx context.Context, userID int) error
}

// VocabularyRepository defines methods for vocabulary data access
type VocabularyRepository interface {
	// GetByID retrieves a vocabulary word by ID
	GetByID(ctx context.Context, id int) (*models.VocabularyWord, error)
	// GetByIDs retrieves vocabulary words by their IDs
	GetByIDs(ctx context.Context, wordIDs []int) ([]models.VocabularyWord, error)
	// GetTotalCount returns the total number of vocabulary words
	GetTotalCount(ctx context.Context) (int, error)
	// CountByDifficulty returns the number of words per difficulty tier
	CountByDifficulty(ctx context.Context) (map[models.Difficulty]int, error)
	// GetLearnedWords retrieves up to limit learned words for a user in random order
	GetLearnedWords(ctx context.Context, userID, limit int) ([]models.VocabularyWord, error)
}

// ActivityLogDeleter defines the activity log cleanup used by progress reset
type ActivityLogDeleter interface {
	// DeleteByUserID deletes all activity log entries for a user
	DeleteByUserID(ctx context.Context, userID int) error
}

// TestSessionDeleter defines the test session cleanup used by progress reset
type TestSessionDeleter interface {
	// DeleteByUserID deletes all test session rows for a user
	DeleteByUserID(ctx context.Context, userID int) error
}

// progressService implements the per-word progress store
type progressService struct {
	progressRepo    ProgressRepository
	vocabRepo       VocabularyRepository
	sessionRepo     SessionProgressRepository
	activityDeleter ActivityLogDeleter
	testDeleter     TestSessionDeleter
}

// NewProgressService creates a new progress service
func NewProgressService(
	progressRepo ProgressRepository,
	vocabRepo VocabularyRepository,
	sessionRepo SessionProgressRepository,
	activityDeleter ActivityLogDeleter,
	testDeleter TestSessionDeleter,
) *progressService {
	return &progressService{
		progressRepo:    progressRepo,
		vocabRepo:       vocabRepo,
		sessionRepo:     sessionRepo,
		activityDeleter: activityDeleter,
		testDeleter:     testDeleter,
	}
}

// MarkLearned marks a word as learned for the user
//
// The operation is an idempotent upsert: re-studying an already learned word
// still increments its study count.
func (s *progressService) MarkLearned(ctx context.Context, userID, wordID int) error {
	// Grading and progress against an unknown word id must fail, not upsert
	if _, err := s.vocabRepo.GetByID(ctx, wordID); err != nil {
		return fmt.Errorf("failed to get word: %w", err)
	}

	return s.progressRepo.MarkLearned(ctx, userID, wordID)
}

// GetAllWordsWithLearnedFlag retrieves the full vocabulary with learned flags
func (s *progressService) GetAllWordsWithLearnedFlag(ctx context.Context, userID int) ([]models.WordWithProgress, error) {
	return s.progressRepo.GetAllWithLearnedFlag(ctx, userID)
}

// GetRecentlyLearned returns the most recently learned words
//
// The count is currentSession * 10, preserving the source behavior: if a user
// advanced sessions without marking every word learned, the count overstates
// the recent set.
func (s *progressService) GetRecentlyLearned(ctx context.Context, userID int) ([]models.VocabularyWord, error) {
	progress, err := s.sessionRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session progress: %w", err)
	}

	if progress == nil || progress.CurrentSession == 0 {
		return []models.VocabularyWord{}, nil
	}

	return s.progressRepo.GetRecentlyLearned(ctx, userID, progress.CurrentSession*10)
}

// ResetAll wipes the user's progress records, test sessions, and activity log
func (s *progressService) ResetAll(ctx context.Context, userID int) error {
	if err := s.progressRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete progress records: %w", err)
	}

	if err := s.testDeleter.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete test sessions: %w", err)
	}

	if err := s.activityDeleter.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete activity log: %w", err)
	}

	return nil
}
