package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hanyustudent/backend/internal/models"
)

// mistakeDedupWindow suppresses duplicate mistake rows for the same
// (user, word, testType) triple recorded in quick succession
const mistakeDedupWindow = 5 * time.Minute

// MistakeRepository defines methods for mistake record data access
type MistakeRepository interface {
	// Create inserts a mistake record
	Create(ctx context.Context, mistake *models.MistakeRecord) error
	// GetLastCreatedAt retrieves the most recent mistake timestamp for the
	// (user, word, testType) triple, or (nil, nil) when none exists
	GetLastCreatedAt(ctx context.Context, userID, wordID int, testType models.TestType) (*time.Time, error)
	// CountByUserID returns the total number of mistake rows for a user
	CountByUserID(ctx context.Context, userID int) (int, error)
	// GetUniqueWordIDs retrieves the distinct word ids the user got wrong
	GetUniqueWordIDs(ctx context.Context, userID int) ([]int, error)
	// GetAllByUserID retrieves all mistake rows for a user, newest first
	GetAllByUserID(ctx context.Context, userID int) ([]models.MistakeRecord, error)
	// DeleteByUserID deletes all mistake rows for a user
	DeleteByUserID(ctx context.Context, userID int) error
}

// mistakeService implements mistake tracking with short-window deduplication
type mistakeService struct {
	mistakeRepo MistakeRepository
	vocabRepo   VocabularyRepository
}

// NewMistakeService creates a new mistake service
func NewMistakeService(mistakeRepo MistakeRepository, vocabRepo VocabularyRepository) *mistakeService {
	return &mistakeService{
		mistakeRepo: mistakeRepo,
		vocabRepo:   vocabRepo,
	}
}

// Record stores a mistake unless the same triple was recorded within the
// dedup window. A suppressed duplicate is not an error.
func (s *mistakeService) Record(ctx context.Context, userID int, req models.RecordMistakeRequest) error {
	if !req.TestType.Valid() {
		return fmt.Errorf("invalid test type: %s", req.TestType)
	}

	if _, err := s.vocabRepo.GetByID(ctx, req.WordID); err != nil {
		return fmt.Errorf("failed to get word: %w", err)
	}

	lastCreatedAt, err := s.mistakeRepo.GetLastCreatedAt(ctx, userID, req.WordID, req.TestType)
	if err != nil {
		return fmt.Errorf("failed to check recent mistakes: %w", err)
	}

	if lastCreatedAt != nil && time.Now().UTC().Sub(*lastCreatedAt) < mistakeDedupWindow {
		return nil
	}

	mistake := &models.MistakeRecord{
		UserID:   userID,
		WordID:   req.WordID,
		TestType: req.TestType,
	}

	return s.mistakeRepo.Create(ctx, mistake)
}

// Count returns the total number of recorded mistakes for the user
func (s *mistakeService) Count(ctx context.Context, userID int) (int, error) {
	return s.mistakeRepo.CountByUserID(ctx, userID)
}

// GetMistakeWords retrieves the distinct words the user has gotten wrong
func (s *mistakeService) GetMistakeWords(ctx context.Context, userID int) ([]models.VocabularyWord, error) {
	wordIDs, err := s.mistakeRepo.GetUniqueWordIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mistake word ids: %w", err)
	}

	if len(wordIDs) == 0 {
		return []models.VocabularyWord{}, nil
	}

	return s.vocabRepo.GetByIDs(ctx, wordIDs)
}

// List retrieves the full mistake history for the user, newest first
func (s *mistakeService) List(ctx context.Context, userID int) ([]models.MistakeRecord, error) {
	return s.mistakeRepo.GetAllByUserID(ctx, userID)
}

// Clear deletes all mistake rows for the user
func (s *mistakeService) Clear(ctx context.Context, userID int) error {
	return s.mistakeRepo.DeleteByUserID(ctx, userID)
}
