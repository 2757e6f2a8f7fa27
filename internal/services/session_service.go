package services

import (
	"context"
	"fmt"

	"github.com/hanyustudent/backend/internal/models"
)

// SessionProgressRepository defines methods for session progress data access
type SessionProgressRepository interface {
	// Get retrieves the session progress row, or (nil, nil) when none exists
	Get(ctx context.Context, userID int) (*models.SessionProgress, error)
	// Create inserts a fresh row with currentSession = 0
	Create(ctx context.Context, userID int) error
	// Update merges the provided fields, stamping lastStudied
	Update(ctx context.Context, userID int, fields models.UpdateSessionProgressRequest) error
	// Delete removes the row; missing rows are not an error
	Delete(ctx context.Context, userID int) error
}

// SessionVocabularyCounter provides the vocabulary size for session totals
type SessionVocabularyCounter interface {
	// GetTotalCount returns the total number of vocabulary words
	GetTotalCount(ctx context.Context) (int, error)
}

// sessionService implements the session progress engine
//
// currentSession is the only stored state variable. totalSessions is derived
// from the vocabulary size on every read because the vocabulary may grow.
type sessionService struct {
	sessionRepo SessionProgressRepository
	vocabRepo   SessionVocabularyCounter
}

// NewSessionService creates a new session progress service
func NewSessionService(sessionRepo SessionProgressRepository, vocabRepo SessionVocabularyCounter) *sessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		vocabRepo:   vocabRepo,
	}
}

// Get retrieves the user's session progress, creating it lazily at session 0
func (s *sessionService) Get(ctx context.Context, userID int) (*models.SessionProgress, error) {
	progress, err := s.sessionRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session progress: %w", err)
	}

	if progress == nil {
		if err := s.sessionRepo.Create(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to create session progress: %w", err)
		}
		progress, err = s.sessionRepo.Get(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get session progress: %w", err)
		}
		if progress == nil {
			return nil, fmt.Errorf("session progress missing after creation")
		}
	}

	totalSessions, err := s.totalSessions(ctx)
	if err != nil {
		return nil, err
	}
	progress.TotalSessions = totalSessions

	return progress, nil
}

// Update merges the given fields into the user's session progress
//
// The row is created first if missing, so updates never 404.
func (s *sessionService) Update(ctx context.Context, userID int, fields models.UpdateSessionProgressRequest) (*models.SessionProgress, error) {
	if fields.CurrentSession != nil && *fields.CurrentSession < 0 {
		return nil, fmt.Errorf("currentSession must not be negative")
	}
	if fields.TotalStudyTime != nil && *fields.TotalStudyTime < 0 {
		return nil, fmt.Errorf("totalStudyTime must not be negative")
	}

	// Lazy creation keeps the update path free of not-found handling
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Update(ctx, userID, fields); err != nil {
		return nil, fmt.Errorf("failed to update session progress: %w", err)
	}

	return s.Get(ctx, userID)
}

// Reset deletes the session progress row; the next Get recreates it at zero
func (s *sessionService) Reset(ctx context.Context, userID int) error {
	return s.sessionRepo.Delete(ctx, userID)
}

// totalSessions computes ceil(vocabCount / 10)
func (s *sessionService) totalSessions(ctx context.Context) (int, error) {
	count, err := s.vocabRepo.GetTotalCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count vocabulary: %w", err)
	}

	return (count + 9) / 10, nil
}
