package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hanyustudent/backend/internal/models"
)

// ActivityLogRepository defines methods for activity log data access
type ActivityLogRepository interface {
	// Create inserts an activity log entry
	Create(ctx context.Context, entry *models.ActivityLogEntry) error
	// GetStudyDates retrieves the distinct UTC dates (YYYY-MM-DD) with study activity
	GetStudyDates(ctx context.Context, userID int) ([]string, error)
	// SumDuration returns the total recorded activity duration in seconds
	SumDuration(ctx context.Context, userID int) (int, error)
	// DeleteByUserID deletes all activity log entries for a user
	DeleteByUserID(ctx context.Context, userID int) error
}

// TestSessionRepository defines methods for test completion data access
type TestSessionRepository interface {
	// Create inserts a completion marker for a finished test
	Create(ctx context.Context, userID int) error
	// CountByUserID returns the number of completed test sessions for a user
	CountByUserID(ctx context.Context, userID int) (int, error)
}

// statsService implements activity logging and aggregate statistics
type statsService struct {
	activityRepo ActivityLogRepository
	progressRepo ProgressRepository
	vocabRepo    VocabularyRepository
	testRepo     TestSessionRepository
}

// NewStatsService creates a new stats service
func NewStatsService(
	activityRepo ActivityLogRepository,
	progressRepo ProgressRepository,
	vocabRepo VocabularyRepository,
	testRepo TestSessionRepository,
) *statsService {
	return &statsService{
		activityRepo: activityRepo,
		progressRepo: progressRepo,
		vocabRepo:    vocabRepo,
		testRepo:     testRepo,
	}
}

// LogActivity records a study or test activity event
func (s *statsService) LogActivity(ctx context.Context, userID int, req models.LogActivityRequest) error {
	if !req.Type.Valid() {
		return fmt.Errorf("invalid activity type: %s", req.Type)
	}
	if req.DurationSeconds < 0 {
		return fmt.Errorf("duration must not be negative")
	}

	entry := &models.ActivityLogEntry{
		UserID:          userID,
		Type:            req.Type,
		DurationSeconds: req.DurationSeconds,
	}

	return s.activityRepo.Create(ctx, entry)
}

// RecordTestCompleted inserts a test completion marker
func (s *statsService) RecordTestCompleted(ctx context.Context, userID int) error {
	return s.testRepo.Create(ctx, userID)
}

// GetStats computes the user's aggregate statistics
func (s *statsService) GetStats(ctx context.Context, userID int) (*models.Stats, error) {
	totalWords, err := s.vocabRepo.GetTotalCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count vocabulary: %w", err)
	}

	learnedWords, err := s.progressRepo.CountLearned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count learned words: %w", err)
	}

	studyDates, err := s.activityRepo.GetStudyDates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get study dates: %w", err)
	}

	totalStudyTime, err := s.activityRepo.SumDuration(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum study time: %w", err)
	}

	testsCompleted, err := s.testRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count test sessions: %w", err)
	}

	totalByDifficulty, err := s.vocabRepo.CountByDifficulty(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count words by difficulty: %w", err)
	}

	learnedByDifficulty, err := s.progressRepo.CountLearnedByDifficulty(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count learned words by difficulty: %w", err)
	}

	difficultyStats := make(map[models.Difficulty]models.TierCounts, len(models.Difficulties))
	for _, difficulty := range models.Difficulties {
		difficultyStats[difficulty] = models.TierCounts{
			Total:   totalByDifficulty[difficulty],
			Learned: learnedByDifficulty[difficulty],
		}
	}

	return &models.Stats{
		TotalWords:      totalWords,
		LearnedWords:    learnedWords,
		CurrentStreak:   CurrentStreak(studyDates, time.Now().UTC()),
		TotalStudyTime:  totalStudyTime,
		TestsCompleted:  testsCompleted,
		DifficultyStats: difficultyStats,
	}, nil
}

// CurrentStreak counts consecutive days with study activity ending today
//
// dates are UTC calendar dates in YYYY-MM-DD form. A streak exists only if
// today itself has activity; a gap of one day resets it to zero.
func CurrentStreak(dates []string, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	dateSet := make(map[string]struct{}, len(dates))
	for _, date := range dates {
		dateSet[date] = struct{}{}
	}

	streak := 0
	day := today
	for {
		if _, ok := dateSet[day.Format("2006-01-02")]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak
}
