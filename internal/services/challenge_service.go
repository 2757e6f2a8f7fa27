package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hanyustudent/backend/internal/models"
)

// challengeEpoch anchors day numbering; dates before it produce negative day
// numbers, which the start index math still maps into 0..13
var challengeEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// challengeSteps is the fixed cyclic list of learning steps
var challengeSteps = [14]models.ChallengeStep{
	models.ChallengeStepStudy,
	models.ChallengeStepStudy,
	models.ChallengeStepTest,
	models.ChallengeStepPinyinTest,
	models.ChallengeStepListen,
	models.ChallengeStepStudy,
	models.ChallengeStepStudy,
	models.ChallengeStepTest,
	models.ChallengeStepPinyinTest,
	models.ChallengeStepStudy,
	models.ChallengeStepStudy,
	models.ChallengeStepTest,
	models.ChallengeStepPinyinTest,
	models.ChallengeStepMistakes,
}

// challengesPerDay is how many of the 14 steps are assigned each day
const challengesPerDay = 4

// ChallengeCompletionRepository defines methods for challenge completion data access
type ChallengeCompletionRepository interface {
	// GetCompletedStepIndexes retrieves the step indexes completed on a UTC date
	GetCompletedStepIndexes(ctx context.Context, userID int, date string) ([]int, error)
	// MarkComplete records a completed step for a UTC date, idempotently
	MarkComplete(ctx context.Context, userID int, date string, stepIndex int) error
}

// challengeService implements the daily challenge scheduler
type challengeService struct {
	completionRepo ChallengeCompletionRepository
}

// NewChallengeService creates a new challenge service
func NewChallengeService(completionRepo ChallengeCompletionRepository) *challengeService {
	return &challengeService{
		completionRepo: completionRepo,
	}
}

// DayNumber returns the whole days elapsed since the challenge epoch
func DayNumber(t time.Time) int {
	return int(t.UTC().Sub(challengeEpoch).Hours() / 24)
}

// StartIndex maps a day number onto the cyclic step list
func StartIndex(dayNumber int) int {
	n := len(challengeSteps)
	idx := (dayNumber * challengesPerDay) % n
	if idx < 0 {
		idx += n
	}
	return idx
}

// TodaysSteps returns the four step indexes assigned to the given day number
func TodaysSteps(dayNumber int) [challengesPerDay]int {
	start := StartIndex(dayNumber)
	var indexes [challengesPerDay]int
	for i := range indexes {
		indexes[i] = (start + i) % len(challengeSteps)
	}
	return indexes
}

// GetToday retrieves today's four challenges with completion and unlock state
//
// Position 0 is always unlocked; position i unlocks only once every earlier
// position is complete.
func (s *challengeService) GetToday(ctx context.Context, userID int) ([]models.DailyChallenge, error) {
	now := time.Now().UTC()

	completed, err := s.completedSet(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	stepIndexes := TodaysSteps(DayNumber(now))
	challenges := make([]models.DailyChallenge, 0, challengesPerDay)
	unlocked := true
	for position, stepIndex := range stepIndexes {
		_, isComplete := completed[stepIndex]
		challenges = append(challenges, models.DailyChallenge{
			Position:  position,
			StepIndex: stepIndex,
			Step:      challengeSteps[stepIndex],
			Completed: isComplete,
			Unlocked:  unlocked,
		})
		unlocked = unlocked && isComplete
	}

	return challenges, nil
}

// MarkComplete records completion of one of today's challenges by position
func (s *challengeService) MarkComplete(ctx context.Context, userID, position int) error {
	if position < 0 || position >= challengesPerDay {
		return fmt.Errorf("position must be between 0 and %d", challengesPerDay-1)
	}

	now := time.Now().UTC()

	completed, err := s.completedSet(ctx, userID, now)
	if err != nil {
		return err
	}

	stepIndexes := TodaysSteps(DayNumber(now))
	for i := 0; i < position; i++ {
		if _, ok := completed[stepIndexes[i]]; !ok {
			return fmt.Errorf("challenge at position %d is locked", position)
		}
	}

	return s.completionRepo.MarkComplete(ctx, userID, now.Format("2006-01-02"), stepIndexes[position])
}

// completedSet loads today's completed step indexes as a set
func (s *challengeService) completedSet(ctx context.Context, userID int, now time.Time) (map[int]struct{}, error) {
	stepIndexes, err := s.completionRepo.GetCompletedStepIndexes(ctx, userID, now.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to get completed challenges: %w", err)
	}

	set := make(map[int]struct{}, len(stepIndexes))
	for _, stepIndex := range stepIndexes {
		set[stepIndex] = struct{}{}
	}
	return set, nil
}
