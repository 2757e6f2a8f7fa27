package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hanyustudent/backend/internal/grading"
	"github.com/hanyustudent/backend/internal/models"
)

const (
	speedChallengeDuration = 60 * time.Second
	speedMaxQuestions      = 30
	speedSampleLimit       = 50
	speedMinLearnedWords   = 60

	// Abandoned sessions are evicted this long after their deadline
	speedSessionRetention = 10 * time.Minute
)

// SpeedChallengeRepository defines methods for speed challenge score data access
type SpeedChallengeRepository interface {
	// Create inserts a finished attempt
	Create(ctx context.Context, score *models.SpeedChallengeScore) error
	// GetBest retrieves the user's best attempt, or (nil, nil) when none exists
	GetBest(ctx context.Context, userID int) (*models.SpeedChallengeScore, error)
}

// gradedQuestion pairs a served question with its server-side answer
type gradedQuestion struct {
	question models.Question
	answer   string
	mode     grading.Mode
}

// speedSession is the in-memory state of one running attempt
type speedSession struct {
	id        string
	userID    int
	questions map[string]gradedQuestion
	answered  map[string]bool
	correct   int
	startedAt time.Time
	deadline  time.Time
}

// speedChallengeService implements the time-boxed speed challenge
//
// Running attempts live only in memory; a server restart voids them. Only
// completed attempts are persisted.
type speedChallengeService struct {
	speedRepo    SpeedChallengeRepository
	progressRepo ProgressRepository
	vocabRepo    VocabularyRepository

	mu       sync.Mutex
	sessions map[string]*speedSession
}

// NewSpeedChallengeService creates a new speed challenge service
func NewSpeedChallengeService(
	speedRepo SpeedChallengeRepository,
	progressRepo ProgressRepository,
	vocabRepo VocabularyRepository,
) *speedChallengeService {
	return &speedChallengeService{
		speedRepo:    speedRepo,
		progressRepo: progressRepo,
		vocabRepo:    vocabRepo,
		sessions:     make(map[string]*speedSession),
	}
}

// GetStatus reports whether the user has learned enough words to play
func (s *speedChallengeService) GetStatus(ctx context.Context, userID int) (*models.SpeedChallengeStatus, error) {
	learned, err := s.progressRepo.CountLearned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count learned words: %w", err)
	}

	return &models.SpeedChallengeStatus{
		Eligible:     learned >= speedMinLearnedWords,
		LearnedWords: learned,
		MinRequired:  speedMinLearnedWords,
	}, nil
}

// Start begins a new 60-second attempt
//
// Questions are generated from up to 50 randomly sampled learned words: one
// english-to-pinyin question per word, plus one pinyin-to-english question
// when the word has an accepted translation outside parentheses. The pool is
// shuffled and truncated to 30.
func (s *speedChallengeService) Start(ctx context.Context, userID int) (*models.SpeedChallengeSession, error) {
	status, err := s.GetStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !status.Eligible {
		return nil, fmt.Errorf("speed challenge requires %d learned words", speedMinLearnedWords)
	}

	words, err := s.vocabRepo.GetLearnedWords(ctx, userID, speedSampleLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to sample learned words: %w", err)
	}

	pool := make([]gradedQuestion, 0, 2*len(words))
	for _, word := range words {
		pool = append(pool, gradedQuestion{
			question: models.Question{
				ID:     uuid.NewString(),
				WordID: word.ID,
				Kind:   models.QuestionEnglishToPinyin,
				Prompt: word.English,
			},
			answer: word.Pinyin,
			mode:   grading.ModePinyin,
		})

		if grading.HasPlainEnglish(word.English) {
			pool = append(pool, gradedQuestion{
				question: models.Question{
					ID:     uuid.NewString(),
					WordID: word.ID,
					Kind:   models.QuestionPinyinToEnglish,
					Prompt: word.Pinyin,
				},
				answer: word.English,
				mode:   grading.ModeEnglish,
			})
		}
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > speedMaxQuestions {
		pool = pool[:speedMaxQuestions]
	}

	now := time.Now().UTC()
	session := &speedSession{
		id:        uuid.NewString(),
		userID:    userID,
		questions: make(map[string]gradedQuestion, len(pool)),
		answered:  make(map[string]bool, len(pool)),
		startedAt: now,
		deadline:  now.Add(speedChallengeDuration),
	}

	served := make([]models.Question, 0, len(pool))
	for _, q := range pool {
		session.questions[q.question.ID] = q
		served = append(served, q.question)
	}

	s.mu.Lock()
	s.evictExpiredLocked(now)
	s.sessions[session.id] = session
	s.mu.Unlock()

	return &models.SpeedChallengeSession{
		SessionID:       session.id,
		DurationSeconds: int(speedChallengeDuration.Seconds()),
		Questions:       served,
	}, nil
}

// SubmitAnswer grades one answer within a running attempt
func (s *speedChallengeService) SubmitAnswer(ctx context.Context, userID int, sessionID string, req models.SubmitAnswerRequest) (*models.AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessionLocked(userID, sessionID)
	if err != nil {
		return nil, err
	}

	if time.Now().UTC().After(session.deadline) {
		return nil, fmt.Errorf("speed challenge has expired")
	}

	q, ok := session.questions[req.QuestionID]
	if !ok {
		return nil, fmt.Errorf("question not found")
	}
	if session.answered[req.QuestionID] {
		return nil, fmt.Errorf("question already answered")
	}

	session.answered[req.QuestionID] = true
	correct := grading.Grade(req.Answer, q.answer, q.mode)
	if correct {
		session.correct++
	}

	return &models.AnswerResult{Correct: correct}, nil
}

// Complete finishes an attempt, persists the score, and reports whether it
// beats the user's prior best
func (s *speedChallengeService) Complete(ctx context.Context, userID int, sessionID string) (*models.SpeedChallengeResult, error) {
	s.mu.Lock()
	session, err := s.sessionLocked(userID, sessionID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	elapsed := time.Now().UTC().Sub(session.startedAt)
	if elapsed > speedChallengeDuration {
		elapsed = speedChallengeDuration
	}
	timeUsed := int(elapsed.Seconds())

	best, err := s.speedRepo.GetBest(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get high score: %w", err)
	}

	score := &models.SpeedChallengeScore{
		UserID:          userID,
		Score:           session.correct,
		TimeUsedSeconds: timeUsed,
	}
	if err := s.speedRepo.Create(ctx, score); err != nil {
		return nil, fmt.Errorf("failed to save speed challenge score: %w", err)
	}

	return &models.SpeedChallengeResult{
		Score:           score.Score,
		TimeUsedSeconds: score.TimeUsedSeconds,
		IsNewHighScore:  isNewHighScore(best, score.Score, score.TimeUsedSeconds),
	}, nil
}

// GetHighScore retrieves the user's best attempt, or (nil, nil) when none exists
func (s *speedChallengeService) GetHighScore(ctx context.Context, userID int) (*models.SpeedChallengeScore, error) {
	return s.speedRepo.GetBest(ctx, userID)
}

// isNewHighScore compares an attempt against the prior best: higher score
// wins, equal score with lower time wins
func isNewHighScore(best *models.SpeedChallengeScore, score, timeUsed int) bool {
	if best == nil {
		return true
	}
	if score != best.Score {
		return score > best.Score
	}
	return timeUsed < best.TimeUsedSeconds
}

// sessionLocked fetches a session owned by the user; callers hold s.mu
func (s *speedChallengeService) sessionLocked(userID int, sessionID string) (*speedSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok || session.userID != userID {
		return nil, fmt.Errorf("speed challenge session not found")
	}
	return session, nil
}

// evictExpiredLocked drops long-abandoned sessions; callers hold s.mu
func (s *speedChallengeService) evictExpiredLocked(now time.Time) {
	for id, session := range s.sessions {
		if now.Sub(session.deadline) > speedSessionRetention {
			delete(s.sessions, id)
		}
	}
}
