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
	testMaxQuestions   = 20
	minMistakesForTest = 10

	// Abandoned test sessions are evicted this long after creation
	testSessionRetention = 30 * time.Minute
)

// RecentWordsProvider supplies the recently learned word pool
type RecentWordsProvider interface {
	// GetRecentlyLearned returns the most recently learned words
	GetRecentlyLearned(ctx context.Context, userID int) ([]models.VocabularyWord, error)
}

// MistakeWordsProvider supplies the mistake word pool and its size gate
type MistakeWordsProvider interface {
	// Count returns the total number of recorded mistakes for the user
	Count(ctx context.Context, userID int) (int, error)
	// GetMistakeWords retrieves the distinct words the user has gotten wrong
	GetMistakeWords(ctx context.Context, userID int) ([]models.VocabularyWord, error)
}

// MistakeRecorder records wrong answers during graded tests
type MistakeRecorder interface {
	// Record stores a mistake, deduplicating near-repeats
	Record(ctx context.Context, userID int, req models.RecordMistakeRequest) error
}

// testState is the in-memory state of one running graded test
type testState struct {
	id        string
	userID    int
	testType  models.TestType
	questions map[string]gradedQuestion
	answered  map[string]bool
	correct   int
	createdAt time.Time
}

// testService implements server-side graded test sessions
//
// Answers are graded on the server so canonical answers never reach the
// client. Wrong answers feed the mistake tracker; completion inserts a
// test session marker counted by stats.
type testService struct {
	recentWords  RecentWordsProvider
	mistakeWords MistakeWordsProvider
	mistakes     MistakeRecorder
	testRepo     TestSessionRepository

	mu       sync.Mutex
	sessions map[string]*testState
}

// NewTestService creates a new test service
func NewTestService(
	recentWords RecentWordsProvider,
	mistakeWords MistakeWordsProvider,
	mistakes MistakeRecorder,
	testRepo TestSessionRepository,
) *testService {
	return &testService{
		recentWords:  recentWords,
		mistakeWords: mistakeWords,
		mistakes:     mistakes,
		testRepo:     testRepo,
		sessions:     make(map[string]*testState),
	}
}

// Start generates a graded test from the requested word pool
//
// The mistakes pool is gated on at least 10 recorded mistakes.
func (s *testService) Start(ctx context.Context, userID int, req models.StartTestRequest) (*models.StartTestResponse, error) {
	if !req.TestType.Valid() {
		return nil, fmt.Errorf("invalid test type: %s", req.TestType)
	}

	source := req.Source
	if source == "" {
		source = models.TestSourceRecent
	}

	var words []models.VocabularyWord
	var err error
	switch source {
	case models.TestSourceRecent:
		words, err = s.recentWords.GetRecentlyLearned(ctx, userID)
	case models.TestSourceMistakes:
		var count int
		count, err = s.mistakeWords.Count(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to count mistakes: %w", err)
		}
		if count < minMistakesForTest {
			return nil, fmt.Errorf("mistake test requires %d recorded mistakes", minMistakesForTest)
		}
		words, err = s.mistakeWords.GetMistakeWords(ctx, userID)
	default:
		return nil, fmt.Errorf("invalid test source: %s", source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load word pool: %w", err)
	}

	pool := buildQuestions(words, req.TestType)
	if len(pool) == 0 {
		return nil, fmt.Errorf("no words available for this test")
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > testMaxQuestions {
		pool = pool[:testMaxQuestions]
	}

	now := time.Now().UTC()
	state := &testState{
		id:        uuid.NewString(),
		userID:    userID,
		testType:  req.TestType,
		questions: make(map[string]gradedQuestion, len(pool)),
		answered:  make(map[string]bool, len(pool)),
		createdAt: now,
	}

	served := make([]models.Question, 0, len(pool))
	for _, q := range pool {
		state.questions[q.question.ID] = q
		served = append(served, q.question)
	}

	s.mu.Lock()
	s.evictStaleLocked(now)
	s.sessions[state.id] = state
	s.mu.Unlock()

	return &models.StartTestResponse{
		SessionID: state.id,
		Questions: served,
	}, nil
}

// SubmitAnswer grades one answer and records a mistake when it is wrong
func (s *testService) SubmitAnswer(ctx context.Context, userID int, sessionID string, req models.SubmitAnswerRequest) (*models.AnswerResult, error) {
	s.mu.Lock()
	state, ok := s.sessions[sessionID]
	if !ok || state.userID != userID {
		s.mu.Unlock()
		return nil, fmt.Errorf("test session not found")
	}

	q, ok := state.questions[req.QuestionID]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("question not found")
	}
	if state.answered[req.QuestionID] {
		s.mu.Unlock()
		return nil, fmt.Errorf("question already answered")
	}

	state.answered[req.QuestionID] = true
	correct := grading.Grade(req.Answer, q.answer, q.mode)
	if correct {
		state.correct++
	}
	testType := state.testType
	s.mu.Unlock()

	if !correct {
		err := s.mistakes.Record(ctx, userID, models.RecordMistakeRequest{
			WordID:   q.question.WordID,
			TestType: testType,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to record mistake: %w", err)
		}
	}

	return &models.AnswerResult{Correct: correct}, nil
}

// Complete finishes a test, persists the completion marker, and returns the summary
func (s *testService) Complete(ctx context.Context, userID int, sessionID string) (*models.TestSummary, error) {
	s.mu.Lock()
	state, ok := s.sessions[sessionID]
	if !ok || state.userID != userID {
		s.mu.Unlock()
		return nil, fmt.Errorf("test session not found")
	}
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if err := s.testRepo.Create(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to record test completion: %w", err)
	}

	return &models.TestSummary{
		Total:   len(state.questions),
		Correct: state.correct,
	}, nil
}

// buildQuestions turns a word pool into graded questions for a test type
//
// Translation questions require an accepted translation outside parentheses;
// words without one are skipped.
func buildQuestions(words []models.VocabularyWord, testType models.TestType) []gradedQuestion {
	pool := make([]gradedQuestion, 0, len(words))
	for _, word := range words {
		switch testType {
		case models.TestTypeTranslation:
			if !grading.HasPlainEnglish(word.English) {
				continue
			}
			pool = append(pool, gradedQuestion{
				question: models.Question{
					ID:     uuid.NewString(),
					WordID: word.ID,
					Kind:   models.QuestionPinyinToEnglish,
					Prompt: word.Chinese,
				},
				answer: word.English,
				mode:   grading.ModeEnglish,
			})
		case models.TestTypePinyin:
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
		case models.TestTypeListening:
			// Prompt stays empty: the client fetches audio by word id
			pool = append(pool, gradedQuestion{
				question: models.Question{
					ID:     uuid.NewString(),
					WordID: word.ID,
					Kind:   models.QuestionListening,
				},
				answer: word.Pinyin,
				mode:   grading.ModePinyin,
			})
		}
	}
	return pool
}

// evictStaleLocked drops long-abandoned sessions; callers hold s.mu
func (s *testService) evictStaleLocked(now time.Time) {
	for id, state := range s.sessions {
		if now.Sub(state.createdAt) > testSessionRetention {
			delete(s.sessions, id)
		}
	}
}
