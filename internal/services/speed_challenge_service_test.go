package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hanyustudent/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSpeedChallengeService_GetStatus(t *testing.T) {
	tests := []struct {
		name     string
		learned  int
		eligible bool
	}{
		{name: "below threshold", learned: 59, eligible: false},
		{name: "at threshold", learned: 60, eligible: true},
		{name: "above threshold", learned: 200, eligible: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSpeedChallengeService(
				&mockSpeedChallengeRepository{},
				&mockProgressRepository{learnedCount: tt.learned},
				&mockVocabularyRepository{},
			)

			status, err := svc.GetStatus(context.Background(), 1)

			assert.NoError(t, err)
			assert.Equal(t, tt.eligible, status.Eligible)
			assert.Equal(t, tt.learned, status.LearnedWords)
			assert.Equal(t, 60, status.MinRequired)
		})
	}
}

func TestSpeedChallengeService_Start(t *testing.T) {
	t.Run("rejected below threshold", func(t *testing.T) {
		svc := NewSpeedChallengeService(
			&mockSpeedChallengeRepository{},
			&mockProgressRepository{learnedCount: 10},
			&mockVocabularyRepository{},
		)

		_, err := svc.Start(context.Background(), 1)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "60 learned words")
	})

	t.Run("generates both directions for plain english", func(t *testing.T) {
		words := []models.VocabularyWord{
			{ID: 1, Chinese: "你好", Pinyin: "nǐ hǎo", English: "hello"},
			{ID: 2, Chinese: "嗯", Pinyin: "ńg", English: "(interjection)"},
		}
		svc := NewSpeedChallengeService(
			&mockSpeedChallengeRepository{},
			&mockProgressRepository{learnedCount: 80},
			&mockVocabularyRepository{learnedWords: words},
		)

		session, err := svc.Start(context.Background(), 1)

		assert.NoError(t, err)
		assert.NotEmpty(t, session.SessionID)
		assert.Equal(t, 60, session.DurationSeconds)
		// word 1 yields both directions, word 2 only english-to-pinyin
		assert.Len(t, session.Questions, 3)

		kinds := map[int][]models.QuestionKind{}
		for _, q := range session.Questions {
			kinds[q.WordID] = append(kinds[q.WordID], q.Kind)
		}
		assert.Len(t, kinds[1], 2)
		assert.Equal(t, []models.QuestionKind{models.QuestionEnglishToPinyin}, kinds[2])
	})

	t.Run("truncates to thirty questions", func(t *testing.T) {
		words := make([]models.VocabularyWord, 40)
		for i := range words {
			words[i] = models.VocabularyWord{ID: i + 1, Pinyin: "pin", English: "word"}
		}
		svc := NewSpeedChallengeService(
			&mockSpeedChallengeRepository{},
			&mockProgressRepository{learnedCount: 80},
			&mockVocabularyRepository{learnedWords: words},
		)

		session, err := svc.Start(context.Background(), 1)

		assert.NoError(t, err)
		assert.Len(t, session.Questions, 30)
	})
}

func TestSpeedChallengeService_SubmitAnswer(t *testing.T) {
	words := []models.VocabularyWord{
		{ID: 1, Chinese: "你好", Pinyin: "nǐ hǎo", English: "hello"},
	}
	svc := NewSpeedChallengeService(
		&mockSpeedChallengeRepository{},
		&mockProgressRepository{learnedCount: 80},
		&mockVocabularyRepository{learnedWords: words},
	)

	session, err := svc.Start(context.Background(), 1)
	assert.NoError(t, err)

	var pinyinQuestion, englishQuestion models.Question
	for _, q := range session.Questions {
		switch q.Kind {
		case models.QuestionEnglishToPinyin:
			pinyinQuestion = q
		case models.QuestionPinyinToEnglish:
			englishQuestion = q
		}
	}

	t.Run("tone-folded pinyin answer is correct", func(t *testing.T) {
		result, err := svc.SubmitAnswer(context.Background(), 1, session.SessionID, models.SubmitAnswerRequest{
			QuestionID: pinyinQuestion.ID,
			Answer:     "nihao",
		})

		assert.NoError(t, err)
		assert.True(t, result.Correct)
	})

	t.Run("question cannot be answered twice", func(t *testing.T) {
		_, err := svc.SubmitAnswer(context.Background(), 1, session.SessionID, models.SubmitAnswerRequest{
			QuestionID: pinyinQuestion.ID,
			Answer:     "nihao",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already answered")
	})

	t.Run("wrong english answer", func(t *testing.T) {
		result, err := svc.SubmitAnswer(context.Background(), 1, session.SessionID, models.SubmitAnswerRequest{
			QuestionID: englishQuestion.ID,
			Answer:     "goodbye",
		})

		assert.NoError(t, err)
		assert.False(t, result.Correct)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.SubmitAnswer(context.Background(), 1, "missing", models.SubmitAnswerRequest{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("other user's session is invisible", func(t *testing.T) {
		_, err := svc.SubmitAnswer(context.Background(), 2, session.SessionID, models.SubmitAnswerRequest{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("expired session rejects answers", func(t *testing.T) {
		svc.mu.Lock()
		svc.sessions[session.SessionID].deadline = time.Now().UTC().Add(-time.Second)
		svc.mu.Unlock()

		_, err := svc.SubmitAnswer(context.Background(), 1, session.SessionID, models.SubmitAnswerRequest{
			QuestionID: englishQuestion.ID,
			Answer:     "hello",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "expired")
	})
}

func TestSpeedChallengeService_Complete(t *testing.T) {
	start := func(repo *mockSpeedChallengeRepository) (*speedChallengeService, *models.SpeedChallengeSession) {
		words := []models.VocabularyWord{
			{ID: 1, Chinese: "你好", Pinyin: "nǐ hǎo", English: "hello"},
		}
		svc := NewSpeedChallengeService(
			repo,
			&mockProgressRepository{learnedCount: 80},
			&mockVocabularyRepository{learnedWords: words},
		)
		session, err := svc.Start(context.Background(), 1)
		assert.NoError(t, err)
		return svc, session
	}

	t.Run("first attempt is a new high score", func(t *testing.T) {
		repo := &mockSpeedChallengeRepository{}
		svc, session := start(repo)

		result, err := svc.Complete(context.Background(), 1, session.SessionID)

		assert.NoError(t, err)
		assert.True(t, result.IsNewHighScore)
		assert.NotNil(t, repo.created)
		assert.Equal(t, result.Score, repo.created.Score)
	})

	t.Run("session is gone after completion", func(t *testing.T) {
		repo := &mockSpeedChallengeRepository{}
		svc, session := start(repo)

		_, err := svc.Complete(context.Background(), 1, session.SessionID)
		assert.NoError(t, err)

		_, err = svc.Complete(context.Background(), 1, session.SessionID)
		assert.Error(t, err)
	})

	t.Run("persist failure propagates", func(t *testing.T) {
		repo := &mockSpeedChallengeRepository{createErr: errors.New("database error")}
		svc, session := start(repo)

		_, err := svc.Complete(context.Background(), 1, session.SessionID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database error")
	})
}

func TestIsNewHighScore(t *testing.T) {
	tests := []struct {
		name     string
		best     *models.SpeedChallengeScore
		score    int
		timeUsed int
		expected bool
	}{
		{
			name:     "no prior attempts",
			best:     nil,
			score:    0,
			timeUsed: 60,
			expected: true,
		},
		{
			name:     "higher score wins",
			best:     &models.SpeedChallengeScore{Score: 10, TimeUsedSeconds: 20},
			score:    11,
			timeUsed: 60,
			expected: true,
		},
		{
			name:     "lower score loses",
			best:     &models.SpeedChallengeScore{Score: 10, TimeUsedSeconds: 20},
			score:    9,
			timeUsed: 5,
			expected: false,
		},
		{
			name:     "equal score with lower time wins",
			best:     &models.SpeedChallengeScore{Score: 10, TimeUsedSeconds: 30},
			score:    10,
			timeUsed: 20,
			expected: true,
		},
		{
			name:     "equal score with equal time loses",
			best:     &models.SpeedChallengeScore{Score: 10, TimeUsedSeconds: 20},
			score:    10,
			timeUsed: 20,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isNewHighScore(tt.best, tt.score, tt.timeUsed))
		})
	}
}
