package services

import (
	"context"
	"errors"
	"testing"

	"github.com/hanyustudent/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

var testPoolWords = []models.VocabularyWord{
	{ID: 1, Chinese: "你好", Pinyin: "nǐ hǎo", English: "hello"},
	{ID: 2, Chinese: "嗯", Pinyin: "ńg", English: "(interjection)"},
	{ID: 3, Chinese: "谢谢", Pinyin: "xiè xie", English: "thanks; thank you"},
}

func newTestService(recent *mockRecentWordsProvider, mistakes *mockMistakeWordsProvider, recorder *mockMistakeRecorder, testRepo *mockTestSessionRepository) *testService {
	if recent == nil {
		recent = &mockRecentWordsProvider{words: testPoolWords}
	}
	if mistakes == nil {
		mistakes = &mockMistakeWordsProvider{}
	}
	if recorder == nil {
		recorder = &mockMistakeRecorder{}
	}
	if testRepo == nil {
		testRepo = &mockTestSessionRepository{}
	}
	return NewTestService(recent, mistakes, recorder, testRepo)
}

func TestTestService_Start(t *testing.T) {
	tests := []struct {
		name          string
		req           models.StartTestRequest
		recent        *mockRecentWordsProvider
		mistakes      *mockMistakeWordsProvider
		expectedError bool
		errorContains string
		expectedCount int
		expectedKind  models.QuestionKind
	}{
		{
			name:          "translation test skips parenthetical-only words",
			req:           models.StartTestRequest{TestType: models.TestTypeTranslation},
			expectedCount: 2,
			expectedKind:  models.QuestionPinyinToEnglish,
		},
		{
			name:          "pinyin test uses every word",
			req:           models.StartTestRequest{TestType: models.TestTypePinyin},
			expectedCount: 3,
			expectedKind:  models.QuestionEnglishToPinyin,
		},
		{
			name:          "listening test uses every word",
			req:           models.StartTestRequest{TestType: models.TestTypeListening},
			expectedCount: 3,
			expectedKind:  models.QuestionListening,
		},
		{
			name:          "mistake pool below gate",
			req:           models.StartTestRequest{TestType: models.TestTypePinyin, Source: models.TestSourceMistakes},
			mistakes:      &mockMistakeWordsProvider{count: 9, words: testPoolWords},
			expectedError: true,
			errorContains: "10 recorded mistakes",
		},
		{
			name:          "mistake pool at gate",
			req:           models.StartTestRequest{TestType: models.TestTypePinyin, Source: models.TestSourceMistakes},
			mistakes:      &mockMistakeWordsProvider{count: 10, words: testPoolWords},
			expectedCount: 3,
			expectedKind:  models.QuestionEnglishToPinyin,
		},
		{
			name:          "invalid test type",
			req:           models.StartTestRequest{TestType: "oral"},
			expectedError: true,
			errorContains: "invalid test type",
		},
		{
			name:          "invalid source",
			req:           models.StartTestRequest{TestType: models.TestTypePinyin, Source: "archive"},
			expectedError: true,
			errorContains: "invalid test source",
		},
		{
			name:          "empty pool",
			req:           models.StartTestRequest{TestType: models.TestTypePinyin},
			recent:        &mockRecentWordsProvider{},
			expectedError: true,
			errorContains: "no words",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(tt.recent, tt.mistakes, nil, nil)

			resp, err := svc.Start(context.Background(), 1, tt.req)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, resp.SessionID)
			assert.Len(t, resp.Questions, tt.expectedCount)
			for _, q := range resp.Questions {
				assert.Equal(t, tt.expectedKind, q.Kind)
			}
		})
	}
}

func TestTestService_Start_ListeningPromptIsEmpty(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	resp, err := svc.Start(context.Background(), 1, models.StartTestRequest{TestType: models.TestTypeListening})

	assert.NoError(t, err)
	for _, q := range resp.Questions {
		assert.Empty(t, q.Prompt)
		assert.NotZero(t, q.WordID)
	}
}

func TestTestService_SubmitAnswer(t *testing.T) {
	recorder := &mockMistakeRecorder{}
	svc := newTestService(nil, nil, recorder, nil)

	resp, err := svc.Start(context.Background(), 1, models.StartTestRequest{TestType: models.TestTypePinyin})
	assert.NoError(t, err)

	questionByWord := map[int]models.Question{}
	for _, q := range resp.Questions {
		questionByWord[q.WordID] = q
	}

	t.Run("correct answer", func(t *testing.T) {
		result, err := svc.SubmitAnswer(context.Background(), 1, resp.SessionID, models.SubmitAnswerRequest{
			QuestionID: questionByWord[1].ID,
			Answer:     "nihao",
		})

		assert.NoError(t, err)
		assert.True(t, result.Correct)
		assert.Empty(t, recorder.recorded)
	})

	t.Run("wrong answer records a mistake", func(t *testing.T) {
		result, err := svc.SubmitAnswer(context.Background(), 1, resp.SessionID, models.SubmitAnswerRequest{
			QuestionID: questionByWord[3].ID,
			Answer:     "wrong",
		})

		assert.NoError(t, err)
		assert.False(t, result.Correct)
		assert.Len(t, recorder.recorded, 1)
		assert.Equal(t, 3, recorder.recorded[0].WordID)
		assert.Equal(t, models.TestTypePinyin, recorder.recorded[0].TestType)
	})

	t.Run("mistake recording failure propagates", func(t *testing.T) {
		recorder.err = errors.New("database error")

		_, err := svc.SubmitAnswer(context.Background(), 1, resp.SessionID, models.SubmitAnswerRequest{
			QuestionID: questionByWord[2].ID,
			Answer:     "wrong",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database error")
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.SubmitAnswer(context.Background(), 1, "missing", models.SubmitAnswerRequest{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestTestService_Complete(t *testing.T) {
	testRepo := &mockTestSessionRepository{}
	svc := newTestService(nil, nil, nil, testRepo)

	resp, err := svc.Start(context.Background(), 1, models.StartTestRequest{TestType: models.TestTypePinyin})
	assert.NoError(t, err)

	// Answer one question wrong before finishing
	_, err = svc.SubmitAnswer(context.Background(), 1, resp.SessionID, models.SubmitAnswerRequest{
		QuestionID: resp.Questions[0].ID,
		Answer:     "definitely wrong answer",
	})
	assert.NoError(t, err)

	summary, err := svc.Complete(context.Background(), 1, resp.SessionID)

	assert.NoError(t, err)
	assert.True(t, testRepo.createCalled)
	assert.Equal(t, len(resp.Questions), summary.Total)
	assert.Equal(t, 0, summary.Correct)

	// Completed session cannot be reused
	_, err = svc.Complete(context.Background(), 1, resp.SessionID)
	assert.Error(t, err)
}
