package services

import (
	"context"
	"time"

	"github.com/hanyustudent/backend/internal/models"
)

// mockProgressRepository is a mock implementation of ProgressRepository
type mockProgressRepository struct {
	wordsWithProgress   []models.WordWithProgress
	recentWords         []models.VocabularyWord
	learnedCount        int
	learnedByDifficulty map[models.Difficulty]int
	err                 error
	markLearnedErr      error
	deleteErr           error
	markLearnedCalled   bool
	recentLimit         int
	deleteCalled        bool
}

func (m *mockProgressRepository) MarkLearned(ctx context.Context, userID, wordID int) error {
	m.markLearnedCalled = true
	if m.markLearnedErr != nil {
		return m.markLearnedErr
	}
	return m.err
}

func (m *mockProgressRepository) GetAllWithLearnedFlag(ctx context.Context, userID int) ([]models.WordWithProgress, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.wordsWithProgress, nil
}

func (m *mockProgressRepository) GetRecentlyLearned(ctx context.Context, userID, limit int) ([]models.VocabularyWord, error) {
	m.recentLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.recentWords, nil
}

func (m *mockProgressRepository) CountLearned(ctx context.Context, userID int) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.learnedCount, nil
}

func (m *mockProgressRepository) CountLearnedByDifficulty(ctx context.Context, userID int) (map[models.Difficulty]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.learnedByDifficulty, nil
}

func (m *mockProgressRepository) DeleteByUserID(ctx context.Context, userID int) error {
	m.deleteCalled = true
	if m.deleteErr != nil {
		return m.deleteErr
	}
	return m.err
}

// mockVocabularyRepository is a mock implementation of VocabularyRepository
type mockVocabularyRepository struct {
	word         *models.VocabularyWord
	words        []models.VocabularyWord
	learnedWords []models.VocabularyWord
	totalCount   int
	byDifficulty map[models.Difficulty]int
	err          error
	getByIDErr   error
}

func (m *mockVocabularyRepository) GetByID(ctx context.Context, id int) (*models.VocabularyWord, error) {
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.word, nil
}

func (m *mockVocabularyRepository) GetByIDs(ctx context.Context, wordIDs []int) ([]models.VocabularyWord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.words, nil
}

func (m *mockVocabularyRepository) GetTotalCount(ctx context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.totalCount, nil
}

func (m *mockVocabularyRepository) CountByDifficulty(ctx context.Context) (map[models.Difficulty]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byDifficulty, nil
}

func (m *mockVocabularyRepository) GetLearnedWords(ctx context.Context, userID, limit int) ([]models.VocabularyWord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.learnedWords, nil
}

// mockSessionProgressRepository is a mock implementation of SessionProgressRepository
type mockSessionProgressRepository struct {
	progress     *models.SessionProgress
	err          error
	createErr    error
	updateErr    error
	deleteErr    error
	createCalled bool
	updateCalled bool
	deleteCalled bool
	lastUpdate   models.UpdateSessionProgressRequest
}

func (m *mockSessionProgressRepository) Get(ctx context.Context, userID int) (*models.SessionProgress, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.progress, nil
}

func (m *mockSessionProgressRepository) Create(ctx context.Context, userID int) error {
	m.createCalled = true
	if m.createErr != nil {
		return m.createErr
	}
	// Mirror the INSERT so the follow-up Get sees the row
	m.progress = &models.SessionProgress{UserID: userID}
	return nil
}

func (m *mockSessionProgressRepository) Update(ctx context.Context, userID int, fields models.UpdateSessionProgressRequest) error {
	m.updateCalled = true
	m.lastUpdate = fields
	if m.updateErr != nil {
		return m.updateErr
	}
	if fields.CurrentSession != nil {
		m.progress.CurrentSession = *fields.CurrentSession
	}
	if fields.TotalStudyTime != nil {
		m.progress.TotalStudyTime = *fields.TotalStudyTime
	}
	return nil
}

func (m *mockSessionProgressRepository) Delete(ctx context.Context, userID int) error {
	m.deleteCalled = true
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.progress = nil
	return nil
}

// mockActivityLogRepository is a mock implementation of ActivityLogRepository
type mockActivityLogRepository struct {
	studyDates   []string
	duration     int
	err          error
	created      *models.ActivityLogEntry
	deleteCalled bool
}

func (m *mockActivityLogRepository) Create(ctx context.Context, entry *models.ActivityLogEntry) error {
	m.created = entry
	return m.err
}

func (m *mockActivityLogRepository) GetStudyDates(ctx context.Context, userID int) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.studyDates, nil
}

func (m *mockActivityLogRepository) SumDuration(ctx context.Context, userID int) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.duration, nil
}

func (m *mockActivityLogRepository) DeleteByUserID(ctx context.Context, userID int) error {
	m.deleteCalled = true
	return m.err
}

// mockTestSessionRepository is a mock implementation of TestSessionRepository
type mockTestSessionRepository struct {
	count        int
	err          error
	createCalled bool
	deleteCalled bool
}

func (m *mockTestSessionRepository) Create(ctx context.Context, userID int) error {
	m.createCalled = true
	return m.err
}

func (m *mockTestSessionRepository) CountByUserID(ctx context.Context, userID int) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.count, nil
}

func (m *mockTestSessionRepository) DeleteByUserID(ctx context.Context, userID int) error {
	m.deleteCalled = true
	return m.err
}

// mockMistakeRepository is a mock implementation of MistakeRepository
type mockMistakeRepository struct {
	lastCreatedAt *time.Time
	count         int
	wordIDs       []int
	mistakes      []models.MistakeRecord
	err           error
	created       []*models.MistakeRecord
	deleteCalled  bool
}

func (m *mockMistakeRepository) Create(ctx context.Context, mistake *models.MistakeRecord) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, mistake)
	return nil
}

func (m *mockMistakeRepository) GetLastCreatedAt(ctx context.Context, userID, wordID int, testType models.TestType) (*time.Time, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.lastCreatedAt, nil
}

func (m *mockMistakeRepository) CountByUserID(ctx context.Context, userID int) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.count, nil
}

func (m *mockMistakeRepository) GetUniqueWordIDs(ctx context.Context, userID int) ([]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.wordIDs, nil
}

func (m *mockMistakeRepository) GetAllByUserID(ctx context.Context, userID int) ([]models.MistakeRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.mistakes, nil
}

func (m *mockMistakeRepository) DeleteByUserID(ctx context.Context, userID int) error {
	m.deleteCalled = true
	return m.err
}

// mockChallengeCompletionRepository is a mock implementation of ChallengeCompletionRepository
type mockChallengeCompletionRepository struct {
	completed  []int
	err        error
	markErr    error
	markedDate string
	markedStep int
	markCalled bool
}

func (m *mockChallengeCompletionRepository) GetCompletedStepIndexes(ctx context.Context, userID int, date string) ([]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.completed, nil
}

func (m *mockChallengeCompletionRepository) MarkComplete(ctx context.Context, userID int, date string, stepIndex int) error {
	m.markCalled = true
	m.markedDate = date
	m.markedStep = stepIndex
	return m.markErr
}

// mockSpeedChallengeRepository is a mock implementation of SpeedChallengeRepository
type mockSpeedChallengeRepository struct {
	best      *models.SpeedChallengeScore
	err       error
	createErr error
	created   *models.SpeedChallengeScore
}

func (m *mockSpeedChallengeRepository) Create(ctx context.Context, score *models.SpeedChallengeScore) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = score
	return nil
}

func (m *mockSpeedChallengeRepository) GetBest(ctx context.Context, userID int) (*models.SpeedChallengeScore, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.best, nil
}

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	userByEmail     *models.User
	userByID        *models.User
	err             error
	createErr       error
	created         *models.User
	remindersValue  bool
	remindersCalled bool
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 1
	m.created = user
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.userByEmail, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.userByID == nil {
		return nil, m.err
	}
	return m.userByID, nil
}

func (m *mockUserRepository) UpdateReminders(ctx context.Context, userID int, enabled bool) error {
	m.remindersCalled = true
	m.remindersValue = enabled
	return m.err
}

// mockRecentWordsProvider is a mock implementation of RecentWordsProvider
type mockRecentWordsProvider struct {
	words []models.VocabularyWord
	err   error
}

func (m *mockRecentWordsProvider) GetRecentlyLearned(ctx context.Context, userID int) ([]models.VocabularyWord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.words, nil
}

// mockMistakeWordsProvider is a mock implementation of MistakeWordsProvider
type mockMistakeWordsProvider struct {
	count int
	words []models.VocabularyWord
	err   error
}

func (m *mockMistakeWordsProvider) Count(ctx context.Context, userID int) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.count, nil
}

func (m *mockMistakeWordsProvider) GetMistakeWords(ctx context.Context, userID int) ([]models.VocabularyWord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.words, nil
}

// mockMistakeRecorder is a mock implementation of MistakeRecorder
type mockMistakeRecorder struct {
	err      error
	recorded []models.RecordMistakeRequest
}

func (m *mockMistakeRecorder) Record(ctx context.Context, userID int, req models.RecordMistakeRequest) error {
	if m.err != nil {
		return m.err
	}
	m.recorded = append(m.recorded, req)
	return nil
}

// mockTokenIssuer is a mock implementation of TokenIssuer
type mockTokenIssuer struct {
	access      string
	refresh     string
	userID      int
	err         error
	validateErr error
}

func (m *mockTokenIssuer) GenerateTokens(userID int) (string, string, error) {
	if m.err != nil {
		return "", "", m.err
	}
	return m.access, m.refresh, nil
}

func (m *mockTokenIssuer) ValidateRefreshToken(tokenString string) (int, error) {
	if m.validateErr != nil {
		return 0, m.validateErr
	}
	return m.userID, nil
}
