package models

// QuestionKind represents the direction of a generated question
type QuestionKind string

const (
	// QuestionEnglishToPinyin shows English, expects pinyin input
	QuestionEnglishToPinyin QuestionKind = "english-to-pinyin"
	// QuestionPinyinToEnglish shows pinyin, expects an English translation
	QuestionPinyinToEnglish QuestionKind = "pinyin-to-english"
	// QuestionListening plays audio, expects pinyin input
	QuestionListening QuestionKind = "listening"
)

// Question is a single graded question; the canonical answer never leaves the server
type Question struct {
	ID     string       `json:"id"`
	WordID int          `json:"wordId"`
	Kind   QuestionKind `json:"kind"`
	Prompt string       `json:"prompt"`
}

// TestSource selects which word pool a test draws from
type TestSource string

const (
	// TestSourceRecent draws from the recently learned words
	TestSourceRecent TestSource = "recent"
	// TestSourceMistakes draws from the user's mistake words
	TestSourceMistakes TestSource = "mistakes"
)

// StartTestRequest represents a request to start a graded test
type StartTestRequest struct {
	TestType TestType   `json:"testType"`
	Source   TestSource `json:"source,omitempty"`
}

// StartTestResponse carries the generated questions for a new test session
type StartTestResponse struct {
	SessionID string     `json:"sessionId"`
	Questions []Question `json:"questions"`
}

// SubmitAnswerRequest represents a single answer submission
type SubmitAnswerRequest struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

// AnswerResult is returned for each graded answer
type AnswerResult struct {
	Correct bool `json:"correct"`
}

// TestSummary is returned when a test session completes
type TestSummary struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}
