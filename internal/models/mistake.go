package models

import "time"

// TestType represents the kind of recall test that produced a mistake
type TestType string

const (
	TestTypeTranslation TestType = "translation"
	TestTypePinyin      TestType = "pinyin"
	TestTypeListening   TestType = "listening"
)

// Valid reports whether the test type is known
func (t TestType) Valid() bool {
	switch t {
	case TestTypeTranslation, TestTypePinyin, TestTypeListening:
		return true
	}
	return false
}

// MistakeRecord represents a recorded wrong answer
//
// Near-repeats for the same (user, word, testType) triple are deduplicated
// within a 5-minute window.
type MistakeRecord struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	WordID    int       `json:"wordId"`
	TestType  TestType  `json:"testType"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordMistakeRequest represents a mistake submission
type RecordMistakeRequest struct {
	WordID   int      `json:"wordId"`
	TestType TestType `json:"testType"`
}
