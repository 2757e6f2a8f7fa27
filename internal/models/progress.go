package models

import "time"

// ProgressRecord represents a user's learning state for a single word
//
// IsLearned only transitions false to true; StudyCount increments monotonically.
type ProgressRecord struct {
	ID          int        `json:"id"`
	UserID      int        `json:"userId"`
	WordID      int        `json:"wordId"`
	IsLearned   bool       `json:"isLearned"`
	StudyCount  int        `json:"studyCount"`
	LastStudied *time.Time `json:"lastStudied"`
}

// SessionProgress represents a user's position in the 10-word study sessions
//
// TotalSessions is derived from the vocabulary size on every read and is
// never stored authoritatively.
type SessionProgress struct {
	UserID         int       `json:"userId"`
	CurrentSession int       `json:"currentSession"`
	TotalSessions  int       `json:"totalSessions"`
	TotalStudyTime int       `json:"totalStudyTime"` // seconds
	LastStudied    time.Time `json:"lastStudied"`
}

// UpdateSessionProgressRequest represents a partial session progress update
type UpdateSessionProgressRequest struct {
	CurrentSession *int `json:"currentSession,omitempty"`
	TotalStudyTime *int `json:"totalStudyTime,omitempty"`
}
