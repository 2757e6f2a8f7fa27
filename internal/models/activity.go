package models

import "time"

// ActivityType represents the kind of a logged activity
type ActivityType string

const (
	ActivityStudy ActivityType = "study"
	ActivityTest  ActivityType = "test"
)

// Valid reports whether the activity type is known
func (t ActivityType) Valid() bool {
	return t == ActivityStudy || t == ActivityTest
}

// ActivityLogEntry represents an append-only activity record for a user
//
// Study-type entries are the source of truth for streak computation.
type ActivityLogEntry struct {
	ID              int          `json:"id"`
	UserID          int          `json:"userId"`
	Type            ActivityType `json:"type"`
	DurationSeconds int          `json:"durationSeconds"`
	CreatedAt       time.Time    `json:"createdAt"`
}

// LogActivityRequest represents an activity log submission
type LogActivityRequest struct {
	Type            ActivityType `json:"type"`
	DurationSeconds int          `json:"durationSeconds"`
}

// Stats is the immutable dashboard snapshot, recomputed on every read
type Stats struct {
	TotalWords      int                       `json:"totalWords"`
	LearnedWords    int                       `json:"learnedWords"`
	CurrentStreak   int                       `json:"currentStreak"`
	TotalStudyTime  int                       `json:"totalStudyTime"` // seconds
	TestsCompleted  int                       `json:"testsCompleted"`
	DifficultyStats map[Difficulty]TierCounts `json:"difficultyStats"`
}

// TierCounts holds total and learned word counts for one difficulty tier
type TierCounts struct {
	Total   int `json:"total"`
	Learned int `json:"learned"`
}
