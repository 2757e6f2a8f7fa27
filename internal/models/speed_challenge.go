package models

import "time"

// SpeedChallengeScore represents one finished speed challenge attempt
type SpeedChallengeScore struct {
	ID              int       `json:"id"`
	UserID          int       `json:"userId"`
	Score           int       `json:"score"`
	TimeUsedSeconds int       `json:"timeUsedSeconds"`
	CreatedAt       time.Time `json:"createdAt"`
}

// SpeedChallengeSession carries the questions for a started attempt
type SpeedChallengeSession struct {
	SessionID       string     `json:"sessionId"`
	DurationSeconds int        `json:"durationSeconds"`
	Questions       []Question `json:"questions"`
}

// SpeedChallengeStatus reports whether the user may start an attempt
type SpeedChallengeStatus struct {
	Eligible     bool `json:"eligible"`
	LearnedWords int  `json:"learnedWords"`
	MinRequired  int  `json:"minRequired"`
}

// SpeedChallengeResult is returned when an attempt is completed
type SpeedChallengeResult struct {
	Score           int  `json:"score"`
	TimeUsedSeconds int  `json:"timeUsedSeconds"`
	IsNewHighScore  bool `json:"isNewHighScore"`
}

// TestSession represents a completed test, used only as a count
type TestSession struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	CompletedAt time.Time `json:"completedAt"`
}
