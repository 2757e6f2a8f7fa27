package models

// ChallengeStep represents one of the 14 cyclic learning steps
type ChallengeStep string

const (
	ChallengeStepStudy      ChallengeStep = "study"
	ChallengeStepTest       ChallengeStep = "test"
	ChallengeStepPinyinTest ChallengeStep = "pinyin-test"
	ChallengeStepListen     ChallengeStep = "listen"
	ChallengeStepMistakes   ChallengeStep = "mistakes"
)

// DailyChallenge represents one of today's four challenges
type DailyChallenge struct {
	Position  int           `json:"position"`  // 0..3 within today's list
	StepIndex int           `json:"stepIndex"` // 0..13 in the cyclic step list
	Step      ChallengeStep `json:"step"`
	Completed bool          `json:"completed"`
	Unlocked  bool          `json:"unlocked"`
}
