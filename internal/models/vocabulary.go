package models

// Difficulty represents the difficulty tier of a vocabulary word
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Difficulties lists all difficulty tiers in order
var Difficulties = []Difficulty{
	DifficultyBeginner,
	DifficultyIntermediate,
	DifficultyAdvanced,
}

// Valid reports whether the difficulty is a known tier
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// VocabularyWord represents a word in the reference vocabulary
//
// English holds a semicolon-separated list of accepted translations,
// parenthetical annotations allowed. The list is read-only reference data.
type VocabularyWord struct {
	ID         int        `json:"id"`
	Chinese    string     `json:"chinese"`
	Pinyin     string     `json:"pinyin"`
	English    string     `json:"english"`
	Difficulty Difficulty `json:"difficulty"`
}

// WordWithProgress represents a vocabulary word joined with the user's learned flag
type WordWithProgress struct {
	VocabularyWord
	IsLearned bool `json:"isLearned"`
}
