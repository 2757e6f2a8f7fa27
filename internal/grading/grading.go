// Package grading normalizes answers and decides correctness for recall tests.
//
// Grading is intentionally exact-match on normalized strings. No fuzzy or
// edit-distance matching is applied.
package grading

import (
	"regexp"
	"strings"
)

// Mode selects the normalization rules used for grading
type Mode string

const (
	// ModeEnglish grades a translation answer against semicolon-separated candidates
	ModeEnglish Mode = "english"
	// ModePinyin grades a pinyin answer with tone diacritics folded away
	ModePinyin Mode = "pinyin"
)

var (
	parentheticalRe = regexp.MustCompile(`\(.*?\)`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
	punctuationRe   = regexp.MustCompile(`[?!.,;:']`)
)

// smartQuotes maps curly quote and apostrophe variants to their ASCII forms
var smartQuotes = strings.NewReplacer(
	"‘", "'", // left single quotation mark
	"’", "'", // right single quotation mark
	"‛", "'", // single high-reversed-9 quotation mark
	"ʼ", "'", // modifier letter apostrophe
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
	"„", `"`, // double low-9 quotation mark
)

// pinyinFold maps tone-marked pinyin letters to their base Latin letter
var pinyinFold = map[rune]rune{
	'ā': 'a', 'á': 'a', 'ǎ': 'a', 'à': 'a',
	'ē': 'e', 'é': 'e', 'ě': 'e', 'è': 'e',
	'ī': 'i', 'í': 'i', 'ǐ': 'i', 'ì': 'i',
	'ō': 'o', 'ó': 'o', 'ǒ': 'o', 'ò': 'o',
	'ū': 'u', 'ú': 'u', 'ǔ': 'u', 'ù': 'u',
	'ǖ': 'u', 'ǘ': 'u', 'ǚ': 'u', 'ǜ': 'u',
	'ü': 'u',
	'ń': 'n', 'ň': 'n',
	'ḿ': 'm',
}

// NormalizeEnglish converts an English answer into its comparable form:
// parentheticals removed, smart quotes folded to ASCII, the punctuation set
// ? ! . , ; : ' stripped, whitespace collapsed and trimmed, lower-cased.
func NormalizeEnglish(s string) string {
	s = parentheticalRe.ReplaceAllString(s, " ")
	s = smartQuotes.Replace(s)
	s = punctuationRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return strings.ToLower(s)
}

// NormalizePinyin converts a pinyin answer into its comparable form:
// lower-cased, tone diacritics folded to base letters, all whitespace removed.
// Internal spaces are removed too, so multi-syllable input needs no spacing.
func NormalizePinyin(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if base, ok := pinyinFold[r]; ok {
			return base
		}
		return r
	}, s)
	return whitespaceRe.ReplaceAllString(s, "")
}

// EnglishCandidates splits a canonical English answer on ";" and returns the
// normalized, non-empty candidate forms. A candidate that is entirely
// parenthetical normalizes to empty and is dropped.
func EnglishCandidates(canonical string) []string {
	parts := strings.Split(canonical, ";")
	candidates := make([]string, 0, len(parts))
	for _, part := range parts {
		if normalized := NormalizeEnglish(part); normalized != "" {
			candidates = append(candidates, normalized)
		}
	}
	return candidates
}

// HasPlainEnglish reports whether the canonical answer contains at least one
// candidate that is not entirely parenthetical
func HasPlainEnglish(canonical string) bool {
	return len(EnglishCandidates(canonical)) > 0
}

// Grade decides whether the user input matches the canonical answer under the
// given mode. English mode matches any normalized candidate exactly; pinyin
// mode compares the folded forms.
func Grade(input, canonical string, mode Mode) bool {
	switch mode {
	case ModeEnglish:
		normalized := NormalizeEnglish(input)
		if normalized == "" {
			return false
		}
		for _, candidate := range EnglishCandidates(canonical) {
			if normalized == candidate {
				return true
			}
		}
		return false
	case ModePinyin:
		return NormalizePinyin(input) == NormalizePinyin(canonical)
	}
	return false
}
