// Package script classifies text by the Japanese writing systems it contains.
package script

import "unicode/utf8"

// Code point ranges for the three scripts. They do not overlap.
const (
	hiraganaFirst = 0x3040
	hiraganaLast  = 0x309F
	katakanaFirst = 0x30A0
	katakanaLast  = 0x30FF
	kanjiFirst    = 0x4E00
	kanjiLast     = 0x9FAF
)

// Analysis summarizes the Japanese script content of a text sample.
type Analysis struct {
	// Length is the number of code points in the sample. Invalid UTF-8
	// bytes count as one code point each.
	Length      int  `json:"length"`
	Hiragana    int  `json:"hiraganaCount"`
	Katakana    int  `json:"katakanaCount"`
	Kanji       int  `json:"kanjiCount"`
	HasJapanese bool `json:"hasJapanese"`
}

// Japanese returns the number of code points that belong to any of the
// three scripts.
func (a Analysis) Japanese() int {
	return a.Hiragana + a.Katakana + a.Kanji
}

// Ratio returns the fraction of code points that are Japanese script.
// An empty sample has ratio 0.
func (a Analysis) Ratio() float64 {
	if a.Length == 0 {
		return 0
	}
	return float64(a.Japanese()) / float64(a.Length)
}

// Classify counts hiragana, katakana and kanji code points in text.
func Classify(text string) Analysis {
	var a Analysis
	for _, r := range text {
		a.Length++
		switch {
		case r >= hiraganaFirst && r <= hiraganaLast:
			a.Hiragana++
		case r >= katakanaFirst && r <= katakanaLast:
			a.Katakana++
		case r >= kanjiFirst && r <= kanjiLast:
			a.Kanji++
		}
	}
	a.HasJapanese = a.Japanese() > 0
	return a
}

// ContainsJapanese reports whether text holds at least one hiragana,
// katakana or kanji code point. It stops at the first match.
func ContainsJapanese(text string) bool {
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		if isJapanese(r) {
			return true
		}
		text = text[size:]
	}
	return false
}

func isJapanese(r rune) bool {
	return (r >= hiraganaFirst && r <= katakanaLast) || (r >= kanjiFirst && r <= kanjiLast)
}
