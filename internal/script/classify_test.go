package script

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Analysis
	}{
		{"empty", "", Analysis{}},
		{"ascii", "hello, world", Analysis{Length: 12}},
		{"hiragana", "こんにちは", Analysis{Length: 5, Hiragana: 5, HasJapanese: true}},
		{"kanji", "日本語", Analysis{Length: 3, Kanji: 3, HasJapanese: true}},
		{"katakana", "カタカナ", Analysis{Length: 4, Katakana: 4, HasJapanese: true}},
		{"mixed", "私はコーヒーが好きです。", Analysis{Length: 12, Hiragana: 5, Katakana: 4, Kanji: 2, HasJapanese: true}},
		{"with latin", "Tokyo 東京", Analysis{Length: 8, Kanji: 2, HasJapanese: true}},
		// Half-width katakana and CJK punctuation are outside the ranges.
		{"half-width katakana", "ｶﾀｶﾅ", Analysis{Length: 4}},
		{"ideographic punctuation", "「」。、", Analysis{Length: 4}},
		{"range edges", "぀ゟ゠ヿ一龯", Analysis{Length: 6, Hiragana: 2, Katakana: 2, Kanji: 2, HasJapanese: true}},
		{"just outside kanji", "䷿龰", Analysis{Length: 2}},
		// Supplementary-plane ideographs count once toward Length and are
		// not kanji under the BMP range.
		{"supplementary", "𠮷野家", Analysis{Length: 3, Kanji: 2, HasJapanese: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			if got != tt.want {
				t.Fatalf("Classify(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassify_Invariants(t *testing.T) {
	samples := []string{
		"",
		"abc",
		"日本語のテキストです",
		"mixed 日本 and カナ and ひらがな!",
		strings.Repeat("漢", 100),
		"\xff\xfe invalid bytes",
		"emoji 🎌 flags",
	}
	for _, s := range samples {
		a := Classify(s)
		if a.Hiragana < 0 || a.Katakana < 0 || a.Kanji < 0 {
			t.Errorf("%q: negative count %+v", s, a)
		}
		if a.Japanese() > a.Length {
			t.Errorf("%q: script counts %d exceed length %d", s, a.Japanese(), a.Length)
		}
		if a.HasJapanese != (a.Hiragana > 0 || a.Katakana > 0 || a.Kanji > 0) {
			t.Errorf("%q: HasJapanese inconsistent with counts %+v", s, a)
		}
		if a.Length != utf8.RuneCountInString(s) {
			t.Errorf("%q: Length = %d, want %d", s, a.Length, utf8.RuneCountInString(s))
		}
		if a.HasJapanese != ContainsJapanese(s) {
			t.Errorf("%q: ContainsJapanese disagrees with Classify", s)
		}
	}
}

func TestAnalysisRatio(t *testing.T) {
	if r := Classify("").Ratio(); r != 0 {
		t.Fatalf("empty ratio = %v, want 0", r)
	}
	if r := Classify("ab日本").Ratio(); r != 0.5 {
		t.Fatalf("ratio = %v, want 0.5", r)
	}
}
