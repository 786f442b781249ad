package chat

import (
	"errors"
	"strings"
	"testing"
)

type fixedHint struct {
	code string
	err  error
}

func (f fixedHint) Hint(text string) (string, error) {
	return f.code, f.err
}

func TestDetectEmptyInputDefaultsToEnglish(t *testing.T) {
	d := NewDetector(nil)
	for _, input := range []string{"", "   ", "\t\n"} {
		got := d.Detect(input)
		if got.Language != LanguageEnglish || got.Confidence != 0.5 {
			t.Fatalf("input %q: got %v / %v, want en / 0.5", input, got.Language, got.Confidence)
		}
	}
}

func TestDetectKeywordOnlyMessages(t *testing.T) {
	d := NewDetector(nil)
	for lang, keywords := range languageKeywords {
		message := strings.Join(keywords, " ")
		got := d.Detect(message)
		if got.Language != lang {
			t.Fatalf("keywords of %s detected as %s (confidence %v)", lang, got.Language, got.Confidence)
		}
	}
}

func TestDetectHindiQuestion(t *testing.T) {
	d := NewDetector(nil)
	got := d.Detect("फीस कब जमा करनी है")
	if got.Language != LanguageHindi {
		t.Fatalf("got %s, want hi", got.Language)
	}
	if got.Confidence <= 0 || got.Confidence > 1 {
		t.Fatalf("confidence out of range: %v", got.Confidence)
	}
}

func TestDetectRajasthaniQuestion(t *testing.T) {
	d := NewDetector(nil)
	got := d.Detect("थारो कॉलेज कठै है")
	if got.Language != LanguageRajasthani {
		t.Fatalf("got %s, want raj", got.Language)
	}
}

func TestDetectHintBonusBreaksScriptTie(t *testing.T) {
	// Pure Devanagari text with no keywords scores hi and raj identically on
	// script alone; the statistical hint settles it.
	d := NewDetector(fixedHint{code: "hin"})
	got := d.Detect("विद्यालय जानकारी चाहिए")
	if got.Language != LanguageHindi {
		t.Fatalf("got %s, want hi", got.Language)
	}
}

func TestDetectWeakSignalFloor(t *testing.T) {
	tests := []struct {
		name  string
		hints HintProvider
		input string
	}{
		{name: "no hint", hints: fixedHint{err: errors.New("no signal")}, input: "?!"},
		{name: "hint for unsupported language", hints: fixedHint{code: "spa"}, input: "si"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDetector(tt.hints).Detect(tt.input)
			if got.Language != LanguageEnglish || got.Confidence != 0.5 {
				t.Fatalf("got %v / %v, want en / 0.5", got.Language, got.Confidence)
			}
		})
	}
}

func TestDetectConfidenceCappedAtOne(t *testing.T) {
	d := NewDetector(fixedHint{code: "eng"})
	long := strings.Repeat("what are the admission fees for the college hostel and library ", 5)
	got := d.Detect(long)
	if got.Language != LanguageEnglish {
		t.Fatalf("got %s, want en", got.Language)
	}
	if got.Confidence != 1 {
		t.Fatalf("confidence not capped: %v", got.Confidence)
	}
}

func TestDetectAlternativesLimitedAndAboveFloor(t *testing.T) {
	d := NewDetector(nil)
	got := d.Detect("प्रवेश री फीस कांई है and what about admission fees")
	if len(got.Alternatives) > 2 {
		t.Fatalf("too many alternatives: %d", len(got.Alternatives))
	}
	for _, alt := range got.Alternatives {
		if alt.Confidence <= 0.1 {
			t.Fatalf("alternative %s below floor: %v", alt.Language, alt.Confidence)
		}
		if alt.Language == got.Language {
			t.Fatalf("primary language repeated in alternatives")
		}
	}
}

func TestValidLanguage(t *testing.T) {
	for _, code := range []string{"en", "hi", "raj"} {
		if !ValidLanguage(code) {
			t.Fatalf("%s should be valid", code)
		}
	}
	for _, code := range []string{"", "EN", "fr", "hin"} {
		if ValidLanguage(code) {
			t.Fatalf("%s should be invalid", code)
		}
	}
}
