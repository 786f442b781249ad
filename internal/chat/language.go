package chat

import (
	"context"
	"sort"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type Language string

const (
	LanguageEnglish    Language = "en"
	LanguageHindi      Language = "hi"
	LanguageRajasthani Language = "raj"
)

func ValidLanguage(code string) bool {
	switch Language(code) {
	case LanguageEnglish, LanguageHindi, LanguageRajasthani:
		return true
	}
	return false
}

type LanguageInfo struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
}

func SupportedLanguages() []LanguageInfo {
	return []LanguageInfo{
		{Code: "en", Name: "English", NativeName: "English"},
		{Code: "hi", Name: "Hindi", NativeName: "हिन्दी"},
		{Code: "raj", Name: "Rajasthani", NativeName: "राजस्थानी"},
	}
}

// HintProvider is the external statistical identifier capability. It returns
// a coarse ISO 639-3 code; an error means no usable signal, which is a
// first-class branch of the detector, not a failure.
type HintProvider interface {
	Hint(text string) (string, error)
}

type Alternative struct {
	Language   Language `json:"language"`
	Confidence float64  `json:"confidence"`
}

type Detection struct {
	Language     Language      `json:"language"`
	Confidence   float64       `json:"confidence"`
	Alternatives []Alternative `json:"alternatives,omitempty"`
}

const (
	hintBonus         = 0.4
	scriptCharWeight  = 0.3
	keywordWeight     = 0.7
	scoreNormalizer   = 10.0
	weakSignalFloor   = 0.2
	alternativeFloor  = 0.1
	defaultConfidence = 0.5
)

// iso6393Hints maps the statistical detector's codes onto the supported set.
// Rajasthani is absent on purpose: the external detector has no model for it,
// so the hint never contributes there.
var iso6393Hints = map[string]Language{
	"eng": LanguageEnglish,
	"hin": LanguageHindi,
}

// Hindi and Rajasthani both use Devanagari, so script counting alone cannot
// tell them apart; only the keyword lists discriminate.
var languageKeywords = map[Language][]string{
	LanguageEnglish: {
		"what", "how", "when", "where", "which", "admission", "fees", "fee",
		"hostel", "library", "college", "course", "exam", "scholarship",
		"timing", "placement",
	},
	LanguageHindi: {
		"क्या", "कैसे", "कब", "कहाँ", "कौन", "फीस", "शुल्क", "प्रवेश",
		"छात्रावास", "पुस्तकालय", "परीक्षा", "छात्रवृत्ति", "समय", "हूँ", "है",
	},
	LanguageRajasthani: {
		"कांई", "कठै", "कद", "कुण", "थारो", "थांरो", "म्हारो", "म्हाने",
		"सूं", "री", "रो", "बताओ", "खम्मा", "घणी",
	},
}

type Detector struct {
	hints HintProvider
}

func NewDetector(hints HintProvider) *Detector {
	return &Detector{hints: hints}
}

// Detect never fails: weak or broken signals collapse to {ENGLISH, 0.5}.
func (d *Detector) Detect(text string) (result Detection) {
	defer func() {
		if r := recover(); r != nil {
			logutil.GetLogger(context.Background()).Error("language detection panicked", zap.Any("reason", r))
			result = Detection{Language: LanguageEnglish, Confidence: defaultConfidence}
		}
	}()

	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return Detection{Language: LanguageEnglish, Confidence: defaultConfidence}
	}

	var hinted Language
	if d.hints != nil {
		if code, err := d.hints.Hint(text); err == nil {
			hinted = iso6393Hints[code]
		}
	}

	type candidate struct {
		language Language
		score    float64
	}
	candidates := []candidate{
		{language: LanguageEnglish},
		{language: LanguageHindi},
		{language: LanguageRajasthani},
	}
	for i := range candidates {
		lang := candidates[i].language
		score := 0.0
		if hinted != "" && hinted == lang {
			score += hintBonus
		}
		score += float64(countScriptChars(normalized, lang)) * scriptCharWeight
		for _, keyword := range languageKeywords[lang] {
			if strings.Contains(normalized, keyword) {
				score += keywordWeight
			}
		}
		candidates[i].score = score
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	confidence := func(score float64) float64 {
		c := score / scoreNormalizer
		if c > 1 {
			c = 1
		}
		return c
	}

	var alternatives []Alternative
	for _, c := range candidates[1:] {
		if conf := confidence(c.score); conf > alternativeFloor {
			alternatives = append(alternatives, Alternative{Language: c.language, Confidence: conf})
		}
	}
	if len(alternatives) > 2 {
		alternatives = alternatives[:2]
	}

	top := confidence(candidates[0].score)
	if top < weakSignalFloor {
		// Weak evidence is not trusted regardless of which candidate leads.
		return Detection{Language: LanguageEnglish, Confidence: defaultConfidence, Alternatives: alternatives}
	}
	return Detection{Language: candidates[0].language, Confidence: top, Alternatives: alternatives}
}

func countScriptChars(text string, lang Language) int {
	count := 0
	for _, r := range text {
		switch lang {
		case LanguageEnglish:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				count++
			}
		case LanguageHindi, LanguageRajasthani:
			if r >= 0x0900 && r <= 0x097F {
				count++
			}
		}
	}
	return count
}
