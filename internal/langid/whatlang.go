// Package langid adapts the whatlanggo trigram detector to the assistant's
// hint capability. It only supplies a coarse ISO 639-3 code; final language
// resolution happens in the chat detector.
package langid

import (
	"errors"

	"github.com/abadojack/whatlanggo"
)

var ErrNoSignal = errors.New("no language signal")

type Whatlang struct{}

func NewWhatlang() *Whatlang {
	return &Whatlang{}
}

func (w *Whatlang) Hint(text string) (string, error) {
	info := whatlanggo.Detect(text)
	code := whatlanggo.LangToString(info.Lang)
	if code == "" {
		return "", ErrNoSignal
	}
	return code, nil
}
