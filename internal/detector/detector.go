// Package detector wraps the lingua-go statistical language detector.
// It is the fast local path of language classification; building the
// underlying models is expensive, so the instance should be shared.
package detector

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

type Detector struct {
	detector lingua.LanguageDetector
}

func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()

	return &Detector{detector: detector}
}

// Top returns the lower-cased ISO 639-1 code of the top-ranked language
// guess. The confidence value of the guess is deliberately not
// consulted: any top candidate counts, however marginal. Returns false
// when the text is empty or no guess is produced.
func (d *Detector) Top(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	guesses := d.detector.ComputeLanguageConfidenceValues(text)
	if len(guesses) == 0 {
		return "", false
	}

	code := guesses[0].Language().IsoCode639_1().String()
	if len(code) != 2 {
		return "", false
	}
	return strings.ToLower(code), true
}
