// Package validator checks that a produced translation actually reads
// as the target language.
package validator

import (
	"fmt"
	"strings"

	"github.com/lingward/lingward/internal/detector"
)

// minCheckLength is the minimum rune count required to attempt language
// detection. Shorter texts produce unreliable results and pass without
// validation.
const minCheckLength = 20

// Validator is advisory only: a failed check is logged by the caller,
// never used to suppress a reply.
type Validator struct {
	det  *detector.Detector
	code string
}

// New shares an existing detector instance; building one is expensive.
func New(det *detector.Detector, targetCode string) *Validator {
	return &Validator{det: det, code: strings.ToLower(targetCode)}
}

// Check returns a non-nil error when translated appears to be written
// in a language other than the target. Short or undetectable texts
// pass.
func (v *Validator) Check(translated string) error {
	text := strings.TrimSpace(translated)
	if text == "" || len([]rune(text)) < minCheckLength {
		return nil
	}

	detected, ok := v.det.Top(text)
	if !ok {
		return nil
	}

	if !strings.EqualFold(detected, v.code) {
		return fmt.Errorf("expected %s but detected %s", v.code, detected)
	}
	return nil
}
