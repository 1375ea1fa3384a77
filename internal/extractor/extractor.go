// Package extractor normalizes inbound content units, inline text or
// image references, into a single decision shape for the dispatch
// policy. Image content goes through one combined transcription plus
// classification request against the language-model service.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lingward/lingward/internal"
	"github.com/lingward/lingward/internal/classifier"
	"github.com/lingward/lingward/internal/llm"
	"github.com/lingward/lingward/internal/postprocess"
)

// NoTextMarker is the sentinel the vision prompt asks the model to emit
// when an image contains no readable text.
const NoTextMarker = "NO_TEXT_FOUND"

const visionMaxTokens = 500

type Extractor struct {
	cls    *classifier.Classifier
	client llm.Client
	name   string // target language display name, e.g. "English"
	field  string // boolean field requested from the model, e.g. "isEnglish"
}

func New(cls *classifier.Classifier, client llm.Client, targetName string) *Extractor {
	return &Extractor{
		cls:    cls,
		client: client,
		name:   targetName,
		field:  "is" + targetName,
	}
}

// Extract produces the normalized result for any content unit. It never
// returns an error: every failure degrades to empty text and a positive
// language verdict.
func (e *Extractor) Extract(ctx context.Context, unit internal.ContentUnit) internal.ExtractionResult {
	switch unit.Kind {
	case internal.KindText:
		return safeResult(unit.Text, e.cls.Classify(ctx, unit.Text))
	case internal.KindImage:
		return e.extractImage(ctx, unit.ImageURL)
	default:
		return safeResult("", true)
	}
}

func (e *Extractor) extractImage(ctx context.Context, url string) internal.ExtractionResult {
	raw, err := e.client.Complete(ctx, llm.Request{
		Prompt:    e.prompt(),
		ImageURL:  url,
		MaxTokens: visionMaxTokens,
	})
	if err != nil {
		return safeResult("", true)
	}

	cleaned := postprocess.Clean(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err == nil {
		return e.fromStructured(fields)
	}

	// The model ignored the requested shape. Treat its output as the
	// transcription itself and let the classifier settle the language.
	if cleaned == "" || strings.Contains(cleaned, NoTextMarker) {
		return safeResult("", true)
	}
	return safeResult(cleaned, e.cls.Classify(ctx, cleaned))
}

func (e *Extractor) fromStructured(fields map[string]json.RawMessage) internal.ExtractionResult {
	var text string
	if rawText, ok := fields["text"]; ok {
		_ = json.Unmarshal(rawText, &text)
	}

	// Only an explicit boolean false counts as a negative verdict.
	// Absent, null, or malformed values all read as "fine".
	isTarget := true
	if rawFlag, ok := fields[e.field]; ok {
		var flag bool
		if err := json.Unmarshal(rawFlag, &flag); err == nil && !flag {
			isTarget = false
		}
	}

	return safeResult(text, isTarget)
}

func (e *Extractor) prompt() string {
	return fmt.Sprintf(`Transcribe any text visible in this image and judge its language.
Respond with a JSON object of exactly two fields:
{"text": "<the transcribed text>", %q: <true if the text is written in %s, false otherwise>}
If the image contains no readable text, respond with the single word %s.
Do not add anything else.`,
		e.field, e.name, NoTextMarker)
}

// safeResult applies the pipeline-wide fail-safe convention: no text
// means nothing to flag.
func safeResult(text string, isTarget bool) internal.ExtractionResult {
	if text == "" {
		return internal.ExtractionResult{Text: "", IsTarget: true}
	}
	return internal.ExtractionResult{Text: text, IsTarget: isTarget}
}
