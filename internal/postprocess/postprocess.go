// Package postprocess strips common LLM artifacts from model replies
// before they are parsed or shown to users.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean removes artifacts in three phases and returns the trimmed
// result:
//  1. Thinking / reasoning block removal
//  2. Markdown code fence removal
//  3. Quote wrapping removal
func Clean(text string) string {
	text = removeThinkingBlocks(text)
	text = removeCodeFence(text)
	text = removeQuoteWrapping(text)
	return strings.TrimSpace(text)
}

// Each tag variant is listed explicitly because Go's RE2 engine does
// not support backreferences.
var thinkingBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>`,
)

// truncatedThinkingRe matches an opened thinking tag whose closing tag
// is missing (the model was cut off mid-thought).
var truncatedThinkingRe = regexp.MustCompile(
	`(?is)(?:<thinking>|<think>|<reasoning>).*$`,
)

func removeThinkingBlocks(text string) string {
	text = thinkingBlockRe.ReplaceAllString(text, "")
	text = truncatedThinkingRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// codeFenceRe matches a reply wrapped in a single ``` block, with an
// optional language tag on the opening fence. Models often wrap JSON
// output this way even when told not to.
var codeFenceRe = regexp.MustCompile("(?s)^```[a-zA-Z0-9]*\\n?(.*?)\\n?```$")

func removeCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if m := codeFenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// removeQuoteWrapping strips a matching pair of outer quotes when the
// entire text is wrapped in them. Supported pairs:
//
//	"…"  '…'  «…»  "…"  '…'
func removeQuoteWrapping(text string) string {
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	first, last := runes[0], runes[n-1]
	if (first == '"' && last == '"') ||
		(first == '\'' && last == '\'') ||
		(first == '«' && last == '»') ||
		(first == '“' && last == '”') ||
		(first == '‘' && last == '’') {
		return strings.TrimSpace(string(runes[1 : n-1]))
	}
	return text
}
