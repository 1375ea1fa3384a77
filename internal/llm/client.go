// Package llm provides the process-wide language-model client used by
// the classifier, extractor, and translator. The client is constructed
// once at startup and injected; it is never mutated afterwards.
package llm

import "context"

// Request is a single completion request. ImageURL, when set, attaches
// an image to the user message for vision-capable models. MaxTokens of
// zero leaves the output length up to the provider.
type Request struct {
	System    string
	Prompt    string
	ImageURL  string
	MaxTokens int
}

// Client answers completion requests. Implementations must be safe for
// concurrent use.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
