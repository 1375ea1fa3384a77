// Package translator renders flagged text into the target language.
package translator

import "context"

// Unavailable is returned whenever a translation cannot be produced. It
// doubles as a sentinel: callers distinguish failure from success only
// by comparing against this exact value, never through an error.
const Unavailable = "Translation unavailable"

// Service renders text into the target language. Implementations have a
// total contract: they never return an error, failure yields
// Unavailable so a moderation reply is always possible.
type Service interface {
	Name() string
	Translate(ctx context.Context, text string) string
}
