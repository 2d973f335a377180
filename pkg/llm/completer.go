// Package llm provides the single-turn completion contract used by the
// answer composer, with providers in subpackages.
package llm

import "context"

// Completer obtains one completion for a system instruction plus user prompt.
type Completer interface {
	// Complete returns the model's trimmed output text.
	Complete(ctx context.Context, system, prompt string) (string, error)

	// Close releases any resources held by the completer.
	Close() error
}
