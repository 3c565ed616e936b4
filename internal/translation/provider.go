// Package translation implements the machine-translation collaborator:
// batched provider calls with rate limiting, bounded retries and per-text
// fallback to the original.
package translation

import "context"

// Provider translates a batch of texts between two languages. The result
// must have the same length and order as the input.
type Provider interface {
	Translate(ctx context.Context, texts []string, from, to string) ([]string, error)
}

// Delimiter separates entries in batched prompt responses.
const Delimiter = "|||"
