// Package keygen produces stable, human-readable translation keys from
// source-language text via transliteration, with run-scoped collision
// resolution.
package keygen

import (
	"fmt"
	"strings"
	"unicode"
)

// DefaultCategory is the key prefix used when none is configured.
const DefaultCategory = "extracted"

const (
	maxTokens     = 4
	maxBaseKeyLen = 50
	fallbackToken = "text"
)

// Registry tracks every key minted or preloaded during one extraction run,
// together with the source text each key is bound to. A key, once minted for
// a given text, is reused verbatim for that text; a different text never
// reuses it.
type Registry struct {
	used map[string]string // full key -> source text
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{used: make(map[string]string)}
}

// Seed preloads keys already present in the on-disk translation table for
// the given category, so repeated runs reuse existing keys.
func (r *Registry) Seed(category string, texts map[string]string) {
	for shortKey, text := range texts {
		r.used[category+"."+shortKey] = text
	}
}

// Lookup returns the text bound to a full key, if any.
func (r *Registry) Lookup(fullKey string) (string, bool) {
	text, ok := r.used[fullKey]
	return text, ok
}

// Len returns the number of registered keys.
func (r *Registry) Len() int {
	return len(r.used)
}

// Draft accumulates newly minted keys and their source texts during one run.
// It is merged into the persisted translation file only in extract mode and
// only when not a dry run.
type Draft map[string]string

// Generate mints a unique dotted key for text under the given category.
// Calling it twice with identical (text, category) and unchanged registry
// state returns the same key.
func Generate(text, category string, reg *Registry, draft Draft) string {
	base := baseKey(text)
	fullKey := category + "." + base

	for n := 1; ; n++ {
		prev, taken := reg.used[fullKey]
		if !taken || prev == text {
			break
		}
		fullKey = fmt.Sprintf("%s.%s_%d", category, base, n)
	}

	reg.used[fullKey] = text
	if draft != nil {
		draft[fullKey] = text
	}

	return fullKey
}

// baseKey normalizes text into a short transliterated identifier: strip
// characters outside the source alphabet plus ASCII letters/digits/whitespace,
// lowercase, transliterate, then join the first tokens with underscores.
func baseKey(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.Is(unicode.Cyrillic, r):
			b.WriteRune(r)
		case r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	tokens := strings.Fields(Transliterate(strings.TrimSpace(b.String())))
	if len(tokens) > maxTokens {
		tokens = tokens[:maxTokens]
	}

	joined := strings.Join(tokens, "_")
	if len(joined) > maxBaseKeyLen {
		joined = joined[:maxBaseKeyLen]
	}
	if joined == "" {
		return fallbackToken
	}

	return joined
}
