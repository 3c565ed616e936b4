// Package match decides whether a text fragment is in the source language
// and therefore needs extraction.
package match

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultPattern matches any Cyrillic character anywhere in the text.
const DefaultPattern = `\p{Cyrillic}`

// Matcher tests text fragments against the configured source pattern.
type Matcher struct {
	re *regexp.Regexp
}

// New compiles the given pattern. An invalid pattern never aborts the run:
// the matcher falls back to DefaultPattern.
func New(pattern string) *Matcher {
	if pattern == "" {
		pattern = DefaultPattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		log.Debug().Err(err).Str("pattern", pattern).Msg("Invalid source pattern, using default")
		re = regexp.MustCompile(DefaultPattern)
	}

	return &Matcher{re: re}
}

// Matches reports whether any part of text satisfies the source pattern.
// Empty or whitespace-only text never matches.
func (m *Matcher) Matches(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	return m.re.MatchString(text)
}
