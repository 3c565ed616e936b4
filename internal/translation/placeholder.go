package translation

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderPattern matches {{name}} interpolation markers that must
// survive translation untouched.
var placeholderPattern = regexp.MustCompile(`\{\{[a-zA-Z_][a-zA-Z0-9_]*\}\}`)

// Mapping stores one masked placeholder and its replacement token.
type Mapping struct {
	Original string
	Token    string
}

// Protect replaces interpolation markers with opaque tokens so the provider
// cannot translate or reorder their names. Returns the masked string and
// the mappings needed to restore it.
func Protect(text string) (string, []Mapping) {
	locs := placeholderPattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text, nil
	}

	mappings := make([]Mapping, 0, len(locs))
	result := text

	// Replace in reverse order to keep indices valid.
	for i := len(locs) - 1; i >= 0; i-- {
		loc := locs[i]
		token := fmt.Sprintf("__%d__", i+1)
		mappings = append([]Mapping{{Original: text[loc[0]:loc[1]], Token: token}}, mappings...)
		result = result[:loc[0]] + token + result[loc[1]:]
	}

	return result, mappings
}

// Restore swaps masked tokens back to their original placeholders.
func Restore(translated string, mappings []Mapping) string {
	result := translated
	for _, m := range mappings {
		result = strings.Replace(result, m.Token, m.Original, 1)
	}
	return result
}
