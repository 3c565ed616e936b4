// Package exclude decides whether a candidate literal must be skipped based
// on its enclosing context. Every rule is a pure function of the node and
// its explicit ancestor chain.
package exclude

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"lokalize/internal/syntax"
)

// Config holds the exclusion denylists.
type Config struct {
	// LookupName is the translation lookup function; literals already
	// wrapped in it are never re-extracted.
	LookupName string
	// DeniedCalls lists call/constructor names whose arguments are
	// technical (diagnostics, errors) rather than user-facing.
	DeniedCalls []string
	// DeniedAttributes lists markup attribute names whose values are
	// identifiers, URLs or style hooks rather than natural language.
	DeniedAttributes []string
}

// DefaultDeniedCalls are diagnostic and error sinks skipped by default.
var DefaultDeniedCalls = []string{
	"console.log", "console.warn", "console.error", "console.debug", "console.info",
	"Error", "TypeError", "RangeError", "SyntaxError",
}

// DefaultDeniedAttributes are markup attributes carrying technical values.
var DefaultDeniedAttributes = []string{
	"id", "key", "className", "class", "style", "src", "href",
	"data-testid", "testID", "type", "name", "htmlFor", "rel", "target",
}

// DefaultConfig returns the default exclusion config for a lookup name.
func DefaultConfig(lookupName string) Config {
	return Config{
		LookupName:       lookupName,
		DeniedCalls:      DefaultDeniedCalls,
		DeniedAttributes: DefaultDeniedAttributes,
	}
}

// IsExcluded walks the ancestor chain of a candidate literal and reports
// whether any exclusion rule applies. Rules are independent; any one of them
// suffices.
func IsExcluded(tree *syntax.Tree, node *sitter.Node, ancestors []*sitter.Node, cfg Config) bool {
	child := node

	for i := len(ancestors) - 1; i >= 0; i-- {
		anc := ancestors[i]

		switch anc.Type() {
		case "call_expression", "new_expression":
			name := tree.CalleeName(anc)
			if nameMatches(name, cfg.LookupName) {
				return true
			}
			for _, denied := range cfg.DeniedCalls {
				if nameMatches(name, denied) {
					return true
				}
			}

		case "throw_statement":
			return true

		case "jsx_attribute":
			if attrName := jsxAttributeName(tree, anc); attrName != "" {
				for _, denied := range cfg.DeniedAttributes {
					if attrName == denied {
						return true
					}
				}
			}

		case "import_statement", "import_clause", "export_specifier", "namespace_import":
			return true

		case "literal_type", "enum_body", "enum_assignment":
			return true

		case "type_annotation", "type_alias_declaration":
			return true

		case "switch_case":
			// Only the case label is excluded, not the case body.
			if value := anc.ChildByFieldName("value"); value != nil && syntax.Contains(value, node) {
				return true
			}

		case "computed_property_name":
			return true

		case "pair":
			// Object key position; values stay extractable.
			if key := anc.ChildByFieldName("key"); key != nil && syntax.SameNode(key, child) {
				return true
			}
		}

		child = anc
	}

	return false
}

// nameMatches compares a resolved callee name against a configured one,
// accepting an exact match or a trailing ".name" segment (so "i18n.t"
// matches a lookup named "t").
func nameMatches(name, want string) bool {
	if name == "" || want == "" {
		return false
	}
	return name == want || strings.HasSuffix(name, "."+want)
}

// jsxAttributeName returns the name of a jsx_attribute node.
func jsxAttributeName(tree *syntax.Tree, attr *sitter.Node) string {
	for i := 0; i < int(attr.NamedChildCount()); i++ {
		child := attr.NamedChild(i)
		if child.Type() == "property_identifier" {
			return tree.Text(child)
		}
	}
	return ""
}
