// Package validate scans rewritten sources for lookup calls whose keys do
// not resolve in the loaded translation table.
package validate

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"lokalize/internal/locales"
	"lokalize/internal/syntax"
)

// Unresolved reports one lookup call whose key has no string value.
type Unresolved struct {
	Key  string
	File string
	Line int
}

// FindUnresolvedKeys walks the tree for calls to the lookup function with a
// literal string first argument and reports every key that does not resolve
// to a string in the table. The tree is not modified.
func FindUnresolvedKeys(tree *syntax.Tree, table locales.Table, lookupName string) []Unresolved {
	var out []Unresolved

	syntax.Walk(tree.Root(), func(n *sitter.Node, _ []*sitter.Node) bool {
		if n.Type() != "call_expression" {
			return true
		}

		name := tree.CalleeName(n)
		if name != lookupName && !strings.HasSuffix(name, "."+lookupName) {
			return true
		}

		key, ok := firstStringArgument(tree, n)
		if !ok {
			return true
		}

		if _, resolved := locales.Resolve(table, key); !resolved {
			out = append(out, Unresolved{
				Key:  key,
				File: tree.Path,
				Line: tree.Line(n),
			})
		}

		return true
	})

	return out
}

// firstStringArgument returns the unquoted first argument of a call when it
// is a plain string literal.
func firstStringArgument(tree *syntax.Tree, call *sitter.Node) (string, bool) {
	args := call.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return "", false
	}

	first := args.NamedChild(0)
	if first.Type() != "string" {
		return "", false
	}

	return tree.StringInner(first), true
}
