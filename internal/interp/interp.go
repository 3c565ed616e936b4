// Package interp extracts normalized text and named bindings from template
// literals with embedded expressions. The normalized text carries
// {{placeholder}} markers that downstream formatting re-injects by name.
package interp

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"lokalize/internal/syntax"
)

// Binding pairs a placeholder name with the source text of the expression it
// stands for, in source order.
type Binding struct {
	// Name is the placeholder name: the expression's identifier when it is
	// a bare identifier reference, else a positional "argN" name.
	Name string
	// Expr is the expression's source text.
	Expr string
}

// Shorthand reports whether the binding can use shorthand property syntax
// in the rewritten lookup call.
func (b Binding) Shorthand() bool {
	return b.Name == b.Expr
}

// Extract builds the normalized text of a template literal by concatenating
// its literal chunks with {{name}} markers at each expression boundary.
// Placeholder names are unique within one template: a duplicate bare
// identifier falls back to its positional name.
func Extract(tree *syntax.Tree, tmpl *sitter.Node) (string, []Binding) {
	src := tree.Source()

	var subs []*sitter.Node
	for i := 0; i < int(tmpl.NamedChildCount()); i++ {
		child := tmpl.NamedChild(i)
		if child.Type() == "template_substitution" {
			subs = append(subs, child)
		}
	}

	var sb strings.Builder
	bindings := make([]Binding, 0, len(subs))
	seen := make(map[string]bool, len(subs))

	// Skip the opening and closing backticks.
	cursor := tmpl.StartByte() + 1
	end := tmpl.EndByte() - 1

	for i, sub := range subs {
		sb.Write(src[cursor:sub.StartByte()])

		name := placeholderName(tree, sub, i, seen)
		seen[name] = true

		sb.WriteString("{{" + name + "}}")
		bindings = append(bindings, Binding{
			Name: name,
			Expr: expressionText(tree, sub),
		})

		cursor = sub.EndByte()
	}

	sb.Write(src[cursor:end])

	return sb.String(), bindings
}

// placeholderName picks the binding name for the i-th substitution.
func placeholderName(tree *syntax.Tree, sub *sitter.Node, i int, seen map[string]bool) string {
	if expr := sub.NamedChild(0); expr != nil && expr.Type() == "identifier" {
		name := tree.Text(expr)
		if !seen[name] {
			return name
		}
	}
	return fmt.Sprintf("arg%d", i+1)
}

// expressionText returns the substitution's expression source without the
// surrounding "${" and "}".
func expressionText(tree *syntax.Tree, sub *sitter.Node) string {
	if expr := sub.NamedChild(0); expr != nil {
		return tree.Text(expr)
	}

	text := tree.Text(sub)
	text = strings.TrimPrefix(text, "${")
	text = strings.TrimSuffix(text, "}")

	return strings.TrimSpace(text)
}
