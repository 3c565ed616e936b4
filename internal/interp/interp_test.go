package interp

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lokalize/internal/syntax"
)

func extractFirstTemplate(t *testing.T, src string) (string, []Binding) {
	t.Helper()

	tree, err := syntax.Parse(context.Background(), []byte(src), "a.js")
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	var text string
	var bindings []Binding
	found := false

	syntax.Walk(tree.Root(), func(n *sitter.Node, _ []*sitter.Node) bool {
		if !found && n.Type() == "template_string" {
			found = true
			text, bindings = Extract(tree, n)
			return false
		}
		return true
	})

	require.True(t, found, "no template literal in %q", src)

	return text, bindings
}

func TestExtractBareIdentifiers(t *testing.T) {
	text, bindings := extractFirstTemplate(t, "const s = `Привет, ${name}! У тебя ${count} писем`;")

	assert.Equal(t, "Привет, {{name}}! У тебя {{count}} писем", text)
	require.Len(t, bindings, 2)
	assert.Equal(t, Binding{Name: "name", Expr: "name"}, bindings[0])
	assert.Equal(t, Binding{Name: "count", Expr: "count"}, bindings[1])
	assert.True(t, bindings[0].Shorthand())
}

func TestExtractComplexExpression(t *testing.T) {
	text, bindings := extractFirstTemplate(t, "const s = `Итого: ${total + 1}`;")

	assert.Equal(t, "Итого: {{arg1}}", text)
	require.Len(t, bindings, 1)
	assert.Equal(t, "arg1", bindings[0].Name)
	assert.Equal(t, "total + 1", bindings[0].Expr)
	assert.False(t, bindings[0].Shorthand())
}

func TestExtractDuplicateIdentifierFallsBackToPositional(t *testing.T) {
	text, bindings := extractFirstTemplate(t, "const s = `${name} и снова ${name}`;")

	assert.Equal(t, "{{name}} и снова {{arg2}}", text)
	require.Len(t, bindings, 2)
	assert.Equal(t, "name", bindings[0].Name)
	assert.Equal(t, "arg2", bindings[1].Name)
	assert.Equal(t, "name", bindings[1].Expr)
}

func TestExtractMemberExpression(t *testing.T) {
	text, bindings := extractFirstTemplate(t, "const s = `Привет, ${user.name}`;")

	assert.Equal(t, "Привет, {{arg1}}", text)
	require.Len(t, bindings, 1)
	assert.Equal(t, "user.name", bindings[0].Expr)
}

func TestExtractNoSubstitutions(t *testing.T) {
	text, bindings := extractFirstTemplate(t, "const s = `Просто текст`;")

	assert.Equal(t, "Просто текст", text)
	assert.Empty(t, bindings)
}
