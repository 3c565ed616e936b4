package exclude

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lokalize/internal/syntax"
)

// firstExcluded parses src and reports the exclusion verdict for the first
// string-like literal containing Cyrillic text.
func firstExcluded(t *testing.T, src, path string) bool {
	t.Helper()

	tree, err := syntax.Parse(context.Background(), []byte(src), path)
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	cfg := DefaultConfig("t")

	verdict := false
	found := false
	syntax.Walk(tree.Root(), func(n *sitter.Node, ancestors []*sitter.Node) bool {
		if found {
			return false
		}
		switch n.Type() {
		case "string", "template_string", "jsx_text":
			found = true
			verdict = IsExcluded(tree, n, ancestors, cfg)
			return false
		}
		return true
	})

	require.True(t, found, "no candidate literal found in %q", src)

	return verdict
}

func TestIsExcluded(t *testing.T) {
	tests := []struct {
		name string
		src  string
		path string
		want bool
	}{
		{"plain assignment", `const x = "Привет";`, "a.js", false},
		{"inside lookup call", `t("Привет");`, "a.js", true},
		{"nested in lookup call", `t(fmt("Привет"));`, "a.js", true},
		{"dotted lookup call", `i18n.t("Привет");`, "a.js", true},
		{"console log", `console.log("Привет");`, "a.js", true},
		{"console error", `console.error("Привет");`, "a.js", true},
		{"error constructor", `new Error("Привет");`, "a.js", true},
		{"throw statement", `throw new CustomThing("Привет");`, "a.js", true},
		{"other call", `alert("Привет");`, "a.js", false},
		{"denied jsx attribute", `const e = <div className="Привет" />;`, "a.tsx", true},
		{"denied testid attribute", `const e = <div data-testid="Привет" />;`, "a.tsx", true},
		{"allowed jsx attribute", `const e = <div title="Привет" />;`, "a.tsx", false},
		{"jsx text", `const e = <div>Привет</div>;`, "a.tsx", false},
		{"import source", `import x from "Привет";`, "a.js", true},
		{"object key", `const o = { "Привет": 1 };`, "a.js", true},
		{"object value", `const o = { k: "Привет" };`, "a.js", false},
		{"computed key", `const o = { ["Привет"]: 1 };`, "a.js", true},
		{"literal type", `type T = "Привет";`, "a.ts", true},
		{"enum member", `enum E { A = "Привет" }`, "a.ts", true},
		{"case label", "switch (x) { case \"Привет\": break; }", "a.js", true},
		{"string inside case body", "switch (x) { case 1: f(\"Привет\"); }", "a.js", false},
		{"template in lookup", "t(`Привет ${name}`);", "a.js", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, firstExcluded(t, tt.src, tt.path))
		})
	}
}

func TestNameMatches(t *testing.T) {
	assert.True(t, nameMatches("t", "t"))
	assert.True(t, nameMatches("i18n.t", "t"))
	assert.True(t, nameMatches("console.log", "console.log"))
	assert.False(t, nameMatches("tt", "t"))
	assert.False(t, nameMatches("", "t"))
	assert.False(t, nameMatches("t", ""))
}
