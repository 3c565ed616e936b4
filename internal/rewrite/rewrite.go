// Package rewrite replaces matched literal nodes with lookup calls. Edits
// are planned during a read-only traversal and spliced into the source in
// reverse position order, so byte offsets stay valid and line structure of
// untouched regions is preserved.
package rewrite

import (
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"lokalize/internal/interp"
	"lokalize/internal/syntax"
)

// Edit is a planned replacement of a source byte range.
type Edit struct {
	Start uint32
	End   uint32
	Text  string
}

// Plan accumulates edits for one file.
type Plan struct {
	edits []Edit
}

// NewPlan creates an empty plan.
func NewPlan() *Plan {
	return &Plan{}
}

// Add schedules a replacement.
func (p *Plan) Add(start, end uint32, text string) {
	p.edits = append(p.edits, Edit{Start: start, End: end, Text: text})
}

// Covers reports whether the given range lies inside an already planned
// edit. Traversal is pre-order, so an outer replacement shadows anything
// nested in it.
func (p *Plan) Covers(start, end uint32) bool {
	for _, e := range p.edits {
		if e.Start <= start && end <= e.End {
			return true
		}
	}
	return false
}

// Len returns the number of planned edits.
func (p *Plan) Len() int {
	return len(p.edits)
}

// Apply splices all edits into src, rightmost first.
func (p *Plan) Apply(src []byte) []byte {
	edits := make([]Edit, len(p.edits))
	copy(edits, p.edits)
	sort.Slice(edits, func(i, j int) bool { return edits[i].Start > edits[j].Start })

	out := make([]byte, len(src))
	copy(out, src)

	for _, e := range edits {
		var b []byte
		b = append(b, out[:e.Start]...)
		b = append(b, e.Text...)
		b = append(b, out[e.End:]...)
		out = b
	}

	return out
}

// LookupCall renders a lookup call with a single key argument: t("key").
func LookupCall(lookupName, key string) string {
	return fmt.Sprintf("%s(%q)", lookupName, key)
}

// LookupCallWithBindings renders a lookup call with an interpolation object:
// t("key", { name, count: expr }). Shorthand syntax is used when the
// placeholder name equals the bound expression.
func LookupCallWithBindings(lookupName, key string, bindings []interp.Binding) string {
	if len(bindings) == 0 {
		return LookupCall(lookupName, key)
	}

	props := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if b.Shorthand() {
			props = append(props, b.Name)
		} else {
			props = append(props, b.Name+": "+b.Expr)
		}
	}

	return fmt.Sprintf("%s(%q, { %s })", lookupName, key, strings.Join(props, ", "))
}

// JSXExpression wraps a call for embedding in markup: {t("key")}.
func JSXExpression(inner string) string {
	return "{" + inner + "}"
}

// AccessorProperty renders a lazily-evaluated accessor property whose body
// returns the lookup call, preserving the original property key text.
func AccessorProperty(keyText, call string) string {
	return fmt.Sprintf("get %s() { return %s; }", keyText, call)
}

// AutoGetterTarget returns the enclosing object property eligible for the
// lazy-accessor transform: the literal must be the direct value of a pair
// with a non-computed key, and the pair must not sit inside any
// function-like scope. Returns nil when the transform must fall back to a
// plain value replacement.
func AutoGetterTarget(node *sitter.Node, ancestors []*sitter.Node) *sitter.Node {
	if len(ancestors) == 0 {
		return nil
	}

	pair := ancestors[len(ancestors)-1]
	if pair.Type() != "pair" {
		return nil
	}

	value := pair.ChildByFieldName("value")
	if value == nil || !syntax.SameNode(value, node) {
		return nil
	}

	if key := pair.ChildByFieldName("key"); key == nil || key.Type() == "computed_property_name" {
		return nil
	}

	// Any function-like ancestor means the table initializes lazily anyway.
	for _, anc := range ancestors[:len(ancestors)-1] {
		if syntax.IsFunctionLike(anc.Type()) {
			return nil
		}
	}

	return pair
}
