// Package syntax wraps tree-sitter parsing for JavaScript, TypeScript and
// TSX sources and provides ancestor-aware traversal over the resulting tree.
package syntax

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ErrParse indicates the file could not be parsed at all. Callers skip the
// file and continue the run.
var ErrParse = errors.New("parse failed")

// Tree is a parsed source file. It owns the underlying tree-sitter tree and
// must be released with Close.
type Tree struct {
	Path string
	src  []byte
	tree *sitter.Tree
}

// LanguageForFile picks the tree-sitter grammar for a file path. TSX is a
// superset used for .tsx, plain TypeScript for .ts, and the JavaScript
// grammar (which includes JSX) for everything else.
func LanguageForFile(path string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsx":
		return tsx.GetLanguage()
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// Parse parses source text into a Tree. Local syntax errors are recovered by
// tree-sitter (they surface as error nodes inside the tree); Parse fails only
// when no tree can be produced at all.
func Parse(ctx context.Context, src []byte, path string) (*Tree, error) {
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", ErrParse, path)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(LanguageForFile(path))

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}

	root := tree.RootNode()
	if root == nil {
		tree.Close()
		return nil, fmt.Errorf("%w: %s: no root node", ErrParse, path)
	}

	return &Tree{Path: path, src: src, tree: tree}, nil
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	if t.tree != nil {
		t.tree.Close()
	}
}

// Root returns the root node.
func (t *Tree) Root() *sitter.Node {
	return t.tree.RootNode()
}

// Source returns the original source bytes.
func (t *Tree) Source() []byte {
	return t.src
}

// Text returns the source text covered by a node.
func (t *Tree) Text(n *sitter.Node) string {
	return n.Content(t.src)
}

// Line returns the 1-based line number of a node's start.
func (t *Tree) Line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

// VisitFunc is called for every named node with the explicit chain of its
// ancestors, outermost first. Returning false skips the node's subtree.
type VisitFunc func(n *sitter.Node, ancestors []*sitter.Node) bool

// Walk traverses named nodes depth-first in source order, maintaining an
// explicit ancestor stack so visitors never rely on mutable parent links.
func Walk(root *sitter.Node, visit VisitFunc) {
	stack := make([]*sitter.Node, 0, 32)

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if !visit(n, stack) {
			return
		}

		stack = append(stack, n)
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
		stack = stack[:len(stack)-1]
	}

	walk(root)
}

// SameNode reports whether two node handles refer to the same source region.
func SameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

// Contains reports whether outer's byte range contains inner's.
func Contains(outer, inner *sitter.Node) bool {
	return outer.StartByte() <= inner.StartByte() && inner.EndByte() <= outer.EndByte()
}

// CalleeName resolves the called name of a call_expression or new_expression
// node: a bare identifier yields its name, a member expression its full
// dotted text (e.g. "console.log"). Anything else yields "".
func (t *Tree) CalleeName(call *sitter.Node) string {
	var callee *sitter.Node

	switch call.Type() {
	case "call_expression":
		callee = call.ChildByFieldName("function")
	case "new_expression":
		callee = call.ChildByFieldName("constructor")
	default:
		return ""
	}

	if callee == nil {
		return ""
	}

	switch callee.Type() {
	case "identifier":
		return t.Text(callee)
	case "member_expression":
		return t.Text(callee)
	}

	return ""
}

// functionKinds are the node kinds that open a function-like scope.
var functionKinds = map[string]bool{
	"function_declaration":           true,
	"function_expression":            true,
	"function":                       true,
	"generator_function":             true,
	"generator_function_declaration": true,
	"arrow_function":                 true,
	"method_definition":              true,
}

// IsFunctionLike reports whether a node kind opens a function-like scope.
func IsFunctionLike(kind string) bool {
	return functionKinds[kind]
}

// StringInner returns the content of a string or template literal without
// its surrounding quote characters.
func (t *Tree) StringInner(n *sitter.Node) string {
	text := t.Text(n)
	if len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return text
}
