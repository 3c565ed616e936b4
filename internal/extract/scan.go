package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"lokalize/internal/exclude"
	"lokalize/internal/interp"
	"lokalize/internal/keygen"
	"lokalize/internal/match"
	"lokalize/internal/rewrite"
	"lokalize/internal/syntax"
)

// scanConfig bundles the per-run collaborators of a file scan. Registry and
// draft are shared across all files of one run; everything else is
// read-only.
type scanConfig struct {
	matcher     *match.Matcher
	exclusion   exclude.Config
	category    string
	lookupName  string
	autoGetters bool
	registry    *keygen.Registry
	draft       keygen.Draft
}

// scanResult is one file's found strings plus its planned edits.
type scanResult struct {
	found []FoundString
	plan  *rewrite.Plan
}

// scanFile walks one parsed file depth-first in source order, turning every
// accepted literal into a found-string record and a planned replacement.
// Matched nodes are not descended into, so nested literals inside an
// already-replaced range are never double-extracted.
func scanFile(tree *syntax.Tree, cfg scanConfig) scanResult {
	res := scanResult{plan: rewrite.NewPlan()}

	syntax.Walk(tree.Root(), func(n *sitter.Node, ancestors []*sitter.Node) bool {
		switch n.Type() {
		case "string":
			return res.visitString(tree, n, ancestors, cfg)
		case "template_string":
			return res.visitTemplate(tree, n, ancestors, cfg)
		case "jsx_text":
			return res.visitMarkupText(tree, n, ancestors, cfg)
		}
		return true
	})

	return res
}

func (res *scanResult) visitString(tree *syntax.Tree, n *sitter.Node, ancestors []*sitter.Node, cfg scanConfig) bool {
	text := tree.StringInner(n)
	if !cfg.matcher.Matches(text) || res.plan.Covers(n.StartByte(), n.EndByte()) {
		return true
	}
	if exclude.IsExcluded(tree, n, ancestors, cfg.exclusion) {
		return true
	}

	key := keygen.Generate(text, cfg.category, cfg.registry, cfg.draft)
	call := rewrite.LookupCall(cfg.lookupName, key)

	res.replaceLiteral(tree, n, ancestors, cfg, call)
	res.record(tree, n, FoundString{Text: text, Key: key, Kind: KindLiteral})

	return false
}

func (res *scanResult) visitTemplate(tree *syntax.Tree, n *sitter.Node, ancestors []*sitter.Node, cfg scanConfig) bool {
	if res.plan.Covers(n.StartByte(), n.EndByte()) {
		return true
	}

	text, bindings := interp.Extract(tree, n)
	if !cfg.matcher.Matches(text) {
		return true
	}
	if exclude.IsExcluded(tree, n, ancestors, cfg.exclusion) {
		return true
	}

	key := keygen.Generate(text, cfg.category, cfg.registry, cfg.draft)
	call := rewrite.LookupCallWithBindings(cfg.lookupName, key, bindings)

	res.replaceLiteral(tree, n, ancestors, cfg, call)

	found := FoundString{Text: text, Key: key, Kind: KindTemplate}
	for _, b := range bindings {
		found.Interpolations = append(found.Interpolations, b.Name)
	}
	res.record(tree, n, found)

	return false
}

func (res *scanResult) visitMarkupText(tree *syntax.Tree, n *sitter.Node, ancestors []*sitter.Node, cfg scanConfig) bool {
	raw := tree.Text(n)
	text := strings.TrimSpace(raw)
	if !cfg.matcher.Matches(text) || res.plan.Covers(n.StartByte(), n.EndByte()) {
		return true
	}
	if exclude.IsExcluded(tree, n, ancestors, cfg.exclusion) {
		return true
	}

	key := keygen.Generate(text, cfg.category, cfg.registry, cfg.draft)
	call := rewrite.JSXExpression(rewrite.LookupCall(cfg.lookupName, key))

	// Replace only the trimmed span so surrounding markup whitespace and
	// line breaks survive.
	lead := uint32(len(raw) - len(strings.TrimLeft(raw, " \t\r\n")))
	trail := uint32(len(raw) - len(strings.TrimRight(raw, " \t\r\n")))
	res.plan.Add(n.StartByte()+lead, n.EndByte()-trail, call)

	res.record(tree, n, FoundString{Text: text, Key: key, Kind: KindMarkup})

	return false
}

// replaceLiteral plans the edit for a non-markup literal: the auto-getter
// transform when it applies, a braced expression inside a markup attribute,
// or a plain call otherwise.
func (res *scanResult) replaceLiteral(tree *syntax.Tree, n *sitter.Node, ancestors []*sitter.Node, cfg scanConfig, call string) {
	if cfg.autoGetters {
		if pair := rewrite.AutoGetterTarget(n, ancestors); pair != nil {
			keyText := tree.Text(pair.ChildByFieldName("key"))
			res.plan.Add(pair.StartByte(), pair.EndByte(), rewrite.AccessorProperty(keyText, call))
			return
		}
	}

	if len(ancestors) > 0 && ancestors[len(ancestors)-1].Type() == "jsx_attribute" {
		res.plan.Add(n.StartByte(), n.EndByte(), rewrite.JSXExpression(call))
		return
	}

	res.plan.Add(n.StartByte(), n.EndByte(), call)
}

func (res *scanResult) record(tree *syntax.Tree, n *sitter.Node, f FoundString) {
	f.File = tree.Path
	f.Line = tree.Line(n)
	res.found = append(res.found, f)
	logFound(f)
}
