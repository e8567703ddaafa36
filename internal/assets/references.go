// Asset-reference scanning collects every string literal, property-access
// chain, fontFamily assignment, and dynamic-directory hint from one source
// file's AST.
package assets

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/hygiene/internal/model"
	"github.com/standardbeagle/hygiene/internal/parser"
)

// CollectReferences walks result's AST, producing every AssetReference the
// file contains. filePath is relative to its owning package root.
func CollectReferences(result *parser.ParseResult, pkg, filePath string) []model.AssetReference {
	content := result.Content
	var refs []model.AssetReference

	loc := func(n *tree_sitter.Node) model.Location { return parser.NodeLocation(n, pkg, filePath) }

	parser.Walk(result.Tree.RootNode(), parser.Visitor{Pre: func(n *tree_sitter.Node) bool {
		switch n.Kind() {
		case parser.KindStringLiteral:
			text := parser.StripQuotes(parser.NodeText(n, content))
			refs = append(refs, model.AssetReference{Tag: model.TagLiteral, Text: text, Location: loc(n)})
			interpolated := false
			parser.Walk(n, parser.Visitor{Pre: func(c *tree_sitter.Node) bool {
				if c.Kind() == parser.KindTemplateSubst {
					interpolated = true
				}
				return !interpolated
			}})
			if interpolated {
				if hint, ok := dynamicHint(n, content); ok {
					refs = append(refs, model.AssetReference{Tag: model.TagDynamicHint, Text: hint, Location: loc(n)})
				}
			}
			return false

		case parser.KindNavigation:
			if chain, ok := propertyChain(n, content); ok {
				refs = append(refs, model.AssetReference{Tag: model.TagPropertyChain, Text: chain, Location: loc(n)})
			}
			return true

		case parser.KindAssignment:
			if family, ok := fontFamilyAssignment(n, content); ok {
				refs = append(refs, model.AssetReference{Tag: model.TagFontFamily, Text: family, Location: loc(n)})
			}
			return true

		case parser.KindTemplateSubst, parser.KindAdjacentStrings:
			if hint, ok := dynamicHint(n, content); ok {
				refs = append(refs, model.AssetReference{Tag: model.TagDynamicHint, Text: hint, Location: loc(n)})
			}
			return true
		}
		return true
	}})

	return refs
}

// propertyChain walks a navigation_expression (a.b.c) collecting dotted
// identifier segments; returns ok=false if any segment isn't a plain
// identifier (e.g. a method call breaks the chain).
func propertyChain(node *tree_sitter.Node, content []byte) (string, bool) {
	var segments []string
	ok := collectChainSegments(node, content, &segments)
	if !ok || len(segments) < 2 {
		return "", false
	}
	return strings.Join(segments, "."), true
}

func collectChainSegments(node *tree_sitter.Node, content []byte, out *[]string) bool {
	if node == nil {
		return false
	}
	switch node.Kind() {
	case parser.KindIdentifier, parser.KindTypeIdentifier:
		*out = append(*out, parser.NodeText(node, content))
		return true
	case parser.KindNavigation:
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child == nil {
				continue
			}
			switch child.Kind() {
			case parser.KindNavigation, parser.KindIdentifier, parser.KindTypeIdentifier:
				if !collectChainSegments(child, content, out) {
					return false
				}
			case "argument_part", "arguments", "(", ")":
				return false
			}
		}
		return true
	default:
		return false
	}
}

// fontFamilyAssignment recognizes `fontFamily: 'X'` / `fontFamily = 'X'`
// value sites and returns the family-name string.
func fontFamilyAssignment(node *tree_sitter.Node, content []byte) (string, bool) {
	text := parser.NodeText(node, content)
	if !strings.Contains(text, "fontFamily") {
		return "", false
	}
	var lit *tree_sitter.Node
	parser.Walk(node, parser.Visitor{Pre: func(n *tree_sitter.Node) bool {
		if n.Kind() == parser.KindStringLiteral && lit == nil {
			lit = n
		}
		return lit == nil
	}})
	if lit == nil {
		return "", false
	}
	return parser.StripQuotes(parser.NodeText(lit, content)), true
}

// dynamicHint recognizes an interpolation or string-concatenation whose
// static portion points into a known asset directory, e.g. 'assets/icons/$name.svg'.
func dynamicHint(node *tree_sitter.Node, content []byte) (string, bool) {
	raw := parser.NodeText(node, content)
	return DynamicHintDirectory(raw)
}
