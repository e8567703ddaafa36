package parser

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/hygiene/internal/model"
)

// NodeText returns a node's raw source text.
func NodeText(node *tree_sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start > uint(len(content)) || end > uint(len(content)) || start > end {
		return ""
	}
	return string(content[start:end])
}

// NodeLocation converts a node's start position into a model.Location.
func NodeLocation(node *tree_sitter.Node, pkg, file string) model.Location {
	if node == nil {
		return model.Location{Package: pkg, File: file}
	}
	pos := node.StartPosition()
	return model.Location{
		Package: pkg,
		File:    file,
		Line:    int(pos.Row) + 1,
		Column:  int(pos.Column) + 1,
	}
}

// ChildByType returns the first direct child of the given tree-sitter kind.
func ChildByType(node *tree_sitter.Node, kind string) *tree_sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}

// ChildrenByType returns every direct child of the given tree-sitter kind.
func ChildrenByType(node *tree_sitter.Node, kind string) []*tree_sitter.Node {
	if node == nil {
		return nil
	}
	var out []*tree_sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			out = append(out, child)
		}
	}
	return out
}

// NodeID returns a stable identity for a node within one parse, for use as
// a VisitContext de-dup key.
func NodeID(node *tree_sitter.Node) uintptr {
	if node == nil {
		return 0
	}
	return uintptr(node.StartByte())<<32 | uintptr(node.EndByte())
}

// StripQuotes removes the surrounding quote characters from a Dart string
// literal's raw text (single, double, or triple-quoted).
func StripQuotes(raw string) string {
	for _, q := range []string{`'''`, `"""`} {
		if len(raw) >= 2*len(q) && hasPrefixSuffix(raw, q) {
			return raw[len(q) : len(raw)-len(q)]
		}
	}
	for _, q := range []string{`'`, `"`} {
		if len(raw) >= 2 && hasPrefixSuffix(raw, q) {
			return raw[len(q) : len(raw)-len(q)]
		}
	}
	return raw
}

func hasPrefixSuffix(s, affix string) bool {
	return len(s) >= 2*len(affix) && s[:len(affix)] == affix && s[len(s)-len(affix):] == affix
}
