package parser

import tree_sitter "github.com/tree-sitter/go-tree-sitter"

// Visitor receives pre/post hooks per node during a depth-first walk.
//
// Pre returns false to skip the node's children (e.g. the code reference
// collector skipping an import directive so its prefix and shown names are
// not counted as uses).
type Visitor struct {
	Pre  func(node *tree_sitter.Node) bool
	Post func(node *tree_sitter.Node)
}

// Walk performs an explicit-stack-free recursive depth-first walk of the
// tree rooted at node. Walk itself keeps no traversal state; any state a
// visit needs lives in the caller's Pre/Post closures.
func Walk(node *tree_sitter.Node, v Visitor) {
	if node == nil {
		return
	}
	descend := true
	if v.Pre != nil {
		descend = v.Pre(node)
	}
	if descend {
		for i := uint(0); i < node.ChildCount(); i++ {
			Walk(node.Child(i), v)
		}
	}
	if v.Post != nil {
		v.Post(node)
	}
}
