package parser

import (
	"testing"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ReturnsWalkableTree(t *testing.T) {
	p := New()
	src := []byte("class Foo {\n  void bar() {}\n}\n")
	result, err := p.Parse(src)
	require.NoError(t, err)
	defer result.Close()

	var kinds []string
	Walk(result.Tree.RootNode(), Visitor{
		Pre: func(n *tree_sitter.Node) bool {
			kinds = append(kinds, n.Kind())
			return true
		},
	})
	assert.Contains(t, kinds, "class_definition")
}

func TestParser_ReusedAcrossParses(t *testing.T) {
	p := New()
	for i := 0; i < 3; i++ {
		result, err := p.Parse([]byte("int x = 1;\n"))
		require.NoError(t, err)
		assert.NotNil(t, result.Tree.RootNode())
		result.Close()
	}
}
