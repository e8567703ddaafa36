// Package parser wraps the tree-sitter Dart grammar behind a small pool so
// each worker goroutine in the bounded-parallelism scan model gets its own
// *tree_sitter.Parser — tree-sitter parsers are not safe for concurrent use.
package parser

import (
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_dart "github.com/tree-sitter-grammars/tree-sitter-dart/bindings/go"
)

var dartLanguage = sync.OnceValue(func() *tree_sitter.Language {
	return tree_sitter.NewLanguage(tree_sitter_dart.Language())
})

// Parser produces an AST for one Dart source file.
type Parser struct {
	pool sync.Pool
}

// New creates a Parser whose pool lazily creates tree-sitter parsers bound
// to the Dart grammar, one per concurrent caller.
func New() *Parser {
	lang := dartLanguage()
	return &Parser{
		pool: sync.Pool{
			New: func() interface{} {
				p := tree_sitter.NewParser()
				_ = p.SetLanguage(lang)
				return p
			},
		},
	}
}

// ParseResult holds a parsed tree plus the source bytes the tree's byte
// offsets are relative to (needed by every visitor to recover node text).
type ParseResult struct {
	Tree    *tree_sitter.Tree
	Content []byte
}

// Close releases the tree. Call once the result's visitors are done.
func (r *ParseResult) Close() {
	if r.Tree != nil {
		r.Tree.Close()
	}
}

// Parse parses content and returns the resulting tree. The caller must call
// Close on the result when done with it.
func (p *Parser) Parse(content []byte) (*ParseResult, error) {
	ts := p.pool.Get().(*tree_sitter.Parser)
	defer p.pool.Put(ts)

	tree := ts.Parse(content, nil)
	if tree == nil {
		return nil, errNilTree
	}
	return &ParseResult{Tree: tree, Content: content}, nil
}

var errNilTree = parseError("tree-sitter returned a nil tree")

type parseError string

func (e parseError) Error() string { return string(e) }
