// Generated-accessor recognition: recognizes conventional generated
// asset-accessor classes and builds the property-chain -> asset-path map.
package assets

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/hygiene/internal/model"
	"github.com/standardbeagle/hygiene/internal/parser"
)

var generatedPathHints = []string{
	"lib/gen/assets.gen.dart",
	"lib/generated/assets.dart",
	"lib/assets.gen.dart",
}

// IsGeneratedAssetFile reports whether path is recognized as a generated
// asset-accessor file: the *.gen.dart suffix, or one of a small fixed list
// of conventional relative paths.
func IsGeneratedAssetFile(relPath string) bool {
	if strings.HasSuffix(relPath, ".gen.dart") {
		return true
	}
	for _, hint := range generatedPathHints {
		if relPath == hint {
			return true
		}
	}
	return false
}

// ParseGeneratedFile walks a generated accessor file's AST, collecting
// static field / getter asset literals and const-constructor asset
// defaults, keyed by dotted class-hierarchy path.
func ParseGeneratedFile(result *parser.ParseResult) *model.GeneratedAssetMapping {
	mapping := model.NewGeneratedAssetMapping()
	ctx := parser.NewVisitContext()
	content := result.Content

	var visit func(node *tree_sitter.Node)
	visit = func(node *tree_sitter.Node) {
		if node == nil {
			return
		}
		switch node.Kind() {
		case parser.KindClassDefinition, parser.KindMixinDeclaration:
			name := classNameOf(node, content)
			if name == "" {
				parser.Walk(node, parser.Visitor{Pre: func(n *tree_sitter.Node) bool {
					if n != node {
						visit(n)
					}
					return false
				}})
				return
			}
			ctx.PushClass(name)
			forEachChild(node, visit)
			ctx.PopClass()
			return
		case parser.KindGetterSignature:
			if name, lit := getterLiteral(node, content); lit != "" && LooksLikeAssetPath(parser.StripQuotes(lit)) {
				mapping.AddChain(ctx.QualifiedName(name), parser.StripQuotes(lit))
			}
		case parser.KindDeclaration:
			for _, decl := range staticFieldLiterals(node, content) {
				if LooksLikeAssetPath(parser.StripQuotes(decl.literal)) {
					mapping.AddChain(ctx.QualifiedName(decl.name), parser.StripQuotes(decl.literal))
				}
			}
		case parser.KindConstructorSig, parser.KindFactoryConstructor:
			cls := ctx.CurrentClass()
			for _, lit := range constDefaultLiterals(node, content) {
				if LooksLikeAssetPath(parser.StripQuotes(lit)) {
					mapping.AddClassDefault(cls, parser.StripQuotes(lit))
				}
			}
		}
		forEachChild(node, visit)
	}

	visit(result.Tree.RootNode())
	return mapping
}

func forEachChild(node *tree_sitter.Node, visit func(*tree_sitter.Node)) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case parser.KindClassDefinition, parser.KindMixinDeclaration,
			parser.KindGetterSignature, parser.KindDeclaration,
			parser.KindConstructorSig, parser.KindFactoryConstructor:
			visit(child)
		default:
			forEachChild(child, visit)
		}
	}
}

func classNameOf(node *tree_sitter.Node, content []byte) string {
	id := parser.ChildByType(node, parser.KindIdentifier)
	if id == nil {
		id = parser.ChildByType(node, parser.KindTypeIdentifier)
	}
	return parser.NodeText(id, content)
}

// getterLiteral returns a getter's name and, if its body is a single string
// literal (expression-bodied `=>` or a single-statement `return`), that
// literal's raw text.
func getterLiteral(node *tree_sitter.Node, content []byte) (name, literal string) {
	id := parser.ChildByType(node, parser.KindIdentifier)
	name = parser.NodeText(id, content)
	var found *tree_sitter.Node
	findLiteral := parser.Visitor{Pre: func(n *tree_sitter.Node) bool {
		if n.Kind() == parser.KindStringLiteral && found == nil {
			found = n
		}
		return found == nil
	}}
	parser.Walk(node, findLiteral)
	// The body follows the signature (or its method_signature wrapper) as a sibling.
	sig := node
	if p := node.Parent(); p != nil && p.Kind() == parser.KindMethodSignature {
		sig = p
	}
	if body := sig.NextSibling(); found == nil && body != nil && body.Kind() == "function_body" {
		parser.Walk(body, findLiteral)
	}
	if found != nil {
		literal = parser.NodeText(found, content)
	}
	return name, literal
}

type fieldLiteral struct {
	name    string
	literal string
}

// staticFieldLiterals extracts `static const images = '...'`-style field
// declarations from a `declaration` node whose value is a single string
// literal.
func staticFieldLiterals(node *tree_sitter.Node, content []byte) []fieldLiteral {
	text := parser.NodeText(node, content)
	if !strings.Contains(text, "static") {
		return nil
	}
	var out []fieldLiteral
	list := parser.ChildByType(node, parser.KindStaticFinalDeclList)
	if list == nil {
		return nil
	}
	for _, decl := range parser.ChildrenByType(list, parser.KindStaticFinalDecl) {
		id := parser.ChildByType(decl, parser.KindIdentifier)
		name := parser.NodeText(id, content)
		var lit *tree_sitter.Node
		parser.Walk(decl, parser.Visitor{Pre: func(n *tree_sitter.Node) bool {
			if n.Kind() == parser.KindStringLiteral && lit == nil {
				lit = n
			}
			return lit == nil
		}})
		if name != "" && lit != nil {
			out = append(out, fieldLiteral{name: name, literal: parser.NodeText(lit, content)})
		}
	}
	return out
}

// constDefaultLiterals collects string-literal default values of a const
// constructor's formal parameters.
func constDefaultLiterals(node *tree_sitter.Node, content []byte) []string {
	text := parser.NodeText(node, content)
	if !strings.Contains(text, "const") {
		return nil
	}
	var out []string
	parser.Walk(node, parser.Visitor{Pre: func(n *tree_sitter.Node) bool {
		if n.Kind() == parser.KindDefaultFormalParam {
			var lit *tree_sitter.Node
			parser.Walk(n, parser.Visitor{Pre: func(inner *tree_sitter.Node) bool {
				if inner.Kind() == parser.KindStringLiteral && lit == nil {
					lit = inner
				}
				return lit == nil
			}})
			if lit != nil {
				out = append(out, parser.NodeText(lit, content))
			}
			return false
		}
		return true
	}})
	return out
}
