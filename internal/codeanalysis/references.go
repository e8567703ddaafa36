// Reference collection collects every identifier/type-name reference a
// file makes, for later use-site resolution against declared symbols.
package codeanalysis

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/hygiene/internal/model"
	"github.com/standardbeagle/hygiene/internal/parser"
)

// CollectReferences walks one file's AST, recording every bare identifier
// and type-name it mentions. Declaration sites themselves are excluded via
// isDeclarationSite, since a binding's own name is not a use of itself, and
// import/export directives are skipped so their own prefix and shown names
// do not count as uses.
func CollectReferences(result *parser.ParseResult) *model.ReferenceSet {
	set := model.NewReferenceSet()
	content := result.Content

	parser.Walk(result.Tree.RootNode(), parser.Visitor{Pre: func(n *tree_sitter.Node) bool {
		switch n.Kind() {
		case parser.KindImportSpec, parser.KindExportSpec:
			return false
		case parser.KindTypeIdentifier:
			set.AddType(parser.NodeText(n, content))
		case parser.KindIdentifier:
			if isDeclarationSite(n) {
				return true
			}
			set.AddIdentifier(parser.NodeText(n, content))
		}
		return true
	}})

	return set
}

// isDeclarationSite reports whether ident is the name slot of its parent
// declaration node, not a use of some other symbol. A name is only ever the
// first identifier child of these declaration shapes, except a constructor
// signature, which carries up to two name identifiers (the class prefix and,
// for a named constructor, the short name after the dot) that both need
// excluding or the class's own name leaks into the reference set as a
// spurious self-use.
func isDeclarationSite(ident *tree_sitter.Node) bool {
	parent := ident.Parent()
	if parent == nil {
		return false
	}
	switch parent.Kind() {
	case parser.KindClassDefinition, parser.KindMixinDeclaration, parser.KindExtensionDecl,
		parser.KindEnumDeclaration, parser.KindEnumConstant, parser.KindTypeAlias,
		parser.KindFunctionSignature, parser.KindMethodSignature, parser.KindGetterSignature,
		parser.KindSetterSignature, parser.KindFormalParameter, parser.KindDefaultFormalParam,
		parser.KindStaticFinalDecl, parser.KindInitializedIdentifier:
		first := parser.ChildByType(parent, parser.KindIdentifier)
		return first != nil && first.StartByte() == ident.StartByte()
	case parser.KindConstructorSig, parser.KindFactoryConstructor:
		for i := uint(0); i < parent.ChildCount(); i++ {
			child := parent.Child(i)
			if child != nil && child.Kind() == parser.KindIdentifier && child.StartByte() == ident.StartByte() {
				return true
			}
		}
	}
	return false
}
