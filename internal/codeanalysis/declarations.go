// Declaration collection collects every declarable symbol with its
// attributes: visibility, static-ness, annotations, parent.
package codeanalysis

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/hygiene/internal/model"
	"github.com/standardbeagle/hygiene/internal/parser"
)

// CollectDeclarations walks one file's AST and returns every CodeElement it
// declares, keyed by ElementID.
func CollectDeclarations(result *parser.ParseResult, pkg, file string) map[model.ElementID]model.CodeElement {
	out := make(map[model.ElementID]model.CodeElement)
	ctx := parser.NewVisitContext()
	content := result.Content

	add := func(name string, kind model.ElementKind, node *tree_sitter.Node, isStatic, isOverride bool, annotations []string) model.CodeElement {
		qualified := ctx.QualifiedName(name)
		el := model.CodeElement{
			ID:          model.NewElementID(pkg, file, qualified),
			Name:        name,
			Kind:        kind,
			Location:    parser.NodeLocation(node, pkg, file),
			Parent:      ctx.CurrentClass(),
			Annotations: annotations,
			Visibility:  model.VisibilityOf(name),
			IsStatic:    isStatic,
			IsOverride:  isOverride,
			Package:     pkg,
		}
		out[el.ID] = el
		return el
	}

	var visit func(node *tree_sitter.Node)
	visit = func(node *tree_sitter.Node) {
		if node == nil {
			return
		}
		switch node.Kind() {
		case parser.KindClassDefinition:
			name := identName(node, content)
			if name != "" {
				add(name, model.KindClass, node, false, false, annotationsOf(node, content))
			}
			ctx.PushClass(name)
			visitChildren(node, visit)
			ctx.PopClass()
			return

		case parser.KindMixinDeclaration:
			name := identName(node, content)
			if name != "" {
				add(name, model.KindMixin, node, false, false, annotationsOf(node, content))
			}
			ctx.PushClass(name)
			visitChildren(node, visit)
			ctx.PopClass()
			return

		case parser.KindExtensionDecl:
			name := identName(node, content)
			if name != "" {
				add(name, model.KindExtension, node, false, false, annotationsOf(node, content))
			}
			ctx.PushClass(name)
			visitChildren(node, visit)
			ctx.PopClass()
			return

		case parser.KindEnumDeclaration:
			name := identName(node, content)
			if name != "" {
				add(name, model.KindEnum, node, false, false, annotationsOf(node, content))
			}
			ctx.PushClass(name)
			for _, c := range parser.ChildrenByType(node, parser.KindEnumConstant) {
				cname := identName(c, content)
				if cname != "" {
					add(cname, model.KindEnumValue, c, false, false, nil)
				}
			}
			visitChildren(node, visit)
			ctx.PopClass()
			return

		case parser.KindTypeAlias:
			name := identName(node, content)
			if name != "" {
				add(name, model.KindTypedef, node, false, false, annotationsOf(node, content))
			}

		case parser.KindFunctionSignature:
			name := identName(node, content)
			if name == "" {
				break
			}
			annotations := annotationsOf(node, content)
			kind := model.KindFunction
			if ctx.CurrentClass() != "" {
				kind = model.KindMethod
			}
			el := add(name, kind, node, hasModifier(node, content, "static"), hasAnnotation(annotations, "override"), annotations)
			collectParameters(node, content, ctx, pkg, file, el, out)

		case parser.KindMethodSignature:
			name := identName(node, content)
			if name == "" {
				break
			}
			annotations := annotationsOf(node, content)
			el := add(name, model.KindMethod, node, hasModifier(node, content, "static"), hasAnnotation(annotations, "override"), annotations)
			collectParameters(node, content, ctx, pkg, file, el, out)

		case parser.KindGetterSignature:
			name := identName(node, content)
			if name == "" {
				break
			}
			annotations := annotationsOf(node, content)
			add(name, model.KindGetter, node, hasModifier(node, content, "static"), hasAnnotation(annotations, "override"), annotations)

		case parser.KindSetterSignature:
			name := identName(node, content)
			if name == "" {
				break
			}
			annotations := annotationsOf(node, content)
			el := add(name, model.KindSetter, node, hasModifier(node, content, "static"), hasAnnotation(annotations, "override"), annotations)
			collectParameters(node, content, ctx, pkg, file, el, out)

		case parser.KindConstructorSig, parser.KindFactoryConstructor:
			name := constructorName(node, content, ctx.CurrentClass())
			annotations := annotationsOf(node, content)
			el := add(name, model.KindConstructor, node, false, false, annotations)
			collectParameters(node, content, ctx, pkg, file, el, out)

		case parser.KindDeclaration:
			for _, fieldName := range fieldNames(node, content) {
				add(fieldName, model.KindField, node, hasModifier(node, content, "static"), false, annotationsOf(node, content))
			}
		}

		visitChildren(node, visit)
	}

	visit(result.Tree.RootNode())
	return out
}

// DeclarationNodeAt re-walks result looking for the declaration node whose
// start position matches line/column exactly (1-based, as produced by
// parser.NodeLocation). Used by the fixer to recover an AST node for an
// issue after the original CollectDeclarations pass has already discarded
// it and closed its tree.
func DeclarationNodeAt(result *parser.ParseResult, line, column int) *tree_sitter.Node {
	var found *tree_sitter.Node
	var visit func(node *tree_sitter.Node)
	visit = func(node *tree_sitter.Node) {
		if node == nil || found != nil {
			return
		}
		if isDeclarationKind(node.Kind()) {
			pos := node.StartPosition()
			if int(pos.Row)+1 == line && int(pos.Column)+1 == column {
				found = node
				return
			}
		}
		visitChildren(node, visit)
	}
	visit(result.Tree.RootNode())
	return found
}

func isDeclarationKind(kind string) bool {
	switch kind {
	case parser.KindClassDefinition, parser.KindMixinDeclaration, parser.KindExtensionDecl,
		parser.KindEnumDeclaration, parser.KindEnumConstant, parser.KindTypeAlias,
		parser.KindFunctionSignature, parser.KindMethodSignature, parser.KindGetterSignature,
		parser.KindSetterSignature, parser.KindConstructorSig, parser.KindFactoryConstructor,
		parser.KindDeclaration, parser.KindFormalParameter, parser.KindDefaultFormalParam:
		return true
	}
	return false
}

func visitChildren(node *tree_sitter.Node, visit func(*tree_sitter.Node)) {
	for i := uint(0); i < node.ChildCount(); i++ {
		visit(node.Child(i))
	}
}

func identName(node *tree_sitter.Node, content []byte) string {
	if id := parser.ChildByType(node, parser.KindIdentifier); id != nil {
		return parser.NodeText(id, content)
	}
	if id := parser.ChildByType(node, parser.KindTypeIdentifier); id != nil {
		return parser.NodeText(id, content)
	}
	return ""
}

// constructorName returns "Class" for the default/unnamed constructor or
// "Class.name" for a named constructor, matching the class-prefixed
// identity convention Dart itself uses. A constructor signature carries the
// class-prefix identifier and, for a named constructor, a second identifier
// after the dot — identName alone only ever sees the first of those, so the
// short name is read from the second direct identifier child instead.
func constructorName(node *tree_sitter.Node, content []byte, class string) string {
	ids := directIdentifierChildren(node, content)
	if len(ids) >= 2 {
		return class + "." + ids[1]
	}
	return class
}

// directIdentifierChildren returns the text of every direct identifier-kind
// child of node, in source order.
func directIdentifierChildren(node *tree_sitter.Node, content []byte) []string {
	var names []string
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == parser.KindIdentifier {
			names = append(names, parser.NodeText(child, content))
		}
	}
	return names
}

func fieldNames(node *tree_sitter.Node, content []byte) []string {
	var names []string
	if list := parser.ChildByType(node, parser.KindStaticFinalDeclList); list != nil {
		for _, decl := range parser.ChildrenByType(list, parser.KindStaticFinalDecl) {
			if id := parser.ChildByType(decl, parser.KindIdentifier); id != nil {
				names = append(names, parser.NodeText(id, content))
			}
		}
	}
	if list := parser.ChildByType(node, parser.KindInitializedIdentifierList); list != nil {
		for _, decl := range parser.ChildrenByType(list, parser.KindInitializedIdentifier) {
			if id := parser.ChildByType(decl, parser.KindIdentifier); id != nil {
				names = append(names, parser.NodeText(id, content))
			}
		}
	}
	return names
}

func annotationsOf(node *tree_sitter.Node, content []byte) []string {
	var names []string
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.Kind() == parser.KindAnnotation || child.Kind() == parser.KindMarkerAnnotation {
			if id := parser.ChildByType(child, parser.KindIdentifier); id != nil {
				names = append(names, parser.NodeText(id, content))
			}
		}
	}
	// Leading annotations are preceding siblings of the declaration, or of
	// its method_signature wrapper for class members.
	target := node
	if p := node.Parent(); p != nil && p.Kind() == parser.KindMethodSignature {
		target = p
	}
	for prev := target.PrevSibling(); prev != nil && (prev.Kind() == parser.KindAnnotation || prev.Kind() == parser.KindMarkerAnnotation); prev = prev.PrevSibling() {
		if id := parser.ChildByType(prev, parser.KindIdentifier); id != nil {
			names = append(names, parser.NodeText(id, content))
		}
	}
	return names
}

func hasAnnotation(annotations []string, name string) bool {
	for _, a := range annotations {
		if a == name {
			return true
		}
	}
	return false
}

func hasModifier(node *tree_sitter.Node, content []byte, modifier string) bool {
	text := parser.NodeText(node, content)
	idx := strings.Index(text, modifier)
	return idx >= 0 && (idx == 0 || text[idx-1] == ' ' || text[idx-1] == '\n')
}

// collectParameters adds one CodeElement per formal parameter of a
// function/method/constructor signature.
func collectParameters(node *tree_sitter.Node, content []byte, ctx *parser.VisitContext, pkg, file string, owner model.CodeElement, out map[model.ElementID]model.CodeElement) {
	var walk func(n *tree_sitter.Node)
	walk = func(n *tree_sitter.Node) {
		if n == nil {
			return
		}
		if n.Kind() == parser.KindFormalParameter || n.Kind() == parser.KindDefaultFormalParam {
			id := parser.ChildByType(n, parser.KindIdentifier)
			if id == nil {
				visitChildren(n, walk)
				return
			}
			name := parser.NodeText(id, content)
			qualified := owner.Name + "(" + name + ")"
			el := model.CodeElement{
				ID:         model.NewElementID(pkg, file, ctx.QualifiedName(qualified)),
				Name:       name,
				Kind:       model.KindParameter,
				Location:   parser.NodeLocation(n, pkg, file),
				Parent:     owner.Name,
				Visibility: model.VisibilityOf(name),
				Package:    pkg,
				IsOverride: owner.IsOverride,
			}
			out[el.ID] = el
			return
		}
		visitChildren(n, walk)
	}
	walk(node)
}
