// Import/export directive collection parses import/export directives with
// prefix/shown/hidden names and classifies their URI, then observes
// whether each is actually used by the file's reference set.
package codeanalysis

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/hygiene/internal/model"
	"github.com/standardbeagle/hygiene/internal/parser"
)

// CollectImports walks result's AST and returns one ImportDirective per
// import/export statement, with Used/UsedUnknown set against refs.
func CollectImports(result *parser.ParseResult, pkg, file string, refs *model.ReferenceSet) []model.ImportDirective {
	content := result.Content
	var out []model.ImportDirective

	root := result.Tree.RootNode()
	for i := uint(0); i < root.ChildCount(); i++ {
		n := root.Child(i)
		if n == nil {
			continue
		}
		switch n.Kind() {
		case parser.KindImportSpec:
			out = append(out, parseDirective(n, content, pkg, file, false, refs))
		case parser.KindExportSpec:
			out = append(out, parseDirective(n, content, pkg, file, true, refs))
		}
	}
	return out
}

func parseDirective(n *tree_sitter.Node, content []byte, pkg, file string, isExport bool, refs *model.ReferenceSet) model.ImportDirective {
	dir := *model.NewImportDirective()
	dir.URI = directiveURI(n, content)
	dir.IsExport = isExport
	dir.Location = parser.NodeLocation(n, pkg, file)
	dir.Class = model.ClassifyURI(dir.URI)
	dir.OwningPkg = model.PackageOf(dir.URI)
	dir.Prefix = asClause(n, content)

	shown, hidden := combinatorLists(n, content)
	for _, name := range shown {
		dir.Shown[name] = struct{}{}
	}
	for _, name := range hidden {
		dir.Hidden[name] = struct{}{}
	}

	if isExport {
		// Export directives re-export symbols; usage is judged by the
		// exported names being referenced elsewhere, which the code
		// analyzer resolves at the package level, not per-file.
		dir.UsedUnknown = true
		return dir
	}

	if dir.Prefix != "" {
		_, dir.Used = refs.Identifiers[dir.Prefix]
		return dir
	}
	if len(dir.Shown) > 0 {
		for name := range dir.Shown {
			_, inType := refs.Types[name]
			_, inIdent := refs.Identifiers[name]
			if inType || inIdent {
				dir.Used = true
				break
			}
		}
		return dir
	}

	// Unprefixed, unfiltered import: whether it's used can't be determined
	// from this file's reference set alone without resolving the target
	// library's exported symbol names, so the code analyzer treats it as
	// used and never reports it.
	dir.UsedUnknown = true
	return dir
}

// directiveURI returns the directive's first string literal, which sits
// inside its uri/configurable_uri child rather than directly under n.
func directiveURI(n *tree_sitter.Node, content []byte) string {
	var lit *tree_sitter.Node
	parser.Walk(n, parser.Visitor{Pre: func(c *tree_sitter.Node) bool {
		if c.Kind() == parser.KindStringLiteral && lit == nil {
			lit = c
		}
		return lit == nil
	}})
	if lit != nil {
		return parser.StripQuotes(parser.NodeText(lit, content))
	}
	return ""
}

// asClause returns the prefix name of `import 'x' as foo;`, if present.
func asClause(n *tree_sitter.Node, content []byte) string {
	text := parser.NodeText(n, content)
	idx := strings.Index(text, " as ")
	if idx < 0 {
		return ""
	}
	rest := strings.TrimSpace(text[idx+len(" as "):])
	if stop := strings.IndexAny(rest, " ;\n"); stop >= 0 {
		rest = rest[:stop]
	}
	return strings.TrimSpace(strings.TrimSuffix(rest, ";"))
}

// combinatorLists extracts `show a, b` and `hide c, d` name lists.
func combinatorLists(n *tree_sitter.Node, content []byte) (shown, hidden []string) {
	text := parser.NodeText(n, content)
	shown = extractCombinator(text, "show")
	hidden = extractCombinator(text, "hide")
	return
}

func extractCombinator(text, keyword string) []string {
	idx := strings.Index(text, " "+keyword+" ")
	if idx < 0 {
		return nil
	}
	rest := text[idx+len(keyword)+2:]
	if stop := strings.Index(rest, ";"); stop >= 0 {
		rest = rest[:stop]
	}
	if keyword == "show" {
		if stop := strings.Index(rest, " hide "); stop >= 0 {
			rest = rest[:stop]
		}
	} else {
		if stop := strings.Index(rest, " show "); stop >= 0 {
			rest = rest[:stop]
		}
	}
	var names []string
	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}
