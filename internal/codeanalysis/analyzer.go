// Package codeanalysis implements the unused-code analyzer: declaration
// collection, reference collection, import-directive collection, and the
// two-pass orchestration that turns them into CodeIssues.
package codeanalysis

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/hygiene/internal/config"
	"github.com/standardbeagle/hygiene/internal/errors"
	"github.com/standardbeagle/hygiene/internal/model"
	"github.com/standardbeagle/hygiene/internal/parser"
	"github.com/standardbeagle/hygiene/internal/walker"
	"github.com/standardbeagle/hygiene/internal/workspace"
)

// Options configures one unused-code analysis run.
type Options struct {
	Include       []string
	Exclude       []string
	ScanWorkspace bool
}

// Report is the complete result of one unused-code analysis run.
type Report struct {
	Issues       []model.CodeIssue
	Warnings     []errors.Warning
	FilesScanned int
}

type fileUnit struct {
	pkg, file string
	elements  map[model.ElementID]model.CodeElement
	refs      *model.ReferenceSet
	imports   []model.ImportDirective
}

// Analyze runs the declaration/reference/import passes over every file in
// the workspace rooted at path, then resolves usage and emits CodeIssues
// per cfg's rules.
func Analyze(ctx context.Context, path string, cfg *config.Config, opts Options) (*Report, error) {
	ws, wsWarnings, err := workspace.Resolve(path, opts.ScanWorkspace)
	if err != nil {
		return nil, err
	}

	report := &Report{Warnings: append([]errors.Warning(nil), wsWarnings...)}

	w := walker.New(walker.Options{
		Include:          opts.Include,
		Exclude:          opts.Exclude,
		IncludeTests:     false,
		IncludeGenerated: false,
	})
	p := parser.New()

	var units []fileUnit
	for _, m := range ws.Members {
		if monorepoExcludes(cfg, m.Name) {
			continue
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		files, err := w.Walk(m.Root)
		if err != nil {
			report.Warnings = append(report.Warnings, errors.Warning{Kind: errors.KindEnvironment, File: m.Root, Message: err.Error()})
			continue
		}
		pkgUnits, warnings := scanPackageFiles(ctx, p, m.Name, m.Root, files)
		units = append(units, pkgUnits...)
		report.Warnings = append(report.Warnings, warnings...)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	allElements := make(map[model.ElementID]model.CodeElement)
	globalRefs := model.NewReferenceSet()
	for _, u := range units {
		for id, el := range u.elements {
			allElements[id] = el
		}
		globalRefs.Merge(u.refs)
	}

	issues := evaluateElements(cfg, allElements, globalRefs)
	issues = append(issues, evaluateImports(cfg, units)...)

	sort.Slice(issues, func(i, j int) bool { return issues[i].Less(issues[j]) })
	report.Issues = issues
	report.FilesScanned = len(units)
	return report, nil
}

func monorepoExcludes(cfg *config.Config, pkgName string) bool {
	if cfg == nil || !cfg.Monorepo.Enabled {
		return false
	}
	for _, ex := range cfg.Monorepo.ExcludePackages {
		if ex == pkgName {
			return true
		}
	}
	return false
}

// scanPackageFiles runs the declaration/reference/import passes for one
// package's files using a bounded worker pool.
func scanPackageFiles(ctx context.Context, p *parser.Parser, pkgName, root string, files []string) ([]fileUnit, []errors.Warning) {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}

	type result struct {
		unit    fileUnit
		warning *errors.Warning
	}

	jobs := make(chan string)
	results := make(chan result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rel := range jobs {
				if ctx.Err() != nil {
					return
				}
				full := filepath.Join(root, filepath.FromSlash(rel))
				content, err := os.ReadFile(full)
				if err != nil {
					results <- result{warning: &errors.Warning{Kind: errors.KindEnvironment, File: rel, Message: err.Error()}}
					continue
				}
				parsed, err := p.Parse(content)
				if err != nil {
					results <- result{warning: &errors.Warning{Kind: errors.KindParse, File: rel, Message: err.Error()}}
					continue
				}

				elements := CollectDeclarations(parsed, pkgName, rel)
				refs := CollectReferences(parsed)
				imports := CollectImports(parsed, pkgName, rel, refs)
				parsed.Close()

				results <- result{unit: fileUnit{pkg: pkgName, file: rel, elements: elements, refs: refs, imports: imports}}
			}
		}()
	}

	go func() {
		for _, rel := range files {
			jobs <- rel
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var units []fileUnit
	var warnings []errors.Warning
	for r := range results {
		if r.warning != nil {
			warnings = append(warnings, *r.warning)
			continue
		}
		units = append(units, r.unit)
	}
	return units, warnings
}

// evaluateElements applies the configured exclusion rules and returns one
// CodeIssue per surviving unreferenced symbol.
func evaluateElements(cfg *config.Config, elements map[model.ElementID]model.CodeElement, refs *model.ReferenceSet) []model.CodeIssue {
	unusedParents := make(map[string]bool) // qualified class name -> reported unused

	// First pass: determine class/mixin/enum/extension/typedef usage so
	// member-level suppression (unused-parent-class) can consult it.
	for _, el := range elements {
		if !isTypeLevel(el.Kind) {
			continue
		}
		if !isReferenced(el, refs) {
			unusedParents[el.Name] = true
		}
	}

	var issues []model.CodeIssue
	for _, el := range elements {
		if el.Kind == model.KindEnumValue {
			// Granularity exception: individual enum constants are never
			// reported; only the enum type itself is.
			continue
		}
		rule, category := ruleFor(cfg, el.Kind)
		if !rule.Enabled {
			continue
		}
		if excluded(cfg, rule, el, unusedParents) {
			continue
		}
		if isReferenced(el, refs) {
			continue
		}
		issues = append(issues, newIssue(category, rule, el))
	}
	return issues
}

func isTypeLevel(k model.ElementKind) bool {
	switch k {
	case model.KindClass, model.KindMixin, model.KindExtension, model.KindEnum, model.KindTypedef:
		return true
	}
	return false
}

func ruleFor(cfg *config.Config, kind model.ElementKind) (config.Rule, string) {
	switch kind {
	case model.KindClass, model.KindMixin, model.KindExtension, model.KindEnum, model.KindTypedef:
		return cfg.Rules.UnusedClasses, "unused-class"
	case model.KindFunction, model.KindMethod, model.KindGetter, model.KindSetter, model.KindConstructor:
		return cfg.Rules.UnusedFunctions, "unused-function"
	case model.KindParameter:
		return cfg.Rules.UnusedParameters, "unused-parameter"
	default:
		return cfg.Rules.UnusedMembers, "unused-member"
	}
}

func excluded(cfg *config.Config, rule config.Rule, el model.CodeElement, unusedParents map[string]bool) bool {
	if el.Name == "main" {
		return true
	}
	if rule.ExcludeOverrides && el.IsOverride {
		return true
	}
	if rule.ExcludePublic && el.Visibility == model.Public {
		return true
	}
	if rule.ExcludePrivate && el.Visibility == model.Private {
		return true
	}
	if rule.ExcludeStatic && el.IsStatic {
		return true
	}
	for _, ann := range rule.ExcludeAnnotations {
		if el.HasAnnotation(ann) {
			return true
		}
	}
	for _, pattern := range rule.ExcludePatterns {
		if ok, _ := doublestar.Match(pattern, el.Name); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, el.Location.File); ok {
			return true
		}
	}
	// Unused-parent-class suppression: a member whose enclosing class is
	// itself unused is not separately reported; the class-level issue
	// already covers it.
	if el.Parent != "" && unusedParents[el.Parent] {
		return true
	}
	if cfg.PublicAPI.ConsiderExportsAsUsed && el.Parent == "" && el.Visibility == model.Public {
		return true
	}
	for _, entry := range cfg.PublicAPI.EntryPoints {
		if ok, _ := doublestar.Match(entry, el.Location.File); ok {
			return true
		}
	}
	return false
}

// isReferenced reports whether any part of the scanned code mentions el's
// name. Type-level symbols check both the type-name and identifier
// reference sets (a class can be used as a value, not just a type
// annotation); everything else checks identifiers only.
func isReferenced(el model.CodeElement, refs *model.ReferenceSet) bool {
	if isTypeLevel(el.Kind) {
		if _, ok := refs.Types[el.Name]; ok {
			return true
		}
	}
	_, ok := refs.Identifiers[el.Name]
	return ok
}

func newIssue(category string, rule config.Rule, el model.CodeElement) model.CodeIssue {
	severity := model.SeverityWarning
	if category == "unused-import" {
		severity = model.SeverityInfo
	}
	return model.CodeIssue{
		Category:    category,
		Severity:    severity,
		Symbol:      el.Name,
		Location:    el.Location,
		Message:     el.Kind.String() + " '" + el.Name + "' is never used",
		Suggestion:  "remove the unused " + el.Kind.String(),
		AutoFixable: true,
		ElementID:   el.ID,
	}
}

// evaluateImports applies the unused-imports rule: an import is reportable
// only when its usage could be conclusively determined false.
func evaluateImports(cfg *config.Config, units []fileUnit) []model.CodeIssue {
	rule := cfg.Rules.UnusedImports
	if !rule.Enabled {
		return nil
	}
	var issues []model.CodeIssue
	for _, u := range units {
		for _, imp := range u.imports {
			if imp.IsExport || imp.Used || imp.UsedUnknown {
				continue
			}
			if matchesAny(rule.ExcludePatterns, imp.URI) {
				continue
			}
			issues = append(issues, model.CodeIssue{
				Category:   "unused-import",
				Severity:   model.SeverityInfo,
				Symbol:     imp.URI,
				Location:   imp.Location,
				Message:    "import '" + imp.URI + "' is never used",
				Suggestion: "remove the unused import (deferred to an external formatter)",
				// Always false: safe removal needs re-resolving
				// transitively re-exported names.
				AutoFixable: false,
			})
		}
	}
	return issues
}

func matchesAny(patterns []string, candidate string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, candidate); ok {
			return true
		}
	}
	return false
}
