// Package assets implements the asset analyzer pipeline: resolve the
// workspace, read each package's manifest, walk and parse its Dart sources,
// collect generated-accessor mappings and asset references, then match
// declared assets against what was found.
package assets

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/standardbeagle/hygiene/internal/errors"
	"github.com/standardbeagle/hygiene/internal/manifest"
	"github.com/standardbeagle/hygiene/internal/model"
	"github.com/standardbeagle/hygiene/internal/parser"
	"github.com/standardbeagle/hygiene/internal/walker"
	"github.com/standardbeagle/hygiene/internal/workspace"
)

// Options configures one assets analysis run.
type Options struct {
	IncludeTests     bool
	IncludeGenerated bool
	Include          []string
	Exclude          []string
	ScanWorkspace    bool
	ShowUsed         bool
	ShowPotential    bool
}

// Report is the complete result of one assets analysis run.
type Report struct {
	Results  []model.AssetResult
	Warnings []errors.Warning
}

func (r *Report) Unused() []model.AssetResult    { return filterBy(r.Results, model.Unused) }
func (r *Report) Used() []model.AssetResult      { return filterBy(r.Results, model.Used) }
func (r *Report) Potential() []model.AssetResult { return filterBy(r.Results, model.Potential) }

func filterBy(results []model.AssetResult, c model.Classification) []model.AssetResult {
	var out []model.AssetResult
	for _, r := range results {
		if r.Classification == c {
			out = append(out, r)
		}
	}
	return out
}

// Analyze runs the complete asset pipeline for the workspace rooted at path.
func Analyze(ctx context.Context, path string, opts Options) (*Report, error) {
	ws, wsWarnings, err := workspace.Resolve(path, opts.ScanWorkspace)
	if err != nil {
		return nil, err
	}

	report := &Report{Warnings: append([]errors.Warning(nil), wsWarnings...)}

	var allAssets []model.DeclaredAsset
	for _, m := range ws.Members {
		declared, warnings, err := manifest.Read(m.Name, m.Root)
		if err != nil {
			return nil, err
		}
		allAssets = append(allAssets, declared...)
		report.Warnings = append(report.Warnings, warnings...)
	}

	mapping := model.NewGeneratedAssetMapping()
	var allRefs []model.AssetReference

	w := walker.New(walker.Options{
		Include:          opts.Include,
		Exclude:          opts.Exclude,
		IncludeTests:     opts.IncludeTests,
		IncludeGenerated: true, // generated files are always walked so accessor files can be parsed; opts.IncludeGenerated gates reference scanning of other generated files below
	})

	p := parser.New()

	scanRoots := ws.Members
	if ws.Root != "" && !containsRoot(scanRoots, ws.Root) {
		scanRoots = append(scanRoots, workspace.Member{Name: "", Root: ws.Root})
	}

	for _, m := range scanRoots {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		files, err := w.Walk(m.Root)
		if err != nil {
			report.Warnings = append(report.Warnings, errors.Warning{
				Kind: errors.KindEnvironment, File: m.Root, Message: err.Error(),
			})
			continue
		}

		genMapping, refs, warnings := scanPackage(ctx, p, m, files, opts)
		mapping.Merge(genMapping)
		allRefs = append(allRefs, refs...)
		report.Warnings = append(report.Warnings, warnings...)
	}

	refSet := Index(allRefs)
	for _, asset := range allAssets {
		result := Match(asset, refSet, mapping)
		report.Results = append(report.Results, result)
	}

	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].Asset.Path < report.Results[j].Asset.Path
	})

	return report, nil
}

func containsRoot(members []workspace.Member, root string) bool {
	for _, m := range members {
		if m.Root == root {
			return true
		}
	}
	return false
}

// scanPackage parses and visits one package's files using a bounded worker
// pool: file read + parse + visit is embarrassingly parallel, and results
// merge under a single reducer.
func scanPackage(ctx context.Context, p *parser.Parser, m workspace.Member, files []string, opts Options) (*model.GeneratedAssetMapping, []model.AssetReference, []errors.Warning) {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}

	type fileResult struct {
		mapping *model.GeneratedAssetMapping
		refs    []model.AssetReference
		warning *errors.Warning
	}

	jobs := make(chan string)
	results := make(chan fileResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rel := range jobs {
				if ctx.Err() != nil {
					return
				}
				full := filepath.Join(m.Root, filepath.FromSlash(rel))
				content, err := os.ReadFile(full)
				if err != nil {
					results <- fileResult{warning: &errors.Warning{Kind: errors.KindEnvironment, File: rel, Message: err.Error()}}
					continue
				}
				parsed, err := p.Parse(content)
				if err != nil {
					results <- fileResult{warning: &errors.Warning{Kind: errors.KindParse, File: rel, Message: err.Error()}}
					continue
				}

				var fr fileResult
				if IsGeneratedAssetFile(rel) {
					fr.mapping = ParseGeneratedFile(parsed)
				} else if opts.IncludeGenerated || !walker.IsGenerated(rel) {
					fr.refs = CollectReferences(parsed, m.Name, rel)
				}
				parsed.Close()
				results <- fr
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

	mapping := model.NewGeneratedAssetMapping()
	var refs []model.AssetReference
	var warnings []errors.Warning
	for r := range results {
		if r.warning != nil {
			warnings = append(warnings, *r.warning)
			continue
		}
		mapping.Merge(r.mapping)
		refs = append(refs, r.refs...)
	}

	return mapping, refs, warnings
}
