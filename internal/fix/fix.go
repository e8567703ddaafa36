// Package fix implements a conservative rewrite engine: it deletes the
// text range of each auto-fixable CodeIssue from its source file, sorted
// start-descending and applied sequentially, with an atomic write or a
// dry-run mode that never touches disk.
package fix

import (
	"os"
	"path/filepath"
	"sort"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/hygiene/internal/errors"
	"github.com/standardbeagle/hygiene/internal/model"
	"github.com/standardbeagle/hygiene/internal/parser"
)

// Range is a half-open byte range [Start, End) to delete from one file.
type Range struct {
	Start, End uint
	ElementID  model.ElementID
}

// Plan is the set of deletions computed for one file.
type Plan struct {
	RelPath string
	Ranges  []Range
}

// ComputeRange widens node's byte span backward over immediately preceding
// leading comment/annotation siblings and forward over a directly following
// function body or terminating ";" sibling, then trailing whitespace plus
// one newline, so the deleted range spans from the first leading
// annotation/comment block to the final closing token.
func ComputeRange(node *tree_sitter.Node, content []byte) Range {
	decl := node
	start := node.StartByte()
	for {
		prev := node.PrevSibling()
		if prev == nil {
			break
		}
		switch prev.Kind() {
		case parser.KindAnnotation, parser.KindMarkerAnnotation, "comment", "documentation_comment":
			start = prev.StartByte()
			node = prev
		default:
			goto scanEnd
		}
	}
scanEnd:
	end := decl.EndByte()
	if next := decl.NextSibling(); next != nil && (next.Kind() == "function_body" || next.Kind() == ";") {
		end = next.EndByte()
	}
	for end < uint(len(content)) && (content[end] == ' ' || content[end] == '\t') {
		end++
	}
	if end < uint(len(content)) && content[end] == '\n' {
		end++
	}
	return Range{Start: start, End: end}
}

// BuildPlans groups ranges by file and sorts each file's ranges
// start-descending so sequential splicing never invalidates a later offset.
func BuildPlans(byFile map[string][]Range) []Plan {
	var plans []Plan
	for rel, ranges := range byFile {
		sorted := append([]Range(nil), ranges...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })
		plans = append(plans, Plan{RelPath: rel, Ranges: sorted})
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].RelPath < plans[j].RelPath })
	return plans
}

// Apply splices every range out of content, returning the resulting buffer.
// Ranges must already be sorted start-descending (BuildPlans does this).
func Apply(content []byte, ranges []Range) []byte {
	buf := append([]byte(nil), content...)
	for _, r := range ranges {
		if r.Start > uint(len(buf)) || r.End > uint(len(buf)) || r.Start > r.End {
			continue
		}
		buf = append(buf[:r.Start], buf[r.End:]...)
	}
	return buf
}

// Result reports what happened to one file.
type Result struct {
	RelPath     string
	RangesFixed int
	DryRun      bool
}

// Run applies every plan rooted at root. In dry-run mode no file is opened
// for writing; the caller still receives the full Result list so a reporter
// can show what would change.
func Run(root string, plans []Plan, dryRun bool) ([]Result, error) {
	var results []Result
	for _, plan := range plans {
		if len(plan.Ranges) == 0 {
			continue
		}
		full := filepath.Join(root, filepath.FromSlash(plan.RelPath))
		if dryRun {
			results = append(results, Result{RelPath: plan.RelPath, RangesFixed: len(plan.Ranges), DryRun: true})
			continue
		}

		content, err := os.ReadFile(full)
		if err != nil {
			return results, errors.NewFixError(plan.RelPath, err)
		}
		updated := Apply(content, plan.Ranges)
		if err := atomicWrite(full, updated); err != nil {
			return results, errors.NewFixError(plan.RelPath, err)
		}
		results = append(results, Result{RelPath: plan.RelPath, RangesFixed: len(plan.Ranges)})
	}
	return results, nil
}

// atomicWrite writes content to a temp file in the same directory as path
// then renames it into place, so a crash mid-write never leaves a
// truncated file behind.
func atomicWrite(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".hygiene-fix-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}
