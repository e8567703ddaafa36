// Package walker enumerates Dart source files under a set of roots,
// honoring include/exclude globs and the test/generated-file filters.
package walker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Options controls what the walker includes.
type Options struct {
	Include         []string
	Exclude         []string
	IncludeTests    bool
	IncludeGenerated bool
}

var defaultExcludes = []string{
	"**/.dart_tool/**",
	"**/build/**",
	"**/.git/**",
}

var generatedSuffixes = []string{".g.dart", ".freezed.dart", ".gen.dart"}

// IsGenerated reports whether path has one of the conventional generated-file
// suffixes.
func IsGenerated(path string) bool {
	for _, suf := range generatedSuffixes {
		if strings.HasSuffix(path, suf) {
			return true
		}
	}
	return false
}

// IsTest reports whether path lives under a test directory or carries the
// _test.dart suffix.
func IsTest(path string) bool {
	if strings.HasSuffix(path, "_test.dart") {
		return true
	}
	clean := filepath.ToSlash(path)
	return strings.Contains(clean, "/test/") || strings.HasPrefix(clean, "test/")
}

// Walker enumerates .dart files under a root, applying Options.
type Walker struct {
	opts       Options
	exclusions []string
	inclusions []string
}

func New(opts Options) *Walker {
	exclusions := append([]string(nil), defaultExcludes...)
	exclusions = append(exclusions, opts.Exclude...)
	return &Walker{
		opts:       opts,
		exclusions: exclusions,
		inclusions: append([]string(nil), opts.Include...),
	}
}

// Walk enumerates every .dart file under root (a package root), returning
// paths relative to root with forward slashes.
func (w *Walker) Walk(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".dart") {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if w.shouldExclude(rel) {
			return nil
		}
		if !w.shouldInclude(rel) {
			return nil
		}
		if !w.opts.IncludeGenerated && IsGenerated(rel) {
			return nil
		}
		if !w.opts.IncludeTests && IsTest(rel) {
			return nil
		}

		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

func (w *Walker) shouldExclude(path string) bool {
	for _, pattern := range w.exclusions {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Walker) shouldInclude(path string) bool {
	if len(w.inclusions) == 0 {
		return true
	}
	for _, pattern := range w.inclusions {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}

// ExpandGlob expands a glob pattern (manifest asset entries, workspace member
// globs) relative to root into matching files.
func ExpandGlob(root, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
