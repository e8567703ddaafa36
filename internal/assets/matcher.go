// Asset matching classifies declared assets as used / unused / potential
// against a collected reference set, with a deterministic fuzzy-match
// precedence ladder for tie-breaking.
package assets

import (
	"path"
	"sort"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/hbollon/go-edlib"

	"github.com/standardbeagle/hygiene/internal/model"
)

// ReferenceSet is a package/workspace-scoped collection of AssetReferences,
// indexed for O(1)-ish lookups during matching.
type ReferenceSet struct {
	Literals      map[string][]model.AssetReference // by exact text
	Filenames     map[string][]model.AssetReference // by filename portion
	PropertyChains map[string][]model.AssetReference
	Families      map[string]bool
	DynamicDirs   map[string]bool
}

func NewReferenceSet() *ReferenceSet {
	return &ReferenceSet{
		Literals:       make(map[string][]model.AssetReference),
		Filenames:      make(map[string][]model.AssetReference),
		PropertyChains: make(map[string][]model.AssetReference),
		Families:       make(map[string]bool),
		DynamicDirs:    make(map[string]bool),
	}
}

// Index folds a flat list of AssetReference into the lookup-friendly shape
// Match consumes.
func Index(refs []model.AssetReference) *ReferenceSet {
	set := NewReferenceSet()
	for _, r := range refs {
		switch r.Tag {
		case model.TagLiteral:
			set.Literals[r.Text] = append(set.Literals[r.Text], r)
			set.Filenames[path.Base(r.Text)] = append(set.Filenames[path.Base(r.Text)], r)
		case model.TagPropertyChain:
			set.PropertyChains[r.Text] = append(set.PropertyChains[r.Text], r)
		case model.TagFontFamily:
			set.Families[r.Text] = true
		case model.TagDynamicHint:
			set.DynamicDirs[strings.TrimSuffix(r.Text, "/")] = true
		}
	}
	return set
}

var sugarSuffixes = []string{".path", ".keyName", ".provider", ".image", ".svg"}

// Match classifies one declared asset against refs and mapping.
func Match(asset model.DeclaredAsset, refs *ReferenceSet, mapping *model.GeneratedAssetMapping) model.AssetResult {
	if hits, ok := refs.Literals[asset.Path]; ok && len(hits) > 0 {
		return used(asset, hits[0])
	}
	for lit, hits := range refs.Literals {
		if strings.HasSuffix(lit, "/"+asset.Path) {
			return used(asset, hits[0])
		}
	}
	if hits, ok := refs.Filenames[path.Base(asset.Path)]; ok && len(hits) > 0 {
		return used(asset, hits[0])
	}

	if mapping != nil {
		if chainRef, ok := matchPropertyChains(asset, refs, mapping); ok {
			return used(asset, chainRef)
		}
	}

	if asset.IsFont && asset.Family != "" && refs.Families[asset.Family] {
		return model.AssetResult{Asset: asset, Classification: model.Used}
	}

	if dir := path.Dir(asset.Path); dir != "." && refs.DynamicDirs[dir] {
		return model.AssetResult{Asset: asset, Classification: model.Potential}
	}

	return model.AssetResult{Asset: asset, Classification: model.Unused}
}

func used(asset model.DeclaredAsset, ref model.AssetReference) model.AssetResult {
	r := ref
	return model.AssetResult{Asset: asset, Classification: model.Used, MatchedBy: &r}
}

// matchPropertyChains applies a fixed precedence: direct lookup,
// suffix-stripped lookup, category-wide for length-2 chains, then fuzzy.
func matchPropertyChains(asset model.DeclaredAsset, refs *ReferenceSet, mapping *model.GeneratedAssetMapping) (model.AssetReference, bool) {
	for chain, hits := range refs.PropertyChains {
		if len(hits) == 0 {
			continue
		}
		// 1. direct lookup
		if p, ok := mapping.ByChain[chain]; ok && p == asset.Path {
			return hits[0], true
		}
		// 2. suffix-stripped lookup
		for _, sugar := range sugarSuffixes {
			if strings.HasSuffix(chain, sugar) {
				stripped := strings.TrimSuffix(chain, sugar)
				if p, ok := mapping.ByChain[stripped]; ok && p == asset.Path {
					return hits[0], true
				}
			}
		}
		// 3. category-wide match for length-2 chains
		segments := strings.Split(chain, ".")
		if len(segments) == 2 {
			category := segments[1]
			if chainMatchesCategory(mapping, category, asset.Path) {
				return hits[0], true
			}
			if strings.Contains(asset.Path, "/"+category+"/") || strings.HasPrefix(asset.Path, category+"/") {
				return hits[0], true
			}
		}
	}

	// 4. fuzzy last-segment match
	return fuzzyMatchChain(asset, refs)
}

func chainMatchesCategory(mapping *model.GeneratedAssetMapping, category, assetPath string) bool {
	prefix := category + "."
	for chain, p := range mapping.ByChain {
		if strings.HasPrefix(chain, prefix) && p == assetPath {
			return true
		}
	}
	return false
}

// fuzzyMatchChain applies a fixed fuzzy last-segment precedence: first
// lower-camel equality, then snake_case equality, then hyphen-normalized
// snake, then underscore-stripped. Ties among multiple surviving candidate
// chains are broken by Jaro-Winkler similarity (go-edlib), then
// lexicographic chain order, keeping output deterministic.
func fuzzyMatchChain(asset model.DeclaredAsset, refs *ReferenceSet) (model.AssetReference, bool) {
	stem := strings.TrimSuffix(path.Base(asset.Path), path.Ext(asset.Path))
	snakeStem := strings.ReplaceAll(stem, "-", "_")

	type candidate struct {
		chain string
		ref   model.AssetReference
		tier  int
	}
	var candidates []candidate

	for chain, hits := range refs.PropertyChains {
		if len(hits) == 0 {
			continue
		}
		segments := strings.Split(chain, ".")
		last := segments[len(segments)-1]
		lowerCamel := lowerFirst(last)
		snake := camelToSnake(last)
		hyphenSnake := strings.ReplaceAll(snake, "-", "_")
		stripped := strings.ReplaceAll(snake, "_", "")

		switch {
		case lowerCamel == stem:
			candidates = append(candidates, candidate{chain, hits[0], 0})
		case snake == snakeStem:
			candidates = append(candidates, candidate{chain, hits[0], 1})
		case hyphenSnake == snakeStem:
			candidates = append(candidates, candidate{chain, hits[0], 2})
		case stripped == strings.ReplaceAll(snakeStem, "_", ""):
			candidates = append(candidates, candidate{chain, hits[0], 3})
		}
	}

	if len(candidates) == 0 {
		return model.AssetReference{}, false
	}

	bestTier := candidates[0].tier
	for _, c := range candidates {
		if c.tier < bestTier {
			bestTier = c.tier
		}
	}
	var tied []candidate
	for _, c := range candidates {
		if c.tier == bestTier {
			tied = append(tied, c)
		}
	}
	if len(tied) == 1 {
		return tied[0].ref, true
	}

	sort.Slice(tied, func(i, j int) bool {
		si, _ := edlib.StringsSimilarity(tied[i].chain, stem, edlib.JaroWinkler)
		sj, _ := edlib.StringsSimilarity(tied[j].chain, stem, edlib.JaroWinkler)
		if si != sj {
			return si > sj
		}
		return tied[i].chain < tied[j].chain
	})
	return tied[0].ref, true
}

// camelToSnake converts a camelCase identifier into snake_case using
// fatih/camelcase's word splitter rather than a hand-rolled regex.
func camelToSnake(s string) string {
	words := camelcase.Split(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
