// Package manifest reads a Dart package's pubspec.yaml for its declared
// asset and font entries.
package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/standardbeagle/hygiene/internal/errors"
	"github.com/standardbeagle/hygiene/internal/model"
	"github.com/standardbeagle/hygiene/internal/walker"
)

type pubspecShape struct {
	Flutter struct {
		Assets []string        `yaml:"assets"`
		Fonts  []fontEntryYAML `yaml:"fonts"`
	} `yaml:"flutter"`
}

type fontEntryYAML struct {
	Family string `yaml:"family"`
	Fonts  []struct {
		Asset string `yaml:"asset"`
	} `yaml:"fonts"`
}

// Read parses pkgRoot's pubspec.yaml and expands every asset/font entry into
// concrete DeclaredAssets, relative to pkgRoot, with forward slashes.
// Non-existent entries become warnings, never errors.
func Read(pkgName, pkgRoot string) ([]model.DeclaredAsset, []errors.Warning, error) {
	pubspecPath := filepath.Join(pkgRoot, "pubspec.yaml")
	content, err := os.ReadFile(pubspecPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, errors.NewEnvironmentError(pubspecPath, err)
	}

	var shape pubspecShape
	if err := yaml.Unmarshal(content, &shape); err != nil {
		return nil, nil, errors.NewEnvironmentError(pubspecPath, err)
	}

	var assets []model.DeclaredAsset
	var warnings []errors.Warning

	fontPaths := make(map[string]string) // path -> family

	for _, fe := range shape.Flutter.Fonts {
		for _, f := range fe.Fonts {
			if f.Asset == "" {
				continue
			}
			fontPaths[normalizePath(f.Asset)] = fe.Family
		}
	}

	seen := make(map[string]bool)
	addAsset := func(rel string) {
		rel = normalizePath(rel)
		if seen[rel] {
			return
		}
		full := filepath.Join(pkgRoot, filepath.FromSlash(rel))
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			warnings = append(warnings, errors.Warning{
				Kind:    errors.KindEnvironment,
				File:    rel,
				Message: "declared asset does not exist",
			})
			return
		}
		seen[rel] = true
		family, isFont := fontPaths[rel]
		assets = append(assets, model.DeclaredAsset{
			Path:    rel,
			Package: pkgName,
			Size:    info.Size(),
			IsFont:  isFont,
			Family:  family,
		})
	}

	for _, entry := range shape.Flutter.Assets {
		switch {
		case strings.HasSuffix(entry, "/"):
			expandDirectory(pkgRoot, entry, addAsset, &warnings)
		case strings.ContainsAny(entry, "*"):
			expandGlobEntry(pkgRoot, entry, addAsset, &warnings)
		default:
			addAsset(entry)
		}
	}

	// Font assets may be declared only under flutter.fonts, without a
	// matching flutter.assets entry, but font-family strings still flow
	// into the reference side, so these still need a DeclaredAsset.
	for rel, family := range fontPaths {
		if seen[rel] {
			continue
		}
		full := filepath.Join(pkgRoot, filepath.FromSlash(rel))
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			warnings = append(warnings, errors.Warning{
				Kind:    errors.KindEnvironment,
				File:    rel,
				Message: "declared font asset does not exist",
			})
			continue
		}
		seen[rel] = true
		assets = append(assets, model.DeclaredAsset{
			Path:    rel,
			Package: pkgName,
			Size:    info.Size(),
			IsFont:  true,
			Family:  family,
		})
	}

	return assets, warnings, nil
}

func expandDirectory(pkgRoot, entry string, addAsset func(string), warnings *[]errors.Warning) {
	dir := filepath.Join(pkgRoot, filepath.FromSlash(strings.TrimSuffix(entry, "/")))
	entries, err := os.ReadDir(dir)
	if err != nil {
		*warnings = append(*warnings, errors.Warning{
			Kind:    errors.KindEnvironment,
			File:    entry,
			Message: "declared asset directory does not exist",
		})
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		addAsset(strings.TrimSuffix(entry, "/") + "/" + e.Name())
	}
}

func expandGlobEntry(pkgRoot, entry string, addAsset func(string), warnings *[]errors.Warning) {
	matches, err := walker.ExpandGlob(pkgRoot, entry)
	if err != nil || len(matches) == 0 {
		*warnings = append(*warnings, errors.Warning{
			Kind:    errors.KindEnvironment,
			File:    entry,
			Message: "declared asset glob matched no files",
		})
		return
	}
	for _, m := range matches {
		addAsset(m)
	}
}

func normalizePath(p string) string {
	return filepath.ToSlash(p)
}
