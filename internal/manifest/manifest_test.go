package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAsset(t *testing.T, root, rel string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte("data"), 0o644))
}

func TestRead_MissingPubspecReturnsEmpty(t *testing.T) {
	root := t.TempDir()
	assets, warnings, err := Read("app", root)
	require.NoError(t, err)
	assert.Empty(t, assets)
	assert.Empty(t, warnings)
}

func TestRead_PlainAssetEntries(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "assets/logo.png")
	require.NoError(t, os.WriteFile(filepath.Join(root, "pubspec.yaml"), []byte(
		"flutter:\n  assets:\n    - assets/logo.png\n"), 0o644))

	assets, warnings, err := Read("app", root)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, assets, 1)
	assert.Equal(t, "assets/logo.png", assets[0].Path)
	assert.Equal(t, "app", assets[0].Package)
	assert.False(t, assets[0].IsFont)
}

func TestRead_DirectoryEntryExpands(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "assets/images/a.png")
	writeAsset(t, root, "assets/images/b.png")
	require.NoError(t, os.WriteFile(filepath.Join(root, "pubspec.yaml"), []byte(
		"flutter:\n  assets:\n    - assets/images/\n"), 0o644))

	assets, warnings, err := Read("app", root)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Len(t, assets, 2)
}

func TestRead_MissingAssetWarns(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pubspec.yaml"), []byte(
		"flutter:\n  assets:\n    - assets/missing.png\n"), 0o644))

	assets, warnings, err := Read("app", root)
	require.NoError(t, err)
	assert.Empty(t, assets)
	require.Len(t, warnings, 1)
	assert.Equal(t, "assets/missing.png", warnings[0].File)
}

func TestRead_FontEntry(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "assets/fonts/Roboto-Regular.ttf")
	require.NoError(t, os.WriteFile(filepath.Join(root, "pubspec.yaml"), []byte(
		"flutter:\n  fonts:\n    - family: Roboto\n      fonts:\n        - asset: assets/fonts/Roboto-Regular.ttf\n"), 0o644))

	assets, warnings, err := Read("app", root)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, assets, 1)
	assert.True(t, assets[0].IsFont)
	assert.Equal(t, "Roboto", assets[0].Family)
}

func TestRead_GlobEntry(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "assets/icons/a.svg")
	writeAsset(t, root, "assets/icons/b.svg")
	require.NoError(t, os.WriteFile(filepath.Join(root, "pubspec.yaml"), []byte(
		"flutter:\n  assets:\n    - assets/icons/*.svg\n"), 0o644))

	assets, warnings, err := Read("app", root)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Len(t, assets, 2)
}
