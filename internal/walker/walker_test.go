package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("// dart\n"), 0o644))
}

func TestIsGenerated(t *testing.T) {
	assert.True(t, IsGenerated("lib/model.g.dart"))
	assert.True(t, IsGenerated("lib/model.freezed.dart"))
	assert.True(t, IsGenerated("lib/assets.gen.dart"))
	assert.False(t, IsGenerated("lib/model.dart"))
}

func TestIsTest(t *testing.T) {
	assert.True(t, IsTest("test/widget_test.dart"))
	assert.True(t, IsTest("lib/foo_test.dart"))
	assert.False(t, IsTest("lib/foo.dart"))
}

func TestWalk_ExcludesDefaultsAndGenerated(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lib", "main.dart"))
	writeFile(t, filepath.Join(root, "lib", "model.g.dart"))
	writeFile(t, filepath.Join(root, "build", "cache.dart"))
	writeFile(t, filepath.Join(root, "test", "main_test.dart"))

	w := New(Options{})
	files, err := w.Walk(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/main.dart"}, files)
}

func TestWalk_IncludeGeneratedAndTests(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lib", "main.dart"))
	writeFile(t, filepath.Join(root, "lib", "model.g.dart"))
	writeFile(t, filepath.Join(root, "test", "main_test.dart"))

	w := New(Options{IncludeGenerated: true, IncludeTests: true})
	files, err := w.Walk(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"lib/main.dart", "lib/model.g.dart", "test/main_test.dart"}, files)
}

func TestWalk_IncludeGlobRestrictsScope(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lib", "main.dart"))
	writeFile(t, filepath.Join(root, "lib", "other.dart"))

	w := New(Options{Include: []string{"lib/main.dart"}})
	files, err := w.Walk(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/main.dart"}, files)
}

func TestWalk_UserExcludeGlob(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lib", "main.dart"))
	writeFile(t, filepath.Join(root, "lib", "legacy.dart"))

	w := New(Options{Exclude: []string{"lib/legacy.dart"}})
	files, err := w.Walk(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/main.dart"}, files)
}
