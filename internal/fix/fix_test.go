package fix

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/hygiene/internal/parser"
)

func TestComputeRange_WidensOverLeadingAnnotation(t *testing.T) {
	p := parser.New()
	src := []byte("class Foo {\n  @override\n  void bar() {}\n}\n")
	result, err := p.Parse(src)
	require.NoError(t, err)
	defer result.Close()

	class := parser.ChildByType(result.Tree.RootNode(), parser.KindClassDefinition)
	require.NotNil(t, class)
	body := parser.ChildByType(class, parser.KindClassBody)
	require.NotNil(t, body)
	method := parser.ChildByType(body, parser.KindMethodSignature)
	require.NotNil(t, method)

	r := ComputeRange(method, src)
	text := string(src[r.Start:r.End])
	assert.Contains(t, text, "@override")
	assert.Contains(t, text, "void bar() {}")
}

func TestApply_RemovesRangeStartDescending(t *testing.T) {
	content := []byte("abcdefghij")
	ranges := []Range{
		{Start: 6, End: 8}, // "gh"
		{Start: 2, End: 4}, // "cd"
	}
	out := Apply(content, ranges)
	assert.Equal(t, "abefij", string(out))
}

func TestBuildPlans_SortsFilesAndRangesDescending(t *testing.T) {
	plans := BuildPlans(map[string][]Range{
		"lib/b.dart": {{Start: 1, End: 2}, {Start: 10, End: 12}},
		"lib/a.dart": {{Start: 5, End: 6}},
	})
	require.Len(t, plans, 2)
	assert.Equal(t, "lib/a.dart", plans[0].RelPath)
	assert.Equal(t, "lib/b.dart", plans[1].RelPath)
	require.Len(t, plans[1].Ranges, 2)
	assert.Equal(t, uint(10), plans[1].Ranges[0].Start)
}

func TestRun_DryRunNeverTouchesDisk(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "lib", "main.dart")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	original := []byte("void unused() {}\n")
	require.NoError(t, os.WriteFile(path, original, 0o644))

	plans := []Plan{{RelPath: "lib/main.dart", Ranges: []Range{{Start: 0, End: uint(len(original))}}}}
	results, err := Run(root, plans, true)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].DryRun)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, after)
}

func TestRun_AppliesAndWritesFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "lib", "main.dart")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("void unused() {}\nvoid main() {}\n"), 0o644))

	plans := []Plan{{RelPath: "lib/main.dart", Ranges: []Range{{Start: 0, End: 17}}}}
	results, err := Run(root, plans, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].DryRun)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "void main() {}\n", string(after))
}
