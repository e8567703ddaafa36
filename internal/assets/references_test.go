package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/hygiene/internal/model"
	"github.com/standardbeagle/hygiene/internal/parser"
)

func TestCollectReferences_StringLiteral(t *testing.T) {
	p := parser.New()
	src := []byte(`const logo = 'assets/logo.png';` + "\n")
	result, err := p.Parse(src)
	require.NoError(t, err)
	defer result.Close()

	refs := CollectReferences(result, "app", "lib/main.dart")

	var found bool
	for _, r := range refs {
		if r.Tag == model.TagLiteral && r.Text == "assets/logo.png" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCollectReferences_EmptyFileHasNoReferences(t *testing.T) {
	p := parser.New()
	result, err := p.Parse([]byte("void main() {}\n"))
	require.NoError(t, err)
	defer result.Close()

	refs := CollectReferences(result, "app", "lib/main.dart")
	assert.Empty(t, refs)
}
