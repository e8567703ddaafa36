package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/hygiene/internal/model"
)

func sampleAssetResults() []model.AssetResult {
	return []model.AssetResult{
		{Asset: model.DeclaredAsset{Path: "assets/logo.png"}, Classification: model.Used,
			MatchedBy: &model.AssetReference{Tag: model.TagLiteral, Text: "assets/logo.png"}},
		{Asset: model.DeclaredAsset{Path: "assets/orphan.png"}, Classification: model.Unused},
		{Asset: model.DeclaredAsset{Path: "assets/icons/maybe.svg"}, Classification: model.Potential},
	}
}

func TestVisible_DefaultHidesUsedAndPotential(t *testing.T) {
	var buf bytes.Buffer
	err := Console{}.WriteAssets(&buf, sampleAssetResults(), AssetViewOptions{})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "assets/orphan.png")
	assert.NotContains(t, out, "assets/logo.png")
	assert.NotContains(t, out, "maybe.svg")
}

func TestVisible_ShowUsedAndPotential(t *testing.T) {
	var buf bytes.Buffer
	err := Console{}.WriteAssets(&buf, sampleAssetResults(), AssetViewOptions{ShowUsed: true, ShowPotential: true})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "assets/logo.png")
	assert.Contains(t, out, "assets/orphan.png")
	assert.Contains(t, out, "maybe.svg")
}

func TestCSV_WriteAssetsHeader(t *testing.T) {
	var buf bytes.Buffer
	err := CSV{}.WriteAssets(&buf, sampleAssetResults(), AssetViewOptions{ShowUsed: true, ShowPotential: true})
	require.NoError(t, err)
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "path,classification,matchedBy", lines[0])
}

func TestForAssetFormat_RejectsHTML(t *testing.T) {
	_, ok := ForAssetFormat("html")
	assert.False(t, ok)
}

func TestForAssetFormat_ResolvesConsoleJSONCSV(t *testing.T) {
	for _, f := range []string{"console", "", "json", "csv"} {
		_, ok := ForAssetFormat(f)
		assert.True(t, ok, f)
	}
}
