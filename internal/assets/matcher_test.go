package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/hygiene/internal/model"
)

func TestMatch_ExactLiteral(t *testing.T) {
	refs := Index([]model.AssetReference{
		{Tag: model.TagLiteral, Text: "assets/logo.png"},
	})
	asset := model.DeclaredAsset{Path: "assets/logo.png"}
	result := Match(asset, refs, nil)
	assert.Equal(t, model.Used, result.Classification)
	require.NotNil(t, result.MatchedBy)
}

func TestMatch_FilenameFallback(t *testing.T) {
	refs := Index([]model.AssetReference{
		{Tag: model.TagLiteral, Text: "logo.png"},
	})
	asset := model.DeclaredAsset{Path: "assets/images/logo.png"}
	result := Match(asset, refs, nil)
	assert.Equal(t, model.Used, result.Classification)
}

func TestMatch_FontFamily(t *testing.T) {
	refs := Index([]model.AssetReference{
		{Tag: model.TagFontFamily, Text: "Roboto"},
	})
	asset := model.DeclaredAsset{Path: "assets/fonts/Roboto.ttf", IsFont: true, Family: "Roboto"}
	result := Match(asset, refs, nil)
	assert.Equal(t, model.Used, result.Classification)
}

func TestMatch_DynamicHintIsPotential(t *testing.T) {
	refs := Index([]model.AssetReference{
		{Tag: model.TagDynamicHint, Text: "assets/icons/"},
	})
	asset := model.DeclaredAsset{Path: "assets/icons/home.svg"}
	result := Match(asset, refs, nil)
	assert.Equal(t, model.Potential, result.Classification)
}

func TestMatch_Unused(t *testing.T) {
	refs := Index(nil)
	asset := model.DeclaredAsset{Path: "assets/unreferenced.png"}
	result := Match(asset, refs, nil)
	assert.Equal(t, model.Unused, result.Classification)
}

func TestMatch_PropertyChainDirectLookup(t *testing.T) {
	mapping := model.NewGeneratedAssetMapping()
	mapping.AddChain("Assets.logo", "assets/logo.png")
	refs := Index([]model.AssetReference{
		{Tag: model.TagPropertyChain, Text: "Assets.logo"},
	})
	asset := model.DeclaredAsset{Path: "assets/logo.png"}
	result := Match(asset, refs, mapping)
	assert.Equal(t, model.Used, result.Classification)
}

func TestMatch_PropertyChainSuffixStripped(t *testing.T) {
	mapping := model.NewGeneratedAssetMapping()
	mapping.AddChain("Assets.logo", "assets/logo.svg")
	refs := Index([]model.AssetReference{
		{Tag: model.TagPropertyChain, Text: "Assets.logo.svg"},
	})
	asset := model.DeclaredAsset{Path: "assets/logo.svg"}
	result := Match(asset, refs, mapping)
	assert.Equal(t, model.Used, result.Classification)
}

func TestMatch_FuzzyLastSegmentSnakeCase(t *testing.T) {
	refs := Index([]model.AssetReference{
		{Tag: model.TagPropertyChain, Text: "Assets.homeIcon"},
	})
	asset := model.DeclaredAsset{Path: "assets/home_icon.png"}
	result := Match(asset, refs, model.NewGeneratedAssetMapping())
	assert.Equal(t, model.Used, result.Classification)
}

func TestCamelToSnake(t *testing.T) {
	assert.Equal(t, "home_icon", camelToSnake("homeIcon"))
	assert.Equal(t, "logo", camelToSnake("logo"))
}
