package codeanalysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/hygiene/internal/model"
)

func TestCollectImports_UnprefixedIsUsedUnknown(t *testing.T) {
	result := parseDart(t, "import 'package:flutter/material.dart';\n\nvoid main() {}\n")
	imports := CollectImports(result, "app", "lib/main.dart", model.NewReferenceSet())
	require.Len(t, imports, 1)
	assert.True(t, imports[0].UsedUnknown)
	assert.False(t, imports[0].Used)
	assert.Equal(t, "package:flutter/material.dart", imports[0].URI)
}

func TestCollectImports_PrefixedUsedWhenReferenced(t *testing.T) {
	result := parseDart(t, "import 'dart:math' as math;\n\nvoid main() {\n  math.max(1, 2);\n}\n")
	refs := model.NewReferenceSet()
	refs.AddIdentifier("math")
	imports := CollectImports(result, "app", "lib/main.dart", refs)
	require.Len(t, imports, 1)
	assert.Equal(t, "math", imports[0].Prefix)
	assert.True(t, imports[0].Used)
}

func TestCollectImports_ShownNameUnusedIsNotUsed(t *testing.T) {
	result := parseDart(t, "import 'dart:math' show max;\n\nvoid main() {}\n")
	imports := CollectImports(result, "app", "lib/main.dart", model.NewReferenceSet())
	require.Len(t, imports, 1)
	assert.Contains(t, imports[0].Shown, "max")
	assert.False(t, imports[0].Used)
	assert.False(t, imports[0].UsedUnknown)
}

func TestCollectImports_ExportIsUsedUnknown(t *testing.T) {
	result := parseDart(t, "export 'src/widget.dart';\n")
	imports := CollectImports(result, "app", "lib/main.dart", model.NewReferenceSet())
	require.Len(t, imports, 1)
	assert.True(t, imports[0].IsExport)
	assert.True(t, imports[0].UsedUnknown)
}
