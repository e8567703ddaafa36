package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisitContext_PushPopClass(t *testing.T) {
	ctx := NewVisitContext()
	assert.Equal(t, "", ctx.CurrentClass())

	ctx.PushClass("Outer")
	assert.Equal(t, "Outer", ctx.CurrentClass())
	assert.Equal(t, "Outer.field", ctx.QualifiedName("field"))

	ctx.PushClass("Inner")
	assert.Equal(t, "Inner", ctx.CurrentClass())
	assert.Equal(t, "Outer.Inner.field", ctx.QualifiedName("field"))

	ctx.PopClass()
	assert.Equal(t, "Outer", ctx.CurrentClass())

	ctx.PopClass()
	assert.Equal(t, "", ctx.CurrentClass())
	assert.Equal(t, "field", ctx.QualifiedName("field"))
}

func TestVisitContext_MarkHandled(t *testing.T) {
	ctx := NewVisitContext()
	assert.False(t, ctx.IsHandled(42))
	ctx.MarkHandled(42)
	assert.True(t, ctx.IsHandled(42))
	assert.False(t, ctx.IsHandled(7))
}

func TestVisitContext_PopClassOnEmptyIsNoop(t *testing.T) {
	ctx := NewVisitContext()
	ctx.PopClass()
	assert.Equal(t, "", ctx.CurrentClass())
}
