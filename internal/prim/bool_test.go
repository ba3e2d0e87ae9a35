package prim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cascade-ir/cascade/internal/ir"
)

func TestBool_CanonicalHandles(t *testing.T) {
	g := ir.New()

	assert.Equal(t, Bool(g, true), Bool(g, true))
	assert.Equal(t, Bool(g, false), Bool(g, false))
	assert.NotEqual(t, Bool(g, true), Bool(g, false))
	assert.Equal(t, BoolType(g), BoolType(g))
}

func TestBool_TypeAndPlacement(t *testing.T) {
	g := ir.New()

	v := Bool(g, true)
	assert.Equal(t, BoolType(g), v.Type())
	assert.Equal(t, 0, v.Depth())
	assert.True(t, BoolType(g).IsType())
	assert.False(t, v.IsType(), "a boolean constant is not a type")
}

func TestAsBool(t *testing.T) {
	g := ir.New()

	b, ok := AsBool(Bool(g, true))
	require.True(t, ok)
	assert.True(t, b)

	b, ok = AsBool(Bool(g, false))
	require.True(t, ok)
	assert.False(t, b)

	_, ok = AsBool(g.Unit())
	assert.False(t, ok)

	// A symbolic value of boolean type is not a constant.
	r, err := g.NewRegion([]ir.TypeId{BoolType(g)}, ir.Region{})
	require.NoError(t, err)
	p, err := g.Param(r, 0)
	require.NoError(t, err)
	_, ok = AsBool(p)
	assert.False(t, ok)
}

func TestIdentity_OverBool(t *testing.T) {
	g := ir.New()

	id, err := g.Identity(BoolType(g))
	require.NoError(t, err)
	for _, b := range []bool{false, true} {
		got, err := g.Apply(id, Bool(g, b))
		require.NoError(t, err)
		assert.Equal(t, Bool(g, b), got)
	}
}

func TestBool_NotAFunction(t *testing.T) {
	g := ir.New()

	_, err := g.Apply(Bool(g, true), Bool(g, false))
	require.Error(t, err)
	assert.True(t, ir.IsCode(err, ir.ErrCodeNotAFunction))

	_, err = g.Apply(BoolType(g).Val(), Bool(g, false))
	require.Error(t, err)
	assert.True(t, ir.IsCode(err, ir.ErrCodeNotAFunction))
}
