package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_UniverseIdentity(t *testing.T) {
	g := New()

	u0a := g.Universe(0)
	u0b := g.Universe(0)
	u1 := g.Universe(1)

	assert.Equal(t, u0a, u0b)
	assert.NotEqual(t, u0a, u1)
	assert.True(t, u0a.IsType())
	assert.True(t, u0a.Type().IsNil(), "universes classify themselves")
	assert.Equal(t, 0, u0a.Depth())
}

func TestGraph_TupleIdentity(t *testing.T) {
	g := New()
	unit := g.Unit()

	a, err := g.Tuple(unit, unit)
	require.NoError(t, err)
	b, err := g.Tuple(unit, unit)
	require.NoError(t, err)
	c, err := g.Tuple(unit)
	require.NoError(t, err)

	assert.Equal(t, a, b, "structurally equal tuples must be the same handle")
	assert.NotEqual(t, a, c)
}

func TestGraph_TupleTypeIsProduct(t *testing.T) {
	g := New()
	unit := g.Unit()
	unitTy := g.UnitType()

	pair, err := g.Tuple(unit, unit)
	require.NoError(t, err)

	want, err := g.Product(unitTy, unitTy)
	require.NoError(t, err)
	assert.Equal(t, want, pair.Type())

	prod, ok := pair.Type().Node().(*Product)
	require.True(t, ok)
	assert.Equal(t, 2, prod.Len())
	assert.Equal(t, unitTy, prod.ElemType(0))
}

func TestGraph_UnitIsEmptyTuple(t *testing.T) {
	g := New()

	unit := g.Unit()
	assert.Equal(t, KindTuple, unit.Kind())
	assert.Equal(t, 0, unit.NumDeps())
	assert.Equal(t, g.UnitType(), unit.Type())
	assert.Equal(t, KindProduct, g.UnitType().Kind())
}

func TestGraph_ValuesInDistinctRegionsAreDistinct(t *testing.T) {
	g := New()
	u0 := g.Universe(0)

	r1 := mustRegion(t, g, []TypeId{u0}, Region{})
	r2 := mustRegion(t, g, []TypeId{u0, u0}, Region{})

	p1, err := g.Param(r1, 0)
	require.NoError(t, err)
	p2, err := g.Param(r2, 0)
	require.NoError(t, err)

	assert.NotEqual(t, p1, p2, "same index in different regions must not alias")
}

func TestGraph_TuplePlacementJoinsRegions(t *testing.T) {
	g := New()
	unitTy := g.UnitType()

	r1 := mustRegion(t, g, []TypeId{unitTy}, Region{})
	r2 := mustRegion(t, g, []TypeId{unitTy}, r1)
	p1, err := g.Param(r1, 0)
	require.NoError(t, err)
	p2, err := g.Param(r2, 0)
	require.NoError(t, err)

	pair, err := g.Tuple(p1, p2)
	require.NoError(t, err)
	assert.Equal(t, r2, pair.Region(), "placement is the deepest dependency region")

	// Incomparable element regions cannot be placed.
	sibling := mustRegion(t, g, []TypeId{unitTy, unitTy}, Region{})
	ps, err := g.Param(sibling, 0)
	require.NoError(t, err)
	_, err = g.Tuple(p1, ps)
	require.Error(t, err)
	assert.True(t, IsPlacementError(err))
}

func TestGraph_CollectEvictsUnheld(t *testing.T) {
	g := New()

	u0 := g.Universe(0)
	unit := g.Unit()
	pair, err := g.Tuple(unit, unit)
	require.NoError(t, err)
	require.Greater(t, g.NumValues(), 0)

	// Everything is still reachable from held handles.
	assert.Equal(t, 0, g.Collect())

	u0.Release()
	unit.Release()
	pair.Release()

	// Chains collect one level per pass.
	for g.Collect() > 0 {
	}
	assert.Equal(t, 0, g.NumValues())
	assert.Equal(t, 0, g.NumRegions())
}

func TestGraph_CollectKeepsHeldValuesUsable(t *testing.T) {
	g := New()
	unit := g.Unit()

	scratch, err := g.Tuple(unit, unit)
	require.NoError(t, err)
	scratch.Release()
	for g.Collect() > 0 {
	}

	// unit is still held and fully usable.
	assert.Equal(t, KindTuple, unit.Kind())
	rebuilt, err := g.Tuple(unit, unit)
	require.NoError(t, err)
	assert.Equal(t, KindTuple, rebuilt.Kind())
}
