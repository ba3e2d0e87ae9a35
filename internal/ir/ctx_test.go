package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalCtx_BaseFrameIsIdentity(t *testing.T) {
	g := New()
	ctx := g.NewEvalCtx()

	unit := g.Unit()
	got, err := ctx.Evaluate(unit)
	require.NoError(t, err)
	assert.Equal(t, unit, got)
	assert.Equal(t, 0, ctx.ScopeDepth())

	// Even region-bound values are untouched with nothing in scope.
	r := mustRegion(t, g, []TypeId{g.UnitType()}, Region{})
	p, err := g.Param(r, 0)
	require.NoError(t, err)
	got, err = ctx.Evaluate(p)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestEvalCtx_PushRegionBindsParams(t *testing.T) {
	g := New()
	unitTy := g.UnitType()
	unit := g.Unit()

	r := mustRegion(t, g, []TypeId{unitTy, unitTy}, Region{})
	p0, err := g.Param(r, 0)
	require.NoError(t, err)
	p1, err := g.Param(r, 1)
	require.NoError(t, err)

	ctx := g.NewEvalCtx()
	require.NoError(t, ctx.PushRegion(r, []ValId{unit, unit}))
	assert.Equal(t, 1, ctx.ScopeDepth())
	assert.Equal(t, 1, ctx.MinDepth())

	got, err := ctx.Evaluate(p0)
	require.NoError(t, err)
	assert.Equal(t, unit, got)
	got, err = ctx.Evaluate(p1)
	require.NoError(t, err)
	assert.Equal(t, unit, got)
}

func TestEvalCtx_PushRegionTypeMismatch(t *testing.T) {
	g := New()
	unitTy := g.UnitType()

	r := mustRegion(t, g, []TypeId{unitTy}, Region{})
	wrong := g.Universe(1).Val()

	ctx := g.NewEvalCtx()
	err := ctx.PushRegion(r, []ValId{wrong})
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))

	// The failed push left no trace.
	assert.Equal(t, 0, ctx.ScopeDepth())
	assert.Equal(t, 0, ctx.CacheSize())
}

func TestEvalCtx_FailureOnLaterParamRollsBack(t *testing.T) {
	g := New()
	unitTy := g.UnitType()
	unit := g.Unit()

	r := mustRegion(t, g, []TypeId{unitTy, unitTy}, Region{})
	wrong := g.Universe(0).Val()

	// The first binding succeeds; the second fails and must unwind it.
	ctx := g.NewEvalCtx()
	err := ctx.PushRegion(r, []ValId{unit, wrong})
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))
	assert.Equal(t, 0, ctx.ScopeDepth())
	assert.Equal(t, 0, ctx.CacheSize())

	p0, err := g.Param(r, 0)
	require.NoError(t, err)
	got, err := ctx.Evaluate(p0)
	require.NoError(t, err)
	assert.Equal(t, p0, got, "no binding survives the failed push")
}

func TestEvalCtx_PushRegionArity(t *testing.T) {
	g := New()
	unitTy := g.UnitType()
	unit := g.Unit()

	r := mustRegion(t, g, []TypeId{unitTy}, Region{})
	ctx := g.NewEvalCtx()

	err := ctx.PushRegion(r, []ValId{unit, unit})
	require.Error(t, err)
	assert.True(t, IsArityError(err))

	err = ctx.PushRegion(Region{}, nil)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeNullRegion))
}

func TestEvalCtx_UnboundParamStaysAllowed(t *testing.T) {
	g := New()
	unitTy := g.UnitType()
	unit := g.Unit()

	r := mustRegion(t, g, []TypeId{unitTy, unitTy}, Region{})
	p1, err := g.Param(r, 1)
	require.NoError(t, err)

	// Binding fewer arguments than parameters is permitted, but a
	// substitution that reaches the unbound parameter fails.
	ctx := g.NewEvalCtx()
	require.NoError(t, ctx.PushRegion(r, []ValId{unit}))
	_, err = ctx.Evaluate(p1)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeUndefParam))
}

func TestEvalCtx_MinDepthLeavesShallowValuesUntouched(t *testing.T) {
	g := New()
	unitTy := g.UnitType()
	unit := g.Unit()

	outer := mustRegion(t, g, []TypeId{unitTy}, Region{})
	inner := mustRegion(t, g, []TypeId{unitTy}, outer)
	pOuter, err := g.Param(outer, 0)
	require.NoError(t, err)

	ctx := g.NewEvalCtx()
	require.NoError(t, ctx.PushRegion(inner, []ValId{unit}))
	assert.Equal(t, 2, ctx.MinDepth())

	// pOuter lives at depth 1, strictly above every binding in scope.
	got, err := ctx.Evaluate(pOuter)
	require.NoError(t, err)
	assert.Equal(t, pOuter, got)
}

func TestEvalCtx_PopRollsBack(t *testing.T) {
	g := New()
	unitTy := g.UnitType()
	unit := g.Unit()

	r := mustRegion(t, g, []TypeId{unitTy}, Region{})
	p, err := g.Param(r, 0)
	require.NoError(t, err)

	ctx := g.NewEvalCtx()
	require.NoError(t, ctx.PushRegion(r, []ValId{unit}))
	_, err = ctx.Evaluate(p)
	require.NoError(t, err)
	assert.Greater(t, ctx.CacheSize(), 0)

	ctx.Pop()
	assert.Equal(t, 0, ctx.ScopeDepth())
	assert.Equal(t, 0, ctx.CacheSize())

	// With the scope gone the parameter stands for itself again.
	got, err := ctx.Evaluate(p)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestEvalCtx_NestedScopesStack(t *testing.T) {
	g := New()
	unitTy := g.UnitType()
	unit := g.Unit()

	r1 := mustRegion(t, g, []TypeId{unitTy}, Region{})
	r2 := mustRegion(t, g, []TypeId{unitTy}, r1)
	p1, err := g.Param(r1, 0)
	require.NoError(t, err)
	p2, err := g.Param(r2, 0)
	require.NoError(t, err)

	ctx := g.NewEvalCtx()
	require.NoError(t, ctx.PushRegion(r1, []ValId{unit}))
	require.NoError(t, ctx.PushRegion(r2, []ValId{unit}))
	assert.Equal(t, 2, ctx.ScopeDepth())
	assert.Equal(t, 1, ctx.MinDepth(), "the outer binding keeps the minimum depth low")

	got, err := ctx.Evaluate(p2)
	require.NoError(t, err)
	assert.Equal(t, unit, got)
	got, err = ctx.Evaluate(p1)
	require.NoError(t, err)
	assert.Equal(t, unit, got, "outer bindings stay visible in inner scopes")

	ctx.Pop()
	assert.Equal(t, 1, ctx.ScopeDepth())
	got, err = ctx.Evaluate(p1)
	require.NoError(t, err)
	assert.Equal(t, unit, got)
}
