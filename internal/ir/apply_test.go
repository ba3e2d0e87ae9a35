package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustApply(t *testing.T, g *Graph, f ValId, args ...ValId) ValId {
	t.Helper()
	out, err := g.Apply(f, args...)
	require.NoError(t, err)
	return out
}

func TestApply_NoArgsIsIdentity(t *testing.T) {
	g := New()
	unit := g.Unit()

	got := mustApply(t, g, unit)
	assert.Equal(t, unit, got)
}

func TestApply_IdentityLambda(t *testing.T) {
	g := New()
	unitTy := g.UnitType()
	unit := g.Unit()

	id, err := g.Identity(unitTy)
	require.NoError(t, err)
	assert.Equal(t, KindLambda, id.Kind())
	assert.Equal(t, 0, id.Depth(), "a closed lambda is a global constant")

	got := mustApply(t, g, id, unit)
	assert.Equal(t, unit, got)
}

func TestApply_LambdaBodyRebuilt(t *testing.T) {
	g := New()
	unitTy := g.UnitType()
	unit := g.Unit()

	r := mustRegion(t, g, []TypeId{unitTy, unitTy}, Region{})
	p0, err := g.Param(r, 0)
	require.NoError(t, err)
	p1, err := g.Param(r, 1)
	require.NoError(t, err)
	body, err := g.Tuple(p1, p0)
	require.NoError(t, err)

	swap, err := g.Lambda(body, r)
	require.NoError(t, err)

	got := mustApply(t, g, swap, unit, unit)
	want, err := g.Tuple(unit, unit)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestApply_ConstantBodyShortCircuits(t *testing.T) {
	g := New()
	unitTy := g.UnitType()
	unit := g.Unit()

	r := mustRegion(t, g, []TypeId{unitTy}, Region{})
	konst, err := g.Lambda(unit, r)
	require.NoError(t, err)

	got := mustApply(t, g, konst, unit)
	assert.Equal(t, unit, got)
}

func TestApply_CurryingEquivalence(t *testing.T) {
	g := New()
	unitTy := g.UnitType()
	unit := g.Unit()

	r1 := mustRegion(t, g, []TypeId{unitTy}, Region{})
	p0, err := g.Param(r1, 0)
	require.NoError(t, err)
	r2 := mustRegion(t, g, []TypeId{unitTy}, r1)
	q0, err := g.Param(r2, 0)
	require.NoError(t, err)

	body, err := g.Tuple(p0, q0)
	require.NoError(t, err)
	inner, err := g.Lambda(body, r2)
	require.NoError(t, err)
	assert.Equal(t, r1, inner.Region(), "the inner lambda captures the outer parameter")
	outer, err := g.Lambda(inner, r1)
	require.NoError(t, err)

	allAtOnce := mustApply(t, g, outer, unit, unit)

	step := mustApply(t, g, outer, unit)
	assert.Equal(t, KindLambda, step.Kind())
	oneAtATime := mustApply(t, g, step, unit)

	want, err := g.Tuple(unit, unit)
	require.NoError(t, err)
	assert.Equal(t, want, allAtOnce)
	assert.Equal(t, want, oneAtATime)
}

func TestApply_PartialApplicationIsSymbolic(t *testing.T) {
	g := New()
	unitTy := g.UnitType()
	unit := g.Unit()

	r := mustRegion(t, g, []TypeId{unitTy, unitTy}, Region{})
	p0, err := g.Param(r, 0)
	require.NoError(t, err)
	lam, err := g.Lambda(p0, r)
	require.NoError(t, err)

	got := mustApply(t, g, lam, unit)
	assert.Equal(t, KindSexpr, got.Kind(), "a partial application is a stuck sexpr")

	pi, ok := got.Type().Node().(*Pi)
	require.True(t, ok)
	assert.Equal(t, 1, pi.NumParams(), "the stuck value is typed by the remaining parameters")
	assert.Equal(t, unitTy, pi.ParamType(0))
}

func TestApply_StuckApplicationResumes(t *testing.T) {
	g := New()
	unitTy := g.UnitType()
	unit := g.Unit()

	r := mustRegion(t, g, []TypeId{unitTy, unitTy}, Region{})
	p0, err := g.Param(r, 0)
	require.NoError(t, err)
	p1, err := g.Param(r, 1)
	require.NoError(t, err)
	body, err := g.Tuple(p0, p1)
	require.NoError(t, err)
	pair, err := g.Lambda(body, r)
	require.NoError(t, err)

	// Apply a function-typed parameter: nothing can reduce yet.
	piTy := pair.Type()
	holder := mustRegion(t, g, []TypeId{piTy}, Region{})
	f, err := g.Param(holder, 0)
	require.NoError(t, err)

	stuck := mustApply(t, g, f, unit, unit)
	require.Equal(t, KindSexpr, stuck.Kind())

	// Substituting a concrete function resumes the application.
	ctx := g.NewEvalCtx()
	require.NoError(t, ctx.PushRegion(holder, []ValId{pair}))
	got, err := ctx.Evaluate(stuck)
	require.NoError(t, err)
	ctx.Pop()

	want, err := g.Tuple(unit, unit)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestApply_Errors(t *testing.T) {
	g := New()
	unitTy := g.UnitType()
	unit := g.Unit()

	t.Run("not a function", func(t *testing.T) {
		_, err := g.Apply(unit, unit)
		require.Error(t, err)
		assert.True(t, IsCode(err, ErrCodeNotAFunction))
	})

	t.Run("too many arguments", func(t *testing.T) {
		id, err := g.Identity(unitTy)
		require.NoError(t, err)
		_, err = g.Apply(id, unit, unit)
		require.Error(t, err)
		assert.True(t, IsArityError(err))
	})

	t.Run("argument type mismatch", func(t *testing.T) {
		id, err := g.Identity(unitTy)
		require.NoError(t, err)
		_, err = g.Apply(id, g.Universe(0).Val())
		require.Error(t, err)
		assert.True(t, IsTypeMismatch(err))
	})
}

func TestApplyType_PartialPi(t *testing.T) {
	g := New()
	unitTy := g.UnitType()
	unit := g.Unit()

	r := mustRegion(t, g, []TypeId{unitTy, unitTy, unitTy}, Region{})
	pi, err := g.Pi(unitTy, r)
	require.NoError(t, err)

	partial, err := g.ApplyType(pi, []ValId{unit})
	require.NoError(t, err)
	rest, ok := partial.Node().(*Pi)
	require.True(t, ok)
	assert.Equal(t, 2, rest.NumParams())
	assert.Equal(t, unitTy, rest.Result())

	full, err := g.ApplyType(pi, []ValId{unit, unit, unit})
	require.NoError(t, err)
	assert.Equal(t, unitTy, full)

	_, err = g.ApplyType(pi, []ValId{unit, unit, unit, unit})
	require.Error(t, err)
	assert.True(t, IsArityError(err))
}
