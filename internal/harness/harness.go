package harness

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascade-ir/cascade/internal/ir"
	"github.com/cascade-ir/cascade/internal/prim"
)

// MustRegion builds a region or fails the test.
func MustRegion(t testing.TB, g *ir.Graph, paramTys []ir.TypeId, parent ir.Region) ir.Region {
	t.Helper()
	r, err := g.NewRegion(paramTys, parent)
	require.NoError(t, err)
	return r
}

// MustParam fetches a region parameter or fails the test.
func MustParam(t testing.TB, g *ir.Graph, r ir.Region, ix int) ir.ValId {
	t.Helper()
	p, err := g.Param(r, ix)
	require.NoError(t, err)
	return p
}

// MustApply applies f to args or fails the test.
func MustApply(t testing.TB, g *ir.Graph, f ir.ValId, args ...ir.ValId) ir.ValId {
	t.Helper()
	out, err := g.Apply(f, args...)
	require.NoError(t, err)
	return out
}

// MustLambda abstracts result over defRegion or fails the test.
func MustLambda(t testing.TB, g *ir.Graph, result ir.ValId, defRegion ir.Region) ir.ValId {
	t.Helper()
	lam, err := g.Lambda(result, defRegion)
	require.NoError(t, err)
	return lam
}

// MustTuple builds a tuple or fails the test.
func MustTuple(t testing.TB, g *ir.Graph, elems ...ir.ValId) ir.ValId {
	t.Helper()
	v, err := g.Tuple(elems...)
	require.NoError(t, err)
	return v
}

// Mux builds the three-input boolean multiplexer
//
//	mux(s, a, b) = or(and(s, a), and(not(s), b))
//
// as a closed lambda. Its body is a stuck sexpr over the region's
// parameters, so applying it exercises binding, sexpr resumption, and
// truth-table folding in one pass.
func Mux(t testing.TB, g *ir.Graph) ir.ValId {
	t.Helper()
	boolTy := prim.BoolType(g)
	r := MustRegion(t, g, []ir.TypeId{boolTy, boolTy, boolTy}, ir.Region{})

	s := MustParam(t, g, r, 0)
	a := MustParam(t, g, r, 1)
	b := MustParam(t, g, r, 2)

	sa := MustApply(t, g, prim.And(g), s, a)
	ns := MustApply(t, g, prim.Not(g), s)
	nsb := MustApply(t, g, prim.And(g), ns, b)
	body := MustApply(t, g, prim.Or(g), sa, nsb)

	return MustLambda(t, g, body, r)
}
