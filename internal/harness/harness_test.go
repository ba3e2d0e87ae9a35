package harness

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cascade-ir/cascade/internal/ir"
	"github.com/cascade-ir/cascade/internal/prim"
)

func TestMux_IsClosed(t *testing.T) {
	g := ir.New()
	mux := Mux(t, g)

	assert.Equal(t, ir.KindLambda, mux.Kind())
	assert.Equal(t, 0, mux.Depth(), "the multiplexer captures nothing")
}

func TestMux_TruthTable(t *testing.T) {
	g := ir.New()
	mux := Mux(t, g)

	for _, s := range []bool{false, true} {
		for _, a := range []bool{false, true} {
			for _, b := range []bool{false, true} {
				s, a, b := s, a, b
				t.Run(fmt.Sprintf("s=%t/a=%t/b=%t", s, a, b), func(t *testing.T) {
					got := MustApply(t, g, mux, prim.Bool(g, s), prim.Bool(g, a), prim.Bool(g, b))
					want := b
					if s {
						want = a
					}
					assert.Equal(t, prim.Bool(g, want), got)
				})
			}
		}
	}
}

func TestMux_PartialApplicationIsSymbolic(t *testing.T) {
	g := ir.New()
	mux := Mux(t, g)

	got := MustApply(t, g, mux, prim.Bool(g, true))
	require.Equal(t, ir.KindSexpr, got.Kind())

	pi, ok := got.Type().Node().(*ir.Pi)
	require.True(t, ok)
	assert.Equal(t, 2, pi.NumParams())
	assert.Equal(t, prim.BoolType(g), pi.ParamType(0))
}

func TestMux_CanonicalAcrossBuilds(t *testing.T) {
	g := ir.New()

	assert.Equal(t, Mux(t, g), Mux(t, g), "rebuilding the same graph shape yields the same handle")
}

func TestMux_GoldenDump(t *testing.T) {
	g := ir.New()
	AssertDump(t, "mux", Mux(t, g))
}
