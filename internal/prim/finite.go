package prim

import (
	"fmt"

	"github.com/cascade-ir/cascade/internal/ir"
)

// finite is the type with exactly n inhabitants. finite(0) is empty and
// finite(2) is isomorphic to (but distinct from) bool. It satisfies
// ir.IndexType, so symbolic values of a finite type can project
// uniformly-typed tuples.
type finite struct {
	n  uint64
	ty ir.TypeId
}

// Finite returns the canonical type with n inhabitants.
func Finite(g *ir.Graph, n uint64) ir.TypeId {
	return ir.TypeId{ValId: g.Intern(&finite{n: n, ty: g.Universe(0)})}
}

// Cardinality returns the number of inhabitants.
func (f *finite) Cardinality() uint64 { return f.n }

func (f *finite) Kind() ir.Kind { return KindFinite }
func (f *finite) Type() ir.TypeId { return f.ty }
func (f *finite) Region() ir.Region { return ir.Region{} }
func (f *finite) NumDeps() int { return 0 }
func (f *finite) Dep(i int) ir.ValId { panic("finite type has no dependencies") }
func (f *finite) Hash() uint64 { return ir.HashWords(KindFinite, f.n) }
func (f *finite) String() string { return fmt.Sprintf("finite(%d)", f.n) }

func (f *finite) Equal(other ir.Node) bool {
	o, ok := other.(*finite)
	return ok && o.n == f.n
}

func (f *finite) Substitute(ctx *ir.EvalCtx) (ir.ValId, error) {
	return Finite(ctx.Graph(), f.n).ValId, nil
}

func (f *finite) Apply(g *ir.Graph, args []ir.ValId) (ir.Application, error) {
	return ir.DefaultApply(g, f.ty, args)
}

// index is the ix-th inhabitant of finite(n). It satisfies
// ir.TupleIndex, so it projects tuples and products of length n.
type index struct {
	n  uint64
	ix uint64
	ty ir.TypeId
}

// Index returns the canonical ix-th inhabitant of finite(n).
func Index(g *ir.Graph, n, ix uint64) (ir.ValId, error) {
	if ix >= n {
		return ir.ValId{}, ir.Errorf(ir.ErrCodeParamOutOfRange,
			"index %d out of range for a type with %d inhabitants", ix, n)
	}
	return g.Intern(&index{n: n, ix: ix, ty: Finite(g, n)}), nil
}

// IndexInto returns the index's cardinality and position.
func (i *index) IndexInto() (card, ix uint64) { return i.n, i.ix }

func (i *index) Kind() ir.Kind { return KindIndex }
func (i *index) Type() ir.TypeId { return i.ty }
func (i *index) Region() ir.Region { return ir.Region{} }
func (i *index) NumDeps() int { return 0 }
func (i *index) Dep(j int) ir.ValId { panic("index has no dependencies") }
func (i *index) Hash() uint64 { return ir.HashWords(KindIndex, i.n, i.ix) }
func (i *index) String() string { return fmt.Sprintf("index(%d/%d)", i.ix, i.n) }

func (i *index) Equal(other ir.Node) bool {
	o, ok := other.(*index)
	return ok && o.n == i.n && o.ix == i.ix
}

func (i *index) Substitute(ctx *ir.EvalCtx) (ir.ValId, error) {
	return Index(ctx.Graph(), i.n, i.ix)
}

func (i *index) Apply(g *ir.Graph, args []ir.ValId) (ir.Application, error) {
	return ir.DefaultApply(g, i.ty, args)
}
