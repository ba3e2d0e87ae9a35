package prim

import (
	"fmt"

	"github.com/cascade-ir/cascade/internal/ir"
)

const (
	KindBoolType ir.Kind = "bool-type"
	KindBool     ir.Kind = "bool"
	KindLogical  ir.Kind = "logical"
	KindFinite   ir.Kind = "finite"
	KindIndex    ir.Kind = "index"
	KindSelect   ir.Kind = "select"
)

// boolType is the type of booleans, a global constant in universe 0.
type boolType struct {
	ty ir.TypeId
}

// BoolType returns the canonical boolean type.
func BoolType(g *ir.Graph) ir.TypeId {
	n := &boolType{ty: g.Universe(0)}
	return ir.TypeId{ValId: g.Intern(n)}
}

func (t *boolType) Kind() ir.Kind { return KindBoolType }
func (t *boolType) Type() ir.TypeId { return t.ty }
func (t *boolType) Region() ir.Region { return ir.Region{} }
func (t *boolType) NumDeps() int { return 0 }
func (t *boolType) Dep(i int) ir.ValId { panic("bool type has no dependencies") }
func (t *boolType) Hash() uint64 { return ir.HashWords(KindBoolType) }
func (t *boolType) String() string { return "bool" }

func (t *boolType) Equal(other ir.Node) bool {
	_, ok := other.(*boolType)
	return ok
}

func (t *boolType) Substitute(ctx *ir.EvalCtx) (ir.ValId, error) {
	return BoolType(ctx.Graph()).ValId, nil
}

func (t *boolType) Apply(g *ir.Graph, args []ir.ValId) (ir.Application, error) {
	return ir.DefaultApply(g, t.ty, args)
}

// boolVal is a boolean constant.
type boolVal struct {
	b  bool
	ty ir.TypeId
}

// Bool returns the canonical boolean constant.
func Bool(g *ir.Graph, b bool) ir.ValId {
	return g.Intern(&boolVal{b: b, ty: BoolType(g)})
}

// AsBool extracts a boolean constant's payload; ok is false for any
// other value, including symbolic values of boolean type.
func AsBool(v ir.ValId) (b, ok bool) {
	n, ok := v.Node().(*boolVal)
	if !ok {
		return false, false
	}
	return n.b, true
}

func (v *boolVal) Kind() ir.Kind { return KindBool }
func (v *boolVal) Type() ir.TypeId { return v.ty }
func (v *boolVal) Region() ir.Region { return ir.Region{} }
func (v *boolVal) NumDeps() int { return 0 }
func (v *boolVal) Dep(i int) ir.ValId { panic("bool has no dependencies") }

func (v *boolVal) Hash() uint64 {
	var w uint64
	if v.b {
		w = 1
	}
	return ir.HashWords(KindBool, w)
}

func (v *boolVal) Equal(other ir.Node) bool {
	o, ok := other.(*boolVal)
	return ok && o.b == v.b
}

func (v *boolVal) String() string { return fmt.Sprintf("%t", v.b) }

func (v *boolVal) Substitute(ctx *ir.EvalCtx) (ir.ValId, error) {
	return Bool(ctx.Graph(), v.b), nil
}

func (v *boolVal) Apply(g *ir.Graph, args []ir.ValId) (ir.Application, error) {
	return ir.DefaultApply(g, v.ty, args)
}
