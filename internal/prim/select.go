package prim

import (
	"fmt"

	"github.com/cascade-ir/cascade/internal/ir"
)

// sel is a two-branch selector over a boolean condition: applied to
// true it yields the high branch, to false the low branch. Its type is
// the pi from bool to the shared branch type.
type sel struct {
	low    ir.ValId
	high   ir.ValId
	ty     ir.TypeId
	region ir.Region
}

// Select returns the canonical selector between high (chosen on true)
// and low (chosen on false). Both branches must have the same type. A
// selector with identical branches normalizes to the constant lambda
// over bool: the two encodings are extensionally equal, so only one may
// be canonical.
func Select(g *ir.Graph, high, low ir.ValId) (ir.ValId, error) {
	if high.Type() != low.Type() {
		return ir.ValId{}, ir.TypeMismatch(high.Type(), low.Type())
	}
	region, err := ir.LeastCommon(high.Region(), low.Region())
	if err != nil {
		return ir.ValId{}, err
	}
	if high == low {
		return constantOverBool(g, high, region)
	}
	boolTy := BoolType(g)
	def, err := g.NewRegion([]ir.TypeId{boolTy}, region)
	boolTy.Release()
	if err != nil {
		return ir.ValId{}, err
	}
	ty, err := g.Pi(high.Type(), def)
	def.Release()
	if err != nil {
		return ir.ValId{}, err
	}
	n := &sel{
		low:    low.Retain(),
		high:   high.Retain(),
		ty:     ty,
		region: region.Retain(),
	}
	return g.Intern(n), nil
}

// constantOverBool builds the lambda that ignores its boolean argument
// and returns v.
func constantOverBool(g *ir.Graph, v ir.ValId, parent ir.Region) (ir.ValId, error) {
	boolTy := BoolType(g)
	def, err := g.NewRegion([]ir.TypeId{boolTy}, parent)
	boolTy.Release()
	if err != nil {
		return ir.ValId{}, err
	}
	lam, err := g.Lambda(v, def)
	def.Release()
	return lam, err
}

// High returns the branch chosen on true.
func (s *sel) High() ir.ValId { return s.high }

// Low returns the branch chosen on false.
func (s *sel) Low() ir.ValId { return s.low }

func (s *sel) Kind() ir.Kind { return KindSelect }
func (s *sel) Type() ir.TypeId { return s.ty }
func (s *sel) Region() ir.Region { return s.region }
func (s *sel) NumDeps() int { return 2 }

func (s *sel) Dep(i int) ir.ValId {
	if i == 0 {
		return s.low
	}
	return s.high
}

func (s *sel) Hash() uint64 {
	return ir.HashWords(KindSelect, s.low.ID(), s.high.ID())
}

func (s *sel) Equal(other ir.Node) bool {
	o, ok := other.(*sel)
	return ok && o.low == s.low && o.high == s.high
}

func (s *sel) String() string {
	return fmt.Sprintf("select(%s | %s)", s.high, s.low)
}

func (s *sel) Substitute(ctx *ir.EvalCtx) (ir.ValId, error) {
	high, err := ctx.Evaluate(s.high)
	if err != nil {
		return ir.ValId{}, err
	}
	low, err := ctx.Evaluate(s.low)
	if err != nil {
		high.Release()
		return ir.ValId{}, err
	}
	out, err := Select(ctx.Graph(), high, low)
	high.Release()
	low.Release()
	return out, err
}

// Apply branches on a constant condition; a symbolic boolean condition
// leaves the selection stuck.
func (s *sel) Apply(g *ir.Graph, args []ir.ValId) (ir.Application, error) {
	pi := s.ty.Node().(*ir.Pi)
	if args[0].Type() != pi.ParamType(0) {
		return ir.Application{}, ir.TypeMismatch(pi.ParamType(0), args[0].Type())
	}
	if b, ok := AsBool(args[0]); ok {
		if b {
			return ir.Application{Value: s.high.Retain(), Rest: args[1:]}, nil
		}
		return ir.Application{Value: s.low.Retain(), Rest: args[1:]}, nil
	}
	return ir.DefaultApply(g, s.ty, args)
}
