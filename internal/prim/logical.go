package prim

import (
	"fmt"

	"github.com/cascade-ir/cascade/internal/ir"
)

// MaxLogicalArity bounds truth-table operators: 2^6 = 64 rows fit one
// table word.
const MaxLogicalArity = 6

// logical is an n-ary boolean operator defined by its truth table. Row
// i of the table is the result for the argument assignment whose j-th
// bit is the j-th argument, so the first argument applied is bit 0.
// Partial application with a constant folds the table in half.
type logical struct {
	arity int
	table uint64
	ty    ir.TypeId
}

// Logical returns the canonical boolean operator with the given arity
// and truth table. The table must fit 2^arity rows.
func Logical(g *ir.Graph, arity int, table uint64) (ir.ValId, error) {
	if arity < 1 || arity > MaxLogicalArity {
		return ir.ValId{}, ir.Errorf(ir.ErrCodeParamOutOfRange,
			"logical operator arity %d out of range [1, %d]", arity, MaxLogicalArity)
	}
	if rows := uint(1) << arity; table>>rows != 0 {
		return ir.ValId{}, ir.Errorf(ir.ErrCodeParamOutOfRange,
			"truth table %#x has more than %d rows", table, 1<<arity)
	}
	boolTy := BoolType(g)
	paramTys := make([]ir.TypeId, arity)
	for i := range paramTys {
		paramTys[i] = boolTy
	}
	region, err := g.NewRegion(paramTys, ir.Region{})
	if err != nil {
		boolTy.Release()
		return ir.ValId{}, err
	}
	ty, err := g.Pi(boolTy, region)
	region.Release()
	boolTy.Release()
	if err != nil {
		return ir.ValId{}, err
	}
	return g.Intern(&logical{arity: arity, table: table, ty: ty}), nil
}

func mustLogical(g *ir.Graph, arity int, table uint64) ir.ValId {
	v, err := Logical(g, arity, table)
	if err != nil {
		panic(fmt.Sprintf("constructing logical operator: %v", err))
	}
	return v
}

// Named operators. Row index convention: for And, row 3 (both true) is
// the only 1 bit.
func Not(g *ir.Graph) ir.ValId { return mustLogical(g, 1, 0b01) }
func And(g *ir.Graph) ir.ValId { return mustLogical(g, 2, 0b1000) }
func Or(g *ir.Graph) ir.ValId { return mustLogical(g, 2, 0b1110) }
func Xor(g *ir.Graph) ir.ValId { return mustLogical(g, 2, 0b0110) }
func Iff(g *ir.Graph) ir.ValId { return mustLogical(g, 2, 0b1001) }
func Nand(g *ir.Graph) ir.ValId { return mustLogical(g, 2, 0b0111) }
func Nor(g *ir.Graph) ir.ValId { return mustLogical(g, 2, 0b0001) }

// Arity returns the operator's argument count, or 0 if v is not a
// logical operator.
func Arity(v ir.ValId) int {
	if n, ok := v.Node().(*logical); ok {
		return n.arity
	}
	return 0
}

func (l *logical) Kind() ir.Kind { return KindLogical }
func (l *logical) Type() ir.TypeId { return l.ty }
func (l *logical) Region() ir.Region { return ir.Region{} }
func (l *logical) NumDeps() int { return 0 }
func (l *logical) Dep(i int) ir.ValId { panic("logical operator has no dependencies") }

func (l *logical) Hash() uint64 {
	return ir.HashWords(KindLogical, uint64(l.arity), l.table)
}

func (l *logical) Equal(other ir.Node) bool {
	o, ok := other.(*logical)
	return ok && o.arity == l.arity && o.table == l.table
}

func (l *logical) String() string {
	return fmt.Sprintf("logical(%d/%#x)", l.arity, l.table)
}

func (l *logical) Substitute(ctx *ir.EvalCtx) (ir.ValId, error) {
	return Logical(ctx.Graph(), l.arity, l.table)
}

// Apply folds constant arguments into the table one at a time. A
// symbolic argument the table does not actually depend on folds too;
// any other symbolic argument leaves the whole application stuck.
func (l *logical) Apply(g *ir.Graph, args []ir.ValId) (ir.Application, error) {
	if len(args) > l.arity {
		return ir.Application{}, ir.Errorf(ir.ErrCodeTooManyArgs,
			"%d arguments for a logical operator of arity %d", len(args), l.arity)
	}
	pi := l.ty.Node().(*ir.Pi)
	boolTy := pi.ParamType(0)
	arity, table := l.arity, l.table
	for _, arg := range args {
		if arg.Type() != boolTy {
			return ir.Application{}, ir.TypeMismatch(boolTy, arg.Type())
		}
		if b, ok := AsBool(arg); ok {
			table = foldTable(table, arity, b)
			arity--
			continue
		}
		if half, ok := foldIgnored(table, arity); ok {
			table = half
			arity--
			continue
		}
		return ir.DefaultApply(g, l.ty, args)
	}
	if arity == 0 {
		return ir.Application{Value: Bool(g, table&1 == 1)}, nil
	}
	out, err := Logical(g, arity, table)
	if err != nil {
		return ir.Application{}, err
	}
	return ir.Application{Value: out}, nil
}

// foldTable specializes the first argument to b: new row j is old row
// (j<<1)|b.
func foldTable(table uint64, arity int, b bool) uint64 {
	var bv uint64
	if b {
		bv = 1
	}
	half := uint(1) << (arity - 1)
	var out uint64
	for j := uint(0); j < half; j++ {
		out |= (table >> ((uint64(j) << 1) | bv) & 1) << j
	}
	return out
}

// foldIgnored folds out the first argument if both of its settings give
// the same table.
func foldIgnored(table uint64, arity int) (uint64, bool) {
	lo := foldTable(table, arity, false)
	hi := foldTable(table, arity, true)
	if lo != hi {
		return 0, false
	}
	return lo, true
}
