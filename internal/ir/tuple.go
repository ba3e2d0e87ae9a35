package ir

import (
	"fmt"
	"strings"
)

// Tuple is a finite ordered collection of values. Its type is the
// Product of the element types, and applying a tuple to an index
// projects the element at that index.
type Tuple struct {
	elems  []ValId
	ty     TypeId
	region Region
}

// Tuple canonically constructs a tuple of the given elements, placed at
// the join of the element regions.
func (g *Graph) Tuple(elems ...ValId) (ValId, error) {
	tys := make([]TypeId, len(elems))
	for i, e := range elems {
		tys[i] = e.Type()
	}
	ty, err := g.Product(tys...)
	if err != nil {
		return ValId{}, err
	}
	region, err := joinRegions(elems, ty.Region())
	if err != nil {
		ty.Release()
		return ValId{}, err
	}
	es := make([]ValId, len(elems))
	copy(es, elems)
	for _, e := range es {
		e.Retain()
	}
	n := &Tuple{elems: es, ty: ty, region: region.Retain()}
	return g.Intern(n), nil
}

// Unit returns the canonical empty tuple.
func (g *Graph) Unit() ValId {
	v, err := g.Tuple()
	if err != nil {
		panic(fmt.Sprintf("constructing the unit value: %v", err))
	}
	return v
}

// Len returns the tuple's element count.
func (t *Tuple) Len() int { return len(t.elems) }

func (t *Tuple) Kind() Kind { return KindTuple }
func (t *Tuple) Type() TypeId { return t.ty }
func (t *Tuple) Region() Region { return t.region }
func (t *Tuple) NumDeps() int { return len(t.elems) }
func (t *Tuple) Dep(i int) ValId { return t.elems[i] }

func (t *Tuple) Hash() uint64 {
	return HashWords(KindTuple, handleIDs(t.elems)...)
}

func (t *Tuple) Equal(other Node) bool {
	o, ok := other.(*Tuple)
	return ok && sameHandles(o.elems, t.elems)
}

func (t *Tuple) String() string {
	var b strings.Builder
	b.WriteString("tuple(")
	for i, e := range t.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteString(")")
	return b.String()
}

func (t *Tuple) Substitute(ctx *EvalCtx) (ValId, error) {
	elems, err := ctx.evaluateAll(t.elems)
	if err != nil {
		return ValId{}, err
	}
	defer releaseAll(elems)
	return ctx.g.Tuple(elems...)
}

// Apply projects an element. A constant index of matching cardinality
// selects it directly; a symbolic index is accepted only when the tuple
// is uniformly typed, in which case the whole application is stuck at
// the type of the shared element applied to the remaining arguments.
func (t *Tuple) Apply(g *Graph, args []ValId) (Application, error) {
	if len(t.elems) == 0 {
		return Application{}, Errorf(ErrCodeNotAFunction, "cannot project the empty tuple")
	}
	if ixn, ok := args[0].Node().(TupleIndex); ok {
		card, ix := ixn.IndexInto()
		if card != uint64(len(t.elems)) {
			return Application{}, Errorf(ErrCodeTypeMismatch,
				"cannot project a %d-tuple with an index of cardinality %d", len(t.elems), card)
		}
		return Application{Value: t.elems[ix].Retain(), Rest: args[1:]}, nil
	}
	ixTy, ok := args[0].Type().Node().(IndexType)
	if !ok || ixTy.Cardinality() != uint64(len(t.elems)) {
		return Application{}, Errorf(ErrCodeTypeMismatch,
			"cannot project a %d-tuple with %s", len(t.elems), args[0])
	}
	elemTy := t.elems[0].Type()
	for _, e := range t.elems[1:] {
		if e.Type() != elemTy {
			return Application{}, Errorf(ErrCodeUnimplemented,
				"symbolic projection of a non-uniformly-typed tuple")
		}
	}
	ty, err := g.ApplyType(elemTy, args[1:])
	if err != nil {
		return Application{}, err
	}
	return Application{Ty: ty}, nil
}

// Product is a finite ordered collection of types: the type of tuples.
// Applying a product to an index projects the element type, so products
// double as non-dependent type families over finite domains.
type Product struct {
	elems  []TypeId
	ty     TypeId
	region Region
}

// Product canonically constructs the product of the given types.
func (g *Graph) Product(tys ...TypeId) (TypeId, error) {
	var region Region
	var err error
	for _, ty := range tys {
		if region, err = LeastCommon(region, ty.Region()); err != nil {
			return TypeId{}, err
		}
	}
	es := make([]TypeId, len(tys))
	copy(es, tys)
	for _, ty := range es {
		ty.Retain()
	}
	n := &Product{elems: es, ty: g.Universe(0), region: region.Retain()}
	return TypeId{g.Intern(n)}, nil
}

// UnitType returns the canonical empty product, the type of the unit value.
func (g *Graph) UnitType() TypeId {
	ty, err := g.Product()
	if err != nil {
		panic(fmt.Sprintf("constructing the unit type: %v", err))
	}
	return ty
}

// Len returns the product's element count.
func (p *Product) Len() int { return len(p.elems) }

// ElemType returns the i-th element type.
func (p *Product) ElemType(i int) TypeId { return p.elems[i] }

func (p *Product) Kind() Kind { return KindProduct }
func (p *Product) Type() TypeId { return p.ty }
func (p *Product) Region() Region { return p.region }
func (p *Product) NumDeps() int { return len(p.elems) }
func (p *Product) Dep(i int) ValId { return p.elems[i].ValId }

func (p *Product) Hash() uint64 {
	words := make([]uint64, len(p.elems))
	for i, ty := range p.elems {
		words[i] = ty.ID()
	}
	return HashWords(KindProduct, words...)
}

func (p *Product) Equal(other Node) bool {
	o, ok := other.(*Product)
	if !ok || len(o.elems) != len(p.elems) {
		return false
	}
	for i := range p.elems {
		if o.elems[i] != p.elems[i] {
			return false
		}
	}
	return true
}

func (p *Product) String() string {
	var b strings.Builder
	b.WriteString("product(")
	for i, ty := range p.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(ty.String())
	}
	b.WriteString(")")
	return b.String()
}

func (p *Product) Substitute(ctx *EvalCtx) (ValId, error) {
	vals := make([]ValId, len(p.elems))
	for i, ty := range p.elems {
		vals[i] = ty.ValId
	}
	elems, err := ctx.evaluateAll(vals)
	if err != nil {
		return ValId{}, err
	}
	defer releaseAll(elems)
	tys := make([]TypeId, len(elems))
	for i, e := range elems {
		ty, err := e.AsType()
		if err != nil {
			return ValId{}, err
		}
		tys[i] = ty
	}
	ty, err := ctx.g.Product(tys...)
	if err != nil {
		return ValId{}, err
	}
	return ty.ValId, nil
}

func (p *Product) Apply(g *Graph, args []ValId) (Application, error) {
	if len(p.elems) == 0 {
		return Application{}, Errorf(ErrCodeNotAFunction, "cannot project the empty product")
	}
	if ixn, ok := args[0].Node().(TupleIndex); ok {
		card, ix := ixn.IndexInto()
		if card != uint64(len(p.elems)) {
			return Application{}, Errorf(ErrCodeTypeMismatch,
				"cannot project a %d-product with an index of cardinality %d", len(p.elems), card)
		}
		return Application{Value: p.elems[ix].ValId.Retain(), Rest: args[1:]}, nil
	}
	ixTy, ok := args[0].Type().Node().(IndexType)
	if !ok || ixTy.Cardinality() != uint64(len(p.elems)) {
		return Application{}, Errorf(ErrCodeTypeMismatch,
			"cannot project a %d-product with %s", len(p.elems), args[0])
	}
	for _, ty := range p.elems[1:] {
		if ty != p.elems[0] {
			return Application{}, Errorf(ErrCodeUnimplemented,
				"symbolic projection of a non-constant product")
		}
	}
	return Application{Value: p.elems[0].ValId.Retain(), Rest: args[1:]}, nil
}
