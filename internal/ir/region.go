package ir

import (
	"fmt"

	"github.com/cascade-ir/cascade/internal/store"
)

// RegionData is the payload of one scope level: an ordered parameter
// type vector and a parent link. Depth is derived at construction and
// strictly increases along every parent chain, so the region tree is
// well-founded by construction and never mutated.
type RegionData struct {
	parent   Region
	paramTys []TypeId
	depth    int
}

// Region is a nullable canonical handle to a RegionData. The zero
// Region is the null (global) region at depth 0: the scope of all
// constants. Regions are hash-consed like values and compared by
// identity.
type Region struct {
	ref *store.Ref[*RegionData]
}

// IsNull reports whether this is the global region.
func (r Region) IsNull() bool { return r.ref == nil }

// ID returns the region's interner identity; 0 for the null region.
func (r Region) ID() uint64 {
	if r.ref == nil {
		return 0
	}
	return r.ref.ID()
}

// Depth returns the region's distance from the null region.
func (r Region) Depth() int {
	if r.ref == nil {
		return 0
	}
	return r.ref.Value().depth
}

// Parent returns the enclosing region; the null region is its own parent.
func (r Region) Parent() Region {
	if r.ref == nil {
		return Region{}
	}
	return r.ref.Value().parent
}

// NumParams returns the number of parameters the region binds.
func (r Region) NumParams() int {
	if r.ref == nil {
		return 0
	}
	return len(r.ref.Value().paramTys)
}

// ParamType returns the declared type of the i-th parameter.
func (r Region) ParamType(i int) TypeId {
	return r.ref.Value().paramTys[i]
}

func (r Region) Retain() Region {
	if r.ref != nil {
		r.ref.Retain()
	}
	return r
}

func (r Region) Release() {
	if r.ref != nil {
		r.ref.Release()
	}
}

// ancestorAt walks the parent chain up to the given depth.
// Requires depth <= r.Depth().
func (r Region) ancestorAt(depth int) Region {
	for r.Depth() > depth {
		r = r.Parent()
	}
	return r
}

// String renders the region as its parameter count and depth.
func (r Region) String() string {
	if r.IsNull() {
		return "region(null)"
	}
	return fmt.Sprintf("region(params=%d, depth=%d)", r.NumParams(), r.Depth())
}

// Order is the result of comparing two regions in the ancestor partial
// order induced by the region tree.
type Order int

const (
	// Incomparable regions lie on different branches of the tree.
	Incomparable Order = iota
	// Equal regions are the identical region.
	Equal
	// Ancestor: the receiver strictly encloses the argument.
	Ancestor
	// Descendant: the receiver is strictly enclosed by the argument.
	Descendant
)

// String returns the order name for diagnostics.
func (o Order) String() string {
	switch o {
	case Equal:
		return "equal"
	case Ancestor:
		return "ancestor"
	case Descendant:
		return "descendant"
	default:
		return "incomparable"
	}
}

// Compare places r relative to o. Two regions are comparable exactly
// when walking the deeper one's parent chain by the depth difference
// reaches the shallower one; anything else is Incomparable.
func (r Region) Compare(o Region) Order {
	if r.ref == o.ref {
		return Equal
	}
	rd, od := r.Depth(), o.Depth()
	switch {
	case rd == od:
		return Incomparable
	case rd < od:
		if o.ancestorAt(rd).ref == r.ref {
			return Ancestor
		}
		return Incomparable
	default:
		if r.ancestorAt(od).ref == o.ref {
			return Descendant
		}
		return Incomparable
	}
}

// LeastCommon returns the innermost region in which the values of both
// operands are in scope: the deeper of two comparable regions. The
// null region is the identity, so an all-constant dependency set joins
// to the global scope. Incomparable regions are a placement error.
func LeastCommon(a, b Region) (Region, error) {
	switch a.Compare(b) {
	case Equal, Descendant:
		return a, nil
	case Ancestor:
		return b, nil
	default:
		return Region{}, Errorf(ErrCodeIncomparableRegions,
			"regions at depths %d and %d are on different branches", a.Depth(), b.Depth())
	}
}

// joinRegions reduces LeastCommon over the placement regions of a
// dependency list, optionally seeded with extra regions (e.g. a cached
// type's region).
func joinRegions(deps []ValId, extra ...Region) (Region, error) {
	var acc Region
	var err error
	for _, r := range extra {
		if acc, err = LeastCommon(acc, r); err != nil {
			return Region{}, err
		}
	}
	for _, d := range deps {
		if acc, err = LeastCommon(acc, d.Region()); err != nil {
			return Region{}, err
		}
	}
	return acc, nil
}

func regionHash(d *RegionData) uint64 {
	words := make([]uint64, 0, len(d.paramTys)+1)
	words = append(words, d.parent.ID())
	for _, ty := range d.paramTys {
		words = append(words, ty.ID())
	}
	return HashWords("region", words...)
}

func regionEqual(a, b *RegionData) bool {
	if a.parent.ref != b.parent.ref || len(a.paramTys) != len(b.paramTys) {
		return false
	}
	for i := range a.paramTys {
		if a.paramTys[i] != b.paramTys[i] {
			return false
		}
	}
	return true
}

// NewRegion canonically constructs a region binding the given parameter
// types under parent. Every parameter type must already be in scope at
// the parent: its region must be ancestor-or-self of parent.
func (g *Graph) NewRegion(paramTys []TypeId, parent Region) (Region, error) {
	for i, ty := range paramTys {
		switch ty.Region().Compare(parent) {
		case Equal, Ancestor:
			// In scope.
		default:
			return Region{}, Errorf(ErrCodeIncomparableRegions,
				"parameter type %d (%s) is not in scope at the parent region", i, ty)
		}
	}
	tys := make([]TypeId, len(paramTys))
	copy(tys, paramTys)
	for _, ty := range tys {
		ty.Retain()
	}
	parent.Retain()
	data := &RegionData{parent: parent, paramTys: tys, depth: parent.Depth() + 1}
	return Region{g.regions.Intern(data)}, nil
}

// Parameter is a value bound by a specific region at a specific index.
// Its type is the region's declared type at that index, and its
// placement region is the binding region itself, not a join of
// dependencies (it has none).
type Parameter struct {
	region Region
	ix     int
	ty     TypeId
}

// Param returns the ix-th parameter of region as a canonical value,
// failing on the null region or an out-of-range index.
func (g *Graph) Param(region Region, ix int) (ValId, error) {
	if region.IsNull() {
		return ValId{}, NewError(ErrCodeNullRegion, "the null region binds no parameters")
	}
	if ix < 0 || ix >= region.NumParams() {
		return ValId{}, Errorf(ErrCodeParamOutOfRange,
			"parameter index %d out of range for region with %d parameters", ix, region.NumParams())
	}
	n := &Parameter{
		region: region.Retain(),
		ix:     ix,
		ty:     TypeId{region.ParamType(ix).Retain()},
	}
	return g.Intern(n), nil
}

// Ix returns the parameter's index within its binding region.
func (p *Parameter) Ix() int { return p.ix }

func (p *Parameter) Kind() Kind { return KindParameter }
func (p *Parameter) Type() TypeId { return p.ty }
func (p *Parameter) Region() Region { return p.region }
func (p *Parameter) NumDeps() int { return 0 }

func (p *Parameter) Dep(i int) ValId {
	panic(fmt.Sprintf("parameter #%d has no dependencies (asked for %d)", p.ix, i))
}

func (p *Parameter) Hash() uint64 {
	return HashWords(KindParameter, p.region.ID(), uint64(p.ix))
}

func (p *Parameter) Equal(other Node) bool {
	o, ok := other.(*Parameter)
	return ok && o.region.ref == p.region.ref && o.ix == p.ix
}

func (p *Parameter) String() string {
	return fmt.Sprintf("param(ix=%d, depth=%d)", p.ix, p.region.Depth())
}

// Substitute resolves the parameter against the context. A parameter of
// a bound region that is not in the cache was never given a value.
// Parameters of untouched regions (e.g. inside a nested binder whose
// region survived substitution unchanged) stand for themselves.
func (p *Parameter) Substitute(ctx *EvalCtx) (ValId, error) {
	if ctx.isBoundRegion(p.region) {
		return ValId{}, Errorf(ErrCodeUndefParam,
			"no substitution registered for parameter %d at depth %d", p.ix, p.region.Depth())
	}
	return ctx.g.Intern(&Parameter{
		region: p.region.Retain(),
		ix:     p.ix,
		ty:     TypeId{p.ty.Retain()},
	}), nil
}

func (p *Parameter) Apply(g *Graph, args []ValId) (Application, error) {
	return DefaultApply(g, p.ty, args)
}
