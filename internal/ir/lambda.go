package ir

import (
	"fmt"
	"sort"
)

// Lambda abstracts a result value over the parameters of a defining
// region. The lambda itself is placed at the join of its boundary
// dependencies (the values below the defining region that the body
// reaches), so a closed lambda is a global constant regardless of how
// deep its body is.
type Lambda struct {
	result ValId
	ty     TypeId
	deps   []ValId
	region Region
}

// Lambda canonically constructs the abstraction of result over
// defRegion's parameters. The result must be in scope at the defining
// region: placed in it or in one of its ancestors.
func (g *Graph) Lambda(result ValId, defRegion Region) (ValId, error) {
	if defRegion.IsNull() {
		return ValId{}, NewError(ErrCodeNullRegion, "a lambda needs a defining region")
	}
	switch result.Region().Compare(defRegion) {
	case Equal, Ancestor:
		// In scope.
	default:
		return ValId{}, Errorf(ErrCodeIncomparableRegions,
			"lambda result %s is not in scope at the defining region", result)
	}
	boundary := boundaryDeps(result, defRegion.Depth())
	region, err := joinRegions(boundary)
	if err != nil {
		return ValId{}, err
	}
	pi, err := g.Pi(result.Type(), defRegion)
	if err != nil {
		return ValId{}, err
	}
	deps := make([]ValId, 0, len(boundary)+1)
	deps = append(deps, result)
	deps = append(deps, boundary...)
	for _, d := range deps {
		d.Retain()
	}
	n := &Lambda{result: result, ty: TypeId{pi.ValId}, deps: deps, region: region.Retain()}
	return g.Intern(n), nil
}

// Identity returns the lambda that maps a value of the given type to
// itself.
func (g *Graph) Identity(ty TypeId) (ValId, error) {
	region, err := g.NewRegion([]TypeId{ty}, ty.Region())
	if err != nil {
		return ValId{}, err
	}
	param, err := g.Param(region, 0)
	if err != nil {
		region.Release()
		return ValId{}, err
	}
	lam, err := g.Lambda(param, region)
	param.Release()
	region.Release()
	return lam, err
}

// Result returns the lambda's body.
func (l *Lambda) Result() ValId { return l.result }

// DefRegion returns the region whose parameters the lambda binds.
func (l *Lambda) DefRegion() Region { return l.ty.Node().(*Pi).Def() }

func (l *Lambda) Kind() Kind { return KindLambda }
func (l *Lambda) Type() TypeId { return l.ty }
func (l *Lambda) Region() Region { return l.region }
func (l *Lambda) NumDeps() int { return len(l.deps) }
func (l *Lambda) Dep(i int) ValId { return l.deps[i] }

func (l *Lambda) Hash() uint64 {
	return HashWords(KindLambda, l.result.ID(), l.DefRegion().ID())
}

func (l *Lambda) Equal(other Node) bool {
	o, ok := other.(*Lambda)
	return ok && o.result == l.result && o.DefRegion().ref == l.DefRegion().ref
}

func (l *Lambda) String() string {
	return fmt.Sprintf("lambda(params=%d, depth=%d)", l.DefRegion().NumParams(), l.DefRegion().Depth())
}

// Substitute rebuilds the lambda under the outer bindings: the defining
// region is re-created with substituted parameter types under an
// adjusted parent, the old parameters are mapped to the new ones, and
// the body is evaluated in that extended scope.
func (l *Lambda) Substitute(ctx *EvalCtx) (ValId, error) {
	body, def, err := substituteBinder(ctx, l.DefRegion(), l.result)
	if err != nil {
		return ValId{}, err
	}
	out, err := ctx.g.Lambda(body, def)
	body.Release()
	def.Release()
	return out, err
}

// Apply binds the first NumParams arguments in the defining region and
// evaluates the body; leftover arguments are returned for the next
// currying step. With fewer arguments than parameters the application
// is symbolic at the partially-applied pi type.
func (l *Lambda) Apply(g *Graph, args []ValId) (Application, error) {
	def := l.DefRegion()
	n := def.NumParams()
	if len(args) < n {
		ty, err := g.ApplyType(l.ty, args)
		if err != nil {
			return Application{}, err
		}
		return Application{Ty: ty}, nil
	}
	ctx := g.NewEvalCtx()
	if err := ctx.PushRegion(def, args[:n]); err != nil {
		return Application{}, err
	}
	out, err := ctx.Evaluate(l.result)
	ctx.Pop()
	if err != nil {
		return Application{}, err
	}
	return Application{Value: out, Rest: args[n:]}, nil
}

// Pi is the type of lambdas: a result type abstracted over a defining
// region's parameters. The result type may depend on the parameters,
// so application of a pi to argument values yields the instantiated
// result type.
type Pi struct {
	result TypeId
	def    Region
	ty     TypeId
	deps   []ValId
	region Region
}

// Pi canonically constructs the function type over defRegion's
// parameters with the given result type.
func (g *Graph) Pi(result TypeId, defRegion Region) (TypeId, error) {
	if defRegion.IsNull() {
		return TypeId{}, NewError(ErrCodeNullRegion, "a pi type needs a defining region")
	}
	switch result.Region().Compare(defRegion) {
	case Equal, Ancestor:
		// In scope.
	default:
		return TypeId{}, Errorf(ErrCodeIncomparableRegions,
			"pi result type %s is not in scope at the defining region", result)
	}
	boundary := boundaryDeps(result.ValId, defRegion.Depth())
	region, err := joinRegions(boundary)
	if err != nil {
		return TypeId{}, err
	}
	deps := make([]ValId, 0, len(boundary)+1)
	deps = append(deps, result.ValId)
	deps = append(deps, boundary...)
	for _, d := range deps {
		d.Retain()
	}
	n := &Pi{
		result: result,
		def:    defRegion.Retain(),
		ty:     g.Universe(0),
		deps:   deps,
		region: region.Retain(),
	}
	return TypeId{g.Intern(n)}, nil
}

// Result returns the pi's result type.
func (p *Pi) Result() TypeId { return p.result }

// Def returns the region whose parameters the pi abstracts over.
func (p *Pi) Def() Region { return p.def }

// NumParams returns the pi's parameter count.
func (p *Pi) NumParams() int { return p.def.NumParams() }

// ParamType returns the declared type of the i-th parameter.
func (p *Pi) ParamType(i int) TypeId { return p.def.ParamType(i) }

func (p *Pi) Kind() Kind { return KindPi }
func (p *Pi) Type() TypeId { return p.ty }
func (p *Pi) Region() Region { return p.region }
func (p *Pi) NumDeps() int { return len(p.deps) }
func (p *Pi) Dep(i int) ValId { return p.deps[i] }

// releaseExtra drops the holder on the defining region, which is not
// covered by the dependency list.
func (p *Pi) releaseExtra() { p.def.Release() }

func (p *Pi) Hash() uint64 {
	return HashWords(KindPi, p.result.ID(), p.def.ID())
}

func (p *Pi) Equal(other Node) bool {
	o, ok := other.(*Pi)
	return ok && o.result == p.result && o.def.ref == p.def.ref
}

func (p *Pi) String() string {
	return fmt.Sprintf("pi(params=%d, depth=%d)", p.def.NumParams(), p.def.Depth())
}

func (p *Pi) Substitute(ctx *EvalCtx) (ValId, error) {
	resVal, def, err := substituteBinder(ctx, p.def, p.result.ValId)
	if err != nil {
		return ValId{}, err
	}
	res, err := resVal.AsType()
	if err != nil {
		resVal.Release()
		def.Release()
		return ValId{}, err
	}
	out, err := ctx.g.Pi(res, def)
	resVal.Release()
	def.Release()
	if err != nil {
		return ValId{}, err
	}
	return out.ValId, nil
}

func (p *Pi) Apply(g *Graph, args []ValId) (Application, error) {
	return Application{}, Errorf(ErrCodeNotAFunction, "cannot apply %s; only values of pi type are callable", p)
}

// substituteBinder rebuilds a binder's defining region under the
// context's bindings and evaluates its body in the rebuilt scope: the
// parent is re-anchored below the context's minimum depth, parameter
// types are substituted, and old parameters map to the corresponding
// new ones. Returns the substituted body and the new defining region,
// each carrying one holder owned by the caller.
func substituteBinder(ctx *EvalCtx, def Region, body ValId) (ValId, Region, error) {
	parent := def.Parent()
	if parent.Depth() >= ctx.minDepth() {
		parent = parent.ancestorAt(ctx.minDepth() - 1)
	}
	tys := make([]TypeId, def.NumParams())
	for i := range tys {
		tv, err := ctx.Evaluate(def.ParamType(i).ValId)
		if err != nil {
			releaseTypes(tys[:i])
			return ValId{}, Region{}, err
		}
		ty, err := tv.AsType()
		if err != nil {
			tv.Release()
			releaseTypes(tys[:i])
			return ValId{}, Region{}, err
		}
		tys[i] = ty
	}
	newDef, err := ctx.g.NewRegion(tys, parent)
	releaseTypes(tys)
	if err != nil {
		return ValId{}, Region{}, err
	}
	ctx.pushFrame(def, def.Depth())
	for i := 0; i < def.NumParams(); i++ {
		oldP, err := ctx.g.Param(def, i)
		if err == nil {
			var newP ValId
			newP, err = ctx.g.Param(newDef, i)
			if err == nil {
				ctx.bind(oldP, newP)
				newP.Release()
			} else {
				oldP.Release()
			}
		}
		if err != nil {
			ctx.Pop()
			newDef.Release()
			return ValId{}, Region{}, err
		}
	}
	out, err := ctx.Evaluate(body)
	ctx.Pop()
	if err != nil {
		newDef.Release()
		return ValId{}, Region{}, err
	}
	return out, newDef, nil
}

func releaseTypes(tys []TypeId) {
	for _, ty := range tys {
		ty.Release()
	}
}

// boundaryDeps collects the frontier of values strictly shallower than
// defDepth reachable from root, skipping global constants (they never
// affect placement). The result is sorted by canonical identity so
// dependency order is deterministic.
func boundaryDeps(root ValId, defDepth int) []ValId {
	visited := make(map[ValId]bool)
	var boundary []ValId
	stack := []ValId{root}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if v.IsNil() || visited[v] {
			continue
		}
		visited[v] = true
		if d := v.Depth(); d < defDepth {
			if d > 0 {
				boundary = append(boundary, v)
			}
			continue
		}
		for i := v.NumDeps() - 1; i >= 0; i-- {
			stack = append(stack, v.Dep(i))
		}
	}
	sort.Slice(boundary, func(i, j int) bool { return boundary[i].ID() < boundary[j].ID() })
	return boundary
}
