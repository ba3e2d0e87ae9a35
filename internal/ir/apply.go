package ir

// Application is the outcome of one application step. A successful
// step carries the resulting value and the arguments it did not
// consume. A symbolic step carries no value, only the type of the head
// applied to every remaining argument; symbolic steps never consume
// arguments partially, so Rest stays empty and the stuck form retains
// the whole argument list.
type Application struct {
	// Value is the step's result; nil when the step is symbolic.
	Value ValId

	// Ty is the stuck application's type; set only on symbolic steps.
	Ty TypeId

	// Rest holds the unconsumed arguments of a successful step.
	Rest []ValId
}

// Symbolic reports whether the step produced no value.
func (a Application) Symbolic() bool { return a.Value.IsNil() }

// Apply evaluates f applied to args, currying through intermediate
// values until every argument is consumed. A step that cannot reduce
// reports a symbolic result and the whole application is materialized
// as a stuck sexpr at the reported type. Applying to no arguments is
// the identity. The returned handle carries one holder owned by the
// caller.
func (g *Graph) Apply(f ValId, args ...ValId) (ValId, error) {
	cur := f.Retain()
	rest := args
	for len(rest) > 0 {
		app, err := cur.Node().Apply(g, rest)
		if err != nil {
			cur.Release()
			if cur != f && IsCode(err, ErrCodeNotAFunction) {
				// Arguments survived past the last function in the chain.
				return ValId{}, Errorf(ErrCodeTooManyArgs,
					"%d arguments left over applying %s: %v", len(rest), f, err)
			}
			return ValId{}, err
		}
		if app.Symbolic() {
			out, err := g.stuck(cur, rest, app.Ty)
			cur.Release()
			app.Ty.Release()
			return out, err
		}
		if app.Value == cur && sameHandles(app.Rest, rest) {
			app.Value.Release()
			cur.Release()
			return ValId{}, Errorf(ErrCodeTooManyArgs,
				"application of %s made no progress with %d arguments left", f, len(rest))
		}
		cur.Release()
		cur, rest = app.Value, app.Rest
	}
	return cur, nil
}

// DefaultApply is the application behavior of non-function values: the
// step is symbolic, typed by applying the value's type to the argument
// list. Node kinds with no reduction rule of their own delegate here.
func DefaultApply(g *Graph, ty TypeId, args []ValId) (Application, error) {
	resTy, err := g.ApplyType(ty, args)
	if err != nil {
		return Application{}, err
	}
	return Application{Ty: resTy}, nil
}

// ApplyType computes the type of applying a value of type ty to args,
// instantiating dependent results and currying through nested pi
// types. With fewer arguments than one pi binds, the result is the
// partially-applied pi over the remaining parameters.
func (g *Graph) ApplyType(ty TypeId, args []ValId) (TypeId, error) {
	return g.applyPiType(ty, args, false)
}

func (g *Graph) applyPiType(ty TypeId, args []ValId, curried bool) (TypeId, error) {
	if len(args) == 0 {
		return TypeId{ty.Retain()}, nil
	}
	pi, ok := ty.Node().(*Pi)
	if !ok {
		if curried {
			return TypeId{}, Errorf(ErrCodeTooManyArgs,
				"%d arguments left over after exhausting a function of type %s", len(args), ty)
		}
		return TypeId{}, Errorf(ErrCodeNotAFunction, "cannot apply a value of type %s", ty)
	}
	n := pi.def.NumParams()
	if len(args) < n {
		return g.partialPi(pi, args)
	}
	ctx := g.NewEvalCtx()
	if err := ctx.PushRegion(pi.def, args[:n]); err != nil {
		return TypeId{}, err
	}
	resVal, err := ctx.Evaluate(pi.result.ValId)
	ctx.Pop()
	if err != nil {
		return TypeId{}, err
	}
	res, err := resVal.AsType()
	if err != nil {
		resVal.Release()
		return TypeId{}, err
	}
	out, err := g.applyPiType(res, args[n:], true)
	res.Release()
	return out, err
}

// partialPi instantiates the first len(args) parameters of pi and
// abstracts the result over a fresh region binding the rest. The new
// region's parent is the join of the pi's own region with the argument
// regions, so the partial type is placed where its captures live.
func (g *Graph) partialPi(pi *Pi, args []ValId) (TypeId, error) {
	ctx := g.NewEvalCtx()
	if err := ctx.PushRegion(pi.def, args); err != nil {
		return TypeId{}, err
	}
	k := len(args)
	n := pi.def.NumParams()
	restTys := make([]TypeId, 0, n-k)
	fail := func(err error) (TypeId, error) {
		ctx.Pop()
		releaseTypes(restTys)
		return TypeId{}, err
	}
	for i := k; i < n; i++ {
		tv, err := ctx.Evaluate(pi.def.ParamType(i).ValId)
		if err != nil {
			return fail(err)
		}
		t, err := tv.AsType()
		if err != nil {
			tv.Release()
			return fail(err)
		}
		restTys = append(restTys, t)
	}
	parent, err := joinRegions(args, pi.region)
	if err != nil {
		return fail(err)
	}
	newDef, err := g.NewRegion(restTys, parent)
	if err != nil {
		return fail(err)
	}
	for i := k; i < n; i++ {
		oldP, err := g.Param(pi.def, i)
		if err == nil {
			var newP ValId
			newP, err = g.Param(newDef, i-k)
			if err == nil {
				ctx.bind(oldP, newP)
				newP.Release()
			} else {
				oldP.Release()
			}
		}
		if err != nil {
			newDef.Release()
			return fail(err)
		}
	}
	resVal, err := ctx.Evaluate(pi.result.ValId)
	ctx.Pop()
	releaseTypes(restTys)
	if err != nil {
		newDef.Release()
		return TypeId{}, err
	}
	res, err := resVal.AsType()
	if err != nil {
		resVal.Release()
		newDef.Release()
		return TypeId{}, err
	}
	out, err := g.Pi(res, newDef)
	resVal.Release()
	newDef.Release()
	return out, err
}
