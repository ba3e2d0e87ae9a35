package ir

import "math"

// frame is one scope level of an evaluation: the bindings and memoized
// results accumulated under it, the region it bound (zero for the base
// frame), and the minimum depth at which values are still affected by
// any binding in scope. The frame owns one holder on every cache key
// and value and on its region, released together on Pop, so discarding
// a frame rolls the context back to exactly its pre-push state.
type frame struct {
	cache    map[ValId]ValId
	region   Region
	minDepth int
}

// EvalCtx is a substitution and evaluation context over one graph. It
// is a stack of frames; pushing a region with argument values starts a
// new scope, and popping discards everything computed under it. An
// EvalCtx is single-goroutine state: concurrent evaluations take one
// context each over the same graph.
type EvalCtx struct {
	g      *Graph
	frames []frame
}

// NewEvalCtx creates an evaluation context with an empty base frame.
// With no bindings the minimum depth is unbounded, so evaluation in the
// base frame returns every value untouched.
func (g *Graph) NewEvalCtx() *EvalCtx {
	return &EvalCtx{
		g:      g,
		frames: []frame{{cache: make(map[ValId]ValId), minDepth: math.MaxInt}},
	}
}

// Graph returns the graph this context evaluates over.
func (ctx *EvalCtx) Graph() *Graph { return ctx.g }

// ScopeDepth returns the number of pushed frames above the base frame.
func (ctx *EvalCtx) ScopeDepth() int { return len(ctx.frames) - 1 }

// MinDepth returns the minimum region depth at which values can be
// affected by the bindings currently in scope. Values placed strictly
// shallower evaluate to themselves.
func (ctx *EvalCtx) MinDepth() int { return ctx.minDepth() }

// CacheSize returns the total number of bindings and memoized results
// across all frames.
func (ctx *EvalCtx) CacheSize() int {
	n := 0
	for i := range ctx.frames {
		n += len(ctx.frames[i].cache)
	}
	return n
}

func (ctx *EvalCtx) minDepth() int {
	return ctx.frames[len(ctx.frames)-1].minDepth
}

func (ctx *EvalCtx) pushFrame(region Region, minDepth int) {
	if md := ctx.minDepth(); md < minDepth {
		minDepth = md
	}
	ctx.frames = append(ctx.frames, frame{
		cache:    make(map[ValId]ValId),
		region:   region.Retain(),
		minDepth: minDepth,
	})
}

// PushRegion opens a scope binding the parameters of region to args, in
// order. Each argument is checked against the parameter's declared type
// evaluated under the bindings accumulated so far, so later parameters
// may depend on earlier ones. Fewer arguments than parameters is
// permitted: unbound parameters stay symbolic until bound explicitly.
// On any failure the scope is discarded and the context is unchanged.
func (ctx *EvalCtx) PushRegion(region Region, args []ValId) error {
	if region.IsNull() {
		return NewError(ErrCodeNullRegion, "cannot bind arguments in the null region")
	}
	if len(args) > region.NumParams() {
		return Errorf(ErrCodeTooManyArgs,
			"%d arguments for a region with %d parameters", len(args), region.NumParams())
	}
	ctx.pushFrame(region, region.Depth())
	for i, arg := range args {
		if err := ctx.bindParam(region, i, arg); err != nil {
			ctx.Pop()
			return err
		}
	}
	return nil
}

func (ctx *EvalCtx) bindParam(region Region, ix int, arg ValId) error {
	param, err := ctx.g.Param(region, ix)
	if err != nil {
		return err
	}
	declared, err := ctx.Evaluate(region.ParamType(ix).ValId)
	if err != nil {
		param.Release()
		return err
	}
	expected, err := declared.AsType()
	if err != nil {
		param.Release()
		declared.Release()
		return err
	}
	if arg.Type() != expected {
		param.Release()
		declared.Release()
		return TypeMismatch(expected, arg.Type())
	}
	ctx.bind(param, arg)
	declared.Release()
	return nil
}

// bind records a substitution in the top frame. Ownership of the key
// handle transfers to the frame; the value is retained.
func (ctx *EvalCtx) bind(key, val ValId) {
	top := &ctx.frames[len(ctx.frames)-1]
	top.cache[key] = val.Retain()
}

// lookup finds a binding or memoized result, innermost frame first.
func (ctx *EvalCtx) lookup(v ValId) (ValId, bool) {
	for i := len(ctx.frames) - 1; i >= 0; i-- {
		if out, ok := ctx.frames[i].cache[v]; ok {
			return out, true
		}
	}
	return ValId{}, false
}

// isBoundRegion reports whether some frame in scope bound the region.
func (ctx *EvalCtx) isBoundRegion(r Region) bool {
	for i := len(ctx.frames) - 1; i >= 1; i-- {
		if ctx.frames[i].region.ref == r.ref {
			return true
		}
	}
	return false
}

// Pop discards the top frame, releasing everything it held. Results
// memoized under the frame are forgotten, so a failed or completed
// scope leaves no trace.
func (ctx *EvalCtx) Pop() {
	if len(ctx.frames) == 1 {
		panic("pop on a context with no pushed scope")
	}
	top := ctx.frames[len(ctx.frames)-1]
	for k, v := range top.cache {
		k.Release()
		v.Release()
	}
	top.region.Release()
	ctx.frames = ctx.frames[:len(ctx.frames)-1]
}

// Evaluate returns the value of v under the bindings in scope. Values
// placed strictly shallower than the minimum depth are returned as-is;
// everything else is rebuilt bottom-up with results memoized in the
// current frame. The returned handle carries one holder owned by the
// caller.
func (ctx *EvalCtx) Evaluate(v ValId) (ValId, error) {
	if v.IsNil() {
		return v, nil
	}
	if v.Depth() < ctx.minDepth() {
		return v.Retain(), nil
	}
	if out, ok := ctx.lookup(v); ok {
		return out.Retain(), nil
	}
	out, err := v.Node().Substitute(ctx)
	if err != nil {
		return ValId{}, err
	}
	top := &ctx.frames[len(ctx.frames)-1]
	top.cache[v.Retain()] = out.Retain()
	return out, nil
}

// evaluateAll evaluates a dependency list, releasing partial results on
// failure.
func (ctx *EvalCtx) evaluateAll(vals []ValId) ([]ValId, error) {
	out := make([]ValId, len(vals))
	for i, v := range vals {
		sub, err := ctx.Evaluate(v)
		if err != nil {
			releaseAll(out[:i])
			return nil, err
		}
		out[i] = sub
	}
	return out, nil
}

func releaseAll(vals []ValId) {
	for _, v := range vals {
		v.Release()
	}
}
