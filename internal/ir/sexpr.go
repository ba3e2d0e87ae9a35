package ir

import "strings"

// Sexpr is a stuck application: a head applied to arguments it could
// not consume, held in symbolic form at its computed result type. Sexprs
// are produced only by Graph.Apply, never constructed directly, so an
// interned sexpr is always in head-normal form with a non-empty
// argument list.
type Sexpr struct {
	elems  []ValId
	ty     TypeId
	region Region
}

// stuck materializes a symbolic application of head to args at the
// given result type.
func (g *Graph) stuck(head ValId, args []ValId, ty TypeId) (ValId, error) {
	elems := make([]ValId, 0, len(args)+1)
	elems = append(elems, head)
	elems = append(elems, args...)
	region, err := joinRegions(elems, ty.Region())
	if err != nil {
		return ValId{}, err
	}
	for _, e := range elems {
		e.Retain()
	}
	n := &Sexpr{elems: elems, ty: TypeId{ty.Retain()}, region: region.Retain()}
	return g.Intern(n), nil
}

// Head returns the applied value.
func (s *Sexpr) Head() ValId { return s.elems[0] }

// NumArgs returns the number of retained arguments.
func (s *Sexpr) NumArgs() int { return len(s.elems) - 1 }

// Arg returns the i-th retained argument.
func (s *Sexpr) Arg(i int) ValId { return s.elems[i+1] }

func (s *Sexpr) Kind() Kind { return KindSexpr }
func (s *Sexpr) Type() TypeId { return s.ty }
func (s *Sexpr) Region() Region { return s.region }
func (s *Sexpr) NumDeps() int { return len(s.elems) }
func (s *Sexpr) Dep(i int) ValId { return s.elems[i] }

func (s *Sexpr) Hash() uint64 {
	return HashWords(KindSexpr, handleIDs(s.elems)...)
}

func (s *Sexpr) Equal(other Node) bool {
	o, ok := other.(*Sexpr)
	return ok && sameHandles(o.elems, s.elems)
}

func (s *Sexpr) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, e := range s.elems {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(e.String())
	}
	b.WriteString(")")
	return b.String()
}

// Substitute re-applies the substituted head to the substituted
// arguments. The application may now make progress: substitution is
// exactly what unsticks a sexpr whose head was blocked on a parameter.
func (s *Sexpr) Substitute(ctx *EvalCtx) (ValId, error) {
	elems, err := ctx.evaluateAll(s.elems)
	if err != nil {
		return ValId{}, err
	}
	defer releaseAll(elems)
	return ctx.g.Apply(elems[0], elems[1:]...)
}

func (s *Sexpr) Apply(g *Graph, args []ValId) (Application, error) {
	return DefaultApply(g, s.ty, args)
}
