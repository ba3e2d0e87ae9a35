package ir

import "fmt"

// Universe is a type of types. Universes are stratified by level and
// classify themselves: their Type is the nil handle, which breaks the
// type-of-type regress without a distinguished top sort.
type Universe struct {
	level uint64
}

// Universe returns the canonical universe at the given level.
func (g *Graph) Universe(level uint64) TypeId {
	return TypeId{g.Intern(&Universe{level: level})}
}

// Level returns the universe's stratification level.
func (u *Universe) Level() uint64 { return u.level }

func (u *Universe) Kind() Kind { return KindUniverse }
func (u *Universe) Type() TypeId { return TypeId{} }
func (u *Universe) Region() Region { return Region{} }
func (u *Universe) NumDeps() int { return 0 }

func (u *Universe) Dep(i int) ValId {
	panic(fmt.Sprintf("universe has no dependencies (asked for %d)", i))
}

func (u *Universe) Hash() uint64 {
	return HashWords(KindUniverse, u.level)
}

func (u *Universe) Equal(other Node) bool {
	o, ok := other.(*Universe)
	return ok && o.level == u.level
}

func (u *Universe) String() string {
	return fmt.Sprintf("universe(%d)", u.level)
}

// Substitute is the identity: universes are global constants and can
// never depend on a bound parameter.
func (u *Universe) Substitute(ctx *EvalCtx) (ValId, error) {
	return ctx.g.Intern(&Universe{level: u.level}), nil
}

func (u *Universe) Apply(g *Graph, args []ValId) (Application, error) {
	return Application{}, Errorf(ErrCodeNotAFunction, "cannot apply %s", u)
}
