package ir

import (
	"fmt"
	"strings"
)

// Walk visits every value reachable from v exactly once in dependency
// postorder: a value's type and dependencies are visited before the
// value itself. The order is deterministic for a given graph shape.
func Walk(v ValId, visit func(ValId)) {
	if v.IsNil() {
		return
	}
	type item struct {
		v        ValId
		expanded bool
	}
	visited := make(map[ValId]bool)
	stack := []item{{v: v}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.expanded {
			visit(it.v)
			continue
		}
		if visited[it.v] {
			continue
		}
		visited[it.v] = true
		stack = append(stack, item{v: it.v, expanded: true})
		for i := it.v.NumDeps() - 1; i >= 0; i-- {
			if d := it.v.Dep(i); !d.IsNil() {
				stack = append(stack, item{v: d})
			}
		}
		if ty := it.v.Type(); !ty.IsNil() {
			stack = append(stack, item{v: ty.ValId})
		}
	}
}

// Dump renders the graph reachable from v as one line per value in
// dependency postorder, with stable local names. Leaves print their
// payload summary; interior values print their kind, the local names
// of their dependencies, the local name of their type, and their
// placement depth. The last line is v itself.
func Dump(v ValId) string {
	names := make(map[ValId]int)
	var b strings.Builder
	Walk(v, func(x ValId) {
		id := len(names)
		names[x] = id
		label := string(x.Kind())
		if x.NumDeps() == 0 {
			label = x.String()
		}
		fmt.Fprintf(&b, "%%%d = %s", id, label)
		if n := x.NumDeps(); n > 0 {
			b.WriteString(" [")
			for i := 0; i < n; i++ {
				if i > 0 {
					b.WriteString(" ")
				}
				fmt.Fprintf(&b, "%%%d", names[x.Dep(i)])
			}
			b.WriteString("]")
		}
		if ty := x.Type(); !ty.IsNil() {
			fmt.Fprintf(&b, " : %%%d", names[ty.ValId])
		}
		fmt.Fprintf(&b, " @%d\n", x.Depth())
	})
	return b.String()
}
