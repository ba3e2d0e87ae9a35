package ir

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Kind tags a node payload. The core kinds below are closed; leaf
// primitive packages register further kinds by implementing Node.
type Kind string

const (
	KindParameter Kind = "parameter"
	KindSexpr     Kind = "sexpr"
	KindTuple     Kind = "tuple"
	KindProduct   Kind = "product"
	KindLambda    Kind = "lambda"
	KindPi        Kind = "pi"
	KindUniverse  Kind = "universe"
)

// Node is the payload of a canonical handle: one arm of the tagged
// variant over node kinds. Payloads are immutable after construction
// and are only ever published through Graph interning.
//
// Apply is never called with an empty argument list; Graph.Apply
// short-circuits that case.
type Node interface {
	fmt.Stringer

	// Kind returns the node's variant tag.
	Kind() Kind

	// Type returns the node's cached type handle. Universes, which
	// classify themselves, return the nil TypeId.
	Type() TypeId

	// Region returns the region this node is placed in.
	Region() Region

	// NumDeps returns the number of immediate dependencies.
	NumDeps() int

	// Dep returns the i-th immediate dependency. The order is fixed
	// and deterministic; i must be in [0, NumDeps()).
	Dep(i int) ValId

	// Hash returns the structural hash used for interning. Two nodes
	// for which Equal holds must hash identically.
	Hash() uint64

	// Equal reports structural equality against another payload.
	// Because dependencies are canonical handles, structural equality
	// is handle identity on every component plus payload equality.
	Equal(other Node) bool

	// Substitute rebuilds this node in the given context, replacing
	// dependencies by their substitutions and re-canonicalizing
	// through the context's graph.
	Substitute(ctx *EvalCtx) (ValId, error)

	// Apply attempts to apply this node to a non-empty argument list.
	// Non-function kinds delegate to DefaultApply on their type.
	Apply(g *Graph, args []ValId) (Application, error)
}

// TupleIndex is implemented by constant index nodes that can project a
// tuple element: IndexInto returns the cardinality of the index's type
// and the index itself.
type TupleIndex interface {
	Node
	IndexInto() (card, ix uint64)
}

// IndexType is implemented by type nodes with a known finite number of
// inhabitants, making them usable as tuple projection domains.
type IndexType interface {
	Node
	Cardinality() uint64
}

// HashWords computes a structural hash over a kind tag and a sequence
// of 64-bit words (handle IDs, indices, payload bits). All node Hash
// implementations, core and primitive, are built on this so that
// distinct kinds never alias.
func HashWords(kind Kind, words ...uint64) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(string(kind))
	var buf [8]byte
	for _, w := range words {
		binary.LittleEndian.PutUint64(buf[:], w)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

func nodeHash(n Node) uint64 { return n.Hash() }

func nodeEqual(a, b Node) bool { return a.Equal(b) }

// sameHandles reports element-wise handle identity.
func sameHandles(a, b []ValId) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// handleIDs collects the interner IDs of a handle slice for hashing.
func handleIDs(vals []ValId) []uint64 {
	ids := make([]uint64, len(vals))
	for i, v := range vals {
		ids[i] = v.ID()
	}
	return ids
}
