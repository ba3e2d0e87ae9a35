// Package ir implements the value graph of a purely functional,
// region-structured intermediate representation, together with its
// region tree and its evaluation engine.
//
// Everything in this package is immutable and structurally shared:
// nodes and regions are interned through a Graph, and two handles are
// the same value exactly when they are equal. Each node caches its type
// and is placed, at construction time, in the innermost region in which
// all of its dependencies are in scope; a term that would capture a
// variable illegally cannot be constructed at all.
//
// Evaluation is region-scoped substitution standing in for
// capture-avoiding beta-reduction. An EvalCtx is a private, sequential
// accumulator for one evaluation call tree; concurrent evaluations use
// independent contexts and share results through the store's canonical
// handles instead.
//
// The package depends only on internal/store. Leaf primitive kinds
// (booleans, finite index types, logical operators) live in
// internal/prim and plug in through the Node interface.
package ir
