// Package prim provides the primitive leaf values of the value graph:
// booleans with truth-table logical operators, finite index types with
// their inhabitants, and a two-branch selector. Primitives plug into
// the core by implementing ir.Node; the core has no knowledge of them
// beyond the projection interfaces they satisfy.
package prim
