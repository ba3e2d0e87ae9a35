package ir

import (
	"github.com/cascade-ir/cascade/internal/store"
)

// ValId is a canonical handle to a node. Handles are compared by
// identity: after interning, two ValIds are == exactly when their
// payloads are structurally equal. The zero ValId is nil and denotes
// "no value".
type ValId struct {
	ref *store.Ref[Node]
}

// IsNil reports whether the handle is the zero handle.
func (v ValId) IsNil() bool { return v.ref == nil }

// ID returns the handle's interner identity; 0 for the nil handle.
func (v ValId) ID() uint64 {
	if v.ref == nil {
		return 0
	}
	return v.ref.ID()
}

// Node returns the underlying payload. Panics on the nil handle.
func (v ValId) Node() Node { return v.ref.Value() }

// Kind returns the payload's kind tag.
func (v ValId) Kind() Kind { return v.Node().Kind() }

// Type returns the value's cached type handle.
func (v ValId) Type() TypeId { return v.Node().Type() }

// Region returns the region the value is placed in.
func (v ValId) Region() Region { return v.Node().Region() }

// Depth returns the placement region's depth (0 for global values).
func (v ValId) Depth() int { return v.Region().Depth() }

// NumDeps returns the number of immediate dependencies.
func (v ValId) NumDeps() int { return v.Node().NumDeps() }

// Dep returns the i-th immediate dependency.
func (v ValId) Dep(i int) ValId { return v.Node().Dep(i) }

// Retain adds an external holder to the handle's store entry.
func (v ValId) Retain() ValId {
	if v.ref != nil {
		v.ref.Retain()
	}
	return v
}

// Release drops an external holder. After the last holder releases,
// the next Graph.Collect evicts the entry.
func (v ValId) Release() {
	if v.ref != nil {
		v.ref.Release()
	}
}

// IsType reports whether the value may stand as a type: universes, and
// any value classified by a universe.
func (v ValId) IsType() bool {
	if v.IsNil() {
		return false
	}
	if v.Kind() == KindUniverse {
		return true
	}
	ty := v.Type()
	return !ty.IsNil() && ty.Kind() == KindUniverse
}

// AsType converts the value to a TypeId, failing with a typed error if
// the value is not a type.
func (v ValId) AsType() (TypeId, error) {
	if !v.IsType() {
		return TypeId{}, Errorf(ErrCodeNotAType, "%s is not a type", v)
	}
	return TypeId{v}, nil
}

// String returns a short payload summary; nil handles print as "_".
func (v ValId) String() string {
	if v.IsNil() {
		return "_"
	}
	return v.Node().String()
}

// TypeId is a ValId asserted to be a type. The zero TypeId is nil; it
// appears only as the "type" of universes and in error values.
type TypeId struct {
	ValId
}

// Val returns the underlying value handle.
func (t TypeId) Val() ValId { return t.ValId }
