// Package model implements the entity registry and base state shared by
// every IGES entity kind (C5): a handle-indexed arena replacing the
// source's raw-pointer parent/child bookkeeping (per spec.md §9's
// "Design Notes" — arena-and-index instead of manually counted raw
// pointers), common status-flag/decoration/association state, and the
// AddReference/DelReference/Unlink primitives entity kinds build on.
package model

import "fmt"

// Handle is a stable, opaque reference to an entity stored in a Model's
// arena. The zero Handle never refers to a live entity.
type Handle uint32

// NilHandle is the reserved "no entity" value.
const NilHandle Handle = 0

func (h Handle) String() string {
	if h == NilHandle {
		return "<nil>"
	}
	return fmt.Sprintf("#%d", uint32(h))
}

// IsNil reports whether h is the nil handle.
func (h Handle) IsNil() bool { return h == NilHandle }
