package model

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/tokenize"
)

// Payload is the per-kind contract (C6): parsing, formatting, graph
// association, unit rescaling, and forward-edge bookkeeping. Each entity
// kind in package entities implements this once.
type Payload interface {
	Kind() Kind

	// ReadPD parses the kind-specific fields (the entity-type code and
	// form number have already been consumed by the caller) from s,
	// using g for defaults (e.g. minimum resolution).
	ReadPD(s *tokenize.Scanner, g global.Params, form int) error

	// Format serializes the kind-specific fields (not including the
	// leading entity-type code, which the section writer prepends).
	// deSeq translates a forward-pointer field's arena Handle into its
	// write-time DE sequence number (0 for a nil or unmapped handle);
	// every kind-specific pointer field must be passed through it before
	// being handed to tokenize.FormatPointer.
	Format(self *Entity, deSeq func(Handle) int) ([]string, error)

	// Associate resolves every DE-index field on the payload into a
	// typed Handle via m, calling m.AddReference(self.handle) on every
	// child and checking kind-specific invariants (§3).
	Associate(m *Model, self *Entity) error

	// Rescale multiplies every length-bearing field by sf.
	Rescale(sf float64, self *Entity)

	// Unlink removes child from this payload's forward-edge lists if
	// present, returning true if anything was removed.
	Unlink(child Handle) bool

	// Children returns every forward edge (as Handles) this payload
	// owns, for cascade deletion and orphan/topological traversal.
	Children() []Handle
}

// Entity is one IGES entity: common Base state plus its kind-specific
// Payload.
type Entity struct {
	Base   Base
	Data   Payload
	handle Handle
}

// Handle returns this entity's stable arena handle.
func (e *Entity) Handle() Handle { return e.handle }

// Unlink removes child from every list this entity owns: the transform
// pointer, the extras list, and whatever the kind-specific payload
// tracks (spec.md §4.5's Unlink contract).
func (e *Entity) Unlink(child Handle) bool {
	removed := false
	if e.Base.Transform == child {
		e.Base.Transform = NilHandle
		removed = true
	}
	if e.Base.RemoveExtra(child) {
		removed = true
	}
	if e.Base.Structure == child {
		e.Base.Structure = NilHandle
		removed = true
	}
	if e.Data != nil && e.Data.Unlink(child) {
		removed = true
	}
	return removed
}

// ForwardEdges lists every handle this entity points to: transform,
// structure, color/view/line-font pointers when used as pointers, extras,
// and the payload's own children.
func (e *Entity) ForwardEdges() []Handle {
	var edges []Handle
	if !e.Base.Transform.IsNil() {
		edges = append(edges, e.Base.Transform)
	}
	if !e.Base.Structure.IsNil() {
		edges = append(edges, e.Base.Structure)
	}
	for _, r := range []Ref{e.Base.Color, e.Base.View, e.Base.LineFont, e.Base.LabelDisp} {
		if r.IsPointer && !r.Ptr.IsNil() {
			edges = append(edges, r.Ptr)
		}
	}
	edges = append(edges, e.Base.Extras...)
	if e.Data != nil {
		edges = append(edges, e.Data.Children()...)
	}
	return edges
}

// orphanForcer lets a kind declare that it is orphaned whenever its
// parent list is empty, regardless of Dependency (Circular Arc).
type orphanForcer interface {
	ForceOrphanOnEmpty() bool
}

// IsOrphaned reports whether e has no parents and a dependency that does
// not keep it alive independently. Circular Arc (100) forces
// orphan-on-empty-parents regardless of dependency (spec.md §3).
func (e *Entity) IsOrphaned() bool {
	forceEmpty := false
	if f, ok := e.Data.(orphanForcer); ok {
		forceEmpty = f.ForceOrphanOnEmpty()
	}
	return e.Base.IsOrphaned(forceEmpty)
}

// IgnoresHierarchy reports whether the Hierarchy status field is
// meaningless for this entity's kind.
func (e *Entity) IgnoresHierarchy() bool {
	if h, ok := e.Data.(hierarchyIgnorer); ok {
		return h.IgnoresHierarchy()
	}
	return false
}
