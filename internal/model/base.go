package model

import (
	"fmt"

	"iges-kernel/internal/igeserr"
)

// Base holds the state common to every entity kind: identity, status
// flags, decoration, and the association lists (C5's "common state").
// Per-kind payloads embed a pointer back to their owning Entity's Base
// only indirectly, through the Entity wrapper in entity.go.
type Base struct {
	Type Kind
	Form int

	DESeq   int // assigned at emit, odd, stride 2
	PDSeq   int
	PDLines int

	Blank      BlankStatus
	Dependency Dependency
	Use        EntityUse
	Hierarchy  Hierarchy

	LineFont   Ref
	LineWeight int
	Color      Ref
	View       Ref
	Transform  Handle
	LabelDisp  Ref
	Label      string
	Subscript  int
	Structure  Handle

	Parents  []Handle // back-references: entities that point to this one
	Extras   []Handle // associativity/property pointers
	Comments []string

	State LifecycleState
}

// parentVetoer lets a kind refuse specific parent kinds (e.g. a
// Composite Curve may not contain another Composite Curve).
type parentVetoer interface {
	VetoParent(kind Kind) bool
}

// hierarchyIgnorer lets a kind declare that the Hierarchy status field is
// meaningless for it (e.g. Circular Arc ignores hierarchy; NURBS Curve
// silently accepts any value since the field is ignored, per spec.md
// §4.5).
type hierarchyIgnorer interface {
	IgnoresHierarchy() bool
}

// AddReference appends parent to refs iff not already present. Returns
// isDuplicate=true when it was already present (still a success, per
// spec.md §4.5's idempotence contract). payload, if non-nil and a
// parentVetoer, can refuse based on the parent's kind.
func (b *Base) AddReference(parent Handle, parentKind Kind, payload any) (isDuplicate bool, err error) {
	if v, ok := payload.(parentVetoer); ok && v.VetoParent(parentKind) {
		return false, igeserr.New(igeserr.InvalidParent, "AddReference", fmt.Errorf("%s may not be a parent of %s", parentKind, b.Type))
	}
	for _, p := range b.Parents {
		if p == parent {
			return true, nil
		}
	}
	b.Parents = append(b.Parents, parent)
	return false, nil
}

// DelReference removes the first matching back-edge. Fails with NotFound
// semantics (igeserr.InvariantViolation is not used here; the contract in
// spec.md §4.5 calls for a distinct "NotFound" failure, modeled as
// BadField since it is a caller-programming error, not a file defect).
func (b *Base) DelReference(parent Handle) error {
	for i, p := range b.Parents {
		if p == parent {
			b.Parents = append(b.Parents[:i], b.Parents[i+1:]...)
			return nil
		}
	}
	return igeserr.New(igeserr.BadField, "DelReference", fmt.Errorf("parent %s not found", parent))
}

// IsOrphaned reports whether b has zero parents and a dependency other
// than Independent. forceOrphanOnEmpty lets Circular Arc (100) opt into
// "orphaned whenever parents is empty, regardless of dependency" per
// spec.md §3.
func (b *Base) IsOrphaned(forceOrphanOnEmpty bool) bool {
	if len(b.Parents) > 0 {
		return false
	}
	if forceOrphanOnEmpty {
		return true
	}
	return b.Dependency != Independent
}

// SetTransform atomically replaces the transform pointer, releasing the
// back-reference on the old transform (if any) and registering one on
// the new transform via addRef, the closure the Model supplies so Base
// never needs to know about the arena.
func (b *Base) SetTransform(newT Handle, delRef func(Handle) error, addRef func(Handle) (bool, error)) error {
	old := b.Transform
	if old == newT {
		return nil
	}
	if !old.IsNil() {
		if err := delRef(old); err != nil {
			return err
		}
	}
	if !newT.IsNil() {
		if _, err := addRef(newT); err != nil {
			return err
		}
	}
	b.Transform = newT
	return nil
}

// AddExtra appends a pointer to the extras list iff not already present.
func (b *Base) AddExtra(h Handle) (isDuplicate bool) {
	for _, e := range b.Extras {
		if e == h {
			return true
		}
	}
	b.Extras = append(b.Extras, h)
	return false
}

// RemoveExtra removes h from the extras list; returns true if present.
func (b *Base) RemoveExtra(h Handle) bool {
	for i, e := range b.Extras {
		if e == h {
			b.Extras = append(b.Extras[:i], b.Extras[i+1:]...)
			return true
		}
	}
	return false
}

// AddComment appends a comment string.
func (b *Base) AddComment(c string) { b.Comments = append(b.Comments, c) }
