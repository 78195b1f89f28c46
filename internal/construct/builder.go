// Package construct implements the geometric-constructor layer (C9):
// higher-level shape builders that emit a cluster of primitive entities
// atomically, rolling every one of them back out of the model if any
// step fails partway through.
package construct

import (
	"iges-kernel/internal/model"
)

// Builder accumulates entities created during one constructor call,
// committing them as a group or rolling every one back on failure — the
// Go counterpart of the teacher's macro-driven all-or-nothing cleanup.
type Builder struct {
	m       *model.Model
	created []model.Handle
	err     error
}

// NewBuilder returns a Builder scoped to m.
func NewBuilder(m *model.Model) *Builder {
	return &Builder{m: m}
}

// Err returns the first failure recorded by new or link, if any.
func (b *Builder) Err() error { return b.err }

// new allocates an entity of kind, tracking it for rollback. Once b.err
// is set, every further call is a no-op returning that same error, so
// callers can chain a sequence of builder calls and check the error once
// at the end.
func (b *Builder) new(kind model.Kind, dep model.Dependency) (*model.Entity, error) {
	if b.err != nil {
		return nil, b.err
	}
	h, err := b.m.NewEntity(kind)
	if err != nil {
		b.err = err
		return nil, err
	}
	b.created = append(b.created, h)
	e := b.m.Get(h)
	e.Base.Dependency = dep
	e.Base.State = model.StateAssociated
	return e, nil
}

// link registers parent as a back-reference of child, recording the
// first failure (e.g. a kind veto) for Commit to surface.
func (b *Builder) link(child, parent model.Handle) {
	if b.err != nil {
		return
	}
	if _, err := b.m.AddReference(child, parent); err != nil {
		b.err = err
	}
}

// fail aborts the remainder of the construction with a caller-supplied
// error (used for geometric precondition failures that aren't tied to a
// single entity allocation).
func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Commit returns every entity created so far if no failure was recorded,
// or rolls all of them back and returns the failure.
func (b *Builder) Commit() ([]model.Handle, error) {
	if b.err != nil {
		b.Rollback()
		return nil, b.err
	}
	out := append([]model.Handle(nil), b.created...)
	return out, nil
}

// Rollback deletes every entity this builder created, in reverse
// creation order so cascading back-reference bookkeeping unwinds cleanly.
func (b *Builder) Rollback() {
	for i := len(b.created) - 1; i >= 0; i-- {
		_ = b.m.DelEntity(b.created[i])
	}
	b.created = nil
}
