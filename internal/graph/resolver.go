// Package graph implements the two-pass resolver (C7): translating every
// Directory Entry pointer field — common (Structure, Transform, Color,
// View, LineFont, LabelDisplay) and kind-specific — from a raw file DE
// sequence number into a typed model.Handle, and building the resulting
// parent/child back-reference edges.
package graph

import (
	"iges-kernel/internal/igeserr"
	"iges-kernel/internal/model"
)

// Resolve runs the resolver's second pass over every entity already
// created in m (the first pass is the section reader's job: it creates
// one shell entity per Directory Entry and calls m.BindDE as it goes).
// Resolution failures are collected into m.Warnings() rather than
// aborting, per spec.md §4.7 and §7.
func Resolve(m *model.Model) {
	for _, e := range m.Entities() {
		resolveBaseRefs(m, e)
		if e.Data == nil {
			continue
		}
		if err := e.Data.Associate(m, e); err != nil {
			m.Warnings().Add(e.Base.DESeq, "Associate", err)
			continue
		}
		e.Base.State = model.StateAssociated
	}
}

// resolveBaseRefs translates the common Base fields that may name
// another entity, registering back-references on success and recording
// a warning (without aborting) on failure.
func resolveBaseRefs(m *model.Model, e *model.Entity) {
	resolve := func(raw model.Handle, isPointer bool) model.Handle {
		if !isPointer {
			return raw
		}
		h, err := m.ResolveDE(int(raw))
		if err != nil {
			m.Warnings().Add(e.Base.DESeq, "resolveBaseRefs", err)
			return model.NilHandle
		}
		return h
	}

	if !e.Base.Structure.IsNil() {
		if h, err := m.ResolveDE(int(e.Base.Structure)); err != nil {
			m.Warnings().Add(e.Base.DESeq, "resolveBaseRefs.Structure", err)
			e.Base.Structure = model.NilHandle
		} else {
			e.Base.Structure = h
		}
	}

	if !e.Base.Transform.IsNil() {
		if h, err := m.ResolveDE(int(e.Base.Transform)); err != nil {
			m.Warnings().Add(e.Base.DESeq, "resolveBaseRefs.Transform", err)
			e.Base.Transform = model.NilHandle
		} else {
			e.Base.Transform = h
			if _, err := m.AddReference(h, e.Handle()); err != nil {
				m.Warnings().Add(e.Base.DESeq, "resolveBaseRefs.Transform", err)
			}
		}
	}

	for _, ref := range []*model.Ref{&e.Base.Color, &e.Base.View, &e.Base.LineFont, &e.Base.LabelDisp} {
		if !ref.IsPointer {
			continue
		}
		ref.Ptr = resolve(ref.Ptr, true)
		if !ref.Ptr.IsNil() {
			if _, err := m.AddReference(ref.Ptr, e.Handle()); err != nil {
				m.Warnings().Add(e.Base.DESeq, "resolveBaseRefs.Ref", err)
			}
		}
	}
}

// ResolveChild is a convenience wrapper kind-specific Associate
// implementations call: resolve a raw DE-index placeholder into a
// handle, add the back-reference, and surface a single error that the
// caller can either propagate (InvariantViolation context) or collect.
func ResolveChild(m *model.Model, self model.Handle, raw model.Handle) (model.Handle, error) {
	if raw.IsNil() {
		return model.NilHandle, nil
	}
	h, err := m.ResolveDE(int(raw))
	if err != nil {
		return model.NilHandle, err
	}
	if _, err := m.AddReference(h, self); err != nil {
		return model.NilHandle, err
	}
	return h, nil
}

// ResolveChildren resolves a slice of raw DE-index placeholders in order,
// stopping at the first error.
func ResolveChildren(m *model.Model, self model.Handle, raws []model.Handle) ([]model.Handle, error) {
	out := make([]model.Handle, 0, len(raws))
	for _, raw := range raws {
		h, err := ResolveChild(m, self, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

// CheckNotAssociated returns NotAssociated if e hasn't reached the
// Associated lifecycle state yet, for accessors that depend on resolved
// children.
func CheckNotAssociated(e *model.Entity, op string) error {
	if e.Base.State < model.StateAssociated {
		return igeserr.New(igeserr.NotAssociated, op, nil)
	}
	return nil
}
