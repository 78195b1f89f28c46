package model

import (
	"errors"
	"sync"

	"iges-kernel/internal/global"
	"iges-kernel/internal/igeserr"
	"iges-kernel/internal/nurbs"
)

var (
	errOddPositive = errors.New("DE pointer must be positive and odd")
	errNoSuchDE    = errors.New("no entity at that DE sequence number")
)

// Model is the single owner of every entity in a loaded IGES file. Graph
// edges (children, parents, transform, extras) are non-owning handles
// into this arena (per spec.md §5's ownership model).
//
// A read or write traversal is single-threaded; concurrent readers of a
// fully-loaded, immutable Model are safe. NewEntity and DelEntity hold
// the Mu lock below for their duration; the other mutators
// (AddReference, DelReference, a payload's setter, Rescale) do not take
// it, so concurrent callers of those must hold Mu themselves.
type Model struct {
	Mu     sync.RWMutex
	Global global.Params

	entities []*Entity // index i holds handle i+1; nil means freed/absent
	order    []Handle  // insertion order, used for emission numbering
	warnings igeserr.WarningList

	// DEIndex maps a file-assigned Directory Entry sequence number (odd,
	// e.g. 1, 3, 5, ...) to the arena Handle created for it during the
	// first read pass. Base fields and payload fields that name another
	// entity hold the raw DE sequence number as a placeholder until the
	// graph resolver (C7) translates them through this map.
	DEIndex map[int]Handle

	Policy Policy

	// NURBSEval is the injected external collaborator (spec.md §6/§9): the
	// four-operation NURBS evaluation interface. NURBSCache scopes its
	// opaque handles to the owning 126 entity so no entity field stores a
	// library handle directly.
	NURBSEval  nurbs.Evaluator
	NURBSCache *nurbs.Cache
}

// Policy holds the behavioral knobs spec.md's Open Questions leave to the
// implementer.
type Policy struct {
	// PermissiveInterleave controls the Composite Curve (102) rule about
	// consecutive Point/Connect-Point members: the source's own
	// interpretation of the (ambiguous) written standard is permissive,
	// and that is this module's default; set false to enforce the
	// stricter reading.
	PermissiveInterleave bool
}

// DefaultPolicy returns the permissive interpretation used unless a
// caller overrides it.
func DefaultPolicy() Policy {
	return Policy{PermissiveInterleave: true}
}

// New returns an empty Model with default Global parameters and the
// default from-scratch NURBS evaluator wired in. Callers needing a
// different NURBS backend can replace m.NURBSEval/m.NURBSCache before any
// 126 entity is associated.
func New() *Model {
	eval := nurbs.NewDefaultEvaluator()
	return &Model{
		Global:     global.Default(),
		Policy:     DefaultPolicy(),
		NURBSEval:  eval,
		NURBSCache: nurbs.NewCache(eval),
	}
}

// NewEntity allocates a zero-valued entity of kind and returns its
// handle. Fails with Unimplemented if kind has no registered factory.
func (m *Model) NewEntity(kind Kind) (Handle, error) {
	payload, err := newPayload(kind)
	if err != nil {
		return NilHandle, err
	}
	m.Mu.Lock()
	defer m.Mu.Unlock()

	e := &Entity{Base: Base{Type: kind}, Data: payload}
	m.entities = append(m.entities, e)
	h := Handle(len(m.entities))
	e.handle = h
	m.order = append(m.order, h)
	return h, nil
}

// Get returns the entity for h, or nil if h is nil/out of range/freed.
func (m *Model) Get(h Handle) *Entity {
	if h.IsNil() || int(h) > len(m.entities) {
		return nil
	}
	return m.entities[h-1]
}

// Entities returns every live entity in insertion order.
func (m *Model) Entities() []*Entity {
	out := make([]*Entity, 0, len(m.order))
	for _, h := range m.order {
		if e := m.Get(h); e != nil {
			out = append(out, e)
		}
	}
	return out
}

// Warnings returns the accumulated read-time warning set.
func (m *Model) Warnings() *igeserr.WarningList { return &m.warnings }

// BindDE records that rawSeq (the file's Directory Entry sequence number)
// names h, for later ResolveDE lookups.
func (m *Model) BindDE(rawSeq int, h Handle) {
	if m.DEIndex == nil {
		m.DEIndex = make(map[int]Handle)
	}
	m.DEIndex[rawSeq] = h
}

// ResolveDE translates a raw DE sequence number (as found in a Base or
// payload placeholder field) into its arena Handle. rawSeq == 0 resolves
// to NilHandle with no error (an absent, optional pointer). Per spec.md
// §4.7, the pointer must be positive, odd, and within bounds.
func (m *Model) ResolveDE(rawSeq int) (Handle, error) {
	if rawSeq == 0 {
		return NilHandle, nil
	}
	if rawSeq < 0 || rawSeq%2 == 0 {
		return NilHandle, igeserr.NewDE(igeserr.UnresolvedRef, "ResolveDE", rawSeq,
			errOddPositive)
	}
	h, ok := m.DEIndex[rawSeq]
	if !ok {
		return NilHandle, igeserr.NewDE(igeserr.UnresolvedRef, "ResolveDE", rawSeq, errNoSuchDE)
	}
	return h, nil
}

// AddReference registers parent as a back-reference of child, honoring
// kind-specific parent vetoes. Returns isDuplicate=true if parent was
// already registered.
func (m *Model) AddReference(child, parent Handle) (isDuplicate bool, err error) {
	c := m.Get(child)
	p := m.Get(parent)
	if c == nil || p == nil {
		return false, igeserr.New(igeserr.UnresolvedRef, "AddReference", nil)
	}
	return c.Base.AddReference(parent, p.Base.Type, c.Data)
}

// DelReference removes one back-edge from parent to child.
func (m *Model) DelReference(child, parent Handle) error {
	c := m.Get(child)
	if c == nil {
		return igeserr.New(igeserr.UnresolvedRef, "DelReference", nil)
	}
	return c.Base.DelReference(parent)
}

// SetTransform atomically repoints e's transform, maintaining the
// transform entity's back-reference list.
func (m *Model) SetTransform(e Handle, newT Handle) error {
	ent := m.Get(e)
	if ent == nil {
		return igeserr.New(igeserr.UnresolvedRef, "SetTransform", nil)
	}
	return ent.Base.SetTransform(newT,
		func(h Handle) error { return m.DelReference(h, e) },
		func(h Handle) (bool, error) { return m.AddReference(h, e) },
	)
}

// DelEntity removes e from the model: it first Unlinks e from every
// entity that has e in a forward-edge list (by walking e's Parents and
// calling their Unlink), then releases any child whose refcount has
// dropped to zero and whose dependency is not Independent (cascading
// delete per spec.md §3/§5).
func (m *Model) DelEntity(h Handle) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	return m.delEntityLocked(h)
}

func (m *Model) delEntityLocked(h Handle) error {
	e := m.Get(h)
	if e == nil {
		return igeserr.New(igeserr.UnresolvedRef, "DelEntity", nil)
	}

	// Disassociate from every parent that references this entity.
	parents := append([]Handle(nil), e.Base.Parents...)
	for _, ph := range parents {
		if parent := m.Get(ph); parent != nil {
			parent.Unlink(h)
		}
	}

	// Collect forward edges before releasing this entity's own state.
	children := e.ForwardEdges()

	m.entities[h-1] = nil
	for i, oh := range m.order {
		if oh == h {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	// Cascade: release each child whose parent list is now empty and
	// whose dependency is not Independent.
	for _, ch := range children {
		child := m.Get(ch)
		if child == nil {
			continue
		}
		if err := child.Base.DelReference(h); err != nil {
			continue
		}
		if len(child.Base.Parents) == 0 && child.Base.Dependency != Independent {
			_ = m.delEntityLocked(ch)
		}
	}

	return nil
}
