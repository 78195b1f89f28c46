// Package validate implements the cross-entity invariant pass (C10):
// checks that apply across the whole graph rather than to one entity's
// own parameter data in isolation. Per-kind parameter-data invariants
// (NURBS knot counts, composite-curve sequencing, and the like) are
// already enforced by each kind's ReadPD/Associate in package entities;
// this package adds the invariants that only make sense once the whole
// graph is resolved: orphan detection, status-field range checks, and
// the Global section's delimiter rule.
package validate

import (
	"fmt"

	"iges-kernel/internal/global"
	"iges-kernel/internal/igeserr"
	"iges-kernel/internal/model"
)

// Report collects every defect found by Load without halting, mirroring
// the model's own read-time igeserr.WarningList.
type Report struct {
	Items []igeserr.Warning
}

func (r *Report) add(de int, op string, err error) {
	r.Items = append(r.Items, igeserr.Warning{DE: de, Op: op, Err: err})
}

// Empty reports whether no defects were found.
func (r *Report) Empty() bool { return len(r.Items) == 0 }

// Load runs every invariant in §3/§4 over m, accumulating every defect
// found instead of stopping at the first one, per spec.md §4.10.
func Load(m *model.Model) *Report {
	r := &Report{}
	if err := global.ValidDelimiters(m.Global.ParamDelim, m.Global.RecordDelim); err != nil {
		r.add(0, "validate.Load.Global", err)
	}
	for _, e := range m.Entities() {
		for _, err := range checkEntity(m, e) {
			r.add(e.Base.DESeq, "validate.Load", err)
		}
	}
	if cyc := findCycle(m); cyc != nil {
		r.add(0, "validate.Load.Acyclic", fmt.Errorf("cycle detected through handle %v", cyc))
	}
	return r
}

// Write runs the same invariants as Load but rejects the model outright
// at the first defect, per spec.md §4.10's stricter write-time contract.
func Write(m *model.Model) error {
	if err := global.ValidDelimiters(m.Global.ParamDelim, m.Global.RecordDelim); err != nil {
		return err
	}
	for _, e := range m.Entities() {
		if errs := checkEntity(m, e); len(errs) > 0 {
			return igeserr.NewDE(igeserr.InvariantViolation, "validate.Write", e.Base.DESeq, errs[0])
		}
	}
	if cyc := findCycle(m); cyc != nil {
		return igeserr.New(igeserr.InvariantViolation, "validate.Write",
			fmt.Errorf("cycle detected through handle %v", cyc))
	}
	return nil
}

// checkEntity runs every invariant scoped to a single entity (but that
// may depend on already-resolved graph state), returning every failure
// found rather than stopping at the first.
func checkEntity(m *model.Model, e *model.Entity) []error {
	var errs []error

	if e.Base.State < model.StateAssociated {
		errs = append(errs, fmt.Errorf("%s never reached Associated state", e.Base.Type))
	}

	if e.IsOrphaned() {
		errs = append(errs, fmt.Errorf("%s is orphaned (zero parents, dependency %v)", e.Base.Type, e.Base.Dependency))
	}

	if err := checkStatusRanges(e); err != nil {
		errs = append(errs, err)
	}

	if !e.Base.Transform.IsNil() && m.Get(e.Base.Transform) == nil {
		errs = append(errs, fmt.Errorf("%s Transform points at a freed or unknown handle", e.Base.Type))
	}
	if !e.Base.Structure.IsNil() && m.Get(e.Base.Structure) == nil {
		errs = append(errs, fmt.Errorf("%s Structure points at a freed or unknown handle", e.Base.Type))
	}

	if v, ok := e.Data.(kindValidator); ok {
		if err := v.Validate(m, e); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

// kindValidator is an optional extra hook a kind can implement for an
// invariant that checkEntity's common checks don't cover (e.g. a
// Trimmed Surface's outer-boundary-must-be-set rule). None of the
// catalogued kinds currently need one beyond what ReadPD/Associate
// already enforce at parse time, but the hook is here for one that does.
type kindValidator interface {
	Validate(m *model.Model, self *model.Entity) error
}

// checkStatusRanges validates the four DE status-field enums against
// their declared ranges (spec.md §3), skipping the Hierarchy check for
// kinds that declare it meaningless.
func checkStatusRanges(e *model.Entity) error {
	if e.Base.Blank != model.Visible && e.Base.Blank != model.Blanked {
		return fmt.Errorf("%s has invalid BlankStatus %d", e.Base.Type, e.Base.Blank)
	}
	if e.Base.Dependency < model.Independent || e.Base.Dependency > model.BothDependent {
		return fmt.Errorf("%s has invalid Dependency %d", e.Base.Type, e.Base.Dependency)
	}
	if e.Base.Use < model.UseGeometry || e.Base.Use > model.UseConstructionGeometry {
		return fmt.Errorf("%s has invalid EntityUse %d", e.Base.Type, e.Base.Use)
	}
	if !e.IgnoresHierarchy() {
		if e.Base.Hierarchy < model.AllSubordinate || e.Base.Hierarchy > model.UseHierarchyProperty {
			return fmt.Errorf("%s has invalid Hierarchy %d", e.Base.Type, e.Base.Hierarchy)
		}
	}
	return nil
}

// cycleState tags a handle's position in the DFS used by findCycle.
type cycleState int

const (
	unvisited cycleState = iota
	inProgress
	done
)

// findCycle walks every entity's forward edges looking for a back-edge
// into the current DFS stack, returning the handle where the cycle was
// detected, or nil if the graph is acyclic. AddReference's VetoParent
// hook only rules out one specific cycle shape (a composite curve
// containing itself transitively through other composite curves); this
// is the general-purpose backstop spec.md §3 calls for.
func findCycle(m *model.Model) *model.Handle {
	state := make(map[model.Handle]cycleState)
	var walk func(h model.Handle) *model.Handle
	walk = func(h model.Handle) *model.Handle {
		switch state[h] {
		case inProgress:
			found := h
			return &found
		case done:
			return nil
		}
		state[h] = inProgress
		if e := m.Get(h); e != nil {
			for _, child := range e.ForwardEdges() {
				if cyc := walk(child); cyc != nil {
					return cyc
				}
			}
		}
		state[h] = done
		return nil
	}
	for _, e := range m.Entities() {
		if cyc := walk(e.Handle()); cyc != nil {
			return cyc
		}
	}
	return nil
}
