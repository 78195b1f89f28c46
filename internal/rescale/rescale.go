// Package rescale implements the context-sensitive unit-conversion pass
// (C8): multiply every length-bearing field in the model by a scale
// factor, visiting children before parents. The one piece of context a
// Rescale consults (the boundary-curve flag on a NURBS Curve that is the
// parameter-space bound of a Curve-on-Surface) is set on that curve by
// its parent 142 during association, before this pass runs.
package rescale

import (
	"iges-kernel/internal/model"
)

// Apply multiplies every entity's length-bearing fields by sf, visiting
// the graph in post-order (children first) so each entity's Rescale runs
// exactly once regardless of how many parents reach it.
func Apply(m *model.Model, sf float64) {
	visited := make(map[model.Handle]bool)
	for _, e := range m.Entities() {
		visit(m, e.Handle(), sf, visited)
	}
}

func visit(m *model.Model, h model.Handle, sf float64, visited map[model.Handle]bool) {
	if h.IsNil() || visited[h] {
		return
	}
	visited[h] = true

	e := m.Get(h)
	if e == nil {
		return
	}
	for _, child := range e.ForwardEdges() {
		visit(m, child, sf, visited)
	}
	if e.Data != nil {
		e.Data.Rescale(sf, e)
	}
}

// ForFileUnits returns the scale factor converting lengths in a unit of
// fromMMPerUnit millimeters into a unit of toMMPerUnit millimeters
// (fromMMPerUnit / toMMPerUnit), or 1 when toMMPerUnit is 0. It takes
// millimeters-per-unit values, not IGES unit flags; mapping a Global
// UnitFlag to millimeters is left to the caller.
func ForFileUnits(fromMMPerUnit, toMMPerUnit float64) float64 {
	if toMMPerUnit == 0 {
		return 1
	}
	return fromMMPerUnit / toMMPerUnit
}
