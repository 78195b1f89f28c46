package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// Arc implements entity type 100, Circular Arc: a planar arc in Z =
// ZOffset, described by center, start, and end points projected onto
// that plane.
type Arc struct {
	ZOffset float64
	Center  [2]float64
	Start   [2]float64
	End     [2]float64
}

func init() {
	model.RegisterFactory(model.KindCircularArc, func() model.Payload { return &Arc{} })
}

func (a *Arc) Kind() model.Kind { return model.KindCircularArc }

func (a *Arc) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 0); err != nil {
		return err
	}
	vals, err := readReals(s, 7)
	if err != nil {
		return err
	}
	a.ZOffset = vals[0]
	a.Center = [2]float64{vals[1], vals[2]}
	a.Start = [2]float64{vals[3], vals[4]}
	a.End = [2]float64{vals[5], vals[6]}
	return nil
}

func (a *Arc) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	vals := []float64{a.ZOffset, a.Center[0], a.Center[1], a.Start[0], a.Start[1], a.End[0], a.End[1]}
	return formatReals(vals, bookkeepingTol), nil
}

func (a *Arc) Associate(m *model.Model, self *model.Entity) error { return nil }

func (a *Arc) Rescale(sf float64, self *model.Entity) {
	a.ZOffset *= sf
	a.Center[0] *= sf
	a.Center[1] *= sf
	a.Start[0] *= sf
	a.Start[1] *= sf
	a.End[0] *= sf
	a.End[1] *= sf
}

func (a *Arc) Unlink(model.Handle) bool { return false }
func (a *Arc) Children() []model.Handle { return nil }

// IgnoresHierarchy reports that Circular Arc ignores the DE Hierarchy
// status field, per spec.md §4.5.
func (a *Arc) IgnoresHierarchy() bool { return true }

// ForceOrphanOnEmpty reports that a Circular Arc with zero parents is
// always orphaned, regardless of its Dependency status.
func (a *Arc) ForceOrphanOnEmpty() bool { return true }

// GetStartPoint returns the 3D start point (X, Y, ZOffset).
func (a *Arc) GetStartPoint() [3]float64 { return [3]float64{a.Start[0], a.Start[1], a.ZOffset} }

// GetEndPoint returns the 3D end point (X, Y, ZOffset).
func (a *Arc) GetEndPoint() [3]float64 { return [3]float64{a.End[0], a.End[1], a.ZOffset} }

func (a *Arc) StartPoint() [3]float64 { return a.GetStartPoint() }
func (a *Arc) EndPoint() [3]float64   { return a.GetEndPoint() }
