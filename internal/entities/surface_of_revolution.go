package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// SurfaceOfRevolution implements entity type 120: a generatrix curve
// swept about an axis line between a start and terminate angle (radians).
type SurfaceOfRevolution struct {
	Axis       model.Handle // 110, the axis line
	Generatrix model.Handle // the curve being revolved
	StartAngle float64
	EndAngle   float64
}

func init() {
	model.RegisterFactory(model.KindSurfaceOfRevolution, func() model.Payload { return &SurfaceOfRevolution{} })
}

func (s *SurfaceOfRevolution) Kind() model.Kind { return model.KindSurfaceOfRevolution }

func (s *SurfaceOfRevolution) ReadPD(sc *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 0); err != nil {
		return err
	}
	rawAxis, _, err := sc.NextPointer()
	if err != nil {
		return err
	}
	rawGen, _, err := sc.NextPointer()
	if err != nil {
		return err
	}
	vals, err := readReals(sc, 2)
	if err != nil {
		return err
	}
	s.Axis = placeholder(rawAxis)
	s.Generatrix = placeholder(rawGen)
	s.StartAngle, s.EndAngle = vals[0], vals[1]
	return nil
}

func (s *SurfaceOfRevolution) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	out := []string{formatPointer(deSeq, s.Axis), formatPointer(deSeq, s.Generatrix)}
	out = append(out, formatReals([]float64{s.StartAngle, s.EndAngle}, bookkeepingTol)...)
	return out, nil
}

func (s *SurfaceOfRevolution) Associate(m *model.Model, self *model.Entity) error {
	var err error
	if s.Axis, err = resolveChild(m, self.Handle(), s.Axis); err != nil {
		return err
	}
	if s.Generatrix, err = resolveChild(m, self.Handle(), s.Generatrix); err != nil {
		return err
	}
	return nil
}

// Rescale intentionally does nothing: the axis and generatrix are
// independently rescaled as their own entities; only the angles (already
// unit-free radians) would be candidates, and they carry no length.
func (s *SurfaceOfRevolution) Rescale(sf float64, self *model.Entity) {}

func (s *SurfaceOfRevolution) Unlink(child model.Handle) bool {
	switch child {
	case s.Axis:
		s.Axis = model.NilHandle
	case s.Generatrix:
		s.Generatrix = model.NilHandle
	default:
		return false
	}
	return true
}

func (s *SurfaceOfRevolution) Children() []model.Handle {
	var out []model.Handle
	if !s.Axis.IsNil() {
		out = append(out, s.Axis)
	}
	if !s.Generatrix.IsNil() {
		out = append(out, s.Generatrix)
	}
	return out
}
