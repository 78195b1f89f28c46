package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// ConicArc implements entity type 104: a planar arc of a general conic
// (ellipse, hyperbola, or parabola, per Form) in Z = ZOffset, defined by
// the 6 coefficients of A·x²+B·xy+C·y²+D·x+E·y+F=0.
type ConicArc struct {
	Form int // 1=ellipse, 2=hyperbola, 3=parabola

	A, B, C, D, E, F float64
	ZOffset          float64
	Start            [2]float64
	End              [2]float64
}

func init() {
	model.RegisterFactory(model.KindConicArc, func() model.Payload { return &ConicArc{} })
}

func (c *ConicArc) Kind() model.Kind { return model.KindConicArc }

func (c *ConicArc) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 1, 2, 3); err != nil {
		return err
	}
	c.Form = form
	vals, err := readReals(s, 11)
	if err != nil {
		return err
	}
	c.A, c.B, c.C, c.D, c.E, c.F = vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]
	c.ZOffset = vals[6]
	c.Start = [2]float64{vals[7], vals[8]}
	c.End = [2]float64{vals[9], vals[10]}
	return nil
}

func (c *ConicArc) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	vals := []float64{c.A, c.B, c.C, c.D, c.E, c.F, c.ZOffset, c.Start[0], c.Start[1], c.End[0], c.End[1]}
	return formatReals(vals, bookkeepingTol), nil
}

func (c *ConicArc) Associate(m *model.Model, self *model.Entity) error { return nil }

func (c *ConicArc) Rescale(sf float64, self *model.Entity) {
	// A·x²+B·xy+C·y²+D·x+E·y+F=0 scales to the same curve under x,y -> sf·x,
	// sf·y only if D, E, F are rescaled by sf, sf, sf² respectively, and A,
	// B, C are left alone (they carry no length dimension in this form).
	c.D *= sf
	c.E *= sf
	c.F *= sf * sf
	c.ZOffset *= sf
	c.Start[0] *= sf
	c.Start[1] *= sf
	c.End[0] *= sf
	c.End[1] *= sf
}

func (c *ConicArc) Unlink(model.Handle) bool { return false }
func (c *ConicArc) Children() []model.Handle { return nil }

func (c *ConicArc) GetStartPoint() [3]float64 { return [3]float64{c.Start[0], c.Start[1], c.ZOffset} }
func (c *ConicArc) GetEndPoint() [3]float64   { return [3]float64{c.End[0], c.End[1], c.ZOffset} }
func (c *ConicArc) StartPoint() [3]float64    { return c.GetStartPoint() }
func (c *ConicArc) EndPoint() [3]float64      { return c.GetEndPoint() }
