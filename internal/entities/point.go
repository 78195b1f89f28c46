package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// Point implements entity type 116: a single model-space point, with an
// optional pointer to a display-symbol entity.
type Point struct {
	XYZ           [3]float64
	DisplaySymbol model.Handle // placeholder until Associate
}

func init() {
	model.RegisterFactory(model.KindPoint, func() model.Payload { return &Point{} })
}

func (p *Point) Kind() model.Kind { return model.KindPoint }

func (p *Point) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 0); err != nil {
		return err
	}
	vals, err := readReals(s, 3)
	if err != nil {
		return err
	}
	p.XYZ = [3]float64{vals[0], vals[1], vals[2]}
	raw, _, err := s.NextPointer()
	if err != nil {
		return err
	}
	p.DisplaySymbol = placeholder(raw)
	return nil
}

func (p *Point) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	out := formatReals(p.XYZ[:], bookkeepingTol)
	out = append(out, formatPointer(deSeq, p.DisplaySymbol))
	return out, nil
}

func (p *Point) Associate(m *model.Model, self *model.Entity) (err error) {
	p.DisplaySymbol, err = resolveChild(m, self.Handle(), p.DisplaySymbol)
	return err
}

func (p *Point) Rescale(sf float64, self *model.Entity) {
	p.XYZ[0] *= sf
	p.XYZ[1] *= sf
	p.XYZ[2] *= sf
}

func (p *Point) Unlink(child model.Handle) bool {
	if p.DisplaySymbol == child {
		p.DisplaySymbol = model.NilHandle
		return true
	}
	return false
}

func (p *Point) Children() []model.Handle {
	if p.DisplaySymbol.IsNil() {
		return nil
	}
	return []model.Handle{p.DisplaySymbol}
}

// GetPoint returns the 3D coordinates.
func (p *Point) GetPoint() [3]float64 { return p.XYZ }

func (p *Point) StartPoint() [3]float64 { return p.XYZ }
func (p *Point) EndPoint() [3]float64   { return p.XYZ }
