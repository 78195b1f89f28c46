package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// Line implements entity type 110: a straight segment between two 3D
// points.
type Line struct {
	P1 [3]float64
	P2 [3]float64
}

func init() {
	model.RegisterFactory(model.KindLine, func() model.Payload { return &Line{} })
}

func (l *Line) Kind() model.Kind { return model.KindLine }

func (l *Line) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 0); err != nil {
		return err
	}
	vals, err := readReals(s, 6)
	if err != nil {
		return err
	}
	l.P1 = [3]float64{vals[0], vals[1], vals[2]}
	l.P2 = [3]float64{vals[3], vals[4], vals[5]}
	return nil
}

func (l *Line) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	vals := []float64{l.P1[0], l.P1[1], l.P1[2], l.P2[0], l.P2[1], l.P2[2]}
	return formatReals(vals, bookkeepingTol), nil
}

func (l *Line) Associate(m *model.Model, self *model.Entity) error { return nil }

func (l *Line) Rescale(sf float64, self *model.Entity) {
	for i := range l.P1 {
		l.P1[i] *= sf
		l.P2[i] *= sf
	}
}

func (l *Line) Unlink(model.Handle) bool { return false }
func (l *Line) Children() []model.Handle { return nil }

func (l *Line) GetStartPoint() [3]float64 { return l.P1 }
func (l *Line) GetEndPoint() [3]float64   { return l.P2 }
func (l *Line) StartPoint() [3]float64    { return l.P1 }
func (l *Line) EndPoint() [3]float64      { return l.P2 }
