package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// TabulatedCylinder implements entity type 122: a ruled surface swept by
// translating a directrix curve along the vector from its start point to
// a given terminate point.
type TabulatedCylinder struct {
	Directrix     model.Handle
	TerminatePoint [3]float64
}

func init() {
	model.RegisterFactory(model.KindTabulatedCylinder, func() model.Payload { return &TabulatedCylinder{} })
}

func (t *TabulatedCylinder) Kind() model.Kind { return model.KindTabulatedCylinder }

func (t *TabulatedCylinder) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 0); err != nil {
		return err
	}
	raw, _, err := s.NextPointer()
	if err != nil {
		return err
	}
	vals, err := readReals(s, 3)
	if err != nil {
		return err
	}
	t.Directrix = placeholder(raw)
	t.TerminatePoint = [3]float64{vals[0], vals[1], vals[2]}
	return nil
}

func (t *TabulatedCylinder) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	out := []string{formatPointer(deSeq, t.Directrix)}
	out = append(out, formatReals(t.TerminatePoint[:], bookkeepingTol)...)
	return out, nil
}

func (t *TabulatedCylinder) Associate(m *model.Model, self *model.Entity) (err error) {
	t.Directrix, err = resolveChild(m, self.Handle(), t.Directrix)
	return err
}

func (t *TabulatedCylinder) Rescale(sf float64, self *model.Entity) {
	t.TerminatePoint[0] *= sf
	t.TerminatePoint[1] *= sf
	t.TerminatePoint[2] *= sf
}

func (t *TabulatedCylinder) Unlink(child model.Handle) bool {
	if t.Directrix == child {
		t.Directrix = model.NilHandle
		return true
	}
	return false
}

func (t *TabulatedCylinder) Children() []model.Handle {
	if t.Directrix.IsNil() {
		return nil
	}
	return []model.Handle{t.Directrix}
}
