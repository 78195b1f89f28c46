package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// TrimmedSurface implements entity type 144: a parametric surface clipped
// by an outer boundary and zero or more inner (hole) boundaries, each a
// 142 Curve-on-Surface.
type TrimmedSurface struct {
	PTS    model.Handle // the underlying surface
	HasOuter bool        // N1
	PTO    model.Handle  // outer boundary 142, valid iff HasOuter
	PTI    []model.Handle
}

func init() {
	model.RegisterFactory(model.KindTrimmedSurface, func() model.Payload { return &TrimmedSurface{} })
}

func (t *TrimmedSurface) Kind() model.Kind { return model.KindTrimmedSurface }

func (t *TrimmedSurface) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 0); err != nil {
		return err
	}
	rawPTS, _, err := s.NextPointer()
	if err != nil {
		return err
	}
	n1, _, err := s.NextInt()
	if err != nil {
		return err
	}
	n2, _, err := s.NextInt()
	if err != nil {
		return err
	}
	if n2 < 0 {
		return badField("TrimmedSurface.ReadPD", "N2 must be >= 0")
	}
	rawPTO, _, err := s.NextPointer()
	if err != nil {
		return err
	}
	rawPTI, err := readInts(s, n2)
	if err != nil {
		return err
	}

	t.PTS = placeholder(rawPTS)
	t.HasOuter = n1 == 1
	t.PTO = placeholder(rawPTO)
	t.PTI = make([]model.Handle, n2)
	for i, raw := range rawPTI {
		t.PTI[i] = placeholder(raw)
	}
	return nil
}

func (t *TrimmedSurface) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	out := []string{formatPointer(deSeq, t.PTS), tokenize.FormatInt(boolInt(t.HasOuter)), tokenize.FormatInt(len(t.PTI)), formatPointer(deSeq, t.PTO)}
	out = append(out, formatPointers(deSeq, t.PTI)...)
	return out, nil
}

func (t *TrimmedSurface) Associate(m *model.Model, self *model.Entity) error {
	var err error
	if t.PTS, err = resolveChild(m, self.Handle(), t.PTS); err != nil {
		return err
	}
	if t.HasOuter {
		if t.PTO, err = resolveChild(m, self.Handle(), t.PTO); err != nil {
			return err
		}
	} else {
		t.PTO = model.NilHandle
	}
	if t.PTI, err = resolveChildren(m, self.Handle(), t.PTI); err != nil {
		return err
	}
	return nil
}

func (t *TrimmedSurface) Rescale(sf float64, self *model.Entity) {}

func (t *TrimmedSurface) Unlink(child model.Handle) bool {
	if t.PTS == child {
		t.PTS = model.NilHandle
		return true
	}
	if t.PTO == child {
		t.PTO = model.NilHandle
		return true
	}
	for i, h := range t.PTI {
		if h == child {
			t.PTI = append(t.PTI[:i], t.PTI[i+1:]...)
			return true
		}
	}
	return false
}

func (t *TrimmedSurface) Children() []model.Handle {
	out := make([]model.Handle, 0, 2+len(t.PTI))
	if !t.PTS.IsNil() {
		out = append(out, t.PTS)
	}
	if !t.PTO.IsNil() {
		out = append(out, t.PTO)
	}
	out = append(out, t.PTI...)
	return out
}
