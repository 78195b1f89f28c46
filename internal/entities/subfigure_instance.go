package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// SubfigureInstance implements entity type 408: a placed instance of a
// SubfigureDef (308), positioned by a translation and a uniform scale.
type SubfigureInstance struct {
	Def         model.Handle
	Translation [3]float64
	Scale       float64
}

func init() {
	model.RegisterFactory(model.KindSubfigureInstance, func() model.Payload {
		return &SubfigureInstance{Scale: 1}
	})
}

func (si *SubfigureInstance) Kind() model.Kind { return model.KindSubfigureInstance }

func (si *SubfigureInstance) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 0); err != nil {
		return err
	}
	raw, _, err := s.NextPointer()
	if err != nil {
		return err
	}
	vals, err := readReals(s, 4)
	if err != nil {
		return err
	}
	si.Def = placeholder(raw)
	si.Translation = [3]float64{vals[0], vals[1], vals[2]}
	si.Scale = vals[3]
	return nil
}

func (si *SubfigureInstance) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	out := []string{formatPointer(deSeq, si.Def)}
	out = append(out, formatReals(si.Translation[:], bookkeepingTol)...)
	out = append(out, tokenize.FormatReal(si.Scale, bookkeepingTol))
	return out, nil
}

func (si *SubfigureInstance) Associate(m *model.Model, self *model.Entity) (err error) {
	si.Def, err = resolveChild(m, self.Handle(), si.Def)
	return err
}

func (si *SubfigureInstance) Rescale(sf float64, self *model.Entity) {
	si.Translation[0] *= sf
	si.Translation[1] *= sf
	si.Translation[2] *= sf
}

func (si *SubfigureInstance) Unlink(child model.Handle) bool {
	if si.Def == child {
		si.Def = model.NilHandle
		return true
	}
	return false
}

func (si *SubfigureInstance) Children() []model.Handle {
	if si.Def.IsNil() {
		return nil
	}
	return []model.Handle{si.Def}
}
