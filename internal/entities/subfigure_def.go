package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// SubfigureDef implements entity type 308: a named, nestable group of
// entities that can be instanced (see SubfigureInstance, 408).
type SubfigureDef struct {
	Depth   int
	Name    string
	Members []model.Handle
}

func init() {
	model.RegisterFactory(model.KindSubfigureDef, func() model.Payload { return &SubfigureDef{} })
}

func (sd *SubfigureDef) Kind() model.Kind { return model.KindSubfigureDef }

func (sd *SubfigureDef) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 0); err != nil {
		return err
	}
	depth, _, err := s.NextInt()
	if err != nil {
		return err
	}
	name, _, err := s.NextString()
	if err != nil {
		return err
	}
	n, _, err := s.NextInt()
	if err != nil {
		return err
	}
	if n < 0 {
		return badField("SubfigureDef.ReadPD", "member count must be >= 0")
	}
	raws, err := readInts(s, n)
	if err != nil {
		return err
	}
	sd.Depth = depth
	sd.Name = name
	sd.Members = make([]model.Handle, n)
	for i, r := range raws {
		sd.Members[i] = placeholder(r)
	}
	return nil
}

func (sd *SubfigureDef) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	out := []string{tokenize.FormatInt(sd.Depth), tokenize.FormatHString(sd.Name), tokenize.FormatInt(len(sd.Members))}
	out = append(out, formatPointers(deSeq, sd.Members)...)
	return out, nil
}

func (sd *SubfigureDef) Associate(m *model.Model, self *model.Entity) error {
	resolved, err := resolveChildren(m, self.Handle(), sd.Members)
	if err != nil {
		return err
	}
	sd.Members = resolved
	return nil
}

func (sd *SubfigureDef) Rescale(sf float64, self *model.Entity) {}

func (sd *SubfigureDef) Unlink(child model.Handle) bool {
	for i, h := range sd.Members {
		if h == child {
			sd.Members = append(sd.Members[:i], sd.Members[i+1:]...)
			return true
		}
	}
	return false
}

func (sd *SubfigureDef) Children() []model.Handle { return sd.Members }
