package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// ColorDef implements entity type 314: a named RGB colour, each
// component a percentage in [0, 100], referenced by other entities'
// Color status field (via a pointer rather than the small built-in enum).
type ColorDef struct {
	R, G, B float64
	Name    string
}

func init() {
	model.RegisterFactory(model.KindColorDef, func() model.Payload { return &ColorDef{} })
}

func (c *ColorDef) Kind() model.Kind { return model.KindColorDef }

func (c *ColorDef) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 0); err != nil {
		return err
	}
	vals, err := readReals(s, 3)
	if err != nil {
		return err
	}
	for _, v := range vals {
		if v < 0 || v > 100 {
			return badField("ColorDef.ReadPD", "RGB components must be within [0, 100]")
		}
	}
	c.R, c.G, c.B = vals[0], vals[1], vals[2]
	name, _, err := s.NextString()
	if err != nil {
		return err
	}
	c.Name = name
	return nil
}

func (c *ColorDef) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	out := formatReals([]float64{c.R, c.G, c.B}, bookkeepingTol)
	if c.Name != "" {
		out = append(out, tokenize.FormatHString(c.Name))
	}
	return out, nil
}

func (c *ColorDef) Associate(m *model.Model, self *model.Entity) error { return nil }
func (c *ColorDef) Rescale(sf float64, self *model.Entity)            {}
func (c *ColorDef) Unlink(model.Handle) bool                          { return false }
func (c *ColorDef) Children() []model.Handle                          { return nil }
