package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// CurveOnSurface implements entity type 142: a curve defined as lying on
// a parametric surface, carrying both a parameter-space representation
// (BPTR, a 126 in (u,v)) and a model-space representation (CPTR).
type CurveOnSurface struct {
	CRTN int // 0=unspecified, 1=parameter space, 2=model space, 3=both (creation method)
	SPTR model.Handle
	BPTR model.Handle
	CPTR model.Handle
	PREF int // 0=unspecified, 1=SPTR+BPTR preferred, 2=CPTR preferred
}

func init() {
	model.RegisterFactory(model.KindCurveOnSurface, func() model.Payload { return &CurveOnSurface{} })
}

func (c *CurveOnSurface) Kind() model.Kind { return model.KindCurveOnSurface }

func (c *CurveOnSurface) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 0); err != nil {
		return err
	}
	crtn, _, err := s.NextInt()
	if err != nil {
		return err
	}
	rawSPTR, _, err := s.NextPointer()
	if err != nil {
		return err
	}
	rawBPTR, _, err := s.NextPointer()
	if err != nil {
		return err
	}
	rawCPTR, _, err := s.NextPointer()
	if err != nil {
		return err
	}
	pref, _, err := s.NextInt()
	if err != nil {
		return err
	}
	c.CRTN = crtn
	c.SPTR = placeholder(rawSPTR)
	c.BPTR = placeholder(rawBPTR)
	c.CPTR = placeholder(rawCPTR)
	c.PREF = pref
	return nil
}

func (c *CurveOnSurface) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	return []string{
		tokenize.FormatInt(c.CRTN),
		formatPointer(deSeq, c.SPTR),
		formatPointer(deSeq, c.BPTR),
		formatPointer(deSeq, c.CPTR),
		tokenize.FormatInt(c.PREF),
	}, nil
}

// Associate resolves SPTR/BPTR/CPTR and, per spec.md §9, marks the
// resolved BPTR entity (a 126, or the members of a 102, through
// MarkBoundaryCurve) as the parameter-space boundary curve of this 142 so Rescale can consult a precomputed flag instead of
// walking ancestors.
func (c *CurveOnSurface) Associate(m *model.Model, self *model.Entity) error {
	var err error
	if c.SPTR, err = resolveChild(m, self.Handle(), c.SPTR); err != nil {
		return err
	}
	if c.BPTR, err = resolveChild(m, self.Handle(), c.BPTR); err != nil {
		return err
	}
	if c.CPTR, err = resolveChild(m, self.Handle(), c.CPTR); err != nil {
		return err
	}
	MarkBoundaryCurve(m, c.BPTR)
	return nil
}

func (c *CurveOnSurface) Rescale(sf float64, self *model.Entity) {}

func (c *CurveOnSurface) Unlink(child model.Handle) bool {
	switch child {
	case c.SPTR:
		c.SPTR = model.NilHandle
	case c.BPTR:
		c.BPTR = model.NilHandle
	case c.CPTR:
		c.CPTR = model.NilHandle
	default:
		return false
	}
	return true
}

func (c *CurveOnSurface) Children() []model.Handle {
	var out []model.Handle
	for _, h := range []model.Handle{c.SPTR, c.BPTR, c.CPTR} {
		if !h.IsNil() {
			out = append(out, h)
		}
	}
	return out
}
