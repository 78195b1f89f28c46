package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// Face implements entity type 510: a bounded region of a parametric
// surface, given by one outer loop and zero or more inner (hole) loops.
type Face struct {
	Surface    model.Handle
	OuterLoop  model.Handle
	InnerLoops []model.Handle
	OuterFlag  bool // OF: true if the surface normal agrees with the face's sense
}

func init() {
	model.RegisterFactory(model.KindFace, func() model.Payload { return &Face{} })
}

func (f *Face) Kind() model.Kind { return model.KindFace }

func (f *Face) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 1); err != nil {
		return err
	}
	rawSurf, _, err := s.NextPointer()
	if err != nil {
		return err
	}
	n, _, err := s.NextInt()
	if err != nil {
		return err
	}
	if n < 1 {
		return invariant("Face.ReadPD", "loop count must be >= 1 (first loop is the outer boundary)")
	}
	rawOuter, _, err := s.NextPointer()
	if err != nil {
		return err
	}
	of, _, err := s.NextInt()
	if err != nil {
		return err
	}
	rawInner, err := readInts(s, n-1)
	if err != nil {
		return err
	}

	f.Surface = placeholder(rawSurf)
	f.OuterLoop = placeholder(rawOuter)
	f.OuterFlag = of == 1
	f.InnerLoops = make([]model.Handle, len(rawInner))
	for i, r := range rawInner {
		f.InnerLoops[i] = placeholder(r)
	}
	return nil
}

func (f *Face) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	out := []string{
		formatPointer(deSeq, f.Surface),
		tokenize.FormatInt(1 + len(f.InnerLoops)),
		formatPointer(deSeq, f.OuterLoop),
		tokenize.FormatInt(boolInt(f.OuterFlag)),
	}
	out = append(out, formatPointers(deSeq, f.InnerLoops)...)
	return out, nil
}

func (f *Face) Associate(m *model.Model, self *model.Entity) error {
	var err error
	if f.Surface, err = resolveChild(m, self.Handle(), f.Surface); err != nil {
		return err
	}
	if f.OuterLoop, err = resolveChild(m, self.Handle(), f.OuterLoop); err != nil {
		return err
	}
	if f.InnerLoops, err = resolveChildren(m, self.Handle(), f.InnerLoops); err != nil {
		return err
	}
	return nil
}

func (f *Face) Rescale(sf float64, self *model.Entity) {}

func (f *Face) Unlink(child model.Handle) bool {
	if f.Surface == child {
		f.Surface = model.NilHandle
		return true
	}
	if f.OuterLoop == child {
		f.OuterLoop = model.NilHandle
		return true
	}
	for i, h := range f.InnerLoops {
		if h == child {
			f.InnerLoops = append(f.InnerLoops[:i], f.InnerLoops[i+1:]...)
			return true
		}
	}
	return false
}

func (f *Face) Children() []model.Handle {
	out := make([]model.Handle, 0, 2+len(f.InnerLoops))
	if !f.Surface.IsNil() {
		out = append(out, f.Surface)
	}
	if !f.OuterLoop.IsNil() {
		out = append(out, f.OuterLoop)
	}
	out = append(out, f.InnerLoops...)
	return out
}
