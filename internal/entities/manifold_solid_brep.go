package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// voidShell pairs a void (interior) shell with its orientation flag
// relative to the shell's own stored sense.
type voidShell struct {
	Shell       model.Handle
	Orientation bool
}

// ManifoldSolidBRep implements entity type 186 (Manifold Solid B-Rep
// Object): one outer shell plus zero or more void shells, each with an
// orientation flag. Grounded in original_source's entity186.{h,cpp},
// since spec.md's catalogue table omits 186 though its identity set
// names it — the natural closure of the already-specified Face/Loop/
// Edge/Vertex/Shell chain.
type ManifoldSolidBRep struct {
	OuterShell      model.Handle
	OuterOrientation bool
	Voids           []voidShell
}

func init() {
	model.RegisterFactory(model.KindManifoldSolidBRep, func() model.Payload { return &ManifoldSolidBRep{} })
}

func (ms *ManifoldSolidBRep) Kind() model.Kind { return model.KindManifoldSolidBRep }

func (ms *ManifoldSolidBRep) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 0); err != nil {
		return err
	}
	rawShell, _, err := s.NextPointer()
	if err != nil {
		return err
	}
	sof, _, err := s.NextInt()
	if err != nil {
		return err
	}
	n, _, err := s.NextInt()
	if err != nil {
		return err
	}
	if n < 0 {
		return badField("ManifoldSolidBRep.ReadPD", "void-shell count must be >= 0")
	}
	ms.OuterShell = placeholder(rawShell)
	ms.OuterOrientation = sof == 1
	ms.Voids = make([]voidShell, n)
	for i := 0; i < n; i++ {
		rawVoid, _, err := s.NextPointer()
		if err != nil {
			return err
		}
		vof, _, err := s.NextInt()
		if err != nil {
			return err
		}
		ms.Voids[i] = voidShell{Shell: placeholder(rawVoid), Orientation: vof == 1}
	}
	return nil
}

func (ms *ManifoldSolidBRep) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	out := []string{
		formatPointer(deSeq, ms.OuterShell),
		tokenize.FormatInt(boolInt(ms.OuterOrientation)),
		tokenize.FormatInt(len(ms.Voids)),
	}
	for _, v := range ms.Voids {
		out = append(out, formatPointer(deSeq, v.Shell), tokenize.FormatInt(boolInt(v.Orientation)))
	}
	return out, nil
}

func (ms *ManifoldSolidBRep) Associate(m *model.Model, self *model.Entity) error {
	var err error
	if ms.OuterShell, err = resolveChild(m, self.Handle(), ms.OuterShell); err != nil {
		return err
	}
	for i := range ms.Voids {
		if ms.Voids[i].Shell, err = resolveChild(m, self.Handle(), ms.Voids[i].Shell); err != nil {
			return err
		}
	}
	return nil
}

func (ms *ManifoldSolidBRep) Rescale(sf float64, self *model.Entity) {}

func (ms *ManifoldSolidBRep) Unlink(child model.Handle) bool {
	if ms.OuterShell == child {
		ms.OuterShell = model.NilHandle
		return true
	}
	for i, v := range ms.Voids {
		if v.Shell == child {
			ms.Voids = append(ms.Voids[:i], ms.Voids[i+1:]...)
			return true
		}
	}
	return false
}

func (ms *ManifoldSolidBRep) Children() []model.Handle {
	out := make([]model.Handle, 0, 1+len(ms.Voids))
	if !ms.OuterShell.IsNil() {
		out = append(out, ms.OuterShell)
	}
	for _, v := range ms.Voids {
		if !v.Shell.IsNil() {
			out = append(out, v.Shell)
		}
	}
	return out
}
