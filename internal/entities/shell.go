package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// ShellFace is one face-use within a Shell: a reference to a Face (510)
// plus an orientation flag relative to that face's own sense.
type ShellFace struct {
	Face        model.Handle
	Orientation bool
}

// Shell implements entity type 514: an ordered, closed collection of
// oriented faces bounding a volume (directly, or as a void within a
// Manifold Solid B-Rep, 186).
type Shell struct {
	Form  int // 1=outer-sense, 2=reversed
	Faces []ShellFace
}

func init() {
	model.RegisterFactory(model.KindShell, func() model.Payload { return &Shell{} })
}

func (sh *Shell) Kind() model.Kind { return model.KindShell }

func (sh *Shell) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 1, 2); err != nil {
		return err
	}
	sh.Form = form
	n, _, err := s.NextInt()
	if err != nil {
		return err
	}
	if n < 1 {
		return invariant("Shell.ReadPD", "face count must be >= 1")
	}
	sh.Faces = make([]ShellFace, n)
	for i := 0; i < n; i++ {
		rawFace, _, err := s.NextPointer()
		if err != nil {
			return err
		}
		orient, _, err := s.NextInt()
		if err != nil {
			return err
		}
		sh.Faces[i] = ShellFace{Face: placeholder(rawFace), Orientation: orient == 1}
	}
	return nil
}

func (sh *Shell) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	out := []string{tokenize.FormatInt(len(sh.Faces))}
	for _, f := range sh.Faces {
		out = append(out, formatPointer(deSeq, f.Face), tokenize.FormatInt(boolInt(f.Orientation)))
	}
	return out, nil
}

func (sh *Shell) Associate(m *model.Model, self *model.Entity) error {
	for i := range sh.Faces {
		var err error
		if sh.Faces[i].Face, err = resolveChild(m, self.Handle(), sh.Faces[i].Face); err != nil {
			return err
		}
	}
	return nil
}

func (sh *Shell) Rescale(sf float64, self *model.Entity) {}

func (sh *Shell) Unlink(child model.Handle) bool {
	for i, f := range sh.Faces {
		if f.Face == child {
			sh.Faces = append(sh.Faces[:i], sh.Faces[i+1:]...)
			return true
		}
	}
	return false
}

func (sh *Shell) Children() []model.Handle {
	out := make([]model.Handle, 0, len(sh.Faces))
	for _, f := range sh.Faces {
		if !f.Face.IsNil() {
			out = append(out, f.Face)
		}
	}
	return out
}
