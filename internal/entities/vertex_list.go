package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// VertexList implements entity type 502: an ordered list of model-space
// vertex points, referenced by index from EdgeList (504) entries.
type VertexList struct {
	Vertices [][3]float64
}

func init() {
	model.RegisterFactory(model.KindVertexList, func() model.Payload { return &VertexList{} })
}

func (v *VertexList) Kind() model.Kind { return model.KindVertexList }

func (v *VertexList) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 1); err != nil {
		return err
	}
	n, _, err := s.NextInt()
	if err != nil {
		return err
	}
	if n < 1 {
		return invariant("VertexList.ReadPD", "vertex count must be >= 1")
	}
	v.Vertices = make([][3]float64, n)
	for i := 0; i < n; i++ {
		vals, err := readReals(s, 3)
		if err != nil {
			return err
		}
		v.Vertices[i] = [3]float64{vals[0], vals[1], vals[2]}
	}
	return nil
}

func (v *VertexList) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	out := []string{tokenize.FormatInt(len(v.Vertices))}
	for _, p := range v.Vertices {
		out = append(out, formatReals(p[:], bookkeepingTol)...)
	}
	return out, nil
}

func (v *VertexList) Associate(m *model.Model, self *model.Entity) error { return nil }

func (v *VertexList) Rescale(sf float64, self *model.Entity) {
	for i := range v.Vertices {
		v.Vertices[i][0] *= sf
		v.Vertices[i][1] *= sf
		v.Vertices[i][2] *= sf
	}
}

func (v *VertexList) Unlink(model.Handle) bool { return false }
func (v *VertexList) Children() []model.Handle { return nil }

// At returns the vertex at 1-based index idx, matching the DE-style
// indexing EdgeList entries use.
func (v *VertexList) At(idx int) [3]float64 { return v.Vertices[idx-1] }
