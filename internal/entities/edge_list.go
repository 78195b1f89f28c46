package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// Edge is one tuple of an EdgeList: a model-space curve plus the 1-based
// vertex indices, within possibly different VertexLists, bounding it.
type Edge struct {
	Curve       model.Handle
	StartVertexList model.Handle
	StartVertex     int
	EndVertexList   model.Handle
	EndVertex       int
}

// EdgeList implements entity type 504: an ordered list of model-space
// edges, each a curve bounded by two vertex references.
type EdgeList struct {
	Edges []Edge
}

func init() {
	model.RegisterFactory(model.KindEdgeList, func() model.Payload { return &EdgeList{} })
}

func (el *EdgeList) Kind() model.Kind { return model.KindEdgeList }

func (el *EdgeList) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 1); err != nil {
		return err
	}
	n, _, err := s.NextInt()
	if err != nil {
		return err
	}
	if n < 1 {
		return invariant("EdgeList.ReadPD", "edge count must be >= 1")
	}
	el.Edges = make([]Edge, n)
	for i := 0; i < n; i++ {
		rawCurve, _, err := s.NextPointer()
		if err != nil {
			return err
		}
		rawSVL, _, err := s.NextPointer()
		if err != nil {
			return err
		}
		sv, _, err := s.NextInt()
		if err != nil {
			return err
		}
		rawEVL, _, err := s.NextPointer()
		if err != nil {
			return err
		}
		ev, _, err := s.NextInt()
		if err != nil {
			return err
		}
		el.Edges[i] = Edge{
			Curve:           placeholder(rawCurve),
			StartVertexList: placeholder(rawSVL),
			StartVertex:     sv,
			EndVertexList:   placeholder(rawEVL),
			EndVertex:       ev,
		}
	}
	return nil
}

func (el *EdgeList) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	out := []string{tokenize.FormatInt(len(el.Edges))}
	for _, e := range el.Edges {
		out = append(out,
			formatPointer(deSeq, e.Curve),
			formatPointer(deSeq, e.StartVertexList),
			tokenize.FormatInt(e.StartVertex),
			formatPointer(deSeq, e.EndVertexList),
			tokenize.FormatInt(e.EndVertex),
		)
	}
	return out, nil
}

func (el *EdgeList) Associate(m *model.Model, self *model.Entity) error {
	for i := range el.Edges {
		e := &el.Edges[i]
		var err error
		if e.Curve, err = resolveChild(m, self.Handle(), e.Curve); err != nil {
			return err
		}
		if e.StartVertexList, err = resolveChild(m, self.Handle(), e.StartVertexList); err != nil {
			return err
		}
		if e.EndVertexList, err = resolveChild(m, self.Handle(), e.EndVertexList); err != nil {
			return err
		}
	}
	return nil
}

func (el *EdgeList) Rescale(sf float64, self *model.Entity) {}

func (el *EdgeList) Unlink(child model.Handle) bool {
	found := false
	for i := range el.Edges {
		e := &el.Edges[i]
		if e.Curve == child {
			e.Curve = model.NilHandle
			found = true
		}
		if e.StartVertexList == child {
			e.StartVertexList = model.NilHandle
			found = true
		}
		if e.EndVertexList == child {
			e.EndVertexList = model.NilHandle
			found = true
		}
	}
	return found
}

func (el *EdgeList) Children() []model.Handle {
	out := make([]model.Handle, 0, len(el.Edges)*3)
	for _, e := range el.Edges {
		for _, h := range []model.Handle{e.Curve, e.StartVertexList, e.EndVertexList} {
			if !h.IsNil() {
				out = append(out, h)
			}
		}
	}
	return out
}
