package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// LoopEdge is one edge-use within a Loop: a reference into an EdgeList,
// an orientation relative to that edge's stored direction, and zero or
// more parameter-space curves (126s, one per isoparametric segment) that
// trace the edge in the owning surface's (u,v) domain.
type LoopEdge struct {
	EdgeListPtr model.Handle
	EdgeIndex   int
	Orientation bool // true = same sense as stored in the edge list
	ParamCurves []model.Handle
}

// Loop implements entity type 508: an ordered, closed sequence of edge
// uses bounding one face region.
type Loop struct {
	Edges []LoopEdge
}

func init() {
	model.RegisterFactory(model.KindLoop, func() model.Payload { return &Loop{} })
}

func (l *Loop) Kind() model.Kind { return model.KindLoop }

func (l *Loop) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 0, 1); err != nil {
		return err
	}
	n, _, err := s.NextInt()
	if err != nil {
		return err
	}
	if n < 1 {
		return invariant("Loop.ReadPD", "edge-use count must be >= 1")
	}
	l.Edges = make([]LoopEdge, n)
	for i := 0; i < n; i++ {
		rawEdgeList, _, err := s.NextPointer()
		if err != nil {
			return err
		}
		idx, _, err := s.NextInt()
		if err != nil {
			return err
		}
		orient, _, err := s.NextInt()
		if err != nil {
			return err
		}
		k, _, err := s.NextInt()
		if err != nil {
			return err
		}
		if k < 0 {
			return badField("Loop.ReadPD", "parameter-curve count must be >= 0")
		}
		curves := make([]model.Handle, k)
		for j := 0; j < k; j++ {
			// ISOPARAM flag precedes each curve pointer; recorded but not
			// retained since no component consults it beyond parsing.
			if _, _, err := s.NextInt(); err != nil {
				return err
			}
			rawCurve, _, err := s.NextPointer()
			if err != nil {
				return err
			}
			curves[j] = placeholder(rawCurve)
		}
		l.Edges[i] = LoopEdge{
			EdgeListPtr: placeholder(rawEdgeList),
			EdgeIndex:   idx,
			Orientation: orient == 1,
			ParamCurves: curves,
		}
	}
	return nil
}

func (l *Loop) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	out := []string{tokenize.FormatInt(len(l.Edges))}
	for _, e := range l.Edges {
		out = append(out,
			formatPointer(deSeq, e.EdgeListPtr),
			tokenize.FormatInt(e.EdgeIndex),
			tokenize.FormatInt(boolInt(e.Orientation)),
			tokenize.FormatInt(len(e.ParamCurves)),
		)
		for _, c := range e.ParamCurves {
			out = append(out, tokenize.FormatInt(0), formatPointer(deSeq, c))
		}
	}
	return out, nil
}

func (l *Loop) Associate(m *model.Model, self *model.Entity) error {
	for i := range l.Edges {
		e := &l.Edges[i]
		var err error
		if e.EdgeListPtr, err = resolveChild(m, self.Handle(), e.EdgeListPtr); err != nil {
			return err
		}
		if e.ParamCurves, err = resolveChildren(m, self.Handle(), e.ParamCurves); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loop) Rescale(sf float64, self *model.Entity) {}

func (l *Loop) Unlink(child model.Handle) bool {
	found := false
	for i := range l.Edges {
		e := &l.Edges[i]
		if e.EdgeListPtr == child {
			e.EdgeListPtr = model.NilHandle
			found = true
		}
		for j, c := range e.ParamCurves {
			if c == child {
				e.ParamCurves = append(e.ParamCurves[:j], e.ParamCurves[j+1:]...)
				found = true
				break
			}
		}
	}
	return found
}

func (l *Loop) Children() []model.Handle {
	var out []model.Handle
	for _, e := range l.Edges {
		if !e.EdgeListPtr.IsNil() {
			out = append(out, e.EdgeListPtr)
		}
		out = append(out, e.ParamCurves...)
	}
	return out
}
