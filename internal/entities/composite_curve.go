package entities

import (
	"math"

	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// CompositeCurve implements entity type 102: an ordered chain of curve
// entities whose consecutive members must meet end-to-end.
type CompositeCurve struct {
	Members []model.Handle
}

func init() {
	model.RegisterFactory(model.KindCompositeCurve, func() model.Payload { return &CompositeCurve{} })
}

func (cc *CompositeCurve) Kind() model.Kind { return model.KindCompositeCurve }

func (cc *CompositeCurve) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 0); err != nil {
		return err
	}
	n, _, err := s.NextInt()
	if err != nil {
		return err
	}
	if n < 1 {
		return invariant("CompositeCurve.ReadPD", "member count must be >= 1")
	}
	raws, err := readInts(s, n)
	if err != nil {
		return err
	}
	cc.Members = make([]model.Handle, n)
	for i, r := range raws {
		cc.Members[i] = placeholder(r)
	}
	return nil
}

func (cc *CompositeCurve) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	out := []string{tokenize.FormatInt(len(cc.Members))}
	out = append(out, formatPointers(deSeq, cc.Members)...)
	return out, nil
}

// VetoParent refuses to become a child of another Composite Curve, per
// spec.md §3: "Composite Curve may not contain another Composite Curve."
// AddReference passes the *child's* payload and the *parent's* kind, so
// an inner 102 vetoes ever being added beneath an outer 102.
func (cc *CompositeCurve) VetoParent(kind model.Kind) bool {
	return kind == model.KindCompositeCurve
}

// Associate resolves every member pointer, then checks the spec.md §3
// sequencing and interleaving invariants: consecutive members must share
// an endpoint within a cubic tolerance of the model's minimum resolution,
// consecutive Point members are forbidden (except the one permissive
// two-member logical/positional case the Policy knob controls), and a
// single-Point composite curve is rejected outright.
func (cc *CompositeCurve) Associate(m *model.Model, self *model.Entity) error {
	resolved, err := resolveChildren(m, self.Handle(), cc.Members)
	if err != nil {
		return err
	}
	cc.Members = resolved

	if len(cc.Members) == 1 {
		if e := m.Get(cc.Members[0]); e != nil && e.Base.Type == model.KindPoint {
			return invariant("CompositeCurve.Associate", "a composite curve of exactly one Point member is forbidden")
		}
	}

	tol := m.Global.MinResolution
	if tol <= 0 {
		tol = 1e-6
	}
	cubicTol := tol * tol * tol

	for i := 0; i < len(cc.Members); i++ {
		e := m.Get(cc.Members[i])
		if e == nil {
			continue
		}
		if e.Base.Type == model.KindPoint && i+1 < len(cc.Members) {
			next := m.Get(cc.Members[i+1])
			if next != nil && next.Base.Type == model.KindPoint {
				onlyTwo := len(cc.Members) == 2
				logicalPositional := self.Base.Use == model.UseLogicalPositional
				if !(onlyTwo && logicalPositional && m.Policy.PermissiveInterleave) {
					return invariant("CompositeCurve.Associate", "consecutive Point members are forbidden unless they are the only two members and the use flag is logical/positional")
				}
			}
		}

		if i+1 >= len(cc.Members) {
			continue
		}
		cur, ok1 := e.Data.(Curve)
		next := m.Get(cc.Members[i+1])
		if next == nil || !ok1 {
			continue
		}
		nxt, ok2 := next.Data.(Curve)
		if !ok2 {
			continue
		}
		end := cur.EndPoint()
		start := nxt.StartPoint()
		d := [3]float64{end[0] - start[0], end[1] - start[1], end[2] - start[2]}
		dist := math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
		if dist > cubicTol {
			return invariant("CompositeCurve.Associate", "segment endpoints do not coincide within tolerance")
		}
	}
	return nil
}

func (cc *CompositeCurve) Rescale(sf float64, self *model.Entity) {}

func (cc *CompositeCurve) Unlink(child model.Handle) bool {
	for i, h := range cc.Members {
		if h == child {
			cc.Members = append(cc.Members[:i], cc.Members[i+1:]...)
			return true
		}
	}
	return false
}

func (cc *CompositeCurve) Children() []model.Handle { return cc.Members }
