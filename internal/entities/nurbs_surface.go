package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// NURBSSurface implements entity type 128: the 2-D analogue of 126. K1,K2
// are the upper indices of the control-point grid in each parametric
// direction; M1,M2 are the corresponding basis-function degrees.
type NURBSSurface struct {
	Form int // 0..9

	K1, K2 int
	M1, M2 int

	PropClosedU    bool // PROP1
	PropClosedV    bool // PROP2
	PropPolynomial bool // PROP3
	PropPeriodicU  bool // PROP4
	PropPeriodicV  bool // PROP5

	KnotsU, KnotsV []float64

	// Weights and ControlPoints are row-major over (K1+1) rows by (K2+1)
	// columns: index i*(K2+1)+j.
	Weights       []float64
	ControlPoints [][3]float64

	U0, U1, V0, V1 float64
}

func init() {
	model.RegisterFactory(model.KindNURBSSurface, func() model.Payload { return &NURBSSurface{} })
}

func (n *NURBSSurface) Kind() model.Kind { return model.KindNURBSSurface }

func (n *NURBSSurface) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9); err != nil {
		return err
	}
	n.Form = form

	hdr, err := readInts(s, 4)
	if err != nil {
		return err
	}
	n.K1, n.K2, n.M1, n.M2 = hdr[0], hdr[1], hdr[2], hdr[3]
	if n.K1 < 1 || n.K2 < 1 || n.M1 < 1 || n.M2 < 1 {
		return invariant("NURBSSurface.ReadPD", "K1,K2,M1,M2 must all be >= 1")
	}

	props, err := readInts(s, 5)
	if err != nil {
		return err
	}
	for _, p := range props {
		if p != 0 && p != 1 {
			return badField("NURBSSurface.ReadPD", "PROP1..PROP5 must be 0 or 1")
		}
	}
	n.PropClosedU, n.PropClosedV = props[0] == 1, props[1] == 1
	n.PropPolynomial = props[2] == 1
	n.PropPeriodicU, n.PropPeriodicV = props[3] == 1, props[4] == 1

	n.KnotsU, err = readReals(s, n.K1+n.M1+2)
	if err != nil {
		return err
	}
	n.KnotsV, err = readReals(s, n.K2+n.M2+2)
	if err != nil {
		return err
	}

	rows, cols := n.K1+1, n.K2+1
	n.Weights, err = readReals(s, rows*cols)
	if err != nil {
		return err
	}
	for _, w := range n.Weights {
		if w <= 0 {
			return invariant("NURBSSurface.ReadPD", "all weights must be > 0")
		}
	}

	n.ControlPoints = make([][3]float64, rows*cols)
	for i := range n.ControlPoints {
		vals, err := readReals(s, 3)
		if err != nil {
			return err
		}
		n.ControlPoints[i] = [3]float64{vals[0], vals[1], vals[2]}
	}

	tail, err := readReals(s, 4)
	if err != nil {
		return err
	}
	n.U0, n.U1, n.V0, n.V1 = tail[0], tail[1], tail[2], tail[3]
	return nil
}

func (n *NURBSSurface) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	out := formatInts([]int{n.K1, n.K2, n.M1, n.M2})
	out = append(out, formatInts([]int{
		boolInt(n.PropClosedU), boolInt(n.PropClosedV), boolInt(n.PropPolynomial),
		boolInt(n.PropPeriodicU), boolInt(n.PropPeriodicV),
	})...)
	out = append(out, formatReals(n.KnotsU, nurbsTol)...)
	out = append(out, formatReals(n.KnotsV, nurbsTol)...)
	out = append(out, formatReals(n.Weights, weightTol)...)
	for _, cp := range n.ControlPoints {
		out = append(out, formatReals(cp[:], nurbsTol)...)
	}
	out = append(out, formatReals([]float64{n.U0, n.U1, n.V0, n.V1}, bookkeepingTol)...)
	return out, nil
}

func (n *NURBSSurface) Associate(m *model.Model, self *model.Entity) error { return nil }

// Rescale multiplies every control point's coordinates by sf; surfaces
// are never themselves the parameter-space boundary of a 142 (only
// curves are, per spec.md §3), so there is no context-sensitive case
// here.
func (n *NURBSSurface) Rescale(sf float64, self *model.Entity) {
	for i := range n.ControlPoints {
		n.ControlPoints[i][0] *= sf
		n.ControlPoints[i][1] *= sf
		n.ControlPoints[i][2] *= sf
	}
}

func (n *NURBSSurface) Unlink(model.Handle) bool { return false }
func (n *NURBSSurface) Children() []model.Handle { return nil }

func (n *NURBSSurface) IsRational() bool { return !n.PropPolynomial }

// ControlPointAt returns the control point at grid row i, column j.
func (n *NURBSSurface) ControlPointAt(i, j int) [3]float64 {
	return n.ControlPoints[i*(n.K2+1)+j]
}
