package entities

import (
	"math"

	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/nurbs"
	"iges-kernel/internal/tokenize"
)

// NURBSCurve implements entity type 126: a non-uniform rational B-spline
// curve. K is the upper index of control points (nCoeffs = K+1), M is the
// basis-function degree (nKnots = K+M+2).
type NURBSCurve struct {
	Form int // 0..5

	K, M int

	PropPlanar     bool // PROP1
	PropClosed     bool // PROP2
	PropPolynomial bool // PROP3: true means every weight == 1 (non-rational)
	PropPeriodic   bool // PROP4

	Knots         []float64
	Weights       []float64
	ControlPoints [][3]float64

	V0, V1       float64
	PlanarNormal [3]float64

	// isBoundaryCurve is precomputed during Associate by a 142's Associate
	// method when this curve is resolved as its BPTR, per spec.md §9
	// ("precompute a boolean flag ... reuse it in rescale").
	isBoundaryCurve bool

	owner model.Handle // this entity's own handle, set on first Associate
}

func init() {
	model.RegisterFactory(model.KindNURBSCurve, func() model.Payload { return &NURBSCurve{} })
}

func (n *NURBSCurve) Kind() model.Kind { return model.KindNURBSCurve }

func (n *NURBSCurve) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 0, 1, 2, 3, 4, 5); err != nil {
		return err
	}
	n.Form = form

	hdr, err := readInts(s, 2)
	if err != nil {
		return err
	}
	n.K, n.M = hdr[0], hdr[1]
	if n.K < 1 || n.M < 1 {
		return invariant("NURBSCurve.ReadPD", "K and M must both be >= 1")
	}

	props, err := readInts(s, 4)
	if err != nil {
		return err
	}
	for _, p := range props {
		if p != 0 && p != 1 {
			return badField("NURBSCurve.ReadPD", "PROP1..PROP4 must be 0 or 1")
		}
	}
	n.PropPlanar, n.PropClosed, n.PropPolynomial, n.PropPeriodic = props[0] == 1, props[1] == 1, props[2] == 1, props[3] == 1

	nKnots := n.K + n.M + 2
	nCoeffs := n.K + 1

	n.Knots, err = readReals(s, nKnots)
	if err != nil {
		return err
	}
	n.Weights, err = readReals(s, nCoeffs)
	if err != nil {
		return err
	}
	for _, w := range n.Weights {
		if w <= 0 {
			return invariant("NURBSCurve.ReadPD", "all weights must be > 0")
		}
	}

	n.ControlPoints = make([][3]float64, nCoeffs)
	for i := 0; i < nCoeffs; i++ {
		vals, err := readReals(s, 3)
		if err != nil {
			return err
		}
		n.ControlPoints[i] = [3]float64{vals[0], vals[1], vals[2]}
	}

	vtail, err := readReals(s, 2)
	if err != nil {
		return err
	}
	n.V0, n.V1 = vtail[0], vtail[1]

	normal, err := readReals(s, 3)
	if err != nil {
		return err
	}
	n.PlanarNormal = [3]float64{normal[0], normal[1], normal[2]}

	return nil
}

func (n *NURBSCurve) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	out := formatInts([]int{n.K, n.M})
	out = append(out, formatInts([]int{boolInt(n.PropPlanar), boolInt(n.PropClosed), boolInt(n.PropPolynomial), boolInt(n.PropPeriodic)})...)
	out = append(out, formatReals(n.Knots, nurbsTol)...)
	out = append(out, formatReals(n.Weights, weightTol)...)
	for _, cp := range n.ControlPoints {
		out = append(out, formatReals(cp[:], nurbsTol)...)
	}
	out = append(out, formatReals([]float64{n.V0, n.V1}, bookkeepingTol)...)
	out = append(out, formatReals(n.PlanarNormal[:], bookkeepingTol)...)
	return out, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (n *NURBSCurve) Associate(m *model.Model, self *model.Entity) error {
	n.owner = self.Handle()
	if err := n.checkPlanarity(); err != nil {
		return err
	}
	return nil
}

func (n *NURBSCurve) checkPlanarity() error {
	if !n.PropPlanar || len(n.ControlPoints) == 0 {
		return nil
	}
	return checkPlanar(n.ControlPoints, n.PlanarNormal, 1e-8)
}

// SetBoundaryCurve marks this curve as the parameter-space boundary
// (BPTR) of some Curve-on-Surface entity; CurveOnSurface.Associate calls
// this on the entity it resolves as its own BPTR field.
func (n *NURBSCurve) SetBoundaryCurve() { n.isBoundaryCurve = true }

// IsBoundaryCurve reports the precomputed flag consulted by Rescale.
func (n *NURBSCurve) IsBoundaryCurve() bool { return n.isBoundaryCurve }

// Rescale multiplies length-bearing fields by sf. If this curve (or any
// ancestor) was precomputed as the parameter-space boundary of a
// Curve-on-Surface, only the Z coordinates of its control points are
// scaled (spec.md §4.6/§9); otherwise every coordinate scales.
func (n *NURBSCurve) Rescale(sf float64, self *model.Entity) {
	for i := range n.ControlPoints {
		if n.isBoundaryCurve {
			n.ControlPoints[i][2] *= sf
		} else {
			n.ControlPoints[i][0] *= sf
			n.ControlPoints[i][1] *= sf
			n.ControlPoints[i][2] *= sf
		}
	}
}

func (n *NURBSCurve) Unlink(model.Handle) bool { return false }
func (n *NURBSCurve) Children() []model.Handle { return nil }

// GetNURBSData returns the curve's defining arrays.
func (n *NURBSCurve) GetNURBSData() (k, mdeg int, knots, weights []float64, pts [][3]float64) {
	return n.K, n.M, n.Knots, n.Weights, n.ControlPoints
}

// SetNURBSData replaces the curve's defining arrays, invalidating any
// cached evaluator handle first (spec.md §5: "the old handle is released
// before the new one is constructed").
func (n *NURBSCurve) SetNURBSData(mdl *model.Model, k, mdeg int, knots, weights []float64, pts [][3]float64) error {
	if mdl.NURBSCache != nil {
		mdl.NURBSCache.Invalidate(uint32(n.owner))
	}
	if len(knots) != k+mdeg+2 {
		return invariant("NURBSCurve.SetNURBSData", "nKnots must equal K+M+2")
	}
	if len(pts) != k+1 || len(weights) != k+1 {
		return invariant("NURBSCurve.SetNURBSData", "nCoeffs must equal K+1")
	}
	for _, w := range weights {
		if w <= 0 {
			return invariant("NURBSCurve.SetNURBSData", "all weights must be > 0")
		}
	}
	n.K, n.M, n.Knots, n.Weights, n.ControlPoints = k, mdeg, knots, weights, pts
	return nil
}

func (n *NURBSCurve) IsClosed() bool   { return n.PropClosed }
func (n *NURBSCurve) IsPlanar() bool   { return n.PropPlanar }
func (n *NURBSCurve) IsPeriodic() bool { return n.PropPeriodic }

// IsRational reports whether the curve is a true rational curve (some
// weight != 1), the inverse of the PROP3 "polynomial" flag.
func (n *NURBSCurve) IsRational() bool { return !n.PropPolynomial }

// IgnoresHierarchy reports that NURBS Curve accepts any value in the DE
// Hierarchy status field, per spec.md §4.5.
func (n *NURBSCurve) IgnoresHierarchy() bool { return true }

func (n *NURBSCurve) curveHandle(mdl *model.Model) (nurbs.CurveHandle, error) {
	return mdl.NURBSCache.Resolve(uint32(n.owner), func(eval nurbs.Evaluator) (nurbs.CurveHandle, error) {
		return eval.Construct(n.K+1, n.M+1, n.Knots, n.ControlPoints, n.Weights)
	})
}

// Interpolate evaluates the curve at the parameter V0 + frac·(V1-V0).
// The source this module is grounded on computes this correctly here but
// miscomputes GetEndPoint by reusing V1 unconditionally inside
// Interpolate itself (spec.md §9's third Open Question); this
// implementation always evaluates at the parameter the caller actually
// asked for.
func (n *NURBSCurve) Interpolate(mdl *model.Model, frac float64) ([3]float64, error) {
	h, err := n.curveHandle(mdl)
	if err != nil {
		return [3]float64{}, err
	}
	u := n.V0 + frac*(n.V1-n.V0)
	return mdl.NURBSCache.Evaluator().Evaluate(h, u)
}

// GetStartPoint evaluates the curve at V0.
func (n *NURBSCurve) GetStartPoint(mdl *model.Model) ([3]float64, error) {
	h, err := n.curveHandle(mdl)
	if err != nil {
		return [3]float64{}, err
	}
	return mdl.NURBSCache.Evaluator().Evaluate(h, n.V0)
}

// GetEndPoint evaluates the curve at V1.
func (n *NURBSCurve) GetEndPoint(mdl *model.Model) ([3]float64, error) {
	h, err := n.curveHandle(mdl)
	if err != nil {
		return [3]float64{}, err
	}
	return mdl.NURBSCache.Evaluator().Evaluate(h, n.V1)
}

// StartPoint/EndPoint satisfy the Curve interface using the control
// polygon's endpoints directly — a cheap, evaluator-free approximation
// used only for Composite Curve sequencing checks, which compare against
// a cubic tolerance already derived from minResolution.
func (n *NURBSCurve) StartPoint() [3]float64 {
	if len(n.ControlPoints) == 0 {
		return [3]float64{}
	}
	return n.ControlPoints[0]
}

func (n *NURBSCurve) EndPoint() [3]float64 {
	if len(n.ControlPoints) == 0 {
		return [3]float64{}
	}
	return n.ControlPoints[len(n.ControlPoints)-1]
}

func checkPlanar(pts [][3]float64, normal [3]float64, tol float64) error {
	if len(pts) == 0 {
		return nil
	}
	nl := normal[0]*normal[0] + normal[1]*normal[1] + normal[2]*normal[2]
	if nl < 1e-24 {
		return invariant("checkPlanar", "planar normal must be a unit vector")
	}
	if math.Abs(math.Sqrt(nl)-1) > 1e-6 {
		return invariant("checkPlanar", "planar normal must be a unit vector")
	}
	p0 := pts[0]
	for _, p := range pts[1:] {
		d := [3]float64{p[0] - p0[0], p[1] - p0[1], p[2] - p0[2]}
		dot := d[0]*normal[0] + d[1]*normal[1] + d[2]*normal[2]
		if dot < 0 {
			dot = -dot
		}
		if dot >= tol {
			return invariant("checkPlanar", "control points are not coplanar within tolerance")
		}
	}
	return nil
}
