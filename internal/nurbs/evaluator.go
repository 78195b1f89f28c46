// Package nurbs wraps NURBS curve evaluation behind the narrow external
// interface spec.md §6 mandates ("construct curve / evaluate point /
// normalise parameter range / test closure"), so the model never holds a
// library-specific opaque pointer in its own entity state (spec.md §9,
// "External NURBS library").
package nurbs

import "iges-kernel/internal/igeserr"

// Closure classifies a curve's topology within a tolerance.
type Closure int

const (
	ClosureOpen Closure = iota
	ClosureClosed
	ClosurePeriodic
)

// CurveHandle is the opaque scratch resource returned by Construct. Its
// zero value names no curve.
type CurveHandle uint64

// Evaluator is the external collaborator interface: the four curve
// operations (construct, evaluate, parameter range, closure test) plus
// Release for the scratch resource. A scoped cache (cache.go) sits in front of an Evaluator so a 126
// entity's own state never stores the handle beyond one lookup.
type Evaluator interface {
	// Construct builds a curve from nCoeff basis functions of the given
	// order (M+1), with nCoeff+order knots, nCoeff 3D control points, and
	// nCoeff weights (all 1 for a polynomial, non-rational curve).
	Construct(nCoeff, order int, knots []float64, coeffs [][3]float64, weights []float64) (CurveHandle, error)

	// Evaluate returns the curve's position at parameter u.
	Evaluate(h CurveHandle, u float64) ([3]float64, error)

	// ParamRange returns the curve's natural parameter domain.
	ParamRange(h CurveHandle) (v0, v1 float64)

	// ClassifyClosure reports whether the curve closes on itself (its
	// first and last control points coincide within tol) and, if so,
	// whether tangency also matches at the seam (periodic).
	ClassifyClosure(h CurveHandle, tol float64) Closure

	// Release frees any scratch resource held for h. Idempotent.
	Release(h CurveHandle)
}

var errNoSuchCurve = igeserr.New(igeserr.ExternalFailure, "nurbs", nil)
