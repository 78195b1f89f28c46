package nurbs

import (
	"fmt"
	"math"
	"sync"

	"iges-kernel/internal/igeserr"
)

// curveData is the scratch resource a DefaultEvaluator keeps for one
// constructed curve: a plain copy of its defining arrays, sufficient to
// re-evaluate via De Boor's algorithm.
type curveData struct {
	order   int // M+1, the basis-function order
	knots   []float64
	coeffs  [][3]float64
	weights []float64
}

// DefaultEvaluator implements Evaluator with a from-scratch De Boor
// evaluation, since no B-spline/NURBS library is available in the
// retrieval pack (see DESIGN.md). It is the Evaluator this module wires
// into internal/construct and internal/entities by default; production
// callers may supply any other Evaluator satisfying the same interface.
type DefaultEvaluator struct {
	mu     sync.Mutex
	next   CurveHandle
	curves map[CurveHandle]curveData
}

// NewDefaultEvaluator returns a ready-to-use DefaultEvaluator.
func NewDefaultEvaluator() *DefaultEvaluator {
	return &DefaultEvaluator{curves: make(map[CurveHandle]curveData)}
}

func (e *DefaultEvaluator) Construct(nCoeff, order int, knots []float64, coeffs [][3]float64, weights []float64) (CurveHandle, error) {
	if nCoeff < 1 || order < 1 {
		return 0, igeserr.New(igeserr.ExternalFailure, "DefaultEvaluator.Construct", fmt.Errorf("nCoeff=%d order=%d must both be >= 1", nCoeff, order))
	}
	if len(knots) != nCoeff+order {
		return 0, igeserr.New(igeserr.ExternalFailure, "DefaultEvaluator.Construct", fmt.Errorf("expected %d knots, got %d", nCoeff+order, len(knots)))
	}
	if len(coeffs) != nCoeff || len(weights) != nCoeff {
		return 0, igeserr.New(igeserr.ExternalFailure, "DefaultEvaluator.Construct", fmt.Errorf("expected %d control points/weights, got %d/%d", nCoeff, len(coeffs), len(weights)))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.next++
	h := e.next
	e.curves[h] = curveData{
		order:   order,
		knots:   append([]float64(nil), knots...),
		coeffs:  append([][3]float64(nil), coeffs...),
		weights: append([]float64(nil), weights...),
	}
	return h, nil
}

func (e *DefaultEvaluator) Evaluate(h CurveHandle, u float64) ([3]float64, error) {
	e.mu.Lock()
	cd, ok := e.curves[h]
	e.mu.Unlock()
	if !ok {
		return [3]float64{}, igeserr.New(igeserr.ExternalFailure, "DefaultEvaluator.Evaluate", fmt.Errorf("no such curve handle %d", h))
	}
	return deBoorRational(cd, u), nil
}

func (e *DefaultEvaluator) ParamRange(h CurveHandle) (v0, v1 float64) {
	e.mu.Lock()
	cd, ok := e.curves[h]
	e.mu.Unlock()
	if !ok {
		return 0, 0
	}
	n := len(cd.knots)
	return cd.knots[cd.order-1], cd.knots[n-cd.order]
}

func (e *DefaultEvaluator) ClassifyClosure(h CurveHandle, tol float64) Closure {
	e.mu.Lock()
	cd, ok := e.curves[h]
	e.mu.Unlock()
	if !ok || len(cd.coeffs) < 2 {
		return ClosureOpen
	}
	first, last := cd.coeffs[0], cd.coeffs[len(cd.coeffs)-1]
	if dist(first, last) > tol {
		return ClosureOpen
	}
	// A rough tangency check: compare the chord direction of the first and
	// last control-point segments. Coincident endpoints with opposing or
	// unrelated chord directions classify as merely closed, not periodic.
	d0 := sub(cd.coeffs[1], cd.coeffs[0])
	d1 := sub(cd.coeffs[len(cd.coeffs)-1], cd.coeffs[len(cd.coeffs)-2])
	if approxParallel(d0, d1, tol) {
		return ClosurePeriodic
	}
	return ClosureClosed
}

func (e *DefaultEvaluator) Release(h CurveHandle) {
	e.mu.Lock()
	delete(e.curves, h)
	e.mu.Unlock()
}

func dist(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func sub(a, b [3]float64) [3]float64 { return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func approxParallel(a, b [3]float64, tol float64) bool {
	cx := a[1]*b[2] - a[2]*b[1]
	cy := a[2]*b[0] - a[0]*b[2]
	cz := a[0]*b[1] - a[1]*b[0]
	return cx*cx+cy*cy+cz*cz < tol
}

// deBoorRational evaluates a rational B-spline curve at u via De Boor's
// algorithm applied to homogeneous (wx, wy, wz, w) coordinates, then
// de-homogenizes.
func deBoorRational(cd curveData, u float64) [3]float64 {
	n := len(cd.coeffs) - 1
	p := cd.order - 1
	knots := cd.knots

	k := p
	for i := p; i <= n; i++ {
		if u >= knots[i] && u <= knots[i+1] {
			k = i
			break
		}
		k = i
	}

	type hpoint struct{ x, y, z, w float64 }
	d := make([]hpoint, p+1)
	for j := 0; j <= p; j++ {
		idx := k - p + j
		if idx < 0 {
			idx = 0
		}
		if idx > n {
			idx = n
		}
		w := cd.weights[idx]
		c := cd.coeffs[idx]
		d[j] = hpoint{c[0] * w, c[1] * w, c[2] * w, w}
	}

	for r := 1; r <= p; r++ {
		for j := p; j >= r; j-- {
			idx := k - p + j
			left := idx
			right := idx + p - r + 1
			if left < 0 {
				left = 0
			}
			if right >= len(knots) {
				right = len(knots) - 1
			}
			denom := knots[right] - knots[left]
			var alpha float64
			if denom != 0 {
				alpha = (u - knots[left]) / denom
			}
			d[j] = hpoint{
				x: (1-alpha)*d[j-1].x + alpha*d[j].x,
				y: (1-alpha)*d[j-1].y + alpha*d[j].y,
				z: (1-alpha)*d[j-1].z + alpha*d[j].z,
				w: (1-alpha)*d[j-1].w + alpha*d[j].w,
			}
		}
	}

	result := d[p]
	if result.w == 0 {
		return [3]float64{result.x, result.y, result.z}
	}
	return [3]float64{result.x / result.w, result.y / result.w, result.z / result.w}
}
