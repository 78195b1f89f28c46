package construct

import (
	"fmt"
	"math"

	"iges-kernel/internal/entities"
	"iges-kernel/internal/igeserr"
	"iges-kernel/internal/mathutil"
	"iges-kernel/internal/model"
)

// Cylinder builds a vertical cylindrical surface between centre/start/end
// (all on the Z=0 plane) and top/bot Z, returning one Trimmed Surface
// (144) per angular arc covering the swept annular region. The surface
// of revolution (120) and its axis/generatrix lines are shared across
// every returned 144; construction is atomic — any failure removes every
// entity this call created. Grounded on original_source's
// geom_cylinder.cpp (IGES_GEOM_CYLINDER::SetParams/Instantiate): the
// angle-bracketing arithmetic, the shared axis/generatrix, and the
// bottom-arc mirror-by-transform trick are ported from there, since
// spec.md §4.9 only states the constructor's shape, not its arithmetic.
func Cylinder(m *model.Model, centre, start, end [3]float64, top, bot float64) ([]model.Handle, error) {
	if centre[2] != 0 || start[2] != 0 || end[2] != 0 {
		return nil, igeserr.New(igeserr.BadField, "construct.Cylinder", fmt.Errorf("centre, start, and end must lie on the Z=0 plane"))
	}
	if top < bot {
		top, bot = bot, top
	}
	if math.Abs(top-bot) < 0.001 {
		return nil, igeserr.New(igeserr.BadField, "construct.Cylinder", fmt.Errorf("top and bottom Z are too close together"))
	}

	c2 := [2]float64{centre[0], centre[1]}
	s2 := [2]float64{start[0], start[1]}
	e2 := [2]float64{end[0], end[1]}

	radius, arcs, angles, narcs, err := computeArcs(c2, s2, e2)
	if err != nil {
		return nil, err
	}

	b := NewBuilder(m)

	axis := newLine(b, [3]float64{c2[0], c2[1], bot}, [3]float64{c2[0], c2[1], top})
	generatrix := newLine(b, [3]float64{c2[0] + radius, c2[1], top}, [3]float64{c2[0] + radius, c2[1], bot})

	surf, err := b.new(model.KindSurfaceOfRevolution, model.PhysicallyDependent)
	if err != nil {
		b.Rollback()
		return nil, err
	}
	sor := surf.Data.(*entities.SurfaceOfRevolution)
	sor.Axis = axis.Handle()
	sor.Generatrix = generatrix.Handle()
	sor.StartAngle = 0
	sor.EndAngle = 2 * math.Pi
	b.link(axis.Handle(), surf.Handle())
	b.link(generatrix.Handle(), surf.Handle())

	results := make([]model.Handle, 0, narcs)

	for i := 0; i < narcs; i++ {
		tps := buildArc(b, surf, arcs, angles, i, narcs, c2, radius, top, bot)
		if b.Err() != nil {
			break
		}
		results = append(results, tps)
	}

	if _, err := b.Commit(); err != nil {
		return nil, err
	}
	return results, nil
}

// buildArc instantiates the full per-arc cluster described by spec.md
// §4.9 item 2 and returns the handle of its Trimmed Surface. It records
// its own failures on b rather than returning an error, since the caller
// drains b.Err() once after every arc.
func buildArc(b *Builder, surf *model.Entity, arcs [5][2]float64, angles [6]float64, i, narcs int, centre [2]float64, radius, top, bot float64) model.Handle {
	// Vertices of this arc's quad in the XY plane: startPt opens the arc,
	// endPt closes it (ported 1:1 from the source's arcs[] indexing).
	startPt := arcs[i+1]
	endPt := arcs[i+2]

	edge1 := newLine(b, [3]float64{endPt[0], endPt[1], top}, [3]float64{endPt[0], endPt[1], bot})
	edge2 := newLine(b, [3]float64{startPt[0], startPt[1], bot}, [3]float64{startPt[0], startPt[1], top})

	topArc := newArc(b, top, centre, startPt, endPt)

	var trans *model.Entity
	if b.Err() == nil {
		trans, _ = b.new(model.KindTransformMatrix, model.PhysicallyDependent)
		if trans != nil {
			tf := trans.Data.(*entities.Transform)
			tf.Form = 1
			tf.R = mathutil.Mat3Diag(-1, 1, -1)
			tf.T = mathutil.Vec3{centre[0], 0, 2 * bot}
		}
	}

	// The bottom arc is authored in the axis-mirrored local frame (xCenter
	// = 0, start/end reflected about that axis) and carries trans as its
	// own Base.Transform; applying p' = R·p + T recovers the true bottom
	// boundary without re-deriving separate start/end coordinates.
	botArc := newArc(b, bot, [2]float64{0, centre[1]}, [2]float64{centre[0] - endPt[0], endPt[1]}, [2]float64{centre[0] - startPt[0], startPt[1]})
	if botArc != nil && trans != nil {
		botArc.Base.Transform = trans.Handle()
		b.link(trans.Handle(), botArc.Handle())
	}

	geomBound := newCompositeCurve(b, topArc, edge1, botArc, edge2)

	idx2 := i * 2
	aStart, aEnd := angles[idx2], angles[idx2+1]
	nc00 := newLineNURBS(b, [3]float64{0, aStart, 0}, [3]float64{0, aEnd, 0})
	nc01 := newLineNURBS(b, [3]float64{0, aEnd, 0}, [3]float64{1, aEnd, 0})
	nc10 := newLineNURBS(b, [3]float64{1, aEnd, 0}, [3]float64{1, aStart, 0})
	nc11 := newLineNURBS(b, [3]float64{1, aStart, 0}, [3]float64{0, aStart, 0})
	paramBound := newCompositeCurve(b, nc00, nc01, nc10, nc11)

	cos := newCurveOnSurface(b, surf, paramBound, geomBound)
	tps := newTrimmedSurface(b, surf, cos)

	if tps == nil {
		return model.NilHandle
	}
	return tps.Handle()
}

func newLine(b *Builder, p1, p2 [3]float64) *model.Entity {
	e, err := b.new(model.KindLine, model.PhysicallyDependent)
	if err != nil {
		return nil
	}
	l := e.Data.(*entities.Line)
	l.P1, l.P2 = p1, p2
	return e
}

// newArc instantiates a 100 spanning start->end at the given Z, centred
// at centre.
func newArc(b *Builder, z float64, centre, start, end [2]float64) *model.Entity {
	e, err := b.new(model.KindCircularArc, model.PhysicallyDependent)
	if err != nil {
		return nil
	}
	a := e.Data.(*entities.Arc)
	a.ZOffset = z
	a.Center = centre
	a.Start = start
	a.End = end
	return e
}

// newLineNURBS builds a degree-1, 2-control-point (non-rational) NURBS
// curve representing a straight segment, used for the parameter-space
// boundary rectangle's four sides.
func newLineNURBS(b *Builder, p0, p1 [3]float64) *model.Entity {
	e, err := b.new(model.KindNURBSCurve, model.PhysicallyDependent)
	if err != nil {
		return nil
	}
	n := e.Data.(*entities.NURBSCurve)
	if err := n.SetNURBSData(b.m, 1, 1, []float64{0, 0, 1, 1}, []float64{1, 1}, [][3]float64{p0, p1}); err != nil {
		b.fail(err)
		return nil
	}
	n.V0, n.V1 = 0, 1
	if err := n.Associate(b.m, e); err != nil {
		b.fail(err)
		return nil
	}
	return e
}

func newCompositeCurve(b *Builder, segments ...*model.Entity) *model.Entity {
	e, err := b.new(model.KindCompositeCurve, model.PhysicallyDependent)
	if err != nil {
		return nil
	}
	cc := e.Data.(*entities.CompositeCurve)
	for _, s := range segments {
		if s == nil {
			b.fail(igeserr.New(igeserr.InvariantViolation, "construct.newCompositeCurve", nil))
			return nil
		}
		cc.Members = append(cc.Members, s.Handle())
		b.link(s.Handle(), e.Handle())
	}
	return e
}

func newCurveOnSurface(b *Builder, surf, paramBound, geomBound *model.Entity) *model.Entity {
	if surf == nil || paramBound == nil || geomBound == nil {
		b.fail(igeserr.New(igeserr.InvariantViolation, "construct.newCurveOnSurface", nil))
		return nil
	}
	e, err := b.new(model.KindCurveOnSurface, model.PhysicallyDependent)
	if err != nil {
		return nil
	}
	c := e.Data.(*entities.CurveOnSurface)
	c.CRTN = 1
	c.PREF = 1
	c.SPTR = surf.Handle()
	c.BPTR = paramBound.Handle()
	c.CPTR = geomBound.Handle()
	b.link(surf.Handle(), e.Handle())
	b.link(paramBound.Handle(), e.Handle())
	b.link(geomBound.Handle(), e.Handle())
	entities.MarkBoundaryCurve(b.m, paramBound.Handle())
	return e
}

func newTrimmedSurface(b *Builder, surf, bound *model.Entity) *model.Entity {
	if surf == nil || bound == nil {
		b.fail(igeserr.New(igeserr.InvariantViolation, "construct.newTrimmedSurface", nil))
		return nil
	}
	e, err := b.new(model.KindTrimmedSurface, model.Independent)
	if err != nil {
		return nil
	}
	t := e.Data.(*entities.TrimmedSurface)
	t.PTS = surf.Handle()
	t.HasOuter = true
	t.PTO = bound.Handle()
	b.link(surf.Handle(), e.Handle())
	b.link(bound.Handle(), e.Handle())
	return e
}

// computeArcs ports IGES_GEOM_CYLINDER::SetParams: decomposes the
// angular span from start to end (going counterclockwise about centre)
// into 1-3 arcs each covering at most pi radians, returning the shared
// radius, up to 5 bracketing points (arcs[0] is centre), the 6 bracket
// angles, and the arc count.
func computeArcs(centre, start, end [2]float64) (radius float64, arcs [5][2]float64, angles [6]float64, narcs int, err error) {
	arcs[0] = centre

	d0 := [2]float64{centre[0] - start[0], centre[1] - start[1]}
	rad1 := math.Hypot(d0[0], d0[1])
	d1 := [2]float64{centre[0] - end[0], centre[1] - end[1]}
	rad2 := math.Hypot(d1[0], d1[1])

	if rad1 < 1e-8 || rad2 < 1e-8 {
		return 0, arcs, angles, 0, igeserr.New(igeserr.BadField, "construct.computeArcs", fmt.Errorf("start or end point coincides with centre (zero radius)"))
	}
	if math.Abs(rad1-rad2) > 1e-8 {
		return 0, arcs, angles, 0, igeserr.New(igeserr.BadField, "construct.computeArcs", fmt.Errorf("start and end are not equidistant from centre (radii differ by %.3g)", math.Abs(rad1-rad2)))
	}
	radius = rad1

	pointsMatch := func(a, b [2]float64) bool {
		return math.Hypot(a[0]-b[0], a[1]-b[1]) < 1e-8
	}

	if pointsMatch(start, end) {
		arcs[1] = [2]float64{centre[0] + radius, centre[1]}
		arcs[2] = [2]float64{centre[0] - radius, centre[1]}
		arcs[3] = arcs[1]
		narcs = 2
		angles = [6]float64{0, math.Pi, math.Pi, 2 * math.Pi, 0, 0}
		return radius, arcs, angles, narcs, nil
	}

	ang1 := math.Atan2(start[1]-centre[1], start[0]-centre[0])
	ang2 := math.Atan2(end[1]-centre[1], end[0]-centre[0])
	if ang2 < ang1 {
		ang2 += 2 * math.Pi
	}

	if ang1 < 0 {
		ang1 += 2 * math.Pi
		ang2 += 2 * math.Pi
		angles[0] = ang1

		if ang2 <= 2*math.Pi {
			angles[1] = ang2
			narcs = 1
		} else {
			angles[1] = 2 * math.Pi
			angles[2] = 0
			if ang2 <= 3*math.Pi {
				angles[3] = ang2 - 2*math.Pi
				narcs = 2
			} else {
				angles[3] = math.Pi
				angles[4] = math.Pi
				angles[5] = ang2 - 2*math.Pi
				narcs = 3
			}
		}
	} else {
		angles[0] = ang1
		if ang2 <= math.Pi || (ang1 >= math.Pi && ang2 <= 2*math.Pi) {
			angles[1] = ang2
			narcs = 1
		} else if ang1 < math.Pi {
			angles[1] = math.Pi
			angles[2] = math.Pi
			if ang2 <= 2*math.Pi {
				angles[3] = ang2
				narcs = 2
			} else {
				angles[3] = 2 * math.Pi
				angles[4] = 0
				angles[5] = ang2 - 2*math.Pi
				narcs = 3
			}
		} else if ang2 <= 2*math.Pi {
			angles[1] = ang2
			narcs = 1
		} else {
			angles[1] = 2 * math.Pi
			angles[2] = 0
			angles[3] = ang2 - 2*math.Pi
			narcs = 2
		}
	}

	arcs[1] = start
	arcs[narcs+1] = end

	if narcs > 1 {
		arcs[2] = [2]float64{centre[0] + radius*math.Cos(angles[2]), centre[1] + radius*math.Sin(angles[2])}
	}
	if narcs > 2 {
		arcs[3] = [2]float64{centre[0] + radius*math.Cos(angles[4]), centre[1] + radius*math.Sin(angles[4])}
	}

	return radius, arcs, angles, narcs, nil
}
