package construct_test

import (
	"testing"

	"iges-kernel/internal/construct"
	"iges-kernel/internal/entities"
	"iges-kernel/internal/model"
)

// TestCylinderDegenerateStartEqualsEndProducesTwoArcs covers the
// centre=(0,0,0), start=end=(10,0,0), top=5, bot=0 case: the full circle
// must split into exactly two Trimmed Surfaces sharing one Surface of
// Revolution, since a single >=2*pi sweep can't be parametrised as one
// bounded patch.
func TestCylinderDegenerateStartEqualsEndProducesTwoArcs(t *testing.T) {
	m := model.New()
	centre := [3]float64{0, 0, 0}
	start := [3]float64{10, 0, 0}
	end := [3]float64{10, 0, 0}

	handles, err := construct.Cylinder(m, centre, start, end, 5, 0)
	if err != nil {
		t.Fatalf("Cylinder: %v", err)
	}
	if len(handles) != 2 {
		t.Fatalf("got %d trimmed surfaces, want 2", len(handles))
	}

	var surfaces = map[model.Handle]bool{}
	for _, h := range handles {
		e := m.Get(h)
		if e == nil {
			t.Fatalf("handle %v not present in model", h)
		}
		tps, ok := e.Data.(*entities.TrimmedSurface)
		if !ok {
			t.Fatalf("handle %v is not a Trimmed Surface", h)
		}
		surfaces[tps.PTS] = true
	}
	if len(surfaces) != 1 {
		t.Errorf("trimmed surfaces reference %d distinct base surfaces, want exactly 1 shared Surface of Revolution", len(surfaces))
	}
}

func TestCylinderRejectsOffPlaneCentre(t *testing.T) {
	m := model.New()
	_, err := construct.Cylinder(m, [3]float64{0, 0, 1}, [3]float64{10, 0, 0}, [3]float64{10, 0, 0}, 5, 0)
	if err == nil {
		t.Error("expected an error when centre does not lie on the Z=0 plane")
	}
}

func TestCylinderRejectsUnequalRadii(t *testing.T) {
	m := model.New()
	_, err := construct.Cylinder(m, [3]float64{0, 0, 0}, [3]float64{10, 0, 0}, [3]float64{0, 20, 0}, 5, 0)
	if err == nil {
		t.Error("expected an error when start and end are not equidistant from centre")
	}
}

// TestCylinderRollsBackOnFailure confirms no entities leak into the
// model when construction fails: here, a zero top/bot span, which
// Cylinder rejects before creating any entity.
func TestCylinderRollsBackOnFailure(t *testing.T) {
	m := model.New()
	before := len(m.Entities())
	_, err := construct.Cylinder(m, [3]float64{0, 0, 0}, [3]float64{10, 0, 0}, [3]float64{0, 10, 0}, 0, 0)
	if err == nil {
		t.Fatal("expected an error for a degenerate top==bot span")
	}
	if len(m.Entities()) != before {
		t.Errorf("model has %d entities after a rolled-back construction, want %d", len(m.Entities()), before)
	}
}

func TestCylinderQuarterArcSharesAxisAndGeneratrix(t *testing.T) {
	m := model.New()
	handles, err := construct.Cylinder(m, [3]float64{0, 0, 0}, [3]float64{10, 0, 0}, [3]float64{0, 10, 0}, 5, 0)
	if err != nil {
		t.Fatalf("Cylinder: %v", err)
	}
	if len(handles) != 1 {
		t.Fatalf("got %d trimmed surfaces for a quarter-turn sweep, want 1", len(handles))
	}
	tps := m.Get(handles[0]).Data.(*entities.TrimmedSurface)
	sor := m.Get(tps.PTS).Data.(*entities.SurfaceOfRevolution)
	if m.Get(sor.Axis) == nil || m.Get(sor.Generatrix) == nil {
		t.Error("surface of revolution must carry resolved Axis and Generatrix handles")
	}
}
