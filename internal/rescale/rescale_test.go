package rescale_test

import (
	"testing"

	"iges-kernel/internal/entities"
	"iges-kernel/internal/model"
	"iges-kernel/internal/rescale"
)

func TestApplyScalesEveryEntityExactlyOnce(t *testing.T) {
	m := model.New()

	lh, _ := m.NewEntity(model.KindLine)
	line := m.Get(lh).Data.(*entities.Line)
	line.P1 = [3]float64{1, 1, 1}
	line.P2 = [3]float64{2, 2, 2}

	// Two Composite Curves both reference the same Line, so a naive
	// traversal that doesn't dedupe by handle would rescale it twice.
	cc1h, _ := m.NewEntity(model.KindCompositeCurve)
	m.Get(cc1h).Data.(*entities.CompositeCurve).Members = []model.Handle{lh}
	cc2h, _ := m.NewEntity(model.KindCompositeCurve)
	m.Get(cc2h).Data.(*entities.CompositeCurve).Members = []model.Handle{lh}

	rescale.Apply(m, 2)

	want := [3]float64{2, 2, 2}
	if line.P1 != want {
		t.Errorf("Line.P1 = %v, want %v (scaled exactly once)", line.P1, want)
	}
	want2 := [3]float64{4, 4, 4}
	if line.P2 != want2 {
		t.Errorf("Line.P2 = %v, want %v (scaled exactly once)", line.P2, want2)
	}
}

func TestApplyScalesTransformTranslationOnly(t *testing.T) {
	m := model.New()
	th, _ := m.NewEntity(model.KindTransformMatrix)
	tr := m.Get(th).Data.(*entities.Transform)
	tr.T = [3]float64{1, 2, 3}
	rOrig := tr.R

	rescale.Apply(m, 10)

	if tr.T != ([3]float64{10, 20, 30}) {
		t.Errorf("Transform.T = %v, want {10 20 30}", tr.T)
	}
	if tr.R != rOrig {
		t.Error("Transform.R (dimensionless rotation) must not be rescaled")
	}
}

func TestForFileUnits(t *testing.T) {
	sf := rescale.ForFileUnits(25.4, 1) // inches -> mm
	if sf <= 25 || sf >= 26 {
		t.Errorf("ForFileUnits(25.4, 1) = %v, want ~25.4", sf)
	}
	if got := rescale.ForFileUnits(25.4, 0); got != 1 {
		t.Errorf("ForFileUnits with zero target = %v, want 1", got)
	}
}
