package entities

import (
	"testing"

	"iges-kernel/internal/model"
)

// bindDE allocates an entity of kind, binds it to a DE sequence number
// (the odd arena-external numbering AddReference-via-Associate expects),
// and returns both.
func bindDE(t *testing.T, m *model.Model, kind model.Kind, deSeq int) (*model.Entity, model.Handle) {
	t.Helper()
	h, err := m.NewEntity(kind)
	if err != nil {
		t.Fatalf("NewEntity(%v): %v", kind, err)
	}
	m.BindDE(deSeq, h)
	e := m.Get(h)
	e.Base.DESeq = deSeq
	return e, h
}

func TestArcRescale(t *testing.T) {
	a := &Arc{ZOffset: 1, Center: [2]float64{2, 3}, Start: [2]float64{4, 5}, End: [2]float64{6, 7}}
	a.Rescale(2, nil)
	want := Arc{ZOffset: 2, Center: [2]float64{4, 6}, Start: [2]float64{8, 10}, End: [2]float64{12, 14}}
	if *a != want {
		t.Errorf("after Rescale(2): %+v, want %+v", *a, want)
	}
}

func TestArcForceOrphanOnEmpty(t *testing.T) {
	a := &Arc{}
	if !a.ForceOrphanOnEmpty() {
		t.Error("Circular Arc must force orphan-on-empty-parents")
	}
}

func TestCompositeCurveAssociateSucceedsOnCoincidentEndpoints(t *testing.T) {
	m := model.New()
	l1, h1 := bindDE(t, m, model.KindLine, 1)
	l1.Data.(*Line).P1 = [3]float64{0, 0, 0}
	l1.Data.(*Line).P2 = [3]float64{1, 0, 0}

	l2, h2 := bindDE(t, m, model.KindLine, 3)
	l2.Data.(*Line).P1 = [3]float64{1, 0, 0}
	l2.Data.(*Line).P2 = [3]float64{2, 0, 0}

	cc, hcc := bindDE(t, m, model.KindCompositeCurve, 5)
	ccData := cc.Data.(*CompositeCurve)
	ccData.Members = []model.Handle{model.Handle(1), model.Handle(3)}

	if err := ccData.Associate(m, cc); err != nil {
		t.Fatalf("Associate: %v", err)
	}
	if len(ccData.Members) != 2 || ccData.Members[0] != h1 || ccData.Members[1] != h2 {
		t.Errorf("Members after resolve = %v, want [%v %v]", ccData.Members, h1, h2)
	}
	_ = hcc
}

func TestCompositeCurveAssociateRejectsGap(t *testing.T) {
	m := model.New()
	l1, _ := bindDE(t, m, model.KindLine, 1)
	l1.Data.(*Line).P1 = [3]float64{0, 0, 0}
	l1.Data.(*Line).P2 = [3]float64{1, 0, 0}

	l2, _ := bindDE(t, m, model.KindLine, 3)
	l2.Data.(*Line).P1 = [3]float64{5, 5, 5}
	l2.Data.(*Line).P2 = [3]float64{6, 5, 5}

	cc, _ := bindDE(t, m, model.KindCompositeCurve, 5)
	ccData := cc.Data.(*CompositeCurve)
	ccData.Members = []model.Handle{model.Handle(1), model.Handle(3)}

	if err := ccData.Associate(m, cc); err == nil {
		t.Error("expected a sequencing error for non-coincident endpoints")
	}
}

func TestCompositeCurveVetoesNestedCompositeCurve(t *testing.T) {
	inner := &CompositeCurve{}
	if !inner.VetoParent(model.KindCompositeCurve) {
		t.Error("a Composite Curve must veto being a child of another Composite Curve")
	}
	if inner.VetoParent(model.KindTrimmedSurface) {
		t.Error("a Composite Curve must not veto an unrelated parent kind")
	}
}

func TestMarkBoundaryCurveRecursesThroughCompositeCurve(t *testing.T) {
	m := model.New()
	seg1, h1 := bindDE(t, m, model.KindNURBSCurve, 1)
	seg2, h2 := bindDE(t, m, model.KindNURBSCurve, 3)
	cc, hcc := bindDE(t, m, model.KindCompositeCurve, 5)
	cc.Data.(*CompositeCurve).Members = []model.Handle{h1, h2}

	MarkBoundaryCurve(m, hcc)

	if !seg1.Data.(*NURBSCurve).isBoundaryCurve {
		t.Error("first composite-curve member was not marked as a boundary curve")
	}
	if !seg2.Data.(*NURBSCurve).isBoundaryCurve {
		t.Error("second composite-curve member was not marked as a boundary curve")
	}
}
