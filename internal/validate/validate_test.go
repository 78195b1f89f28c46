package validate_test

import (
	"testing"

	"iges-kernel/internal/entities"
	"iges-kernel/internal/model"
	"iges-kernel/internal/validate"
)

func newAssociatedLine(m *model.Model, dep model.Dependency) model.Handle {
	h, _ := m.NewEntity(model.KindLine)
	e := m.Get(h)
	e.Base.Dependency = dep
	e.Base.State = model.StateAssociated
	e.Data.(*entities.Line).P2 = [3]float64{1, 0, 0}
	return h
}

func TestLoadFlagsOrphanWithoutHalting(t *testing.T) {
	m := model.New()
	newAssociatedLine(m, model.PhysicallyDependent)
	otherH := newAssociatedLine(m, model.Independent)

	report := validate.Load(m)
	if report.Empty() {
		t.Fatal("expected the PhysicallyDependent, zero-parent line to be flagged")
	}
	if err := validate.Write(m); err == nil {
		t.Error("Write must reject a model with an orphaned dependent entity")
	}
	_ = otherH
}

func TestLoadAndWriteAcceptCleanModel(t *testing.T) {
	m := model.New()
	newAssociatedLine(m, model.Independent)

	if report := validate.Load(m); !report.Empty() {
		t.Errorf("unexpected defects on a clean model: %+v", report.Items)
	}
	if err := validate.Write(m); err != nil {
		t.Errorf("Write on a clean model: %v", err)
	}
}

func TestWriteRejectsEntityNeverAssociated(t *testing.T) {
	m := model.New()
	h, _ := m.NewEntity(model.KindLine)
	e := m.Get(h)
	e.Base.Dependency = model.Independent
	// State left at its zero value (StateEmpty), never advanced.

	if err := validate.Write(m); err == nil {
		t.Error("expected Write to reject an entity that never reached Associated state")
	}
}

func TestWriteRejectsBadGlobalDelimiters(t *testing.T) {
	m := model.New()
	newAssociatedLine(m, model.Independent)
	m.Global.ParamDelim = m.Global.RecordDelim

	if err := validate.Write(m); err == nil {
		t.Error("expected Write to reject identical parameter and record delimiters")
	}
}

func TestWriteRejectsDanglingTransform(t *testing.T) {
	m := model.New()
	h := newAssociatedLine(m, model.Independent)
	e := m.Get(h)
	e.Base.Transform = model.Handle(9999)

	if err := validate.Write(m); err == nil {
		t.Error("expected Write to reject a Transform pointer at an unknown handle")
	}
}

func TestFindCycleDetectsSelfReferencingCompositeCurve(t *testing.T) {
	m := model.New()
	h, _ := m.NewEntity(model.KindCompositeCurve)
	e := m.Get(h)
	e.Base.Dependency = model.Independent
	e.Base.State = model.StateAssociated
	e.Data.(*entities.CompositeCurve).Members = []model.Handle{h}

	if err := validate.Write(m); err == nil {
		t.Error("expected Write to reject a composite curve that references itself")
	}
}
