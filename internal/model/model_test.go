package model_test

import (
	"testing"

	"iges-kernel/internal/entities"
	"iges-kernel/internal/model"
)

func TestAddReferenceIdempotent(t *testing.T) {
	m := model.New()
	line, err := m.NewEntity(model.KindLine)
	if err != nil {
		t.Fatalf("NewEntity: %v", err)
	}
	arc, err := m.NewEntity(model.KindCircularArc)
	if err != nil {
		t.Fatalf("NewEntity: %v", err)
	}

	dup, err := m.AddReference(line, arc)
	if err != nil {
		t.Fatalf("AddReference: %v", err)
	}
	if dup {
		t.Error("first AddReference reported a duplicate")
	}

	dup, err = m.AddReference(line, arc)
	if err != nil {
		t.Fatalf("AddReference (second): %v", err)
	}
	if !dup {
		t.Error("second AddReference should report isDuplicate=true")
	}

	e := m.Get(line)
	if len(e.Base.Parents) != 1 {
		t.Errorf("Parents = %v, want exactly one entry", e.Base.Parents)
	}
}

func TestDelReferenceAndOrphan(t *testing.T) {
	m := model.New()
	line, _ := m.NewEntity(model.KindLine)
	arc, _ := m.NewEntity(model.KindCircularArc)
	m.Get(line).Base.Dependency = model.PhysicallyDependent

	if _, err := m.AddReference(line, arc); err != nil {
		t.Fatalf("AddReference: %v", err)
	}
	if m.Get(line).IsOrphaned() {
		t.Error("entity with one parent reported orphaned")
	}

	if err := m.DelReference(line, arc); err != nil {
		t.Fatalf("DelReference: %v", err)
	}
	if !m.Get(line).IsOrphaned() {
		t.Error("entity with zero parents and PhysicallyDependent should be orphaned")
	}
}

func TestCircularArcForcesOrphanOnEmptyRegardlessOfDependency(t *testing.T) {
	m := model.New()
	arc, _ := m.NewEntity(model.KindCircularArc)
	m.Get(arc).Base.Dependency = model.Independent

	if !m.Get(arc).IsOrphaned() {
		t.Error("a 100 with zero parents must be orphaned even when Independent")
	}
}

func TestDelEntityCascadesToNonIndependentChildren(t *testing.T) {
	m := model.New()
	parent, _ := m.NewEntity(model.KindCompositeCurve)
	child, _ := m.NewEntity(model.KindLine)
	m.Get(child).Base.Dependency = model.PhysicallyDependent
	m.Get(parent).Data.(*entities.CompositeCurve).Members = []model.Handle{child}

	if _, err := m.AddReference(child, parent); err != nil {
		t.Fatalf("AddReference: %v", err)
	}

	if err := m.DelEntity(parent); err != nil {
		t.Fatalf("DelEntity: %v", err)
	}
	if m.Get(child) != nil {
		t.Error("child with dropped last parent and non-Independent dependency should have been cascaded away")
	}
}

func TestDelEntityKeepsIndependentChildren(t *testing.T) {
	m := model.New()
	parent, _ := m.NewEntity(model.KindCompositeCurve)
	child, _ := m.NewEntity(model.KindLine)
	// Independent is the zero value already, but be explicit.
	m.Get(child).Base.Dependency = model.Independent
	m.Get(parent).Data.(*entities.CompositeCurve).Members = []model.Handle{child}

	if _, err := m.AddReference(child, parent); err != nil {
		t.Fatalf("AddReference: %v", err)
	}
	if err := m.DelEntity(parent); err != nil {
		t.Fatalf("DelEntity: %v", err)
	}
	if m.Get(child) == nil {
		t.Error("independent child should survive its last parent's deletion")
	}
}

func TestResolveDERejectsEvenAndNegative(t *testing.T) {
	m := model.New()
	if _, err := m.ResolveDE(-1); err == nil {
		t.Error("expected error for negative DE sequence number")
	}
	if _, err := m.ResolveDE(4); err == nil {
		t.Error("expected error for even DE sequence number")
	}
	if h, err := m.ResolveDE(0); err != nil || !h.IsNil() {
		t.Errorf("ResolveDE(0) = %v, %v; want NilHandle, nil", h, err)
	}
}
