package section_test

import (
	"bytes"
	"math"
	"testing"

	"iges-kernel/internal/entities"
	"iges-kernel/internal/graph"
	"iges-kernel/internal/model"
	"iges-kernel/internal/section"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestWriteReadRoundTrip(t *testing.T) {
	m := model.New()

	lh, err := m.NewEntity(model.KindLine)
	if err != nil {
		t.Fatalf("NewEntity(Line): %v", err)
	}
	line := m.Get(lh)
	line.Data.(*entities.Line).P1 = [3]float64{0, 0, 0}
	line.Data.(*entities.Line).P2 = [3]float64{10, 20, 30}
	line.Base.Dependency = model.Independent
	line.Base.State = model.StateAssociated

	ah, err := m.NewEntity(model.KindCircularArc)
	if err != nil {
		t.Fatalf("NewEntity(Arc): %v", err)
	}
	arc := m.Get(ah)
	arc.Data.(*entities.Arc).ZOffset = 1
	arc.Data.(*entities.Arc).Center = [2]float64{0, 0}
	arc.Data.(*entities.Arc).Start = [2]float64{5, 0}
	arc.Data.(*entities.Arc).End = [2]float64{0, 5}
	arc.Base.Dependency = model.Independent
	arc.Base.State = model.StateAssociated

	var buf bytes.Buffer
	if err := section.Write(&buf, m); err != nil {
		t.Fatalf("Write: %v", err)
	}

	for i, l := range bytes.Split(buf.Bytes(), []byte("\n")) {
		if len(l) == 0 {
			continue
		}
		if len(l) != 80 {
			t.Fatalf("line %d has length %d, want 80: %q", i, len(l), l)
		}
	}

	m2, err := section.Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	graph.Resolve(m2)

	if len(m2.Entities()) != 2 {
		t.Fatalf("read back %d entities, want 2", len(m2.Entities()))
	}

	var gotLine *entities.Line
	var gotArc *entities.Arc
	for _, e := range m2.Entities() {
		switch d := e.Data.(type) {
		case *entities.Line:
			gotLine = d
		case *entities.Arc:
			gotArc = d
		}
	}
	if gotLine == nil {
		t.Fatal("no Line entity read back")
	}
	if gotArc == nil {
		t.Fatal("no Arc entity read back")
	}

	for i := range gotLine.P1 {
		if !approxEqual(gotLine.P1[i], 0, 1e-5) {
			t.Errorf("Line.P1[%d] = %v, want 0", i, gotLine.P1[i])
		}
	}
	want2 := [3]float64{10, 20, 30}
	for i := range gotLine.P2 {
		if !approxEqual(gotLine.P2[i], want2[i], 1e-5) {
			t.Errorf("Line.P2[%d] = %v, want %v", i, gotLine.P2[i], want2[i])
		}
	}
	if !approxEqual(gotArc.Start[0], 5, 1e-5) {
		t.Errorf("Arc.Start[0] = %v, want 5", gotArc.Start[0])
	}
}
