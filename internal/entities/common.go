// Package entities implements the per-kind parameter-data contract (C6):
// one file per IGES entity kind this module supports, each registering
// itself with package model's factory in an init() function.
package entities

import (
	"fmt"

	"iges-kernel/internal/graph"
	"iges-kernel/internal/igeserr"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// Curve is implemented by every kind that can be a Composite Curve (102)
// member: its endpoints are needed for the segment-sequencing invariant.
type Curve interface {
	StartPoint() [3]float64
	EndPoint() [3]float64
}

// bookkeepingTol is the numeric tolerance used to format general
// bookkeeping reals (angles, counts-as-floats, translations) per
// spec.md §4.1.
const bookkeepingTol = 1e-6

// weightTol is the tolerance used for NURBS weights.
const weightTol = 1e-6

// nurbsTol is the tolerance used for NURBS knot/control-point data.
const nurbsTol = 1e-15

func badField(op, msg string) error {
	return igeserr.New(igeserr.BadField, op, fmt.Errorf("%s", msg))
}

func invariant(op, msg string) error {
	return igeserr.New(igeserr.InvariantViolation, op, fmt.Errorf("%s", msg))
}

func readForm(form int, allowed ...int) error {
	for _, a := range allowed {
		if form == a {
			return nil
		}
	}
	return igeserr.New(igeserr.BadField, "readForm", fmt.Errorf("form %d not supported (allowed: %v)", form, allowed))
}

func readReals(s *tokenize.Scanner, n int) ([]float64, error) {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, _, err := s.NextReal()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readInts(s *tokenize.Scanner, n int) ([]int, error) {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v, _, err := s.NextInt()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func formatReals(vals []float64, tol float64) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = tokenize.FormatReal(v, tol)
	}
	return out
}

func formatInts(vals []int) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = tokenize.FormatInt(v)
	}
	return out
}

// formatPointer translates a forward-pointer field's arena Handle into
// its write-time DE sequence number via deSeq before formatting it, so
// a kind's Format never emits a raw Handle (spec.md §8's round-trip
// guarantee depends on every pointer field going through this).
func formatPointer(deSeq func(model.Handle) int, h model.Handle) string {
	return tokenize.FormatPointer(deSeq(h))
}

// formatPointers is formatPointer applied to a whole slice of handles.
func formatPointers(deSeq func(model.Handle) int, hs []model.Handle) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = formatPointer(deSeq, h)
	}
	return out
}

// placeholder wraps a raw DE sequence number read straight off the
// parameter stream, to be translated into an arena handle by the graph
// resolver's second pass.
func placeholder(raw int) model.Handle { return model.Handle(raw) }

// resolveChild and resolveChildren are per-kind Associate convenience
// wrappers over package graph's resolver, so each entity file doesn't
// repeat the import.
func resolveChild(m *model.Model, self model.Handle, raw model.Handle) (model.Handle, error) {
	return graph.ResolveChild(m, self, raw)
}

func resolveChildren(m *model.Model, self model.Handle, raws []model.Handle) ([]model.Handle, error) {
	return graph.ResolveChildren(m, self, raws)
}

func checkNotAssociated(e *model.Entity, op string) error {
	return graph.CheckNotAssociated(e, op)
}

// MarkBoundaryCurve sets the precomputed parameter-space-boundary flag
// (spec.md §9) on h and, recursively, on every Composite Curve member it
// resolves to: a 142's BPTR is as often a 102 chaining several 126
// segments as it is a bare 126, and every segment needs the flag so
// Rescale scales only Z on each of them.
func MarkBoundaryCurve(m *model.Model, h model.Handle) {
	e := m.Get(h)
	if e == nil {
		return
	}
	switch d := e.Data.(type) {
	case *NURBSCurve:
		d.SetBoundaryCurve()
	case *CompositeCurve:
		for _, member := range d.Members {
			MarkBoundaryCurve(m, member)
		}
	}
}
