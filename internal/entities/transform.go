package entities

import (
	"fmt"

	"iges-kernel/internal/global"
	"iges-kernel/internal/igeserr"
	"iges-kernel/internal/mathutil"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// Transform implements entity type 124: a 3×3 rotation matrix R plus a
// translation vector T, applying as p' = R·p + T.
type Transform struct {
	Form int // 0,1,10,11,12

	R mathutil.Mat3
	T mathutil.Vec3

	// resolved marks that Associate has already folded this Transform's
	// own Base.Transform parent (a 124 may itself carry a 124, chaining
	// rigid-body transforms) into R/T, so repeat calls are no-ops.
	resolved bool
}

func init() {
	model.RegisterFactory(model.KindTransformMatrix, func() model.Payload {
		return &Transform{R: mathutil.Mat3Identity()}
	})
}

func (t *Transform) Kind() model.Kind { return model.KindTransformMatrix }

func (t *Transform) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 0, 1, 10, 11, 12); err != nil {
		return err
	}
	t.Form = form
	vals, err := readReals(s, 12)
	if err != nil {
		return err
	}
	t.R = mathutil.Mat3{vals[0], vals[1], vals[2], vals[4], vals[5], vals[6], vals[8], vals[9], vals[10]}
	t.T = mathutil.Vec3{vals[3], vals[7], vals[11]}
	return nil
}

func (t *Transform) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	vals := []float64{
		t.R[0], t.R[1], t.R[2], t.T[0],
		t.R[3], t.R[4], t.R[5], t.T[1],
		t.R[6], t.R[7], t.R[8], t.T[2],
	}
	return formatReals(vals, bookkeepingTol), nil
}

// Associate folds a chained parent transform into this one: if self's
// own Base.Transform points at another 124, that parent is resolved
// first (recursively) and composed so that R/T end up holding the net
// rigid-body transform, rather than leaving every caller of Apply to
// re-walk the chain itself.
func (t *Transform) Associate(m *model.Model, self *model.Entity) error {
	return t.resolveChain(m, self, nil)
}

func (t *Transform) resolveChain(m *model.Model, self *model.Entity, stack []model.Handle) error {
	if t.resolved {
		return nil
	}
	for _, h := range stack {
		if h == self.Handle() {
			return igeserr.New(igeserr.InvariantViolation, "Transform.Associate", fmt.Errorf("cyclic transform chain at DE %d", self.Base.DESeq))
		}
	}
	if self.Base.Transform.IsNil() {
		t.resolved = true
		return nil
	}
	parentEntity := m.Get(self.Base.Transform)
	if parentEntity == nil {
		t.resolved = true
		return nil
	}
	parent, ok := parentEntity.Data.(*Transform)
	if !ok {
		t.resolved = true
		return nil
	}
	if err := parent.resolveChain(m, parentEntity, append(stack, self.Handle())); err != nil {
		return err
	}

	combined := t.Compose(parent)
	t.R = mathutil.Mat3{
		combined[0], combined[1], combined[2],
		combined[4], combined[5], combined[6],
		combined[8], combined[9], combined[10],
	}
	t.T = mathutil.Vec3{combined[3], combined[7], combined[11]}
	t.resolved = true
	return nil
}

// Rescale scales only the translation vector, per spec.md §4.8: the
// rotation submatrix is dimensionless.
func (t *Transform) Rescale(sf float64, self *model.Entity) {
	t.T = t.T.Scale(sf)
}

func (t *Transform) Unlink(model.Handle) bool { return false }
func (t *Transform) Children() []model.Handle { return nil }

// Apply maps a model-space point through this transform: p' = R·p + T.
func (t *Transform) Apply(p [3]float64) [3]float64 {
	v := t.R.MulVec3(mathutil.Vec3{p[0], p[1], p[2]})
	v = v.Add(t.T)
	return [3]float64{v[0], v[1], v[2]}
}

// Matrix returns the homogeneous 4×4 form of this transform, for
// composing it with another entity's own Transform pointer (a 124 may
// itself carry Base.Transform, chaining two rigid-body transforms).
func (t *Transform) Matrix() mathutil.Mat4 {
	return mathutil.FromMat3Translation(t.R, t.T)
}

// Compose chains self's transform with outer's, returning the combined
// homogeneous matrix outer∘self (outer applied after self).
func (t *Transform) Compose(outer *Transform) mathutil.Mat4 {
	return mathutil.Mat4Mul(outer.Matrix(), t.Matrix())
}
