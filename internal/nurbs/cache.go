package nurbs

import "sync"

// Cache scopes an Evaluator's opaque CurveHandle to a single owner key (a
// 126 entity's arena handle, as a uint32), invalidated whenever the owner
// calls Invalidate (i.e. on SetNURBSData) — adapted from the teacher's
// texture.Cache double-checked-locking resolve pattern so entity state
// never stores a library handle directly (spec.md §9).
type Cache struct {
	mu   sync.RWMutex
	eval Evaluator
	live map[uint32]CurveHandle
}

// NewCache wraps eval in an owner-scoped cache.
func NewCache(eval Evaluator) *Cache {
	return &Cache{eval: eval, live: make(map[uint32]CurveHandle)}
}

// Resolve returns the cached CurveHandle for owner, constructing one via
// build if none is cached yet.
func (c *Cache) Resolve(owner uint32, build func(Evaluator) (CurveHandle, error)) (CurveHandle, error) {
	c.mu.RLock()
	if h, ok := c.live[owner]; ok {
		c.mu.RUnlock()
		return h, nil
	}
	c.mu.RUnlock()

	h, err := build(c.eval)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	if existing, ok := c.live[owner]; ok {
		c.mu.Unlock()
		c.eval.Release(h)
		return existing, nil
	}
	c.live[owner] = h
	c.mu.Unlock()
	return h, nil
}

// Invalidate releases and forgets owner's cached curve, if any. Called on
// SetNURBSData per spec.md §5: "on SetNURBSData the old handle is
// released before the new one is constructed."
func (c *Cache) Invalidate(owner uint32) {
	c.mu.Lock()
	h, ok := c.live[owner]
	delete(c.live, owner)
	c.mu.Unlock()
	if ok {
		c.eval.Release(h)
	}
}

// Evaluator exposes the wrapped evaluator for operations that don't need
// owner-scoping (ParamRange, Evaluate, ClassifyClosure all take the
// handle Resolve already returned).
func (c *Cache) Evaluator() Evaluator { return c.eval }
