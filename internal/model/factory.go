package model

import (
	"fmt"

	"iges-kernel/internal/igeserr"
)

// PayloadFactory builds a zero-valued Payload for one entity kind.
type PayloadFactory func() Payload

var registry = map[Kind]PayloadFactory{}

// RegisterFactory registers the constructor for kind. Called from each
// entity-kind file's init() in package entities; keeping registration
// out-of-band (rather than a switch statement in this package) is what
// lets package entities own every kind's implementation without model
// importing entities (which would cycle back, since entities imports
// model for Handle/Base/Entity).
func RegisterFactory(kind Kind, fn PayloadFactory) {
	registry[kind] = fn
}

// newPayload constructs a zero payload for kind, or an error if kind was
// never registered (including the named-but-Unimplemented codes).
func newPayload(kind Kind) (Payload, error) {
	fn, ok := registry[kind]
	if !ok {
		return nil, igeserr.New(igeserr.Unimplemented, "NewEntity", fmt.Errorf("entity type %d has no registered factory", int(kind)))
	}
	return fn(), nil
}

// RegisteredKinds returns every kind with a registered factory, for
// diagnostics and tests.
func RegisteredKinds() []Kind {
	ks := make([]Kind, 0, len(registry))
	for k := range registry {
		ks = append(ks, k)
	}
	return ks
}
