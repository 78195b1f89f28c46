package model

import (
	"fmt"

	"iges-kernel/internal/global"
	"iges-kernel/internal/igeserr"
	"iges-kernel/internal/tokenize"
)

// stubPayload backs the identity-set codes spec.md names but the
// catalogue does not detail (141, 143, 154, 164, 180). It lets the
// registry and resolver recognize the kind structurally while refusing
// to parse its payload.
type stubPayload struct {
	kind Kind
}

func (s *stubPayload) Kind() Kind { return s.kind }

func (s *stubPayload) ReadPD(*tokenize.Scanner, global.Params, int) error {
	return igeserr.New(igeserr.Unimplemented, "ReadPD", fmt.Errorf("entity type %d is not supported", int(s.kind)))
}

func (s *stubPayload) Format(*Entity, func(Handle) int) ([]string, error) {
	return nil, igeserr.New(igeserr.Unimplemented, "Format", fmt.Errorf("entity type %d is not supported", int(s.kind)))
}

func (s *stubPayload) Associate(*Model, *Entity) error { return nil }
func (s *stubPayload) Rescale(float64, *Entity)        {}
func (s *stubPayload) Unlink(Handle) bool              { return false }
func (s *stubPayload) Children() []Handle              { return nil }

func init() {
	for _, k := range unimplementedKinds {
		k := k
		RegisterFactory(k, func() Payload { return &stubPayload{kind: k} })
	}
}
