package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// Associativity implements entity type 402: a grouping of other entities
// under one of several group-definition forms (1=group without backptr,
// 7=group with backptr, 14=tool-associativity, 15=instance group).
type Associativity struct {
	Form    int
	Members []model.Handle
}

func init() {
	model.RegisterFactory(model.KindAssociativity, func() model.Payload { return &Associativity{} })
}

func (a *Associativity) Kind() model.Kind { return model.KindAssociativity }

func (a *Associativity) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 1, 7, 14, 15); err != nil {
		return err
	}
	a.Form = form
	n, _, err := s.NextInt()
	if err != nil {
		return err
	}
	if n < 1 {
		return invariant("Associativity.ReadPD", "member count must be >= 1")
	}
	raws, err := readInts(s, n)
	if err != nil {
		return err
	}
	a.Members = make([]model.Handle, n)
	for i, r := range raws {
		a.Members[i] = placeholder(r)
	}
	return nil
}

func (a *Associativity) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	out := []string{tokenize.FormatInt(len(a.Members))}
	out = append(out, formatPointers(deSeq, a.Members)...)
	return out, nil
}

func (a *Associativity) Associate(m *model.Model, self *model.Entity) error {
	resolved, err := resolveChildren(m, self.Handle(), a.Members)
	if err != nil {
		return err
	}
	a.Members = resolved
	return nil
}

func (a *Associativity) Rescale(sf float64, self *model.Entity) {}

func (a *Associativity) Unlink(child model.Handle) bool {
	for i, h := range a.Members {
		if h == child {
			a.Members = append(a.Members[:i], a.Members[i+1:]...)
			return true
		}
	}
	return false
}

func (a *Associativity) Children() []model.Handle { return a.Members }
