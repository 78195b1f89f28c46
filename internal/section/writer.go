package section

import (
	"fmt"
	"io"

	"iges-kernel/internal/directory"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// Write renders m as a complete IGES file: every entity is reformatted,
// assigned a fresh DE sequence number in model.Entities() order (odd,
// stride 2, so DE pointers stay self-consistent even if the model was
// edited since it was read), and emitted in the fixed S→G→D→P→T order.
// Any DE-index field still holding an old or foreign arena Handle is
// translated through the handle-to-new-DE-seq map built in the first
// pass, so the written file's pointers are always renumbered, never
// copied through from the read-time Handle values.
func Write(w io.Writer, m *model.Model) error {
	entities := m.Entities()

	deSeqOf := make(map[model.Handle]int, len(entities))
	for i, e := range entities {
		deSeqOf[e.Handle()] = 2*i + 1
	}
	lookup := func(h model.Handle) int {
		if h.IsNil() {
			return 0
		}
		return deSeqOf[h]
	}

	var deLines, pdLines []string
	pdSeq := 1

	for i, e := range entities {
		deSeq := 2*i + 1
		tokens, err := e.Data.Format(e, lookup)
		if err != nil {
			return fmt.Errorf("format entity %s (DE %d): %w", e.Base.Type, deSeq, err)
		}
		full := append([]string{tokenize.FormatInt(int(e.Base.Type))}, tokens...)
		lines := tokenize.PackPD(full, deSeq, m.Global.ParamDelim, m.Global.RecordDelim)

		paramDataPtr := pdSeq
		for _, ln := range lines {
			pdLines = append(pdLines, tokenize.FormatRecord(ln, 'P', pdSeq))
			pdSeq++
		}

		renumbered := e.Base
		renumbered.PDLines = len(lines)
		renumbered.Structure = renumberedHandle(e.Base.Structure, deSeqOf)
		renumbered.Transform = renumberedHandle(e.Base.Transform, deSeqOf)
		renumbered.Color = renumberedRef(e.Base.Color, deSeqOf)
		renumbered.View = renumberedRef(e.Base.View, deSeqOf)
		renumbered.LineFont = renumberedRef(e.Base.LineFont, deSeqOf)
		renumbered.LabelDisp = renumberedRef(e.Base.LabelDisp, deSeqOf)

		line1, line2 := directory.FormatLines(&renumbered, paramDataPtr)
		deLines = append(deLines, tokenize.FormatRecord(line1, 'D', deSeq), tokenize.FormatRecord(line2, 'D', deSeq+1))
	}

	gTokens := m.Global.Format()
	gPacked := tokenize.PackPD(gTokens, 0, m.Global.ParamDelim, m.Global.RecordDelim)
	var gLines []string
	for i, ln := range gPacked {
		gLines = append(gLines, tokenize.FormatRecord(ln, 'G', i+1))
	}

	sLines := []string{tokenize.FormatRecord(startSectionText(), 'S', 1)}

	nl := func(lines []string) error {
		for _, l := range lines {
			if _, err := io.WriteString(w, l+"\n"); err != nil {
				return err
			}
		}
		return nil
	}
	if err := nl(sLines); err != nil {
		return err
	}
	if err := nl(gLines); err != nil {
		return err
	}
	if err := nl(deLines); err != nil {
		return err
	}
	if err := nl(pdLines); err != nil {
		return err
	}

	term := fmt.Sprintf("%8d%8d%8d%8d", len(sLines), len(gLines), len(deLines), len(pdLines))
	return nl([]string{tokenize.FormatRecord(term, 'T', 1)})
}

func renumberedHandle(h model.Handle, deSeqOf map[model.Handle]int) model.Handle {
	if h.IsNil() {
		return model.NilHandle
	}
	seq, ok := deSeqOf[h]
	if !ok {
		return model.NilHandle
	}
	return model.Handle(seq)
}

func renumberedRef(r model.Ref, deSeqOf map[model.Handle]int) model.Ref {
	if !r.IsPointer {
		return r
	}
	return model.Ref{IsPointer: true, Ptr: renumberedHandle(r.Ptr, deSeqOf)}
}

func startSectionText() string {
	s := "this file was written by an IGES processor"
	if len(s) > 72 {
		s = s[:72]
	}
	for len(s) < 72 {
		s += " "
	}
	return s
}
