// Package section drives the fixed S→G→D→P→T section order (C2): reading
// a complete IGES file into a model.Model (creating shell entities from
// Directory Entry pairs, then feeding each one's Parameter Data to its
// kind's ReadPD), and the inverse on write.
package section

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"iges-kernel/internal/directory"
	_ "iges-kernel/internal/entities" // registers every catalogued kind's factory
	"iges-kernel/internal/global"
	"iges-kernel/internal/igeserr"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// sectionLines buckets every physical record by its section letter,
// verifying monotonic per-section sequence numbers as it goes.
type sectionLines struct {
	S, G, D, P, T []tokenize.Record
}

func splitSections(r io.Reader) (sectionLines, error) {
	var sl sectionLines
	last := map[byte]int{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := tokenize.ParseRecord(line)
		if err != nil {
			return sl, err
		}
		if prev, ok := last[rec.Section]; ok {
			if err := tokenize.CheckMonotonic(prev, rec.Seq); err != nil {
				return sl, err
			}
		}
		last[rec.Section] = rec.Seq

		switch rec.Section {
		case 'S':
			sl.S = append(sl.S, rec)
		case 'G':
			sl.G = append(sl.G, rec)
		case 'D':
			sl.D = append(sl.D, rec)
		case 'P':
			sl.P = append(sl.P, rec)
		case 'T':
			sl.T = append(sl.T, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return sl, igeserr.New(igeserr.BadRecord, "section.splitSections", err)
	}
	if len(sl.T) != 1 {
		return sl, igeserr.New(igeserr.CorruptFile, "section.splitSections", fmt.Errorf("expected exactly one Terminate record, got %d", len(sl.T)))
	}
	return sl, checkTerminate(sl)
}

// checkTerminate validates the Terminate record's 4 section line counts
// (each an 8-column integer field, like a Directory Entry field) against
// what was actually read.
func checkTerminate(sl sectionLines) error {
	data := sl.T[0].Data
	if len(data) < 32 {
		return igeserr.New(igeserr.CorruptFile, "section.checkTerminate", fmt.Errorf("terminate record too short"))
	}
	counts := make([]int, 4)
	for i := 0; i < 4; i++ {
		raw := strings.TrimSpace(data[i*8 : (i+1)*8])
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return igeserr.New(igeserr.CorruptFile, "section.checkTerminate", fmt.Errorf("bad terminate count %d: %w", i, err))
		}
		counts[i] = v
	}
	got := []int{len(sl.S), len(sl.G), len(sl.D), len(sl.P)}
	for i, want := range counts {
		if want != got[i] {
			return igeserr.New(igeserr.CorruptFile, "section.checkTerminate", fmt.Errorf("terminate count %d says %d, file has %d", i, want, got[i]))
		}
	}
	return nil
}

// Read parses a complete IGES file from r into a new model.Model.
func Read(r io.Reader) (*model.Model, error) {
	sl, err := splitSections(r)
	if err != nil {
		return nil, err
	}

	m := model.New()

	gText := joinData(sl.G)
	g, err := global.Parse(gText)
	if err != nil {
		return nil, err
	}
	m.Global = g

	if err := readDirectory(m, sl.D); err != nil {
		return nil, err
	}
	if err := readParameterData(m, sl.P); err != nil {
		return nil, err
	}

	return m, nil
}

func joinData(recs []tokenize.Record) string {
	var sb strings.Builder
	for _, r := range recs {
		sb.WriteString(strings.TrimRight(r.Data, " "))
	}
	return sb.String()
}

// readDirectory builds one shell entity per Directory Entry pair (the
// resolver's first pass): dense-indexed by DE sequence via model.BindDE.
func readDirectory(m *model.Model, recs []tokenize.Record) error {
	if len(recs)%2 != 0 {
		return igeserr.New(igeserr.CorruptFile, "section.readDirectory", fmt.Errorf("odd number of Directory Entry lines (%d)", len(recs)))
	}
	for i := 0; i+1 < len(recs); i += 2 {
		deSeq := recs[i].Seq
		entry, err := directory.ParseLines(recs[i].Data, recs[i+1].Data, deSeq)
		if err != nil {
			m.Warnings().Add(deSeq, "readDirectory", err)
			continue
		}

		h, err := m.NewEntity(model.Kind(entry.Type))
		if err != nil {
			m.Warnings().Add(deSeq, "readDirectory", err)
			continue
		}
		e := m.Get(h)
		directory.ApplyToBase(entry, &e.Base)
		e.Base.DESeq = deSeq
		e.Base.PDSeq = entry.ParamDataPtr
		e.Base.State = model.StateParsed
		m.BindDE(deSeq, h)
	}
	return nil
}

// readParameterData groups P-section lines by their owning-DE sequence
// number (columns 66-72 of each Record's Data, parsed here; not the
// record's own sequence number in Seq) and feeds each group to the
// entity's ReadPD.
func readParameterData(m *model.Model, recs []tokenize.Record) error {
	groups := map[int][]string{}
	order := []int{}
	for _, r := range recs {
		owner, payload, err := splitPDLine(r.Data)
		if err != nil {
			return err
		}
		if _, seen := groups[owner]; !seen {
			order = append(order, owner)
		}
		groups[owner] = append(groups[owner], payload)
	}

	for _, owner := range order {
		h, err := m.ResolveDE(owner)
		if err != nil {
			m.Warnings().Add(owner, "readParameterData", err)
			continue
		}
		e := m.Get(h)
		if e == nil || e.Data == nil {
			continue
		}
		text := strings.Join(groups[owner], "")
		s := tokenize.NewScanner(text, m.Global.ParamDelim, m.Global.RecordDelim)

		// The PD stream's first token is the entity-type code, consumed
		// here (not by the per-kind ReadPD, per model.Payload's contract).
		typeCode, _, err := s.NextInt()
		if err != nil {
			m.Warnings().Add(owner, "readParameterData", err)
			continue
		}
		if model.Kind(typeCode) != e.Base.Type {
			m.Warnings().Add(owner, "readParameterData", fmt.Errorf("PD entity type %d does not match DE type %d", typeCode, e.Base.Type))
			continue
		}

		if err := e.Data.ReadPD(s, m.Global, e.Base.Form); err != nil {
			m.Warnings().Add(owner, "readParameterData", err)
			continue
		}
	}

	// C7's second pass (graph resolution) runs after every shell has its
	// payload populated; callers needing a fully associated model call
	// graph.Resolve(m) themselves after section.Read returns, since
	// resolution is a distinct component (C7) from section reading (C2).
	return nil
}

// splitPDLine reads one P-section record's 72-column data: columns 1-64
// payload, column 65 blank, columns 66-72 the owning DE sequence number.
func splitPDLine(data string) (owner int, payload string, err error) {
	if len(data) < 72 {
		for len(data) < 72 {
			data += " "
		}
	}
	payload = data[0:64]
	ownerStr := strings.TrimSpace(data[65:72])
	if ownerStr == "" {
		return 0, "", igeserr.New(igeserr.BadRecord, "section.splitPDLine", fmt.Errorf("missing owning DE sequence number"))
	}
	owner, err = strconv.Atoi(ownerStr)
	if err != nil {
		return 0, "", igeserr.New(igeserr.BadRecord, "section.splitPDLine", fmt.Errorf("bad owning DE sequence number %q: %w", ownerStr, err))
	}
	return owner, payload, nil
}
