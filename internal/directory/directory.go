// Package directory implements the fixed 20-field Directory Entry codec
// (C4): the two 80-column records per entity that the section
// reader/writer slots between the Global and Parameter sections.
package directory

import (
	"fmt"
	"strconv"
	"strings"

	"iges-kernel/internal/igeserr"
	"iges-kernel/internal/model"
)

const fieldWidth = 8
const fieldsPerLine = 9

// Entry is the decoded form of one entity's two-line Directory Entry,
// ready to be merged into a model.Base by Decode or produced from one by
// Encode.
type Entry struct {
	Type           int
	ParamDataPtr   int // PD sequence number of field 1 of this entity's data
	Structure      int // 0, or DE pointer (see spec.md §3)
	LineFont       int // enum, or negative DE pointer
	Level          int // unused by this implementation; always 0 on emit
	View           int // enum (0), or negative DE pointer
	Transform      int // 0, or DE pointer
	LabelDisplay   int // enum, or negative DE pointer
	StatusNumber   int // packed 2-digit blank/subordinate/use/hierarchy

	TypeRepeat   int
	LineWeight   int
	Color        int // enum (1-8), or negative DE pointer
	ParamLineCnt int
	FormNumber   int
	Reserved1    int
	Reserved2    int
	Label        string
	Subscript    int

	DESeq int // directory sequence number this entry started at
}

// ParseLines decodes the two 80-column DE records (already split into
// their 72-column data portion by package tokenize) into an Entry.
func ParseLines(line1, line2 string, deSeq int) (Entry, error) {
	f1, err := splitFields(line1)
	if err != nil {
		return Entry{}, igeserr.NewDE(igeserr.BadRecord, "directory.ParseLines", deSeq, err)
	}
	// Field 8 is the text label (see labelField); blank it so the integer
	// split only sees the numeric fields.
	numeric2 := line2
	if len(numeric2) >= fieldWidth*8 {
		numeric2 = numeric2[:fieldWidth*7] + strings.Repeat(" ", fieldWidth) + numeric2[fieldWidth*8:]
	}
	f2, err := splitFields(numeric2)
	if err != nil {
		return Entry{}, igeserr.NewDE(igeserr.BadRecord, "directory.ParseLines", deSeq, err)
	}

	e := Entry{DESeq: deSeq}
	e.Type = f1[0]
	e.ParamDataPtr = f1[1]
	e.Structure = f1[2]
	e.LineFont = f1[3]
	e.Level = f1[4]
	e.View = f1[5]
	e.Transform = f1[6]
	e.LabelDisplay = f1[7]
	e.StatusNumber = f1[8]

	e.TypeRepeat = f2[0]
	e.LineWeight = f2[1]
	e.Color = f2[2]
	e.ParamLineCnt = f2[3]
	e.FormNumber = f2[4]
	e.Reserved1 = f2[5]
	e.Reserved2 = f2[6]
	e.Label = strings.TrimSpace(labelField(line2))
	e.Subscript = f2[8]

	if e.Type != e.TypeRepeat {
		return e, igeserr.NewDE(igeserr.CorruptFile, "directory.ParseLines", deSeq,
			fmt.Errorf("entity type mismatch between DE lines: %d vs %d", e.Type, e.TypeRepeat))
	}
	return e, nil
}

// splitFields breaks a 72-column DE data string into its 9 8-char
// integer fields.
func splitFields(line string) ([9]int, error) {
	var out [9]int
	if len(line) < fieldWidth*fieldsPerLine {
		return out, fmt.Errorf("DE line too short (%d cols)", len(line))
	}
	for i := 0; i < fieldsPerLine; i++ {
		raw := strings.TrimSpace(line[i*fieldWidth : (i+1)*fieldWidth])
		if raw == "" {
			out[i] = 0
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return out, fmt.Errorf("field %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// labelField re-reads field 8 of the second DE line as raw text (an
// 8-character label, not an integer).
func labelField(line2 string) string {
	if len(line2) < fieldWidth*8 {
		return ""
	}
	return line2[fieldWidth*7 : fieldWidth*8]
}

// FormatLines re-encodes a model.Base (plus its resolved DE-index
// fields, already renumbered by the section writer) into the two DE
// records' 72-column data portions.
func FormatLines(b *model.Base, paramDataPtr int) (line1, line2 string) {
	status := packStatus(b)

	f1 := [9]int{
		int(b.Type),
		paramDataPtr,
		refField(b.Structure, model.NilHandle, false),
		refField(b.LineFont.Ptr, model.NilHandle, b.LineFont.IsPointer, b.LineFont.Enum),
		0, // level: unused
		refField(b.View.Ptr, model.NilHandle, b.View.IsPointer, b.View.Enum),
		int(b.Transform),
		refField(b.LabelDisp.Ptr, model.NilHandle, b.LabelDisp.IsPointer, b.LabelDisp.Enum),
		status,
	}
	line1 = joinFields(f1)

	label := b.Label
	if len(label) > 8 {
		label = label[:8]
	}
	for len(label) < 8 {
		label += " "
	}

	f2 := [7]int{
		int(b.Type),
		b.LineWeight,
		refField(b.Color.Ptr, model.NilHandle, b.Color.IsPointer, b.Color.Enum),
		b.PDLines,
		b.Form,
		0, 0, // reserved, forced to 0 on emit
	}
	var sb strings.Builder
	for _, v := range f2 {
		sb.WriteString(fmt.Sprintf("%8d", v))
	}
	sb.WriteString(label)
	sb.WriteString(fmt.Sprintf("%8d", b.Subscript))
	line2 = sb.String()

	return line1, line2
}

func joinFields(f [9]int) string {
	var sb strings.Builder
	for _, v := range f {
		sb.WriteString(fmt.Sprintf("%8d", v))
	}
	return sb.String()
}

// refField renders a field that may be a plain handle (structure field,
// integer-only) or a sign-convention enum/pointer field.
func refField(ptr model.Handle, nilVal model.Handle, isPointer bool, enum ...int) int {
	if isPointer && !ptr.IsNil() {
		return -int(ptr)
	}
	if len(enum) > 0 {
		return enum[0]
	}
	return int(ptr)
}

// packStatus combines the four status nibbles into the DE's packed
// decimal status-number field: blank*1000 + subordinate*100 + use*10 + hierarchy.
func packStatus(b *model.Base) int {
	return int(b.Blank)*1000 + int(b.Dependency)*100 + int(b.Use)*10 + int(b.Hierarchy)
}

// UnpackStatus splits a DE status-number field back into its four
// nibbles.
func UnpackStatus(status int) (blank model.BlankStatus, dep model.Dependency, use model.EntityUse, hier model.Hierarchy) {
	blank = model.BlankStatus((status / 1000) % 10)
	dep = model.Dependency((status / 100) % 10)
	use = model.EntityUse((status / 10) % 10)
	hier = model.Hierarchy(status % 10)
	return
}

// DecodeRef splits a raw DE field into (enum, ptrHandle, isPointer) by
// the sign convention: negative means a DE-index pointer (stored as its
// absolute, still-unresolved DE sequence number until the resolver runs);
// non-negative is a plain enum value.
func DecodeRef(raw int) model.Ref {
	if raw < 0 {
		return model.Ref{IsPointer: true, Ptr: model.Handle(-raw)}
	}
	return model.Ref{Enum: raw}
}

// ApplyToBase copies a decoded Entry's common fields onto base. Fields
// that name another entity (Structure, Transform, and the Color/View/
// LineFont/LabelDisplay sign-convention fields) are left holding the raw
// DE sequence number from the file; the graph resolver (C7) is
// responsible for translating those into arena handles during its second
// pass, before any payload's Associate runs.
func ApplyToBase(e Entry, base *model.Base) {
	base.Form = e.FormNumber
	base.PDLines = e.ParamLineCnt
	base.LineWeight = e.LineWeight
	base.Subscript = e.Subscript
	base.Label = strings.TrimSpace(e.Label)

	base.Blank, base.Dependency, base.Use, base.Hierarchy = UnpackStatus(e.StatusNumber)

	base.Structure = model.Handle(e.Structure)
	base.Transform = model.Handle(e.Transform)
	base.Color = DecodeRef(e.Color)
	base.View = DecodeRef(e.View)
	base.LineFont = DecodeRef(e.LineFont)
	base.LabelDisp = DecodeRef(e.LabelDisplay)
}
