// Package global models the IGES Global section (C3): the 26-field
// record describing delimiters, product/system identity, numeric
// precision, units, and authorship for the whole file.
package global

import (
	"fmt"
	"strings"

	"iges-kernel/internal/igeserr"
	"iges-kernel/internal/tokenize"
)

// Unit names recognized by the unit flag/name cross-check.
const (
	UnitInches      = "IN"
	UnitMillimeters = "MM"
)

// Params holds the Global section fields. Field numbering follows the
// IGES 5.3 Global record.
type Params struct {
	ParamDelim byte // default ','
	RecordDelim byte // default ';'

	SenderID   string
	FileName   string
	SystemID   string
	PreprocVer string

	IntegerBits int // default 32
	SingleExp   int
	SingleSig   int // default 6
	DoubleExp   int
	DoubleSig   int // default 15

	ReceiverID     string
	ScaleFactor    float64
	UnitFlag       int    // 1=inches, 2=mm, 3=custom name-only, ...
	UnitName       string // "IN", "MM", ...
	LineWeightGrad int
	MaxLineWeight  float64

	ModelTimestamp  string
	MinResolution   float64
	MaxCoord        float64
	AuthorName      string
	AuthorOrg       string
	Version         int // >=11 means 5.3
	DraftStandard   int
	WriterTimestamp string
}

// Default returns the IGES-specified defaults for every field a file is
// permitted to omit.
func Default() Params {
	return Params{
		ParamDelim:  ',',
		RecordDelim: ';',
		IntegerBits: 32,
		SingleSig:   6,
		DoubleSig:   15,
		UnitFlag:    1,
		UnitName:    UnitInches,
		Version:     11,
	}
}

// ValidDelimiters checks spec.md §3's invariant: the two delimiters must
// be distinct single characters, neither a digit, sign, decimal point,
// 'E'/'D', nor a space.
func ValidDelimiters(paramDelim, recordDelim byte) error {
	if paramDelim == recordDelim {
		return igeserr.New(igeserr.BadField, "ValidDelimiters", fmt.Errorf("parameter and record delimiters must differ"))
	}
	for _, d := range []byte{paramDelim, recordDelim} {
		if isReservedDelim(d) {
			return igeserr.New(igeserr.BadField, "ValidDelimiters", fmt.Errorf("delimiter %q is reserved", d))
		}
	}
	return nil
}

func isReservedDelim(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c == '+' || c == '-' || c == '.' || c == 'E' || c == 'e' || c == 'D' || c == 'd' || c == ' ':
		return true
	}
	return false
}

// Parse reads the Global section's token stream (already assembled from
// all G-section continuation lines) using the default ',' ';'
// delimiters, since the delimiters themselves are the first two fields
// of that very stream.
func Parse(text string) (Params, error) {
	p := Default()

	// The first two fields may redeclare the delimiters; they are always
	// Hollerith strings of length 1 (or omitted).
	s := tokenize.NewScanner(text, ',', ';')

	if raw, used, err := s.NextString(); err != nil {
		return p, igeserr.New(igeserr.BadField, "global.Parse", err)
	} else if used && len(raw) == 1 {
		p.ParamDelim = raw[0]
	}
	if raw, used, err := s.NextString(); err != nil {
		return p, igeserr.New(igeserr.BadField, "global.Parse", err)
	} else if used && len(raw) == 1 {
		p.RecordDelim = raw[0]
	}
	if err := ValidDelimiters(p.ParamDelim, p.RecordDelim); err != nil {
		return p, err
	}

	// Re-scan the remainder of the stream with the declared delimiters.
	rest := text
	// Skip past the two delimiter fields we just consumed in the default
	// scan; re-derive the remainder by re-running a default-delimited
	// scan and capturing raw token boundaries is unnecessary here because
	// fields 3+ in practice use the just-declared delimiters, which match
	// the defaults unless overridden — re-parse from scratch under the
	// declared delimiters for correctness in the override case.
	s2 := tokenize.NewScanner(rest, p.ParamDelim, p.RecordDelim)
	_, _, _ = s2.NextString() // re-consume delim field 1
	_, _, _ = s2.NextString() // re-consume delim field 2

	readStr := func(dst *string) {
		if v, used, err := s2.NextString(); err == nil && used {
			*dst = v
		}
	}
	readInt := func(dst *int) {
		if v, used, err := s2.NextInt(); err == nil && used {
			*dst = v
		}
	}
	readReal := func(dst *float64) {
		if v, used, err := s2.NextReal(); err == nil && used {
			*dst = v
		}
	}

	readStr(&p.SenderID)
	readStr(&p.FileName)
	readStr(&p.SystemID)
	readStr(&p.PreprocVer)
	readInt(&p.IntegerBits)
	readInt(&p.SingleExp)
	readInt(&p.SingleSig)
	readInt(&p.DoubleExp)
	readInt(&p.DoubleSig)
	readStr(&p.ReceiverID)
	readReal(&p.ScaleFactor)
	readInt(&p.UnitFlag)
	readStr(&p.UnitName)
	readInt(&p.LineWeightGrad)
	readReal(&p.MaxLineWeight)
	readStr(&p.ModelTimestamp)
	readReal(&p.MinResolution)
	readReal(&p.MaxCoord)
	readStr(&p.AuthorName)
	readStr(&p.AuthorOrg)
	readInt(&p.Version)
	readInt(&p.DraftStandard)
	readStr(&p.WriterTimestamp)

	p.UnitName = strings.ToUpper(strings.TrimSpace(p.UnitName))
	p.normalizeUnits()

	return p, nil
}

// normalizeUnits applies the flag/name cross-check from spec.md §4.3: a
// flag of 3 with a name other than MM is coerced to 2/MM.
func (p *Params) normalizeUnits() {
	if p.UnitFlag == 3 && p.UnitName != UnitMillimeters {
		p.UnitFlag = 2
		p.UnitName = UnitMillimeters
	}
	if p.UnitName == "" {
		switch p.UnitFlag {
		case 2:
			p.UnitName = UnitMillimeters
		default:
			p.UnitName = UnitInches
		}
	}
}

// Format serializes Params back into a token list, ready for
// tokenize.PackPD (with deSeq 0, since the Global section's PD lines
// carry no owning-DE back-pointer).
func (p Params) Format() []string {
	tok := []string{
		tokenize.FormatHString(string(p.ParamDelim)),
		tokenize.FormatHString(string(p.RecordDelim)),
		tokenize.FormatHString(p.SenderID),
		tokenize.FormatHString(p.FileName),
		tokenize.FormatHString(p.SystemID),
		tokenize.FormatHString(p.PreprocVer),
		tokenize.FormatInt(p.IntegerBits),
		tokenize.FormatInt(p.SingleExp),
		tokenize.FormatInt(p.SingleSig),
		tokenize.FormatInt(p.DoubleExp),
		tokenize.FormatInt(p.DoubleSig),
		tokenize.FormatHString(p.ReceiverID),
		tokenize.FormatReal(p.ScaleFactor, 1e-6),
		tokenize.FormatInt(p.UnitFlag),
		tokenize.FormatHString(p.UnitName),
		tokenize.FormatInt(p.LineWeightGrad),
		tokenize.FormatReal(p.MaxLineWeight, 1e-6),
		tokenize.FormatHString(p.ModelTimestamp),
		tokenize.FormatReal(p.MinResolution, 1e-6),
		tokenize.FormatReal(p.MaxCoord, 1e-6),
		tokenize.FormatHString(p.AuthorName),
		tokenize.FormatHString(p.AuthorOrg),
		tokenize.FormatInt(p.Version),
		tokenize.FormatInt(p.DraftStandard),
		tokenize.FormatHString(p.WriterTimestamp),
	}
	return tok
}
