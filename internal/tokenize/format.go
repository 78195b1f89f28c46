package tokenize

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatInt renders an integer token.
func FormatInt(v int) string {
	return strconv.Itoa(v)
}

// FormatReal renders v as the shortest decimal string whose relative
// error against v is within tol (or the absolute error is within tol when
// v is close to zero), matching the teacher's "shortest representation
// not exceeding a tolerance" rule for per-field numeric precision (NURBS
// control-point data at 1e-15, weights/bookkeeping at 1e-6).
func FormatReal(v float64, tol float64) string {
	if v == 0 {
		return "0.0"
	}
	for prec := 1; prec <= 17; prec++ {
		s := strconv.FormatFloat(v, 'g', prec, 64)
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			continue
		}
		denom := v
		if denom < 0 {
			denom = -denom
		}
		diff := parsed - v
		if diff < 0 {
			diff = -diff
		}
		ok := diff <= tol
		if denom > 1 {
			ok = diff/denom <= tol
		}
		if ok {
			out := canonicalizeReal(s)
			// 'g' switches to exponent form once the exponent reaches prec;
			// the plain decimal form of the same value can be shorter.
			if plain := canonicalizeReal(strconv.FormatFloat(parsed, 'f', -1, 64)); len(plain) < len(out) {
				out = plain
			}
			return out
		}
	}
	return canonicalizeReal(strconv.FormatFloat(v, 'g', 17, 64))
}

// canonicalizeReal rewrites Go's exponent form ("1.5e+03") into IGES's
// ("1.5E+03") and guarantees a decimal point is present so readers never
// mistake a formatted real for an integer token.
func canonicalizeReal(s string) string {
	s = strings.ReplaceAll(s, "e", "E")
	if !strings.ContainsAny(s, ".E") {
		s += ".0"
	} else if strings.Contains(s, "E") && !strings.Contains(s, ".") {
		idx := strings.Index(s, "E")
		s = s[:idx] + ".0" + s[idx:]
	}
	return s
}

// FormatHString renders a Hollerith string token.
func FormatHString(s string) string {
	return fmt.Sprintf("%dH%s", len(s), s)
}

// FormatPointer renders a signed DE-index pointer token.
func FormatPointer(v int) string {
	return strconv.Itoa(v)
}

const pdPayloadWidth = 64

// PackPD joins tokens with paramDelim, terminates the payload with
// recordDelim, and wraps the result into 64-column payload lines
// (columns 65 blank, 66-72 the owning DE sequence number, per §6's P
// section layout). The final token on each entity gets the record
// delimiter instead of the parameter delimiter.
func PackPD(tokens []string, deSeq int, paramDelim, recordDelim byte) []string {
	if paramDelim == 0 {
		paramDelim = ','
	}
	if recordDelim == 0 {
		recordDelim = ';'
	}
	var joined strings.Builder
	for i, t := range tokens {
		joined.WriteString(t)
		if i == len(tokens)-1 {
			joined.WriteByte(recordDelim)
		} else {
			joined.WriteByte(paramDelim)
		}
	}
	full := joined.String()

	var lines []string
	for len(full) > 0 {
		cut := pdPayloadWidth
		if cut > len(full) {
			cut = len(full)
		}
		// Never split a token value across lines: back off to the last
		// delimiter at or before the column budget, unless the very first
		// token already overruns it (an opaque Hollerith string longer
		// than one line), in which case it must still be emitted whole.
		if cut < len(full) {
			if back := strings.LastIndexAny(full[:cut], string(paramDelim)+string(recordDelim)); back >= 0 {
				cut = back + 1
			}
		}
		payload := full[:cut]
		full = full[cut:]
		for len(payload) < pdPayloadWidth {
			payload += " "
		}
		lines = append(lines, fmt.Sprintf("%s %7d", payload, deSeq))
	}
	if len(lines) == 0 {
		lines = append(lines, fmt.Sprintf("%s %7d", strings.Repeat(" ", pdPayloadWidth), deSeq))
	}
	return lines
}
