package tokenize

import (
	"fmt"
	"strconv"
	"strings"

	"iges-kernel/internal/igeserr"
)

// Scanner walks a concatenated parameter-data token stream (the payload
// columns of one entity's P-section lines, joined in order), splitting on
// the Global-declared parameter- and record-delimiters while treating
// Hollerith strings ("nHccc...") as opaque runs of n characters so an
// embedded delimiter byte inside string data is not mistaken for a token
// boundary.
type Scanner struct {
	text       string
	pos        int
	paramDelim byte
	recordEnd  byte
	done       bool
}

// NewScanner builds a Scanner over text using the given delimiters
// (normally the Global section's parameter delimiter, default ',', and
// record delimiter, default ';').
func NewScanner(text string, paramDelim, recordDelim byte) *Scanner {
	if paramDelim == 0 {
		paramDelim = ','
	}
	if recordDelim == 0 {
		recordDelim = ';'
	}
	return &Scanner{text: text, paramDelim: paramDelim, recordEnd: recordDelim}
}

// Done reports whether the scanner consumed the record delimiter (or ran
// out of text).
func (s *Scanner) Done() bool { return s.done }

// next returns the raw text of the next token and positions the scanner
// past its trailing delimiter; Done then reports whether that token was
// the terminal (record-delimiter-closed) one.
func (s *Scanner) next() (string, error) {
	if s.done {
		return "", igeserr.New(igeserr.BadField, "Scanner.next", fmt.Errorf("read past record delimiter"))
	}
	start := s.pos
	n := len(s.text)

	// Hollerith string lookahead: digits immediately followed by 'H' name
	// an opaque payload of that many characters, which may itself contain
	// delimiter bytes.
	i := start
	for i < n && s.text[i] >= '0' && s.text[i] <= '9' {
		i++
	}
	if i > start && i < n && (s.text[i] == 'H' || s.text[i] == 'h') {
		count, _ := strconv.Atoi(s.text[start:i])
		strStart := i + 1
		strEnd := strStart + count
		if strEnd > n {
			return "", igeserr.New(igeserr.BadField, "Scanner.next", fmt.Errorf("Hollerith string overruns record (want %d chars at %d, have %d)", count, strStart, n-strStart))
		}
		tok := s.text[start:strEnd]
		s.pos = strEnd
		if s.pos >= n {
			s.done = true
			return tok, nil
		}
		switch s.text[s.pos] {
		case s.paramDelim:
			s.pos++
		case s.recordEnd:
			s.pos++
			s.done = true
		default:
			return "", igeserr.New(igeserr.BadField, "Scanner.next", fmt.Errorf("expected delimiter after Hollerith string at offset %d", s.pos))
		}
		return tok, nil
	}

	// Ordinary token: scan until an unescaped delimiter.
	j := start
	for j < n && s.text[j] != s.paramDelim && s.text[j] != s.recordEnd {
		j++
	}
	tok := strings.TrimSpace(s.text[start:j])
	if j >= n {
		s.pos = n
		s.done = true
		return tok, nil
	}
	switch s.text[j] {
	case s.paramDelim:
		s.pos = j + 1
	case s.recordEnd:
		s.pos = j + 1
		s.done = true
	}
	return tok, nil
}

// NextInt reads an integer token. An empty token means "omitted" (used =
// false) and the returned value is 0.
func (s *Scanner) NextInt() (value int, used bool, err error) {
	tok, err := s.next()
	if err != nil {
		return 0, false, err
	}
	if tok == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false, igeserr.New(igeserr.BadField, "Scanner.NextInt", fmt.Errorf("not an integer: %q", tok))
	}
	return v, true, nil
}

// NextPointer reads a signed DE-index pointer token. Sign is preserved so
// callers can apply negation semantics (e.g. pointer-vs-enum fields).
func (s *Scanner) NextPointer() (value int, used bool, err error) {
	return s.NextInt()
}

// NextReal reads a real-number token following IGES grammar: optional
// sign, digits, optional fraction, optional exponent marker D or E,
// optional exponent sign and digits. An empty token means omitted.
func (s *Scanner) NextReal() (value float64, used bool, err error) {
	tok, err := s.next()
	if err != nil {
		return 0, false, err
	}
	if tok == "" {
		return 0, false, nil
	}
	norm := normalizeReal(tok)
	v, err := strconv.ParseFloat(norm, 64)
	if err != nil {
		return 0, false, igeserr.New(igeserr.BadField, "Scanner.NextReal", fmt.Errorf("not a real: %q", tok))
	}
	return v, true, nil
}

// normalizeReal rewrites IGES's 'D' exponent marker (and a lone sign with
// no digits, "+" or "-") into Go's ParseFloat grammar.
func normalizeReal(tok string) string {
	var b strings.Builder
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if c == 'D' || c == 'd' {
			b.WriteByte('E')
			continue
		}
		b.WriteByte(c)
	}
	s := b.String()
	if s == "" {
		return "0"
	}
	// ".5" and "5." and "-.5" all parse fine in Go; only a lone sign needs help.
	if s == "+" || s == "-" {
		return s + "0"
	}
	return s
}

// NextString reads a Hollerith string token ("nHcontents") and returns its
// contents without the "nH" prefix. An empty token means omitted.
func (s *Scanner) NextString() (value string, used bool, err error) {
	tok, err := s.next()
	if err != nil {
		return "", false, err
	}
	if tok == "" {
		return "", false, nil
	}
	idx := strings.IndexAny(tok, "Hh")
	if idx <= 0 {
		return "", false, igeserr.New(igeserr.BadField, "Scanner.NextString", fmt.Errorf("not a Hollerith string: %q", tok))
	}
	return tok[idx+1:], true, nil
}

// NextRaw reads a token verbatim with no type interpretation, for callers
// that need to branch on content before deciding how to parse it.
func (s *Scanner) NextRaw() (string, error) {
	return s.next()
}
