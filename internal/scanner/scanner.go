// Package scanner finds candidate Base58 tokens in a byte buffer.
//
// A candidate is a literal prefix followed by a bounded run of Base58
// digits. Runs are taken greedily and matches never overlap: after a
// match the search resumes at the first byte past it, which gives the
// same leftmost-longest results as a regular expression scan.
package scanner

import (
	"bytes"

	"btcscan/internal/base58check"
	"btcscan/internal/token"
)

// Width is the number of bytes a character occupies in the buffer.
type Width int

const (
	// Plain text, one byte per character.
	Plain Width = 1
	// Widened text, each character followed by a zero byte as in
	// UTF-16LE encoded ASCII.
	Widened Width = 2
)

// WidthOf returns the scan mode for spec.
func WidthOf(spec token.Spec) Width {
	if spec.Unicode {
		return Widened
	}
	return Plain
}

// char returns the character stored at p.
func (w Width) char(buf []byte, p int) (byte, bool) {
	if p+int(w) > len(buf) {
		return 0, false
	}
	if w == Widened && buf[p+1] != 0x00 {
		return 0, false
	}
	return buf[p], true
}

// text extracts the characters of span, dropping the padding bytes.
func (w Width) text(span []byte) string {
	if w == Plain {
		return string(span)
	}
	b := make([]byte, len(span)/int(w))
	for i := range b {
		b[i] = span[i*int(w)]
	}
	return string(b)
}

// Match is a candidate found in the buffer.
type Match struct {
	Text   string // characters only, padding removed
	Offset int64  // of the first byte of the match in the buffer
	Length int    // in bytes, padding included
	Spec   token.Spec
}

// Matcher iterates over the matches of one Spec in a buffer. It reads
// the buffer in place and never copies it.
//
// Use it like a bufio.Scanner:
//
//	m := scanner.New(buf, spec)
//	for m.Next() {
//		use(m.Match())
//	}
type Matcher struct {
	buf   []byte
	spec  token.Spec
	width Width
	first [256]bool
	only  int // the single possible first byte, or -1
	pos   int
	match Match
}

// New returns a Matcher for spec over buf.
func New(buf []byte, spec token.Spec) *Matcher {
	m := &Matcher{
		buf:   buf,
		spec:  spec,
		width: WidthOf(spec),
		only:  -1,
	}
	for _, prefix := range spec.Prefixes {
		m.first[prefix[0]] = true
	}
	if len(spec.Prefixes) == 1 {
		m.only = int(spec.Prefixes[0][0])
	}
	return m
}

// Next advances to the next match, returning false when there is none.
func (m *Matcher) Next() bool {
	for {
		i := m.nextStart()
		if i < 0 {
			m.pos = len(m.buf)
			return false
		}
		end, ok := m.matchAt(i)
		if ok {
			span := m.buf[i:end]
			m.match = Match{
				Text:   m.width.text(span),
				Offset: int64(i),
				Length: len(span),
				Spec:   m.spec,
			}
			m.pos = end
			return true
		}
		if end > i {
			// Every start up to end sees a shorter run ending at
			// the same place, so none of them can match.
			m.pos = end
		} else {
			m.pos = i + 1
		}
	}
}

// Match returns the current match. Only valid after Next returned true.
func (m *Matcher) Match() Match {
	return m.match
}

// nextStart finds the next position at or after pos holding a byte a
// prefix can start with.
func (m *Matcher) nextStart() int {
	if m.pos >= len(m.buf) {
		return -1
	}
	if m.only >= 0 {
		i := bytes.IndexByte(m.buf[m.pos:], byte(m.only))
		if i < 0 {
			return -1
		}
		return m.pos + i
	}
	for i := m.pos; i < len(m.buf); i++ {
		if m.first[m.buf[i]] {
			return i
		}
	}
	return -1
}

// matchAt tries to match at i. On success it returns the end of the
// match. When a prefix matched but the run was too short it returns the
// end of the run with ok false, otherwise i.
func (m *Matcher) matchAt(i int) (end int, ok bool) {
	w := int(m.width)
	p, found := m.prefixAt(i)
	if !found {
		return i, false
	}
	n := 0
	for n < m.spec.MaxLen {
		c, ok := m.width.char(m.buf, p)
		if !ok || !base58check.IsDigit(c) {
			break
		}
		n++
		p += w
	}
	if n < m.spec.MinLen {
		return p, false
	}
	return p, true
}

// prefixAt returns the position just past the prefix starting at i.
func (m *Matcher) prefixAt(i int) (int, bool) {
	w := int(m.width)
next:
	for _, prefix := range m.spec.Prefixes {
		p := i
		for k := 0; k < len(prefix); k++ {
			c, ok := m.width.char(m.buf, p)
			if !ok || c != prefix[k] {
				continue next
			}
			p += w
		}
		return p, true
	}
	return i, false
}

// Find collects every match of spec in buf.
func Find(buf []byte, spec token.Spec) []Match {
	var matches []Match
	m := New(buf, spec)
	for m.Next() {
		matches = append(matches, m.Match())
	}
	return matches
}
