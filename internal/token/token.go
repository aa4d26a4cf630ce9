// Package token holds the table of Bitcoin Base58Check token types
// searched for in binary data.
package token

import (
	"strconv"
	"strings"
)

// MinFileSize is the length of the shortest token any Spec can match.
// Inputs shorter than this are never scanned.
const MinFileSize = 25

// Spec describes one searchable token type in one encoding.
//
// A match is one of Prefixes followed by MinLen to MaxLen Base58
// characters. When Unicode is set every byte of the match, prefix
// included, is followed by a zero byte.
type Spec struct {
	Name       string
	Prefixes   []string
	MinLen     int
	MaxLen     int
	DecodedLen int
	Quick      bool
	Unicode    bool
}

// PrefixLen is the length of the literal prefix in characters.
func (s Spec) PrefixLen() int {
	return len(s.Prefixes[0])
}

// String returns the name shown to users, tagged when Unicode is set.
func (s Spec) String() string {
	if s.Unicode {
		return s.Name + " (unicode)"
	}
	return s.Name
}

// Pattern renders the matching rule in regular expression syntax.
// It is only used for display.
func (s Spec) Pattern() string {
	var b strings.Builder
	if len(s.Prefixes) == 1 {
		b.WriteString(s.Prefixes[0])
	} else {
		b.WriteString("(")
		b.WriteString(strings.Join(s.Prefixes, "|"))
		b.WriteString(")")
	}
	b.WriteString("[1-9A-HJ-NP-Za-km-z]{")
	b.WriteString(strconv.Itoa(s.MinLen))
	if s.MaxLen != s.MinLen {
		b.WriteString(",")
		b.WriteString(strconv.Itoa(s.MaxLen))
	}
	b.WriteString("}")
	return b.String()
}

type tokenType struct {
	name       string
	prefixes   []string
	minLen     int
	maxLen     int
	decodedLen int
	quick      bool
}

var tokenTypes = []tokenType{
	{"Bitcoin address", []string{"1"}, 25, 34, 25, true},
	{"Bitcoin P2SH", []string{"3"}, 25, 34, 25, true},
	{"BIP38 Encrypted Private Key", []string{"6P"}, 56, 56, 43, true},
	{"WIF Private key, uncompressed public keys", []string{"5"}, 50, 50, 37, true},
	{"WIF Private key, compressed public keys", []string{"K", "L"}, 51, 51, 38, true},
	{"BIP32 HD wallet private node", []string{"xprv"}, 107, 108, 82, false},
	{"BIP32 HD wallet public node", []string{"xpub"}, 107, 108, 82, false},
}

// registry pairs every token type with its plain and unicode Spec,
// plain first.
var registry = func() []Spec {
	specs := make([]Spec, 0, 2*len(tokenTypes))
	for _, tt := range tokenTypes {
		for _, unicode := range []bool{false, true} {
			specs = append(specs, Spec{
				Name:       tt.name,
				Prefixes:   tt.prefixes,
				MinLen:     tt.minLen,
				MaxLen:     tt.maxLen,
				DecodedLen: tt.decodedLen,
				Quick:      tt.quick,
				Unicode:    unicode,
			})
		}
	}
	return specs
}()

// Registry returns every Spec in registration order.
func Registry() []Spec {
	specs := make([]Spec, len(registry))
	copy(specs, registry)
	return specs
}

// Lookup finds the Spec with the given name and encoding.
func Lookup(name string, unicode bool) (Spec, bool) {
	for _, s := range registry {
		if s.Name == name && s.Unicode == unicode {
			return s, true
		}
	}
	return Spec{}, false
}
