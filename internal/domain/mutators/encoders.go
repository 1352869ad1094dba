package mutators

import (
	"encoding/base64"
	"strings"

	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

// Base64 encodes the payload with base64.
var Base64 = m.Mutator{
	Kind:        m.KindEncode,
	Name:        "Base64",
	LongName:    "base64",
	Description: "Base64 encodes the command and decodes it with base64 -d",
	Author:      "shellmorph authors",
	SizeRating:  2,
	TimeRating:  2,
	Binaries:    []string{"base64"},
	Apply:       base64Encode,
}

// RotN rotates letters by a random amount and rotates them back with tr.
var RotN = m.Mutator{
	Kind:        m.KindEncode,
	Name:        "RotN",
	LongName:    "rotn",
	Description: "Applies a random ROT-N to ASCII letters and reverts it with tr",
	Author:      "shellmorph authors",
	SizeRating:  1,
	TimeRating:  2,
	Binaries:    []string{"tr"},
	Apply:       rotN,
}

// PrintfEscape escapes every byte and lets the printf builtin decode them.
var PrintfEscape = m.Mutator{
	Kind:        m.KindEncode,
	Name:        "Printf Escape",
	LongName:    "printf",
	Description: "Escapes every byte as hex or octal and decodes with the printf builtin",
	Author:      "shellmorph authors",
	SizeRating:  4,
	TimeRating:  2,
	Apply:       printfEscape,
}

// eval -- "$(base64 -d<<<'ZWNobyBoaQ==')"
func base64Encode(_ m.Env, text string) (m.Payload, error) {
	s := &Script{}
	s.evalOutput(func(s *Script) {
		s.Bin("base64").Sp().Code("-d").hereString(base64.StdEncoding.EncodeToString([]byte(text)))
	})

	return s.Payload(), nil
}

// eval -- "$(tr 'A-Za-z' 'NOP...'<<<'...')"
func rotN(env m.Env, text string) (m.Payload, error) {
	n := 1 + env.Rand().IntN(25)

	s := &Script{}
	s.evalOutput(func(s *Script) {
		s.Bin("tr").Sp().Code("'A-Za-z'").Sp().Code("'"+rotate(upperASCII, 26-n)+rotate(lowerASCII, 26-n)+"'").
			hereString(rotText(text, n))
	})

	return s.Payload(), nil
}

func rotate(alphabet string, n int) string {
	n %= len(alphabet)
	return alphabet[n:] + alphabet[:n]
}

func rotText(s string, n int) string {
	b := []byte(s)

	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
			b[i] = 'a' + (c-'a'+byte(n))%26
		case c >= 'A' && c <= 'Z':
			b[i] = 'A' + (c-'A'+byte(n))%26
		}
	}

	return string(b)
}

// eval -- "$(printf '\x65\143...')"
func printfEscape(env m.Env, text string) (m.Payload, error) {
	rng := env.Rand()

	var format strings.Builder
	for i := 0; i < len(text); i++ {
		format.WriteString(escapeByte(rng, text[i]))
	}

	s := &Script{}
	s.evalOutput(func(s *Script) {
		s.Bin("printf").Sp().Code("'" + format.String() + "'")
	})

	return s.Payload(), nil
}
