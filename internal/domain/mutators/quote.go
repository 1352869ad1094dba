package mutators

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"
)

// singleQuote renders s as one single-quoted shell word.
func singleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// doubleQuote renders s as one double-quoted shell word with every
// expansion-active character escaped.
func doubleQuote(s string) string {
	var b strings.Builder

	b.WriteByte('"')

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '"', '$', '`':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}

	b.WriteByte('"')

	return b.String()
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// escapeByte renders one byte as a hex or three-digit octal escape, both of
// which mean the same inside $'...' and a printf format.
func escapeByte(rng *rand.Rand, c byte) string {
	if rng.IntN(2) == 0 {
		return fmt.Sprintf(`\x%02x`, c)
	}

	return fmt.Sprintf(`\%03o`, c)
}

// ansiC renders s as one $'...' word, leaving some alphanumerics literal.
func ansiC(rng *rand.Rand, s string) string {
	var b strings.Builder

	b.WriteString("$'")

	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAlnum(c) && rng.IntN(3) == 0 {
			b.WriteByte(c)
			continue
		}

		b.WriteString(escapeByte(rng, c))
	}

	b.WriteByte('\'')

	return b.String()
}

// randomQuote renders s with a randomly chosen quoting style.
func randomQuote(rng *rand.Rand, s string) string {
	switch rng.IntN(3) {
	case 0:
		return singleQuote(s)
	case 1:
		return doubleQuote(s)
	default:
		return ansiC(rng, s)
	}
}

// chunk splits s into pieces of 1..maxLen bytes.
func chunk(rng *rand.Rand, s string, maxLen int) []string {
	var out []string

	for len(s) > 0 {
		n := 1 + rng.IntN(maxLen)
		if n > len(s) {
			n = len(s)
		}

		out = append(out, s[:n])
		s = s[n:]
	}

	return out
}

// asciiOnly returns s unchanged when it is plain ASCII. Otherwise it wraps s
// in `eval -- $'...'` with every non-ASCII byte written as \xHH, so that
// character indexing, rev(1) and tr(1) see single bytes in every locale.
func asciiOnly(s string) string {
	if isASCII(s) {
		return s
	}

	var b strings.Builder

	b.WriteString("eval -- $'")

	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= utf8.RuneSelf:
			fmt.Fprintf(&b, `\x%02x`, c)
		case c == '\'' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}

	b.WriteByte('\'')

	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}

	return true
}

// reverseLines reverses every line byte by byte, keeping line order, which is
// what rev(1) undoes for ASCII text.
func reverseLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = reverseBytes(line)
	}

	return strings.Join(lines, "\n")
}

func reverseBytes(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	return string(b)
}

// swapASCIICase toggles the case of ASCII letters only.
func swapASCIICase(s string) string {
	b := []byte(s)

	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
			b[i] = c - 'a' + 'A'
		case c >= 'A' && c <= 'Z':
			b[i] = c - 'A' + 'a'
		}
	}

	return string(b)
}
