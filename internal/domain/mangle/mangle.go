// Package mangle implements the last rewriting pass over a layered payload.
//
// The pass never looks at the payload text itself: it rewrites only the
// marked spans and inserts no-op statements after statement terminators, so
// every edit is computed against the unmangled text and applied in one
// ordered rewrite.
package mangle

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

const fillerChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Mangler applies the configured rewrites.
type Mangler struct {
	opts m.Mangling
}

// New returns a mangler for opts.
func New(opts m.Mangling) *Mangler {
	return &Mangler{opts: opts}
}

type edit struct {
	start, end int
	text       string
}

// Mangle rewrites p and returns the final text. Marks must be ordered and
// non-overlapping, which is what mutators.Script produces.
func (mg *Mangler) Mangle(rng *rand.Rand, p m.Payload) string {
	if mg.opts.Disabled || len(p.Marks) == 0 {
		return p.Text
	}

	edits := make([]edit, 0, len(p.Marks))

	for _, mark := range p.Marks {
		if text, ok := mg.rewrite(rng, mark); ok {
			edits = append(edits, edit{start: mark.Start, end: mark.End, text: text})
		}
	}

	return apply(p.Text, edits)
}

func (mg *Mangler) rewrite(rng *rand.Rand, mark m.Mark) (string, bool) {
	switch mark.Kind {
	case m.MarkBinary:
		if mg.opts.NoBinaryMangling {
			return "", false
		}

		return mg.binary(rng, mark.Value), true
	case m.MarkInt:
		if mg.opts.NoIntegerMangling {
			return "", false
		}

		v, err := strconv.Atoi(mark.Value)
		if err != nil {
			return "", false
		}

		return integer(rng, v, !mg.opts.NoIntegerBases), true
	case m.MarkSpace:
		if mg.opts.NoWhitespace {
			return "", false
		}

		return strings.Repeat(" ", max(1, draw(rng, mg.opts.Whitespace))), true
	case m.MarkPad:
		if mg.opts.NoWhitespace {
			return "", false
		}

		return strings.Repeat(" ", draw(rng, mg.opts.Whitespace)), true
	case m.MarkTerm:
		if mg.opts.NoTerminators && mg.opts.NoInsertChars {
			return "", false
		}

		out := mg.terminator(rng)
		if !mg.opts.NoInsertChars {
			out += mg.noop(rng)
		}

		return out, true
	default:
		return "", false
	}
}

// binary quotes some alphanumerics of a command word. Every form still
// expands to the same word, so the shell resolves the same program.
func (mg *Mangler) binary(rng *rand.Rand, name string) string {
	var b strings.Builder

	for i := 0; i < len(name); i++ {
		c := name[i]
		if !isAlnum(c) || rng.IntN(100) >= mg.opts.BinaryPercent {
			b.WriteByte(c)
			continue
		}

		switch rng.IntN(6) {
		case 0:
			b.WriteString("'" + string(c) + "'")
		case 1:
			b.WriteString(`"` + string(c) + `"`)
		case 2:
			b.WriteString(`\` + string(c))
		case 3:
			b.WriteString("$'" + string(c) + "'")
		case 4:
			fmt.Fprintf(&b, `$'\x%02x'`, c)
		default:
			b.WriteString(string(c) + "''")
		}
	}

	return b.String()
}

func (mg *Mangler) terminator(rng *rand.Rand) string {
	if mg.opts.NoTerminators || rng.IntN(2) == 0 {
		return ";"
	}

	return "\n"
}

// noop renders a self-terminated statement with no effect on the payload.
func (mg *Mangler) noop(rng *rand.Rand) string {
	filler := fill(rng, draw(rng, mg.opts.InsertChars))

	switch rng.IntN(3) {
	case 0:
		return ": " + filler + mg.terminator(rng)
	case 1:
		return "#" + filler + "\n"
	default:
		return "__" + fill(rng, 4+rng.IntN(5)) + "=" + filler + mg.terminator(rng)
	}
}

func apply(text string, edits []edit) string {
	var b strings.Builder

	b.Grow(len(text) * 2)

	pos := 0
	for _, e := range edits {
		b.WriteString(text[pos:e.start])
		b.WriteString(e.text)
		pos = e.end
	}

	b.WriteString(text[pos:])

	return b.String()
}

// draw returns a uniform count in r.
func draw(rng *rand.Rand, r m.Range) int {
	if r.High <= r.Low {
		return max(0, r.Low)
	}

	return r.Low + rng.IntN(r.High-r.Low+1)
}

func fill(rng *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = fillerChars[rng.IntN(len(fillerChars))]
	}

	return string(b)
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
