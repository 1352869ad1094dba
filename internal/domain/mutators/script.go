// Package mutators holds the statically registered mutator definitions.
//
// Every transform renders its wrapper through a Script so the places the
// mangling pass may rewrite (command words, integers, separators and
// statement terminators) are recorded as marks instead of being rediscovered
// by parsing the text afterwards.
package mutators

import (
	"strconv"
	"strings"

	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

// Script accumulates wrapper text and its mangling marks.
type Script struct {
	b     strings.Builder
	marks []m.Mark
}

// Code appends text the mangling pass must never touch.
func (s *Script) Code(text string) *Script {
	s.b.WriteString(text)
	return s
}

// Bin appends a command word naming a program or builtin.
func (s *Script) Bin(name string) *Script {
	return s.mark(m.MarkBinary, name, name)
}

// Int appends a non-negative integer literal. Callers only use it where an
// arithmetic expansion is also valid.
func (s *Script) Int(n int) *Script {
	v := strconv.Itoa(n)
	return s.mark(m.MarkInt, v, v)
}

// Sp appends a required word separator.
func (s *Script) Sp() *Script {
	return s.mark(m.MarkSpace, " ", "")
}

// Pad marks a spot where optional whitespace may appear.
func (s *Script) Pad() *Script {
	return s.mark(m.MarkPad, "", "")
}

// End terminates a top-level statement.
func (s *Script) End() *Script {
	return s.mark(m.MarkTerm, ";", "").Pad()
}

func (s *Script) mark(kind m.MarkKind, text, value string) *Script {
	start := s.b.Len()
	s.b.WriteString(text)
	s.marks = append(s.marks, m.Mark{Kind: kind, Start: start, End: s.b.Len(), Value: value})

	return s
}

// Payload returns the rendered text and its marks.
func (s *Script) Payload() m.Payload {
	return m.Payload{
		Text:  s.b.String(),
		Marks: append([]m.Mark(nil), s.marks...),
	}
}

// evalOutput renders `eval -- "$(<inner>)"`, the common tail of decoders.
func (s *Script) evalOutput(inner func(*Script)) *Script {
	s.evalWord().Code(`"$(`).Pad()
	inner(s)
	s.Pad().Code(`)"`)

	return s
}

// evalVar renders `eval -- "$name"`.
func (s *Script) evalVar(name string) *Script {
	return s.evalWord().Code(`"$` + name + `"`)
}

// evalWord renders `eval -- `. The "--" keeps a payload that starts with a
// dash from being read as an eval option.
func (s *Script) evalWord() *Script {
	return s.Bin("eval").Sp().Code("--").Sp()
}

// hereString renders `<<<'data'` with optional padding before the data.
func (s *Script) hereString(data string) *Script {
	return s.Pad().Code("<<<").Pad().Code(singleQuote(data))
}
