package mutators

import (
	"strings"

	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

// AnsiCQuote turns the whole payload into one ANSI-C quoted word.
var AnsiCQuote = m.Mutator{
	Kind:        m.KindToken,
	Name:        "ANSI-C Quote",
	LongName:    "ansi_c_quote",
	Description: "Escapes the command as hex and octal sequences inside $'...'",
	Author:      "shellmorph authors",
	SizeRating:  3,
	TimeRating:  1,
	Apply:       ansiCQuote,
}

// CharSplit splits the payload into differently quoted fragments of one word.
var CharSplit = m.Mutator{
	Kind:        m.KindToken,
	Name:        "Char Split",
	LongName:    "char_split",
	Description: "Splits the command into fragments quoted with single, double or ANSI-C quotes",
	Author:      "shellmorph authors",
	SizeRating:  2,
	TimeRating:  1,
	Apply:       charSplit,
}

// eval -- $'\x65c\150o hi'
func ansiCQuote(env m.Env, text string) (m.Payload, error) {
	s := &Script{}
	s.evalWord().Code(ansiC(env.Rand(), text))

	return s.Payload(), nil
}

// eval -- 'ec'"ho"$'\x20'hi
func charSplit(env m.Env, text string) (m.Payload, error) {
	rng := env.Rand()

	var word strings.Builder
	for _, part := range chunk(rng, text, 6) {
		word.WriteString(randomQuote(rng, part))
	}

	s := &Script{}
	s.evalWord().Code(word.String())

	return s.Payload(), nil
}
