package mangle

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

const (
	minTerms = 2
	maxTerms = 4
)

// integer renders v as an arithmetic expansion of 2 to 4 signed terms that
// sum to v. With bases, each term is written in a random radix.
func integer(rng *rand.Rand, v int, bases bool) string {
	n := minTerms + rng.IntN(maxTerms-minTerms+1)
	bound := 2*v + 64
	terms := make([]int, n)
	sum := 0

	for i := 0; i < n-1; i++ {
		terms[i] = rng.IntN(bound)
		if rng.IntN(2) == 0 {
			terms[i] = -terms[i]
		}

		sum += terms[i]
	}

	terms[n-1] = v - sum

	var b strings.Builder

	b.WriteString("$((")

	for i, t := range terms {
		switch {
		case t < 0:
			b.WriteByte('-')
			t = -t
		case i > 0:
			b.WriteByte('+')
		}

		b.WriteString(literal(rng, t, bases))
	}

	b.WriteString("))")

	return b.String()
}

// literal renders a non-negative integer in a form bash arithmetic reads back
// as the same value.
func literal(rng *rand.Rand, v int, bases bool) string {
	if !bases {
		return strconv.Itoa(v)
	}

	switch rng.IntN(4) {
	case 0:
		return strconv.Itoa(v)
	case 1:
		return "0x" + strconv.FormatInt(int64(v), 16)
	case 2:
		return "0" + strconv.FormatInt(int64(v), 8)
	default:
		base := 2 + rng.IntN(35)
		return strconv.Itoa(base) + "#" + strconv.FormatInt(int64(v), base)
	}
}
