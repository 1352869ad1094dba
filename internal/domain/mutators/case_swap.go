package mutators

import (
	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

const (
	lowerASCII = "abcdefghijklmnopqrstuvwxyz"
	upperASCII = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// CaseSwap flips the case of every ASCII letter and flips it back at
// execution time.
var CaseSwap = m.Mutator{
	Kind:        m.KindCommand,
	Name:        "Case Swapper",
	LongName:    "case_swap",
	Description: "Flips the case of all ASCII letters in the command",
	Author:      "shellmorph authors",
	SizeRating:  1,
	TimeRating:  2,
	Stubs: []m.Stub{
		{
			Name:       "tr_pipe",
			SizeRating: 1,
			TimeRating: 1,
			Binaries:   []string{"tr"},
			Apply:      caseSwapTr,
		},
		{
			Name:       "bash_loop",
			SizeRating: 2,
			TimeRating: 4,
			Apply:      caseSwapLoop,
		},
	},
}

// eval -- "$(tr 'a-zA-Z' 'A-Za-z'<<<'...')"
func caseSwapTr(env m.Env, text string) (m.Payload, error) {
	from, to := "'a-zA-Z'", "'A-Za-z'"
	if env.Rand().IntN(2) == 0 {
		from, to = "'"+lowerASCII+upperASCII+"'", "'"+upperASCII+lowerASCII+"'"
	}

	s := &Script{}
	s.evalOutput(func(s *Script) {
		s.Bin("tr").Sp().Code(from).Sp().Code(to).hereString(swapASCIICase(asciiOnly(text)))
	})

	return s.Payload(), nil
}

// The patterns spell the letters out so the loop only ever touches ASCII,
// whatever the locale's collation says about ranges.
func caseSwapLoop(env m.Env, text string) (m.Payload, error) {
	v, o, i, c := env.VarName(), env.VarName(), env.VarName(), env.VarName()

	s := &Script{}
	s.Code(v + "=" + singleQuote(swapASCIICase(asciiOnly(text)))).End()
	s.Code(o + "=").End()
	s.Code("for((" + i + "=").Int(0).
		Code(";" + i + "<${#" + v + "};" + i + "++));do").Sp().
		Code(c + "=${" + v + ":" + i + ":1};case").Sp().
		Code("$" + c).Sp().Code("in").Sp().
		Code("[" + lowerASCII + "])" + o + "+=${" + c + "^};;").
		Code("[" + upperASCII + "])" + o + "+=${" + c + ",};;").
		Code("*)" + o + "+=$" + c + ";;esac;done").End()
	s.evalVar(o)

	return s.Payload(), nil
}
