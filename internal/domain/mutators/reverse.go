package mutators

import (
	"path"

	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

// Reverse stores the payload reversed and restores it at execution time.
var Reverse = m.Mutator{
	Kind:        m.KindCommand,
	Name:        "Reverse",
	LongName:    "reverse",
	Description: "Reverses the command and un-reverses it right before execution",
	Author:      "shellmorph authors",
	SizeRating:  1,
	TimeRating:  1,
	Stubs: []m.Stub{
		{
			Name:       "rev_herestring",
			SizeRating: 1,
			TimeRating: 1,
			Binaries:   []string{"rev"},
			Apply:      reverseHereString,
		},
		{
			Name:       "bash_loop",
			SizeRating: 2,
			TimeRating: 3,
			Apply:      reverseLoop,
		},
		{
			Name:       "rev_file",
			SizeRating: 2,
			TimeRating: 2,
			Binaries:   []string{"rev"},
			FileWrite:  true,
			Apply:      reverseFile,
		},
	},
}

// eval -- "$(LC_ALL=C rev<<<'...')"
func reverseHereString(_ m.Env, text string) (m.Payload, error) {
	s := &Script{}
	s.evalOutput(func(s *Script) {
		s.Code("LC_ALL=C").Sp().Bin("rev").hereString(reverseLines(asciiOnly(text)))
	})

	return s.Payload(), nil
}

// v='...';o=;for((i=${#v}-1;i>=0;i--));do o+=${v:i:1};done;eval -- "$o"
func reverseLoop(env m.Env, text string) (m.Payload, error) {
	v, o, i := env.VarName(), env.VarName(), env.VarName()

	s := &Script{}
	s.Code(v + "=" + singleQuote(reverseBytes(asciiOnly(text)))).End()
	s.Code(o + "=").End()
	s.Code("for((" + i + "=${#" + v + "}-").Int(1).
		Code(";" + i + ">=").Int(0).
		Code(";" + i + "--));do").Sp().
		Code(o + "+=${" + v + ":" + i + ":1};done").End()
	s.evalVar(o)

	return s.Payload(), nil
}

// printf %s '...'>'/dir/f';eval -- "$(LC_ALL=C rev '/dir/f')"
func reverseFile(env m.Env, text string) (m.Payload, error) {
	file := singleQuote(path.Join(env.WriteDir(), "."+env.VarName()))

	s := &Script{}
	s.Bin("printf").Sp().Code("%s").Sp().Code(singleQuote(reverseLines(asciiOnly(text)))).
		Pad().Code(">").Pad().Code(file).End()
	s.evalOutput(func(s *Script) {
		s.Code("LC_ALL=C").Sp().Bin("rev").Sp().Code(file)
	})

	return s.Payload(), nil
}
