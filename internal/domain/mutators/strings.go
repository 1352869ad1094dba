package mutators

import (
	"encoding/hex"
	"fmt"
	"path"
	"slices"
	"strings"

	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

// ArrayJoin scatters the payload over a shuffled indexed array.
var ArrayJoin = m.Mutator{
	Kind:        m.KindString,
	Name:        "Array Join",
	LongName:    "array_join",
	Description: "Stores chunks of the command in an indexed array assigned out of order",
	Author:      "shellmorph authors",
	SizeRating:  2,
	TimeRating:  1,
	Apply:       arrayJoin,
}

// ForCode rebuilds the payload from a shuffled character set and an index list.
var ForCode = m.Mutator{
	Kind:        m.KindString,
	Name:        "ForCode",
	LongName:    "forcode",
	Description: "Shuffles the unique characters of the command and rebuilds it with a for loop",
	Author:      "shellmorph authors",
	SizeRating:  3,
	TimeRating:  3,
	Apply:       forCode,
}

// HexXxd stores the payload as a plain hex dump.
var HexXxd = m.Mutator{
	Kind:        m.KindString,
	Name:        "Hex Dump",
	LongName:    "hex_xxd",
	Description: "Hex encodes the command and reverts the dump with xxd",
	Author:      "shellmorph authors",
	SizeRating:  3,
	TimeRating:  2,
	Binaries:    []string{"xxd"},
	Apply:       hexXxd,
}

// FileGlob spreads the payload over files and reads them back through a glob.
var FileGlob = m.Mutator{
	Kind:        m.KindString,
	Name:        "File Glob",
	LongName:    "file_glob",
	Description: "Writes chunks of the command to files in shuffled order and cats them back with a glob",
	Author:      "shellmorph authors",
	Notes:       "Files are left in the write directory.",
	SizeRating:  2,
	TimeRating:  3,
	Binaries:    []string{"mkdir", "cat"},
	FileWrite:   true,
	Apply:       fileGlob,
}

// a=([2]='c' [0]='a' [1]='b');printf -v o %s "${a[@]}";eval -- "$o"
func arrayJoin(env m.Env, text string) (m.Payload, error) {
	rng := env.Rand()
	a, o := env.VarName(), env.VarName()
	parts := chunk(rng, text, 8)
	order := rng.Perm(len(parts))

	s := &Script{}
	s.Code(a + "=(")

	for n, idx := range order {
		if n > 0 {
			s.Sp()
		}

		s.Code("[").Int(idx).Code("]=" + randomQuote(rng, parts[idx]))
	}

	s.Code(")").End()
	s.Bin("printf").Sp().Code("-v").Sp().Code(o).Sp().Code("%s").Sp().Code(`"${` + a + `[@]}"`).End()
	s.evalVar(o)

	return s.Payload(), nil
}

// s='...';o=;for i in 3 0 2;do o+=${s:i:1};done;eval -- "$o"
func forCode(env m.Env, text string) (m.Payload, error) {
	rng := env.Rand()
	v, o, i := env.VarName(), env.VarName(), env.VarName()

	units := strings.Split(asciiOnly(text), "")
	set := slices.Clone(units)
	slices.Sort(set)
	set = slices.Compact(set)
	rng.Shuffle(len(set), func(a, b int) { set[a], set[b] = set[b], set[a] })

	index := make(map[string]int, len(set))
	for n, u := range set {
		index[u] = n
	}

	s := &Script{}
	s.Code(v + "=" + singleQuote(strings.Join(set, ""))).End()
	s.Code(o + "=").End()
	s.Code("for").Sp().Code(i).Sp().Code("in")

	for _, u := range units {
		s.Sp().Int(index[u])
	}

	s.Code(";do").Sp().Code(o + "+=${" + v + ":" + i + ":1};done").End()
	s.evalVar(o)

	return s.Payload(), nil
}

// eval -- "$(xxd -r -p<<<'6563686f')"
func hexXxd(_ m.Env, text string) (m.Payload, error) {
	s := &Script{}
	s.evalOutput(func(s *Script) {
		s.Bin("xxd").Sp().Code("-r").Sp().Code("-p").hereString(hex.EncodeToString([]byte(text)))
	})

	return s.Payload(), nil
}

// mkdir -p '/dir';printf %s 'b'>'/dir/00007';printf %s 'a'>'/dir/00003';eval -- "$(cat '/dir/'*)"
func fileGlob(env m.Env, text string) (m.Payload, error) {
	rng := env.Rand()
	dir := path.Join(env.WriteDir(), "."+env.VarName())
	parts := chunk(rng, text, 16)

	// Same-width digit names sort identically under every collation.
	seq := make([]int, len(parts))
	next := 0

	for n := range parts {
		next += 1 + rng.IntN(97)
		seq[n] = next
	}

	width := max(5, len(fmt.Sprint(next)))
	names := make([]string, len(parts))

	for n, v := range seq {
		names[n] = fmt.Sprintf("%0*d", width, v)
	}

	s := &Script{}
	s.Bin("mkdir").Sp().Code("-p").Sp().Code(singleQuote(dir)).End()

	for _, n := range rng.Perm(len(parts)) {
		s.Bin("printf").Sp().Code("%s").Sp().Code(singleQuote(parts[n])).
			Pad().Code(">").Pad().Code(singleQuote(path.Join(dir, names[n]))).End()
	}

	s.evalOutput(func(s *Script) {
		s.Bin("cat").Sp().Code(singleQuote(dir+"/") + "*")
	})

	return s.Payload(), nil
}
