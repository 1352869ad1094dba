package domain

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"

	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

const (
	varNameLetters = "abcdefghijklmnopqrstuvwxyz"
	varNameChars   = varNameLetters + "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_"
	varNameMinLen  = 6
	varNameMaxLen  = 10
)

// Lowercase names bash gives a meaning to.
var reservedVarNames = map[string]struct{}{"histchars": {}, "auto_resume": {}}

// newRand returns the PCG source of one generation.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// randomSeed draws a seed from the operating system.
func randomSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return rand.Uint64()
	}

	return binary.LittleEndian.Uint64(b[:])
}

// genEnv is the per-generation state transforms render with.
type genEnv struct {
	rng      *rand.Rand
	writeDir string
	used     map[string]struct{}
}

var _ m.Env = (*genEnv)(nil)

func newGenEnv(rng *rand.Rand, writeDir string) *genEnv {
	return &genEnv{rng: rng, writeDir: writeDir, used: make(map[string]struct{})}
}

func (e *genEnv) Rand() *rand.Rand { return e.rng }

func (e *genEnv) WriteDir() string { return e.writeDir }

// VarName returns a fresh name starting with a lowercase letter. Names never
// start with "__", which the mangling pass reserves for its own no-ops.
func (e *genEnv) VarName() string {
	for {
		n := varNameMinLen + e.rng.IntN(varNameMaxLen-varNameMinLen+1)
		b := make([]byte, n)
		b[0] = varNameLetters[e.rng.IntN(len(varNameLetters))]

		for i := 1; i < n; i++ {
			b[i] = varNameChars[e.rng.IntN(len(varNameChars))]
		}

		name := string(b)
		if _, reserved := reservedVarNames[name]; reserved {
			continue
		}

		if _, dup := e.used[name]; !dup {
			e.used[name] = struct{}{}
			return name
		}
	}
}
