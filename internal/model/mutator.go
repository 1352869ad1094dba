// Package model defines the data structures shared by the obfuscation engine.
package model

import "math/rand/v2"

// Kind is the category a mutator belongs to.
type Kind string

const (
	// KindCommand wraps a payload behind an execution strategy chosen among stubs.
	KindCommand Kind = "command"
	// KindString rebuilds the payload string at runtime before executing it.
	KindString Kind = "string"
	// KindToken rewrites the payload into differently quoted shell words.
	KindToken Kind = "token"
	// KindEncode encodes the payload and prepends a decoder.
	KindEncode Kind = "encode"
	// KindCompress compresses the payload and prepends a decompressor.
	KindCompress Kind = "compress"
)

// Kinds lists every mutator kind in catalog order.
var Kinds = []Kind{KindCommand, KindString, KindToken, KindEncode, KindCompress}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}

	return false
}

const (
	// MinRating is the lowest size/time rating.
	MinRating = 1
	// MaxRating is the highest size/time rating.
	MaxRating = 4
)

// Env is what a transform sees while rendering its wrapper.
type Env interface {
	// Rand is the generation's pseudo-random source.
	Rand() *rand.Rand
	// VarName returns a fresh variable name, unique within the generation.
	VarName() string
	// WriteDir is the directory file-writing code may use at execution time.
	WriteDir() string
}

// Transform embeds an executable text fragment inside an obfuscated wrapper.
type Transform func(env Env, text string) (Payload, error)

// Stub is one execution strategy of a command mutator.
type Stub struct {
	Name       string
	SizeRating int
	TimeRating int
	Binaries   []string
	FileWrite  bool
	Apply      Transform `yaml:"-"`
}

// Mutator describes a named transformation strategy.
//
// Command mutators are strategy containers: their Binaries and FileWrite are
// never consulted, only those of the selected stub. Every other kind carries
// its own Apply.
type Mutator struct {
	Kind        Kind
	Name        string
	LongName    string
	Description string
	Author      string
	Notes       string
	Credits     []string
	SizeRating  int
	TimeRating  int
	Binaries    []string
	FileWrite   bool
	Stubs       []Stub
	Apply       Transform `yaml:"-"`
}

// Token returns the "kind/longName" form used in explicit orderings.
func (mu Mutator) Token() string {
	return string(mu.Kind) + "/" + mu.LongName
}

// Stub returns the stub with the given name.
func (mu Mutator) Stub(name string) (Stub, bool) {
	for _, stub := range mu.Stubs {
		if stub.Name == name {
			return stub, true
		}
	}

	return Stub{}, false
}

// Clone returns a deep copy so callers can never alias catalog storage.
func (mu Mutator) Clone() Mutator {
	out := mu
	out.Credits = append([]string(nil), mu.Credits...)
	out.Binaries = append([]string(nil), mu.Binaries...)

	if mu.Stubs != nil {
		out.Stubs = make([]Stub, len(mu.Stubs))
		for i, stub := range mu.Stubs {
			stub.Binaries = append([]string(nil), stub.Binaries...)
			out.Stubs[i] = stub
		}
	}

	return out
}

// Sequences is the five ordered mutator lists a catalog is built from.
type Sequences struct {
	Command  []Mutator
	String   []Mutator
	Token    []Mutator
	Encode   []Mutator
	Compress []Mutator
}

// Of returns the sequence holding kind.
func (s Sequences) Of(kind Kind) []Mutator {
	switch kind {
	case KindCommand:
		return s.Command
	case KindString:
		return s.String
	case KindToken:
		return s.Token
	case KindEncode:
		return s.Encode
	case KindCompress:
		return s.Compress
	default:
		return nil
	}
}
