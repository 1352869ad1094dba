package model

import (
	"fmt"
	"strconv"
	"strings"
)

// BinaryMode selects how BinaryPreference.Names is interpreted.
type BinaryMode int

const (
	// BinariesAny puts no restriction on binaries.
	BinariesAny BinaryMode = iota
	// BinariesInclude only allows the listed binaries.
	BinariesInclude
	// BinariesExclude forbids the listed binaries.
	BinariesExclude
)

// BinaryPreference is an allow-set or a deny-set of external programs.
type BinaryPreference struct {
	Mode  BinaryMode
	Names []string
}

// IncludeBinaries builds an allow-set preference.
func IncludeBinaries(names ...string) BinaryPreference {
	return BinaryPreference{Mode: BinariesInclude, Names: names}
}

// ExcludeBinaries builds a deny-set preference.
func ExcludeBinaries(names ...string) BinaryPreference {
	return BinaryPreference{Mode: BinariesExclude, Names: names}
}

// Range is an inclusive [Low, High] count range.
type Range struct {
	Low  int
	High int
}

// Validate checks Low >= 0, High > 0 and Low <= High.
func (r Range) Validate(field string) error {
	if r.Low < 0 {
		return Invalid(field, "low bound %d is negative", r.Low)
	}

	if r.High <= 0 {
		return Invalid(field, "high bound must be greater than 0")
	}

	if r.Low > r.High {
		return Invalid(field, "low bound %d is greater than high bound %d", r.Low, r.High)
	}

	return nil
}

func (r Range) String() string {
	return fmt.Sprintf("%d,%d", r.Low, r.High)
}

// ParseRange parses the "low,high" command-line form.
func ParseRange(field, value string) (Range, error) {
	lowStr, highStr, ok := strings.Cut(strings.TrimSpace(value), ",")
	if !ok {
		return Range{}, Invalid(field, "expected \"low,high\", got %q", value)
	}

	low, err := strconv.Atoi(strings.TrimSpace(lowStr))
	if err != nil {
		return Range{}, Invalid(field, "low bound %q is not an integer", lowStr)
	}

	high, err := strconv.Atoi(strings.TrimSpace(highStr))
	if err != nil {
		return Range{}, Invalid(field, "high bound %q is not an integer", highStr)
	}

	r := Range{Low: low, High: high}
	if err := r.Validate(field); err != nil {
		return Range{}, err
	}

	return r, nil
}

// Mangling holds the toggles and ranges of the final mangling pass. The zero
// value of every No* flag leaves the category enabled.
type Mangling struct {
	Disabled          bool
	NoBinaryMangling  bool
	BinaryPercent     int
	NoIntegerMangling bool
	NoIntegerBases    bool
	NoWhitespace      bool
	Whitespace        Range
	NoInsertChars     bool
	InsertChars       Range
	NoTerminators     bool
}

// OrderToken is one entry of an explicit mutator ordering.
type OrderToken struct {
	Kind     Kind
	LongName string
	Stub     string
}

func (t OrderToken) String() string {
	if t.Stub == "" {
		return string(t.Kind) + "/" + t.LongName
	}

	return string(t.Kind) + "/" + t.LongName + ":" + t.Stub
}

// ParseOrderToken parses "kind/longName" or "kind/longName:stub".
func ParseOrderToken(value string) (OrderToken, error) {
	value = strings.TrimSpace(value)

	kind, rest, ok := strings.Cut(value, "/")
	if !ok || kind == "" || rest == "" {
		return OrderToken{}, Invalid("order", "expected kind/name[:stub], got %q", value)
	}

	name, stub, _ := strings.Cut(rest, ":")
	if name == "" {
		return OrderToken{}, Invalid("order", "missing mutator name in %q", value)
	}

	if strings.HasSuffix(rest, ":") {
		return OrderToken{}, Invalid("order", "missing stub name in %q", value)
	}

	return OrderToken{Kind: Kind(strings.ToLower(kind)), LongName: strings.ToLower(name), Stub: strings.ToLower(stub)}, nil
}

// Request is everything a single generation needs. It is treated as a value:
// nothing in the engine writes to it or to the slices it holds.
type Request struct {
	Command       string
	PayloadSize   int
	ExecutionTime int
	// Layers of zero means the default for the mode.
	Layers    int
	Binaries  BinaryPreference
	FileWrite bool
	WriteDir  string
	// StrictRatings turns the size and time targets into ceilings no selected
	// mutator or stub may exceed.
	StrictRatings bool
	Mangling      Mangling
	Order         []OrderToken
}

const (
	// DefaultLayers is the automatic-mode layer count.
	DefaultLayers = 2
	// DefaultRating is the default size and time target.
	DefaultRating = 2
	// DefaultBinaryPercent is the default share of mangled binary characters.
	DefaultBinaryPercent = 50
	// DefaultWriteDir is where file-writing mutators put their files.
	DefaultWriteDir = "/tmp"
)

var (
	// DefaultWhitespace is the default random whitespace range.
	DefaultWhitespace = Range{Low: 0, High: 2}
	// DefaultInsertChars is the default inserted filler range.
	DefaultInsertChars = Range{Low: 1, High: 3}
)

// NewRequest returns a request for command with the CLI defaults.
func NewRequest(command string) Request {
	return Request{
		Command:       command,
		PayloadSize:   DefaultRating,
		ExecutionTime: DefaultRating,
		FileWrite:     true,
		WriteDir:      DefaultWriteDir,
		Mangling: Mangling{
			BinaryPercent: DefaultBinaryPercent,
			Whitespace:    DefaultWhitespace,
			InsertChars:   DefaultInsertChars,
		},
	}
}

// Manual reports whether the request carries an explicit ordering.
func (r Request) Manual() bool {
	return len(r.Order) > 0
}

// LayerCount resolves the effective number of layers.
func (r Request) LayerCount() int {
	if r.Layers > 0 {
		return r.Layers
	}

	if r.Manual() {
		return len(r.Order)
	}

	return DefaultLayers
}
