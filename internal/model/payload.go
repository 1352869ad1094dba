package model

// MarkKind tells the mangling pass what a marked span holds.
type MarkKind int

const (
	// MarkBinary is a command word naming a program or builtin.
	MarkBinary MarkKind = iota
	// MarkInt is an integer literal where an arithmetic expansion is valid.
	MarkInt
	// MarkSpace is a required separator between two words.
	MarkSpace
	// MarkPad is optional whitespace, empty when unmangled.
	MarkPad
	// MarkTerm terminates a top-level statement of a wrapper.
	MarkTerm
)

func (k MarkKind) String() string {
	switch k {
	case MarkBinary:
		return "binary"
	case MarkInt:
		return "int"
	case MarkSpace:
		return "space"
	case MarkPad:
		return "pad"
	case MarkTerm:
		return "term"
	default:
		return "unknown"
	}
}

// Mark is a span [Start, End) of a payload the mangling pass may rewrite.
type Mark struct {
	Kind  MarkKind
	Start int
	End   int
	// Value is the binary name for MarkBinary and the decimal literal for MarkInt.
	Value string
}

// Payload is rendered shell text plus its mangling points, ordered by Start.
type Payload struct {
	Text  string
	Marks []Mark
}
