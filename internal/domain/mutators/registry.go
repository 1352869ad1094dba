package mutators

import (
	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

// Registry is the compiled-in discovery source. Adding a mutator means adding
// its descriptor to the right list below; list order is catalog order.
type Registry struct{}

// Discover returns the registered mutators grouped by kind.
func (Registry) Discover() (m.Sequences, error) {
	return m.Sequences{
		Command:  []m.Mutator{Reverse, CaseSwap},
		String:   []m.Mutator{ArrayJoin, ForCode, HexXxd, FileGlob},
		Token:    []m.Mutator{AnsiCQuote, CharSplit},
		Encode:   []m.Mutator{Base64, RotN, PrintfEscape},
		Compress: []m.Mutator{Gzip, Zstd},
	}, nil
}
