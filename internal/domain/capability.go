package domain

import (
	"fmt"
	"slices"
	"strings"

	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

// Constraints are the hard filters a request puts on mutators and stubs.
type Constraints struct {
	Binaries  m.BinaryPreference
	FileWrite bool
	// MaxSize and MaxTime are rating ceilings; zero means none.
	MaxSize int
	MaxTime int
}

// ConstraintsFor derives the constraints of a request.
func ConstraintsFor(req m.Request) Constraints {
	c := Constraints{Binaries: req.Binaries, FileWrite: req.FileWrite}
	if req.StrictRatings {
		c.MaxSize, c.MaxTime = req.PayloadSize, req.ExecutionTime
	}

	return c
}

// AllowsRatings reports whether size and time stay under the ceilings.
func (c Constraints) AllowsRatings(size, time int) bool {
	return (c.MaxSize == 0 || size <= c.MaxSize) && (c.MaxTime == 0 || time <= c.MaxTime)
}

// AllowsBinaries reports whether a binary set passes the allow or deny list.
func (c Constraints) AllowsBinaries(binaries []string) bool {
	switch c.Binaries.Mode {
	case m.BinariesInclude:
		for _, b := range binaries {
			if !slices.Contains(c.Binaries.Names, b) {
				return false
			}
		}
	case m.BinariesExclude:
		for _, b := range binaries {
			if slices.Contains(c.Binaries.Names, b) {
				return false
			}
		}
	}

	return true
}

// AllowsStub reports whether a stub passes every constraint.
func (c Constraints) AllowsStub(stub m.Stub) bool {
	if stub.FileWrite && !c.FileWrite {
		return false
	}

	return c.AllowsRatings(stub.SizeRating, stub.TimeRating) && c.AllowsBinaries(stub.Binaries)
}

// Filter returns the mutator as it may be used under c. For command
// mutators the copy only keeps eligible stubs and ok is false when none
// remain; the mutator's own binaries and file-write flag are ignored.
func (c Constraints) Filter(mu m.Mutator) (m.Mutator, bool) {
	if mu.Kind != m.KindCommand {
		if mu.FileWrite && !c.FileWrite {
			return m.Mutator{}, false
		}

		return mu.Clone(), c.AllowsRatings(mu.SizeRating, mu.TimeRating) && c.AllowsBinaries(mu.Binaries)
	}

	out := mu.Clone()
	out.Stubs = out.Stubs[:0]

	for _, stub := range mu.Stubs {
		if c.AllowsStub(stub) {
			stub.Binaries = slices.Clone(stub.Binaries)
			out.Stubs = append(out.Stubs, stub)
		}
	}

	return out, len(out.Stubs) > 0
}

// Eligible filters a category's mutators, preserving order. An empty result
// is a SelectionExhaustedError naming the kind and the active constraints.
func (c Constraints) Eligible(kind m.Kind, list []m.Mutator) ([]m.Mutator, error) {
	out := make([]m.Mutator, 0, len(list))

	for _, mu := range list {
		if filtered, ok := c.Filter(mu); ok {
			out = append(out, filtered)
		}
	}

	if len(out) == 0 {
		return nil, &m.SelectionExhaustedError{Kind: kind, Constraint: c.String()}
	}

	return out, nil
}

// String describes the active constraints for error messages.
func (c Constraints) String() string {
	var parts []string

	switch c.Binaries.Mode {
	case m.BinariesInclude:
		parts = append(parts, "binaries limited to ["+strings.Join(c.Binaries.Names, ",")+"]")
	case m.BinariesExclude:
		parts = append(parts, "binaries ["+strings.Join(c.Binaries.Names, ",")+"] excluded")
	}

	if !c.FileWrite {
		parts = append(parts, "file writes disabled")
	}

	if c.MaxSize > 0 || c.MaxTime > 0 {
		parts = append(parts, fmt.Sprintf("ratings capped at size %d time %d", c.MaxSize, c.MaxTime))
	}

	if len(parts) == 0 {
		return "no candidates"
	}

	return strings.Join(parts, ", ")
}
