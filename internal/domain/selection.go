package domain

import (
	"math/rand/v2"

	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

// Target is the soft size/time goal automatic selection steers toward.
type Target struct {
	Size int
	Time int
}

// Score is 0 for a perfect match and -6 for the worst one.
func (t Target) Score(size, time int) int {
	return -(abs(size-t.Size) + abs(time-t.Time))
}

// Weight maps a score onto 1..49, favoring close matches quadratically.
func (t Target) Weight(size, time int) int {
	w := t.Score(size, time) + 7
	return w * w
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

// weightedIndex walks the weights in order and returns the index whose
// cumulative range contains a uniform draw, so ties go to the earlier entry.
func weightedIndex(rng *rand.Rand, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}

	r := rng.IntN(total)
	for i, w := range weights {
		if r < w {
			return i
		}

		r -= w
	}

	return len(weights) - 1
}

// Step is one planned mutator application.
type Step struct {
	Mutator m.Mutator
	// Stub is set for command mutators once a stub is chosen.
	Stub *m.Stub
	// Layer is 1-based.
	Layer int
}

// Applied converts the step into its usage record.
func (s Step) Applied() m.Applied {
	a := m.Applied{Kind: s.Mutator.Kind, LongName: s.Mutator.LongName, Layer: s.Layer}
	if s.Stub != nil {
		a.Stub = s.Stub.Name
	}

	return a
}

// Selector chooses mutators and stubs from a catalog.
type Selector struct {
	catalog *Catalog
}

// NewSelector binds a selector to a catalog.
func NewSelector(catalog *Catalog) *Selector {
	return &Selector{catalog: catalog}
}

// Pick chooses one eligible mutator of kind by weighted random choice and,
// for a command mutator, one of its eligible stubs the same way.
func (s *Selector) Pick(rng *rand.Rand, kind m.Kind, c Constraints, target Target) (Step, error) {
	candidates, err := c.Eligible(kind, s.catalog.Mutators(kind))
	if err != nil {
		return Step{}, err
	}

	weights := make([]int, len(candidates))
	for i, mu := range candidates {
		weights[i] = target.Weight(mu.SizeRating, mu.TimeRating)
	}

	step := Step{Mutator: candidates[weightedIndex(rng, weights)]}
	if kind == m.KindCommand {
		stub := pickStub(rng, step.Mutator.Stubs, target)
		step.Stub = &stub
	}

	return step, nil
}

func pickStub(rng *rand.Rand, stubs []m.Stub, target Target) m.Stub {
	weights := make([]int, len(stubs))
	for i, stub := range stubs {
		weights[i] = target.Weight(stub.SizeRating, stub.TimeRating)
	}

	return stubs[weightedIndex(rng, weights)]
}

// Resolve validates an explicit ordering against the catalog and the
// constraints. Every failure is a ValidationError naming the token. Command
// tokens without a stub keep every eligible stub; the chain chooses one at
// application time.
func (s *Selector) Resolve(order []m.OrderToken, c Constraints) ([]Step, error) {
	steps := make([]Step, 0, len(order))

	for i, tok := range order {
		if !tok.Kind.Valid() {
			return nil, m.Invalid("order", "%s: unknown mutator kind %q", tok, tok.Kind)
		}

		mu, ok := s.catalog.Lookup(tok.Kind, tok.LongName)
		if !ok {
			return nil, m.Invalid("order", "%s: unknown %s mutator %q", tok, tok.Kind, tok.LongName)
		}

		step := Step{Layer: i + 1}

		if tok.Kind != m.KindCommand {
			if tok.Stub != "" {
				return nil, m.Invalid("order", "%s: only command mutators have stubs", tok)
			}

			filtered, ok := c.Filter(mu)
			if !ok {
				return nil, m.Invalid("order", "%s: not allowed with %s", tok, c)
			}

			step.Mutator = filtered
			steps = append(steps, step)

			continue
		}

		if tok.Stub != "" {
			stub, ok := mu.Stub(tok.Stub)
			if !ok {
				return nil, m.Invalid("order", "%s: unknown stub %q", tok, tok.Stub)
			}

			if !c.AllowsStub(stub) {
				return nil, m.Invalid("order", "%s: stub not allowed with %s", tok, c)
			}

			mu.Stubs = []m.Stub{stub}
			step.Mutator = mu
			step.Stub = &mu.Stubs[0]
			steps = append(steps, step)

			continue
		}

		filtered, ok := c.Filter(mu)
		if !ok {
			return nil, m.Invalid("order", "%s: no stub allowed with %s", tok, c)
		}

		step.Mutator = filtered
		steps = append(steps, step)
	}

	return steps, nil
}
