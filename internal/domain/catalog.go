// Package domain contains the obfuscation engine and the CLI use cases built on it.
package domain

import (
	"fmt"
	"log/slog"

	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

// Discovery supplies the mutator descriptors a catalog is built from.
type Discovery interface {
	Discover() (m.Sequences, error)
}

// Catalog is the immutable registry of mutators, grouped by kind. Accessors
// hand out copies, so a Catalog can be shared by any number of concurrent
// generations.
type Catalog struct {
	byKind map[m.Kind][]m.Mutator
}

// NewCatalog discovers and validates the mutators once.
func NewCatalog(discovery Discovery) (*Catalog, error) {
	seqs, err := discovery.Discover()
	if err != nil {
		return nil, fmt.Errorf("%w: discover: %w", m.ErrInvalidCatalog, err)
	}

	c := &Catalog{byKind: make(map[m.Kind][]m.Mutator, len(m.Kinds))}

	for _, kind := range m.Kinds {
		seen := make(map[string]struct{})
		list := seqs.Of(kind)
		stored := make([]m.Mutator, 0, len(list))

		for _, mu := range list {
			if err := validateMutator(kind, mu); err != nil {
				return nil, err
			}

			if _, dup := seen[mu.LongName]; dup {
				return nil, fmt.Errorf("%w: duplicate mutator %s", m.ErrInvalidCatalog, mu.Token())
			}

			seen[mu.LongName] = struct{}{}
			stored = append(stored, mu.Clone())
		}

		c.byKind[kind] = stored
		slog.Debug("Loaded mutators", "kind", kind, "count", len(stored))
	}

	return c, nil
}

func validateMutator(kind m.Kind, mu m.Mutator) error {
	if mu.Kind != kind {
		return fmt.Errorf("%w: %s listed as %s", m.ErrInvalidCatalog, mu.Token(), kind)
	}

	if mu.LongName == "" {
		return fmt.Errorf("%w: %s mutator %q has no long name", m.ErrInvalidCatalog, kind, mu.Name)
	}

	if err := validateRatings(mu.Token(), mu.SizeRating, mu.TimeRating); err != nil {
		return err
	}

	if kind != m.KindCommand {
		if mu.Apply == nil {
			return fmt.Errorf("%w: %s has no transform", m.ErrInvalidCatalog, mu.Token())
		}

		if len(mu.Stubs) > 0 {
			return fmt.Errorf("%w: %s is not a command mutator but has stubs", m.ErrInvalidCatalog, mu.Token())
		}

		return nil
	}

	if len(mu.Stubs) == 0 {
		return fmt.Errorf("%w: %s has no stubs", m.ErrInvalidCatalog, mu.Token())
	}

	stubs := make(map[string]struct{}, len(mu.Stubs))

	for _, stub := range mu.Stubs {
		name := mu.Token() + ":" + stub.Name

		if _, dup := stubs[stub.Name]; dup || stub.Name == "" {
			return fmt.Errorf("%w: bad or duplicate stub name %q", m.ErrInvalidCatalog, name)
		}

		stubs[stub.Name] = struct{}{}

		if stub.Apply == nil {
			return fmt.Errorf("%w: %s has no transform", m.ErrInvalidCatalog, name)
		}

		if err := validateRatings(name, stub.SizeRating, stub.TimeRating); err != nil {
			return err
		}
	}

	return nil
}

func validateRatings(name string, size, time int) error {
	if size < m.MinRating || size > m.MaxRating || time < m.MinRating || time > m.MaxRating {
		return fmt.Errorf("%w: %s ratings %d/%d outside [%d,%d]", m.ErrInvalidCatalog, name, size, time, m.MinRating, m.MaxRating)
	}

	return nil
}

// Mutators returns a copy of the kind's mutators in discovery order.
func (c *Catalog) Mutators(kind m.Kind) []m.Mutator {
	list := c.byKind[kind]
	out := make([]m.Mutator, len(list))

	for i, mu := range list {
		out[i] = mu.Clone()
	}

	return out
}

// All returns every mutator, kinds in catalog order.
func (c *Catalog) All() []m.Mutator {
	var out []m.Mutator
	for _, kind := range m.Kinds {
		out = append(out, c.Mutators(kind)...)
	}

	return out
}

// Lookup finds a mutator by kind and long name.
func (c *Catalog) Lookup(kind m.Kind, longName string) (m.Mutator, bool) {
	for _, mu := range c.byKind[kind] {
		if mu.LongName == longName {
			return mu.Clone(), true
		}
	}

	return m.Mutator{}, false
}
