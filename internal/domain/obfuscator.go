package domain

import (
	"context"
	"log/slog"
	"strings"

	"shellmorph.dev/pkg/shellmorph/internal/adapter"
	"shellmorph.dev/pkg/shellmorph/internal/domain/mangle"
	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

// Obfuscator turns a request into a behaviorally equivalent payload.
type Obfuscator interface {
	Obfuscate(ctx context.Context, req m.Request, opts ...Option) (m.Result, error)
}

// Option tunes a single Obfuscate call.
type Option func(*options)

type options struct {
	seed   uint64
	seeded bool
}

// WithSeed makes the generation reproducible: the same request and seed
// always yield the same payload.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

type obfuscator struct {
	selector *Selector
	chain    *Chain
	checker  adapter.ShellSyntaxAdapter
}

// NewObfuscator builds the handler over a catalog. checker may be nil, in
// which case the command's syntax is not checked.
func NewObfuscator(catalog *Catalog, checker adapter.ShellSyntaxAdapter) Obfuscator {
	selector := NewSelector(catalog)

	return &obfuscator{
		selector: selector,
		chain:    NewChain(selector),
		checker:  checker,
	}
}

// Obfuscate validates req, runs the layer chain and the mangling pass. No
// partial result is ever returned.
func (o *obfuscator) Obfuscate(ctx context.Context, req m.Request, opts ...Option) (m.Result, error) {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := Validate(req); err != nil {
		return m.Result{}, err
	}

	if o.checker != nil {
		if err := o.checker.Check(ctx, req.Command); err != nil {
			if cerr := checkCancel(ctx); cerr != nil {
				return m.Result{}, cerr
			}

			return m.Result{}, m.Invalid("command", "%v", err)
		}
	}

	var steps []Step

	if req.Manual() {
		var err error
		if steps, err = o.selector.Resolve(req.Order, ConstraintsFor(req)); err != nil {
			return m.Result{}, err
		}
	}

	if !cfg.seeded {
		cfg.seed = randomSeed()
	}

	rng := newRand(cfg.seed)
	env := newGenEnv(rng, req.WriteDir)

	slog.Debug("Generating payload", "seed", cfg.seed, "manual", req.Manual(), "layers", req.LayerCount(),
		"size", req.PayloadSize, "time", req.ExecutionTime)

	var (
		payload m.Payload
		applied []m.Applied
		err     error
	)

	if req.Manual() {
		payload, applied, err = o.chain.Manual(ctx, env, req, steps)
	} else {
		payload, applied, err = o.chain.Automatic(ctx, env, req)
	}

	if err != nil {
		return m.Result{}, err
	}

	if err := checkCancel(ctx); err != nil {
		return m.Result{}, err
	}

	text := mangle.New(req.Mangling).Mangle(rng, payload)

	if err := checkCancel(ctx); err != nil {
		return m.Result{}, err
	}

	slog.Debug("Generated payload", "seed", cfg.seed, "mutators", len(applied), "length", len(text))

	return m.Result{Payload: text, Mutators: applied, Seed: cfg.seed}, nil
}

// Validate rejects malformed requests before any generation work starts.
func Validate(req m.Request) error {
	if strings.TrimSpace(req.Command) == "" {
		return m.Invalid("command", "command is empty")
	}

	if err := validateRating("payload-size", req.PayloadSize); err != nil {
		return err
	}

	if err := validateRating("execution-time", req.ExecutionTime); err != nil {
		return err
	}

	if req.Layers < 0 {
		return m.Invalid("layers", "must not be negative, got %d", req.Layers)
	}

	if req.Manual() && req.Layers > 0 && req.Layers != len(req.Order) {
		return m.Invalid("layers", "%d layers requested but the mutator order has %d entries", req.Layers, len(req.Order))
	}

	if err := validateBinaries(req.Binaries); err != nil {
		return err
	}

	if req.FileWrite && strings.TrimSpace(req.WriteDir) == "" {
		return m.Invalid("write-dir", "a directory is required when file writes are allowed")
	}

	return validateMangling(req.Mangling)
}

func validateRating(field string, v int) error {
	if v < m.MinRating || v > m.MaxRating {
		return m.Invalid(field, "must be between %d and %d, got %d", m.MinRating, m.MaxRating, v)
	}

	return nil
}

func validateBinaries(pref m.BinaryPreference) error {
	switch pref.Mode {
	case m.BinariesAny:
		if len(pref.Names) > 0 {
			return m.Invalid("binaries", "names given without include or exclude mode")
		}
	case m.BinariesInclude, m.BinariesExclude:
		for _, name := range pref.Names {
			if strings.TrimSpace(name) == "" || strings.ContainsAny(name, " \t/") {
				return m.Invalid("binaries", "bad binary name %q", name)
			}
		}
	default:
		return m.Invalid("binaries", "unknown mode %d", pref.Mode)
	}

	return nil
}

func validateMangling(opts m.Mangling) error {
	if opts.Disabled {
		return nil
	}

	if !opts.NoBinaryMangling && (opts.BinaryPercent < 1 || opts.BinaryPercent > 100) {
		return m.Invalid("binary-mangle-percent", "must be between 1 and 100, got %d", opts.BinaryPercent)
	}

	if !opts.NoWhitespace {
		if err := opts.Whitespace.Validate("whitespace-range"); err != nil {
			return err
		}
	}

	if !opts.NoInsertChars {
		if err := opts.InsertChars.Validate("insert-range"); err != nil {
			return err
		}
	}

	return nil
}
