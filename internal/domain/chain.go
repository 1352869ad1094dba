package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

// layerKinds is the automatic order of categories inside one layer.
var layerKinds = []m.Kind{m.KindToken, m.KindString, m.KindCommand}

const (
	encodeMinTime   = 3
	compressMinTime = 4
)

// Chain nests mutator applications, each wrapping the previous output.
type Chain struct {
	selector *Selector
}

// NewChain returns a chain selecting from selector.
func NewChain(selector *Selector) *Chain {
	return &Chain{selector: selector}
}

// Automatic runs the weighted plan: layers of token, string and command
// mutators, then an encoder and a compressor when the time target allows.
func (ch *Chain) Automatic(ctx context.Context, env *genEnv, req m.Request) (m.Payload, []m.Applied, error) {
	c := ConstraintsFor(req)
	target := Target{Size: req.PayloadSize, Time: req.ExecutionTime}
	current := m.Payload{Text: req.Command}
	layers := req.LayerCount()

	var applied []m.Applied

	for layer := 1; layer <= layers; layer++ {
		for _, kind := range layerKinds {
			if err := checkCancel(ctx); err != nil {
				return m.Payload{}, nil, err
			}

			step, err := ch.selector.Pick(env.Rand(), kind, c, target)
			if err != nil {
				return m.Payload{}, nil, fmt.Errorf("layer %d: %w", layer, err)
			}

			step.Layer = layer

			if current, err = ch.apply(env, step, current.Text); err != nil {
				return m.Payload{}, nil, err
			}

			applied = append(applied, step.Applied())
		}
	}

	optional := []struct {
		kind    m.Kind
		enabled bool
	}{
		{m.KindEncode, req.ExecutionTime >= encodeMinTime},
		{m.KindCompress, req.ExecutionTime >= compressMinTime},
	}

	for _, stage := range optional {
		if !stage.enabled {
			continue
		}

		if err := checkCancel(ctx); err != nil {
			return m.Payload{}, nil, err
		}

		step, err := ch.selector.Pick(env.Rand(), stage.kind, c, target)
		if errors.Is(err, m.ErrSelectionExhausted) {
			slog.Debug("Skipping optional stage", "kind", stage.kind, "error", err)
			continue
		}

		if err != nil {
			return m.Payload{}, nil, err
		}

		step.Layer = layers

		if current, err = ch.apply(env, step, current.Text); err != nil {
			return m.Payload{}, nil, err
		}

		applied = append(applied, step.Applied())
	}

	return current, applied, nil
}

// Manual applies resolved steps in order, one per layer.
func (ch *Chain) Manual(ctx context.Context, env *genEnv, req m.Request, steps []Step) (m.Payload, []m.Applied, error) {
	target := Target{Size: req.PayloadSize, Time: req.ExecutionTime}
	current := m.Payload{Text: req.Command}
	applied := make([]m.Applied, 0, len(steps))

	for _, step := range steps {
		if err := checkCancel(ctx); err != nil {
			return m.Payload{}, nil, err
		}

		if step.Mutator.Kind == m.KindCommand && step.Stub == nil {
			stub := pickStub(env.Rand(), step.Mutator.Stubs, target)
			step.Stub = &stub
		}

		var err error
		if current, err = ch.apply(env, step, current.Text); err != nil {
			return m.Payload{}, nil, err
		}

		applied = append(applied, step.Applied())
	}

	return current, applied, nil
}

func (ch *Chain) apply(env *genEnv, step Step, text string) (m.Payload, error) {
	transform := step.Mutator.Apply
	if step.Stub != nil {
		transform = step.Stub.Apply
	}

	out, err := transform(env, text)
	if err != nil {
		return m.Payload{}, fmt.Errorf("apply %s: %w", step.Applied().Token(), err)
	}

	slog.Debug("Applied mutator", "mutator", step.Applied().Token(), "layer", step.Layer, "length", len(out.Text))

	return out, nil
}

func checkCancel(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", m.ErrCancelled, err)
	}

	return nil
}
