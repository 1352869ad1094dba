package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

func TestTarget_Weight(t *testing.T) {
	target := Target{Size: 2, Time: 3}

	assert.Equal(t, 0, target.Score(2, 3))
	assert.Equal(t, 49, target.Weight(2, 3))
	assert.Equal(t, -2, target.Score(1, 4))
	assert.Equal(t, 25, target.Weight(1, 4))

	worst := Target{Size: 4, Time: 4}
	assert.Equal(t, -6, worst.Score(1, 1))
	assert.Equal(t, 1, worst.Weight(1, 1))
}

func TestWeightedIndex(t *testing.T) {
	rng := newRand(1)

	t.Run("zero weights never chosen", func(t *testing.T) {
		for range 200 {
			assert.Equal(t, 1, weightedIndex(rng, []int{0, 3, 0}))
		}
	})

	t.Run("heavier entries win more often", func(t *testing.T) {
		counts := make([]int, 2)
		for range 5000 {
			counts[weightedIndex(rng, []int{49, 1})]++
		}

		assert.Greater(t, counts[0], counts[1]*10)
		assert.Positive(t, counts[1])
	})
}

func TestSelector_Pick(t *testing.T) {
	selector := NewSelector(testCatalog(t))
	c := Constraints{FileWrite: true}

	t.Run("command picks a stub", func(t *testing.T) {
		rng := newRand(3)

		for range 50 {
			step, err := selector.Pick(rng, m.KindCommand, c, Target{Size: 2, Time: 2})
			require.NoError(t, err)
			require.NotNil(t, step.Stub)

			_, ok := step.Mutator.Stub(step.Stub.Name)
			assert.True(t, ok)
		}
	})

	t.Run("other kinds have no stub", func(t *testing.T) {
		step, err := selector.Pick(newRand(3), m.KindString, c, Target{Size: 2, Time: 2})
		require.NoError(t, err)
		assert.Nil(t, step.Stub)
		assert.Equal(t, m.KindString, step.Mutator.Kind)
	})

	t.Run("same seed same choice", func(t *testing.T) {
		a, b := newRand(11), newRand(11)

		for range 20 {
			x, err := selector.Pick(a, m.KindToken, c, Target{Size: 1, Time: 4})
			require.NoError(t, err)

			y, err := selector.Pick(b, m.KindToken, c, Target{Size: 1, Time: 4})
			require.NoError(t, err)

			assert.Equal(t, x.Mutator.LongName, y.Mutator.LongName)
		}
	})

	t.Run("constraints respected", func(t *testing.T) {
		rng := newRand(5)
		deny := Constraints{Binaries: m.ExcludeBinaries("rev", "tr")}

		for range 100 {
			step, err := selector.Pick(rng, m.KindCommand, deny, Target{Size: 1, Time: 1})
			require.NoError(t, err)
			assert.Equal(t, "bash_loop", step.Stub.Name)
		}
	})

	t.Run("exhausted", func(t *testing.T) {
		_, err := selector.Pick(newRand(1), m.KindCompress,
			Constraints{Binaries: m.IncludeBinaries("gzip")}, Target{Size: 2, Time: 2})
		assert.ErrorIs(t, err, m.ErrSelectionExhausted)
	})
}

func TestSelector_Resolve(t *testing.T) {
	selector := NewSelector(testCatalog(t))
	all := Constraints{FileWrite: true}

	t.Run("valid order", func(t *testing.T) {
		order := []m.OrderToken{
			{Kind: m.KindToken, LongName: "char_split"},
			{Kind: m.KindCommand, LongName: "reverse", Stub: "bash_loop"},
			{Kind: m.KindCommand, LongName: "case_swap"},
			{Kind: m.KindEncode, LongName: "base64"},
		}

		steps, err := selector.Resolve(order, all)
		require.NoError(t, err)
		require.Len(t, steps, 4)

		for i, step := range steps {
			assert.Equal(t, i+1, step.Layer)
			assert.Equal(t, order[i].LongName, step.Mutator.LongName)
		}

		require.NotNil(t, steps[1].Stub)
		assert.Equal(t, "bash_loop", steps[1].Stub.Name)
		assert.Nil(t, steps[2].Stub)
		assert.Len(t, steps[2].Mutator.Stubs, 2)
	})

	tests := []struct {
		name  string
		token m.OrderToken
		c     Constraints
	}{
		{name: "unknown kind", token: m.OrderToken{Kind: "obfuscator", LongName: "reverse"}, c: all},
		{name: "unknown mutator", token: m.OrderToken{Kind: m.KindString, LongName: "nope"}, c: all},
		{name: "stub on non-command", token: m.OrderToken{Kind: m.KindString, LongName: "forcode", Stub: "x"}, c: all},
		{name: "unknown stub", token: m.OrderToken{Kind: m.KindCommand, LongName: "reverse", Stub: "nope"}, c: all},
		{name: "stub not allowed", token: m.OrderToken{Kind: m.KindCommand, LongName: "reverse", Stub: "rev_file"}, c: Constraints{}},
		{name: "mutator not allowed", token: m.OrderToken{Kind: m.KindString, LongName: "file_glob"}, c: Constraints{}},
		{
			name:  "no stub allowed",
			token: m.OrderToken{Kind: m.KindCommand, LongName: "reverse"},
			c:     Constraints{Binaries: m.IncludeBinaries("xxd"), MaxSize: 4, MaxTime: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := []m.OrderToken{{Kind: m.KindToken, LongName: "ansi_c_quote"}, tt.token}

			_, err := selector.Resolve(order, tt.c)
			require.ErrorIs(t, err, m.ErrValidation)

			var verr *m.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "order", verr.Field)
			assert.Contains(t, verr.Reason, tt.token.String())
		})
	}
}
