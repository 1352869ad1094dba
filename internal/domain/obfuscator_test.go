package domain_test

import (
	"context"
	"errors"
	"os/exec"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shellmorph.dev/pkg/shellmorph/internal/adapter"
	adaptermocks "shellmorph.dev/pkg/shellmorph/internal/adapter/mocks"
	"shellmorph.dev/pkg/shellmorph/internal/domain"
	"shellmorph.dev/pkg/shellmorph/internal/domain/mutators"
	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

func newCatalog(t *testing.T) *domain.Catalog {
	t.Helper()

	catalog, err := domain.NewCatalog(mutators.Registry{})
	require.NoError(t, err)

	return catalog
}

func newObfuscator(t *testing.T) domain.Obfuscator {
	t.Helper()

	return domain.NewObfuscator(newCatalog(t), adapter.NewLocalShellSyntaxAdapter())
}

func TestObfuscate_SingleLayerScenario(t *testing.T) {
	req := m.NewRequest("echo hi")
	req.PayloadSize, req.ExecutionTime, req.Layers = 1, 1, 1
	req.Mangling.Disabled = true

	result, err := newObfuscator(t).Obfuscate(context.Background(), req, domain.WithSeed(1))
	require.NoError(t, err)
	require.Len(t, result.Mutators, 3)

	assert.Equal(t, m.KindToken, result.Mutators[0].Kind)
	assert.Equal(t, m.KindString, result.Mutators[1].Kind)
	assert.Equal(t, m.KindCommand, result.Mutators[2].Kind)
	assert.NotEmpty(t, result.Mutators[2].Stub)
	assert.Equal(t, uint64(1), result.Seed)
	assert.NotEqual(t, req.Command, result.Payload)
}

func TestObfuscate_Seeded(t *testing.T) {
	obf := newObfuscator(t)
	req := m.NewRequest("for i in 1 2 3; do echo $i; done")

	a, err := obf.Obfuscate(context.Background(), req, domain.WithSeed(99))
	require.NoError(t, err)

	b, err := obf.Obfuscate(context.Background(), req, domain.WithSeed(99))
	require.NoError(t, err)

	assert.Equal(t, a, b)

	c, err := obf.Obfuscate(context.Background(), req, domain.WithSeed(100))
	require.NoError(t, err)
	assert.NotEqual(t, a.Payload, c.Payload)
}

func TestObfuscate_Unseeded(t *testing.T) {
	obf := newObfuscator(t)
	req := m.NewRequest("echo hi")

	a, err := obf.Obfuscate(context.Background(), req)
	require.NoError(t, err)

	b, err := obf.Obfuscate(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, a.Seed, b.Seed)
	assert.NotEqual(t, a.Payload, b.Payload)
}

func TestObfuscate_Manual(t *testing.T) {
	order := []m.OrderToken{
		{Kind: m.KindToken, LongName: "char_split"},
		{Kind: m.KindString, LongName: "array_join"},
		{Kind: m.KindCommand, LongName: "reverse", Stub: "bash_loop"},
		{Kind: m.KindEncode, LongName: "rotn"},
	}

	req := m.NewRequest("echo hi")
	req.Order = order

	result, err := newObfuscator(t).Obfuscate(context.Background(), req, domain.WithSeed(4))
	require.NoError(t, err)
	require.Len(t, result.Mutators, len(order))

	for i, applied := range result.Mutators {
		assert.Equal(t, order[i].String(), applied.Token())
	}

	t.Run("layer count must match", func(t *testing.T) {
		req.Layers = 3

		_, err := newObfuscator(t).Obfuscate(context.Background(), req)
		require.ErrorIs(t, err, m.ErrValidation)

		var verr *m.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "layers", verr.Field)
	})

	t.Run("unknown token rejected before generation", func(t *testing.T) {
		bad := m.NewRequest("echo hi")
		bad.Order = []m.OrderToken{{Kind: m.KindString, LongName: "nope"}}

		_, err := newObfuscator(t).Obfuscate(context.Background(), bad)
		assert.ErrorIs(t, err, m.ErrValidation)
	})
}

func TestObfuscate_Constraints(t *testing.T) {
	obf := newObfuscator(t)

	t.Run("file writes disabled", func(t *testing.T) {
		req := m.NewRequest("echo hi")
		req.FileWrite = false
		req.Layers = 3
		req.PayloadSize, req.ExecutionTime = 2, 3

		for seed := range uint64(40) {
			result, err := obf.Obfuscate(context.Background(), req, domain.WithSeed(seed))
			require.NoError(t, err)

			for _, a := range result.Mutators {
				assert.NotEqual(t, "file_glob", a.LongName)
				assert.NotEqual(t, "rev_file", a.Stub)
			}
		}
	})

	t.Run("deny set", func(t *testing.T) {
		req := m.NewRequest("echo hi")
		req.Binaries = m.ExcludeBinaries("rev", "tr", "xxd")
		req.ExecutionTime = 3

		catalog := newCatalog(t)

		for seed := range uint64(40) {
			result, err := obf.Obfuscate(context.Background(), req, domain.WithSeed(seed))
			require.NoError(t, err)

			for _, a := range result.Mutators {
				assert.NotContains(t, []string{"hex_xxd", "rotn"}, a.LongName)

				if a.Kind == m.KindCommand {
					mu, ok := catalog.Lookup(a.Kind, a.LongName)
					require.True(t, ok)

					stub, ok := mu.Stub(a.Stub)
					require.True(t, ok)
					assert.False(t, slices.Contains(stub.Binaries, "rev"))
					assert.False(t, slices.Contains(stub.Binaries, "tr"))
				}
			}
		}
	})

	t.Run("strict ratings", func(t *testing.T) {
		req := m.NewRequest("echo hi")
		req.StrictRatings = true
		req.PayloadSize, req.ExecutionTime = 3, 1

		result, err := obf.Obfuscate(context.Background(), req, domain.WithSeed(1))
		require.NoError(t, err)

		catalog := newCatalog(t)

		for _, a := range result.Mutators {
			mu, ok := catalog.Lookup(a.Kind, a.LongName)
			require.True(t, ok)

			size, time := mu.SizeRating, mu.TimeRating
			if a.Stub != "" {
				stub, _ := mu.Stub(a.Stub)
				size, time = stub.SizeRating, stub.TimeRating
			}

			assert.LessOrEqual(t, size, 3)
			assert.LessOrEqual(t, time, 1)
		}
	})

	t.Run("strict ratings exhausted", func(t *testing.T) {
		req := m.NewRequest("echo hi")
		req.StrictRatings = true
		req.PayloadSize, req.ExecutionTime = 1, 1

		_, err := obf.Obfuscate(context.Background(), req, domain.WithSeed(1))
		assert.ErrorIs(t, err, m.ErrSelectionExhausted)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*m.Request)
		field   string
		wantErr bool
	}{
		{name: "defaults", mutate: func(*m.Request) {}},
		{name: "empty command", mutate: func(r *m.Request) { r.Command = "" }, field: "command", wantErr: true},
		{name: "blank command", mutate: func(r *m.Request) { r.Command = " \n\t" }, field: "command", wantErr: true},
		{name: "size too small", mutate: func(r *m.Request) { r.PayloadSize = 0 }, field: "payload-size", wantErr: true},
		{name: "time too large", mutate: func(r *m.Request) { r.ExecutionTime = 5 }, field: "execution-time", wantErr: true},
		{name: "negative layers", mutate: func(r *m.Request) { r.Layers = -1 }, field: "layers", wantErr: true},
		{
			name:    "names without mode",
			mutate:  func(r *m.Request) { r.Binaries = m.BinaryPreference{Names: []string{"rev"}} },
			field:   "binaries",
			wantErr: true,
		},
		{
			name:    "path as binary name",
			mutate:  func(r *m.Request) { r.Binaries = m.IncludeBinaries("/bin/rev") },
			field:   "binaries",
			wantErr: true,
		},
		{name: "missing write dir", mutate: func(r *m.Request) { r.WriteDir = "" }, field: "write-dir", wantErr: true},
		{name: "write dir not needed", mutate: func(r *m.Request) { r.WriteDir, r.FileWrite = "", false }},
		{
			name:    "binary percent zero",
			mutate:  func(r *m.Request) { r.Mangling.BinaryPercent = 0 },
			field:   "binary-mangle-percent",
			wantErr: true,
		},
		{
			name:   "binary percent ignored when disabled",
			mutate: func(r *m.Request) { r.Mangling.BinaryPercent, r.Mangling.NoBinaryMangling = 0, true },
		},
		{
			name:    "inverted whitespace range",
			mutate:  func(r *m.Request) { r.Mangling.Whitespace = m.Range{Low: 3, High: 2} },
			field:   "whitespace-range",
			wantErr: true,
		},
		{
			name:    "zero insert range",
			mutate:  func(r *m.Request) { r.Mangling.InsertChars = m.Range{} },
			field:   "insert-range",
			wantErr: true,
		},
		{name: "wide range", mutate: func(r *m.Request) { r.Mangling.Whitespace = m.Range{Low: 2, High: 5} }},
		{
			name: "ranges ignored when mangling is off",
			mutate: func(r *m.Request) {
				r.Mangling.Disabled = true
				r.Mangling.Whitespace = m.Range{Low: 3, High: 2}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := m.NewRequest("echo hi")
			tt.mutate(&req)

			err := domain.Validate(req)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var verr *m.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestObfuscate_Errors(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		_, err := newObfuscator(t).Obfuscate(context.Background(), m.NewRequest("echo 'hi"))
		require.ErrorIs(t, err, m.ErrValidation)

		var verr *m.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "command", verr.Field)
	})

	t.Run("checker is consulted", func(t *testing.T) {
		checker := adaptermocks.NewMockShellSyntaxAdapter(t)
		checker.EXPECT().Check(mock.Anything, "echo hi").Return(errors.New("line 1: bad")).Once()

		_, err := domain.NewObfuscator(newCatalog(t), checker).Obfuscate(context.Background(), m.NewRequest("echo hi"))
		require.ErrorIs(t, err, m.ErrValidation)
		assert.Contains(t, err.Error(), "line 1: bad")
	})

	t.Run("no checker", func(t *testing.T) {
		_, err := domain.NewObfuscator(newCatalog(t), nil).Obfuscate(context.Background(), m.NewRequest("echo 'hi"))
		assert.NoError(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := domain.NewObfuscator(newCatalog(t), nil).Obfuscate(ctx, m.NewRequest("echo hi"))
		assert.ErrorIs(t, err, m.ErrCancelled)
	})

	t.Run("cancelled during syntax check", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newObfuscator(t).Obfuscate(ctx, m.NewRequest("echo hi"))
		assert.ErrorIs(t, err, m.ErrCancelled)
		assert.NotErrorIs(t, err, m.ErrValidation)
	})
}

var equivalenceCorpus = map[string]string{
	"simple":       "echo hello world",
	"pipeline":     "printf '%s\\n' b c a | sort | tr a-z A-Z",
	"loop":         "for i in 1 2 3; do printf 'n=%d\\n' \"$i\"; done",
	"conditional":  "if [ \"$(echo x)\" = x ]; then echo yes >&2; exit 4; else echo no; fi",
	"functions":    "f() { echo \"arg=$1\"; }\nf one\nf 'two words'",
	"non-ascii":    "printf '%s\\n' 'héllo 日本'",
	"leading dash": "-x 2>/dev/null; echo $?",
	"diagnostic":   "nosuchcmd_xyz; echo after",
}

// lineNumbered lists corpus entries whose stderr carries bash line numbers.
// Newline terminators and inserted comment lines move those numbers, so
// these entries keep every statement of the payload on one line.
var lineNumbered = map[string]bool{"diagnostic": true}

// TestObfuscate_Bash checks that generated payloads behave like the original
// under bash in the C locale, using only the binaries installed on the machine.
func TestObfuscate_Bash(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping bash equivalence in short mode")
	}

	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not installed")
	}

	t.Setenv("LC_ALL", "C")

	catalog := newCatalog(t)

	var installed []string

	for _, mu := range catalog.All() {
		bins := slices.Clone(mu.Binaries)
		for _, stub := range mu.Stubs {
			bins = append(bins, stub.Binaries...)
		}

		for _, bin := range bins {
			if _, err := exec.LookPath(bin); err == nil && !slices.Contains(installed, bin) {
				installed = append(installed, bin)
			}
		}
	}

	obf := domain.NewObfuscator(catalog, adapter.NewLocalShellSyntaxAdapter())
	runner := adapter.NewLocalShellRunnerAdapter()
	ctx := context.Background()

	for name, cmd := range equivalenceCorpus {
		t.Run(name, func(t *testing.T) {
			if strings.Contains(cmd, "tr ") && !slices.Contains(installed, "tr") {
				t.Skip("tr not installed")
			}

			want, err := runner.Run(ctx, cmd)
			require.NoError(t, err)

			for seed := range uint64(12) {
				req := m.NewRequest(cmd)
				req.Binaries = m.IncludeBinaries(installed...)
				req.WriteDir = t.TempDir()
				req.PayloadSize = 1 + int(seed%4)
				req.ExecutionTime = 1 + int(seed/3%4)
				req.Mangling.NoTerminators = lineNumbered[name]
				req.Mangling.NoInsertChars = lineNumbered[name]

				result, err := obf.Obfuscate(ctx, req, domain.WithSeed(seed))
				require.NoError(t, err)

				got, err := runner.Run(ctx, result.Payload)
				require.NoError(t, err)
				assert.Equal(t, want, got, "seed %d payload %q", seed, result.Payload)
			}
		})
	}
}
