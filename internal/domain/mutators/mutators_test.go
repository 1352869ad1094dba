package mutators

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"math/rand/v2"
	"os/exec"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shellmorph.dev/pkg/shellmorph/internal/adapter"
	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

type testEnv struct {
	rng  *rand.Rand
	dir  string
	next int
}

func newTestEnv(seed uint64, dir string) *testEnv {
	return &testEnv{rng: rand.New(rand.NewPCG(seed, seed+1)), dir: dir}
}

func (e *testEnv) Rand() *rand.Rand { return e.rng }

func (e *testEnv) VarName() string {
	e.next++
	return fmt.Sprintf("v%06d", e.next)
}

func (e *testEnv) WriteDir() string { return e.dir }

// transforms lists every transform of the registry, stubs included.
func transforms(t *testing.T) map[string]m.Transform {
	t.Helper()

	seqs, err := Registry{}.Discover()
	require.NoError(t, err)

	out := make(map[string]m.Transform)

	for _, kind := range m.Kinds {
		for _, mu := range seqs.Of(kind) {
			if kind != m.KindCommand {
				out[mu.Token()] = mu.Apply
				continue
			}

			for _, stub := range mu.Stubs {
				out[mu.Token()+":"+stub.Name] = stub.Apply
			}
		}
	}

	return out
}

var corpus = []string{
	"echo hello world",
	"printf '%s\\n' c a b | sort",
	"for i in 1 2 3; do echo \"n=$i\"; done",
	"if [ -d / ]; then echo yes; else echo no; fi",
	"x='it'\\''s'; echo \"$x\" >&2; exit 3",
	"echo a\necho b",
	"printf '%s\\n' 'héllo 日本'",
	"-x 2>/dev/null; echo $?",
	"nosuchcmd_xyz; echo after",
}

func TestRegistry_Discover(t *testing.T) {
	seqs, err := Registry{}.Discover()
	require.NoError(t, err)

	for _, kind := range m.Kinds {
		list := seqs.Of(kind)
		assert.NotEmpty(t, list, kind)

		for _, mu := range list {
			assert.Equal(t, kind, mu.Kind, mu.LongName)
			assert.NotEmpty(t, mu.Name)
			assert.NotEmpty(t, mu.Description)

			if kind == m.KindCommand {
				assert.Nil(t, mu.Apply, mu.LongName)
				assert.NotEmpty(t, mu.Stubs, mu.LongName)
			} else {
				assert.NotNil(t, mu.Apply, mu.LongName)
				assert.Empty(t, mu.Stubs, mu.LongName)
			}
		}
	}

	// Catalog order is discovery order.
	assert.Equal(t, "reverse", seqs.Command[0].LongName)
	assert.Equal(t, "case_swap", seqs.Command[1].LongName)
}

func TestTransforms_Marks(t *testing.T) {
	for name, transform := range transforms(t) {
		t.Run(name, func(t *testing.T) {
			for seed, cmd := range corpus {
				p, err := transform(newTestEnv(uint64(seed), "/tmp"), cmd)
				require.NoError(t, err)
				require.NotEmpty(t, p.Text)
				assertMarks(t, p)
			}
		})
	}
}

func assertMarks(t *testing.T, p m.Payload) {
	t.Helper()

	prev := 0

	for _, mk := range p.Marks {
		require.GreaterOrEqual(t, mk.Start, prev, "marks overlap in %q", p.Text)
		require.LessOrEqual(t, mk.Start, mk.End)
		require.LessOrEqual(t, mk.End, len(p.Text))

		span := p.Text[mk.Start:mk.End]

		switch mk.Kind {
		case m.MarkBinary:
			assert.Equal(t, mk.Value, span)
			assert.NotEmpty(t, span)
		case m.MarkInt:
			assert.Equal(t, mk.Value, span)
			_, err := strconv.Atoi(span)
			assert.NoError(t, err)
		case m.MarkSpace:
			assert.Equal(t, " ", span)
		case m.MarkPad:
			assert.Empty(t, span)
		case m.MarkTerm:
			assert.Equal(t, ";", span)
		default:
			t.Fatalf("unexpected mark kind %v", mk.Kind)
		}

		prev = mk.End
	}
}

func TestTransforms_Deterministic(t *testing.T) {
	for name, transform := range transforms(t) {
		t.Run(name, func(t *testing.T) {
			a, err := transform(newTestEnv(7, "/tmp"), corpus[2])
			require.NoError(t, err)

			b, err := transform(newTestEnv(7, "/tmp"), corpus[2])
			require.NoError(t, err)

			assert.Equal(t, a, b)
		})
	}
}

func TestFileWriters_UseWriteDir(t *testing.T) {
	dir := "/var/tmp/shellmorph-test"

	p, err := fileGlob(newTestEnv(1, dir), "echo hi")
	require.NoError(t, err)
	assert.Contains(t, p.Text, "'"+dir+"/.v000001")

	p, err = reverseFile(newTestEnv(1, dir), "echo hi")
	require.NoError(t, err)
	assert.Contains(t, p.Text, "'"+dir+"/.v000001'")
}

func TestHelpers(t *testing.T) {
	t.Run("singleQuote", func(t *testing.T) {
		assert.Equal(t, `'a b'`, singleQuote("a b"))
		assert.Equal(t, `'it'\''s'`, singleQuote("it's"))
	})

	t.Run("doubleQuote", func(t *testing.T) {
		assert.Equal(t, `"\$HOME \"x\" \\ \`+"`"+`"`, doubleQuote("$HOME \"x\" \\ `"))
	})

	t.Run("reverseLines keeps line order", func(t *testing.T) {
		assert.Equal(t, "cba\nfed", reverseLines("abc\ndef"))
	})

	t.Run("swapASCIICase", func(t *testing.T) {
		assert.Equal(t, "ECHO Hi é", swapASCIICase("echo hI é"))
	})

	t.Run("rotText is undone by rotate", func(t *testing.T) {
		for n := 1; n < 26; n++ {
			rotated := rotText("Hello, World", n)
			from := upperASCII + lowerASCII
			to := rotate(upperASCII, 26-n) + rotate(lowerASCII, 26-n)

			var b strings.Builder
			for i := 0; i < len(rotated); i++ {
				if idx := strings.IndexByte(from, rotated[i]); idx >= 0 {
					b.WriteByte(to[idx])
				} else {
					b.WriteByte(rotated[i])
				}
			}

			assert.Equal(t, "Hello, World", b.String(), "n=%d", n)
		}
	})

	t.Run("chunk covers the input", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(3, 4))
		parts := chunk(rng, "abcdefghijklmnopqrstuvwxyz", 5)

		assert.Equal(t, "abcdefghijklmnopqrstuvwxyz", strings.Join(parts, ""))

		for _, p := range parts {
			assert.LessOrEqual(t, len(p), 5)
			assert.NotEmpty(t, p)
		}
	})

	t.Run("asciiOnly", func(t *testing.T) {
		assert.Equal(t, "echo 'hi'", asciiOnly("echo 'hi'"))
		assert.Equal(t, `eval -- $'echo \'h\xc3\xa9\' \\n'`, asciiOnly(`echo 'hé' \n`))
		assert.Equal(t, `eval -- $'a\xff'`, asciiOnly("a\xff"))
		assert.True(t, isASCII(asciiOnly("日本")))
	})
}

func TestCompressors_RoundTrip(t *testing.T) {
	const cmd = "for i in 1 2 3; do echo \"line $i\"; done"

	t.Run("gzip", func(t *testing.T) {
		p, err := gzipCompress(newTestEnv(1, "/tmp"), cmd)
		require.NoError(t, err)
		assert.Contains(t, p.Text, "gzip -dc")

		zr, err := gzip.NewReader(bytes.NewReader(hereStringData(t, p.Text)))
		require.NoError(t, err)

		out, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, cmd, string(out))
	})

	t.Run("zstd", func(t *testing.T) {
		p, err := zstdCompress(newTestEnv(1, "/tmp"), cmd)
		require.NoError(t, err)
		assert.Contains(t, p.Text, "zstd -dcq")

		dec, err := zstd.NewReader(nil)
		require.NoError(t, err)
		defer dec.Close()

		out, err := dec.DecodeAll(hereStringData(t, p.Text), nil)
		require.NoError(t, err)
		assert.Equal(t, cmd, string(out))
	})
}

func TestBase64_Encodes(t *testing.T) {
	p, err := base64Encode(newTestEnv(1, "/tmp"), "echo hi")
	require.NoError(t, err)

	assert.Equal(t, []byte("echo hi"), hereStringData(t, p.Text))
}

// hereStringData decodes the base64 word of a <<<'...' here-string.
func hereStringData(t *testing.T, text string) []byte {
	t.Helper()

	_, rest, ok := strings.Cut(text, "<<<'")
	require.True(t, ok, text)

	word, _, ok := strings.Cut(rest, "'")
	require.True(t, ok, text)

	data, err := base64.StdEncoding.DecodeString(word)
	require.NoError(t, err)

	return data
}

// TestTransforms_Bash runs every transform under bash and compares stdout,
// stderr and the exit code with the original command. The C locale is the
// strictest one for non-ASCII input.
func TestTransforms_Bash(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping bash equivalence in short mode")
	}

	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not installed")
	}

	t.Setenv("LC_ALL", "C")

	seqs, err := Registry{}.Discover()
	require.NoError(t, err)

	binaries := make(map[string][]string)

	for _, kind := range m.Kinds {
		for _, mu := range seqs.Of(kind) {
			if kind != m.KindCommand {
				binaries[mu.Token()] = mu.Binaries
				continue
			}

			for _, stub := range mu.Stubs {
				binaries[mu.Token()+":"+stub.Name] = stub.Binaries
			}
		}
	}

	runner := adapter.NewLocalShellRunnerAdapter()
	ctx := context.Background()

	for name, transform := range transforms(t) {
		t.Run(name, func(t *testing.T) {
			for _, bin := range binaries[name] {
				if _, err := exec.LookPath(bin); err != nil {
					t.Skipf("%s not installed", bin)
				}
			}

			for seed, cmd := range corpus {
				want, err := runner.Run(ctx, cmd)
				require.NoError(t, err)

				p, err := transform(newTestEnv(uint64(seed), t.TempDir()), cmd)
				require.NoError(t, err)

				got, err := runner.Run(ctx, p.Text)
				require.NoError(t, err)
				assert.Equal(t, want, got, "payload %q", p.Text)
			}
		})
	}
}
