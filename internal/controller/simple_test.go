package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

func newTestUI() (*SimpleUI, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{}
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	return NewSimpleUI(cmd), out, errOut
}

func testCatalog() []m.Mutator {
	return []m.Mutator{
		{
			Kind: m.KindCommand, Name: "Reverse", LongName: "reverse", Description: "reverses",
			SizeRating: 1, TimeRating: 1,
			Stubs: []m.Stub{
				{Name: "rev_herestring", SizeRating: 1, TimeRating: 1, Binaries: []string{"rev"}},
				{Name: "rev_file", SizeRating: 2, TimeRating: 2, Binaries: []string{"rev"}, FileWrite: true},
			},
		},
		{Kind: m.KindEncode, Name: "Base64", LongName: "base64", Description: "encodes", SizeRating: 2, TimeRating: 2, Binaries: []string{"base64"}},
	}
}

func TestParseListFormat(t *testing.T) {
	tests := []struct {
		value   string
		want    ListFormat
		wantErr bool
	}{
		{value: "", want: FormatTable},
		{value: "table", want: FormatTable},
		{value: "YAML", want: FormatYAML},
		{value: "json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseListFormat(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, m.ErrValidation)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSimpleUI_DisplayPayload(t *testing.T) {
	ui, out, errOut := newTestUI()

	require.NoError(t, ui.DisplayPayload(context.Background(), m.Result{Payload: "eval \"$(rev<<<'ih ohce')\""}))
	assert.Equal(t, "eval \"$(rev<<<'ih ohce')\"\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestSimpleUI_DisplayUsage(t *testing.T) {
	ui, out, errOut := newTestUI()

	ui.DisplayUsage(context.Background(), []m.Result{{
		Seed: 42,
		Mutators: []m.Applied{
			{Kind: m.KindToken, LongName: "char_split", Layer: 1},
			{Kind: m.KindCommand, LongName: "reverse", Stub: "bash_loop", Layer: 1},
		},
	}})

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "seed 42")
	assert.Contains(t, errOut.String(), "char_split")
	assert.Contains(t, errOut.String(), "bash_loop")
}

func TestSimpleUI_DisplayCatalog(t *testing.T) {
	t.Run("table lists one row per stub", func(t *testing.T) {
		ui, out, _ := newTestUI()

		require.NoError(t, ui.DisplayCatalog(context.Background(), testCatalog(), FormatTable))
		assert.Contains(t, out.String(), "command/reverse:rev_herestring")
		assert.Contains(t, out.String(), "command/reverse:rev_file")
		assert.Contains(t, out.String(), "encode/base64")
		assert.Contains(t, strings.ToUpper(out.String()), "TOTAL 3")
	})

	t.Run("yaml round trips", func(t *testing.T) {
		ui, out, _ := newTestUI()

		require.NoError(t, ui.DisplayCatalog(context.Background(), testCatalog(), FormatYAML))

		var entries []catalogEntry
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &entries))
		require.Len(t, entries, 2)
		assert.Equal(t, "command/reverse", entries[0].Token)
		require.Len(t, entries[0].Stubs, 2)
		assert.True(t, entries[0].Stubs[1].FileWrite)
		assert.Equal(t, []string{"base64"}, entries[1].Binaries)
	})

	t.Run("unknown format", func(t *testing.T) {
		ui, _, _ := newTestUI()

		err := ui.DisplayCatalog(context.Background(), testCatalog(), ListFormat("xml"))
		assert.ErrorIs(t, err, m.ErrValidation)
	})
}

func TestSimpleUI_DisplayTestReport(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		ui, _, errOut := newTestUI()

		ui.DisplayTestReport(context.Background(), m.Report{Status: m.Match})
		assert.Contains(t, errOut.String(), "match the original")
	})

	t.Run("mismatch shows diffs", func(t *testing.T) {
		ui, _, errOut := newTestUI()

		ui.DisplayTestReport(context.Background(), m.Report{
			Index:    1,
			Status:   m.Mismatch,
			Original: m.RunOutput{Stdout: "hi\n", ExitCode: 0},
			Payload:  m.RunOutput{Stdout: "ho\n", ExitCode: 2},
		})

		assert.Contains(t, errOut.String(), "payload 2")
		assert.Contains(t, errOut.String(), "-hi")
		assert.Contains(t, errOut.String(), "+ho")
		assert.Contains(t, errOut.String(), "exit code: original 0, payload 2")
	})

	t.Run("error", func(t *testing.T) {
		ui, _, errOut := newTestUI()

		ui.DisplayTestReport(context.Background(), m.Report{Status: m.Error, Err: errors.New("bash exploded")})
		assert.Contains(t, errOut.String(), "bash exploded")
	})
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	ui, out, errOut := newTestUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, ui.DisplayPayload(ctx, m.Result{Payload: "x"}))
	ui.DisplayStatus(ctx, StatusInfo, "hidden")
	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
}
