package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

// SimpleUI implements UI on top of a cobra command's writers.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayPayload prints the payload alone on standard output.
func (s *SimpleUI) DisplayPayload(ctx context.Context, result m.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(s.cmd.OutOrStdout(), result.Payload)

	return err
}

// DisplayUsage prints which mutators built each payload.
func (s *SimpleUI) DisplayUsage(ctx context.Context, results []m.Result) {
	if err := ctx.Err(); err != nil {
		return
	}

	for i, result := range results {
		title := fmt.Sprintf("Mutators used (seed %d)", result.Seed)
		if len(results) > 1 {
			title = fmt.Sprintf("Payload %d: mutators used (seed %d)", i+1, result.Seed)
		}

		s.errf("\n%s\n%s", mutedStyle.Render(title), renderUsageTable(result.Mutators))
	}
}

func renderUsageTable(applied []m.Applied) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Layer", "Kind", "Mutator", "Stub"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, a := range applied {
		stub := a.Stub
		if stub == "" {
			stub = "-"
		}

		table.Append([]string{strconv.Itoa(a.Layer), string(a.Kind), a.LongName, stub})
	}

	table.Render()

	return tableBuffer.String()
}

// DisplayCatalog prints the catalog as a table or as YAML on standard output.
func (s *SimpleUI) DisplayCatalog(ctx context.Context, mutators []m.Mutator, format ListFormat) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch format {
	case FormatYAML:
		return writeCatalogYAML(s.cmd.OutOrStdout(), mutators)
	case FormatTable, "":
		_, err := io.WriteString(s.cmd.OutOrStdout(), renderCatalogTable(mutators))
		return err
	default:
		return m.Invalid("format", "unsupported format %q", format)
	}
}

func renderCatalogTable(mutators []m.Mutator) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Token", "Size", "Time", "Binaries", "File Write", "Description"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	rows := 0

	for _, mu := range mutators {
		if mu.Kind != m.KindCommand {
			table.Append(catalogRow(mu.Token(), mu.SizeRating, mu.TimeRating, mu.Binaries, mu.FileWrite, mu.Description))
			rows++

			continue
		}

		for _, stub := range mu.Stubs {
			table.Append(catalogRow(mu.Token()+":"+stub.Name, stub.SizeRating, stub.TimeRating, stub.Binaries, stub.FileWrite, mu.Description))
			rows++
		}
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", rows), "", "", "", "", ""})
	table.Render()

	return tableBuffer.String()
}

func catalogRow(token string, size, time int, binaries []string, fileWrite bool, description string) []string {
	bins := strings.Join(binaries, ", ")
	if bins == "" {
		bins = "-"
	}

	write := "no"
	if fileWrite {
		write = "yes"
	}

	return []string{token, strconv.Itoa(size), strconv.Itoa(time), bins, write, description}
}

type catalogStub struct {
	Name      string   `yaml:"name"`
	Size      int      `yaml:"size"`
	Time      int      `yaml:"time"`
	Binaries  []string `yaml:"binaries,omitempty"`
	FileWrite bool     `yaml:"file_write"`
}

type catalogEntry struct {
	Token       string        `yaml:"token"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Author      string        `yaml:"author,omitempty"`
	Notes       string        `yaml:"notes,omitempty"`
	Credits     []string      `yaml:"credits,omitempty"`
	Size        int           `yaml:"size"`
	Time        int           `yaml:"time"`
	Binaries    []string      `yaml:"binaries,omitempty"`
	FileWrite   bool          `yaml:"file_write"`
	Stubs       []catalogStub `yaml:"stubs,omitempty"`
}

func writeCatalogYAML(w io.Writer, mutators []m.Mutator) error {
	entries := make([]catalogEntry, 0, len(mutators))

	for _, mu := range mutators {
		entry := catalogEntry{
			Token:       mu.Token(),
			Name:        mu.Name,
			Description: mu.Description,
			Author:      mu.Author,
			Notes:       mu.Notes,
			Credits:     mu.Credits,
			Size:        mu.SizeRating,
			Time:        mu.TimeRating,
		}

		if mu.Kind == m.KindCommand {
			for _, stub := range mu.Stubs {
				entry.Stubs = append(entry.Stubs, catalogStub{
					Name: stub.Name, Size: stub.SizeRating, Time: stub.TimeRating,
					Binaries: stub.Binaries, FileWrite: stub.FileWrite,
				})
			}
		} else {
			entry.Binaries = mu.Binaries
			entry.FileWrite = mu.FileWrite
		}

		entries = append(entries, entry)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	return enc.Close()
}

// DisplayTestReport prints the comparison of one test run, with diffs when
// the payload diverged.
func (s *SimpleUI) DisplayTestReport(ctx context.Context, report m.Report) {
	if err := ctx.Err(); err != nil {
		return
	}

	label := fmt.Sprintf("payload %d", report.Index+1)

	switch report.Status {
	case m.Match:
		s.status(StatusSuccess, "Test %s: output and exit code match the original", label)
	case m.Error:
		s.status(StatusError, "Test %s: %v", label, report.Err)
	default:
		s.status(StatusError, "Test %s: behavior differs from the original", label)
		s.errf("%s", renderRunDiff(report))
	}
}

func renderRunDiff(report m.Report) string {
	var b strings.Builder

	for _, stream := range []struct {
		name      string
		orig, got string
	}{
		{"stdout", report.Original.Stdout, report.Payload.Stdout},
		{"stderr", report.Original.Stderr, report.Payload.Stderr},
	} {
		if stream.orig == stream.got {
			continue
		}

		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(stream.orig),
			B:        difflib.SplitLines(stream.got),
			FromFile: "original " + stream.name,
			ToFile:   "payload " + stream.name,
			Context:  3,
		})
		if err != nil {
			diff = err.Error() + "\n"
		}

		b.WriteString(diff)
	}

	if report.Original.ExitCode != report.Payload.ExitCode {
		fmt.Fprintf(&b, "exit code: original %d, payload %d\n", report.Original.ExitCode, report.Payload.ExitCode)
	}

	return b.String()
}

// DisplayStatus prints a styled status line on standard error.
func (s *SimpleUI) DisplayStatus(ctx context.Context, level StatusLevel, format string, args ...any) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.status(level, format, args...)
}

func (s *SimpleUI) status(level StatusLevel, format string, args ...any) {
	prefix := styleFor(level).Render(statusPrefix[level])
	s.errf("%s %s\n", prefix, fmt.Sprintf(format, args...))
}

func (s *SimpleUI) errf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}
