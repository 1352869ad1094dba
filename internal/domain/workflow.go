package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"shellmorph.dev/pkg/shellmorph/internal/adapter"
	"shellmorph.dev/pkg/shellmorph/internal/controller"
	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

const shebang = "#!/bin/bash\n"

const (
	scriptFileMode os.FileMode = 0o755
	plainFileMode  os.FileMode = 0o644
)

// SourceArgs names exactly one input.
type SourceArgs struct {
	Command string
	File    m.Path
	Stdin   bool
}

// GenerateArgs contains the arguments of a generate run.
type GenerateArgs struct {
	Source  SourceArgs
	Request m.Request
	// Seed is used when Seeded; payload i of a batch gets Seed+i.
	Seed     uint64
	Seeded   bool
	Count    int
	Parallel int
	Outfile  m.Path
	Shebang  bool
	Clip     bool
	Quiet    bool
	Test     bool
}

// ListArgs contains the arguments of a list run.
type ListArgs struct {
	// Kind filters the listing; empty lists every kind.
	Kind   m.Kind
	Format controller.ListFormat
}

// Workflow defines the CLI use cases.
type Workflow interface {
	Generate(ctx context.Context, args GenerateArgs) error
	List(ctx context.Context, args ListArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ShellRunnerAdapter
	adapter.ClipboardAdapter
	controller.UI
	Obfuscator
	catalog *Catalog
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	runner adapter.ShellRunnerAdapter,
	clip adapter.ClipboardAdapter,
	ui controller.UI,
	obfuscator Obfuscator,
	catalog *Catalog,
) Workflow {
	return &workflow{
		SourceFSAdapter:    fsAdapter,
		ShellRunnerAdapter: runner,
		ClipboardAdapter:   clip,
		UI:                 ui,
		Obfuscator:         obfuscator,
		catalog:            catalog,
	}
}

// Generate reads the input, produces Count payloads and delivers each of
// them to the requested outputs.
func (w *workflow) Generate(ctx context.Context, args GenerateArgs) error {
	source, err := w.readSource(args.Source)
	if err != nil {
		return err
	}

	req := args.Request
	req.Command = source.Text

	if err := Validate(req); err != nil {
		return err
	}

	results, err := w.generateAll(ctx, req, args)
	if err != nil {
		slog.Error("Failed to generate payload", "error", err)
		return fmt.Errorf("generate: %w", err)
	}

	if !args.Quiet {
		for _, result := range results {
			if err := w.DisplayPayload(ctx, result); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}

	if err := w.deliver(ctx, results, args); err != nil {
		return err
	}

	if !args.Quiet {
		w.DisplayUsage(ctx, results)
	}

	if args.Test {
		return w.testAll(ctx, req.Command, results)
	}

	return nil
}

func (w *workflow) readSource(args SourceArgs) (m.Source, error) {
	given := 0

	for _, set := range []bool{args.Command != "", args.File != "", args.Stdin} {
		if set {
			given++
		}
	}

	if given != 1 {
		return m.Source{}, m.Invalid("input", "exactly one of --command, --file or --stdin is required")
	}

	switch {
	case args.File != "":
		data, err := w.ReadFile(string(args.File))
		if err != nil {
			return m.Source{}, fmt.Errorf("read input: %w", err)
		}

		return m.Source{Kind: m.SourceFile, Path: args.File, Text: string(data)}, nil
	case args.Stdin:
		data, err := w.ReadStdin()
		if err != nil {
			return m.Source{}, fmt.Errorf("read input: %w", err)
		}

		return m.Source{Kind: m.SourceStdin, Text: string(data)}, nil
	default:
		return m.Source{Kind: m.SourceInline, Text: args.Command}, nil
	}
}

// generateAll runs the independent generations of a batch concurrently.
// Results keep batch order whatever order the generations finish in.
func (w *workflow) generateAll(ctx context.Context, req m.Request, args GenerateArgs) ([]m.Result, error) {
	count := max(1, args.Count)
	results := make([]m.Result, count)

	group, groupCtx := errgroup.WithContext(ctx)
	if args.Parallel > 0 {
		group.SetLimit(args.Parallel)
	}

	for i := range count {
		group.Go(func() error {
			var opts []Option
			if args.Seeded {
				opts = append(opts, WithSeed(args.Seed+uint64(i)))
			}

			result, err := w.Obfuscate(groupCtx, req, opts...)
			if err != nil {
				return err
			}

			results[i] = result

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (w *workflow) deliver(ctx context.Context, results []m.Result, args GenerateArgs) error {
	if args.Clip {
		payloads := make([]string, len(results))
		for i, result := range results {
			payloads[i] = result.Payload
		}

		if err := w.Copy(strings.Join(payloads, "\n")); err != nil {
			w.DisplayStatus(ctx, controller.StatusWarning, "Could not copy to clipboard: %v", err)
		} else {
			w.DisplayStatus(ctx, controller.StatusSuccess, "Payload copied to clipboard")
		}
	}

	if args.Outfile == "" {
		return nil
	}

	for i, result := range results {
		path := outfilePath(string(args.Outfile), i, len(results))

		content, mode := result.Payload, plainFileMode
		if args.Shebang {
			content, mode = shebang+content, scriptFileMode
		}

		if err := w.WriteFile(path, []byte(content+"\n"), mode); err != nil {
			return fmt.Errorf("write payload: %w", err)
		}

		w.DisplayStatus(ctx, controller.StatusSuccess, "Payload written to %s", path)
	}

	return nil
}

// outfilePath numbers batch files before the extension: out.sh, out.2.sh.
func outfilePath(path string, index, total int) string {
	if total <= 1 || index == 0 {
		return path
	}

	ext := filepath.Ext(path)

	return strings.TrimSuffix(path, ext) + "." + strconv.Itoa(index+1) + ext
}

// testAll runs the original once and every payload once, reporting each
// comparison. Any divergence fails the run.
func (w *workflow) testAll(ctx context.Context, original string, results []m.Result) error {
	want, err := w.Run(ctx, original)
	if err != nil {
		return fmt.Errorf("run original command: %w", err)
	}

	failed := 0

	for i, result := range results {
		report := m.Report{Index: i, Original: want}

		got, err := w.Run(ctx, result.Payload)

		switch {
		case err != nil:
			report.Status, report.Err = m.Error, err
		case got.Equal(want):
			report.Status, report.Payload = m.Match, got
		default:
			report.Status, report.Payload = m.Mismatch, got
		}

		if report.Status != m.Match {
			failed++
		}

		slog.Info("Tested payload", "index", i, "status", report.Status.String(), "seed", result.Seed)
		w.DisplayTestReport(ctx, report)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d payloads", m.ErrTestMismatch, failed, len(results))
	}

	return nil
}

// List renders the catalog, optionally restricted to one kind.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	var mutators []m.Mutator

	switch {
	case args.Kind == "":
		mutators = w.catalog.All()
	case args.Kind.Valid():
		mutators = w.catalog.Mutators(args.Kind)
	default:
		return m.Invalid("kind", "unknown mutator kind %q", args.Kind)
	}

	if err := w.DisplayCatalog(ctx, mutators, args.Format); err != nil {
		return fmt.Errorf("display catalog: %w", err)
	}

	return nil
}
