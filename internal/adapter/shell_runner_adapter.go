package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

const (
	defaultRunTimeout = 30 * time.Second
	// waitDelay bounds how long Run waits for the output pipes once the
	// script was killed; background children may still hold them.
	waitDelay = 2 * time.Second
	// scriptPath is the name bash sees for every script. Diagnostics embed
	// it, so the original and its payload must run under the same name.
	scriptPath = "/dev/fd/3"
)

// ShellRunnerAdapter executes a script and captures what it observably did.
type ShellRunnerAdapter interface {
	// Run executes script with an empty standard input. A non-zero exit code
	// is part of the output, not an error.
	Run(ctx context.Context, script string) (m.RunOutput, error)
}

// LocalShellRunnerAdapter runs scripts with the bash binary, falling back to
// an in-process interpreter when bash is not installed.
type LocalShellRunnerAdapter struct {
	shell    string
	timeout  time.Duration
	fallback ShellRunnerAdapter
}

// NewLocalShellRunnerAdapter constructs a bash runner with a 30s timeout.
func NewLocalShellRunnerAdapter() *LocalShellRunnerAdapter {
	return &LocalShellRunnerAdapter{
		shell:    "bash",
		timeout:  defaultRunTimeout,
		fallback: NewInterpShellRunnerAdapter(),
	}
}

// Run writes script to a temporary file and executes it, so payloads larger
// than the argument size limit still run. The file is handed to bash as
// descriptor 3 and run as /dev/fd/3.
func (a *LocalShellRunnerAdapter) Run(ctx context.Context, script string) (m.RunOutput, error) {
	shell, err := exec.LookPath(a.shell)
	if err != nil {
		slog.Warn("Shell not found, using the built-in interpreter", "shell", a.shell, "error", err)
		return a.fallback.Run(ctx, script)
	}

	f, err := os.CreateTemp("", "shellmorph-*.sh")
	if err != nil {
		return m.RunOutput{}, fmt.Errorf("create script file: %w", err)
	}

	defer func() {
		_ = f.Close()
		_ = os.Remove(f.Name())
	}()

	if _, err := f.WriteString(script); err != nil {
		return m.RunOutput{}, fmt.Errorf("write script file: %w", err)
	}

	// Opening /dev/fd/3 may share this descriptor's offset.
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return m.RunOutput{}, fmt.Errorf("rewind script file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, shell, scriptPath)
	cmd.ExtraFiles = []*os.File{f}
	cmd.WaitDelay = waitDelay
	killProcessGroup(cmd)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	out := m.RunOutput{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError

	switch {
	case ctx.Err() != nil:
		return out, fmt.Errorf("run %s: %w", a.shell, ctx.Err())
	case errors.As(err, &exitErr):
		out.ExitCode = exitErr.ExitCode()
	case err != nil:
		return out, fmt.Errorf("run %s: %w", a.shell, err)
	}

	return out, nil
}

// InterpShellRunnerAdapter runs scripts with the mvdan.cc/sh interpreter.
// External programs are still executed from PATH.
type InterpShellRunnerAdapter struct {
	timeout time.Duration
}

// NewInterpShellRunnerAdapter constructs an interpreter runner with a 30s timeout.
func NewInterpShellRunnerAdapter() *InterpShellRunnerAdapter {
	return &InterpShellRunnerAdapter{timeout: defaultRunTimeout}
}

// Run parses and interprets script.
func (a *InterpShellRunnerAdapter) Run(ctx context.Context, script string) (out m.RunOutput, err error) {
	file, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(script), "")
	if err != nil {
		return m.RunOutput{}, fmt.Errorf("parse script: %w", err)
	}

	var stdout, stderr bytes.Buffer

	runner, err := interp.New(
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, &stdout, &stderr),
		interp.CallHandler(evalEndOfOptions),
	)
	if err != nil {
		return m.RunOutput{}, fmt.Errorf("create interpreter: %w", err)
	}

	// The interpreter panics on a few constructs it does not implement.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("interpret script: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	runErr := runner.Run(ctx, file)
	out = m.RunOutput{Stdout: stdout.String(), Stderr: stderr.String()}

	var status interp.ExitStatus

	switch {
	case runErr == nil:
	case errors.As(runErr, &status):
		out.ExitCode = int(status)
	case ctx.Err() != nil:
		return out, fmt.Errorf("interpret script: %w", ctx.Err())
	default:
		return out, fmt.Errorf("interpret script: %w", runErr)
	}

	return out, nil
}

// evalEndOfOptions drops the "--" after eval. Bash's eval treats it as the end
// of its options, the interpreter's eval would run it as a command.
func evalEndOfOptions(_ context.Context, args []string) ([]string, error) {
	if len(args) > 1 && args[0] == "eval" && args[1] == "--" {
		return append([]string{"eval"}, args[2:]...), nil
	}

	return args, nil
}
