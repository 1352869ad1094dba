package adapter

import (
	"context"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// ShellSyntaxAdapter checks that a script is well-formed before it is
// obfuscated.
type ShellSyntaxAdapter interface {
	Check(ctx context.Context, script string) error
}

// LocalShellSyntaxAdapter parses scripts with the bash dialect of mvdan.cc/sh.
type LocalShellSyntaxAdapter struct {
	variant syntax.LangVariant
}

// NewLocalShellSyntaxAdapter returns a bash syntax checker.
func NewLocalShellSyntaxAdapter() *LocalShellSyntaxAdapter {
	return &LocalShellSyntaxAdapter{variant: syntax.LangBash}
}

// Check returns the first parse error of script, if any.
func (a *LocalShellSyntaxAdapter) Check(ctx context.Context, script string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	parser := syntax.NewParser(syntax.KeepComments(false), syntax.Variant(a.variant))
	if _, err := parser.Parse(strings.NewReader(script), ""); err != nil {
		return fmt.Errorf("parse script: %w", err)
	}

	return nil
}
