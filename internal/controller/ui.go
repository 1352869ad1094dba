// Package controller renders generation results for the shellmorph CLI.
package controller

import (
	"context"
	"strings"

	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

// ListFormat selects how the catalog is rendered.
type ListFormat string

// Available ListFormat values.
const (
	FormatTable ListFormat = "table"
	FormatYAML  ListFormat = "yaml"
)

// ParseListFormat validates a --format value.
func ParseListFormat(value string) (ListFormat, error) {
	switch f := ListFormat(strings.ToLower(strings.TrimSpace(value))); f {
	case FormatTable, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", m.Invalid("format", "expected table or yaml, got %q", value)
	}
}

// StatusLevel colors a status line.
type StatusLevel int

// Available StatusLevel values.
const (
	StatusInfo StatusLevel = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// UI defines how workflow results reach the user. Payloads go to standard
// output; everything else goes to standard error so payloads stay pipeable.
type UI interface {
	DisplayPayload(ctx context.Context, result m.Result) error
	DisplayUsage(ctx context.Context, results []m.Result)
	DisplayCatalog(ctx context.Context, mutators []m.Mutator, format ListFormat) error
	DisplayTestReport(ctx context.Context, report m.Report)
	DisplayStatus(ctx context.Context, level StatusLevel, format string, args ...any)
}
