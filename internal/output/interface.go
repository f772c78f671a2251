package output

import (
	"context"
	"fmt"
	"io"
)

// Formatter renders parse reports in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json, yaml).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose enables detailed output including every directive of every entry.
	Verbose bool

	// Quiet enables minimal summary-only output.
	Quiet bool

	// ProblemsOnly leaves out the parsed playlists and keeps the problems.
	ProblemsOnly bool
}

// New returns the formatter registered under name.
func New(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	case "yaml":
		return NewYAMLFormatter(opts), nil
	}
	return nil, fmt.Errorf("unknown output format %q", name)
}
