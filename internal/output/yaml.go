package output

import (
	"context"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats reports as YAML.
type YAMLFormatter struct {
	opts FormatOptions
}

// NewYAMLFormatter creates a new YAML formatter with the given options.
func NewYAMLFormatter(opts FormatOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Name returns the format name.
func (f *YAMLFormatter) Name() string {
	return "yaml"
}

// Format renders the report as YAML.
func (f *YAMLFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	var v any = report
	switch {
	case f.opts.Quiet:
		v = report.Summary
	case f.opts.ProblemsOnly:
		v = report.problemsOnly()
	}
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
