// Package config provides configuration loading and validation for m3uparse.
package config

import "github.com/mogiioin/m3u-parser/m3u"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Charset is the label of the charset playlists are read with.
	Charset string `yaml:"charset"`

	// Strict makes a malformed integer or timestamp value fail the parse
	// instead of being reported as a warning.
	Strict bool `yaml:"strict"`

	// Output selects the formatter: text, json or yaml.
	Output string `yaml:"output"`

	// ResolveNested follows local references to other playlists.
	ResolveNested bool `yaml:"resolve_nested"`
	MaxDepth      int  `yaml:"max_depth,omitempty"` // nesting limit when resolving

	// FailOn is the lowest severity that makes the run fail.
	FailOn FailOn `yaml:"fail_on"`
}

// FailOn represents the severity threshold for a failing exit code.
type FailOn string

const (
	FailOnWarning FailOn = "warning"
	FailOnError   FailOn = "error"
	FailOnNever   FailOn = "never"
)

// Fails reports whether a result whose worst problem is worst crosses the
// threshold.
func (f FailOn) Fails(worst m3u.Severity) bool {
	switch f {
	case FailOnWarning:
		return worst >= m3u.WARNING
	case FailOnError:
		return worst >= m3u.ERROR
	}
	return false
}

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)
