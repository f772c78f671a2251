package config

import (
	"os"

	"github.com/mogiioin/m3u-parser/m3u"
)

// Default values for configuration.
const (
	DefaultOutput = OutputText
	DefaultFailOn = FailOnError
)

// Environment variable names.
const (
	EnvCharset = "M3UPARSE_CHARSET"
	EnvOutput  = "M3UPARSE_OUTPUT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Charset:  m3u.DefaultCharset,
		Output:   DefaultOutput,
		MaxDepth: m3u.DefaultMaxDepth,
		FailOn:   DefaultFailOn,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if charset := os.Getenv(EnvCharset); charset != "" {
		c.Charset = charset
	}
	if output := os.Getenv(EnvOutput); output != "" {
		c.Output = output
	}
}
