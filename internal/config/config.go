package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mogiioin/m3u-parser/m3u"
)

// Load reads and validates a configuration file. An empty path yields the
// defaults, still subject to environment overrides.
func Load(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and fills in defaults for
// unset optional values.
func Validate(cfg *Config) error {
	cfg.Charset = strings.TrimSpace(cfg.Charset)
	if cfg.Charset == "" {
		return errors.New("charset: a charset is required")
	}
	if _, _, err := m3u.LookupCharset(cfg.Charset); err != nil {
		return fmt.Errorf("charset: %w", err)
	}

	switch cfg.Output {
	case OutputText, OutputJSON, OutputYAML:
	case "":
		cfg.Output = DefaultOutput
	default:
		return fmt.Errorf("output: invalid format %q (must be text, json, or yaml)", cfg.Output)
	}

	switch cfg.FailOn {
	case FailOnWarning, FailOnError, FailOnNever:
	case "":
		cfg.FailOn = DefaultFailOn
	default:
		return fmt.Errorf("fail_on: invalid value %q (must be warning, error, or never)", cfg.FailOn)
	}

	if cfg.MaxDepth < 0 {
		return fmt.Errorf("max_depth: must be >= 0, got %d", cfg.MaxDepth)
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = m3u.DefaultMaxDepth
	}

	return nil
}
