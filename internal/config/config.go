// Package config loads powcanon settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/powcanon/internal/power"
)

// Config holds settings shared by every command.
type Config struct {
	// MaxDenominator bounds exponent denominators during approximation.
	MaxDenominator int64 `yaml:"max_denominator"`

	// Format is the default output format ("text" or "json").
	Format string `yaml:"format"`

	// Database is an optional SQLite path where lowered programs are recorded.
	Database string `yaml:"database,omitempty"`
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

// IsConfigError returns true if the error is a ConfigError.
// Uses errors.As to handle wrapped errors.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxDenominator: power.DefaultMaxDenominator,
		Format:         "text",
	}
}

// Load reads a YAML config file on top of the defaults. Unknown fields are
// rejected so typos surface instead of being ignored.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		// An empty file decodes to EOF; keep the defaults.
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if c.MaxDenominator < 1 {
		return &ConfigError{
			Field:   "max_denominator",
			Message: fmt.Sprintf("must be >= 1, got %d", c.MaxDenominator),
		}
	}
	if !isValidFormat(c.Format) {
		return &ConfigError{
			Field:   "format",
			Message: fmt.Sprintf("invalid format %q: must be one of %v", c.Format, ValidFormats),
		}
	}
	return nil
}

// Policy returns the approximation policy for this configuration.
func (c Config) Policy() power.Policy {
	return power.Policy{MaxDenominator: c.MaxDenominator}
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
