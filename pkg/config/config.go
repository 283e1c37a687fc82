package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/i5heu/FifoBench/internal/testbench"
)

// Config is an alias for testbench.Config. This allows other programs to import
// the benchmark configuration without pulling in the entire testbench package.
type Config = testbench.Config

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = testbench.ErrInvalidConfig

// Default returns the compiled-in production configuration.
func Default() Config {
	return testbench.DefaultConfig()
}

// Load reads YAML overrides from path on top of Default. Keys missing from
// the file keep their default value. A missing file is not an error: the
// defaults are returned as they are.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes YAML overrides from r on top of Default and validates the result.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config.Parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config.Parse: %w", err)
	}
	return cfg, nil
}
