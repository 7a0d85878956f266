// Package config reads the command line configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = ".lox.yaml"

type Config struct {
	// Trace is the trace level: Debug, Info or Error.
	Trace        string `yaml:"trace"`
	Prompt       string `yaml:"prompt"`
	History      string `yaml:"history"`
	Color        bool   `yaml:"color"`
	MaxCallDepth int    `yaml:"max_call_depth"`
	Echo         bool   `yaml:"echo"`
}

func Default() *Config {
	return &Config{
		Trace:        "Error",
		Prompt:       "> ",
		Color:        true,
		MaxCallDepth: 10000,
		Echo:         true,
	}
}

// Load reads the configuration at path on top of the defaults. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	if err := Parse(data, c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML into c; keys not present keep their value.
func Parse(data []byte, c *Config) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}
	return c.validate()
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Trace) {
	case "debug", "info", "error":
	default:
		return fmt.Errorf("invalid trace level %q", c.Trace)
	}
	if c.MaxCallDepth <= 0 {
		return fmt.Errorf("max_call_depth must be positive, got %d", c.MaxCallDepth)
	}
	return nil
}
