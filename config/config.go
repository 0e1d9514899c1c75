// Package config loads diagram generation settings from a YAML file.
// Every setting can also be given on the command line; flags that are set
// explicitly take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/don7panic/codewiki-go-diagram/drawio"
)

// ErrInvalidConfig indicates the configuration is invalid or incomplete.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents a diagram configuration file.
type Config struct {
	// Package is the go/packages pattern to analyze, e.g. "./example/pets".
	Package string `yaml:"package"`
	// Dir is the directory the pattern is resolved from.
	Dir string `yaml:"dir,omitempty"`

	OutputDir string `yaml:"output_dir,omitempty"`
	FileName  string `yaml:"file_name,omitempty"`
	Direction string `yaml:"direction,omitempty"`
	LinkStyle string `yaml:"link_style,omitempty"`

	// Filter is a CEL expression over name, kind, pkg and exported.
	Filter string `yaml:"filter,omitempty"`
	// Relations is a file of declared relationships.
	Relations string `yaml:"relations,omitempty"`

	ShowImplements *bool `yaml:"show_implements,omitempty"`
}

// Default returns a configuration with every optional setting filled in.
func Default() *Config {
	implements := true
	return &Config{
		Dir:            ".",
		OutputDir:      ".",
		Direction:      string(drawio.Down),
		LinkStyle:      string(drawio.Orthogonal),
		ShowImplements: &implements,
	}
}

// Load reads a YAML configuration file and applies defaults for missing
// settings. Relative Dir, OutputDir and Relations paths are resolved
// against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	cfg.applyDefaults()

	base := filepath.Dir(path)
	cfg.Dir = resolve(base, cfg.Dir)
	cfg.OutputDir = resolve(base, cfg.OutputDir)
	if cfg.Relations != "" {
		cfg.Relations = resolve(base, cfg.Relations)
	}
	return cfg, nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Dir == "" {
		c.Dir = d.Dir
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if c.Direction == "" {
		c.Direction = d.Direction
	}
	if c.LinkStyle == "" {
		c.LinkStyle = d.LinkStyle
	}
	if c.ShowImplements == nil {
		c.ShowImplements = d.ShowImplements
	}
}

// Validate checks that the configuration names a package and uses known
// layout settings.
func (c *Config) Validate() error {
	if c.Package == "" {
		return fmt.Errorf("%w: package is required", ErrInvalidConfig)
	}
	if _, err := drawio.ParseDirection(c.Direction); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := drawio.ParseLinkStyle(c.LinkStyle); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Implements reports whether implementation edges should be drawn.
func (c *Config) Implements() bool {
	return c.ShowImplements == nil || *c.ShowImplements
}
