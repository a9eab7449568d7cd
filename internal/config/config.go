// Package config handles configuration loading for the route tooling.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Variants Variants `yaml:"variants" json:"variants"`

	InputDir       string   `yaml:"input_dir" json:"input_dir" validate:"required"`
	StopsFile      string   `yaml:"stops" json:"stops" validate:"required"`
	RouteStopsFile string   `yaml:"route_stops" json:"route_stops" validate:"required"`
	OutputDir      string   `yaml:"output_dir" json:"output_dir" validate:"required"`
	Format         string   `yaml:"format,omitempty" json:"format" validate:"oneof=json yaml"`
	MetricsFile    string   `yaml:"metrics_file,omitempty" json:"metrics_file,omitempty"`
	Routes         []string `yaml:"routes,omitempty" json:"routes,omitempty"` // limit to these base route ids
	MaxTokenBytes  int      `yaml:"max_token_bytes,omitempty" json:"max_token_bytes" validate:"min=16,max=65536"`
	LenientNumbers bool     `yaml:"lenient_numbers,omitempty" json:"lenient_numbers"`
	GeoJSON        bool     `yaml:"geojson,omitempty" json:"geojson"`
	Encoded        bool     `yaml:"encoded_polylines,omitempty" json:"encoded_polylines"`
}

// Variants holds the direction suffixes appended to a base route id.
type Variants struct {
	A string `yaml:"a" json:"a" validate:"required,nefield=B"`
	B string `yaml:"b" json:"b" validate:"required"`
}

// Default returns a configuration that reads everything from the working
// directory, the way the data exports are usually laid out.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the YAML configuration file from the specified path.
// Unset values get their defaults; call Validate after applying overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// Validate checks the configuration against its constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.InputDir == "" {
		c.InputDir = "."
	}
	if c.StopsFile == "" {
		c.StopsFile = "stops.csv"
	}
	if c.RouteStopsFile == "" {
		c.RouteStopsFile = "route_stops.csv"
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Format == "" {
		c.Format = "json"
	}
	if c.MaxTokenBytes == 0 {
		c.MaxTokenBytes = 256
	}
	if c.Variants.A == "" {
		c.Variants.A = "A"
	}
	if c.Variants.B == "" {
		c.Variants.B = "B"
	}
}
