// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dashboard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aclements/heartdash/dataset"
	"github.com/aclements/heartdash/views"
	"gopkg.in/yaml.v3"
)

// Config is the dashboard layout. Every chart shares one Layout.
type Config struct {
	Layout     views.Layout            `yaml:"layout"`
	Scatter    ScatterConfig           `yaml:"scatter"`
	Histograms []views.HistogramConfig `yaml:"histograms"`
	Density    views.DensityConfig     `yaml:"density"`
	Theme      views.Theme             `yaml:"theme"`
}

// ScatterConfig picks the fields of the selection-source scatter.
type ScatterConfig struct {
	X dataset.Field `yaml:"x"`
	Y dataset.Field `yaml:"y"`
}

// DefaultConfig returns the built-in layout.
func DefaultConfig() *Config {
	return &Config{
		Layout: views.Layout{
			Width:  600,
			Height: 400,
			Margin: views.Margin{Top: 40, Right: 40, Bottom: 60, Left: 70},
		},
		Scatter: ScatterConfig{X: dataset.Age, Y: dataset.Cholesterol},
		Histograms: []views.HistogramConfig{
			{Field: dataset.Cholesterol, Min: 100, Max: 400, Bins: 20},
			{Field: dataset.Age, Min: 25, Max: 80, Bins: 15},
		},
		Density: views.DensityConfig{Field: dataset.Age, Min: 25, Max: 80, Bandwidth: 3, Points: 100},
		Theme:   views.DefaultTheme,
	}
}

// LoadConfig reads a YAML configuration from r. Keys that are absent
// keep their default; unknown keys are an error.
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadConfig loads the configuration in path, or the default if path
// is "".
func ReadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := LoadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that cfg describes drawable charts.
func (cfg *Config) Validate() error {
	if w, h := cfg.Layout.Inner(); w <= 0 || h <= 0 {
		return fmt.Errorf("layout %dx%d leaves no room inside its margins", cfg.Layout.Width, cfg.Layout.Height)
	}
	if cfg.Scatter.X == cfg.Scatter.Y {
		return fmt.Errorf("scatter x and y are both %s", cfg.Scatter.X)
	}
	seen := map[dataset.Field]bool{}
	for _, h := range cfg.Histograms {
		if h.Bins <= 0 || !(h.Min < h.Max) {
			return fmt.Errorf("histogram of %s: need bins > 0 and min < max", h.Field)
		}
		if seen[h.Field] {
			return fmt.Errorf("duplicate histogram of %s", h.Field)
		}
		seen[h.Field] = true
	}
	if !(cfg.Density.Min < cfg.Density.Max) || cfg.Density.Bandwidth < 0 {
		return fmt.Errorf("density of %s: need min < max and bandwidth >= 0", cfg.Density.Field)
	}
	return nil
}
