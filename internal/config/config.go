// Package config loads the optional YAML run description.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fryou12/chapters/internal/reader"
)

// Config lists the files to extract and how to extract them.
type Config struct {
	Inputs  []Input       `yaml:"inputs"`
	Extract ExtractConfig `yaml:"extract"`
}

// Input is one file to process. Format overrides extension dispatch.
type Input struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// ExtractConfig mirrors reader.Options.
type ExtractConfig struct {
	StripMarkup      bool `yaml:"strip_markup"`
	SpineOrder       bool `yaml:"spine_order"`
	SplitPDFHeadings bool `yaml:"split_pdf_headings"`
}

// Options converts the extract section to adapter options.
func (c *Config) Options() reader.Options {
	return reader.Options{
		StripMarkup:   c.Extract.StripMarkup,
		SpineOrder:    c.Extract.SpineOrder,
		SplitHeadings: c.Extract.SplitPDFHeadings,
	}
}

// Load reads and parses the configuration file. Relative input paths are
// resolved against the file's directory.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	base := filepath.Dir(configPath)
	for i := range cfg.Inputs {
		if !filepath.IsAbs(cfg.Inputs[i].Path) {
			cfg.Inputs[i].Path = filepath.Join(base, cfg.Inputs[i].Path)
		}
	}
	return &cfg, nil
}

// Validate checks that every input names a file and, when set, a
// registered format.
func Validate(cfg *Config) error {
	for i, in := range cfg.Inputs {
		if in.Path == "" {
			return fmt.Errorf("inputs[%d]: path is required", i)
		}
		if in.Format == "" {
			continue
		}
		if _, ok := reader.Lookup(in.Format); !ok {
			return fmt.Errorf("inputs[%d]: unknown format %q", i, in.Format)
		}
	}
	return nil
}
