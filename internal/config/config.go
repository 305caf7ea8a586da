// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads the jsonvalidate configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Independence-University/json-validator/pkg/format"
	"github.com/Independence-University/json-validator/pkg/jsonschema"
	"github.com/Independence-University/json-validator/pkg/jsontext"
)

// DefaultFile is the configuration file used when none is named.
const DefaultFile = ".jsonvalidate.yaml"

// Config holds the settings of the command.
// Zero values mean the library defaults.
type Config struct {
	MaxDepth      int      `yaml:"max_depth"`
	AllowComments bool     `yaml:"allow_comments"`
	FetchTimeout  Duration `yaml:"fetch_timeout"`
	Concurrency   int      `yaml:"concurrency"`
	// Formats enables assertion of the format keyword.
	// It defaults to true.
	Formats *bool `yaml:"formats"`
	// Color is auto, always or never.
	Color string `yaml:"color"`
}

// Duration is a time.Duration written as a string such as "5s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %v", value.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Load reads the configuration file at path.
// If path is empty, DefaultFile is read if it exists;
// otherwise the default configuration is returned.
func Load(path string) (*Config, error) {
	name := path
	if name == "" {
		name = DefaultFile
	}
	data, err := os.ReadFile(name)
	if err != nil {
		if path == "" && errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// Parse decodes a configuration. Unknown fields are errors.
func Parse(data []byte) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) check() error {
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, not %q", c.Color)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative")
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("fetch_timeout must not be negative")
	}
	return nil
}

// FormatsEnabled reports whether format is asserted.
func (c *Config) FormatsEnabled() bool {
	return c.Formats == nil || *c.Formats
}

// Options returns the validation options for c.
func (c *Config) Options() *jsonschema.Options {
	opts := &jsonschema.Options{
		FetchTimeout: time.Duration(c.FetchTimeout),
		Concurrency:  c.Concurrency,
		MaxDepth:     c.MaxDepth,
		Parse: &jsontext.ParseOptions{
			MaxDepth:      c.MaxDepth,
			AllowComments: c.AllowComments,
		},
	}
	if c.FormatsEnabled() {
		opts.FormatHandlers = format.Builtin()
	}
	return opts
}
