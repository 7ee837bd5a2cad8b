// Package universe turns the versioned universe definition file into the
// ordered, de-duplicated set of assets a run retrieves.
package universe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry is one configured instrument. Key defaults to Symbol and Name
// defaults to Key.
type Entry struct {
	Key    string `yaml:"key"`
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
}

// Definition is the on-disk universe. Group order in the file is the
// enumeration order of the run.
type Definition struct {
	Reference Entry    `yaml:"reference"`
	Metals    []Entry  `yaml:"metals"`
	Crypto    []Entry  `yaml:"crypto"`
	ETF       []Entry  `yaml:"etf"`
	Other     []Entry  `yaml:"other"`
	SP500     []string `yaml:"sp500"` // fallback when the live list is unavailable
}

// Load reads and validates a universe definition.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read universe: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("universe %s: %w", path, err)
	}
	return def, nil
}

// Parse decodes a definition, rejecting unknown fields.
func Parse(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse universe: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks that the reference asset is defined and every entry has a
// symbol.
func (d *Definition) Validate() error {
	if d.Reference.Symbol == "" {
		return errors.New("reference.symbol is required")
	}
	groups := map[string][]Entry{"metals": d.Metals, "crypto": d.Crypto, "etf": d.ETF, "other": d.Other}
	for name, entries := range groups {
		for i, e := range entries {
			if e.Symbol == "" {
				return fmt.Errorf("%s[%d]: symbol is required", name, i)
			}
		}
	}
	return nil
}
