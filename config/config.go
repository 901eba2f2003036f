// Package config loads engine settings from a YAML file.
//
// Every key is optional; missing keys keep the engine defaults:
//
//	rows:
//	  gap_factor: 0.5
//	  min_gap: 1.0
//	columns:
//	  proximity_factor: 3.0
//	  char_width_ratio: 0.5
//	  default_char_width: 5.0
//	  merge_words: false
//	  word_gap_factor: 1.0
//	rulings:
//	  epsilon: 1.0
//	  raster_width: 2048
//	tie_epsilon: 0.01
//	output:
//	  format: json
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/tabextract/export"
	"github.com/tsawler/tabextract/source"
	"github.com/tsawler/tabextract/tables"
)

// File mirrors the YAML layout. Nil fields were not set.
type File struct {
	Rows       Rows     `yaml:"rows"`
	Columns    Columns  `yaml:"columns"`
	Rulings    Rulings  `yaml:"rulings"`
	TieEpsilon *float64 `yaml:"tie_epsilon,omitempty"`
	Output     Output   `yaml:"output"`
}

// Rows holds the row segmentation settings
type Rows struct {
	GapFactor *float64 `yaml:"gap_factor,omitempty"`
	MinGap    *float64 `yaml:"min_gap,omitempty"`
}

// Columns holds the column segmentation settings
type Columns struct {
	ProximityFactor  *float64 `yaml:"proximity_factor,omitempty"`
	CharWidthRatio   *float64 `yaml:"char_width_ratio,omitempty"`
	DefaultCharWidth *float64 `yaml:"default_char_width,omitempty"`
	MergeWords       *bool    `yaml:"merge_words,omitempty"`
	WordGapFactor    *float64 `yaml:"word_gap_factor,omitempty"`
}

// Rulings holds the ruling handling settings
type Rulings struct {
	Epsilon     *float64 `yaml:"epsilon,omitempty"`
	RasterWidth *int     `yaml:"raster_width,omitempty"`
}

// Output holds the serialization settings
type Output struct {
	Format string `yaml:"format,omitempty"`
}

// Settings is the resolved configuration.
type Settings struct {
	Tables      tables.Config
	RasterWidth int
	Format      export.Format
}

// Default returns the settings used when no file is given.
func Default() Settings {
	return Settings{
		Tables:      tables.DefaultConfig(),
		RasterWidth: source.DefaultRasterWidth,
		Format:      export.JSON,
	}
}

// Load reads and resolves the YAML file at path.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read config: %w", err)
	}
	settings, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

// Parse decodes YAML and resolves it against the defaults. Unknown keys are
// rejected, and the result is validated.
func Parse(data []byte) (Settings, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("parse config: %w", err)
	}
	return f.Resolve()
}

// Resolve applies the set fields over the defaults and validates the result.
func (f File) Resolve() (Settings, error) {
	s := Default()
	cfg := &s.Tables

	setFloat(&cfg.RowGapFactor, f.Rows.GapFactor)
	setFloat(&cfg.MinRowGap, f.Rows.MinGap)
	setFloat(&cfg.ColumnProximityFactor, f.Columns.ProximityFactor)
	setFloat(&cfg.CharWidthRatio, f.Columns.CharWidthRatio)
	setFloat(&cfg.DefaultCharWidth, f.Columns.DefaultCharWidth)
	setFloat(&cfg.WordGapFactor, f.Columns.WordGapFactor)
	setFloat(&cfg.RulingEpsilon, f.Rulings.Epsilon)
	setFloat(&cfg.TieEpsilon, f.TieEpsilon)
	if f.Columns.MergeWords != nil {
		cfg.MergeWords = *f.Columns.MergeWords
	}

	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}

	if f.Rulings.RasterWidth != nil {
		if *f.Rulings.RasterWidth <= 0 {
			return Settings{}, fmt.Errorf("rulings.raster_width must be positive, got %d", *f.Rulings.RasterWidth)
		}
		s.RasterWidth = *f.Rulings.RasterWidth
	}

	if f.Output.Format != "" {
		format, err := export.ParseFormat(f.Output.Format)
		if err != nil {
			return Settings{}, fmt.Errorf("output.format: %w", err)
		}
		s.Format = format
	}

	return s, nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// FileFrom returns a fully populated File describing s.
func FileFrom(s Settings) File {
	c := s.Tables
	return File{
		Rows: Rows{
			GapFactor: &c.RowGapFactor,
			MinGap:    &c.MinRowGap,
		},
		Columns: Columns{
			ProximityFactor:  &c.ColumnProximityFactor,
			CharWidthRatio:   &c.CharWidthRatio,
			DefaultCharWidth: &c.DefaultCharWidth,
			MergeWords:       &c.MergeWords,
			WordGapFactor:    &c.WordGapFactor,
		},
		Rulings: Rulings{
			Epsilon:     &c.RulingEpsilon,
			RasterWidth: &s.RasterWidth,
		},
		TieEpsilon: &c.TieEpsilon,
		Output:     Output{Format: s.Format.String()},
	}
}

// Write encodes s as YAML.
func Write(w io.Writer, s Settings) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FileFrom(s)); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
