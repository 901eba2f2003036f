package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/tabextract/export"
	"github.com/tsawler/tabextract/tables"
)

func TestParse_Empty(t *testing.T) {
	for _, data := range []string{"", "{}"} {
		got, err := Parse([]byte(data))
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", data, err)
		}
		if got != Default() {
			t.Errorf("Parse(%q) = %+v, want defaults", data, got)
		}
	}
}

func TestParse_Overrides(t *testing.T) {
	data := `
rows:
  gap_factor: 0.8
columns:
  merge_words: true
  default_char_width: 4
rulings:
  epsilon: 2
  raster_width: 1024
tie_epsilon: 0
output:
  format: csv
`
	got, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	want := tables.DefaultConfig()
	want.RowGapFactor = 0.8
	want.MergeWords = true
	want.DefaultCharWidth = 4
	want.RulingEpsilon = 2
	want.TieEpsilon = 0
	if got.Tables != want {
		t.Errorf("Tables = %+v, want %+v", got.Tables, want)
	}
	if got.RasterWidth != 1024 {
		t.Errorf("RasterWidth = %d, want 1024", got.RasterWidth)
	}
	if got.Format != export.CSV {
		t.Errorf("Format = %v, want csv", got.Format)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		target error
	}{
		{"negative factor", "rows:\n  gap_factor: -1\n", tables.ErrInvalidConfig},
		{"unknown format", "output:\n  format: xml\n", export.ErrUnknownFormat},
		{"unknown key", "rows:\n  gap: 1\n", nil},
		{"wrong type", "columns:\n  merge_words: maybe\n", nil},
		{"zero raster width", "rulings:\n  raster_width: 0\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() succeeded, want error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("Parse() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestWriteAndParse(t *testing.T) {
	s := Default()
	s.Tables.ColumnProximityFactor = 2.5
	s.Tables.MergeWords = true
	s.Format = export.Markdown

	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	got, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse() failed: %v\n%s", err, buf.String())
	}
	if got != s {
		t.Errorf("round trip = %+v, want %+v", got, s)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabextract.yaml")
	if err := os.WriteFile(path, []byte("columns:\n  proximity_factor: 4\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got.Tables.ColumnProximityFactor != 4 {
		t.Errorf("ColumnProximityFactor = %v, want 4", got.Tables.ColumnProximityFactor)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}
