package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/tabextract/source"
)

const testDocument = `{
  "pages": [
    {
      "number": 1,
      "width": 1024,
      "height": 792,
      "tokens": [
        {"text": "Name", "left": 0, "top": 0, "right": 40, "bottom": 10},
        {"text": "Age", "left": 100, "top": 0, "right": 130, "bottom": 10},
        {"text": "Bob", "left": 0, "top": 15, "right": 30, "bottom": 25},
        {"text": "30", "left": 100, "top": 15, "right": 125, "bottom": 25}
      ],
      "rulings": [
        {"orientation": "horizontal", "position": 12, "start": 0, "end": 130},
        {"orientation": "vertical", "position": 60, "start": 0, "end": 25}
      ]
    },
    {
      "number": 2,
      "tokens": [
        {"text": "Total", "left": 0, "top": 0, "right": 30, "bottom": 10},
        {"text": "9", "left": 80, "top": 0, "right": 85, "bottom": 10}
      ]
    }
  ]
}`

// run executes the CLI and returns what it wrote to stdout
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"tabextract", "--quiet"}, args...))
	return stdout.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestExtract(t *testing.T) {
	doc := writeFile(t, "tokens.json", testDocument)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"csv", []string{"extract", "--format", "csv", doc}, "Name,Age\nBob,30\n"},
		{"tsv with tokens flag", []string{"extract", "--tokens", doc, "-f", "tsv"}, "Name\tAge\nBob\t30\n"},
		{"json default", []string{"extract", doc}, `[["Name","Age"],["Bob","30"]]` + "\n"},
		{"region", []string{"extract", "-f", "csv", "--x1", "0", "--y1", "0", "--x2", "50", "--y2", "30", doc}, "Name\nBob\n"},
		{"use lines", []string{"extract", "-f", "csv", "--use-lines", doc}, "Name,Age\nBob,30\n"},
		{"two pages", []string{"extract", "-f", "csv", "-p", "1", "-p", "2", doc}, "Name,Age\nBob,30\n\nTotal,9\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("run() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtract_OutputFile(t *testing.T) {
	doc := writeFile(t, "tokens.json", testDocument)
	dir := t.TempDir()
	out := filepath.Join(dir, "table.md")
	debug := filepath.Join(dir, "overlay.png")

	if _, err := run(t, "extract", "--output", out, "--debug-png", debug, doc); err != nil {
		t.Fatalf("run() failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "| Name | Age |") {
		t.Errorf("output = %q, want a markdown table", data)
	}

	f, err := os.Open(debug)
	if err != nil {
		t.Fatalf("debug png missing: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("debug png does not decode: %v", err)
	}
}

func TestExtract_RasterRulings(t *testing.T) {
	doc := writeFile(t, "tokens.json", testDocument)
	// page 1 is 1024 wide, so a 2048 pixel raster halves every coordinate
	rulings := writeFile(t, "rulings.json", `[
		{"orientation": "h", "position": 24, "start": 0, "end": 260},
		{"orientation": "v", "position": 120, "start": 0, "end": 50}
	]`)

	got, err := run(t, "extract", "-f", "csv", "--rulings", rulings, doc)
	if err != nil {
		t.Fatalf("run() failed: %v", err)
	}
	if want := "Name,Age\nBob,30\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	// page 2 has no width to scale against
	if _, err := run(t, "extract", "--rulings", rulings, "-p", "2", doc); err == nil {
		t.Error("run() succeeded without a page width")
	}

	bad := writeFile(t, "bad.json", `[{"orientation": "h", "position": 5, "start": 10, "end": 0}]`)
	if _, err := run(t, "extract", "--rulings", bad, doc); !errors.Is(err, source.ErrMalformedRuling) {
		t.Errorf("run() error = %v, want ErrMalformedRuling", err)
	}
}

func TestExtract_DumpedPage(t *testing.T) {
	// "tokens --page 3" writes a document holding only page 3
	doc := writeFile(t, "page3.json", `{"pages": [{"number": 3, "tokens": [
		{"text": "Qty", "left": 0, "top": 0, "right": 20, "bottom": 10},
		{"text": "Price", "left": 22, "top": 0, "right": 45, "bottom": 10},
		{"text": "3", "left": 0, "top": 15, "right": 20, "bottom": 25},
		{"text": "9.99", "left": 22, "top": 15, "right": 45, "bottom": 25}
	]}]}`)

	got, err := run(t, "extract", "-f", "csv", "-p", "3", doc)
	if err != nil {
		t.Fatalf("run() failed: %v", err)
	}
	if want := "Qty,Price\n3,9.99\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	if _, err := run(t, "extract", doc); !errors.Is(err, source.ErrPageOutOfRange) {
		t.Errorf("run() page 1 error = %v, want ErrPageOutOfRange", err)
	}
}

func TestExtract_Errors(t *testing.T) {
	doc := writeFile(t, "tokens.json", testDocument)

	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{"extract"}},
		{"missing file", []string{"extract", filepath.Join(t.TempDir(), "missing.json")}},
		{"unknown format", []string{"extract", "-f", "xml", doc}},
		{"partial region", []string{"extract", "--x1", "0", "--y1", "0", doc}},
		{"page out of range", []string{"extract", "-p", "9", doc}},
		{"xlsx for two pages", []string{"extract", "-f", "xlsx", "-p", "1", "-p", "2", doc}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("run() succeeded, want error")
			}
		})
	}
}

func TestInspect(t *testing.T) {
	doc := writeFile(t, "tokens.json", testDocument)

	got, err := run(t, "inspect", "--use-lines", doc)
	if err != nil {
		t.Fatalf("run() failed: %v", err)
	}

	var reports []pageReport
	if err := yaml.Unmarshal([]byte(got), &reports); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, got)
	}
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	r := reports[0]
	if r.Page != 1 || r.Tokens != 4 || r.Rulings != 2 {
		t.Errorf("report = %+v", r)
	}
	if len(r.Rows) != 2 || len(r.Columns) != 2 {
		t.Errorf("bands = %v rows, %v columns", r.Rows, r.Columns)
	}
	if r.Columns[0].High != 60 {
		t.Errorf("first column ends at %v, want 60", r.Columns[0].High)
	}
	if r.Occupancy != 1 {
		t.Errorf("occupancy = %v, want 1", r.Occupancy)
	}
}

func TestConfigCommand(t *testing.T) {
	cfg := writeFile(t, "tabextract.yaml", "output:\n  format: markdown\n")

	got, err := run(t, "--config", cfg, "config")
	if err != nil {
		t.Fatalf("run() failed: %v", err)
	}
	if !strings.Contains(got, "format: markdown") {
		t.Errorf("config output = %q", got)
	}

	doc := writeFile(t, "tokens.json", testDocument)
	out, err := run(t, "--config", cfg, "extract", doc)
	if err != nil {
		t.Fatalf("run() failed: %v", err)
	}
	if !strings.HasPrefix(out, "| Name | Age |") {
		t.Errorf("extract with config = %q, want markdown", out)
	}
}

func TestTokens_NotPDF(t *testing.T) {
	doc := writeFile(t, "tokens.json", testDocument)
	if _, err := run(t, "tokens", doc); err == nil {
		t.Error("tokens accepted a non-PDF input")
	}
}

func TestDebugPath(t *testing.T) {
	tests := []struct {
		path  string
		page  int
		multi bool
		want  string
	}{
		{"out.png", 3, false, "out.png"},
		{"out.png", 3, true, "out-p3.png"},
		{"dir/overlay", 1, true, "dir/overlay-p1"},
	}
	for _, tt := range tests {
		if got := debugPath(tt.path, tt.page, tt.multi); got != tt.want {
			t.Errorf("debugPath(%q, %d, %v) = %q, want %q", tt.path, tt.page, tt.multi, got, tt.want)
		}
	}
}
