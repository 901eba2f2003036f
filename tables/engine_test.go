package tables

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/tsawler/tabextract/model"
)

func ledgerTokens() []model.TextToken {
	return []model.TextToken{
		tok("Item", 0, 0, 30, 10),
		tok("Qty", 100, 0, 120, 10),
		tok("Price", 160, 0, 190, 10),
		tok("Widget", 2, 15, 40, 25),
		tok("3", 104, 15, 110, 25),
		tok("9.99", 161, 15, 185, 25),
		tok("Gadget", 0, 30, 38, 40),
		tok("12", 103, 31, 115, 41),
		tok("1,200.00", 150, 30, 195, 40),
		tok("Total", 0, 50, 30, 60),
		tok("1,209.99", 150, 50, 195, 60),
	}
}

func assertTexts(t *testing.T, table *model.Table, want [][]string) {
	t.Helper()
	got := table.Texts()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Texts() = %q, want %q", got, want)
	}
}

func TestReconstruct_ScenarioInferred(t *testing.T) {
	table, err := Reconstruct(scenarioTokens(), Infer(), Infer(), DefaultConfig())
	if err != nil {
		t.Fatalf("Reconstruct() failed: %v", err)
	}
	assertTexts(t, table, [][]string{{"Name", "Age"}, {"Bob", "30"}})
}

func TestReconstruct_ScenarioRuled(t *testing.T) {
	rulings := append(hRulings(12, 26), vRulings(-5, 60, 150)...)
	lines := UseRulings(rulings)

	table, err := Reconstruct(scenarioTokens(), lines, lines, DefaultConfig())
	if err != nil {
		t.Fatalf("Reconstruct() failed: %v", err)
	}
	assertTexts(t, table, [][]string{{"Name", "Age"}, {"Bob", "30"}})
}

func TestReconstruct_Empty(t *testing.T) {
	table, err := Reconstruct(nil, Infer(), Infer(), DefaultConfig())
	if err != nil {
		t.Fatalf("Reconstruct() failed: %v", err)
	}
	if table.RowCount() != 0 {
		t.Errorf("RowCount() = %d, want 0", table.RowCount())
	}

	table, err = Reconstruct(nil, UseRulings(hRulings(1, 2)), UseRulings(vRulings(1, 2)), DefaultConfig())
	if err != nil {
		t.Fatalf("Reconstruct() with rulings failed: %v", err)
	}
	if table.RowCount() != 0 {
		t.Errorf("RowCount() with rulings = %d, want 0", table.RowCount())
	}
}

func TestReconstruct_Ledger(t *testing.T) {
	table, err := Reconstruct(ledgerTokens(), Infer(), Infer(), DefaultConfig())
	if err != nil {
		t.Fatalf("Reconstruct() failed: %v", err)
	}
	assertTexts(t, table, [][]string{
		{"Item", "Qty", "Price"},
		{"Widget", "3", "9.99"},
		{"Gadget", "12", "1,200.00"},
		{"Total", "", "1,209.99"},
	})
}

func TestReconstruct_ReadingOrderWithinCell(t *testing.T) {
	tokens := []model.TextToken{
		{Text: "$50", Left: 40, Top: 0, Right: 55, Bottom: 10, FontSize: 10},
		{Text: "Total", Left: 10, Top: 0, Right: 35, Bottom: 10, FontSize: 10},
	}
	// a column ruled from 0 to 100 holds both tokens
	table, err := Reconstruct(tokens, Infer(), UseRulings(vRulings(0, 100)), DefaultConfig())
	if err != nil {
		t.Fatalf("Reconstruct() failed: %v", err)
	}
	assertTexts(t, table, [][]string{{"Total $50"}})

	// inferred columns keep the phrase together only with MergeWords
	cfg := DefaultConfig()
	cfg.MergeWords = true
	table, err = Reconstruct(tokens, Infer(), Infer(), cfg)
	if err != nil {
		t.Fatalf("Reconstruct() failed: %v", err)
	}
	assertTexts(t, table, [][]string{{"Total $50"}})

	table, err = Reconstruct(tokens, Infer(), Infer(), DefaultConfig())
	if err != nil {
		t.Fatalf("Reconstruct() failed: %v", err)
	}
	assertTexts(t, table, [][]string{{"Total", "$50"}})
}

func TestReconstruct_Idempotent(t *testing.T) {
	tokens := ledgerTokens()
	first, err := Reconstruct(tokens, Infer(), Infer(), DefaultConfig())
	if err != nil {
		t.Fatalf("Reconstruct() failed: %v", err)
	}
	second, err := Reconstruct(tokens, Infer(), Infer(), DefaultConfig())
	if err != nil {
		t.Fatalf("Reconstruct() failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over identical input produced different tables")
	}
}

func TestReconstruct_DoesNotModifyInput(t *testing.T) {
	tokens := ledgerTokens()
	snapshot := ledgerTokens()
	if _, err := Reconstruct(tokens, Infer(), Infer(), DefaultConfig()); err != nil {
		t.Fatalf("Reconstruct() failed: %v", err)
	}
	if !reflect.DeepEqual(tokens, snapshot) {
		t.Error("Reconstruct() modified its input tokens")
	}
}

func TestReconstruct_Invariants(t *testing.T) {
	ragged := []model.TextToken{
		tok("a", 0, 0, 10, 10),
		tok("b", 37, 3, 60, 12),
		tok("c", 5, 18, 22, 27),
		tok("d", 90, 19, 99, 31),
		tok("e", 61, 40, 80, 47),
		tok("f", 200, -5, 210, 2),
		tok("g", 14, 100, 14, 100),
	}
	strategies := map[string][2]Strategy{
		"inferred": {Infer(), Infer()},
		"ruled":    {UseRulings(hRulings(20, 50)), UseRulings(vRulings(30, 100))},
		"mixed":    {UseRulings(hRulings(15)), Infer()},
	}

	for name, s := range strategies {
		t.Run(name, func(t *testing.T) {
			table, err := Reconstruct(ragged, s[0], s[1], DefaultConfig())
			if err != nil {
				t.Fatalf("Reconstruct() failed: %v", err)
			}
			if table.TokenCount() != len(ragged) {
				t.Errorf("TokenCount() = %d, want %d", table.TokenCount(), len(ragged))
			}
			cols := table.ColCount()
			for i, row := range table.Rows {
				if len(row) != cols {
					t.Errorf("row %d has %d cells, want %d", i, len(row), cols)
				}
			}
		})
	}
}

func TestReconstruct_RulingPrecedence(t *testing.T) {
	tokens := scenarioTokens()
	rows := hRulings(0, 12, 26)
	cols := vRulings(0, 60, 150)

	table, err := Reconstruct(tokens, UseRulings(rows), UseRulings(cols), DefaultConfig())
	if err != nil {
		t.Fatalf("Reconstruct() failed: %v", err)
	}
	assertBands(t, table.RowBands, [][2]float64{{0, 12}, {12, 26}})
	assertBands(t, table.ColBands, [][2]float64{{0, 60}, {60, 150}})
	if !table.IsRuled() {
		t.Error("IsRuled() = false, want true")
	}
}

func TestReconstruct_InvalidInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RowGapFactor = -1
	if _, err := Reconstruct(scenarioTokens(), Infer(), Infer(), cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}

	bad := append(scenarioTokens(), tok("bad", 10, 0, 0, 10))
	if _, err := Reconstruct(bad, Infer(), Infer(), DefaultConfig()); !errors.Is(err, model.ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative min row gap", func(c *Config) { c.MinRowGap = -0.1 }},
		{"nan tie epsilon", func(c *Config) { c.TieEpsilon = math.NaN() }},
		{"infinite char width", func(c *Config) { c.DefaultCharWidth = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestEngine(t *testing.T) {
	e := NewEngine()
	if e.Config() != DefaultConfig() {
		t.Error("NewEngine() should use DefaultConfig()")
	}

	cfg := DefaultConfig()
	cfg.MergeWords = true
	if err := e.Configure(cfg); err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}
	if !e.Config().MergeWords {
		t.Error("Configure() did not apply MergeWords")
	}

	cfg.RulingEpsilon = -1
	if err := e.Configure(cfg); err == nil {
		t.Error("Configure() accepted an invalid config")
	}
	if e.Config().RulingEpsilon != 1.0 {
		t.Error("failed Configure() must keep the previous config")
	}

	table, err := e.Reconstruct(scenarioTokens(), Infer(), Infer())
	if err != nil {
		t.Fatalf("Reconstruct() failed: %v", err)
	}
	assertTexts(t, table, [][]string{{"Name", "Age"}, {"Bob", "30"}})
}

func TestStrategyKindString(t *testing.T) {
	if Infer().Kind.String() != "inferred" || UseRulings(nil).Kind.String() != "ruled" {
		t.Error("unexpected StrategyKind strings")
	}
}
