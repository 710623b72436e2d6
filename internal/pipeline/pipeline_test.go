package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ifrs-tools/restate/internal/model"
)

func writeStatement(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := NewPipeline(model.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPipeline_Process(t *testing.T) {
	p := newTestPipeline(t)
	path := writeStatement(t,
		"Line Item,2023,2024\n"+
			"Revenue,\"5,000\",\"6,000\"\n"+
			"R&D Expense,(400),(450)\n"+
			"Total expenses,(400),(450)\n")

	rep, err := p.Process(context.Background(), path, Inputs{})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if rep.ID == "" {
		t.Error("report has no ID")
	}
	if rep.GeneratedAt.IsZero() {
		t.Error("report has no timestamp")
	}
	if rep.SourceFile != path {
		t.Errorf("SourceFile = %q, want %q", rep.SourceFile, path)
	}
	if len(rep.Mappings) != 3 {
		t.Fatalf("mappings = %d, want 3", len(rep.Mappings))
	}

	// The abbreviation rule resolves "R&D Expense" at full confidence.
	if rep.Mappings[1].Canonical != "Research and development" || rep.Mappings[1].Confidence != 100 {
		t.Errorf("mapping[1] = %+v", rep.Mappings[1])
	}
	// The pre-computed total is recognized and kept out of aggregation.
	if !rep.Mappings[2].Subtotal {
		t.Error("Total expenses was not flagged as a subtotal")
	}
	if len(rep.Excluded) != 1 {
		t.Errorf("excluded = %d, want 1", len(rep.Excluded))
	}

	if got := rep.GrandTotal["2023"]; !got.Equal(decimal.RequireFromString("4600")) {
		t.Errorf("grand total 2023 = %s, want 4600", got)
	}
	if got := rep.GrandTotal["2024"]; !got.Equal(decimal.RequireFromString("5550")) {
		t.Errorf("grand total 2024 = %s, want 5550", got)
	}
}

func TestPipeline_OverridesAreAuthoritative(t *testing.T) {
	p := newTestPipeline(t)
	st := model.Statement{
		Periods: []string{"2023"},
		Lines: []model.SourceLine{
			{Label: "Misc Admin Charges", Amounts: map[string]decimal.Decimal{
				"2023": decimal.RequireFromString("-120"),
			}},
		},
	}
	in := Inputs{
		Overrides: map[string]string{
			"misc admin charges": "General and administrative expenses",
		},
	}

	rep, err := p.ProcessStatement(context.Background(), st, in)
	if err != nil {
		t.Fatalf("ProcessStatement: %v", err)
	}

	mp := rep.Mappings[0]
	if !mp.Overridden || mp.Confidence != 100 || mp.Canonical != "General and administrative expenses" {
		t.Errorf("mapping = %+v, want authoritative override at 100", mp)
	}
	// Overridden rows never trigger review warnings.
	for _, w := range rep.Warnings {
		if w.Type == model.WarningLowConfidence {
			t.Errorf("unexpected low-confidence warning: %s", w.Description)
		}
	}
}

func TestPipeline_OverrideBeatsSubtotalDetection(t *testing.T) {
	p := newTestPipeline(t)
	st := model.Statement{
		Periods: []string{"2023"},
		Lines: []model.SourceLine{
			{Label: "Total shareholder returns", Amounts: map[string]decimal.Decimal{
				"2023": decimal.RequireFromString("90"),
			}},
		},
	}
	in := Inputs{
		Overrides: map[string]string{
			"total shareholder returns": "Dividend income",
		},
	}

	rep, err := p.ProcessStatement(context.Background(), st, in)
	if err != nil {
		t.Fatalf("ProcessStatement: %v", err)
	}
	mp := rep.Mappings[0]
	if mp.Subtotal {
		t.Error("override must clear the subtotal flag")
	}
	if mp.Canonical != "Dividend income" {
		t.Errorf("canonical = %q, want Dividend income", mp.Canonical)
	}
	if len(rep.Excluded) != 0 {
		t.Errorf("excluded = %d, want 0", len(rep.Excluded))
	}
}

func TestPipeline_LowConfidenceWarningCarriesSuggestions(t *testing.T) {
	p := newTestPipeline(t)
	st := model.Statement{
		Periods: []string{"2023"},
		Lines: []model.SourceLine{
			{Label: "zzqx miscellaneous item", Amounts: map[string]decimal.Decimal{
				"2023": decimal.RequireFromString("-5"),
			}},
		},
	}

	rep, err := p.ProcessStatement(context.Background(), st, Inputs{})
	if err != nil {
		t.Fatalf("ProcessStatement: %v", err)
	}

	var warning *model.Warning
	for i := range rep.Warnings {
		if rep.Warnings[i].Type == model.WarningLowConfidence {
			warning = &rep.Warnings[i]
		}
	}
	if warning == nil {
		t.Fatal("expected a low-confidence warning for a nonsense label")
	}
	suggestions, ok := warning.Data["suggestions"].([]string)
	if !ok || len(suggestions) == 0 {
		t.Errorf("warning carries no suggestions: %v", warning.Data)
	}
}

func TestPipeline_PolicyChoiceRoutesCategory(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Profile = string(model.ProfileFinancing)
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatal(err)
	}

	st := model.Statement{
		Periods: []string{"2023"},
		Lines: []model.SourceLine{
			{Label: "Income and expenses from cash and cash equivalents", Amounts: map[string]decimal.Decimal{
				"2023": decimal.RequireFromString("40"),
			}},
		},
	}
	in := Inputs{
		Policies: []model.PolicyChoice{
			{Line: "Income and expenses from cash and cash equivalents", Category: model.CategoryFinancing},
		},
	}

	rep, err := p.ProcessStatement(context.Background(), st, in)
	if err != nil {
		t.Fatalf("ProcessStatement: %v", err)
	}
	if len(rep.Sections) != 1 || rep.Sections[0].Category != model.CategoryFinancing {
		t.Errorf("sections = %+v, want a single financing section", rep.Sections)
	}
}

func TestPipeline_CancelledContext(t *testing.T) {
	p := newTestPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.ProcessStatement(ctx, model.Statement{}, Inputs{}); err == nil {
		t.Error("expected a context error")
	}
}

func TestNewPipeline_BadProfile(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Profile = "bank"
	if _, err := NewPipeline(cfg); err == nil {
		t.Error("expected an error for an unknown profile")
	}
}
