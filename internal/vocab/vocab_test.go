package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ifrs-tools/restate/internal/model"
)

func TestDefault_IsValid(t *testing.T) {
	v := Default()
	if err := v.validate(); err != nil {
		t.Fatalf("built-in vocabulary is invalid: %v", err)
	}
	if len(v.Items) == 0 {
		t.Fatal("built-in vocabulary is empty")
	}
	if v.Version == "" {
		t.Fatal("built-in vocabulary has no version")
	}
}

func TestDefault_AbbreviationsResolve(t *testing.T) {
	v := Default()
	for abbr, target := range v.Abbreviations {
		if _, ok := v.Item(target); !ok {
			t.Errorf("abbreviation %q points to unknown canonical name %q", abbr, target)
		}
	}
}

func TestVocabulary_Order(t *testing.T) {
	v := Default()
	if v.Order(v.Items[0].Name) != 0 {
		t.Errorf("first declared item should have order 0")
	}
	// Unknown names sort after every declared item.
	if got := v.Order("No Such Line"); got != len(v.Items) {
		t.Errorf("Order(unknown) = %d, want %d", got, len(v.Items))
	}
}

func TestLineItem_Override(t *testing.T) {
	item := LineItem{
		Name:            "Interest income",
		DefaultCategory: model.CategoryInvesting,
		EntityOverrides: map[model.EntityProfile]string{
			model.ProfileFinancing: string(model.CategoryOperating),
			model.ProfileInvesting: OverrideNotApplicable,
		},
	}

	if c, ok := item.Override(model.ProfileFinancing); !ok || c != model.CategoryOperating {
		t.Errorf("Override(financing) = %v/%v, want operating/true", c, ok)
	}
	if _, ok := item.Override(model.ProfileInvesting); ok {
		t.Error("n/a override must fall through to the default")
	}
	if _, ok := item.Override(model.ProfileOther); ok {
		t.Error("missing override must fall through to the default")
	}
}

func TestLoad(t *testing.T) {
	content := `version: "test.1"
items:
  - name: Revenue
    category: operating
  - name: Interest expense
    category: financing
    entity_overrides:
      financing: operating
abbreviations:
  rev: Revenue
exclusion_keywords:
  - total
`
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	v, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v.Version != "test.1" {
		t.Errorf("version = %q, want test.1", v.Version)
	}
	if len(v.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(v.Items))
	}
	item, ok := v.Item("Interest expense")
	if !ok {
		t.Fatal("Interest expense not indexed")
	}
	if c, ok := item.Override(model.ProfileFinancing); !ok || c != model.CategoryOperating {
		t.Errorf("override = %v/%v, want operating/true", c, ok)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty items", "version: x\nitems: []\n"},
		{"duplicate name", "items:\n  - name: Revenue\n    category: operating\n  - name: Revenue\n    category: operating\n"},
		{"bad category", "items:\n  - name: Revenue\n    category: wages\n"},
		{"bad override profile", "items:\n  - name: Revenue\n    category: operating\n    entity_overrides:\n      bank: operating\n"},
		{"dangling abbreviation", "items:\n  - name: Revenue\n    category: operating\nabbreviations:\n  cogs: Cost of sales\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "vocab.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
