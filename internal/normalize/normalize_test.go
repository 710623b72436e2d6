package normalize

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCleanAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain integer", "1000", "1000"},
		{"decimal", "1234.56", "1234.56"},
		{"negative sign", "-500", "-500"},
		{"parentheses negate", "(700)", "-700"},
		{"parentheses with separators", "(1,234.50)", "-1234.5"},
		{"currency symbol stripped", "$1,200", "1200"},
		{"currency code stripped", "EUR 99.10", "99.10"},
		{"whitespace trimmed", "  42  ", "42"},
		{"empty is zero", "", "0"},
		{"dash is zero", "-", "0"},
		{"em dash is zero", "—", "0"},
		{"nan is zero", "NaN", "0"},
		{"garbage degrades to zero", "n/a", "0"},
		{"multiple dots degrade to zero", "1.2.3", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanAmount(tt.raw)
			want := decimal.RequireFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("CleanAmount(%q) = %s, want %s", tt.raw, got, want)
			}
		})
	}
}

func TestCleanAmount_NeverPanics(t *testing.T) {
	// Malformed cells from uncontrolled files must degrade to zero.
	for _, raw := range []string{"(", ")", "()", "--", "...", "(abc)"} {
		got := CleanAmount(raw)
		if !got.IsZero() {
			t.Errorf("CleanAmount(%q) = %s, want 0", raw, got)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := Label("  Cost Of Sales "); got != "cost of sales" {
		t.Errorf("Label = %q, want %q", got, "cost of sales")
	}
	if got := Label("R&D Expense"); got != "r&d expense" {
		t.Errorf("Label = %q, want %q", got, "r&d expense")
	}
}
