// Package normalize cleans raw cell values from uncontrolled source files.
//
// Source statements arrive as CSV or XLSX exports from arbitrary ERP
// systems, so amount cells may carry currency symbols, thousand
// separators, accounting parentheses or placeholder dashes. The policy is
// deliberately permissive: a malformed amount degrades to zero instead of
// failing the whole file.
package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CleanAmount parses a raw cell value into a signed decimal amount.
//
// Rules: whitespace is trimmed; "", "-", "—" and "nan" (any case) mean
// zero; a value fully wrapped in parentheses is negated; every character
// other than digits, '.' and '-' is stripped; whatever remains is parsed
// as a decimal, defaulting to zero on failure. Never returns an error.
func CleanAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "", "-", "—", "nan":
		return decimal.Zero
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	if negative {
		return d.Neg()
	}
	return d
}

// Label lower-cases and trims a line description for matching. Original
// casing is kept on the SourceLine for display.
func Label(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
