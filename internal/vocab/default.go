package vocab

import "github.com/ifrs-tools/restate/internal/model"

// DefaultVersion identifies the built-in vocabulary revision. Bumped
// whenever the table below changes; the matcher keys its memoization on it.
const DefaultVersion = "2025.1"

// Default returns the built-in IFRS 18 vocabulary.
//
// Entity overrides follow the IFRS 18 business-model rules: entities that
// provide financing to customers present financing income and expenses as
// operating; entities that invest in financial assets present investment
// returns as operating. Policy-dependent lines defer to an explicit
// accounting-policy choice made once per session.
func Default() *Vocabulary {
	v := &Vocabulary{
		Version: DefaultVersion,
		Items: []LineItem{
			{Name: "Revenue", DefaultCategory: model.CategoryOperating},
			{Name: "Cost of sales", DefaultCategory: model.CategoryOperating},
			{Name: "Cost Of Goods", DefaultCategory: model.CategoryOperating},
			{Name: "General and administrative expenses", DefaultCategory: model.CategoryOperating},
			{Name: "Selling and distribution expenses", DefaultCategory: model.CategoryOperating},
			{Name: "Research and development", DefaultCategory: model.CategoryOperating},
			{Name: "Employee benefits expense", DefaultCategory: model.CategoryOperating},
			{Name: "Depreciation and amortisation", DefaultCategory: model.CategoryOperating},
			{Name: "Impairment of goodwill", DefaultCategory: model.CategoryOperating},
			{Name: "Write-downs of inventories", DefaultCategory: model.CategoryOperating},
			{Name: "Other operating income", DefaultCategory: model.CategoryOperating},
			{
				Name:            "Interest income",
				DefaultCategory: model.CategoryInvesting,
				EntityOverrides: map[model.EntityProfile]string{
					model.ProfileFinancing: string(model.CategoryOperating),
				},
			},
			{
				Name:            "Dividend income",
				DefaultCategory: model.CategoryInvesting,
				EntityOverrides: map[model.EntityProfile]string{
					model.ProfileInvesting: string(model.CategoryOperating),
				},
			},
			{
				Name:            "Share of profit of associates and joint ventures",
				DefaultCategory: model.CategoryInvesting,
				EntityOverrides: map[model.EntityProfile]string{
					model.ProfileInvesting: string(model.CategoryOperating),
				},
			},
			{
				Name:            "Gains and losses on disposal of property, plant and equipment",
				DefaultCategory: model.CategoryInvesting,
			},
			{
				Name:            "Fair value gains and losses on investments",
				DefaultCategory: model.CategoryInvesting,
				EntityOverrides: map[model.EntityProfile]string{
					model.ProfileInvesting: string(model.CategoryOperating),
				},
			},
			{
				Name:            "Income and expenses from cash and cash equivalents",
				DefaultCategory: model.CategoryInvesting,
				PolicyDependent: true,
				EntityOverrides: map[model.EntityProfile]string{
					model.ProfileFinancing: OverrideNotApplicable,
				},
			},
			{
				Name:            "Interest expense",
				DefaultCategory: model.CategoryFinancing,
				EntityOverrides: map[model.EntityProfile]string{
					model.ProfileFinancing: string(model.CategoryOperating),
				},
			},
			{Name: "Interest on lease liabilities", DefaultCategory: model.CategoryFinancing},
			{Name: "Bank charges", DefaultCategory: model.CategoryFinancing},
			{
				Name:            "Foreign exchange differences",
				DefaultCategory: model.CategoryOperating,
				PolicyDependent: true,
			},
			{Name: "Income tax expense", DefaultCategory: model.CategoryIncomeTax},
			{Name: "Profit from discontinued operations", DefaultCategory: model.CategoryDiscontinued},
		},
		Abbreviations: map[string]string{
			"r&d":  "Research and development",
			"g&a":  "General and administrative expenses",
			"sg&a": "General and administrative expenses",
			"cogs": "Cost Of Goods",
			"cos":  "Cost of sales",
			"d&a":  "Depreciation and amortisation",
			"fx":   "Foreign exchange differences",
			"jv":   "Share of profit of associates and joint ventures",
		},
		ExclusionKeywords: []string{
			"total",
			"subtotal",
			"gross profit",
			"gross margin",
			"operating profit",
			"operating loss",
			"net income",
			"net profit",
			"net loss",
			"profit before tax",
			"profit for the year",
			"profit for the period",
			"ebitda",
			"ebit",
		},
	}
	v.buildIndex()
	return v
}
