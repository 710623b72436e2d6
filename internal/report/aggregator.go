// Package report builds the final categorized statement: line rows grouped
// into IFRS 18 category sections with subtotals and a grand total.
package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ifrs-tools/restate/internal/allocate"
	"github.com/ifrs-tools/restate/internal/classify"
	"github.com/ifrs-tools/restate/internal/model"
	"github.com/ifrs-tools/restate/internal/vocab"
)

// Aggregator merges standard mappings and allocation results into one
// ordered, totaled table. Pure over its inputs: the same mappings, splits
// and session choices always produce an identical report.
type Aggregator struct {
	vocab    *vocab.Vocabulary
	resolver *classify.Resolver
	order    []model.Category
	exclude  map[model.Category]bool
}

// NewAggregator creates an aggregator for one session. Categories missing
// from the configured order are appended in the default sequence, so a
// partial user config can reorder sections but never drop rows.
func NewAggregator(v *vocab.Vocabulary, resolver *classify.Resolver, cfg model.ReportConfig) *Aggregator {
	exclude := make(map[model.Category]bool, len(cfg.ExcludeFromGrandTotal))
	for _, c := range cfg.ExcludeFromGrandTotal {
		exclude[c] = true
	}

	order := make([]model.Category, 0, len(model.Categories))
	listed := make(map[model.Category]bool, len(cfg.CategoryOrder))
	for _, c := range cfg.CategoryOrder {
		if !listed[c] {
			listed[c] = true
			order = append(order, c)
		}
	}
	for _, c := range model.Categories {
		if !listed[c] {
			listed[c] = true
			order = append(order, c)
		}
	}

	return &Aggregator{
		vocab:    v,
		resolver: resolver,
		order:    order,
		exclude:  exclude,
	}
}

// Build produces the categorized statement from matched mappings and
// user-declared allocation splits.
func (a *Aggregator) Build(st model.Statement, mappings []model.Mapping, splits []model.AllocationSplit) *model.Report {
	rep := &model.Report{
		Profile: a.resolver.Profile(),
		Periods: st.Periods,
	}

	// Accumulate mapped amounts per canonical name, keeping first-seen
	// order so diagnostics come out deterministically.
	mapped := make(map[string]map[string]decimal.Decimal)
	var mappedOrder []string
	for _, mp := range mappings {
		if mp.Subtotal {
			rep.Excluded = append(rep.Excluded, model.ExcludedRow{
				Label:   mp.Source.Label,
				Amounts: mp.Source.Amounts,
			})
			continue
		}
		if mp.Canonical == "" {
			continue
		}
		if _, ok := mapped[mp.Canonical]; !ok {
			mapped[mp.Canonical] = make(map[string]decimal.Decimal, len(st.Periods))
			mappedOrder = append(mappedOrder, mp.Canonical)
		}
		addAmounts(mapped[mp.Canonical], mp.Source.Amounts, st.Periods)
	}

	splitsByParent := make(map[string][]model.AllocationSplit)
	for _, sp := range splits {
		splitsByParent[sp.Parent] = append(splitsByParent[sp.Parent], sp)
	}
	for parent := range splitsByParent {
		if _, ok := mapped[parent]; !ok {
			rep.Warnings = append(rep.Warnings, model.Warning{
				Type:        model.WarningUnknownParent,
				Severity:    model.SeverityWarning,
				Description: fmt.Sprintf("allocation parent %q has no mapped amounts; its splits were ignored", parent),
				Data:        map[string]interface{}{"parent": parent},
			})
		}
	}

	// Redistribute flagged parents, accumulate everything else as-is.
	engine := allocate.NewEngine(st.Periods)
	final := make(map[string]map[string]decimal.Decimal)
	var finalOrder []string
	add := func(name string, amounts map[string]decimal.Decimal) {
		if _, ok := final[name]; !ok {
			final[name] = make(map[string]decimal.Decimal, len(st.Periods))
			finalOrder = append(finalOrder, name)
		}
		addAmounts(final[name], amounts, st.Periods)
	}
	for _, name := range mappedOrder {
		parentSplits, flagged := splitsByParent[name]
		if !flagged {
			add(name, mapped[name])
			continue
		}
		res := engine.Allocate(name, mapped[name], parentSplits)
		if res.HasResidual() {
			add(name, res.Residual)
		}
		for _, child := range childOrder(parentSplits) {
			add(child, res.PerChild[child])
		}
		rep.Warnings = append(rep.Warnings, res.Warnings...)
	}

	// Resolve categories and group into sections.
	byCategory := make(map[model.Category][]model.ResultRow)
	for _, name := range finalOrder {
		category := a.resolver.Resolve(name)
		if category == model.CategoryUnclassified {
			rep.Warnings = append(rep.Warnings, model.Warning{
				Type:        model.WarningUnclassifiedLine,
				Severity:    model.SeverityInfo,
				Description: fmt.Sprintf("%q resolved to no category; it is shown but excluded from the grand total", name),
				Data:        map[string]interface{}{"line": name},
			})
		}
		byCategory[category] = append(byCategory[category], model.ResultRow{
			Name:     name,
			Category: category,
			Amounts:  final[name],
		})
	}

	rep.GrandTotal = zeroAmounts(st.Periods)
	for _, category := range a.order {
		rows := byCategory[category]
		if len(rows) == 0 {
			continue
		}
		// Presentation order follows the vocabulary declaration, not the
		// insertion order of user edits.
		sort.SliceStable(rows, func(i, j int) bool {
			oi, oj := a.vocab.Order(rows[i].Name), a.vocab.Order(rows[j].Name)
			if oi != oj {
				return oi < oj
			}
			return rows[i].Name < rows[j].Name
		})

		subtotal := zeroAmounts(st.Periods)
		for _, row := range rows {
			addAmounts(subtotal, row.Amounts, st.Periods)
		}
		rep.Sections = append(rep.Sections, model.Section{
			Category: category,
			Rows:     rows,
			Subtotal: subtotal,
		})

		if !a.exclude[category] {
			addAmounts(rep.GrandTotal, subtotal, st.Periods)
		}
	}

	return rep
}

func addAmounts(dst, src map[string]decimal.Decimal, periods []string) {
	for _, p := range periods {
		dst[p] = dst[p].Add(src[p])
	}
}

func zeroAmounts(periods []string) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(periods))
	for _, p := range periods {
		m[p] = decimal.Zero
	}
	return m
}

// childOrder returns the distinct children of a parent's splits in
// declaration order.
func childOrder(splits []model.AllocationSplit) []string {
	var order []string
	seen := make(map[string]bool, len(splits))
	for _, sp := range splits {
		if !seen[sp.Child] {
			seen[sp.Child] = true
			order = append(order, sp.Child)
		}
	}
	return order
}
