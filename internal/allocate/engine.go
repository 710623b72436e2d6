// Package allocate redistributes an amount posted to one canonical line
// across one or more child canonical lines while preserving the total.
package allocate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ifrs-tools/restate/internal/model"
)

// Result holds the outcome of allocating one parent line.
type Result struct {
	// Residual is what remains on the parent per period. Never clamped: a
	// negative residual (over-allocation) may be a data-entry error or a
	// valid restatement, and the engine cannot tell which.
	Residual map[string]decimal.Decimal
	// PerChild accumulates the amounts attributed to each child canonical
	// line across all splits targeting it.
	PerChild map[string]map[string]decimal.Decimal
	// Warnings surfaces imbalances per period. They never block report
	// generation; an incomplete allocation is a valid statement row.
	Warnings []model.Warning
}

// Engine computes allocations over a fixed period set.
type Engine struct {
	periods []string
}

// NewEngine creates an allocation engine for the statement's periods.
func NewEngine(periods []string) *Engine {
	return &Engine{periods: periods}
}

// Allocate splits a parent line's per-period amounts across the given
// splits: residual[p] = parent[p] - Σ split.Amounts[p].
func (e *Engine) Allocate(parent string, parentAmounts map[string]decimal.Decimal, splits []model.AllocationSplit) Result {
	res := Result{
		Residual: make(map[string]decimal.Decimal, len(e.periods)),
		PerChild: make(map[string]map[string]decimal.Decimal),
	}

	for _, period := range e.periods {
		allocated := decimal.Zero
		for _, split := range splits {
			amt := split.Amounts[period]
			allocated = allocated.Add(amt)

			child := res.PerChild[split.Child]
			if child == nil {
				child = make(map[string]decimal.Decimal, len(e.periods))
				res.PerChild[split.Child] = child
			}
			child[period] = child[period].Add(amt)
		}

		total := parentAmounts[period]
		residual := total.Sub(allocated)
		res.Residual[period] = residual

		if residual.IsZero() || len(splits) == 0 {
			continue
		}
		if allocated.Abs().GreaterThan(total.Abs()) {
			res.Warnings = append(res.Warnings, model.Warning{
				Type:        model.WarningOverAllocation,
				Severity:    model.SeverityWarning,
				Description: fmt.Sprintf("%s %s: children sum %s exceeds parent amount %s", parent, period, allocated, total),
				Data: map[string]interface{}{
					"parent":        parent,
					"period":        period,
					"parent_amount": total.String(),
					"allocated":     allocated.String(),
					"residual":      residual.String(),
				},
			})
		} else {
			res.Warnings = append(res.Warnings, model.Warning{
				Type:        model.WarningUnallocatedResidual,
				Severity:    model.SeverityInfo,
				Description: fmt.Sprintf("%s %s: unallocated remainder %s stays on the parent line", parent, period, residual),
				Data: map[string]interface{}{
					"parent":   parent,
					"period":   period,
					"residual": residual.String(),
				},
			})
		}
	}

	return res
}

// HasResidual reports whether any period carries a non-zero residual.
func (r Result) HasResidual() bool {
	for _, v := range r.Residual {
		if !v.IsZero() {
			return true
		}
	}
	return false
}
