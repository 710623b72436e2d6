package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceLine is one row of the uploaded statement: a free-form label and
// one signed amount per reporting period. Immutable once loaded.
type SourceLine struct {
	Label   string                     `json:"label"`
	Amounts map[string]decimal.Decimal `json:"amounts"`
}

// Statement is the materialized input table. Periods preserves the column
// order of the source file; every SourceLine carries one amount per period.
type Statement struct {
	File    string       `json:"file,omitempty"`
	Periods []string     `json:"periods"`
	Lines   []SourceLine `json:"lines"`
}

// Mapping links one source line to a canonical vocabulary entry. Subtotal
// mappings mark pre-computed total rows in the input; they are excluded
// from aggregation. A user override is authoritative: confidence 100,
// never re-scored.
type Mapping struct {
	Source     SourceLine `json:"source"`
	Canonical  string     `json:"canonical,omitempty"`
	Confidence int        `json:"confidence"`
	Subtotal   bool       `json:"subtotal,omitempty"`
	Overridden bool       `json:"overridden,omitempty"`
	Rule       string     `json:"rule,omitempty"` // which matching rule decided (e.g. "abbreviation:r&d")
}

// AllocationSplit redistributes part of a parent canonical line to a child
// canonical line, per period. Declared by the user during the allocation
// phase. Children may receive contributions from multiple parents.
type AllocationSplit struct {
	Parent  string                     `json:"parent" yaml:"parent"`
	Child   string                     `json:"child" yaml:"child"`
	Amounts map[string]decimal.Decimal `json:"amounts" yaml:"amounts"`
}

// ResultRow is one line of the categorized statement: a canonical name,
// its resolved category and per-period amounts. Pure function of the
// mappings, allocations and session choices that produced it.
type ResultRow struct {
	Name     string                     `json:"name"`
	Category Category                   `json:"category"`
	Amounts  map[string]decimal.Decimal `json:"amounts"`
}

// Section groups the result rows of one category with their subtotal.
type Section struct {
	Category Category                   `json:"category"`
	Rows     []ResultRow                `json:"rows"`
	Subtotal map[string]decimal.Decimal `json:"subtotal"`
}

// ExcludedRow records an input row that was recognized as a pre-existing
// subtotal and kept out of aggregation, for transparency.
type ExcludedRow struct {
	Label   string                     `json:"label"`
	Amounts map[string]decimal.Decimal `json:"amounts"`
}

// Report is the complete output of one pipeline run.
type Report struct {
	ID          string        `json:"id"`
	GeneratedAt time.Time     `json:"generated_at"`
	SourceFile  string        `json:"source_file,omitempty"`
	Profile     EntityProfile `json:"profile"`
	Periods     []string      `json:"periods"`

	Mappings []Mapping     `json:"mappings,omitempty"`
	Sections []Section     `json:"sections"`
	Excluded []ExcludedRow `json:"excluded,omitempty"`

	GrandTotal map[string]decimal.Decimal `json:"grand_total"`

	Warnings []Warning `json:"warnings,omitempty"`
}

// Rows returns every line row of the report in presentation order.
func (r *Report) Rows() []ResultRow {
	var rows []ResultRow
	for _, s := range r.Sections {
		rows = append(rows, s.Rows...)
	}
	return rows
}
