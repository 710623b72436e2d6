package loader

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ifrs-tools/restate/internal/model"
	"github.com/ifrs-tools/restate/internal/normalize"
)

// allocationsFile is the on-disk shape of the allocation splits input.
//
//	allocations:
//	  - parent: Cost of sales
//	    child: Cost Of Goods
//	    amounts:
//	      "2023": "-700"
//	      "2024": "-700"
type allocationsFile struct {
	Allocations []struct {
		Parent  string            `yaml:"parent"`
		Child   string            `yaml:"child"`
		Amounts map[string]string `yaml:"amounts"`
	} `yaml:"allocations"`
}

// ReadAllocations loads user-declared allocation splits from a YAML file.
// Amount values go through the normalizer, so accounting notation
// ("(700)", "1,200") is accepted.
func ReadAllocations(path string) ([]model.AllocationSplit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read allocations: %w", err)
	}
	var f allocationsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse allocations: %w", err)
	}

	splits := make([]model.AllocationSplit, 0, len(f.Allocations))
	for i, entry := range f.Allocations {
		if entry.Parent == "" || entry.Child == "" {
			return nil, fmt.Errorf("allocation %d: parent and child are required", i)
		}
		amounts := make(map[string]decimal.Decimal, len(entry.Amounts))
		for period, raw := range entry.Amounts {
			amounts[period] = normalize.CleanAmount(raw)
		}
		splits = append(splits, model.AllocationSplit{
			Parent:  entry.Parent,
			Child:   entry.Child,
			Amounts: amounts,
		})
	}
	return splits, nil
}

// policiesFile is the on-disk shape of the accounting-policy choices.
//
//	policies:
//	  - line: Income and expenses from cash and cash equivalents
//	    category: financing
type policiesFile struct {
	Policies []struct {
		Line     string `yaml:"line"`
		Category string `yaml:"category"`
	} `yaml:"policies"`
}

// ReadPolicies loads the session's accounting-policy choices.
func ReadPolicies(path string) ([]model.PolicyChoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policies: %w", err)
	}
	var f policiesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse policies: %w", err)
	}

	choices := make([]model.PolicyChoice, 0, len(f.Policies))
	for i, entry := range f.Policies {
		if entry.Line == "" {
			return nil, fmt.Errorf("policy %d: line is required", i)
		}
		category, err := model.ParseCategory(entry.Category)
		if err != nil {
			return nil, fmt.Errorf("policy for %q: %w", entry.Line, err)
		}
		choices = append(choices, model.PolicyChoice{Line: entry.Line, Category: category})
	}
	return choices, nil
}

// overridesFile is the on-disk shape of manual mapping overrides.
//
//	overrides:
//	  "misc admin charges": General and administrative expenses
type overridesFile struct {
	Overrides map[string]string `yaml:"overrides"`
}

// ReadOverrides loads manual mapping overrides, keyed by normalized source
// label. An override is authoritative: the pipeline applies it with
// confidence 100 and never re-scores it.
func ReadOverrides(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}
	var f overridesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse overrides: %w", err)
	}

	out := make(map[string]string, len(f.Overrides))
	for label, canonical := range f.Overrides {
		if canonical == "" {
			return nil, fmt.Errorf("override for %q: empty canonical name", label)
		}
		out[normalize.Label(label)] = canonical
	}
	return out, nil
}
