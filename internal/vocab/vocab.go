// Package vocab holds the canonical line-item vocabulary: the fixed,
// versioned set of target names, each with a default IFRS 18 category and
// per-entity-profile overrides, plus the abbreviation dictionary and the
// subtotal exclusion keywords used by the matcher.
package vocab

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ifrs-tools/restate/internal/model"
)

// OverrideNotApplicable is the sentinel override value meaning "this line
// has no special treatment for the profile, fall through to the default".
const OverrideNotApplicable = "n/a"

// LineItem is one canonical vocabulary entry. Never mutated at runtime.
type LineItem struct {
	Name            string                         `yaml:"name"`
	DefaultCategory model.Category                 `yaml:"category"`
	PolicyDependent bool                           `yaml:"policy_dependent,omitempty"`
	EntityOverrides map[model.EntityProfile]string `yaml:"entity_overrides,omitempty"`
}

// Override returns the category override for a profile, if one applies.
func (li LineItem) Override(profile model.EntityProfile) (model.Category, bool) {
	raw, ok := li.EntityOverrides[profile]
	if !ok || raw == OverrideNotApplicable {
		return "", false
	}
	c, err := model.ParseCategory(raw)
	if err != nil {
		return "", false
	}
	return c, true
}

// Vocabulary is the complete static rule table, loaded once per process.
type Vocabulary struct {
	Version           string            `yaml:"version"`
	Items             []LineItem        `yaml:"items"`
	Abbreviations     map[string]string `yaml:"abbreviations"`
	ExclusionKeywords []string          `yaml:"exclusion_keywords"`

	index map[string]int
}

// New builds a vocabulary programmatically and validates it. Callers that
// ship their rule table in code (or in tests) use this instead of Load.
func New(version string, items []LineItem, abbreviations map[string]string, exclusionKeywords []string) (*Vocabulary, error) {
	v := &Vocabulary{
		Version:           version,
		Items:             items,
		Abbreviations:     abbreviations,
		ExclusionKeywords: exclusionKeywords,
	}
	if err := v.validate(); err != nil {
		return nil, err
	}
	v.buildIndex()
	return v, nil
}

// Load reads a vocabulary from a YAML file and validates it.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	if err := v.validate(); err != nil {
		return nil, fmt.Errorf("vocabulary %s: %w", path, err)
	}
	v.buildIndex()
	return &v, nil
}

// validate rejects malformed vocabularies. A bad vocabulary is a fatal
// configuration error, not a runtime user error.
func (v *Vocabulary) validate() error {
	if len(v.Items) == 0 {
		return fmt.Errorf("no canonical line items defined")
	}
	seen := make(map[string]bool, len(v.Items))
	for i, item := range v.Items {
		if item.Name == "" {
			return fmt.Errorf("item %d: empty name", i)
		}
		if seen[item.Name] {
			return fmt.Errorf("duplicate canonical name %q", item.Name)
		}
		seen[item.Name] = true
		if _, err := model.ParseCategory(string(item.DefaultCategory)); err != nil {
			return fmt.Errorf("item %q: %w", item.Name, err)
		}
		for profile, raw := range item.EntityOverrides {
			if _, err := model.ParseProfile(string(profile)); err != nil {
				return fmt.Errorf("item %q: %w", item.Name, err)
			}
			if raw == OverrideNotApplicable {
				continue
			}
			if _, err := model.ParseCategory(raw); err != nil {
				return fmt.Errorf("item %q override for %s: %w", item.Name, profile, err)
			}
		}
	}
	for abbr, target := range v.Abbreviations {
		if !seen[target] {
			return fmt.Errorf("abbreviation %q points to unknown canonical name %q", abbr, target)
		}
	}
	return nil
}

func (v *Vocabulary) buildIndex() {
	v.index = make(map[string]int, len(v.Items))
	for i, item := range v.Items {
		v.index[item.Name] = i
	}
}

// Item looks up a canonical entry by exact name.
func (v *Vocabulary) Item(name string) (LineItem, bool) {
	i, ok := v.index[name]
	if !ok {
		return LineItem{}, false
	}
	return v.Items[i], true
}

// Order returns the declaration position of a canonical name. Unknown
// names sort after every declared item, so user-invented targets land at
// the end of their category section.
func (v *Vocabulary) Order(name string) int {
	if i, ok := v.index[name]; ok {
		return i
	}
	return len(v.Items)
}

// Names returns the canonical names in declaration order.
func (v *Vocabulary) Names() []string {
	names := make([]string, len(v.Items))
	for i, item := range v.Items {
		names[i] = item.Name
	}
	return names
}
