// Package classify resolves a canonical line item to its final IFRS 18
// category for one reporting entity.
package classify

import (
	"github.com/ifrs-tools/restate/internal/model"
	"github.com/ifrs-tools/restate/internal/vocab"
)

// Resolver applies the three-level override chain
//
//	policy choice > entity-specific override > global default
//
// each level short-circuiting the next. The precedence is load-bearing:
// reversing it silently changes every financing or investing entity's
// statement. Profile and policies are fixed at construction, so a
// mid-aggregation mutation of session state cannot reach the resolver.
type Resolver struct {
	vocab    *vocab.Vocabulary
	profile  model.EntityProfile
	policies map[string]model.Category
}

// NewResolver creates a resolver for one session.
func NewResolver(v *vocab.Vocabulary, profile model.EntityProfile, policies []model.PolicyChoice) *Resolver {
	byLine := make(map[string]model.Category, len(policies))
	for _, p := range policies {
		byLine[p.Line] = p.Category
	}
	return &Resolver{vocab: v, profile: profile, policies: byLine}
}

// Resolve returns the category for a canonical name. Every name resolves
// to some category; Unclassified is the explicit fallback bucket when no
// rule applies, kept out of the grand total by the aggregator.
func (r *Resolver) Resolve(name string) model.Category {
	item, ok := r.vocab.Item(name)
	if !ok {
		return model.CategoryUnclassified
	}
	if item.PolicyDependent {
		if c, ok := r.policies[name]; ok {
			return c
		}
	}
	if c, ok := item.Override(r.profile); ok {
		return c
	}
	if item.DefaultCategory != "" {
		return item.DefaultCategory
	}
	return model.CategoryUnclassified
}

// Profile returns the entity profile the resolver was built for.
func (r *Resolver) Profile() model.EntityProfile {
	return r.profile
}
