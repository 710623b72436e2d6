// Package match maps free-form source line descriptions to canonical
// vocabulary names with a 0-100 confidence score.
//
// Resolution order, first hit wins: subtotal exclusion keywords, exact
// abbreviation lookup, weighted-ratio string similarity with domain
// adjustments. Higher-priority rules encode higher-certainty domain
// knowledge; reordering them changes results.
package match

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/schollz/closestmatch"

	"github.com/ifrs-tools/restate/internal/cache"
	"github.com/ifrs-tools/restate/internal/model"
	"github.com/ifrs-tools/restate/internal/normalize"
	"github.com/ifrs-tools/restate/internal/vocab"
)

// ScoreFunc computes a 0-100 similarity between two strings. The concrete
// algorithm is swappable; the resolution-order logic above it is not.
type ScoreFunc func(a, b string) int

const (
	subtotalConfidence = 95
	exactConfidence    = 100

	revenueCostPenalty   = 30
	incomeExpensePenalty = 20
	abbreviationBonus    = 20
)

var (
	revenueTerms = []string{"revenue", "sales", "turnover"}
	costTerms    = []string{"cost", "expense", "cogs"}
)

// Result is the outcome of matching one label.
type Result struct {
	Canonical  string `json:"canonical,omitempty"`
	Confidence int    `json:"confidence"`
	Subtotal   bool   `json:"subtotal,omitempty"`
	Rule       string `json:"rule"` // which rule decided, e.g. "exclusion:total", "abbreviation:r&d", "similarity"
}

// Matcher matches labels against one vocabulary. Pure over its inputs;
// the optional cache only memoizes, it never changes observable results.
type Matcher struct {
	vocab    *vocab.Vocabulary
	score    ScoreFunc
	cache    cache.Cache
	cacheTTL time.Duration

	suggester   *closestmatch.ClosestMatch
	lowerToName map[string]string
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithScoreFunc swaps the similarity algorithm.
func WithScoreFunc(f ScoreFunc) Option {
	return func(m *Matcher) { m.score = f }
}

// WithCache enables match memoization.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(m *Matcher) {
		m.cache = c
		m.cacheTTL = ttl
	}
}

// New creates a Matcher. An empty vocabulary is a fatal configuration
// error: there is nothing to match against.
func New(v *vocab.Vocabulary, opts ...Option) (*Matcher, error) {
	if v == nil || len(v.Items) == 0 {
		return nil, fmt.Errorf("match: empty vocabulary")
	}

	lowerToName := make(map[string]string, len(v.Items))
	lowered := make([]string, 0, len(v.Items))
	for _, name := range v.Names() {
		l := strings.ToLower(name)
		lowerToName[l] = name
		lowered = append(lowered, l)
	}

	m := &Matcher{
		vocab:       v,
		score:       WeightedRatio,
		suggester:   closestmatch.New(lowered, []int{2, 3, 4}),
		lowerToName: lowerToName,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Match resolves one label to a canonical name and confidence.
func (m *Matcher) Match(label string) Result {
	norm := normalize.Label(label)

	key := cache.Key(m.vocab.Version, norm)
	if m.cache != nil {
		if data, ok := m.cache.Get(key); ok {
			var r Result
			if err := json.Unmarshal(data, &r); err == nil {
				return r
			}
		}
	}

	r := m.resolve(norm)

	if m.cache != nil {
		if data, err := json.Marshal(r); err == nil {
			_ = m.cache.Set(key, data, m.cacheTTL)
		}
	}
	return r
}

func (m *Matcher) resolve(norm string) Result {
	// 1. Pre-existing subtotal and total rows are excluded from
	// aggregation to avoid double counting.
	for _, kw := range m.vocab.ExclusionKeywords {
		if strings.Contains(norm, kw) {
			return Result{
				Confidence: subtotalConfidence,
				Subtotal:   true,
				Rule:       "exclusion:" + kw,
			}
		}
	}

	// 2. Abbreviations are ground truth, not statistical guesses: the
	// whole label first, then individual tokens ("r&d expense" → "r&d").
	if target, ok := m.vocab.Abbreviations[norm]; ok {
		return Result{Canonical: target, Confidence: exactConfidence, Rule: "abbreviation:" + norm}
	}
	for _, tok := range strings.Fields(norm) {
		if target, ok := m.vocab.Abbreviations[tok]; ok {
			return Result{Canonical: target, Confidence: exactConfidence, Rule: "abbreviation:" + tok}
		}
	}

	// 3. Similarity fallback. Ties break by declaration order.
	best := Result{Rule: "similarity"}
	for _, item := range m.vocab.Items {
		score := m.score(norm, strings.ToLower(item.Name))
		score = m.adjust(norm, item.Name, score)
		if score > best.Confidence || best.Canonical == "" {
			best.Canonical = item.Name
			best.Confidence = score
		}
	}
	return best
}

// adjust applies the domain heuristics on top of the raw similarity score
// and clamps the result to [0, 100].
func (m *Matcher) adjust(label, candidate string, score int) int {
	cand := strings.ToLower(candidate)

	// A revenue-flavored label without cost terms must not drift onto a
	// cost-of-goods line that shares tokens with it.
	labelRevenue := containsAny(label, revenueTerms)
	labelCost := containsAny(label, costTerms)
	if labelRevenue && !labelCost && containsAny(cand, revenueTerms) && containsAny(cand, costTerms) {
		score -= revenueCostPenalty
	}

	// Symmetric income<->expense cross-match penalty.
	labelIncome := strings.Contains(label, "income")
	labelExpense := strings.Contains(label, "expense")
	candIncome := strings.Contains(cand, "income")
	candExpense := strings.Contains(cand, "expense")
	if labelIncome && !labelExpense && candExpense && !candIncome {
		score -= incomeExpensePenalty
	}
	if labelExpense && !labelIncome && candIncome && !candExpense {
		score -= incomeExpensePenalty
	}

	// Reward abbreviation-expansion pairs the exact lookup did not catch
	// (e.g. "g&a and other costs" against the expanded canonical name).
	for abbr, target := range m.vocab.Abbreviations {
		if target == candidate && strings.Contains(label, abbr) {
			score += abbreviationBonus
			break
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// MatchStatement matches every line of a statement.
func (m *Matcher) MatchStatement(st model.Statement) []model.Mapping {
	mappings := make([]model.Mapping, 0, len(st.Lines))
	for _, line := range st.Lines {
		r := m.Match(line.Label)
		mappings = append(mappings, model.Mapping{
			Source:     line,
			Canonical:  r.Canonical,
			Confidence: r.Confidence,
			Subtotal:   r.Subtotal,
			Rule:       r.Rule,
		})
	}
	return mappings
}

// Suggest returns up to n alternative canonical names for a label, for the
// caller to present alongside a low-confidence match.
func (m *Matcher) Suggest(label string, n int) []string {
	if n <= 0 {
		return nil
	}
	var out []string
	for _, l := range m.suggester.ClosestN(normalize.Label(label), n) {
		if name, ok := m.lowerToName[l]; ok {
			out = append(out, name)
		}
	}
	return out
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
