package match

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// WeightedRatio is the default ScoreFunc: the fuzzywuzzy weighted ratio,
// which blends plain, partial and token-based ratios on a 0-100 scale.
// It handles word reordering and partial overlap well, which is what
// free-form ledger labels need ("admin & general expenses" vs "General
// and administrative expenses").
func WeightedRatio(a, b string) int {
	return fuzzy.WRatio(a, b)
}
