package model

import (
	"runtime"
	"time"
)

// Config holds all runtime configuration. Values are assembled from
// defaults, the config file (~/.restate/config.yaml), RESTATE_* environment
// variables and CLI flags, in increasing priority.
type Config struct {
	Vocabulary  VocabularyConfig  `yaml:"vocabulary"`
	Profile     string            `yaml:"profile"`
	Matching    MatchingConfig    `yaml:"matching"`
	Report      ReportConfig      `yaml:"report"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// VocabularyConfig selects the canonical vocabulary source.
type VocabularyConfig struct {
	// Path to a YAML vocabulary file. Empty means the built-in vocabulary.
	Path string `yaml:"path"`
}

// MatchingConfig tunes the matcher.
type MatchingConfig struct {
	// MinConfidence is the review threshold: matches below it are flagged
	// with a low-confidence warning (they are still best-effort results).
	MinConfidence int `yaml:"min_confidence"`
	// Suggestions is how many alternative canonical names to attach to a
	// low-confidence warning.
	Suggestions int `yaml:"suggestions"`
}

// ReportConfig controls aggregation and presentation.
type ReportConfig struct {
	// CategoryOrder is the fixed display sequence of category sections.
	CategoryOrder []Category `yaml:"category_order"`
	// ExcludeFromGrandTotal lists categories whose subtotals are left out
	// of the grand total.
	ExcludeFromGrandTotal []Category `yaml:"exclude_from_grand_total"`
}

// CacheConfig controls in-process match memoization.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Profile: string(ProfileOther),
		Matching: MatchingConfig{
			MinConfidence: 70,
			Suggestions:   3,
		},
		Report: ReportConfig{
			CategoryOrder: []Category{
				CategoryOperating,
				CategoryInvesting,
				CategoryFinancing,
				CategoryIncomeTax,
				CategoryDiscontinued,
				CategoryUnclassified,
			},
			ExcludeFromGrandTotal: []Category{
				CategoryDiscontinued,
				CategoryUnclassified,
			},
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             15 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
