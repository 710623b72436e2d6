package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ifrs-tools/restate/internal/loader"
	"github.com/ifrs-tools/restate/internal/model"
	"github.com/ifrs-tools/restate/internal/pipeline"
)

// Session flags shared by the process, match and batch commands.
var (
	vocabPath       string
	profileName     string
	policiesPath    string
	allocationsPath string
	overridesPath   string
	minConfidence   int
	noCache         bool
)

func registerSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&vocabPath, "vocab", "", "canonical vocabulary YAML (default: built-in IFRS 18 vocabulary)")
	cmd.Flags().StringVar(&profileName, "profile", "", "entity profile: financing, investing or other (default: other)")
	cmd.Flags().StringVar(&policiesPath, "policies", "", "accounting-policy choices YAML")
	cmd.Flags().StringVar(&allocationsPath, "allocations", "", "allocation splits YAML")
	cmd.Flags().StringVar(&overridesPath, "overrides", "", "manual mapping overrides YAML")
	cmd.Flags().IntVar(&minConfidence, "min-confidence", 0, "review threshold for match confidence (default 70)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable match memoization")
}

// buildConfig assembles the effective configuration: defaults, then config
// file / environment (viper), then flags.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if p := viper.GetString("vocabulary.path"); p != "" {
		cfg.Vocabulary.Path = p
	}
	if p := viper.GetString("profile"); p != "" {
		cfg.Profile = p
	}
	if mc := viper.GetInt("matching.min_confidence"); mc > 0 {
		cfg.Matching.MinConfidence = mc
	}

	if vocabPath != "" {
		cfg.Vocabulary.Path = vocabPath
	}
	if profileName != "" {
		cfg.Profile = profileName
	}
	if minConfidence > 0 {
		cfg.Matching.MinConfidence = minConfidence
	}
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose

	return cfg
}

// loadInputs reads the user-declared session files named by flags.
func loadInputs() (pipeline.Inputs, error) {
	var in pipeline.Inputs

	if allocationsPath != "" {
		splits, err := loader.ReadAllocations(allocationsPath)
		if err != nil {
			return in, fmt.Errorf("allocations: %w", err)
		}
		in.Splits = splits
	}
	if policiesPath != "" {
		policies, err := loader.ReadPolicies(policiesPath)
		if err != nil {
			return in, fmt.Errorf("policies: %w", err)
		}
		in.Policies = policies
	}
	if overridesPath != "" {
		overrides, err := loader.ReadOverrides(overridesPath)
		if err != nil {
			return in, fmt.Errorf("overrides: %w", err)
		}
		in.Overrides = overrides
	}
	return in, nil
}
