package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ifrs-tools/restate/internal/loader"
	"github.com/ifrs-tools/restate/internal/pipeline"
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match <file>",
	Short: "Match line descriptions without generating a report",
	Long: `Match runs only the matching phase and prints the proposed mapping of
every source line to its canonical name with a confidence score. This is
the review step before 'process': rows below the confidence threshold get
alternative suggestions, and accepted corrections go into an overrides
file.

Example:
  restate match statement.csv
  restate match statement.csv --min-confidence 80`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	registerSessionFlags(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("configure pipeline: %w", err)
	}

	st, err := loader.ReadStatement(args[0])
	if err != nil {
		return fmt.Errorf("load statement: %w", err)
	}

	matcher := p.Matcher()
	mappings := matcher.MatchStatement(st)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Source Label\tCanonical\tConfidence\tRule")
	lowCount := 0
	for _, mp := range mappings {
		target := mp.Canonical
		if mp.Subtotal {
			target = "(subtotal — excluded)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", mp.Source.Label, target, mp.Confidence, mp.Rule)
		if !mp.Subtotal && mp.Confidence < cfg.Matching.MinConfidence {
			lowCount++
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if lowCount > 0 {
		fmt.Printf("\n%d rows below the confidence threshold (%d):\n", lowCount, cfg.Matching.MinConfidence)
		for _, mp := range mappings {
			if mp.Subtotal || mp.Confidence >= cfg.Matching.MinConfidence {
				continue
			}
			suggestions := matcher.Suggest(mp.Source.Label, cfg.Matching.Suggestions)
			fmt.Printf("  %q → %q (%d). Alternatives: %s\n",
				mp.Source.Label, mp.Canonical, mp.Confidence, strings.Join(suggestions, "; "))
		}
	}
	return nil
}
