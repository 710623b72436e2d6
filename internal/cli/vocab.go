package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ifrs-tools/restate/internal/model"
	"github.com/ifrs-tools/restate/internal/vocab"
)

// vocabCmd represents the vocab command
var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Print the canonical vocabulary and its classification rules",
	Long: `Vocab prints every canonical line item with its default category,
per-entity-profile overrides and policy-dependent flag, followed by the
abbreviation dictionary and the subtotal exclusion keywords.

Example:
  restate vocab
  restate vocab --vocab custom-vocabulary.yaml`,
	RunE: runVocab,
}

func init() {
	rootCmd.AddCommand(vocabCmd)
	vocabCmd.Flags().StringVar(&vocabPath, "vocab", "", "canonical vocabulary YAML (default: built-in)")
}

func runVocab(cmd *cobra.Command, args []string) error {
	v := vocab.Default()
	if vocabPath != "" {
		loaded, err := vocab.Load(vocabPath)
		if err != nil {
			return err
		}
		v = loaded
	}

	fmt.Printf("Vocabulary version %s (%d canonical line items)\n\n", v.Version, len(v.Items))

	profiles := []model.EntityProfile{model.ProfileFinancing, model.ProfileInvesting, model.ProfileOther}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Canonical Name\tDefault\tFinancing\tInvesting\tOther\tPolicy")
	for _, item := range v.Items {
		cells := make([]string, 0, len(profiles))
		for _, profile := range profiles {
			if c, ok := item.Override(profile); ok {
				cells = append(cells, string(c))
			} else {
				cells = append(cells, "—")
			}
		}
		policy := ""
		if item.PolicyDependent {
			policy = "policy-dependent"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.Name, item.DefaultCategory,
			strings.Join(cells, "\t"), policy)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(v.Abbreviations) > 0 {
		fmt.Printf("\nAbbreviations: %d entries\n", len(v.Abbreviations))
	}
	if len(v.ExclusionKeywords) > 0 {
		fmt.Printf("Subtotal exclusion keywords: %s\n", strings.Join(v.ExclusionKeywords, ", "))
	}
	return nil
}
