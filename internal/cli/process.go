package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ifrs-tools/restate/internal/pipeline"
)

var (
	outJSON  string
	outCSV   string
	outMD    string
	noFooter bool
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Classify a statement file and generate the categorized report",
	Long: `Process runs the full pipeline over one statement file:
- Load the table (CSV or XLSX; first column = description, one column per period)
- Match every line description to the canonical vocabulary
- Apply manual mapping overrides
- Redistribute user-declared allocation splits
- Classify each canonical line for the entity profile and policy choices
- Aggregate into category sections with subtotals and a grand total

Example:
  restate process statement.csv
  restate process statement.xlsx --profile financing --policies policies.yaml
  restate process statement.csv --allocations splits.yaml --csv out.csv --json report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	registerSessionFlags(processCmd)

	// Output flags
	processCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	processCmd.Flags().StringVar(&outCSV, "csv", "", "output CSV path (optional)")
	processCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	processCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runProcess(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx := context.Background()

	cfg := buildConfig()
	cfg.Output.IncludeFooter = !noFooter

	in, err := loadInputs()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("configure pipeline: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Processing: %s\n", file)
		fmt.Fprintf(os.Stderr, "Profile: %s\n", cfg.Profile)
		fmt.Fprintf(os.Stderr, "Vocabulary: %s\n", vocabDescription(cfg.Vocabulary.Path))
		fmt.Fprintln(os.Stderr)
	}

	rep, err := p.Process(ctx, file, in)
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Matched %d lines (%d excluded as subtotals)\n", len(rep.Mappings), len(rep.Excluded))
		fmt.Fprintf(os.Stderr, "✓ %d category sections, %d warnings\n", len(rep.Sections), len(rep.Warnings))
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(rep, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
	}
	if outCSV != "" {
		if err := renderer.RenderCSV(rep, outCSV); err != nil {
			return fmt.Errorf("render CSV: %w", err)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(rep, outMD); err != nil {
			return fmt.Errorf("render Markdown: %w", err)
		}
	}
	return renderer.RenderConsole(rep, os.Stdout)
}

func vocabDescription(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
