package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ifrs-tools/restate/internal/pipeline"
	"github.com/ifrs-tools/restate/internal/worker"
)

var (
	concurrency int
	outputDir   string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|list-file>",
	Short: "Process multiple statement files in parallel",
	Long: `Batch processes many statement files concurrently:
- A directory argument picks up every CSV/XLSX file in it
- A file argument is read as a list of paths, one per line
- Files are processed in parallel with a configurable worker count
- Every file shares the same session inputs (profile, policies, allocations)
- One report set (JSON, CSV, Markdown) is written per input file

Example:
  restate batch ./statements
  restate batch statements.txt --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	registerSessionFlags(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./restate-reports", "output directory for reports")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := buildConfig()
	cfg.Concurrency.Workers = concurrency
	cfg.Output.IncludeFooter = !noFooter

	in, err := loadInputs()
	if err != nil {
		return err
	}

	paths, err := worker.CollectPaths(args[0])
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("configure pipeline: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Processing %d statements with %d workers...\n\n", len(paths), cfg.Concurrency.Workers)

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	results := processor.ProcessPaths(ctx, paths, in)

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		slug := statementSlug(result.Path)
		if err := renderer.RenderJSON(result.Report, filepath.Join(outputDir, slug+".json")); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderCSV(result.Report, filepath.Join(outputDir, slug+".csv")); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: write CSV: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, filepath.Join(outputDir, slug+".md")); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: write Markdown: %v\n", result.Path, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (%d warnings)\n", result.Path, len(result.Report.Warnings))
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d succeeded, %d failed, output in %s\n", successCount, failureCount, outputDir)
	if failureCount > 0 {
		return fmt.Errorf("%d of %d statements failed", failureCount, len(results))
	}
	return nil
}

// statementSlug derives an output file stem from a statement path.
func statementSlug(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, " ", "-")
	if len(base) > 100 {
		base = base[:100]
	}
	return base
}
