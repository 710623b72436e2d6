package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/ifrs-tools/restate/internal/model"
)

// Renderer writes reports to their output formats. The core emits signed
// decimals; bracket formatting of negatives belongs to whoever consumes
// the CSV.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(rep *model.Report, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderCSV writes the categorized statement as delimited text: one line
// row per canonical line, a subtotal row per category and one grand total.
func (r *Renderer) RenderCSV(rep *model.Report, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close csv: %w", closeErr)
		}
	}()

	w := csv.NewWriter(f)
	header := append([]string{"Line Item", "Category"}, rep.Periods...)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, section := range rep.Sections {
		for _, row := range section.Rows {
			record := []string{row.Name, string(row.Category)}
			for _, p := range rep.Periods {
				record = append(record, row.Amounts[p].String())
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		record := []string{"Subtotal - " + section.Category.Label(), string(section.Category)}
		for _, p := range rep.Periods {
			record = append(record, section.Subtotal[p].String())
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	record := []string{"Grand Total", ""}
	for _, p := range rep.Periods {
		record = append(record, rep.GrandTotal[p].String())
	}
	if err := w.Write(record); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// RenderMarkdown writes the categorized statement as a Markdown table.
func (r *Renderer) RenderMarkdown(rep *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Categorized Statement\n\n")
	fmt.Fprintf(&b, "- Source: %s\n", rep.SourceFile)
	fmt.Fprintf(&b, "- Entity profile: %s\n", rep.Profile)
	fmt.Fprintf(&b, "- Generated: %s\n\n", rep.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	fmt.Fprintf(&b, "| Line Item |")
	for _, p := range rep.Periods {
		fmt.Fprintf(&b, " %s |", p)
	}
	fmt.Fprintf(&b, "\n|---|")
	for range rep.Periods {
		fmt.Fprintf(&b, "---:|")
	}
	fmt.Fprintln(&b)

	for _, section := range rep.Sections {
		fmt.Fprintf(&b, "| **%s** |", section.Category.Label())
		for range rep.Periods {
			fmt.Fprintf(&b, " |")
		}
		fmt.Fprintln(&b)
		for _, row := range section.Rows {
			fmt.Fprintf(&b, "| %s |", row.Name)
			for _, p := range rep.Periods {
				fmt.Fprintf(&b, " %s |", row.Amounts[p])
			}
			fmt.Fprintln(&b)
		}
		fmt.Fprintf(&b, "| **Subtotal - %s** |", section.Category.Label())
		for _, p := range rep.Periods {
			fmt.Fprintf(&b, " **%s** |", section.Subtotal[p])
		}
		fmt.Fprintln(&b)
	}
	fmt.Fprintf(&b, "| **Grand Total** |")
	for _, p := range rep.Periods {
		fmt.Fprintf(&b, " **%s** |", rep.GrandTotal[p])
	}
	fmt.Fprintln(&b)

	if len(rep.Warnings) > 0 {
		fmt.Fprintf(&b, "\n## Warnings\n\n")
		for _, w := range rep.Warnings {
			fmt.Fprintf(&b, "- [%s] %s\n", w.Severity, w.Description)
		}
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "\n---\n*Generated by restate. Validate outputs against your accounting policies and IFRS 18.*\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderConsole writes a human-readable summary to w.
func (r *Renderer) RenderConsole(rep *model.Report, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Line Item")
	for _, p := range rep.Periods {
		fmt.Fprintf(tw, "\t%s", p)
	}
	fmt.Fprintln(tw)

	for _, section := range rep.Sections {
		fmt.Fprintf(tw, "%s\t\n", strings.ToUpper(section.Category.Label()))
		for _, row := range section.Rows {
			fmt.Fprintf(tw, "  %s", row.Name)
			for _, p := range rep.Periods {
				fmt.Fprintf(tw, "\t%s", row.Amounts[p])
			}
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "  Subtotal")
		for _, p := range rep.Periods {
			fmt.Fprintf(tw, "\t%s", section.Subtotal[p])
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprintf(tw, "GRAND TOTAL")
	for _, p := range rep.Periods {
		fmt.Fprintf(tw, "\t%s", rep.GrandTotal[p])
	}
	fmt.Fprintln(tw)
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(rep.Warnings) > 0 {
		fmt.Fprintln(w)
		yellow := color.New(color.FgYellow)
		red := color.New(color.FgRed)
		for _, warning := range rep.Warnings {
			switch warning.Severity {
			case model.SeverityCritical:
				red.Fprintf(w, "✗ %s\n", warning.Description)
			case model.SeverityWarning:
				yellow.Fprintf(w, "! %s\n", warning.Description)
			default:
				fmt.Fprintf(w, "· %s\n", warning.Description)
			}
		}
	}
	return nil
}
