package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableOptions configure terminal rendering.
type TableOptions struct {
	// NoColor disables ANSI colors regardless of terminal detection.
	NoColor bool
}

// WriteTable renders a result as terminal tables: one row per file with
// its import count, then the top modules ranked by frequency.
func WriteTable(w io.Writer, result Result, opts TableOptions) error {
	if opts.NoColor {
		color.NoColor = true
	}

	header := color.New(color.FgCyan, color.Bold)
	warn := color.New(color.FgYellow)

	if _, err := header.Fprintf(w, "Imports under %s\n\n", result.Root); err != nil {
		return fmt.Errorf("write table header: %w", err)
	}

	files := table.NewWriter()
	files.SetOutputMirror(w)
	files.SetStyle(table.StyleLight)
	files.AppendHeader(table.Row{"File", "Lang", "Imports", "Diagnostics"})
	files.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Imports", Align: text.AlignRight},
		{Name: "Diagnostics", Align: text.AlignRight},
	})

	for _, file := range result.Files {
		if file.Error != nil {
			files.AppendRow(table.Row{file.Path, "-", "-", file.Error.Error()})

			continue
		}

		files.AppendRow(table.Row{file.Path, file.Lang, len(file.Records), len(file.Diagnostics)})
	}

	files.Render()

	if len(result.Summary.TopModules) > 0 {
		if _, err := header.Fprintf(w, "\nTop modules\n"); err != nil {
			return fmt.Errorf("write table header: %w", err)
		}

		top := table.NewWriter()
		top.SetOutputMirror(w)
		top.SetStyle(table.StyleLight)
		top.AppendHeader(table.Row{"Module", "Count"})
		top.SetColumnConfigs([]table.ColumnConfig{{Name: "Count", Align: text.AlignRight}})

		for _, mc := range result.Summary.TopModules {
			top.AppendRow(table.Row{mc.Module, humanize.Comma(int64(mc.Count))})
		}

		top.Render()
	}

	summary := result.Summary

	_, err := fmt.Fprintf(w, "\n%s files, %s imports, %s diagnostics in %s\n",
		humanize.Comma(int64(summary.FileCount)),
		humanize.Comma(int64(summary.RecordCount)),
		humanize.Comma(int64(summary.DiagnosticCount)),
		summary.Duration.Round(time.Millisecond))
	if err != nil {
		return fmt.Errorf("write table summary: %w", err)
	}

	if summary.ErrorCount > 0 {
		if _, err := warn.Fprintf(w, "%d files could not be read\n", summary.ErrorCount); err != nil {
			return fmt.Errorf("write table summary: %w", err)
		}
	}

	return nil
}
