// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pharma-papers/internal/report"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

var renderCmd = &cobra.Command{
	Use:   "render <run-file>",
	Short: "Re-render a saved run file in another format",
	Long: `Render reads a YAML run file previously written with fetch --save and
re-renders its report rows without contacting PubMed again.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("format", "table", "output format: table, csv, json, or markdown")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	run, err := report.ReadRunFile(args[0])
	if err != nil {
		return fmt.Errorf("reading run file: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	return renderRows(run.Rows, format, run.Query, cmd.OutOrStdout())
}

// renderRows writes rows to w in the requested format.
func renderRows(rows []types.ReportRow, format, query string, w io.Writer) error {
	switch format {
	case "table":
		report.FormatTable(rows, w)
		return nil
	case "csv":
		return report.WriteCSV(rows, w)
	case "json":
		return report.FormatJSON(rows, w)
	case "markdown":
		return report.WriteMarkdown(rows, query, w)
	default:
		return fmt.Errorf("unknown format %q (expected table, csv, json, or markdown)", format)
	}
}
