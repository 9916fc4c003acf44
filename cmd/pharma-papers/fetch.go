// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pharma-papers/internal/classify"
	"github.com/pdiddy/pharma-papers/internal/pubmed"
	"github.com/pdiddy/pharma-papers/internal/report"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultRequestDelay = 350 * time.Millisecond
	defaultMaxResults   = 100
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [query...]",
	Short: "Search PubMed and report company-affiliated papers",
	Long: `Fetch runs the full pipeline: it searches PubMed for papers matching the
query, downloads the full records, screens every author affiliation for
pharmaceutical or biotech company signals, and emits one report row per
paper that has at least one company-affiliated author.

The query supports full PubMed syntax, e.g.:

  pharma-papers fetch "cancer immunotherapy AND 2024[pdat]"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("file", "f", "", "write results as CSV to the given file instead of stdout")
	fetchCmd.Flags().IntP("max", "m", 0, "maximum number of papers to retrieve (default 100)")
	fetchCmd.Flags().BoolP("debug", "d", false, "print debug information during execution")
	fetchCmd.Flags().String("format", "table", "stdout format: table, csv, json, or markdown")
	fetchCmd.Flags().String("save", "", "save the full run (rows plus summary) as a YAML run file")
	fetchCmd.Flags().Int("workers", 0, "concurrent paper screening workers (default 1)")
	fetchCmd.Flags().String("tables", "", "YAML file overriding the built-in classification keyword tables")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	debug, _ := cmd.Flags().GetBool("debug")

	fetchCfg, err := buildFetchConfig(cmd)
	if err != nil {
		return err
	}

	debugf(debug, "query: %q", query)
	debugf(debug, "max results: %d", fetchCfg.MaxResults)

	client := &pubmed.Client{
		HTTP: &http.Client{Timeout: fetchCfg.Timeout},
	}

	ctx := cmd.Context()
	pmids, err := client.Search(ctx, query, fetchCfg)
	if err != nil {
		return fmt.Errorf("searching PubMed: %w", err)
	}
	debugf(debug, "ESearch returned %d PMIDs", len(pmids))

	if len(pmids) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No papers found matching the query.")
		return nil
	}

	// NCBI asks for no more than 3 requests per second without an API key.
	time.Sleep(fetchCfg.RequestDelay)

	articles, err := client.Fetch(ctx, pmids, fetchCfg)
	if err != nil {
		return fmt.Errorf("fetching article records: %w", err)
	}
	debugf(debug, "EFetch returned %d article records", len(articles))

	tables, err := loadTables(cmd)
	if err != nil {
		return err
	}

	workers, _ := cmd.Flags().GetInt("workers")
	if workers == 0 {
		workers = viper.GetInt("report.workers")
	}

	agg := report.NewAggregator(classify.New(tables))
	rows, summary := agg.ProcessBatch(ctx, articles, workers, os.Stderr)
	debugf(debug, "screened %d papers: %d matched, %d excluded, %d failed",
		summary.Total(), summary.Matched, summary.Excluded, summary.Failed)

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		reportCfg := types.ReportConfig{Workers: workers}
		if err := report.WriteRunFile(savePath, query, fetchCfg, reportCfg, len(articles), rows, summary); err != nil {
			return fmt.Errorf("saving run file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Run saved to %s\n", savePath)
	}

	if filePath, _ := cmd.Flags().GetString("file"); filePath != "" {
		f, err := os.Create(filePath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		if err := report.WriteCSV(rows, f); err != nil {
			return fmt.Errorf("writing CSV: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Results saved to %s (%d papers)\n", filePath, len(rows))
		return nil
	}

	format, _ := cmd.Flags().GetString("format")
	return renderRows(rows, format, query, cmd.OutOrStdout())
}

// buildFetchConfig merges flags, config file values, and secrets into a
// FetchConfig. Flags win over config file values.
func buildFetchConfig(cmd *cobra.Command) (types.FetchConfig, error) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("fetch.timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	maxResults, _ := cmd.Flags().GetInt("max")
	if maxResults == 0 {
		maxResults = viper.GetInt("fetch.max_results")
	}
	if maxResults == 0 {
		maxResults = defaultMaxResults
	}
	if maxResults < 0 {
		return types.FetchConfig{}, fmt.Errorf("max results must be positive, got %d", maxResults)
	}

	delay := viper.GetDuration("fetch.request_delay")
	if delay == 0 {
		delay = defaultRequestDelay
	}

	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: "pharma-papers/" + version,
		},
		MaxResults:   maxResults,
		APIKey:       secretDefault("ncbi-api-key", viper.GetString("fetch.api_key")),
		Email:        secretDefault("entrez-email", viper.GetString("fetch.email")),
		Tool:         "pharma-papers",
		RequestDelay: delay,
	}, nil
}

// loadTables returns the classification keyword tables, applying a YAML
// override file when one is configured.
func loadTables(cmd *cobra.Command) (classify.Tables, error) {
	path, _ := cmd.Flags().GetString("tables")
	if path == "" {
		path = viper.GetString("report.tables_file")
	}
	if path == "" {
		return classify.DefaultTables(), nil
	}
	tables, err := classify.LoadTables(path)
	if err != nil {
		return classify.Tables{}, fmt.Errorf("loading keyword tables: %w", err)
	}
	return tables, nil
}

func debugf(enabled bool, format string, args ...any) {
	if enabled {
		fmt.Fprintf(os.Stderr, "DEBUG: "+format+"\n", args...)
	}
}
