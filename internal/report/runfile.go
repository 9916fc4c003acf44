// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// RunFile is the on-disk representation of one screening run: the query,
// the configuration that produced the rows, the rows themselves, and a
// summary. A saved run can be reloaded and re-rendered without touching
// PubMed again.
// Implements: prd004-report R5.6.
type RunFile struct {
	Query   string            `yaml:"query"`
	Config  RunConfig         `yaml:"config"`
	Rows    []types.ReportRow `yaml:"rows"`
	Summary RunSummary        `yaml:"summary"`
}

// RunConfig stores the settings that shaped the run.
type RunConfig struct {
	MaxResults int `yaml:"max_results"`
	Workers    int `yaml:"workers"`
}

// RunSummary stores run statistics and a timestamp.
type RunSummary struct {
	Fetched   int       `yaml:"fetched"`
	Matched   int       `yaml:"matched"`
	Excluded  int       `yaml:"excluded"`
	Failed    int       `yaml:"failed"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteRunFile saves a screening run to a YAML file.
func WriteRunFile(path, query string, fetchCfg types.FetchConfig, reportCfg types.ReportConfig, fetched int, rows []types.ReportRow, summary BatchSummary) error {
	rf := RunFile{
		Query: query,
		Config: RunConfig{
			MaxResults: fetchCfg.MaxResults,
			Workers:    reportCfg.Workers,
		},
		Rows: rows,
		Summary: RunSummary{
			Fetched:   fetched,
			Matched:   summary.Matched,
			Excluded:  summary.Excluded,
			Failed:    summary.Failed,
			Timestamp: time.Now(),
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run from disk.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &rf, nil
}
