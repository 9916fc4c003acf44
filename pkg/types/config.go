// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pharma-papers/0.1"). Per prd001-fetch R5.2.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the PubMed fetch stage.
// Per prd001-fetch R1.3, R5.1-R5.5.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of papers to retrieve (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// APIKey is an optional NCBI E-utilities API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email identifies the caller to NCBI per the E-utilities usage policy.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// Tool is the E-utilities tool parameter (default "pharma-papers").
	Tool string `json:"tool,omitempty" yaml:"tool,omitempty"`

	// RequestDelay is the pause between the search and fetch calls (default 350ms).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`
}

// ReportConfig holds settings for affiliation screening and report output.
// Per prd004-report R4.1-R4.3.
type ReportConfig struct {
	// Workers bounds concurrent paper screening. Values below 2 select
	// the sequential path. Output order always matches input order.
	Workers int `json:"workers" yaml:"workers"`

	// TablesFile optionally points to a YAML file overriding the built-in
	// classification keyword tables.
	TablesFile string `json:"tables_file,omitempty" yaml:"tables_file,omitempty"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Fetch  FetchConfig  `json:"fetch" yaml:"fetch"`
	Report ReportConfig `json:"report" yaml:"report"`
}
