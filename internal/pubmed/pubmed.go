// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed queries the NCBI E-utilities API: ESearch for PMIDs
// matching a query, EFetch for full article records.
// Implements: prd001-fetch (R1-R5);
//
//	docs/ARCHITECTURE § Fetch.
package pubmed

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/pharma-papers/internal/httputil"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// E-utilities endpoints. Declared as vars so tests can substitute
// httptest servers.
var (
	esearchAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	efetchAPIBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
)

// Client queries PubMed through the E-utilities API (R2.1, R2.2).
type Client struct {
	HTTP *http.Client
}

// Search runs an ESearch query sorted by relevance and returns the
// matching PMIDs, at most cfg.MaxResults of them (R1.1, R1.3). The query
// supports full PubMed query syntax; it passes through unmodified.
func (c *Client) Search(ctx context.Context, query string, cfg types.FetchConfig) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is empty")
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 100
	}

	params := url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmax":  {fmt.Sprintf("%d", maxResults)},
		"sort":    {"relevance"},
		"retmode": {"json"},
	}
	addIdentification(params, cfg)

	body, err := c.get(ctx, esearchAPIBase+"?"+params.Encode(), cfg)
	if err != nil {
		return nil, fmt.Errorf("ESearch request: %w", err)
	}
	defer body.Close()

	var sr esearchResponse
	if err := json.NewDecoder(body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing ESearch response: %w", err)
	}
	return sr.Result.IDList, nil
}

// Fetch retrieves full article records for the given PMIDs via EFetch
// (R2.2). The returned slice preserves PubMed's delivery order, which
// ESearch already sorted by relevance.
func (c *Client) Fetch(ctx context.Context, pmids []string, cfg types.FetchConfig) ([]Article, error) {
	if len(pmids) == 0 {
		return nil, nil
	}

	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(pmids, ",")},
		"rettype": {"xml"},
		"retmode": {"xml"},
	}
	addIdentification(params, cfg)

	body, err := c.get(ctx, efetchAPIBase+"?"+params.Encode(), cfg)
	if err != nil {
		return nil, fmt.Errorf("EFetch request: %w", err)
	}
	defer body.Close()

	var set articleSet
	if err := xml.NewDecoder(body).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing EFetch response: %w", err)
	}
	return set.Articles, nil
}

// get issues a GET with the shared headers and 429 retry handling (R5.1).
func (c *Client) get(ctx context.Context, reqURL string, cfg types.FetchConfig) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("E-utilities returned HTTP %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// addIdentification attaches the tool, email, and api_key parameters the
// E-utilities usage policy asks for (R5.2, R5.3).
func addIdentification(params url.Values, cfg types.FetchConfig) {
	tool := cfg.Tool
	if tool == "" {
		tool = "pharma-papers"
	}
	params.Set("tool", tool)
	if cfg.Email != "" {
		params.Set("email", cfg.Email)
	}
	if cfg.APIKey != "" {
		params.Set("api_key", cfg.APIKey)
	}
}

// ESearch JSON structures.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
}
