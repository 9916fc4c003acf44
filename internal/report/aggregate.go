// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report screens papers for company-affiliated authors and
// renders the qualifying ones as report rows.
// Implements: prd004-report (R1-R5);
//
//	docs/ARCHITECTURE § Report.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/pharma-papers/internal/classify"
	"github.com/pdiddy/pharma-papers/internal/extract"
	"github.com/pdiddy/pharma-papers/internal/pubmed"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// Aggregator turns raw article records into report rows. It holds only
// the shared classifier and is safe for concurrent use.
type Aggregator struct {
	classifier *classify.Classifier
}

// NewAggregator returns an Aggregator using the given classifier.
func NewAggregator(c *classify.Classifier) *Aggregator {
	return &Aggregator{classifier: c}
}

// Aggregate screens one article. It returns (row, nil) for a qualifying
// paper, (nil, nil) for a paper with no company-affiliated author, and
// (nil, err) for a malformed record (R2.1, R3.1).
func (a *Aggregator) Aggregate(article pubmed.Article) (*types.ReportRow, error) {
	if strings.TrimSpace(article.PMID) == "" {
		return nil, fmt.Errorf("record has no PMID")
	}

	authors := extract.Authors(article)

	var companyAuthors []string
	var companies []string
	seen := make(map[string]struct{})

	for _, author := range authors {
		// One company hit per author suffices: stop scanning the
		// author's remaining affiliations after the first (R2.2).
		for _, aff := range author.Affiliations {
			res := a.classifier.Classify(aff)
			if !res.IsCompany {
				continue
			}
			companyAuthors = append(companyAuthors, author.Name)
			if res.CompanyName != "" {
				if _, dup := seen[res.CompanyName]; !dup {
					seen[res.CompanyName] = struct{}{}
					companies = append(companies, res.CompanyName)
				}
			}
			break
		}
	}

	if len(companyAuthors) == 0 {
		return nil, nil
	}

	return &types.ReportRow{
		PubmedID:                 article.PMID,
		Title:                    article.Title,
		PublicationDate:          publicationDate(article.PubDate),
		NonAcademicAuthors:       companyAuthors,
		CompanyAffiliations:      companies,
		CorrespondingAuthorEmail: chooseEmail(authors),
	}, nil
}

// chooseEmail picks the paper's contact email: the first corresponding
// author with an email wins, then the first author with an email (R2.4).
func chooseEmail(authors []types.AuthorEntry) string {
	for _, author := range authors {
		if author.IsCorresponding && author.Email != "" {
			return author.Email
		}
	}
	for _, author := range authors {
		if author.Email != "" {
			return author.Email
		}
	}
	return ""
}

// publicationDate assembles "Year Month Day" with missing parts omitted.
// Legacy records carry a free-text MedlineDate instead; a record with no
// date at all reads "Unknown" (R2.3).
func publicationDate(d pubmed.PubDate) string {
	if d.Year == "" && d.Month == "" && d.Day == "" {
		if d.MedlineDate != "" {
			return d.MedlineDate
		}
		return "Unknown"
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", d.Year, d.Month, d.Day))
}

// BatchSummary holds counts from one screening run (R4.3).
type BatchSummary struct {
	Matched  int
	Excluded int
	Failed   int
}

// Total returns the number of papers processed.
func (s BatchSummary) Total() int {
	return s.Matched + s.Excluded + s.Failed
}

// ProcessBatch screens articles and returns rows for the qualifying ones,
// in input order. A malformed record is logged to w and skipped; the
// batch always continues (R3.2). When workers is greater than one, papers
// are screened concurrently with bounded fan-out; per-paper screening is
// pure, and results are collected by index so output order still matches
// input order (R4.1, R4.2).
func (a *Aggregator) ProcessBatch(ctx context.Context, articles []pubmed.Article, workers int, w io.Writer) ([]types.ReportRow, BatchSummary) {
	rows := make([]*types.ReportRow, len(articles))
	errs := make([]error, len(articles))

	if workers > 1 {
		var g errgroup.Group
		g.SetLimit(workers)
		for i := range articles {
			i := i
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					return nil
				}
				rows[i], errs[i] = a.Aggregate(articles[i])
				return nil
			})
		}
		g.Wait()
	} else {
		for i := range articles {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				continue
			}
			rows[i], errs[i] = a.Aggregate(articles[i])
		}
	}

	var out []types.ReportRow
	var summary BatchSummary
	for i := range articles {
		switch {
		case errs[i] != nil:
			fmt.Fprintf(w, "warning: skipping paper %d/%d: %v\n", i+1, len(articles), errs[i])
			summary.Failed++
		case rows[i] == nil:
			summary.Excluded++
		default:
			out = append(out, *rows[i])
			summary.Matched++
		}
	}
	return out, summary
}
