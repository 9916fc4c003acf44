package report

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/pharma-papers/internal/classify"
	"github.com/pdiddy/pharma-papers/internal/pubmed"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

func testAggregator() *Aggregator {
	return NewAggregator(classify.New(classify.DefaultTables()))
}

func companyArticle(pmid string) pubmed.Article {
	return pubmed.Article{
		PMID:    pmid,
		Title:   "A phase II trial",
		PubDate: pubmed.PubDate{Year: "2024", Month: "Aug", Day: "15"},
		Authors: []pubmed.Author{
			{
				LastName: "Doe", ForeName: "Jane",
				AffiliationInfo: []pubmed.AffiliationInfo{
					{Affiliation: "XYZ Biotech Inc., San Diego, CA."},
				},
			},
		},
	}
}

// --- Aggregate ---

func TestAggregateQualifyingPaper(t *testing.T) {
	row, err := testAggregator().Aggregate(companyArticle("39218401"))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if row == nil {
		t.Fatal("expected a row for a company-affiliated paper")
	}

	if row.PubmedID != "39218401" {
		t.Errorf("PubmedID = %q", row.PubmedID)
	}
	if row.PublicationDate != "2024 Aug 15" {
		t.Errorf("PublicationDate = %q, want %q", row.PublicationDate, "2024 Aug 15")
	}
	if !reflect.DeepEqual(row.NonAcademicAuthors, []string{"Doe, Jane"}) {
		t.Errorf("NonAcademicAuthors = %v", row.NonAcademicAuthors)
	}
	if !reflect.DeepEqual(row.CompanyAffiliations, []string{"XYZ Biotech"}) {
		t.Errorf("CompanyAffiliations = %v", row.CompanyAffiliations)
	}
}

func TestAggregateAllAcademicYieldsNothing(t *testing.T) {
	article := pubmed.Article{
		PMID:  "100",
		Title: "Campus-only paper",
		Authors: []pubmed.Author{
			{LastName: "Smith", AffiliationInfo: []pubmed.AffiliationInfo{
				{Affiliation: "Stanford University, Stanford, CA."},
			}},
			{LastName: "Lee", AffiliationInfo: []pubmed.AffiliationInfo{
				{Affiliation: "Massachusetts General Hospital, Boston, MA."},
			}},
		},
	}

	row, err := testAggregator().Aggregate(article)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if row != nil {
		t.Errorf("expected no row, got %+v", row)
	}
}

func TestAggregateMissingAuthorList(t *testing.T) {
	row, err := testAggregator().Aggregate(pubmed.Article{PMID: "101", Title: "No authors"})
	if err != nil {
		t.Fatalf("Aggregate should tolerate a missing author list: %v", err)
	}
	if row != nil {
		t.Errorf("expected no row, got %+v", row)
	}
}

func TestAggregateMissingPMID(t *testing.T) {
	_, err := testAggregator().Aggregate(pubmed.Article{Title: "Orphan record"})
	if err == nil || !strings.Contains(err.Error(), "PMID") {
		t.Errorf("expected malformed-record error, got: %v", err)
	}
}

func TestAggregateAuthorShortCircuit(t *testing.T) {
	// The author's first company affiliation decides; the second is not
	// scanned, so its distinct company name never enters the set.
	article := pubmed.Article{
		PMID: "102",
		Authors: []pubmed.Author{
			{
				LastName: "Doe",
				AffiliationInfo: []pubmed.AffiliationInfo{
					{Affiliation: "Acme Therapeutics, Boston, MA."},
					{Affiliation: "Beta Biologics Inc., Cambridge, MA."},
				},
			},
		},
	}

	row, err := testAggregator().Aggregate(article)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if !reflect.DeepEqual(row.NonAcademicAuthors, []string{"Doe, "}) {
		t.Errorf("NonAcademicAuthors = %v", row.NonAcademicAuthors)
	}
	if !reflect.DeepEqual(row.CompanyAffiliations, []string{"Acme Therapeutics"}) {
		t.Errorf("CompanyAffiliations = %v, second affiliation should not be scanned", row.CompanyAffiliations)
	}
}

func TestAggregateDeduplicatesCompanies(t *testing.T) {
	article := pubmed.Article{
		PMID: "103",
		Authors: []pubmed.Author{
			{LastName: "Doe", AffiliationInfo: []pubmed.AffiliationInfo{
				{Affiliation: "Pfizer Inc., New York, NY."},
			}},
			{LastName: "Roe", AffiliationInfo: []pubmed.AffiliationInfo{
				{Affiliation: "Pfizer Inc., New York, NY."},
			}},
		},
	}

	row, err := testAggregator().Aggregate(article)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(row.NonAcademicAuthors) != 2 {
		t.Errorf("NonAcademicAuthors = %v, want both authors", row.NonAcademicAuthors)
	}
	if !reflect.DeepEqual(row.CompanyAffiliations, []string{"Pfizer Inc"}) {
		t.Errorf("CompanyAffiliations = %v, want the company once", row.CompanyAffiliations)
	}
}

func TestChooseEmail(t *testing.T) {
	tests := []struct {
		name    string
		authors []types.AuthorEntry
		want    string
	}{
		{
			"corresponding author wins over earlier email",
			[]types.AuthorEntry{
				{Name: "A", Email: "a@x.com"},
				{Name: "B", IsCorresponding: true, Email: "b@x.com"},
			},
			"b@x.com",
		},
		{
			"fallback to first email when corresponding has none",
			[]types.AuthorEntry{
				{Name: "A", Email: "a@x.com"},
				{Name: "B", IsCorresponding: true},
			},
			"a@x.com",
		},
		{
			"first corresponding wins among several",
			[]types.AuthorEntry{
				{Name: "A", IsCorresponding: true, Email: "a@x.com"},
				{Name: "B", IsCorresponding: true, Email: "b@x.com"},
			},
			"a@x.com",
		},
		{
			"no emails anywhere",
			[]types.AuthorEntry{{Name: "A"}, {Name: "B", IsCorresponding: true}},
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chooseEmail(tt.authors); got != tt.want {
				t.Errorf("chooseEmail = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPublicationDate(t *testing.T) {
	tests := []struct {
		name string
		date pubmed.PubDate
		want string
	}{
		{"full date", pubmed.PubDate{Year: "2024", Month: "Aug", Day: "15"}, "2024 Aug 15"},
		{"year only", pubmed.PubDate{Year: "2024"}, "2024"},
		{"year and month", pubmed.PubDate{Year: "2024", Month: "Aug"}, "2024 Aug"},
		{"medline date", pubmed.PubDate{MedlineDate: "2023 Nov-Dec"}, "2023 Nov-Dec"},
		{"entirely absent", pubmed.PubDate{}, "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := publicationDate(tt.date); got != tt.want {
				t.Errorf("publicationDate = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- ProcessBatch ---

func TestProcessBatchContinuesAfterMalformedRecord(t *testing.T) {
	articles := []pubmed.Article{
		companyArticle("1"),
		{Title: "no pmid"},
		companyArticle("3"),
	}

	var buf bytes.Buffer
	rows, summary := testAggregator().ProcessBatch(context.Background(), articles, 1, &buf)

	if summary.Failed != 1 || summary.Matched != 2 {
		t.Errorf("summary = %+v, want 2 matched / 1 failed", summary)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if !strings.Contains(buf.String(), "warning:") {
		t.Error("malformed record should be logged as a warning")
	}
}

func TestProcessBatchPreservesOrder(t *testing.T) {
	var articles []pubmed.Article
	for i := 0; i < 40; i++ {
		articles = append(articles, companyArticle(fmt.Sprintf("%d", i)))
	}

	for _, workers := range []int{1, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			var buf bytes.Buffer
			rows, summary := testAggregator().ProcessBatch(context.Background(), articles, workers, &buf)
			if summary.Matched != 40 {
				t.Fatalf("Matched = %d, want 40", summary.Matched)
			}
			for i, row := range rows {
				if row.PubmedID != fmt.Sprintf("%d", i) {
					t.Fatalf("rows[%d].PubmedID = %q, order not preserved", i, row.PubmedID)
				}
			}
		})
	}
}

func TestProcessBatchSummaryCounts(t *testing.T) {
	articles := []pubmed.Article{
		companyArticle("1"),
		{PMID: "2", Authors: []pubmed.Author{{LastName: "Smith", AffiliationInfo: []pubmed.AffiliationInfo{
			{Affiliation: "Stanford University, Stanford, CA."},
		}}}},
		{Title: "no pmid"},
	}

	var buf bytes.Buffer
	_, summary := testAggregator().ProcessBatch(context.Background(), articles, 1, &buf)

	want := BatchSummary{Matched: 1, Excluded: 1, Failed: 1}
	if summary != want {
		t.Errorf("summary = %+v, want %+v", summary, want)
	}
	if summary.Total() != 3 {
		t.Errorf("Total() = %d, want 3", summary.Total())
	}
}
