package pubmed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

func testCfg() types.FetchConfig {
	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		MaxResults: 20,
		Email:      "user@example.com",
	}
}

// --- ESearch ---

const sampleESearchJSON = `{
  "esearchresult": {
    "count": "3",
    "idlist": ["39218401", "38991122", "38104477"]
  }
}`

func TestClientSearch(t *testing.T) {
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleESearchJSON)
	}))
	defer ts.Close()

	old := esearchAPIBase
	esearchAPIBase = ts.URL
	defer func() { esearchAPIBase = old }()

	c := &Client{HTTP: ts.Client()}
	ids, err := c.Search(context.Background(), "cancer immunotherapy", testCfg())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("len(ids) = %d, want 3", len(ids))
	}
	if ids[0] != "39218401" {
		t.Errorf("ids[0] = %q, want %q", ids[0], "39218401")
	}

	if gotQuery.Get("term") != "cancer immunotherapy" {
		t.Errorf("term = %q", gotQuery.Get("term"))
	}
	if gotQuery.Get("db") != "pubmed" {
		t.Errorf("db = %q, want pubmed", gotQuery.Get("db"))
	}
	if gotQuery.Get("retmax") != "20" {
		t.Errorf("retmax = %q, want 20", gotQuery.Get("retmax"))
	}
	if gotQuery.Get("sort") != "relevance" {
		t.Errorf("sort = %q, want relevance", gotQuery.Get("sort"))
	}
	if gotQuery.Get("tool") != "pharma-papers" {
		t.Errorf("tool = %q, want default tool name", gotQuery.Get("tool"))
	}
	if gotQuery.Get("email") != "user@example.com" {
		t.Errorf("email = %q", gotQuery.Get("email"))
	}
}

func TestClientSearchEmptyQuery(t *testing.T) {
	c := &Client{HTTP: http.DefaultClient}
	_, err := c.Search(context.Background(), "   ", testCfg())
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("expected empty query error, got: %v", err)
	}
}

func TestClientSearchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	old := esearchAPIBase
	esearchAPIBase = ts.URL
	defer func() { esearchAPIBase = old }()

	c := &Client{HTTP: ts.Client()}
	_, err := c.Search(context.Background(), "cancer", testCfg())
	if err == nil || !strings.Contains(err.Error(), "HTTP 500") {
		t.Errorf("expected HTTP 500 error, got: %v", err)
	}
}

// --- EFetch ---

const sampleEFetchXML = `<?xml version="1.0" encoding="UTF-8"?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">39218401</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate>
              <Year>2024</Year>
              <Month>Aug</Month>
              <Day>15</Day>
            </PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>A phase II trial of a bispecific antibody.</ArticleTitle>
        <AuthorList>
          <Author>
            <LastName>Doe</LastName>
            <ForeName>Jane</ForeName>
            <Initials>J</Initials>
            <AffiliationInfo>
              <Affiliation>Acme Therapeutics, Boston, MA. jane.doe@acmetx.com.</Affiliation>
            </AffiliationInfo>
            <AffiliationInfo>
              <Affiliation>Harvard Medical School, Boston, MA.</Affiliation>
            </AffiliationInfo>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">38991122</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate>
              <MedlineDate>2023 Nov-Dec</MedlineDate>
            </PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>Legacy record with direct affiliation.</ArticleTitle>
        <AuthorList>
          <Author>
            <LastName>Smith</LastName>
            <Initials>A</Initials>
            <Affiliation>Stanford University, Stanford, CA.</Affiliation>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func TestClientFetch(t *testing.T) {
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, sampleEFetchXML)
	}))
	defer ts.Close()

	old := efetchAPIBase
	efetchAPIBase = ts.URL
	defer func() { efetchAPIBase = old }()

	c := &Client{HTTP: ts.Client()}
	articles, err := c.Fetch(context.Background(), []string{"39218401", "38991122"}, testCfg())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2", len(articles))
	}

	if gotQuery.Get("id") != "39218401,38991122" {
		t.Errorf("id = %q", gotQuery.Get("id"))
	}

	a := articles[0]
	if a.PMID != "39218401" {
		t.Errorf("PMID = %q", a.PMID)
	}
	if a.Title != "A phase II trial of a bispecific antibody." {
		t.Errorf("Title = %q", a.Title)
	}
	if a.PubDate.Year != "2024" || a.PubDate.Month != "Aug" || a.PubDate.Day != "15" {
		t.Errorf("PubDate = %+v", a.PubDate)
	}
	if len(a.Authors) != 1 {
		t.Fatalf("len(Authors) = %d, want 1", len(a.Authors))
	}
	if len(a.Authors[0].AffiliationInfo) != 2 {
		t.Errorf("len(AffiliationInfo) = %d, want 2", len(a.Authors[0].AffiliationInfo))
	}

	// Legacy record: MedlineDate and direct Affiliation element.
	b := articles[1]
	if b.PubDate.MedlineDate != "2023 Nov-Dec" {
		t.Errorf("MedlineDate = %q", b.PubDate.MedlineDate)
	}
	if len(b.Authors[0].Affiliation) != 1 || !strings.Contains(b.Authors[0].Affiliation[0], "Stanford") {
		t.Errorf("direct Affiliation = %v", b.Authors[0].Affiliation)
	}
}

func TestClientFetchNoIDs(t *testing.T) {
	c := &Client{HTTP: http.DefaultClient}
	articles, err := c.Fetch(context.Background(), nil, testCfg())
	if err != nil {
		t.Fatalf("Fetch(nil): %v", err)
	}
	if articles != nil {
		t.Errorf("articles = %v, want nil", articles)
	}
}
