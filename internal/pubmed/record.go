// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import "encoding/xml"

// articleSet is the EFetch response envelope.
type articleSet struct {
	XMLName  xml.Name  `xml:"PubmedArticleSet"`
	Articles []Article `xml:"PubmedArticle"`
}

// Article mirrors the subset of the PubMed EFetch XML the pipeline reads.
// Field presence varies across PubMed schema versions; every field here
// may be empty on any given record, and downstream stages treat an
// absent field as a best-effort blank rather than an error (R3.1).
type Article struct {
	// PMID is the PubMed identifier.
	PMID string `xml:"MedlineCitation>PMID"`

	// Title is the article title.
	Title string `xml:"MedlineCitation>Article>ArticleTitle"`

	// PubDate is the journal issue publication date.
	PubDate PubDate `xml:"MedlineCitation>Article>Journal>JournalIssue>PubDate"`

	// Authors lists the raw author sub-records in source order.
	Authors []Author `xml:"MedlineCitation>Article>AuthorList>Author"`
}

// PubDate holds the optional publication date components. Older records
// carry a single free-text MedlineDate instead of structured fields.
type PubDate struct {
	Year        string `xml:"Year"`
	Month       string `xml:"Month"`
	Day         string `xml:"Day"`
	MedlineDate string `xml:"MedlineDate"`
}

// Author is one raw author sub-record. Affiliation data arrives in one of
// two shapes depending on schema version: a list of AffiliationInfo
// objects (current), or one or more direct Affiliation elements (legacy).
type Author struct {
	LastName       string `xml:"LastName"`
	ForeName       string `xml:"ForeName"`
	Initials       string `xml:"Initials"`
	CollectiveName string `xml:"CollectiveName"`

	AffiliationInfo []AffiliationInfo `xml:"AffiliationInfo"`
	Affiliation     []string          `xml:"Affiliation"`
}

// AffiliationInfo wraps one affiliation string in the current schema.
type AffiliationInfo struct {
	Affiliation string `xml:"Affiliation"`
}
