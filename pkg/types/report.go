// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pharma-papers pipeline.
// Implements: prd003-extraction (AuthorEntry, R1.1-R1.4);
//
//	prd004-report (ReportRow, R2.1-R2.4).
//
// See docs/ARCHITECTURE.md § Data Structures.
package types

// AuthorEntry is the normalized form of one raw PubMed author sub-record.
// Built fresh per paper by the extraction stage; immutable once built.
type AuthorEntry struct {
	// Name is "LastName, ForeName" when a fore name is present, otherwise
	// "LastName, Initials". Collective (group) authors keep their name verbatim.
	Name string `json:"name" yaml:"name"`

	// Affiliations lists the author's affiliation strings in source order.
	Affiliations []string `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`

	// IsCorresponding is true when any affiliation string marks the author
	// as corresponding.
	IsCorresponding bool `json:"is_corresponding" yaml:"is_corresponding"`

	// Email is the last email address found across the author's
	// affiliation strings, or empty.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// ReportRow is one output record per qualifying paper: a paper with at
// least one author whose affiliation classified as a commercial
// pharma/biotech organization. Per prd004-report R2.1.
type ReportRow struct {
	// PubmedID is the PubMed identifier of the paper.
	PubmedID string `json:"pubmed_id" yaml:"pubmed_id"`

	// Title is the article title as returned by PubMed.
	Title string `json:"title" yaml:"title"`

	// PublicationDate is "Year Month Day" with missing parts omitted,
	// or "Unknown" when PubMed carries no date at all.
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// NonAcademicAuthors lists company-affiliated author names in paper order.
	NonAcademicAuthors []string `json:"non_academic_authors" yaml:"non_academic_authors"`

	// CompanyAffiliations is the deduplicated set of extracted company
	// names, in first-seen order.
	CompanyAffiliations []string `json:"company_affiliations" yaml:"company_affiliations"`

	// CorrespondingAuthorEmail is the contact email chosen for the paper:
	// the first corresponding author with an email, else the first author
	// with an email, else empty.
	CorrespondingAuthorEmail string `json:"corresponding_author_email,omitempty" yaml:"corresponding_author_email,omitempty"`
}
