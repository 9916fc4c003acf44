// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract normalizes raw PubMed author sub-records into
// AuthorEntry values the aggregation stage consumes.
// Implements: prd003-extraction (R1-R4);
//
//	docs/ARCHITECTURE § Extraction.
package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/pharma-papers/internal/pubmed"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// emailPattern matches a standard email address inside an affiliation
// string. PubMed appends the corresponding author's email to the end of
// the affiliation text rather than carrying a dedicated field.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// correspondPattern marks an author as corresponding. PubMed phrases
// this freely ("Corresponding author", "Address for correspondence").
var correspondPattern = regexp.MustCompile(`(?i)correspond`)

// Authors builds the normalized author list for one raw article record.
// It is tolerant of missing and variant fields: an absent author list
// yields an empty slice, and an author with no recognized affiliation
// shape simply carries zero affiliations (R1.1, R4.1). Authors never
// fails a paper.
func Authors(article pubmed.Article) []types.AuthorEntry {
	entries := make([]types.AuthorEntry, 0, len(article.Authors))

	for _, raw := range article.Authors {
		entry := types.AuthorEntry{
			Name:         authorName(raw),
			Affiliations: affiliations(raw),
		}

		for _, aff := range entry.Affiliations {
			// Last match across the affiliation list wins (R2.3).
			if email := emailPattern.FindString(aff); email != "" {
				entry.Email = email
			}
			if correspondPattern.MatchString(aff) {
				entry.IsCorresponding = true
			}
		}

		entries = append(entries, entry)
	}

	return entries
}

// authorName formats "LastName, ForeName", falling back to initials when
// no fore name is present (R1.2). Collective (group) authors have neither
// and keep their collective name verbatim.
func authorName(raw pubmed.Author) string {
	if raw.LastName == "" && raw.CollectiveName != "" {
		return raw.CollectiveName
	}
	if raw.ForeName != "" {
		return raw.LastName + ", " + raw.ForeName
	}
	return raw.LastName + ", " + raw.Initials
}

// affiliations gathers affiliation strings from whichever schema shape
// the record carries: AffiliationInfo object lists, or direct
// Affiliation elements (R1.3). Blank strings are dropped.
func affiliations(raw pubmed.Author) []string {
	var affs []string

	if len(raw.AffiliationInfo) > 0 {
		for _, info := range raw.AffiliationInfo {
			if s := strings.TrimSpace(info.Affiliation); s != "" {
				affs = append(affs, s)
			}
		}
		return affs
	}

	for _, aff := range raw.Affiliation {
		if s := strings.TrimSpace(aff); s != "" {
			affs = append(affs, s)
		}
	}
	return affs
}
