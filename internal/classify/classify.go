// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"regexp"
	"strings"
)

// Result is the outcome of classifying one affiliation string.
type Result struct {
	// IsCompany is true when the affiliation denotes a commercial
	// pharma/biotech organization.
	IsCompany bool

	// CompanyName is the extracted organization name. Non-empty whenever
	// IsCompany is true: when no name pattern matches, a truncated form
	// of the affiliation itself substitutes (R3.4).
	CompanyName string
}

// fallbackMax caps the length of the affiliation substitute used when no
// name pattern matches (R3.4).
const fallbackMax = 50

// knownCompany pairs a lowercased brand fragment with a pattern that
// captures the case-preserving run from the fragment up to the next
// comma, semicolon, or period.
type knownCompany struct {
	fragment string
	capture  *regexp.Regexp
}

// nameMatcher is one step of the ordered name-extraction cascade (R3.1-R3.3).
// Matchers are evaluated in priority order; the first match wins.
type nameMatcher struct {
	name string
	re   *regexp.Regexp
}

// nameMatchers extract an organization name from an original-case
// affiliation once a sector keyword has fired. Order encodes confidence.
var nameMatchers = []nameMatcher{
	// Capitalized run ending in a company-type suffix word.
	{"type-suffix", regexp.MustCompile(`([A-Z][A-Za-z0-9\s]+(?:Pharma|Therapeutics|Biotech|Biologics|Laboratories|Sciences|Health|Medical|Genomics|Diagnostics))`)},
	// Capitalized run ending in a legal-entity suffix, suffix kept.
	{"legal-suffix", regexp.MustCompile(`([A-Z][A-Za-z0-9\s]+(?:Inc\.|LLC|Ltd\.?|GmbH|Corp\.?|S\.A\.|Co\.|B\.V\.))`)},
	// Capitalized run before a legal-entity suffix, suffix dropped.
	{"legal-suffix-stripped", regexp.MustCompile(`([A-Z][A-Za-z0-9\s]+)(?:\s+Inc\.|\s+LLC|\s+Ltd\.?|\s+GmbH|\s+Corp\.?|\s+S\.A\.|\s+Co\.|\s+B\.V\.)`)},
}

// Classifier matches affiliation strings against compiled keyword tables.
// It is stateless apart from the tables and safe for concurrent use.
type Classifier struct {
	known    []knownCompany
	academic []string
	sector   []string
}

// New compiles the given tables into a Classifier. Fragment capture
// patterns are built once here so Classify stays allocation-light.
func New(t Tables) *Classifier {
	c := &Classifier{}
	for _, fragment := range t.KnownCompanies {
		lower := strings.ToLower(fragment)
		c.known = append(c.known, knownCompany{
			fragment: lower,
			capture:  regexp.MustCompile(`(?i)(` + regexp.QuoteMeta(lower) + `[^,;.]*)`),
		})
	}
	for _, kw := range t.AcademicKeywords {
		c.academic = append(c.academic, strings.ToLower(kw))
	}
	for _, kw := range t.SectorKeywords {
		c.sector = append(c.sector, strings.ToLower(kw))
	}
	return c
}

// Classify reports whether an affiliation string denotes a pharma/biotech
// company, and what substring names that company. The cascade runs in
// strict priority order and the first rule to fire decides (R1.4):
//
//  1. known-company fragment → company, name captured from the fragment
//     to the next comma, semicolon, or period;
//  2. academic keyword → not a company, overriding any sector keyword;
//  3. sector keyword → company, name via the matcher cascade, with a
//     truncated affiliation substitute when no matcher fires;
//  4. no table hit → not a company.
//
// Empty or malformed input classifies as not-a-company; Classify never
// fails. The function is pure: identical input yields identical output.
func (c *Classifier) Classify(affiliation string) Result {
	lower := strings.ToLower(affiliation)

	for _, kc := range c.known {
		if !strings.Contains(lower, kc.fragment) {
			continue
		}
		if m := kc.capture.FindStringSubmatch(affiliation); m != nil {
			return Result{IsCompany: true, CompanyName: strings.TrimSpace(m[1])}
		}
		return Result{IsCompany: true, CompanyName: kc.fragment}
	}

	for _, kw := range c.academic {
		if strings.Contains(lower, kw) {
			return Result{}
		}
	}

	for _, kw := range c.sector {
		if !strings.Contains(lower, kw) {
			continue
		}
		if name, ok := extractName(affiliation); ok {
			return Result{IsCompany: true, CompanyName: name}
		}
		return Result{IsCompany: true, CompanyName: truncate(affiliation, fallbackMax)}
	}

	return Result{}
}

// extractName runs the matcher cascade against the original-case
// affiliation and returns the first capture (R3.1-R3.3).
func extractName(affiliation string) (string, bool) {
	for _, m := range nameMatchers {
		if sub := m.re.FindStringSubmatch(affiliation); sub != nil {
			return strings.TrimSpace(sub[1]), true
		}
	}
	return "", false
}

// truncate returns s cut to max runes with an ellipsis marker, or s
// unchanged when it already fits.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
