// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// columns lists the report fields in the exact output order (R5.1).
var columns = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// listSeparator joins multi-value fields at output time (R5.2).
const listSeparator = "; "

// WriteCSV writes rows as CSV with a header line to w (R5.1).
func WriteCSV(rows []types.ReportRow, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(csvRecord(row)); err != nil {
			return fmt.Errorf("writing CSV row %s: %w", row.PubmedID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRecord(row types.ReportRow) []string {
	return []string{
		row.PubmedID,
		row.Title,
		row.PublicationDate,
		strings.Join(row.NonAcademicAuthors, listSeparator),
		strings.Join(row.CompanyAffiliations, listSeparator),
		row.CorrespondingAuthorEmail,
	}
}

// FormatTable writes rows as a human-readable table to w (R5.3).
func FormatTable(rows []types.ReportRow, w io.Writer) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No papers with pharmaceutical/biotech company affiliations found.")
		return
	}

	fmt.Fprintf(w, "%-10s  %-50s  %-12s  %-30s  %-30s  %s\n",
		"PubmedID", "Title", "Date", "Non-academic Author(s)", "Company Affiliation(s)", "Email")
	fmt.Fprintln(w, strings.Repeat("-", 150))

	for _, row := range rows {
		fmt.Fprintf(w, "%-10s  %-50s  %-12s  %-30s  %-30s  %s\n",
			row.PubmedID,
			clip(row.Title, 50),
			clip(row.PublicationDate, 12),
			clip(strings.Join(row.NonAcademicAuthors, listSeparator), 30),
			clip(strings.Join(row.CompanyAffiliations, listSeparator), 30),
			row.CorrespondingAuthorEmail)
	}

	fmt.Fprintf(w, "\n%d papers with company-affiliated authors\n", len(rows))
}

// FormatJSON writes rows as indented JSON to w (R5.4).
func FormatJSON(rows []types.ReportRow, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
