// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// WriteMarkdown writes rows as a Markdown report to w (R5.5). The
// nao1215/markdown builder keeps table escaping and alignment correct.
func WriteMarkdown(rows []types.ReportRow, query string, w io.Writer) error {
	md := markdown.NewMarkdown(w)

	md.H1("Pharma/Biotech Affiliation Report")
	md.PlainText("")
	if query != "" {
		md.PlainText(fmt.Sprintf("Query: `%s`", query))
		md.PlainText("")
	}

	if len(rows) == 0 {
		md.PlainText("No papers with pharmaceutical/biotech company affiliations found.")
		return md.Build()
	}

	tableRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		tableRows = append(tableRows, []string{
			row.PubmedID,
			row.Title,
			row.PublicationDate,
			strings.Join(row.NonAcademicAuthors, listSeparator),
			strings.Join(row.CompanyAffiliations, listSeparator),
			row.CorrespondingAuthorEmail,
		})
	}
	md.Table(markdown.TableSet{
		Header: columns,
		Rows:   tableRows,
	})

	md.PlainText("")
	md.PlainText(fmt.Sprintf("%d papers with company-affiliated authors.", len(rows)))
	return md.Build()
}
