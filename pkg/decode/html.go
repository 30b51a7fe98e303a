package decode

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/docsift/docsift/pkg/tables"
)

// HTML decodes HTML documents with goquery. <table> elements become
// structural grids; the remaining block elements become text paragraphs.
type HTML struct{}

// Decode parses the document, lifts out tables, then collects paragraph
// text from the remaining block-level elements.
func (d *HTML) Decode(_ context.Context, data []byte) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Format: FormatHTML, Reason: "parse HTML", Err: err}
	}

	var grids []tables.Grid
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if grid, ok := gridFromTable(table); ok {
			grids = append(grids, grid)
		}
	})

	// Drop non-content and table nodes before reading paragraph text.
	doc.Find("script, style, noscript, table").Remove()

	var paragraphs []string
	doc.Find("p, h1, h2, h3, h4, h5, h6, li, blockquote, pre").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) == 0 {
		if text := strings.TrimSpace(doc.Find("body").Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	return &Result{
		Text:             strings.Join(paragraphs, "\n\n"),
		Tables:           grids,
		StructuredTables: true,
		ParagraphCount:   len(paragraphs),
	}, nil
}

// Format returns the html format identifier.
func (d *HTML) Format() Format { return FormatHTML }

// gridFromTable converts one <table>. A <th> row becomes the header;
// otherwise all rows are data and headers stay absent.
func gridFromTable(table *goquery.Selection) (tables.Grid, bool) {
	var grid tables.Grid

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		ths := tr.Find("th")
		if ths.Length() > 0 && grid.Headers == nil && len(grid.Rows) == 0 {
			ths.Each(func(_ int, th *goquery.Selection) {
				grid.Headers = append(grid.Headers, strings.TrimSpace(th.Text()))
			})
			return
		}
		var row []string
		tr.Find("td, th").Each(func(_ int, td *goquery.Selection) {
			row = append(row, strings.TrimSpace(td.Text()))
		})
		if len(row) > 0 {
			grid.Rows = append(grid.Rows, row)
		}
	})

	if len(grid.Rows) == 0 && len(grid.Headers) == 0 {
		return tables.Grid{}, false
	}
	return grid, true
}
