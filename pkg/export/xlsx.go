package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/docsift/docsift/pkg/content"
)

const (
	minColWidth = 10.0
	maxColWidth = 50.0
)

// renderXLSX builds the five-sheet workbook: Metadata (optional), All Data,
// Tables, Structured Data, and Summary. Each sheet is degenerate-safe;
// empty table or field sets render an informational row instead of an
// empty sheet.
func renderXLSX(result *content.Result, opts Options) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	first := true
	addSheet := func(name string) (*sheetWriter, error) {
		if first {
			// Rename the workbook's default sheet instead of creating one.
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, err
			}
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
		return &sheetWriter{f: f, name: name}, nil
	}

	build := func() error {
		if opts.IncludeMetadata {
			sw, err := addSheet("Metadata")
			if err != nil {
				return err
			}
			writeMetadataSheet(sw, result)
			if err := sw.finish(); err != nil {
				return err
			}
		}

		for _, step := range []struct {
			name  string
			write func(*sheetWriter, *content.Result)
		}{
			{"All Data", writeAllDataSheet},
			{"Tables", writeTablesSheet},
			{"Structured Data", writeStructuredSheet},
			{"Summary", writeSummarySheet},
		} {
			sw, err := addSheet(step.name)
			if err != nil {
				return err
			}
			step.write(sw, result)
			if err := sw.finish(); err != nil {
				return err
			}
		}
		return nil
	}

	if err := build(); err != nil {
		return nil, &Error{Path: opts.DestinationPath, Reason: "build workbook", Err: err}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, &Error{Path: opts.DestinationPath, Reason: "serialize workbook", Err: err}
	}
	return buf.Bytes(), nil
}

// sheetWriter appends rows to one sheet and tracks per-column content
// widths so the sheet's column sizing is derived independently.
type sheetWriter struct {
	f      *excelize.File
	name   string
	row    int
	widths []float64
	err    error
}

func (sw *sheetWriter) writeRow(cells ...any) {
	if sw.err != nil {
		return
	}
	sw.row++
	cell, err := excelize.CoordinatesToCellName(1, sw.row)
	if err != nil {
		sw.err = err
		return
	}
	if err := sw.f.SetSheetRow(sw.name, cell, &cells); err != nil {
		sw.err = err
		return
	}
	for i, c := range cells {
		w := float64(len(fmt.Sprint(c))) + 2
		for len(sw.widths) <= i {
			sw.widths = append(sw.widths, 0)
		}
		if w > sw.widths[i] {
			sw.widths[i] = w
		}
	}
}

func (sw *sheetWriter) blankRow() {
	if sw.err != nil {
		return
	}
	sw.row++
}

// finish applies the column widths: max content width + 2, clamped to a
// ceiling of 50 and floored at 10.
func (sw *sheetWriter) finish() error {
	if sw.err != nil {
		return sw.err
	}
	for i, w := range sw.widths {
		if w < minColWidth {
			w = minColWidth
		}
		if w > maxColWidth {
			w = maxColWidth
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := sw.f.SetColWidth(sw.name, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

func writeMetadataSheet(sw *sheetWriter, result *content.Result) {
	m := result.Metadata
	sw.writeRow("Property", "Value")
	sw.writeRow("File Name", m.FileName)
	sw.writeRow("Source Type", m.SourceType)
	sw.writeRow("Extracted At", m.ExtractedAt.Format(time.RFC3339))
	if m.PageCount > 0 {
		sw.writeRow("Page Count", m.PageCount)
	}
	if m.ParagraphCount > 0 {
		sw.writeRow("Paragraph Count", m.ParagraphCount)
	}
	sw.writeRow("Total Items", result.Summary.TotalItems)
}

func writeAllDataSheet(sw *sheetWriter, result *content.Result) {
	sw.writeRow("ID", "Type", "Content", "Confidence", "Page", "Paragraph")
	for _, u := range result.Contents {
		var page, paragraph any
		if u.Position != nil {
			if u.Position.Page > 0 {
				page = u.Position.Page
			}
			if u.Position.Paragraph > 0 {
				paragraph = u.Position.Paragraph
			}
		}
		sw.writeRow(u.ID, u.Type, flattenNewlines(u.Text), u.Confidence, page, paragraph)
	}
}

func writeTablesSheet(sw *sheetWriter, result *content.Result) {
	tableUnits := result.TableUnits()
	if len(tableUnits) == 0 {
		sw.writeRow("No tables were found in this document")
		return
	}

	for i, u := range tableUnits {
		sw.writeRow(fmt.Sprintf("Table %d", i+1))
		sw.blankRow()
		grid := u.TableData
		if grid.HasHeaders() {
			sw.writeRow(toAnyRow(grid.Headers)...)
		}
		for _, row := range grid.Rows {
			sw.writeRow(toAnyRow(row)...)
		}
		sw.blankRow()
		sw.blankRow()
	}
}

func writeStructuredSheet(sw *sheetWriter, result *content.Result) {
	flat := MergedFields(result).Flatten()
	if len(flat.Keys) == 0 {
		sw.writeRow("No structured fields were detected in this document")
		return
	}

	sw.writeRow(toAnyRow(flat.Keys)...)
	for _, row := range flat.Rows {
		sw.writeRow(toAnyRow(row)...)
	}
}

func writeSummarySheet(sw *sheetWriter, result *content.Result) {
	sw.writeRow("Type", "Count")
	for _, t := range sortedTypes(result.Summary.ByType) {
		sw.writeRow(t, result.Summary.ByType[t])
	}
	sw.blankRow()
	sw.writeRow("Total Items", result.Summary.TotalItems)
}

func toAnyRow(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}
