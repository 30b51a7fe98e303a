package decode

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"strings"

	"github.com/docsift/docsift/pkg/tables"
)

// Docx decodes Microsoft Word documents by reading word/document.xml from
// the ZIP container. Body paragraphs become text; w:tbl elements become
// structural table grids, so the heuristic detector is not needed.
type Docx struct{}

// Decode walks the document XML token stream once, collecting body
// paragraphs and table grids.
func (d *Docx) Decode(_ context.Context, data []byte) (*Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &DecodeError{Format: FormatDocx, Reason: "not a ZIP container", Err: err}
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, &DecodeError{Format: FormatDocx, Reason: "word/document.xml not found in archive"}
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, &DecodeError{Format: FormatDocx, Reason: "open document.xml", Err: err}
	}
	defer rc.Close()

	paragraphs, grids, err := walkDocumentXML(rc)
	if err != nil {
		return nil, &DecodeError{Format: FormatDocx, Reason: "malformed document.xml", Err: err}
	}

	return &Result{
		Text:             strings.Join(paragraphs, "\n\n"),
		Tables:           grids,
		StructuredTables: true,
		ParagraphCount:   len(paragraphs),
	}, nil
}

// Format returns the docx format identifier.
func (d *Docx) Format() Format { return FormatDocx }

// walkDocumentXML token-walks WordprocessingML. Paragraphs inside tables
// feed their cell, not the body text.
func walkDocumentXML(r io.Reader) ([]string, []tables.Grid, error) {
	decoder := xml.NewDecoder(r)

	var paragraphs []string
	var grids []tables.Grid

	var para strings.Builder
	inParagraph := false

	tableDepth := 0
	var rows [][]string
	var row []string
	var cell strings.Builder

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
				if tableDepth == 1 {
					rows = nil
				}
			case "tr":
				if tableDepth == 1 {
					row = nil
				}
			case "tc":
				if tableDepth == 1 {
					cell.Reset()
				}
			case "p":
				if tableDepth == 0 {
					inParagraph = true
					para.Reset()
				} else if cell.Len() > 0 {
					cell.WriteByte(' ')
				}
			case "br":
				if inParagraph {
					para.WriteByte('\n')
				}
			case "tab":
				if inParagraph {
					para.WriteByte(' ')
				}
			}

		case xml.CharData:
			if tableDepth > 0 {
				cell.Write(t)
			} else if inParagraph {
				para.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth--
				if tableDepth == 0 && len(rows) > 0 {
					grids = append(grids, shapeDocxGrid(rows))
				}
			case "tr":
				if tableDepth == 1 && len(row) > 0 {
					rows = append(rows, row)
					row = nil
				}
			case "tc":
				if tableDepth == 1 {
					row = append(row, strings.TrimSpace(cell.String()))
					cell.Reset()
				}
			case "p":
				if tableDepth == 0 && inParagraph {
					inParagraph = false
					if text := strings.TrimSpace(para.String()); text != "" {
						paragraphs = append(paragraphs, text)
					}
				}
			}
		}
	}

	return paragraphs, grids, nil
}

// shapeDocxGrid treats the first row as a header when the table has more
// than one row; a single-row table keeps its row as data.
func shapeDocxGrid(rows [][]string) tables.Grid {
	if len(rows) > 1 {
		return tables.Grid{Headers: rows[0], Rows: rows[1:]}
	}
	return tables.Grid{Rows: rows}
}
