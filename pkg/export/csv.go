package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/docsift/docsift/pkg/content"
)

var csvHeader = []string{"ID", "Type", "Content", "Confidence", "Page", "Paragraph", "Has Table Data"}

// renderCSV writes one header row and one row per unit. Embedded line
// breaks in content collapse to spaces; quoting is standard CSV via
// encoding/csv. When metadata inclusion is requested, metadata and summary
// lines are appended as '#'-prefixed comments after the tabular data.
func renderCSV(result *content.Result, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, &Error{Path: opts.DestinationPath, Reason: "write header", Err: err}
	}

	for _, u := range result.Contents {
		row := []string{
			u.ID,
			u.Type,
			flattenNewlines(u.Text),
			strconv.FormatFloat(u.Confidence, 'f', 2, 64),
			positionCell(u.Position, func(p *content.Position) int { return p.Page }),
			positionCell(u.Position, func(p *content.Position) int { return p.Paragraph }),
			strconv.FormatBool(u.TableData != nil),
		}
		if err := w.Write(row); err != nil {
			return nil, &Error{Path: opts.DestinationPath, Reason: "write row", Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, &Error{Path: opts.DestinationPath, Reason: "flush rows", Err: err}
	}

	if opts.IncludeMetadata {
		writeCSVComments(&buf, result)
	}

	return buf.Bytes(), nil
}

// writeCSVComments appends metadata and summary as comment lines. A
// consuming CSV parser must tolerate or skip trailing '#' lines.
func writeCSVComments(buf *bytes.Buffer, result *content.Result) {
	m := result.Metadata
	fmt.Fprintf(buf, "# File: %s\n", m.FileName)
	fmt.Fprintf(buf, "# Type: %s\n", m.SourceType)
	fmt.Fprintf(buf, "# Extracted: %s\n", m.ExtractedAt.Format(time.RFC3339))
	if m.PageCount > 0 {
		fmt.Fprintf(buf, "# Pages: %d\n", m.PageCount)
	}
	if m.ParagraphCount > 0 {
		fmt.Fprintf(buf, "# Paragraphs: %d\n", m.ParagraphCount)
	}
	fmt.Fprintf(buf, "# Total items: %d\n", result.Summary.TotalItems)
	for _, t := range sortedTypes(result.Summary.ByType) {
		fmt.Fprintf(buf, "# %s: %d\n", t, result.Summary.ByType[t])
	}
}

func flattenNewlines(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", " ")), " ")
}

func positionCell(pos *content.Position, field func(*content.Position) int) string {
	if pos == nil {
		return ""
	}
	if v := field(pos); v > 0 {
		return strconv.Itoa(v)
	}
	return ""
}

// sortedTypes returns type keys in deterministic order for stable output.
func sortedTypes(byType map[string]int) []string {
	keys := make([]string, 0, len(byType))
	for k := range byType {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
