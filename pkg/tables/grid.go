// Package tables provides the tabular data model and a heuristic detector
// that recovers table-like regions from plain text when the source decoder
// has no native table structure.
package tables

import "strings"

// Grid is rectangular tabular data. Headers may be empty when no header row
// was detected. Rows may be ragged; missing cells render as empty strings.
type Grid struct {
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows"`
}

// HasHeaders reports whether a header row was detected or supplied.
func (g Grid) HasHeaders() bool {
	return len(g.Headers) > 0
}

// ColCount returns the widest row (or header) width.
func (g Grid) ColCount() int {
	n := len(g.Headers)
	for _, row := range g.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// Cell returns the cell at (row, col), or "" when the row is ragged.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.Rows) {
		return ""
	}
	r := g.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// ToText renders the grid as tab-separated lines, headers first.
// Newlines inside cells are replaced with spaces.
func (g Grid) ToText() string {
	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				sb.WriteByte('\t')
			}
			sb.WriteString(strings.ReplaceAll(c, "\n", " "))
		}
		sb.WriteByte('\n')
	}
	if g.HasHeaders() {
		writeRow(g.Headers)
	}
	for _, row := range g.Rows {
		writeRow(row)
	}
	return sb.String()
}
