package tables

import (
	"regexp"
	"strings"
	"unicode"
)

// cellSplitRe splits a line into cell candidates on tabs or runs of two or
// more whitespace characters.
var cellSplitRe = regexp.MustCompile(`\t|\s{2,}`)

// headerTokens bias header detection toward rows that look like column
// labels. Matching is case-insensitive substring containment.
var headerTokens = []string{"name", "type", "description", "value"}

// MinRows is the minimum number of consecutive qualifying lines required
// for a block to become a table. A single multi-column line never does.
const MinRows = 2

// Detect scans plain text for table-like regions: runs of consecutive lines
// that each split into at least two cell candidates. Detection is heuristic
// and never fails; text with no qualifying regions yields an empty slice.
func Detect(text string) []Grid {
	grids, _ := Extract(text)
	return grids
}

// Extract detects table-like regions and additionally returns the remaining
// text with those regions removed, so downstream segmentation does not turn
// table lines into text paragraphs. Lines of a run too short to qualify as
// a block stay in the remainder.
func Extract(text string) ([]Grid, string) {
	var grids []Grid
	var block [][]string
	var blockLines []string
	var remainder []string

	flush := func() {
		if len(block) >= MinRows {
			grids = append(grids, buildGrid(block))
		} else {
			remainder = append(remainder, blockLines...)
		}
		block = nil
		blockLines = nil
	}

	for _, line := range strings.Split(text, "\n") {
		cells := SplitCells(line)
		if len(cells) >= 2 {
			block = append(block, cells)
			blockLines = append(blockLines, line)
			continue
		}
		flush()
		remainder = append(remainder, line)
	}
	flush()

	return grids, strings.Join(remainder, "\n")
}

// SplitCells splits one line into trimmed, non-empty cell candidates.
func SplitCells(line string) []string {
	var cells []string
	for _, piece := range cellSplitRe.Split(line, -1) {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			cells = append(cells, piece)
		}
	}
	return cells
}

// buildGrid decides whether the first row of a block is a header and shapes
// the block accordingly.
func buildGrid(block [][]string) Grid {
	if looksLikeHeader(block[0]) {
		return Grid{Headers: block[0], Rows: block[1:]}
	}
	return Grid{Rows: block}
}

// looksLikeHeader reports whether a row reads as column labels: any cell
// containing a known header token, or any cell with no digit at all.
// Intentionally permissive; short alphabetic cells qualify, so header
// misdetection on dense text tables is expected and accepted.
func looksLikeHeader(row []string) bool {
	for _, cell := range row {
		lower := strings.ToLower(cell)
		for _, tok := range headerTokens {
			if strings.Contains(lower, tok) {
				return true
			}
		}
		if !containsDigit(cell) {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
