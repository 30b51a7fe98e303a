// Package segment cleans raw decoder text and splits it into
// paragraph-level units.
package segment

import (
	"regexp"
	"strings"
)

var (
	spaceRunRe = regexp.MustCompile(`[ \t]{2,}`)
	paraRe     = regexp.MustCompile(`\n{2,}`)
)

// Normalize collapses line-ending variants to "\n", tabs to single spaces,
// and runs of horizontal whitespace to a single space, then trims. Newlines
// are preserved so paragraph boundaries survive for Split. Total on any
// input; the empty string normalizes to itself.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\t", " ")
	text = spaceRunRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Split divides normalized text into paragraphs on runs of two or more
// line breaks, trimming each piece and dropping empty results. An empty
// input yields a nil slice.
func Split(text string) []string {
	var paras []string
	for _, piece := range paraRe.Split(text, -1) {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			paras = append(paras, piece)
		}
	}
	return paras
}

// Paragraphs is Normalize followed by Split.
func Paragraphs(text string) []string {
	return Split(Normalize(text))
}
