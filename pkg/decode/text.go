package decode

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Text decodes plain text and markdown files. It is a passthrough: tables
// are left to the heuristic detector downstream.
type Text struct{}

// Decode validates the bytes as UTF-8 text and counts paragraphs.
func (d *Text) Decode(_ context.Context, data []byte) (*Result, error) {
	if !utf8.Valid(data) {
		return nil, &DecodeError{Format: FormatText, Reason: "not valid UTF-8 text"}
	}

	text := string(data)
	return &Result{
		Text:           text,
		ParagraphCount: countParagraphs(text),
	}, nil
}

// Format returns the text format identifier.
func (d *Text) Format() Format { return FormatText }

// countParagraphs counts blank-line separated blocks without altering the
// text; the segmenter performs the real split later.
func countParagraphs(text string) int {
	n := 0
	for _, block := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if strings.TrimSpace(block) != "" {
			n++
		}
	}
	return n
}
