package decode

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDF decodes page-description documents with pdfcpu. Text is recovered by
// parsing page content streams; PDFs carry no table markup, so tables are
// left to the heuristic detector.
type PDF struct{}

// Decode extracts per-page text. A PDF from which no page yields any text
// is a decode failure (likely scanned images, which are out of scope), not
// a silent empty result.
func (d *PDF) Decode(_ context.Context, data []byte) (*Result, error) {
	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, &DecodeError{Format: FormatPDF, Reason: "read and validate", Err: err}
	}

	var pages []string
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		pages = append(pages, extractPageText(pdfCtx, pageNr))
	}

	full := strings.TrimSpace(strings.Join(pages, "\n\n"))
	if full == "" {
		return nil, &DecodeError{Format: FormatPDF, Reason: "no extractable text (scanned or image-only PDF?)"}
	}

	return &Result{
		Text:      full,
		Pages:     pages,
		PageCount: pdfCtx.PageCount,
	}, nil
}

// Format returns the pdf format identifier.
func (d *PDF) Format() Format { return FormatPDF }

// extractPageText extracts text from one page's content stream. Errors
// degrade to an empty page; a page-level failure must not abort the
// remaining pages.
func extractPageText(pdfCtx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return textFromContentStream(data)
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// textFromContentStream parses content stream operators for shown text.
// Line structure is approximated from the positioning operators (Td, TD,
// T*, ') so the downstream table heuristic sees per-line layout.
func textFromContentStream(data []byte) string {
	var sb strings.Builder

	appendStrings := func(line []byte) {
		for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
			sb.WriteString(decodePDFString(m[1]))
		}
	}

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		// Tj / TJ: show text (TJ interleaves kerning numbers).
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			appendStrings(line)

		// ': move to next line and show text.
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			sb.WriteByte('\n')
			appendStrings(line)

		// Td / TD: text positioning, approximate as a line break.
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}

		// T*: move to start of next line.
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return collapseBlankRuns(sb.String())
}

// decodePDFString handles the basic PDF literal-string escapes, including
// octal (e.g. \040 for space).
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}

// collapseBlankRuns trims trailing spaces per line and squeezes runs of
// three or more newlines down to two, keeping paragraph boundaries intact.
func collapseBlankRuns(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	out := strings.Join(lines, "\n")
	for strings.Contains(out, "\n\n\n") {
		out = strings.ReplaceAll(out, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(out)
}
