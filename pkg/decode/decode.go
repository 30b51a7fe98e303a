// Package decode turns raw document bytes into plain text and, where the
// format carries structural markup, table grids. One Decoder exists per
// supported document family; format selection is by file extension.
package decode

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docsift/docsift/pkg/tables"
)

// Format identifies a supported document family.
type Format string

const (
	FormatDocx Format = "docx"
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
	FormatText Format = "text"
)

// Result is a fully-populated decode outcome. Decoders never return a
// partially-populated result silently; any structural problem surfaces as a
// DecodeError instead.
type Result struct {
	// Text is the full extracted plain text.
	Text string

	// Pages holds per-page text for paginated formats (PDF); empty
	// otherwise. When present, concatenating Pages reproduces Text.
	Pages []string

	// Tables are grids recovered from native structure (docx tables, HTML
	// <table> elements). Empty for formats without structural markup.
	Tables []tables.Grid

	// StructuredTables reports whether this format carries native table
	// structure at all. When false the caller should fall back to the
	// heuristic detector over Text.
	StructuredTables bool

	// PageCount is set for paginated formats, ParagraphCount otherwise.
	PageCount      int
	ParagraphCount int
}

// Decoder turns one document family's bytes into a Result.
type Decoder interface {
	Decode(ctx context.Context, data []byte) (*Result, error)
	Format() Format
}

// DecodeError reports source bytes that cannot be turned into text/tables.
// Fatal to the document; never retried.
type DecodeError struct {
	Format Format
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %s: %v", e.Format, e.Reason, e.Err)
	}
	return fmt.Sprintf("decode %s: %s", e.Format, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// UnsupportedTypeError reports a file extension outside the supported set.
// Surfaced before any decode attempt.
type UnsupportedTypeError struct {
	Ext string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported document type: %q", e.Ext)
}

// Detect maps a file path to its document format by extension.
func Detect(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".docx":
		return FormatDocx, nil
	case ".pdf":
		return FormatPDF, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".txt", ".text", ".md", ".markdown":
		return FormatText, nil
	default:
		return "", &UnsupportedTypeError{Ext: ext}
	}
}

// ForFormat returns the decoder for a detected format.
func ForFormat(format Format) (Decoder, error) {
	switch format {
	case FormatDocx:
		return &Docx{}, nil
	case FormatPDF:
		return &PDF{}, nil
	case FormatHTML:
		return &HTML{}, nil
	case FormatText:
		return &Text{}, nil
	default:
		return nil, &UnsupportedTypeError{Ext: string(format)}
	}
}

// File detects the format of path, reads it, and decodes it.
func File(ctx context.Context, path string) (*Result, Format, error) {
	format, err := Detect(path)
	if err != nil {
		return nil, "", err
	}
	dec, err := ForFormat(format)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	res, err := dec.Decode(ctx, data)
	if err != nil {
		return nil, "", err
	}
	return res, format, nil
}

// Formats lists the supported file extensions per format, for capability
// reporting.
func Formats() map[Format][]string {
	return map[Format][]string{
		FormatDocx: {".docx"},
		FormatPDF:  {".pdf"},
		FormatHTML: {".html", ".htm"},
		FormatText: {".txt", ".text", ".md", ".markdown"},
	}
}
