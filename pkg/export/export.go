// Package export renders an extraction result into JSON, flat CSV, or a
// multi-sheet spreadsheet workbook.
package export

import (
	"fmt"
	"os"

	"github.com/docsift/docsift/pkg/content"
	"github.com/docsift/docsift/pkg/fields"
)

// Format selects the output serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format selector string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV, FormatXLSX:
		return Format(s), nil
	default:
		return "", &Error{Path: "", Reason: fmt.Sprintf("unsupported export format: %q", s)}
	}
}

// Options configures one export call.
type Options struct {
	Format          Format
	DestinationPath string
	IncludeMetadata bool
	PrettyPrint     bool
}

// Error reports a failed export. It is fatal to the export call only; the
// already-computed result stays valid and may be exported elsewhere.
type Error struct {
	Path   string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := "export"
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Export renders result per opts and writes exactly one artifact at
// opts.DestinationPath, overwriting any existing file. The write is a
// single bulk write of the fully rendered artifact.
func Export(result *content.Result, opts Options) error {
	var data []byte
	var err error

	switch opts.Format {
	case FormatJSON:
		data, err = renderJSON(result, opts)
	case FormatCSV:
		data, err = renderCSV(result, opts)
	case FormatXLSX:
		data, err = renderXLSX(result, opts)
	default:
		return &Error{Path: opts.DestinationPath, Reason: fmt.Sprintf("unsupported export format: %q", opts.Format)}
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(opts.DestinationPath, data, 0o644); err != nil {
		return &Error{Path: opts.DestinationPath, Reason: "write destination", Err: err}
	}
	return nil
}

// MergedFields re-derives the structured field view from the result's text
// units. It is computed per export call, never stored on the result.
func MergedFields(result *content.Result) *fields.Merged {
	merged := fields.NewMerged()
	for _, u := range result.TextUnits() {
		merged.Merge(u.Text)
	}
	return merged
}
