// Package content defines the classified output model: content units, the
// aggregated extraction result, and its derived summary.
package content

import (
	"time"

	"github.com/google/uuid"

	"github.com/docsift/docsift/pkg/tables"
)

// TypeTable is the reserved unit type for tabular units. Text units carry
// one of the configured label strings instead.
const TypeTable = "table"

// Position locates a unit in its source document. Fields are sparse;
// whichever the decoder could supply are set.
type Position struct {
	Page      int `json:"page,omitempty"`
	Paragraph int `json:"paragraph,omitempty"`
	Line      int `json:"line,omitempty"`
}

// Unit is one classified fragment of a document. Units are created once,
// by classification or table conversion, and immutable thereafter.
type Unit struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"`
	Text       string       `json:"text"`
	Confidence float64      `json:"confidence"`
	Position   *Position    `json:"position,omitempty"`
	TableData  *tables.Grid `json:"tableData,omitempty"`
}

// NewUnit creates a classified text unit with a fresh identifier.
func NewUnit(unitType, text string, confidence float64, pos *Position) Unit {
	return Unit{
		ID:         uuid.NewString(),
		Type:       unitType,
		Text:       text,
		Confidence: confidence,
		Position:   pos,
	}
}

// NewTableUnit converts a detected grid into a table unit. Tables bypass
// classification and always carry confidence 1.0.
func NewTableUnit(grid tables.Grid, pos *Position) Unit {
	g := grid
	return Unit{
		ID:         uuid.NewString(),
		Type:       TypeTable,
		Text:       g.ToText(),
		Confidence: 1.0,
		Position:   pos,
		TableData:  &g,
	}
}

// Metadata describes the extraction source.
type Metadata struct {
	FileName       string    `json:"fileName"`
	SourceType     string    `json:"sourceType"`
	ExtractedAt    time.Time `json:"extractedAt"`
	PageCount      int       `json:"pageCount,omitempty"`
	ParagraphCount int       `json:"paragraphCount,omitempty"`
}

// Summary is derived from the unit sequence and recomputed on every
// aggregation, never cached across runs.
type Summary struct {
	TotalItems int            `json:"totalItems"`
	ByType     map[string]int `json:"byType"`
}

// Result is the top-level extraction artifact. It exclusively owns its
// Contents; no unit is shared across two results.
type Result struct {
	Metadata Metadata `json:"metadata"`
	Contents []Unit   `json:"contents"`
	Summary  Summary  `json:"summary"`
}

// Aggregate combines classified text units (document order) with table
// units (document order) into one result and computes the summary. Pure and
// total: empty inputs yield an empty contents slice, zero totals, and an
// empty type mapping.
func Aggregate(meta Metadata, textUnits, tableUnits []Unit) *Result {
	contents := make([]Unit, 0, len(textUnits)+len(tableUnits))
	contents = append(contents, textUnits...)
	contents = append(contents, tableUnits...)

	return &Result{
		Metadata: meta,
		Contents: contents,
		Summary:  Summarize(contents),
	}
}

// Summarize counts units by type.
func Summarize(units []Unit) Summary {
	s := Summary{
		TotalItems: len(units),
		ByType:     make(map[string]int),
	}
	for _, u := range units {
		s.ByType[u.Type]++
	}
	return s
}

// TableUnits returns the units carrying table data, in result order.
func (r *Result) TableUnits() []Unit {
	var out []Unit
	for _, u := range r.Contents {
		if u.TableData != nil {
			out = append(out, u)
		}
	}
	return out
}

// TextUnits returns the non-table units, in result order.
func (r *Result) TextUnits() []Unit {
	var out []Unit
	for _, u := range r.Contents {
		if u.Type != TypeTable {
			out = append(out, u)
		}
	}
	return out
}
