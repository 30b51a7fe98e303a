package content

import (
	"testing"
	"time"

	"github.com/docsift/docsift/pkg/tables"
)

func TestAggregate_PreservesOrder(t *testing.T) {
	text := []Unit{
		NewUnit("requirement", "first paragraph", 0.9, nil),
		NewUnit("other", "second paragraph", 0.8, nil),
	}
	table := []Unit{
		NewTableUnit(tables.Grid{Rows: [][]string{{"a", "b"}}}, nil),
	}

	result := Aggregate(Metadata{FileName: "x.txt"}, text, table)

	if len(result.Contents) != 3 {
		t.Fatalf("expected 3 units, got %d", len(result.Contents))
	}
	if result.Contents[0].Text != "first paragraph" || result.Contents[1].Text != "second paragraph" {
		t.Error("text units must appear first, in document order")
	}
	if result.Contents[2].Type != TypeTable {
		t.Error("table units must follow text units")
	}
}

func TestAggregate_Empty(t *testing.T) {
	result := Aggregate(Metadata{}, nil, nil)

	if result.Contents == nil || len(result.Contents) != 0 {
		t.Errorf("empty inputs must yield an empty (non-nil) contents slice, got %v", result.Contents)
	}
	if result.Summary.TotalItems != 0 {
		t.Errorf("TotalItems = %d, want 0", result.Summary.TotalItems)
	}
	if result.Summary.ByType == nil || len(result.Summary.ByType) != 0 {
		t.Errorf("ByType = %v, want empty map", result.Summary.ByType)
	}
}

func TestSummarize(t *testing.T) {
	units := []Unit{
		{Type: "requirement"},
		{Type: "requirement"},
		{Type: "other"},
		{Type: TypeTable},
	}

	s := Summarize(units)
	if s.TotalItems != 4 {
		t.Errorf("TotalItems = %d, want 4", s.TotalItems)
	}
	if s.ByType["requirement"] != 2 || s.ByType["other"] != 1 || s.ByType[TypeTable] != 1 {
		t.Errorf("ByType = %v", s.ByType)
	}
}

func TestNewTableUnit(t *testing.T) {
	grid := tables.Grid{
		Headers: []string{"Name", "Age"},
		Rows:    [][]string{{"alice", "30"}},
	}
	u := NewTableUnit(grid, &Position{Page: 2})

	if u.Type != TypeTable {
		t.Errorf("Type = %q, want %q", u.Type, TypeTable)
	}
	if u.Confidence != 1.0 {
		t.Errorf("table units must carry confidence 1.0, got %v", u.Confidence)
	}
	if u.TableData == nil || len(u.TableData.Rows) != 1 {
		t.Errorf("TableData = %+v", u.TableData)
	}
	if u.Text == "" {
		t.Error("table unit must carry a text rendering of the grid")
	}
	if u.Position == nil || u.Position.Page != 2 {
		t.Errorf("Position = %+v", u.Position)
	}
}

func TestNewUnit_UniqueIDs(t *testing.T) {
	a := NewUnit("other", "some text", 0.5, nil)
	b := NewUnit("other", "some text", 0.5, nil)
	if a.ID == b.ID {
		t.Error("unit identifiers must be unique")
	}
}

func TestResult_UnitPartitions(t *testing.T) {
	result := Aggregate(
		Metadata{ExtractedAt: time.Now().UTC()},
		[]Unit{NewUnit("legal", "clause text here", 0.8, nil)},
		[]Unit{NewTableUnit(tables.Grid{Rows: [][]string{{"x"}}}, nil)},
	)

	if got := result.TextUnits(); len(got) != 1 || got[0].Type != "legal" {
		t.Errorf("TextUnits() = %v", got)
	}
	if got := result.TableUnits(); len(got) != 1 || got[0].Type != TypeTable {
		t.Errorf("TableUnits() = %v", got)
	}
}
