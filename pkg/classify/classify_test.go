package classify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/docsift/docsift/pkg/content"
	"github.com/docsift/docsift/pkg/scorer"
)

// stubScorer returns a fixed ranking or a fixed error.
type stubScorer struct {
	scores []scorer.LabelScore
	err    error
	calls  int
}

func (s *stubScorer) Score(_ context.Context, _ string, _ []string) ([]scorer.LabelScore, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.scores, nil
}

func (s *stubScorer) Name() string { return "stub" }
func (s *stubScorer) Ready() bool  { return true }

var testLabels = []string{"requirement", "other"}

func TestParagraph_ShortTextSkipped(t *testing.T) {
	stub := &stubScorer{scores: []scorer.LabelScore{{Label: "requirement", Score: 1.0}}}
	a := New(stub, testLabels, 0.0)

	if _, ok := a.Paragraph(context.Background(), "too short", nil); ok {
		t.Error("paragraph shorter than 10 characters must never produce a unit")
	}
	if stub.calls != 0 {
		t.Error("scorer must not be invoked for short paragraphs")
	}
}

func TestParagraph_ThresholdFilters(t *testing.T) {
	// 50-character paragraph, top score 0.75, threshold 0.8: no length
	// adjustment applies, so the unit is filtered out.
	text := strings.Repeat("a", 50)
	stub := &stubScorer{scores: []scorer.LabelScore{{Label: "requirement", Score: 0.75}}}
	a := New(stub, testLabels, 0.8)

	if _, ok := a.Paragraph(context.Background(), text, nil); ok {
		t.Error("unit below threshold must be dropped, not emitted with low confidence")
	}
}

func TestParagraph_EmitsTopLabel(t *testing.T) {
	text := strings.Repeat("b", 50)
	stub := &stubScorer{scores: []scorer.LabelScore{
		{Label: "requirement", Score: 0.9},
		{Label: "other", Score: 0.2},
	}}
	a := New(stub, testLabels, 0.7)

	unit, ok := a.Paragraph(context.Background(), text, &content.Position{Paragraph: 3})
	if !ok {
		t.Fatal("expected a unit")
	}
	if unit.Type != "requirement" {
		t.Errorf("Type = %q, want \"requirement\"", unit.Type)
	}
	if unit.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", unit.Confidence)
	}
	if unit.Position == nil || unit.Position.Paragraph != 3 {
		t.Errorf("Position = %+v, want paragraph 3", unit.Position)
	}
	if unit.ID == "" {
		t.Error("unit must carry a generated ID")
	}
}

func TestParagraph_ScorerErrorDegrades(t *testing.T) {
	text := strings.Repeat("c", 50)
	stub := &stubScorer{err: errors.New("inference backend down")}
	a := New(stub, testLabels, 0.5)

	unit, ok := a.Paragraph(context.Background(), text, nil)
	if ok {
		t.Errorf("degraded zero scores must be filtered by threshold, got %+v", unit)
	}
}

func TestParagraph_ScorerErrorWithZeroThreshold(t *testing.T) {
	// Degradation produces zero scores, not an error; with threshold 0 the
	// paragraph still yields a unit for the first label.
	text := strings.Repeat("d", 50)
	stub := &stubScorer{err: errors.New("boom")}
	a := New(stub, testLabels, 0.0)

	unit, ok := a.Paragraph(context.Background(), text, nil)
	if !ok {
		t.Fatal("threshold 0 admits degraded zero-score units")
	}
	if unit.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", unit.Confidence)
	}
}

func TestParagraph_EmptyRankingSkipped(t *testing.T) {
	stub := &stubScorer{scores: nil}
	a := New(stub, testLabels, 0.0)

	if _, ok := a.Paragraph(context.Background(), strings.Repeat("e", 30), nil); ok {
		t.Error("an empty ranking must skip the paragraph")
	}
}

func TestAdjustConfidence(t *testing.T) {
	tests := []struct {
		name    string
		raw     float64
		textLen int
		want    float64
	}{
		{"no adjustment mid-length", 0.75, 50, 0.75},
		{"long text bonus", 0.75, 150, 0.80},
		{"long text bonus capped", 0.98, 150, 1.0},
		{"short text penalty", 0.75, 15, 0.65},
		{"short text penalty floored", 0.05, 15, 0.0},
		{"boundary 100 gets no bonus", 0.5, 100, 0.5},
		{"boundary 20 gets no penalty", 0.5, 20, 0.5},
		{"rounds to two decimals", 0.333, 50, 0.33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AdjustConfidence(tt.raw, tt.textLen); got != tt.want {
				t.Errorf("AdjustConfidence(%v, %d) = %v, want %v", tt.raw, tt.textLen, got, tt.want)
			}
		})
	}
}

func TestAdjustConfidence_Bounded(t *testing.T) {
	for _, raw := range []float64{0, 0.1, 0.5, 0.77, 0.999, 1} {
		for _, n := range []int{0, 5, 19, 20, 50, 100, 101, 500} {
			got := AdjustConfidence(raw, n)
			if got < 0 || got > 1 {
				t.Errorf("AdjustConfidence(%v, %d) = %v outside [0,1]", raw, n, got)
			}
		}
	}
}

func TestAdjustConfidence_Monotonic(t *testing.T) {
	for _, n := range []int{15, 50, 150} {
		prev := -1.0
		for raw := 0.0; raw <= 1.0; raw += 0.05 {
			got := AdjustConfidence(raw, n)
			if got < prev {
				t.Fatalf("adjustment not monotonic at raw=%v len=%d: %v < %v", raw, n, got, prev)
			}
			prev = got
		}
	}
}
