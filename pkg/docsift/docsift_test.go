package docsift

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/docsift/docsift/pkg/decode"
	"github.com/docsift/docsift/pkg/scorer"
)

// fixedScorer gives every label the same score, so thresholding alone
// decides which paragraphs survive.
type fixedScorer struct {
	score float64
}

func (f fixedScorer) Score(_ context.Context, _ string, labels []string) ([]scorer.LabelScore, error) {
	out := make([]scorer.LabelScore, len(labels))
	for i, label := range labels {
		out[i] = scorer.LabelScore{Label: label, Score: f.score}
	}
	return out, nil
}

func (fixedScorer) Name() string { return "fixed" }
func (fixedScorer) Ready() bool  { return true }

func TestNew_Defaults(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if d.Scorer().Name() != "keyword" {
		t.Errorf("default scorer = %q, want keyword", d.Scorer().Name())
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"threshold above one", []Option{WithThreshold(1.5)}},
		{"negative threshold", []Option{WithThreshold(-0.1)}},
		{"empty labels", []Option{WithLabels(nil)}},
		{"blank label", []Option{WithLabels([]string{"ok", ""})}},
		{"unknown scorer", []Option{WithScorerName("mystery")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			var ce *ConfigurationError
			if !errors.As(err, &ce) {
				t.Errorf("expected ConfigurationError, got %v", err)
			}
		})
	}
}

func TestNew_BuildsNamedScorers(t *testing.T) {
	for _, name := range []string{"keyword", "openai", "anthropic"} {
		d, err := New(WithScorerName(name), WithAPIKey("test-key"))
		if err != nil {
			t.Errorf("New(%q): %v", name, err)
			continue
		}
		if d.Scorer().Name() != name {
			t.Errorf("scorer = %q, want %q", d.Scorer().Name(), name)
		}
	}
}

func TestExtractBytes_TextDocument(t *testing.T) {
	d, err := New(
		WithScorer(fixedScorer{score: 0.9}),
		WithThreshold(0.5),
	)
	if err != nil {
		t.Fatal(err)
	}

	doc := "This is the first paragraph of the document.\n\n" +
		"Country: India, US, China\n\n" +
		"short" // below the minimum classifiable length

	result, err := d.ExtractBytes(context.Background(), []byte(doc), decode.FormatText, "doc.txt")
	if err != nil {
		t.Fatal(err)
	}

	if result.Metadata.FileName != "doc.txt" || result.Metadata.SourceType != "text" {
		t.Errorf("metadata = %+v", result.Metadata)
	}
	if len(result.Contents) != 2 {
		t.Fatalf("expected 2 units (short paragraph skipped), got %d", len(result.Contents))
	}
	if result.Summary.TotalItems != 2 {
		t.Errorf("TotalItems = %d", result.Summary.TotalItems)
	}
	for i, u := range result.Contents {
		if u.Position == nil || u.Position.Paragraph != i+1 {
			t.Errorf("unit %d position = %+v", i, u.Position)
		}
	}
}

func TestExtractBytes_ThresholdDropsEverything(t *testing.T) {
	d, err := New(
		WithScorer(fixedScorer{score: 0.3}),
		WithThreshold(0.8),
	)
	if err != nil {
		t.Fatal(err)
	}

	result, err := d.ExtractBytes(context.Background(),
		[]byte("A perfectly ordinary paragraph of medium length."),
		decode.FormatText, "doc.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Contents) != 0 {
		t.Errorf("expected empty result, got %d units", len(result.Contents))
	}
	if result.Summary.TotalItems != 0 || len(result.Summary.ByType) != 0 {
		t.Errorf("summary = %+v", result.Summary)
	}
}

func TestExtractBytes_HeuristicTables(t *testing.T) {
	d, err := New(
		WithScorer(fixedScorer{score: 0.9}),
		WithThreshold(0.5),
	)
	if err != nil {
		t.Fatal(err)
	}

	doc := "A leading paragraph with enough length to classify.\n\n" +
		"Name  Age\nalice1  30\nbob2  25"

	result, err := d.ExtractBytes(context.Background(), []byte(doc), decode.FormatText, "doc.txt")
	if err != nil {
		t.Fatal(err)
	}

	tableUnits := result.TableUnits()
	if len(tableUnits) != 1 {
		t.Fatalf("expected 1 table unit, got %d", len(tableUnits))
	}
	if tableUnits[0].Confidence != 1.0 {
		t.Errorf("table confidence = %v, want 1.0", tableUnits[0].Confidence)
	}
	// Table lines must not also appear as classified text.
	for _, u := range result.TextUnits() {
		if u.Text == "Name  Age" || u.Text == "alice1  30" {
			t.Errorf("table line leaked into text units: %q", u.Text)
		}
	}
	if len(result.TextUnits()) != 1 {
		t.Errorf("expected 1 text unit, got %d", len(result.TextUnits()))
	}
}

func TestExtractBytes_TablesDisabled(t *testing.T) {
	d, err := New(
		WithScorer(fixedScorer{score: 0.9}),
		WithThreshold(0.5),
		WithTableExtraction(false),
	)
	if err != nil {
		t.Fatal(err)
	}

	result, err := d.ExtractBytes(context.Background(),
		[]byte("Name  Age\nalice1  30\nbob2  25"),
		decode.FormatText, "doc.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(result.TableUnits()) != 0 {
		t.Error("table extraction disabled must yield no table units")
	}
}

func TestExtractBytes_Cancelled(t *testing.T) {
	d, err := New(WithScorer(fixedScorer{score: 0.9}))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = d.ExtractBytes(ctx, []byte("some document text here"), decode.FormatText, "doc.txt")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	if err := os.WriteFile(path, []byte("An introduction paragraph that is long enough."), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := New(WithScorer(fixedScorer{score: 0.9}), WithThreshold(0.5))
	if err != nil {
		t.Fatal(err)
	}

	result, err := d.ExtractFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if result.Metadata.FileName != "report.txt" {
		t.Errorf("FileName = %q", result.Metadata.FileName)
	}
	if len(result.Contents) != 1 {
		t.Errorf("expected 1 unit, got %d", len(result.Contents))
	}
}

func TestExtractFile_UnsupportedExtension(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatal(err)
	}
	_, err = d.ExtractFile(context.Background(), "diagram.png")
	var ute *decode.UnsupportedTypeError
	if !errors.As(err, &ute) {
		t.Errorf("expected UnsupportedTypeError, got %v", err)
	}
}

func TestLoadProfile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "travel.yaml")
	body := `name: travel
labels:
  - itinerary
  - pricing
threshold: 0.6
lexicon:
  pricing:
    - fare
    - tax
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "travel" || len(p.Labels) != 2 {
		t.Errorf("profile = %+v", p)
	}
	if p.Threshold == nil || *p.Threshold != 0.6 {
		t.Errorf("Threshold = %v", p.Threshold)
	}

	cfg := DefaultConfig()
	p.Apply(&cfg)
	if cfg.Threshold != 0.6 || cfg.Labels[0] != "itinerary" {
		t.Errorf("applied config = %+v", cfg)
	}
	if len(cfg.Lexicon["pricing"]) != 2 {
		t.Errorf("Lexicon = %v", cfg.Lexicon)
	}
}

func TestLoadProfile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	if err := os.WriteFile(path, []byte(`{"labels": ["a", "b"]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadProfile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Labels) != 2 || p.Threshold != nil {
		t.Errorf("profile = %+v", p)
	}
}

func TestLoadProfile_Errors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	os.WriteFile(empty, []byte("name: nothing\n"), 0o644)
	if _, err := LoadProfile(empty); err == nil {
		t.Error("profile without labels must fail")
	}

	bad := filepath.Join(dir, "p.toml")
	os.WriteFile(bad, []byte("labels = []"), 0o644)
	if _, err := LoadProfile(bad); err == nil {
		t.Error("unsupported profile extension must fail")
	}

	if _, err := LoadProfile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing profile file must fail")
	}
}
