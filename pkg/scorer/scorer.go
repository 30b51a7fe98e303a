// Package scorer provides the label-scoring capability used for zero-shot
// content classification. A Scorer ranks a caller-supplied label set against
// a text; implementations include a deterministic local keyword scorer and
// remote LLM-backed scorers (OpenAI, Anthropic).
package scorer

import (
	"context"
	"sort"
)

// LabelScore is one label/score pair. Scores are in [0,1].
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Scorer ranks candidate labels for a text. Implementations must return one
// pair per requested label, descending by score, and are shared, stateless
// services: created once, invoked many times, with no per-call state.
type Scorer interface {
	// Score ranks labels against text. Callers may pass a different label
	// set on every call.
	Score(ctx context.Context, text string, labels []string) ([]LabelScore, error)

	// Name returns the scorer identifier (e.g. "keyword", "openai").
	Name() string

	// Ready reports whether the scorer is configured and usable, exposing
	// first-call readiness instead of hiding it behind call latency.
	Ready() bool
}

// normalize fills in missing labels with zero scores, clamps every score to
// [0,1], and sorts descending. Ties keep the requested label order.
func normalize(labels []string, raw map[string]float64) []LabelScore {
	out := make([]LabelScore, 0, len(labels))
	for _, label := range labels {
		s := raw[label]
		if s < 0 {
			s = 0
		}
		if s > 1 {
			s = 1
		}
		out = append(out, LabelScore{Label: label, Score: s})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// ZeroScores returns an all-zero ranking for the requested labels. The
// classifier adapter uses it to degrade when a scorer call fails.
func ZeroScores(labels []string) []LabelScore {
	out := make([]LabelScore, len(labels))
	for i, label := range labels {
		out[i] = LabelScore{Label: label}
	}
	return out
}
