// Package classify bridges segmented text to typed, confidence-scored
// content units via a label-scoring capability.
package classify

import (
	"context"
	"math"
	"unicode/utf8"

	"github.com/docsift/docsift/internal/logger"
	"github.com/docsift/docsift/pkg/content"
	"github.com/docsift/docsift/pkg/scorer"
)

// MinTextLength is the shortest paragraph worth classifying. Anything
// shorter is skipped outright.
const MinTextLength = 10

const (
	longTextLength  = 100
	shortTextLength = 20
	longTextBonus   = 0.05
	shortTextMalus  = 0.1
)

// Adapter applies the confidence-threshold policy and length-based
// confidence adjustment on top of a Scorer.
type Adapter struct {
	scorer    scorer.Scorer
	labels    []string
	threshold float64
}

// New creates an adapter for one configured label set and threshold. The
// caller validates the configuration; the adapter assumes threshold is in
// [0,1] and labels is non-empty.
func New(s scorer.Scorer, labels []string, threshold float64) *Adapter {
	return &Adapter{scorer: s, labels: labels, threshold: threshold}
}

// Paragraph classifies one paragraph. It returns (unit, true) only when the
// paragraph is long enough, the top label's adjusted confidence clears the
// threshold, and the scorer produced a ranking. Scorer failures never
// propagate: the adapter degrades to all-zero scores and the paragraph is
// filtered by the threshold while the pipeline continues.
func (a *Adapter) Paragraph(ctx context.Context, text string, pos *content.Position) (content.Unit, bool) {
	textLen := utf8.RuneCountInString(text)
	if textLen < MinTextLength {
		return content.Unit{}, false
	}

	scores, err := a.scorer.Score(ctx, text, a.labels)
	if err != nil {
		logger.Warn("scoring degraded to zero scores",
			"scorer", a.scorer.Name(),
			"error", err)
		scores = scorer.ZeroScores(a.labels)
	}
	if len(scores) == 0 {
		return content.Unit{}, false
	}

	top := scores[0]
	confidence := AdjustConfidence(top.Score, textLen)
	if confidence < a.threshold {
		return content.Unit{}, false
	}

	return content.NewUnit(top.Label, text, confidence, pos), true
}

// AdjustConfidence applies the length-based adjustment: a small bonus for
// long text, a penalty for short text, clamped to [0,1] and rounded to two
// decimal places. Monotonic in the raw score for any fixed length.
func AdjustConfidence(raw float64, textLen int) float64 {
	c := raw
	if textLen > longTextLength {
		c += longTextBonus
	}
	if textLen < shortTextLength {
		c -= shortTextMalus
	}
	if c > 1 {
		c = 1
	}
	if c < 0 {
		c = 0
	}
	return math.Round(c*100) / 100
}
