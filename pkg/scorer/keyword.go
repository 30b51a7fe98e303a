package scorer

import (
	"context"
	"regexp"
	"strings"
)

var wordRe = regexp.MustCompile(`\w+`)

// Keyword is a deterministic local scorer: each label is scored by the
// relative frequency of its cue words in the text. It needs no network or
// model assets, which makes the pipeline usable offline and keeps tests
// hermetic. It is intentionally crude next to a real zero-shot model.
type Keyword struct {
	lexicon map[string][]string
}

// NewKeyword creates a keyword scorer. The lexicon maps a label to extra cue
// words beyond the label's own tokens; a nil lexicon is valid.
func NewKeyword(lexicon map[string][]string) *Keyword {
	cues := make(map[string][]string, len(lexicon))
	for label, words := range lexicon {
		lowered := make([]string, 0, len(words))
		for _, w := range words {
			lowered = append(lowered, strings.ToLower(w))
		}
		cues[strings.ToLower(label)] = lowered
	}
	return &Keyword{lexicon: cues}
}

// Score counts cue-word hits per label and maps them onto a saturating
// scale: one hit scores 0.5, each further hit adds 0.15 up to 0.95. Labels
// with no hits score zero; a text with no hits at all ranks every label at
// zero in the requested order.
func (k *Keyword) Score(_ context.Context, text string, labels []string) ([]LabelScore, error) {
	tokens := wordRe.FindAllString(strings.ToLower(text), -1)
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}

	raw := make(map[string]float64, len(labels))
	for _, label := range labels {
		hits := 0
		for _, cue := range k.cues(label) {
			hits += counts[cue]
		}
		raw[label] = hitScore(hits)
	}
	return normalize(labels, raw), nil
}

func hitScore(hits int) float64 {
	if hits == 0 {
		return 0
	}
	s := 0.5 + 0.15*float64(hits-1)
	if s > 0.95 {
		s = 0.95
	}
	return s
}

// cues returns the label's own word tokens plus any lexicon entries.
func (k *Keyword) cues(label string) []string {
	lower := strings.ToLower(label)
	cues := wordRe.FindAllString(lower, -1)
	return append(cues, k.lexicon[lower]...)
}

// Name returns "keyword".
func (k *Keyword) Name() string { return "keyword" }

// Ready always reports true; the keyword scorer has no external dependency.
func (k *Keyword) Ready() bool { return true }
