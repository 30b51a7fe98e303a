// Package docsift provides the public API for the content extraction and
// structuring pipeline: decode, segment, classify, aggregate.
package docsift

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/docsift/docsift/pkg/scorer"
)

// DefaultThreshold is the confidence floor a classified paragraph must
// clear to produce a unit.
const DefaultThreshold = 0.7

// DefaultLabels is the label set used when the caller configures none.
var DefaultLabels = []string{"introduction", "requirement", "technical", "financial", "legal", "other"}

// Config holds all pipeline configuration. Validation happens once, at
// construction time, before any extraction begins.
type Config struct {
	// Labels is the candidate label set handed to the scorer.
	Labels []string `validate:"min=1,dive,required"`

	// Threshold is the minimum adjusted confidence for a text unit.
	Threshold float64 `validate:"gte=0,lte=1"`

	// ExtractTables toggles table detection and conversion.
	ExtractTables bool

	// Scorer, when set, is used directly. Otherwise one is built from
	// ScorerName and the remote settings below.
	Scorer scorer.Scorer

	// ScorerName selects a built-in scorer: keyword, openai, anthropic.
	ScorerName string

	// Lexicon adds cue words per label for the keyword scorer.
	Lexicon map[string][]string

	// Remote scorer settings.
	Model   string
	APIKey  string
	BaseURL string
}

// DefaultConfig returns sensible defaults: keyword scoring, the default
// label set, table extraction on.
func DefaultConfig() Config {
	return Config{
		Labels:        append([]string(nil), DefaultLabels...),
		Threshold:     DefaultThreshold,
		ExtractTables: true,
		ScorerName:    "keyword",
	}
}

// ConfigurationError reports invalid pipeline configuration. It fails fast
// at construction, before any document is touched.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration: %s: %v", e.Reason, e.Err)
	}
	return "configuration: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

var validate = validator.New()

// Validate checks the configuration invariants: threshold in [0,1] and a
// non-empty label list.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &ConfigurationError{Reason: "invalid pipeline settings", Err: err}
	}
	return nil
}

// Option configures the pipeline.
type Option func(*Config)

// WithLabels sets the candidate label set.
func WithLabels(labels []string) Option {
	return func(c *Config) {
		c.Labels = labels
	}
}

// WithThreshold sets the confidence threshold.
func WithThreshold(t float64) Option {
	return func(c *Config) {
		c.Threshold = t
	}
}

// WithTableExtraction toggles table detection.
func WithTableExtraction(enabled bool) Option {
	return func(c *Config) {
		c.ExtractTables = enabled
	}
}

// WithScorer injects a scorer, bypassing ScorerName resolution.
func WithScorer(s scorer.Scorer) Option {
	return func(c *Config) {
		c.Scorer = s
	}
}

// WithScorerName selects a built-in scorer by name.
func WithScorerName(name string) Option {
	return func(c *Config) {
		c.ScorerName = name
	}
}

// WithLexicon sets keyword-scorer cue words per label.
func WithLexicon(lexicon map[string][]string) Option {
	return func(c *Config) {
		c.Lexicon = lexicon
	}
}

// WithModel sets the remote scorer model.
func WithModel(model string) Option {
	return func(c *Config) {
		c.Model = model
	}
}

// WithAPIKey sets the remote scorer API key.
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithBaseURL sets a custom remote API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}
