package scorer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// Config holds settings shared by the remote scorers.
type Config struct {
	Model   string
	APIKey  string
	BaseURL string
}

// OpenAI scores labels with an OpenAI chat model instructed to return a
// score per candidate label as structured JSON.
type OpenAI struct {
	client openai.Client
	model  string
	ready  bool
}

// NewOpenAI creates an OpenAI scorer. The API key falls back to the
// OPENAI_API_KEY environment variable.
func NewOpenAI(cfg Config) *OpenAI {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAI{
		client: openai.NewClient(opts...),
		model:  model,
		ready:  apiKey != "",
	}
}

// Score sends the text and label set and parses the returned score map.
func (s *OpenAI) Score(ctx context.Context, text string, labels []string) ([]LabelScore, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(scoringSystemPrompt),
			openai.UserMessage(scoringUserPrompt(text, labels)),
		},
		MaxTokens:   openai.Int(512),
		Temperature: openai.Float(0),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "label_scores",
					Schema: scoreSchema(labels),
				},
			},
		},
	}

	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	return parseScores(resp.Choices[0].Message.Content, labels)
}

// Name returns "openai".
func (s *OpenAI) Name() string { return "openai" }

// Ready reports whether an API key is configured.
func (s *OpenAI) Ready() bool { return s.ready }

const scoringSystemPrompt = `You are a zero-shot text classifier. Score how well each ` +
	`candidate label describes the text. Return a JSON object whose "scores" key maps ` +
	`every candidate label, verbatim, to a number between 0 and 1.`

func scoringUserPrompt(text string, labels []string) string {
	return fmt.Sprintf("Labels: %s\n\nText:\n%s", strings.Join(labels, ", "), text)
}

// scoreSchema builds a JSON schema requiring a score for every label.
func scoreSchema(labels []string) map[string]any {
	props := make(map[string]any, len(labels))
	for _, label := range labels {
		props[label] = map[string]any{"type": "number"}
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"scores": map[string]any{
				"type":       "object",
				"properties": props,
				"required":   labels,
			},
		},
		"required": []string{"scores"},
	}
}

// parseScores decodes a {"scores": {label: score}} payload and normalizes
// it against the requested label set.
func parseScores(raw string, labels []string) ([]LabelScore, error) {
	var payload struct {
		Scores map[string]float64 `json:"scores"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("parse scores: %w", err)
	}
	return normalize(labels, payload.Scores), nil
}
