package scorer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = string(anthropic.ModelClaudeSonnet4_20250514)

// Anthropic scores labels with a Claude model via tool-based structured
// output, the reliable way to get JSON out of the Messages API.
type Anthropic struct {
	client anthropic.Client
	model  string
	ready  bool
}

// NewAnthropic creates an Anthropic scorer. The API key falls back to the
// ANTHROPIC_API_KEY environment variable.
func NewAnthropic(cfg Config) *Anthropic {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
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
		model = DefaultAnthropicModel
	}

	return &Anthropic{
		client: anthropic.NewClient(opts...),
		model:  model,
		ready:  apiKey != "",
	}
}

// Score sends the text and label set and parses the tool input as the
// score map.
func (s *Anthropic) Score(ctx context.Context, text string, labels []string) ([]LabelScore, error) {
	schema := scoreSchema(labels)
	properties, _ := schema["properties"].(map[string]any)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: 512,
		System: []anthropic.TextBlockParam{
			{Text: scoringSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(scoringUserPrompt(text, labels)),
			),
		},
		Tools: []anthropic.ToolUnionParam{
			{
				OfTool: &anthropic.ToolParam{
					Name:        "report_scores",
					Description: anthropic.String("Report a relevance score per candidate label"),
					InputSchema: anthropic.ToolInputSchemaParam{
						Type:       "object",
						Properties: properties,
						Required:   []string{"scores"},
					},
				},
			},
		},
		ToolChoice: anthropic.ToolChoiceParamOfTool("report_scores"),
	}

	resp, err := s.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	for _, block := range resp.Content {
		if b, ok := block.AsAny().(anthropic.ToolUseBlock); ok {
			raw, err := json.Marshal(b.Input)
			if err != nil {
				return nil, fmt.Errorf("marshal tool input: %w", err)
			}
			return parseScores(string(raw), labels)
		}
	}
	return nil, fmt.Errorf("no tool use block in response")
}

// Name returns "anthropic".
func (s *Anthropic) Name() string { return "anthropic" }

// Ready reports whether an API key is configured.
func (s *Anthropic) Ready() bool { return s.ready }
