// Package openai provides an EntityTagger implementation using OpenAI.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/register-graph/internal/domain/ports"
	"github.com/ersonp/register-graph/internal/infrastructure/config"
)

const taggingPrompt = `You are a named-entity tagger for English text from UK parliamentary financial-interest registers.

Tag every entity span in the given text with one of these labels:
- PERSON: named people
- ORG: companies, charities, institutions, agencies
- NORP: nationalities, religious or political groups
- DATE: absolute or relative dates and periods
- MONEY: monetary values, including the currency symbol
- GPE: countries, cities, states
- LOC: non-GPE locations
- CARDINAL: numerals not covered by another label

Return ONLY a valid JSON array, no other text. Preserve each span's exact surface text.

Example:
Input: "Received £2,400 from Acme Holdings Ltd on 12 March 2020."
Output: [
  {"text": "£2,400", "label": "MONEY"},
  {"text": "Acme Holdings Ltd", "label": "ORG"},
  {"text": "12 March 2020", "label": "DATE"}
]`

// Tagger implements the EntityTagger interface using OpenAI.
type Tagger struct {
	client *openai.Client
	model  string
}

// NewTagger creates a new OpenAI entity tagger.
func NewTagger(cfg config.NERConfig) (*Tagger, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	model := "gpt-4o-mini"
	if cfg.Model != "" {
		model = cfg.Model
	}

	return &Tagger{
		client: openai.NewClient(cfg.APIKey),
		model:  model,
	}, nil
}

// ExtractEntities tags every entity span in the text.
func (t *Tagger) ExtractEntities(ctx context.Context, text string) ([]ports.TaggedSpan, error) {
	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: taggingPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("calling OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("no response from OpenAI")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var rawSpans []rawSpan
	if err := json.Unmarshal([]byte(content), &rawSpans); err != nil {
		return nil, fmt.Errorf("parsing spans JSON: %w (response: %s)", err, content)
	}

	spans := make([]ports.TaggedSpan, 0, len(rawSpans))
	for _, rs := range rawSpans {
		if rs.Text == "" || rs.Label == "" {
			continue
		}
		spans = append(spans, ports.TaggedSpan{
			Text:  rs.Text,
			Label: ports.SpanLabel(strings.ToUpper(rs.Label)),
		})
	}
	return spans, nil
}

// rawSpan is the JSON structure for tagged spans.
type rawSpan struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// cleanJSONResponse removes markdown code blocks if present.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}
