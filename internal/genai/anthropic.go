package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicMaxTokens = 4096

// Anthropic generates content through the Messages API. The API has no
// response schema parameter, so the schema is embedded in the prompt and the
// JSON object is cut out of the reply.
type Anthropic struct {
	client anthropic.Client
	model  string
}

// NewAnthropic creates an Anthropic generator. baseURL may be empty.
func NewAnthropic(apiKey, model, baseURL string) *Anthropic {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Anthropic{client: anthropic.NewClient(opts...), model: model}
}

// Generate implements Generator
func (a *Anthropic) Generate(ctx context.Context, req Request) (string, error) {
	prompt := req.Prompt
	if req.Schema != nil {
		doc, err := json.MarshalIndent(req.Schema, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal schema: %w", err)
		}
		prompt = schemaPrompt(req.Prompt, string(doc))
	}

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		sb.WriteString(block.Text)
	}
	text := sb.String()

	if req.Schema == nil || strings.TrimSpace(text) == "" {
		return text, nil
	}
	return extractJSON(text)
}

func (a *Anthropic) Provider() string { return ProviderAnthropic }
func (a *Anthropic) Model() string    { return a.model }

func schemaPrompt(prompt, schemaDoc string) string {
	return fmt.Sprintf(`%s

Output ONLY a valid JSON object matching this JSON Schema:
%s

Output ONLY the JSON, no markdown, no explanations.`, prompt, schemaDoc)
}
