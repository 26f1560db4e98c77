package genai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAI generates content through the chat completions API
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI generator. baseURL may point at any
// compatible endpoint.
func NewOpenAI(apiKey, model, baseURL string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model}
}

// Generate implements Generator
func (o *OpenAI) Generate(ctx context.Context, req Request) (string, error) {
	chat := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if req.Schema != nil {
		name := req.SchemaName
		if name == "" {
			name = "response"
		}
		// Strict mode rejects optional properties, which the entry schema relies on.
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   name,
				Schema: req.Schema,
				Strict: false,
			},
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAI) Provider() string { return ProviderOpenAI }
func (o *OpenAI) Model() string    { return o.model }
