package genai

import (
	"context"
	"fmt"

	"gdict/internal/schema"

	googleai "google.golang.org/genai"
)

// Gemini generates content through the Gemini API with a native response schema
type Gemini struct {
	client *googleai.Client
	model  string
}

// NewGemini creates a Gemini generator. baseURL may be empty.
func NewGemini(ctx context.Context, apiKey, model, baseURL string) (*Gemini, error) {
	cc := &googleai.ClientConfig{
		APIKey:  apiKey,
		Backend: googleai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions = googleai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := googleai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return &Gemini{client: client, model: model}, nil
}

// Generate implements Generator
func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	var gc *googleai.GenerateContentConfig
	if req.Schema != nil {
		gc = &googleai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   toGeminiSchema(req.Schema),
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, googleai.Text(req.Prompt), gc)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return resp.Text(), nil
}

func (g *Gemini) Provider() string { return ProviderGemini }
func (g *Gemini) Model() string    { return g.model }

var geminiTypes = map[schema.Type]googleai.Type{
	schema.Object:  googleai.TypeObject,
	schema.Array:   googleai.TypeArray,
	schema.String:  googleai.TypeString,
	schema.Integer: googleai.TypeInteger,
	schema.Number:  googleai.TypeNumber,
	schema.Boolean: googleai.TypeBoolean,
}

// toGeminiSchema converts a declarative schema into the SDK representation.
// Property order follows the declared property names so output is stable.
func toGeminiSchema(s *schema.Schema) *googleai.Schema {
	if s == nil {
		return nil
	}

	out := &googleai.Schema{
		Type:        geminiTypes[s.Type],
		Description: s.Description,
	}
	if s.Nullable {
		nullable := true
		out.Nullable = &nullable
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*googleai.Schema, len(s.Properties))
		for _, name := range s.PropertyNames() {
			out.Properties[name] = toGeminiSchema(s.Properties[name])
		}
		out.PropertyOrdering = s.PropertyNames()
	}
	if len(s.Required) > 0 {
		out.Required = append([]string(nil), s.Required...)
	}
	out.Items = toGeminiSchema(s.Items)
	return out
}
