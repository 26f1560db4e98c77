// Package genai talks to third-party generative language services.
//
// Every provider turns a prompt plus an optional output schema into raw
// JSON text. Validation of that text is left to the caller.
package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gdict/internal/config"
	"gdict/internal/logger"
	"gdict/internal/schema"
)

// ErrNotConfigured is returned by every call when no API key was provided.
// The message mentions the API key so clients can surface a configuration hint.
var ErrNotConfigured = errors.New("generation service not initialized (missing API Key?)")

// Request is a single generation call
type Request struct {
	Prompt string
	// Schema constrains the output to JSON of that shape; nil means free text
	Schema *schema.Schema
	// SchemaName labels the schema for providers that require a name
	SchemaName string
}

// Generator produces text from a prompt
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Provider() string
	Model() string
}

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

var defaultModels = map[string]string{
	ProviderGemini:    "gemini-2.5-flash",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-sonnet-4-5",
}

// New builds the generator selected by cfg. A missing API key yields a
// generator that fails every call with ErrNotConfigured, so the server can
// still start and answer with a useful error.
func New(ctx context.Context, cfg config.GenAIConfig, log *logger.Logger) (Generator, error) {
	provider := strings.ToLower(cfg.Provider)
	model := resolveModel(provider, cfg.Model)

	if cfg.APIKey == "" {
		log.Warn("No API key configured for %s, generation calls will fail", provider)
		return &unconfigured{provider: provider, model: model}, nil
	}

	var (
		gen Generator
		err error
	)
	switch provider {
	case ProviderGemini:
		gen, err = NewGemini(ctx, cfg.APIKey, model, cfg.BaseURL)
	case ProviderOpenAI:
		gen = NewOpenAI(cfg.APIKey, model, cfg.BaseURL)
	case ProviderAnthropic:
		gen = NewAnthropic(cfg.APIKey, model, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", provider, err)
	}

	log.Info("Generation service initialized: provider=%s model=%s", provider, model)
	return gen, nil
}

// resolveModel keeps an explicit model but swaps the Gemini default for the
// provider's own default when another provider is selected.
func resolveModel(provider, model string) string {
	if model == "" || (provider != ProviderGemini && model == defaultModels[ProviderGemini]) {
		return defaultModels[provider]
	}
	return model
}

type unconfigured struct {
	provider string
	model    string
}

func (u *unconfigured) Generate(context.Context, Request) (string, error) {
	return "", ErrNotConfigured
}

func (u *unconfigured) Provider() string { return u.provider }
func (u *unconfigured) Model() string    { return u.model }

// extractJSON returns the text between the first '{' and the last '}'
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
