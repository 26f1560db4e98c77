package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gdict/internal/domain"
	"gdict/internal/genai"
	"gdict/internal/logger"
	"gdict/internal/schema"
)

// Sentinel errors for upstream failures
var (
	ErrEmptyResponse   = errors.New("empty response from generation service")
	ErrMalformedOutput = errors.New("malformed model output")
)

// InvalidRequestError represents a request the proxy refuses before calling the model
type InvalidRequestError struct {
	Message string
}

func (e InvalidRequestError) Error() string {
	return e.Message
}

// UpstreamError carries the message reported to the caller for a failed generation
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string { return e.Message }
func (e *UpstreamError) Unwrap() error { return e.Err }

// DictionaryService shapes prompts for the generation service and validates its output
type DictionaryService struct {
	gen     genai.Generator
	timeout time.Duration
	logger  *logger.Logger
}

// NewDictionaryService creates a new dictionary service. timeout bounds each
// generation call; zero disables the bound.
func NewDictionaryService(gen genai.Generator, timeout time.Duration, log *logger.Logger) *DictionaryService {
	log.Info("Dictionary service initialized")
	return &DictionaryService{
		gen:     gen,
		timeout: timeout,
		logger:  log,
	}
}

// Lookup returns the dictionary entry JSON for word, corrected if misspelled
func (s *DictionaryService) Lookup(ctx context.Context, word string) (json.RawMessage, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, InvalidRequestError{Message: "Word is required"}
	}

	s.logger.Debug("Processing lookup: '%s'", word)
	out, err := s.generate(ctx, genai.Request{
		Prompt:     lookupPrompt(word),
		Schema:     LookupSchema(),
		SchemaName: "dictionary_entry",
	}, "No response from AI")
	if err != nil {
		s.logger.Error("Lookup for '%s' failed: %v", word, err)
		return nil, err
	}

	s.logger.Info("Lookup successful: '%s'", word)
	return out, nil
}

// DailyWord returns a fresh word of the day. Every failure yields the fallback word.
func (s *DictionaryService) DailyWord(ctx context.Context) json.RawMessage {
	out, err := s.generate(ctx, genai.Request{
		Prompt:     dailyWordPrompt,
		Schema:     DailyWordSchema(),
		SchemaName: "word_of_the_day",
	}, "No response from AI")
	if err != nil {
		s.logger.Warn("Daily word generation failed, serving fallback: %v", err)
		return fallbackDailyWord()
	}
	return out
}

// Grammar returns the writing analysis JSON for text
func (s *DictionaryService) Grammar(ctx context.Context, text string) (json.RawMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, InvalidRequestError{Message: "Text is required"}
	}

	s.logger.Debug("Processing grammar analysis (%d chars)", len(text))
	out, err := s.generate(ctx, genai.Request{
		Prompt:     grammarPrompt(text),
		Schema:     GrammarSchema(),
		SchemaName: "grammar_analysis",
	}, "Analysis failed")
	if err != nil {
		s.logger.Error("Grammar analysis failed: %v", err)
		return nil, err
	}
	return out, nil
}

// Generate runs a free-form prompt without an output schema
func (s *DictionaryService) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", InvalidRequestError{Message: "Prompt is required"}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	text, err := s.gen.Generate(ctx, genai.Request{Prompt: prompt})
	if err != nil {
		s.logger.Error("Free-form generation failed: %v", err)
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", &UpstreamError{Message: "No response from AI", Err: ErrEmptyResponse}
	}
	return text, nil
}

// generate makes exactly one generation call and validates the output against
// the request schema. emptyMessage is reported when the model returns nothing.
func (s *DictionaryService) generate(ctx context.Context, req genai.Request, emptyMessage string) (json.RawMessage, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	text, err := s.gen.Generate(ctx, req)
	s.logger.Debug("Generation call to %s/%s took %v", s.gen.Provider(), s.gen.Model(), time.Since(start))
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, &UpstreamError{Message: emptyMessage, Err: ErrEmptyResponse}
	}

	if err := req.Schema.Validate([]byte(text)); err != nil {
		var mErr *schema.MismatchError
		if errors.As(err, &mErr) {
			s.logger.Warn("Model output rejected: %v", mErr)
		}
		return nil, &UpstreamError{Message: fmt.Sprintf("%v: %v", ErrMalformedOutput, err), Err: ErrMalformedOutput}
	}

	return json.RawMessage(text), nil
}

func (s *DictionaryService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func fallbackDailyWord() json.RawMessage {
	data, _ := json.Marshal(domain.FallbackWordOfTheDay)
	return data
}
