// Package apiclient is the HTTP client of the gdict backend proxy.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gdict/internal/domain"
	"gdict/internal/logger"
)

// DefaultTimeout bounds a single request when no timeout is configured
const DefaultTimeout = 60 * time.Second

// Error is returned for transport failures and non-2xx responses.
// StatusCode is zero when no response was received.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// Client calls the backend proxy
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logger.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) { c.logger = log }
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:3001/api
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  logger.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup fetches the dictionary entry for word
func (c *Client) Lookup(ctx context.Context, word string) (*domain.DictionaryEntry, error) {
	if strings.TrimSpace(word) == "" {
		return nil, domain.NewValidationError("word", "is required")
	}

	var entry domain.DictionaryEntry
	if err := c.do(ctx, http.MethodPost, "/lookup", domain.LookupRequest{Word: word}, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FetchDailyWord fetches the word of the day and reports failures
func (c *Client) FetchDailyWord(ctx context.Context) (domain.WordOfTheDay, error) {
	var wotd domain.WordOfTheDay
	if err := c.do(ctx, http.MethodGet, "/daily-word", nil, &wotd); err != nil {
		return domain.WordOfTheDay{}, err
	}
	return wotd, nil
}

// DailyWord fetches the word of the day. It never fails: any error yields
// domain.FallbackWordOfTheDay.
func (c *Client) DailyWord(ctx context.Context) domain.WordOfTheDay {
	wotd, err := c.FetchDailyWord(ctx)
	if err != nil {
		c.logger.Warn("Daily word unavailable, using fallback: %v", err)
		return domain.FallbackWordOfTheDay
	}
	return wotd
}

// CheckGrammar asks the writing coach to analyse text
func (c *Client) CheckGrammar(ctx context.Context, text string) (*domain.GrammarAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewValidationError("text", "is required")
	}

	var analysis domain.GrammarAnalysis
	if err := c.do(ctx, http.MethodPost, "/grammar", domain.GrammarRequest{Text: text}, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("%s %s failed: %v", method, path, err)
		return &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	c.logger.Debug("%s %s -> %d in %v", method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{StatusCode: resp.StatusCode, Message: errorMessage(resp)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{StatusCode: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

// errorMessage prefers the server's {"error": "..."} body over a generic status message
func errorMessage(resp *http.Response) string {
	var body domain.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil && body.Error != "" {
		return body.Error
	}
	return fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
}
