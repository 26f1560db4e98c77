// Package session orchestrates one interactive session: the current search,
// the writing coach, the active tab and the flags the presentation layer
// derives from them. Durable changes are routed to the persisted app state.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"gdict/internal/domain"
	"gdict/internal/logger"
	"gdict/internal/state"
)

// Status is the lifecycle of a search
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Tab is the active panel
type Tab string

const (
	TabDictionary Tab = "dictionary"
	TabCoach      Tab = "coach"
)

// User-facing error texts
const (
	MsgAPIKeyMissing  = "API Configuration Error: API Key is missing."
	MsgUnexpected     = "An unexpected error occurred. Please try again."
	MsgAnalysisFailed = "Analysis failed. Please try again."
)

// ErrBusy is returned when a search or analysis is already in flight
var ErrBusy = errors.New("request already in progress")

// SearchState is the ephemeral result of the last search
type SearchState struct {
	Status Status
	Query  string
	Data   *domain.DictionaryEntry
	Error  string
}

// CoachState is the ephemeral result of the last writing analysis
type CoachState struct {
	Loading  bool
	Text     string
	Analysis *domain.GrammarAnalysis
	Error    string
}

// Client is the subset of the API client the session needs
type Client interface {
	Lookup(ctx context.Context, word string) (*domain.DictionaryEntry, error)
	DailyWord(ctx context.Context) domain.WordOfTheDay
	CheckGrammar(ctx context.Context, text string) (*domain.GrammarAnalysis, error)
}

// Controller mediates between the API client and the persisted state
type Controller struct {
	mu     sync.Mutex
	client Client
	state  *state.AppState
	logger *logger.Logger
	now    func() time.Time

	tab    Tab
	search SearchState
	coach  CoachState
	wotd   *domain.WordOfTheDay
}

// Option configures a Controller
type Option func(*Controller)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController creates a controller in the idle state on the dictionary tab.
// appState must already be loaded.
func NewController(client Client, appState *state.AppState, log *logger.Logger, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		state:  appState,
		logger: log,
		now:    time.Now,
		tab:    TabDictionary,
		search: SearchState{Status: StatusIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	log.Info("Session controller initialized")
	return c
}

// Start loads the word of the day through the daily cache. The client never
// fails, so a word is always returned; the error only reports a failed cache write.
func (c *Controller) Start(ctx context.Context) (domain.WordOfTheDay, error) {
	wotd, err := c.state.WordOfTheDay(ctx, func(ctx context.Context) (domain.WordOfTheDay, error) {
		return c.client.DailyWord(ctx), nil
	})
	if err != nil && wotd.Word == "" {
		wotd = domain.FallbackWordOfTheDay
	}

	c.mu.Lock()
	c.wotd = &wotd
	c.mu.Unlock()

	return wotd, err
}

// WordOfTheDay returns the word loaded by Start
func (c *Controller) WordOfTheDay() (domain.WordOfTheDay, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.wotd == nil {
		return domain.WordOfTheDay{}, false
	}
	return *c.wotd, true
}

// Search looks up word and records resolvable results in the history.
// Blank input is ignored. A lookup failure is reported through the returned
// state; the error is ErrBusy or a failed history write.
func (c *Controller) Search(ctx context.Context, word string) (SearchState, error) {
	word = strings.TrimSpace(word)

	c.mu.Lock()
	if word == "" {
		s := c.search
		c.mu.Unlock()
		return s, nil
	}
	if c.search.Status == StatusLoading {
		c.mu.Unlock()
		return SearchState{}, ErrBusy
	}
	c.tab = TabDictionary
	c.search = SearchState{Status: StatusLoading, Query: word}
	c.mu.Unlock()

	start := c.now()
	entry, err := c.client.Lookup(ctx, word)

	c.mu.Lock()
	if err != nil {
		c.logger.Error("Lookup '%s' failed: %v", word, err)
		c.search = SearchState{Status: StatusError, Query: word, Error: errorMessage(err)}
	} else {
		c.logger.Debug("Lookup '%s' resolved to '%s' in %v", word, entry.Word, c.now().Sub(start))
		c.search = SearchState{Status: StatusSuccess, Query: word, Data: entry}
	}
	result := c.search
	c.mu.Unlock()

	if err != nil || !entry.Found() {
		return result, nil
	}
	if err := c.state.AddToHistory(ctx, entry); err != nil {
		c.logger.Warn("History not saved: %v", err)
		return result, err
	}
	return result, nil
}

// AcceptCorrection searches for the suggested correction of the last result
func (c *Controller) AcceptCorrection(ctx context.Context) (SearchState, error) {
	correction, ok := c.Correction()
	if !ok {
		return c.SearchState(), nil
	}
	return c.Search(ctx, correction)
}

// errorMessage maps a lookup failure to the text shown to the user
func errorMessage(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API Key"):
		return MsgAPIKeyMissing
	case msg != "":
		return msg
	default:
		return MsgUnexpected
	}
}

// SearchState returns the current search state
func (c *Controller) SearchState() SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search
}

// IsLoading reports whether a search is in flight
func (c *Controller) IsLoading() bool {
	return c.SearchState().Status == StatusLoading
}

// ShowIdle reports whether nothing was searched yet
func (c *Controller) ShowIdle() bool {
	return c.SearchState().Status == StatusIdle
}

// ShowResultCard reports whether the last search produced a resolvable entry
func (c *Controller) ShowResultCard() bool {
	s := c.SearchState()
	return s.Status == StatusSuccess && s.Data.Found()
}

// Correction returns the "did you mean" suggestion of the last successful search
func (c *Controller) Correction() (string, bool) {
	s := c.SearchState()
	if s.Status != StatusSuccess {
		return "", false
	}
	correction := s.Data.CorrectionText()
	return correction, correction != ""
}

// ShowWelcomeBanner reports whether the welcome banner is still due
func (c *Controller) ShowWelcomeBanner() bool {
	return !c.state.HasSeenWelcome()
}

// Tab returns the active tab
func (c *Controller) Tab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tab
}

// SetTab switches the active tab
func (c *Controller) SetTab(tab Tab) error {
	if tab != TabDictionary && tab != TabCoach {
		return domain.NewValidationError("tab", "must be dictionary or coach")
	}
	c.mu.Lock()
	c.tab = tab
	c.mu.Unlock()
	return nil
}

// CheckGrammar runs the writing coach on text. Blank text is ignored.
func (c *Controller) CheckGrammar(ctx context.Context, text string) (CoachState, error) {
	c.mu.Lock()
	if strings.TrimSpace(text) == "" {
		s := c.coach
		c.mu.Unlock()
		return s, nil
	}
	if c.coach.Loading {
		c.mu.Unlock()
		return CoachState{}, ErrBusy
	}
	c.coach = CoachState{Loading: true, Text: text}
	c.mu.Unlock()

	analysis, err := c.client.CheckGrammar(ctx, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Error("Grammar analysis failed: %v", err)
		c.coach = CoachState{Text: text, Error: MsgAnalysisFailed}
	} else {
		c.coach = CoachState{Text: text, Analysis: analysis}
	}
	return c.coach, nil
}

// CoachState returns the current writing coach state
func (c *Controller) CoachState() CoachState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.coach
}

// ToggleFavorite adds or removes entry from the favorites
func (c *Controller) ToggleFavorite(ctx context.Context, entry *domain.DictionaryEntry) (bool, error) {
	return c.state.ToggleFavorite(ctx, entry)
}

// RemoveFavorite removes word from the favorites
func (c *Controller) RemoveFavorite(ctx context.Context, word string) error {
	return c.state.RemoveFavorite(ctx, word)
}

// RemoveFromHistory removes word from the history
func (c *Controller) RemoveFromHistory(ctx context.Context, word string) error {
	return c.state.RemoveFromHistory(ctx, word)
}

// ClearHistory empties the history
func (c *Controller) ClearHistory(ctx context.Context) error {
	return c.state.ClearHistory(ctx)
}

// UpdateSettings applies a partial settings change
func (c *Controller) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.AppSettings, error) {
	return c.state.UpdateSettings(ctx, patch)
}

// DismissWelcome hides the welcome banner for good
func (c *Controller) DismissWelcome(ctx context.Context) error {
	return c.state.DismissWelcome(ctx)
}

// ExportFavorites renders the favorites file for today
func (c *Controller) ExportFavorites() (state.Export, error) {
	return c.state.ExportFavorites(c.now())
}
