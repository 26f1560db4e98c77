// Package state holds the client's persisted application state: settings,
// favorites, history, the cached word of the day and the welcome flag.
//
// Every mutation is applied in memory first and then written through to the
// durable Store. A failed write is reported as ErrPersist; the in-memory
// state keeps the mutation.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gdict/internal/domain"
	"gdict/internal/logger"
)

// Storage keys, shared with the browser client's local storage layout
const (
	KeySettings      = "gemini_dict_settings"
	KeyDensity       = "ui_density"
	KeyFavorites     = "gemini_dict_favorites"
	KeyHistory       = "gemini_dict_history"
	KeyWotdDate      = "gemini_wotd_date"
	KeyWotdData      = "gemini_wotd_data"
	KeyWelcomeBanner = "has_seen_welcome_banner"
)

// MaxHistory is the number of history items kept
const MaxHistory = 20

const dateLayout = "2006-01-02"

var (
	// ErrPersist wraps every failed write to the durable store
	ErrPersist = errors.New("failed to persist state")
	// ErrNoFavorites is returned when exporting an empty favorites list
	ErrNoFavorites = errors.New("No favorites to export.")
)

// Store is the durable key/value storage behind the state
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Option configures an AppState
type Option func(*AppState)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *AppState) { s.now = now }
}

// WithDarkPreference sets the host colour scheme probe used when no settings were stored
func WithDarkPreference(prefersDark func() bool) Option {
	return func(s *AppState) { s.prefersDark = prefersDark }
}

// AppState is the client's persisted state container. It is safe for concurrent use.
type AppState struct {
	mu          sync.RWMutex
	wotdMu      sync.Mutex
	store       Store
	logger      *logger.Logger
	now         func() time.Time
	prefersDark func() bool

	settings    domain.AppSettings
	favorites   []domain.FavoriteItem
	history     []domain.HistoryItem
	seenWelcome bool
}

// New creates a state container with default values. Call Load to read the store.
func New(store Store, log *logger.Logger, opts ...Option) *AppState {
	s := &AppState{
		store:       store,
		logger:      log,
		now:         time.Now,
		prefersDark: func() bool { return false },
		settings:    domain.DefaultSettings(),
		favorites:   []domain.FavoriteItem{},
		history:     []domain.HistoryItem{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads every persisted value. Unreadable or corrupt values are logged
// and treated as absent; legacy favorites and history are migrated and written
// back. The returned error is non-nil only when a migration write-back failed.
func (s *AppState) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = s.loadSettings(ctx)

	var errs []error

	favorites, migrated := s.loadFavorites(ctx)
	s.favorites = favorites
	if migrated {
		s.logger.Info("Migrated %d legacy favorites", len(favorites))
		errs = append(errs, s.persist(ctx, KeyFavorites, s.favorites))
	}

	history, migrated := s.loadHistory(ctx)
	s.history = history
	if migrated {
		s.logger.Info("Migrated %d legacy history items", len(history))
		errs = append(errs, s.persist(ctx, KeyHistory, s.history))
	}

	welcome, found := s.read(ctx, KeyWelcomeBanner)
	s.seenWelcome = found && unquote(welcome) == "true"

	s.logger.Debug("State loaded: %d favorites, %d history items, theme=%s", len(s.favorites), len(s.history), s.settings.Theme)
	return errors.Join(errs...)
}

// read returns the raw stored value; store errors are logged and treated as absent
func (s *AppState) read(ctx context.Context, key string) (string, bool) {
	value, found, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Error("Failed to read '%s': %v", key, err)
		return "", false
	}
	return value, found
}

func (s *AppState) persist(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrPersist, key, err)
	}
	return s.write(ctx, key, string(data))
}

func (s *AppState) write(ctx context.Context, key, value string) error {
	if err := s.store.Set(ctx, key, value); err != nil {
		s.logger.Error("Failed to write '%s': %v", key, err)
		return wrapPersist(key, err)
	}
	return nil
}

func wrapPersist(key string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersist, key, err)
}

// unquote accepts both raw strings and JSON-encoded strings
func unquote(value string) string {
	value = strings.TrimSpace(value)
	var s string
	if strings.HasPrefix(value, `"`) && json.Unmarshal([]byte(value), &s) == nil {
		return s
	}
	return value
}

// HasSeenWelcome reports whether the welcome banner was dismissed
func (s *AppState) HasSeenWelcome() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seenWelcome
}

// DismissWelcome records that the welcome banner was dismissed
func (s *AppState) DismissWelcome(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seenWelcome = true
	return s.write(ctx, KeyWelcomeBanner, "true")
}
