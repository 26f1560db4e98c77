package state

import (
	"context"
	"encoding/json"

	"gdict/internal/domain"
)

// DailyWordFetcher produces a fresh word of the day
type DailyWordFetcher func(ctx context.Context) (domain.WordOfTheDay, error)

// Today returns the current UTC calendar date as YYYY-MM-DD
func (s *AppState) Today() string {
	return s.now().UTC().Format(dateLayout)
}

// WordOfTheDay returns the cached word when it was stored today and otherwise
// calls fetch once and caches the result with today's date. A fetch error is
// returned as is and leaves the cache untouched. When only the cache write
// fails, the fetched word is returned together with an ErrPersist error.
func (s *AppState) WordOfTheDay(ctx context.Context, fetch DailyWordFetcher) (domain.WordOfTheDay, error) {
	s.wotdMu.Lock()
	defer s.wotdMu.Unlock()

	today := s.Today()
	if cached, ok := s.cachedWordOfTheDay(ctx, today); ok {
		s.logger.Debug("Using cached word of the day '%s'", cached.Word)
		return cached, nil
	}

	wotd, err := fetch(ctx)
	if err != nil {
		s.logger.Warn("Failed to fetch word of the day: %v", err)
		return domain.WordOfTheDay{}, err
	}

	if err := s.persist(ctx, KeyWotdData, wotd); err != nil {
		return wotd, err
	}
	if err := s.write(ctx, KeyWotdDate, today); err != nil {
		return wotd, err
	}

	s.logger.Info("Cached word of the day '%s' for %s", wotd.Word, today)
	return wotd, nil
}

func (s *AppState) cachedWordOfTheDay(ctx context.Context, today string) (domain.WordOfTheDay, bool) {
	date, found := s.read(ctx, KeyWotdDate)
	if !found || unquote(date) != today {
		return domain.WordOfTheDay{}, false
	}

	raw, found := s.read(ctx, KeyWotdData)
	if !found {
		return domain.WordOfTheDay{}, false
	}

	var wotd domain.WordOfTheDay
	if err := json.Unmarshal([]byte(raw), &wotd); err != nil || wotd.Word == "" {
		s.logger.Warn("Ignoring corrupt cached word of the day: %v", err)
		return domain.WordOfTheDay{}, false
	}
	return wotd, true
}
