package state

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"gdict/internal/domain"
)

// Placeholders used for items migrated from the legacy bare-word lists
const (
	legacyPartOfSpeech          = "?"
	legacyFrequencyScore        = 50
	legacyHistoryPartOfSpeech   = domain.UnknownPartOfSpeech
	legacyHistoryFrequencyScore = 50
)

// decodeList splits a stored JSON array into its elements. Anything that is
// not an array is reported as absent.
func (s *AppState) decodeList(ctx context.Context, key string) ([]json.RawMessage, bool) {
	raw, found := s.read(ctx, key)
	if !found {
		return nil, false
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		s.logger.Warn("Ignoring corrupt '%s': %v", key, err)
		return nil, false
	}
	return elems, true
}

// legacyWord reports whether elem is a bare JSON string and returns it
func legacyWord(elem json.RawMessage) (string, bool) {
	if !strings.HasPrefix(strings.TrimSpace(string(elem)), `"`) {
		return "", false
	}
	var word string
	if err := json.Unmarshal(elem, &word); err != nil {
		return "", false
	}
	return word, true
}

func (s *AppState) loadFavorites(ctx context.Context) ([]domain.FavoriteItem, bool) {
	elems, ok := s.decodeList(ctx, KeyFavorites)
	favorites := make([]domain.FavoriteItem, 0, len(elems))
	if !ok {
		return favorites, false
	}

	migrated := false
	for _, elem := range elems {
		if word, ok := legacyWord(elem); ok {
			favorites = append(favorites, domain.FavoriteItem{
				Word:           word,
				PartOfSpeech:   legacyPartOfSpeech,
				FrequencyScore: legacyFrequencyScore,
			})
			migrated = true
			continue
		}

		var item domain.FavoriteItem
		if err := json.Unmarshal(elem, &item); err != nil || item.Word == "" {
			s.logger.Warn("Dropping unreadable favorite: %s", string(elem))
			migrated = true
			continue
		}
		favorites = append(favorites, item)
	}
	return favorites, migrated
}

func (s *AppState) loadHistory(ctx context.Context) ([]domain.HistoryItem, bool) {
	elems, ok := s.decodeList(ctx, KeyHistory)
	history := make([]domain.HistoryItem, 0, len(elems))
	if !ok {
		return history, false
	}

	now := s.now().UnixMilli()
	migrated := false
	for _, elem := range elems {
		if word, ok := legacyWord(elem); ok {
			history = append(history, domain.HistoryItem{
				Word:           word,
				Timestamp:      now,
				FrequencyScore: legacyHistoryFrequencyScore,
				PartOfSpeech:   legacyHistoryPartOfSpeech,
			})
			migrated = true
			continue
		}

		var item domain.HistoryItem
		if err := json.Unmarshal(elem, &item); err != nil || item.Word == "" {
			s.logger.Warn("Dropping unreadable history item: %s", string(elem))
			migrated = true
			continue
		}
		history = append(history, item)
	}

	if len(history) > MaxHistory {
		history = history[:MaxHistory]
		migrated = true
	}
	return history, migrated
}

// Favorites returns the favorites, newest first
func (s *AppState) Favorites() []domain.FavoriteItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.FavoriteItem(nil), s.favorites...)
}

// IsFavorite reports whether word is a favorite (exact match)
func (s *AppState) IsFavorite(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexFavorite(s.favorites, word) >= 0
}

func indexFavorite(favorites []domain.FavoriteItem, word string) int {
	for i, f := range favorites {
		if f.Word == word {
			return i
		}
	}
	return -1
}

// ToggleFavorite removes entry's word from the favorites when present and
// inserts it at the front otherwise. It reports whether the word is now a favorite.
func (s *AppState) ToggleFavorite(ctx context.Context, entry *domain.DictionaryEntry) (bool, error) {
	if entry == nil || entry.Word == "" {
		return false, domain.NewValidationError("word", "is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := false
	if i := indexFavorite(s.favorites, entry.Word); i >= 0 {
		s.favorites = removeFavoriteAt(s.favorites, i)
	} else {
		item := domain.FavoriteItem{
			Word:           entry.Word,
			PartOfSpeech:   entry.PartOfSpeech(),
			FrequencyScore: entry.FrequencyScore,
		}
		s.favorites = append([]domain.FavoriteItem{item}, s.favorites...)
		added = true
	}

	return added, s.persist(ctx, KeyFavorites, s.favorites)
}

// RemoveFavorite removes word (exact match) from the favorites
func (s *AppState) RemoveFavorite(ctx context.Context, word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexFavorite(s.favorites, word)
	if i < 0 {
		return nil
	}
	s.favorites = removeFavoriteAt(s.favorites, i)
	return s.persist(ctx, KeyFavorites, s.favorites)
}

func removeFavoriteAt(favorites []domain.FavoriteItem, i int) []domain.FavoriteItem {
	out := make([]domain.FavoriteItem, 0, len(favorites)-1)
	out = append(out, favorites[:i]...)
	return append(out, favorites[i+1:]...)
}

// Export is a downloadable favorites file
type Export struct {
	Filename string
	Content  string
}

// ExportFavorites renders the favorites as one word per line. The filename
// carries the UTC date of now.
func (s *AppState) ExportFavorites(now time.Time) (Export, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.favorites) == 0 {
		return Export{}, ErrNoFavorites
	}

	words := make([]string, len(s.favorites))
	for i, f := range s.favorites {
		words[i] = f.Word
	}
	return Export{
		Filename: "gdict_favorites_" + now.UTC().Format(dateLayout) + ".txt",
		Content:  strings.Join(words, "\n"),
	}, nil
}

// History returns the history, newest first
func (s *AppState) History() []domain.HistoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.HistoryItem(nil), s.history...)
}

// AddToHistory records a resolved lookup at the front of the history. Earlier
// items with the same word in any letter case are replaced. Entries without
// meanings are not recorded.
func (s *AppState) AddToHistory(ctx context.Context, entry *domain.DictionaryEntry) error {
	if !entry.Found() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]domain.HistoryItem, 0, MaxHistory)
	history = append(history, domain.HistoryItem{
		Word:           entry.Word,
		Timestamp:      s.now().UnixMilli(),
		FrequencyScore: entry.FrequencyScore,
		PartOfSpeech:   entry.PartOfSpeech(),
	})
	for _, item := range s.history {
		if len(history) == MaxHistory {
			break
		}
		if domain.SameWord(item.Word, entry.Word) {
			continue
		}
		history = append(history, item)
	}
	s.history = history

	return s.persist(ctx, KeyHistory, s.history)
}

// RemoveFromHistory removes every history item whose word equals word exactly
func (s *AppState) RemoveFromHistory(ctx context.Context, word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.HistoryItem, 0, len(s.history))
	for _, item := range s.history {
		if item.Word != word {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(s.history) {
		return nil
	}
	s.history = kept
	return s.persist(ctx, KeyHistory, s.history)
}

// ClearHistory empties the history and deletes its durable record
func (s *AppState) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = []domain.HistoryItem{}
	if err := s.store.Remove(ctx, KeyHistory); err != nil {
		s.logger.Error("Failed to remove '%s': %v", KeyHistory, err)
		return wrapPersist(KeyHistory, err)
	}
	return nil
}
