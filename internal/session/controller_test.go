package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gdict/internal/apiclient"
	"gdict/internal/domain"
	"gdict/internal/logger"
	"gdict/internal/repository"
	"gdict/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

// Mock Client for testing
type mockClient struct {
	mu         sync.Mutex
	entries    map[string]*domain.DictionaryEntry
	lookupErr  error
	analysis   *domain.GrammarAnalysis
	grammarErr error
	daily      domain.WordOfTheDay
	lookups    []string
	dailyCalls int

	// block, when set, holds Lookup and CheckGrammar until closed
	block   chan struct{}
	started chan struct{}
}

func (m *mockClient) wait() {
	if m.block == nil {
		return
	}
	m.started <- struct{}{}
	<-m.block
}

func (m *mockClient) Lookup(ctx context.Context, word string) (*domain.DictionaryEntry, error) {
	m.mu.Lock()
	m.lookups = append(m.lookups, word)
	m.mu.Unlock()
	m.wait()

	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	if e, ok := m.entries[word]; ok {
		return e, nil
	}
	return &domain.DictionaryEntry{Word: word, Meanings: []domain.Meaning{}}, nil
}

func (m *mockClient) DailyWord(ctx context.Context) domain.WordOfTheDay {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dailyCalls++
	return m.daily
}

func (m *mockClient) CheckGrammar(ctx context.Context, text string) (*domain.GrammarAnalysis, error) {
	m.wait()
	if m.grammarErr != nil {
		return nil, m.grammarErr
	}
	return m.analysis, nil
}

func strPtr(s string) *string { return &s }

func elephant() *domain.DictionaryEntry {
	return &domain.DictionaryEntry{
		Word:           "elephant",
		Correction:     strPtr("elephant"),
		FrequencyScore: 61,
		Meanings:       []domain.Meaning{{Type: "Noun", DefinitionTR: "fil"}},
	}
}

func setupController(t *testing.T, client *mockClient) (*Controller, *state.AppState) {
	t.Helper()
	clock := func() time.Time { return fixedNow }
	appState := state.New(repository.NewMemoryKV(), logger.Discard(), state.WithClock(clock))
	require.NoError(t, appState.Load(context.Background()))
	return NewController(client, appState, logger.Discard(), WithClock(clock)), appState
}

func TestNewController_Idle(t *testing.T) {
	c, _ := setupController(t, &mockClient{})

	assert.True(t, c.ShowIdle())
	assert.False(t, c.IsLoading())
	assert.False(t, c.ShowResultCard())
	assert.True(t, c.ShowWelcomeBanner())
	assert.Equal(t, TabDictionary, c.Tab())
	_, ok := c.Correction()
	assert.False(t, ok)
}

func TestSearch_CorrectedWordGoesToHistory(t *testing.T) {
	client := &mockClient{entries: map[string]*domain.DictionaryEntry{"eliphant": elephant()}}
	c, appState := setupController(t, client)

	s, err := c.Search(context.Background(), "  eliphant ")
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, s.Status)
	assert.Equal(t, "eliphant", s.Query)
	assert.Equal(t, "elephant", s.Data.Word)
	assert.Equal(t, []string{"eliphant"}, client.lookups)
	assert.True(t, c.ShowResultCard())
	assert.False(t, c.ShowIdle())

	correction, ok := c.Correction()
	assert.True(t, ok)
	assert.Equal(t, "elephant", correction)

	history := appState.History()
	require.Len(t, history, 1)
	assert.Equal(t, "elephant", history[0].Word)
	assert.Equal(t, "Noun", history[0].PartOfSpeech)
	assert.Equal(t, fixedNow.UnixMilli(), history[0].Timestamp)
}

func TestSearch_NotFound(t *testing.T) {
	client := &mockClient{entries: map[string]*domain.DictionaryEntry{
		"xqzt": {Word: "xqzt", Synonyms: []string{"something"}, Collocations: []string{"a b"}},
	}}
	c, appState := setupController(t, client)

	s, err := c.Search(context.Background(), "xqzt")
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, s.Status)
	assert.False(t, c.ShowResultCard(), "no card without meanings")
	assert.Empty(t, appState.History())
}

func TestSearch_BlankInputIgnored(t *testing.T) {
	client := &mockClient{}
	c, _ := setupController(t, client)

	s, err := c.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, StatusIdle, s.Status)
	assert.Empty(t, client.lookups)
}

func TestSearch_SwitchesToDictionaryTab(t *testing.T) {
	c, _ := setupController(t, &mockClient{})

	require.NoError(t, c.SetTab(TabCoach))
	assert.Equal(t, TabCoach, c.Tab())

	_, err := c.Search(context.Background(), "apple")
	require.NoError(t, err)
	assert.Equal(t, TabDictionary, c.Tab())

	assert.Error(t, c.SetTab(Tab("settings")))
}

func TestSearch_ErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "missing API key",
			err:  &apiclient.Error{StatusCode: 500, Message: "generation service not initialized (missing API Key?)"},
			want: MsgAPIKeyMissing,
		},
		{
			name: "server message",
			err:  &apiclient.Error{StatusCode: 500, Message: "No response from AI"},
			want: "No response from AI",
		},
		{
			name: "status message",
			err:  &apiclient.Error{StatusCode: 502, Message: "HTTP error! status: 502"},
			want: "HTTP error! status: 502",
		},
		{
			name: "empty message",
			err:  errors.New(""),
			want: MsgUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, appState := setupController(t, &mockClient{lookupErr: tt.err})

			s, err := c.Search(context.Background(), "apple")
			require.NoError(t, err)

			assert.Equal(t, StatusError, s.Status)
			assert.Equal(t, tt.want, s.Error)
			assert.Nil(t, s.Data)
			assert.False(t, c.ShowResultCard())
			assert.Empty(t, appState.History())
		})
	}
}

func TestSearch_BusyWhileInFlight(t *testing.T) {
	client := &mockClient{block: make(chan struct{}), started: make(chan struct{})}
	c, _ := setupController(t, client)

	done := make(chan SearchState)
	go func() {
		s, _ := c.Search(context.Background(), "apple")
		done <- s
	}()

	<-client.started
	assert.True(t, c.IsLoading())

	_, err := c.Search(context.Background(), "pear")
	assert.True(t, errors.Is(err, ErrBusy))

	close(client.block)
	s := <-done
	assert.Equal(t, StatusSuccess, s.Status)
	assert.Equal(t, []string{"apple"}, client.lookups)
}

func TestAcceptCorrection(t *testing.T) {
	client := &mockClient{entries: map[string]*domain.DictionaryEntry{"eliphant": elephant()}}
	c, _ := setupController(t, client)

	// nothing to accept yet
	s, err := c.AcceptCorrection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusIdle, s.Status)

	_, err = c.Search(context.Background(), "eliphant")
	require.NoError(t, err)

	_, err = c.AcceptCorrection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"eliphant", "elephant"}, client.lookups)
}

func TestStart_CachesWordOfTheDay(t *testing.T) {
	client := &mockClient{daily: domain.WordOfTheDay{Word: "Ephemeral", DefinitionTR: "Geçici", Context: "Fame is ephemeral."}}
	c, _ := setupController(t, client)

	_, ok := c.WordOfTheDay()
	assert.False(t, ok)

	for i := 0; i < 2; i++ {
		wotd, err := c.Start(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Ephemeral", wotd.Word)
	}
	assert.Equal(t, 1, client.dailyCalls)

	wotd, ok := c.WordOfTheDay()
	assert.True(t, ok)
	assert.Equal(t, "Ephemeral", wotd.Word)
}

func TestCheckGrammar(t *testing.T) {
	analysis := &domain.GrammarAnalysis{AnalysisStatus: "Mükemmel", SuggestedRevision: "Hello."}

	t.Run("success", func(t *testing.T) {
		c, _ := setupController(t, &mockClient{analysis: analysis})
		s, err := c.CheckGrammar(context.Background(), "Hello.")
		require.NoError(t, err)
		assert.False(t, s.Loading)
		assert.Equal(t, analysis, s.Analysis)
		assert.Empty(t, s.Error)
		assert.Equal(t, s, c.CoachState())
	})

	t.Run("failure", func(t *testing.T) {
		c, _ := setupController(t, &mockClient{grammarErr: errors.New("boom")})
		s, err := c.CheckGrammar(context.Background(), "Hello.")
		require.NoError(t, err)
		assert.Nil(t, s.Analysis)
		assert.Equal(t, MsgAnalysisFailed, s.Error)
	})

	t.Run("blank text ignored", func(t *testing.T) {
		c, _ := setupController(t, &mockClient{analysis: analysis})
		s, err := c.CheckGrammar(context.Background(), " \n ")
		require.NoError(t, err)
		assert.Equal(t, CoachState{}, s)
	})

	t.Run("busy while loading", func(t *testing.T) {
		client := &mockClient{analysis: analysis, block: make(chan struct{}), started: make(chan struct{})}
		c, _ := setupController(t, client)

		done := make(chan struct{})
		go func() {
			_, _ = c.CheckGrammar(context.Background(), "first")
			close(done)
		}()
		<-client.started

		_, err := c.CheckGrammar(context.Background(), "second")
		assert.True(t, errors.Is(err, ErrBusy))

		close(client.block)
		<-done
		assert.Equal(t, "first", c.CoachState().Text)
	})
}

func TestIntents(t *testing.T) {
	ctx := context.Background()
	c, appState := setupController(t, &mockClient{entries: map[string]*domain.DictionaryEntry{"elephant": elephant()}})

	s, err := c.Search(ctx, "elephant")
	require.NoError(t, err)

	added, err := c.ToggleFavorite(ctx, s.Data)
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, appState.IsFavorite("elephant"))

	export, err := c.ExportFavorites()
	require.NoError(t, err)
	assert.Equal(t, "gdict_favorites_2024-03-15.txt", export.Filename)
	assert.Equal(t, "elephant", export.Content)

	require.NoError(t, c.RemoveFavorite(ctx, "elephant"))
	_, err = c.ExportFavorites()
	assert.True(t, errors.Is(err, state.ErrNoFavorites))

	require.NoError(t, c.RemoveFromHistory(ctx, "elephant"))
	assert.Empty(t, appState.History())

	_, err = c.Search(ctx, "elephant")
	require.NoError(t, err)
	require.NoError(t, c.ClearHistory(ctx))
	assert.Empty(t, appState.History())

	dark := domain.ThemeDark
	settings, err := c.UpdateSettings(ctx, domain.SettingsPatch{Theme: &dark})
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, settings.Theme)

	require.NoError(t, c.DismissWelcome(ctx))
	assert.False(t, c.ShowWelcomeBanner())
}
