package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestDictionaryEntry_Found(t *testing.T) {
	tests := []struct {
		name  string
		entry *DictionaryEntry
		want  bool
	}{
		{name: "nil entry", entry: nil, want: false},
		{name: "no meanings", entry: &DictionaryEntry{Word: "xqzt", Synonyms: []string{"a"}}, want: false},
		{name: "with meanings", entry: &DictionaryEntry{Word: "apple", Meanings: []Meaning{{Type: "Noun"}}}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Found(); got != tt.want {
				t.Errorf("Found() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDictionaryEntry_PartOfSpeech(t *testing.T) {
	tests := []struct {
		name  string
		entry *DictionaryEntry
		want  string
	}{
		{name: "nil", entry: nil, want: UnknownPartOfSpeech},
		{name: "no meanings", entry: &DictionaryEntry{}, want: UnknownPartOfSpeech},
		{name: "empty type", entry: &DictionaryEntry{Meanings: []Meaning{{Type: ""}}}, want: UnknownPartOfSpeech},
		{name: "first meaning wins", entry: &DictionaryEntry{Meanings: []Meaning{{Type: "Verb"}, {Type: "Noun"}}}, want: "Verb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.PartOfSpeech(); got != tt.want {
				t.Errorf("PartOfSpeech() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDictionaryEntry_CorrectionText(t *testing.T) {
	if got := (&DictionaryEntry{}).CorrectionText(); got != "" {
		t.Errorf("CorrectionText() = %q, want empty", got)
	}
	if got := (&DictionaryEntry{Correction: strPtr("elephant")}).CorrectionText(); got != "elephant" {
		t.Errorf("CorrectionText() = %q, want elephant", got)
	}
}

func TestDictionaryEntry_DecodeNullables(t *testing.T) {
	raw := `{
		"word": "elephant",
		"correction": null,
		"pronunciation": "/ˈel.ɪ.fənt/",
		"level": "A2",
		"frequency_score": 61,
		"frequency_label": "Common",
		"word_family": {"noun": "elephant", "verb": null, "adjective": "elephantine", "adverb": null},
		"idioms_slang": null,
		"collocations": ["African elephant"],
		"synonyms": [],
		"meanings": [{"type": "Noun", "definition_tr": "fil", "example_en": "An elephant.", "example_tr": "Bir fil."}]
	}`

	var entry DictionaryEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if entry.Correction != nil {
		t.Errorf("Correction = %v, want nil", *entry.Correction)
	}
	if entry.WordFamily == nil || entry.WordFamily.Verb != nil || *entry.WordFamily.Adjective != "elephantine" {
		t.Errorf("WordFamily = %+v", entry.WordFamily)
	}
	if entry.IdiomsSlang != nil {
		t.Errorf("IdiomsSlang = %v, want nil", entry.IdiomsSlang)
	}
	if !entry.Found() {
		t.Error("entry should be found")
	}
}

func TestHistoryItem_Time(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	item := HistoryItem{Word: "apple", Timestamp: now.UnixMilli()}
	if !item.Time().Equal(now) {
		t.Errorf("Time() = %v, want %v", item.Time(), now)
	}
}

func TestSettings_Sanitize(t *testing.T) {
	s := AppSettings{
		Theme:       "purple",
		AccentColor: "not-a-colour",
		TTSAccent:   "fr-FR",
		UIDensity:   "20px",
		ShowIdioms:  false,
	}

	got := s.Sanitize()
	def := DefaultSettings()
	if got.Theme != def.Theme || got.AccentColor != def.AccentColor || got.TTSAccent != def.TTSAccent || got.UIDensity != def.UIDensity {
		t.Errorf("Sanitize() = %+v", got)
	}
	if got.ShowIdioms {
		t.Error("Sanitize() must keep boolean values")
	}
}

func TestSettingsPatch(t *testing.T) {
	dark := ThemeDark
	density := DensitySpacious
	off := false

	patch := SettingsPatch{Theme: &dark, UIDensity: &density, ShowFrequency: &off}
	if err := patch.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	got := patch.Apply(DefaultSettings())
	if got.Theme != ThemeDark || got.UIDensity != DensitySpacious || got.ShowFrequency {
		t.Errorf("Apply() = %+v", got)
	}
	if got.AccentColor != "#6366F1" || !got.ShowIdioms {
		t.Errorf("Apply() changed untouched fields: %+v", got)
	}

	bad := Theme("sepia")
	badColor := "blue"
	err := SettingsPatch{Theme: &bad, AccentColor: &badColor}.Validate()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Validate() error = %v, want ErrValidation", err)
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) || len(vErr.Errors) != 2 {
		t.Errorf("Validate() = %v, want 2 field errors", err)
	}
}

func TestSameWord(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Apple", "apple", true},
		{" apple ", "APPLE", true},
		{"Straße", "STRASSE", true},
		{"apple", "apples", false},
	}

	for _, tt := range tests {
		if got := SameWord(tt.a, tt.b); got != tt.want {
			t.Errorf("SameWord(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
