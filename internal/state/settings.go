package state

import (
	"context"
	"encoding/json"

	"gdict/internal/domain"
)

// loadSettings merges the stored settings object over the defaults. A stored
// ui_density wins over the object's density. Without a usable stored object the
// host's dark preference selects the theme.
func (s *AppState) loadSettings(ctx context.Context) domain.AppSettings {
	settings := domain.DefaultSettings()

	stored := false
	if raw, found := s.read(ctx, KeySettings); found {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal([]byte(raw), &fields); err != nil || fields == nil {
			s.logger.Warn("Ignoring corrupt settings: %v", err)
		} else {
			settings = mergeSettings(settings, fields)
			stored = true
		}
	}

	if raw, found := s.read(ctx, KeyDensity); found {
		if density := domain.Density(unquote(raw)); density.IsValid() {
			settings.UIDensity = density
		}
	}

	if !stored && s.prefersDark() {
		settings.Theme = domain.ThemeDark
	}

	return settings.Sanitize()
}

// mergeSettings overlays each known stored field; a field of the wrong type keeps its default
func mergeSettings(settings domain.AppSettings, fields map[string]json.RawMessage) domain.AppSettings {
	for key, value := range fields {
		var target interface{}
		switch key {
		case "theme":
			target = &settings.Theme
		case "accentColor":
			target = &settings.AccentColor
		case "tts_accent":
			target = &settings.TTSAccent
		case "uiDensity":
			target = &settings.UIDensity
		case "showMorphology":
			target = &settings.ShowMorphology
		case "showFrequency":
			target = &settings.ShowFrequency
		case "showIdioms":
			target = &settings.ShowIdioms
		default:
			continue
		}
		_ = json.Unmarshal(value, target)
	}
	return settings
}

// Settings returns the current settings
func (s *AppState) Settings() domain.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings applies a partial update and writes the whole settings object
// plus the density mirror key
func (s *AppState) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.AppSettings, error) {
	if err := patch.Validate(); err != nil {
		return s.Settings(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = patch.Apply(s.settings)
	settings := s.settings

	if err := s.persist(ctx, KeySettings, settings); err != nil {
		return settings, err
	}
	if err := s.write(ctx, KeyDensity, string(settings.UIDensity)); err != nil {
		return settings, err
	}

	s.logger.Debug("Settings updated: %+v", settings)
	return settings, nil
}
