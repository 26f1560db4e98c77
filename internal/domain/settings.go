package domain

import (
	"regexp"
)

// Theme is the colour theme of the UI
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// IsValid reports whether t is a known theme
func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// TTSAccent is the accent used for pronunciation playback
type TTSAccent string

const (
	AccentUS TTSAccent = "en-US"
	AccentGB TTSAccent = "en-GB"
)

// IsValid reports whether a is a known accent
func (a TTSAccent) IsValid() bool {
	return a == AccentUS || a == AccentGB
}

// Density is the root font size of the UI
type Density string

const (
	DensityCompact     Density = "14px"
	DensityComfortable Density = "15px"
	DensitySpacious    Density = "16px"
)

// IsValid reports whether d is one of the three supported sizes
func (d Density) IsValid() bool {
	return d == DensityCompact || d == DensityComfortable || d == DensitySpacious
}

var hexColor = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// AppSettings is the user's preferences singleton
type AppSettings struct {
	Theme          Theme     `json:"theme"`
	AccentColor    string    `json:"accentColor"`
	TTSAccent      TTSAccent `json:"tts_accent"`
	UIDensity      Density   `json:"uiDensity"`
	ShowMorphology bool      `json:"showMorphology"`
	ShowFrequency  bool      `json:"showFrequency"`
	ShowIdioms     bool      `json:"showIdioms"`
}

// DefaultSettings returns the settings used when nothing was stored
func DefaultSettings() AppSettings {
	return AppSettings{
		Theme:          ThemeLight,
		AccentColor:    "#6366F1",
		TTSAccent:      AccentUS,
		UIDensity:      DensityCompact,
		ShowMorphology: true,
		ShowFrequency:  true,
		ShowIdioms:     true,
	}
}

// Sanitize replaces every invalid enumerated field with its default
func (s AppSettings) Sanitize() AppSettings {
	def := DefaultSettings()
	if !s.Theme.IsValid() {
		s.Theme = def.Theme
	}
	if !hexColor.MatchString(s.AccentColor) {
		s.AccentColor = def.AccentColor
	}
	if !s.TTSAccent.IsValid() {
		s.TTSAccent = def.TTSAccent
	}
	if !s.UIDensity.IsValid() {
		s.UIDensity = def.UIDensity
	}
	return s
}

// SettingsPatch is a partial settings update; nil fields are left unchanged
type SettingsPatch struct {
	Theme          *Theme
	AccentColor    *string
	TTSAccent      *TTSAccent
	UIDensity      *Density
	ShowMorphology *bool
	ShowFrequency  *bool
	ShowIdioms     *bool
}

// Validate checks the enumerated fields of the patch
func (p SettingsPatch) Validate() error {
	var errs []FieldError
	if p.Theme != nil && !p.Theme.IsValid() {
		errs = append(errs, FieldError{Field: "theme", Message: "must be light or dark"})
	}
	if p.AccentColor != nil && !hexColor.MatchString(*p.AccentColor) {
		errs = append(errs, FieldError{Field: "accentColor", Message: "must be a hex colour like #6366F1"})
	}
	if p.TTSAccent != nil && !p.TTSAccent.IsValid() {
		errs = append(errs, FieldError{Field: "tts_accent", Message: "must be en-US or en-GB"})
	}
	if p.UIDensity != nil && !p.UIDensity.IsValid() {
		errs = append(errs, FieldError{Field: "uiDensity", Message: "must be 14px, 15px or 16px"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// Apply returns s with the patch applied
func (p SettingsPatch) Apply(s AppSettings) AppSettings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.AccentColor != nil {
		s.AccentColor = *p.AccentColor
	}
	if p.TTSAccent != nil {
		s.TTSAccent = *p.TTSAccent
	}
	if p.UIDensity != nil {
		s.UIDensity = *p.UIDensity
	}
	if p.ShowMorphology != nil {
		s.ShowMorphology = *p.ShowMorphology
	}
	if p.ShowFrequency != nil {
		s.ShowFrequency = *p.ShowFrequency
	}
	if p.ShowIdioms != nil {
		s.ShowIdioms = *p.ShowIdioms
	}
	return s
}
