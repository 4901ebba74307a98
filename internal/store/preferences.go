package store

import (
	"context"
	"fmt"

	"github.com/heartmarshall/nivara-backend/internal/domain"
)

// SetLanguage switches the UI language.
func (s *Store) SetLanguage(ctx context.Context, lang domain.Language) error {
	s.mustBeReady()
	if !lang.IsValid() {
		return domain.NewValidationError("language", "must be EN or HI")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs
	next.Language = lang
	return s.commitPreferences(ctx, next)
}

// SetDarkMode switches between the dark and light palettes.
func (s *Store) SetDarkMode(ctx context.Context, dark bool) error {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs
	next.DarkMode = dark
	return s.commitPreferences(ctx, next)
}

// ToggleTheme flips dark mode and returns the new setting.
func (s *Store) ToggleTheme(ctx context.Context) (bool, error) {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs
	next.DarkMode = !next.DarkMode
	if err := s.commitPreferences(ctx, next); err != nil {
		return s.prefs.DarkMode, err
	}
	return next.DarkMode, nil
}

func (s *Store) commitPreferences(ctx context.Context, next domain.Preferences) error {
	if err := s.persist(ctx, KeyPreferences, next); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	s.prefs = next
	return nil
}

// Preferences returns the current language and theme mode.
func (s *Store) Preferences() domain.Preferences {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.prefs
}

// Translate looks key up in the active language, falling back to the key.
func (s *Store) Translate(key string) string {
	s.mustBeReady()
	s.mu.Lock()
	lang := s.prefs.Language
	s.mu.Unlock()

	return s.table.Translate(lang, key)
}

// Theme returns the palette for the active mode.
func (s *Store) Theme() domain.Theme {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.ThemeFor(s.prefs.DarkMode)
}
