package store

import (
	"sync"

	"github.com/korobox/webtier/internal/localstore"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeStore holds the persisted light/dark preference. Every change is
// written through to local storage and pushed into the apply hook (the
// dark-mode presentation flag), so the rendered state always matches the
// stored value.
type ThemeStore struct {
	notifier

	mu    sync.Mutex
	ls    *localstore.Store
	theme Theme
	apply func(Theme)
}

// NewThemeStore resolves the initial value: a persisted preference wins;
// otherwise the system preference probe decides, falling back to light.
// The apply hook runs once with the resolved value.
func NewThemeStore(ls *localstore.Store, systemPrefers func() Theme, apply func(Theme)) (*ThemeStore, error) {
	s := &ThemeStore{ls: ls, apply: apply}
	v, ok, err := ls.Get(localstore.KeyTheme)
	if err != nil {
		return nil, err
	}
	switch {
	case ok && Theme(v) == ThemeDark:
		s.theme = ThemeDark
	case ok:
		s.theme = ThemeLight
	case systemPrefers != nil:
		s.theme = systemPrefers()
		if s.theme != ThemeDark {
			s.theme = ThemeLight
		}
	default:
		s.theme = ThemeLight
	}
	if s.apply != nil {
		s.apply(s.theme)
	}
	return s, nil
}

func (s *ThemeStore) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Set persists the theme and synchronously applies it.
func (s *ThemeStore) Set(theme Theme) error {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	s.mu.Lock()
	s.theme = theme
	apply := s.apply
	s.mu.Unlock()
	if err := s.ls.Set(localstore.KeyTheme, string(theme)); err != nil {
		return err
	}
	if apply != nil {
		apply(theme)
	}
	s.notify()
	return nil
}

// Toggle flips between light and dark.
func (s *ThemeStore) Toggle() error {
	if s.Theme() == ThemeDark {
		return s.Set(ThemeLight)
	}
	return s.Set(ThemeDark)
}
