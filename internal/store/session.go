package store

import (
	"sync"

	"github.com/korobox/webtier/internal/localstore"
	"github.com/korobox/webtier/internal/models"
)

// SessionStore mirrors authentication state: IsAuthenticated tracks the
// presence of the stored access token unless SetAuth overrides it for the
// current user object.
type SessionStore struct {
	notifier

	mu            sync.Mutex
	ls            *localstore.Store
	user          *models.UserProfile
	authenticated bool
	loading       bool
}

// NewSessionStore derives the initial authenticated flag from token presence.
func NewSessionStore(ls *localstore.Store) (*SessionStore, error) {
	_, ok, err := ls.Get(localstore.KeyAccessToken)
	if err != nil {
		return nil, err
	}
	return &SessionStore{ls: ls, authenticated: ok}, nil
}

// Token returns the stored access token, if any.
func (s *SessionStore) Token() (string, bool) {
	v, ok, err := s.ls.Get(localstore.KeyAccessToken)
	if err != nil {
		return "", false
	}
	return v, ok
}

// SetToken stores the credential issued at login and marks the session
// authenticated.
func (s *SessionStore) SetToken(token string) error {
	if err := s.ls.Set(localstore.KeyAccessToken, token); err != nil {
		return err
	}
	s.mu.Lock()
	s.authenticated = true
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetAuth sets the current user; nil clears the stored token as a side
// effect.
func (s *SessionStore) SetAuth(user *models.UserProfile) error {
	if user == nil {
		if err := s.ls.Delete(localstore.KeyAccessToken); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.user = user
	s.authenticated = user != nil
	s.mu.Unlock()
	s.notify()
	return nil
}

// Logout clears the stored token and resets state unconditionally.
func (s *SessionStore) Logout() error {
	if err := s.ls.Delete(localstore.KeyAccessToken); err != nil {
		return err
	}
	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.loading = false
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetLoading toggles the independent busy flag.
func (s *SessionStore) SetLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
	s.notify()
}

func (s *SessionStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *SessionStore) User() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *SessionStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
