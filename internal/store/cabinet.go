package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/korobox/webtier/internal/apiclient"
	"github.com/korobox/webtier/internal/localstore"
	"github.com/korobox/webtier/internal/logging"
	"github.com/korobox/webtier/internal/models"
)

const profilePath = "/api/cabinet/profile"

// cabinetSnapshot is what survives reloads under the cabinet namespace.
type cabinetSnapshot struct {
	Profile      *models.UserProfile  `json:"profile,omitempty"`
	Subscription *models.Subscription `json:"subscription,omitempty"`
}

// CabinetStore caches the current user's profile and subscription snapshot.
// Server responses are authoritative: a successful fetch or update replaces
// the cache wholesale, a failure leaves it untouched. Concurrent calls are
// last-write-wins; there is no coalescing or cancellation.
type CabinetStore struct {
	notifier

	mu           sync.Mutex
	ls           *localstore.Store
	api          *apiclient.Client
	log          logging.Logger
	profile      *models.UserProfile
	subscription *models.Subscription
}

// NewCabinetStore loads any persisted snapshot so the cabinet renders
// instantly on reload.
func NewCabinetStore(ls *localstore.Store, api *apiclient.Client, log logging.Logger) (*CabinetStore, error) {
	s := &CabinetStore{ls: ls, api: api, log: log}
	if s.log == nil {
		s.log = logging.NewDefault()
	}
	raw, ok, err := ls.Get(localstore.KeyCabinet)
	if err != nil {
		return nil, err
	}
	if ok {
		var snap cabinetSnapshot
		if err := json.Unmarshal([]byte(raw), &snap); err == nil {
			s.profile = snap.Profile
			s.subscription = snap.Subscription
		}
	}
	return s, nil
}

// FetchProfile requests the current profile and replaces the cache on
// success. On failure the error is logged and returned; the prior cache is
// kept.
func (s *CabinetStore) FetchProfile(ctx context.Context) (*models.UserProfile, error) {
	var p models.UserProfile
	if err := s.api.Get(ctx, profilePath, &p); err != nil {
		s.log.Error(ctx, "fetch profile failed", "err", err)
		return nil, err
	}
	s.setProfile(&p)
	return &p, nil
}

// UpdateProfile sends a partial update; the server's returned representation
// replaces the cache (no client-side merge).
func (s *CabinetStore) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.UserProfile, error) {
	var p models.UserProfile
	if err := s.api.Patch(ctx, profilePath, upd, &p); err != nil {
		s.log.Error(ctx, "update profile failed", "err", err)
		return nil, err
	}
	s.setProfile(&p)
	return &p, nil
}

// SetSubscription caches the subscription snapshot shown in the cabinet.
func (s *CabinetStore) SetSubscription(sub *models.Subscription) {
	s.mu.Lock()
	s.subscription = sub
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Clear drops the cached snapshot, e.g. on logout.
func (s *CabinetStore) Clear() error {
	s.mu.Lock()
	s.profile = nil
	s.subscription = nil
	s.mu.Unlock()
	s.notify()
	return s.ls.Delete(localstore.KeyCabinet)
}

func (s *CabinetStore) Profile() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *CabinetStore) Subscription() *models.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscription
}

func (s *CabinetStore) setProfile(p *models.UserProfile) {
	s.mu.Lock()
	s.profile = p
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

func (s *CabinetStore) persistLocked() {
	snap := cabinetSnapshot{Profile: s.profile, Subscription: s.subscription}
	raw, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := s.ls.Set(localstore.KeyCabinet, string(raw)); err != nil {
		s.log.Warn(context.Background(), "persist cabinet snapshot failed", "err", err)
	}
}
