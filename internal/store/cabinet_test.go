package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korobox/webtier/internal/apiclient"
	"github.com/korobox/webtier/internal/models"
)

func newCabinetFixture(t *testing.T, handler http.Handler) (*CabinetStore, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	ls := openTestLocalstore(t)
	api := apiclient.New(apiclient.Options{BaseURL: func() string { return srv.URL }})
	s, err := NewCabinetStore(ls, api, nil)
	require.NoError(t, err)
	return s, srv
}

func TestFetchProfileReplacesCache(t *testing.T) {
	s, _ := newCabinetFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"u1","email":"a@b","name":"Аня","role":"user","emailVerified":true}`)) //nolint:errcheck
	}))
	p, err := s.FetchProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Аня", p.Name)
	require.NotNil(t, s.Profile())
	assert.Equal(t, "u1", s.Profile().ID)
}

func TestFetchProfileFailureKeepsCache(t *testing.T) {
	var fail atomic.Bool
	s, _ := newCabinetFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"boom"}`)) //nolint:errcheck
			return
		}
		w.Write([]byte(`{"id":"u1","email":"a@b","name":"Аня","role":"user"}`)) //nolint:errcheck
	}))
	_, err := s.FetchProfile(context.Background())
	require.NoError(t, err)

	fail.Store(true)
	_, err = s.FetchProfile(context.Background())
	require.Error(t, err)
	require.NotNil(t, s.Profile())
	assert.Equal(t, "Аня", s.Profile().Name)
}

func TestUpdateProfileServerIsAuthoritative(t *testing.T) {
	s, _ := newCabinetFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			// server returns a representation that differs from the sent patch
			w.Write([]byte(`{"id":"u1","email":"a@b","name":"Анна","role":"user","phone":"+70000000000"}`)) //nolint:errcheck
			return
		}
		w.Write([]byte(`{"id":"u1","email":"a@b","name":"Аня","role":"user"}`)) //nolint:errcheck
	}))
	_, err := s.FetchProfile(context.Background())
	require.NoError(t, err)

	name := "Анёна"
	p, err := s.UpdateProfile(context.Background(), models.ProfileUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Анна", p.Name)
	assert.Equal(t, "+70000000000", s.Profile().Phone)
}

func TestUpdateProfileFailureKeepsCache(t *testing.T) {
	s, _ := newCabinetFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"message":"invalid phone"}`)) //nolint:errcheck
			return
		}
		w.Write([]byte(`{"id":"u1","email":"a@b","name":"Аня","role":"user"}`)) //nolint:errcheck
	}))
	_, err := s.FetchProfile(context.Background())
	require.NoError(t, err)

	phone := "not-a-phone"
	_, err = s.UpdateProfile(context.Background(), models.ProfileUpdate{Phone: &phone})
	require.Error(t, err)
	assert.Equal(t, "Аня", s.Profile().Name)
	assert.Empty(t, s.Profile().Phone)
}

func TestCabinetSnapshotSurvivesReload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"u1","email":"a@b","name":"Аня","role":"user"}`)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	ls := openTestLocalstore(t)
	api := apiclient.New(apiclient.Options{BaseURL: func() string { return srv.URL }})

	s, err := NewCabinetStore(ls, api, nil)
	require.NoError(t, err)
	_, err = s.FetchProfile(context.Background())
	require.NoError(t, err)
	s.SetSubscription(&models.Subscription{ID: "sub1", TariffID: "t1", Status: "active"})

	reloaded, err := NewCabinetStore(ls, api, nil)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Profile())
	assert.Equal(t, "Аня", reloaded.Profile().Name)
	require.NotNil(t, reloaded.Subscription())
	assert.Equal(t, "active", reloaded.Subscription().Status)
}

func TestCabinetClearDropsSnapshot(t *testing.T) {
	s, _ := newCabinetFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"u1","email":"a@b","name":"Аня","role":"user"}`)) //nolint:errcheck
	}))
	_, err := s.FetchProfile(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Clear())
	assert.Nil(t, s.Profile())
	assert.Nil(t, s.Subscription())
}
