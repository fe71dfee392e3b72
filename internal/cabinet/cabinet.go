// Package cabinet is the composition root for the client-side state layer:
// one local storage handle, one API client, and the stores the UI observes,
// wired together explicitly instead of living as ambient singletons.
package cabinet

import (
	"net/http"

	"github.com/korobox/webtier/internal/apiclient"
	"github.com/korobox/webtier/internal/localstore"
	"github.com/korobox/webtier/internal/logging"
	"github.com/korobox/webtier/internal/store"
)

type Options struct {
	// LocalDSN opens the durable local storage (sqlite file by default).
	LocalDSN string
	// ProxyOrigin and BackendURL feed base-URL resolution; SameOrigin selects
	// between routing through the edge proxy and calling the backend directly.
	ProxyOrigin string
	BackendURL  string
	SameOrigin  bool
	// CurrentPath and Redirect implement the admin-section auth guard.
	CurrentPath func() string
	Redirect    func(path string)
	// SystemTheme and ApplyTheme bridge the host UI's color-scheme probe and
	// dark-mode flag.
	SystemTheme func() store.Theme
	ApplyTheme  func(store.Theme)

	HTTPClient *http.Client
	Logger     logging.Logger
}

// App bundles the wired state layer.
type App struct {
	Local   *localstore.Store
	API     *apiclient.Client
	Toasts  *store.ToastStore
	Theme   *store.ThemeStore
	Session *store.SessionStore
	Cabinet *store.CabinetStore
}

func New(opts Options) (*App, error) {
	ls, err := localstore.Open(opts.LocalDSN)
	if err != nil {
		return nil, err
	}
	session, err := store.NewSessionStore(ls)
	if err != nil {
		return nil, err
	}
	api := apiclient.New(apiclient.Options{
		BaseURL: func() string {
			return apiclient.ResolveBaseURL(opts.ProxyOrigin, opts.BackendURL, opts.SameOrigin)
		},
		Tokens:      session.Token,
		CurrentPath: opts.CurrentPath,
		OnRedirect:  opts.Redirect,
		HTTPClient:  opts.HTTPClient,
		Logger:      opts.Logger,
	})
	theme, err := store.NewThemeStore(ls, opts.SystemTheme, opts.ApplyTheme)
	if err != nil {
		return nil, err
	}
	cab, err := store.NewCabinetStore(ls, api, opts.Logger)
	if err != nil {
		return nil, err
	}
	return &App{
		Local:   ls,
		API:     api,
		Toasts:  store.NewToastStore(),
		Theme:   theme,
		Session: session,
		Cabinet: cab,
	}, nil
}

// Logout clears the session and the cached cabinet snapshot.
func (a *App) Logout() error {
	if err := a.Session.Logout(); err != nil {
		return err
	}
	return a.Cabinet.Clear()
}
