package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/korobox/webtier/internal/config"
	"github.com/korobox/webtier/internal/httpx"
	"github.com/korobox/webtier/internal/logging"
	"github.com/korobox/webtier/internal/proxy"
)

// New constructs the root http.Handler with all proxy routes and middlewares
// applied.
func New(cfg config.Config, log logging.Logger) http.Handler {
	if log == nil {
		log = logging.NewDefault()
	}
	p := proxy.New(cfg.BackendURL, log)
	r := chi.NewRouter()

	// --- Health endpoints ---
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	probe := &http.Client{Timeout: 2 * time.Second}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		// Lightweight backend reachability check; any response counts.
		resp, err := probe.Get(cfg.BackendURL + "/health")
		if err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		resp.Body.Close()
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Admin dashboard routes. Fixed resources first; the wildcard pair relays
	// everything else under /api/admin verbatim.
	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/counterparties", p.CounterpartiesList)
		r.Post("/counterparties", p.CounterpartiesCreate)
		r.Delete("/counterparties/{id}", p.CounterpartyDelete)
		r.Get("/requests", p.RequestsList)
		r.Patch("/requests/{id}", p.RequestUpdateStatus)
		r.Delete("/requests/{id}", p.RequestDelete)
		r.Get("/*", p.Admin)
		r.Patch("/*", p.Admin)
	})

	// Auth flow with Set-Cookie rewriting.
	r.Post("/api/auth/*", p.Auth)

	return withRecover(withLogging(r, log))
}

func withLogging(next http.Handler, log logging.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info(r.Context(), "request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
