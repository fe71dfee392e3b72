// Package proxy implements the edge routes: per-resource handlers that
// forward browser requests (cookies and Origin included) to the backend API
// and relay the response, rewriting Set-Cookie attributes on the auth flow.
package proxy

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/korobox/webtier/internal/httpx"
	"github.com/korobox/webtier/internal/logging"
)

// Handler forwards to one backend base URL. Invocations are independent and
// stateless; no state is shared between concurrent requests.
type Handler struct {
	backend string
	client  *http.Client
	log     logging.Logger
}

func New(backend string, log logging.Logger) *Handler {
	if log == nil {
		log = logging.NewDefault()
	}
	return &Handler{
		backend: backend,
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

type forwardOptions struct {
	withBody     bool // parse and re-serialize the JSON request body
	relayCookies bool // translate backend Set-Cookie headers
	authErrors   bool // relay backend errors as {message} instead of raw body
}

// forward performs one proxy call. Any failure is answered with a well-formed
// 500 JSON payload; a panic never escapes past the router's recover
// middleware, and no error path leaves the response unwritten.
func (h *Handler) forward(w http.ResponseWriter, r *http.Request, target string, opts forwardOptions) {
	var bodyReader io.Reader
	if opts.withBody {
		var payload any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
			httpx.JSONError(w, http.StatusInternalServerError, "proxy request failed", err)
			return
		}
		if payload != nil {
			raw, err := json.Marshal(payload)
			if err != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "proxy request failed", err)
				return
			}
			bodyReader = bytes.NewReader(raw)
		}
	}

	url := h.backend + target
	if q := r.URL.RawQuery; q != "" {
		url += "?" + q
	}
	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, bodyReader)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "proxy request failed", err)
		return
	}
	if c := r.Header.Get("Cookie"); c != "" {
		req.Header.Set("Cookie", c)
	}
	if o := r.Header.Get("Origin"); o != "" {
		req.Header.Set("Origin", o)
	}
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		h.log.Error(r.Context(), "backend request failed", "method", r.Method, "target", target, "err", err)
		httpx.JSONError(w, http.StatusInternalServerError, "proxy request failed", err)
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "proxy response read failed", err)
		return
	}

	if opts.relayCookies {
		relayCookies(w, resp, time.Now())
	}
	if opts.authErrors && resp.StatusCode >= 400 {
		httpx.JSON(w, resp.StatusCode, httpx.ErrorResponse{Message: backendErrorMessage(data)})
		return
	}
	httpx.Relay(w, resp.StatusCode, resp.Header.Get("Content-Type"), data)
}

// backendErrorMessage extracts the backend's message field, falling back to
// the raw body when it is not JSON.
func backendErrorMessage(data []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return string(data)
}

// Admin relays GET/PATCH /api/admin/{...route} verbatim to the backend.
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	route := chi.URLParam(r, "*")
	h.forward(w, r, "/api/admin/"+route, forwardOptions{withBody: r.Method == http.MethodPatch})
}

func (h *Handler) CounterpartiesList(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, "/api/admin/counterparties", forwardOptions{})
}

func (h *Handler) CounterpartiesCreate(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, "/api/admin/counterparties", forwardOptions{withBody: true})
}

// CounterpartyDelete targets the versioned backend path.
func (h *Handler) CounterpartyDelete(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, "/api/v1/admin/counterparties/"+chi.URLParam(r, "id"), forwardOptions{})
}

// RequestsList targets the versioned backend path.
func (h *Handler) RequestsList(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, "/api/v1/admin/requests", forwardOptions{})
}

// RequestUpdateStatus maps PATCH /api/admin/requests/{id} onto the backend's
// /status sub-resource.
func (h *Handler) RequestUpdateStatus(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, "/api/admin/requests/"+chi.URLParam(r, "id")+"/status", forwardOptions{withBody: true})
}

func (h *Handler) RequestDelete(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, "/api/admin/requests/"+chi.URLParam(r, "id"), forwardOptions{})
}

// Auth relays POST /api/auth/{...route} with cookie rewriting. The logout
// sub-route carries no JSON body and none is forwarded.
func (h *Handler) Auth(w http.ResponseWriter, r *http.Request) {
	route := chi.URLParam(r, "*")
	h.forward(w, r, "/api/auth/"+route, forwardOptions{
		withBody:     route != "logout",
		relayCookies: true,
		authErrors:   true,
	})
}
