// Package apiclient is the configured HTTP client the UI layer talks to the
// backend with: bearer injection on the way out, one normalized error shape
// on the way back.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/korobox/webtier/internal/logging"
)

// APIError is the single normalized failure shape. Status 0 means the request
// never produced a response (network failure).
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// TokenSource yields the locally stored bearer token, if any.
type TokenSource func() (string, bool)

type Options struct {
	// BaseURL resolves the request target per call: same-origin proxy in one
	// deployment mode, the backend directly in the other.
	BaseURL func() string
	// Tokens supplies the stored bearer token; nil disables injection.
	Tokens TokenSource
	// CurrentPath reports the path the UI is currently on; 401/403 responses
	// trigger OnRedirect only when it is under /admin.
	CurrentPath func() string
	// OnRedirect is invoked with the target path on an admin-section auth
	// failure (session invalidation UX).
	OnRedirect func(path string)

	HTTPClient *http.Client
	Logger     logging.Logger
}

type Client struct {
	http       *http.Client
	baseURL    func() string
	tokens     TokenSource
	path       func() string
	onRedirect func(string)
	log        logging.Logger
}

func New(opts Options) *Client {
	c := &Client{
		http:       opts.HTTPClient,
		baseURL:    opts.BaseURL,
		tokens:     opts.Tokens,
		path:       opts.CurrentPath,
		onRedirect: opts.OnRedirect,
		log:        opts.Logger,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if c.baseURL == nil {
		c.baseURL = func() string { return "" }
	}
	if c.log == nil {
		c.log = logging.NewDefault()
	}
	return c
}

// ResolveBaseURL mirrors the deployment split: when the UI is served by the
// gateway itself, requests stay same-origin and flow through the proxy routes;
// otherwise they target the backend directly.
func ResolveBaseURL(proxyOrigin, backendURL string, sameOrigin bool) string {
	if sameOrigin {
		return proxyOrigin
	}
	return backendURL
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, nil)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out, nil)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, body, out, nil)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Do performs one call. Extra headers override the defaults; an explicit
// Authorization header suppresses bearer injection. Every failure is returned
// as *APIError; callers must not re-interpret raw transport errors.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, header http.Header) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return &APIError{Status: 0, Message: "request encode failed"}
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL()+path, &buf)
	if err != nil {
		return &APIError{Status: 0, Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		req.Header[k] = vs
	}
	if req.Header.Get("Authorization") == "" && c.tokens != nil {
		if tok, ok := c.tokens(); ok && tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Status: 0, Message: "Network error"}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.normalize(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &APIError{Status: resp.StatusCode, Message: "response decode failed"}
		}
	}
	return nil
}

// normalize extracts the backend's message/errors and fires the admin-section
// redirect on 401/403.
func (c *Client) normalize(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var parsed struct {
		Message string `json:"message"`
		Errors  any    `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err == nil {
		if parsed.Message != "" {
			apiErr.Message = parsed.Message
		}
		apiErr.Errors = parsed.Errors
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if c.path != nil && strings.HasPrefix(c.path(), "/admin") && c.onRedirect != nil {
			c.onRedirect("/")
		}
	}
	return apiErr
}
