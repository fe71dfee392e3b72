package proxy

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ForwardedCookie is a Set-Cookie header parsed into its attributes, before
// any delete-vs-set decision is made.
type ForwardedCookie struct {
	Name     string
	Value    string
	HttpOnly bool
	Secure   bool
	SameSite http.SameSite // zero when the attribute is absent or unrecognized
	MaxAge   *int          // nil when absent
	Path     string
	Expires  time.Time // zero when absent or unparseable
}

// ParseSetCookie parses a raw Set-Cookie header value. Unknown attributes are
// ignored; a missing or empty cookie name is an error.
func ParseSetCookie(header string) (ForwardedCookie, bool) {
	var c ForwardedCookie
	parts := strings.Split(header, ";")
	name, value, found := strings.Cut(strings.TrimSpace(parts[0]), "=")
	if !found || strings.TrimSpace(name) == "" {
		return c, false
	}
	c.Name = strings.TrimSpace(name)
	c.Value = strings.Trim(strings.TrimSpace(value), `"`)
	for _, part := range parts[1:] {
		attr, val, _ := strings.Cut(strings.TrimSpace(part), "=")
		val = strings.TrimSpace(val)
		switch strings.ToLower(strings.TrimSpace(attr)) {
		case "httponly":
			c.HttpOnly = true
		case "secure":
			c.Secure = true
		case "samesite":
			switch strings.ToLower(val) {
			case "lax":
				c.SameSite = http.SameSiteLaxMode
			case "strict":
				c.SameSite = http.SameSiteStrictMode
			case "none":
				c.SameSite = http.SameSiteNoneMode
			}
		case "max-age":
			if n, err := strconv.Atoi(val); err == nil {
				c.MaxAge = &n
			}
		case "path":
			c.Path = val
		case "expires":
			if t, err := http.ParseTime(val); err == nil {
				c.Expires = t
			}
		}
	}
	return c, true
}

// ShouldDelete decides the relay policy: a blank value, a non-positive
// Max-Age, or a past Expires all mean the backend wants the cookie gone.
func (c ForwardedCookie) ShouldDelete(now time.Time) bool {
	if strings.TrimSpace(c.Value) == "" {
		return true
	}
	if c.MaxAge != nil && *c.MaxAge <= 0 {
		return true
	}
	if !c.Expires.IsZero() && c.Expires.Before(now) {
		return true
	}
	return false
}

// Apply re-sets or deletes the cookie on the outgoing response according to
// the relay policy.
func (c ForwardedCookie) Apply(w http.ResponseWriter, now time.Time) {
	path := c.Path
	if path == "" {
		path = "/"
	}
	if c.ShouldDelete(now) {
		http.SetCookie(w, &http.Cookie{
			Name:     c.Name,
			Value:    "",
			Path:     path,
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: c.HttpOnly,
			Secure:   c.Secure,
			SameSite: c.SameSite,
		})
		return
	}
	out := &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     path,
		HttpOnly: c.HttpOnly,
		Secure:   c.Secure,
		SameSite: c.SameSite,
		Expires:  c.Expires,
	}
	if c.MaxAge != nil {
		out.MaxAge = *c.MaxAge
	}
	http.SetCookie(w, out)
}

// relayCookies translates every backend Set-Cookie header onto the outgoing
// response. Headers that fail to parse are skipped.
func relayCookies(w http.ResponseWriter, resp *http.Response, now time.Time) {
	for _, raw := range resp.Header.Values("Set-Cookie") {
		if c, ok := ParseSetCookie(raw); ok {
			c.Apply(w, now)
		}
	}
}
