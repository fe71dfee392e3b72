package proxy

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseSetCookieAttributes(t *testing.T) {
	c, ok := ParseSetCookie("sid=abc; HttpOnly; Max-Age=3600; Path=/; SameSite=Lax; Secure")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if c.Name != "sid" || c.Value != "abc" {
		t.Fatalf("name/value: %q=%q", c.Name, c.Value)
	}
	if !c.HttpOnly || !c.Secure {
		t.Fatalf("flags: httpOnly=%v secure=%v", c.HttpOnly, c.Secure)
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Fatalf("samesite: %v", c.SameSite)
	}
	if c.MaxAge == nil || *c.MaxAge != 3600 {
		t.Fatalf("max-age: %v", c.MaxAge)
	}
	if c.Path != "/" {
		t.Fatalf("path: %q", c.Path)
	}
}

func TestParseSetCookieExpires(t *testing.T) {
	c, ok := ParseSetCookie("sid=abc; Expires=Wed, 21 Oct 2015 07:28:00 GMT")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	want := time.Date(2015, 10, 21, 7, 28, 0, 0, time.UTC)
	if !c.Expires.Equal(want) {
		t.Fatalf("expires: %v", c.Expires)
	}
}

func TestParseSetCookieRejectsEmptyName(t *testing.T) {
	if _, ok := ParseSetCookie("=abc"); ok {
		t.Fatal("empty name must not parse")
	}
	if _, ok := ParseSetCookie("garbage"); ok {
		t.Fatal("header without = must not parse")
	}
}

func TestParseSetCookieIgnoresUnknownSameSite(t *testing.T) {
	c, ok := ParseSetCookie("sid=abc; SameSite=weird")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if c.SameSite != 0 {
		t.Fatalf("unknown samesite must stay unset, got %v", c.SameSite)
	}
}

func TestShouldDelete(t *testing.T) {
	now := time.Now()
	zero := 0
	positive := 3600
	cases := []struct {
		name string
		c    ForwardedCookie
		want bool
	}{
		{"blank value", ForwardedCookie{Name: "sid", Value: ""}, true},
		{"whitespace value", ForwardedCookie{Name: "sid", Value: "  "}, true},
		{"max-age zero", ForwardedCookie{Name: "sid", Value: "abc", MaxAge: &zero}, true},
		{"past expires", ForwardedCookie{Name: "sid", Value: "abc", Expires: now.Add(-time.Hour)}, true},
		{"live cookie", ForwardedCookie{Name: "sid", Value: "abc", MaxAge: &positive}, false},
		{"future expires", ForwardedCookie{Name: "sid", Value: "abc", Expires: now.Add(time.Hour)}, false},
	}
	for _, tc := range cases {
		if got := tc.c.ShouldDelete(now); got != tc.want {
			t.Errorf("%s: want %v got %v", tc.name, tc.want, got)
		}
	}
}

func TestApplySetsCookie(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := ParseSetCookie("sid=abc; HttpOnly; Max-Age=3600; Path=/")
	c.Apply(w, time.Now())
	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	out := cookies[0]
	if out.Name != "sid" || out.Value != "abc" || !out.HttpOnly || out.MaxAge != 3600 || out.Path != "/" {
		t.Fatalf("unexpected cookie: %+v", out)
	}
}

func TestApplyDeletesExpiredCookie(t *testing.T) {
	for _, header := range []string{
		"sid=; Max-Age=0",
		"sid=abc; Max-Age=0",
		"sid=abc; Expires=Wed, 21 Oct 2015 07:28:00 GMT; HttpOnly",
	} {
		w := httptest.NewRecorder()
		c, ok := ParseSetCookie(header)
		if !ok {
			t.Fatalf("parse %q failed", header)
		}
		c.Apply(w, time.Now())
		cookies := w.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("%q: expected one cookie, got %d", header, len(cookies))
		}
		out := cookies[0]
		if out.Value != "" || out.MaxAge != -1 {
			t.Fatalf("%q: expected deletion cookie, got %+v", header, out)
		}
		if !out.Expires.IsZero() && out.Expires.After(time.Now()) {
			t.Fatalf("%q: deletion cookie expires in the future: %v", header, out.Expires)
		}
	}
}
