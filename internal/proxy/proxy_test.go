package proxy

import "testing"

func TestBackendErrorMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"json message", `{"message":"email taken"}`, "email taken"},
		{"json without message", `{"error":"x"}`, `{"error":"x"}`},
		{"plain text", "upstream exploded", "upstream exploded"},
		{"empty body", "", ""},
	}
	for _, tc := range cases {
		if got := backendErrorMessage([]byte(tc.body)); got != tc.want {
			t.Errorf("%s: want %q got %q", tc.name, tc.want, got)
		}
	}
}
