package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error payload every route emits on failure.
// Message is human readable; Error carries the stringified cause when one exists.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"message":"encode error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

func JSONError(w http.ResponseWriter, status int, msg string, cause error) {
	resp := ErrorResponse{Message: msg}
	if cause != nil {
		resp.Error = cause.Error()
	}
	JSON(w, status, resp)
}

// Relay writes a backend response verbatim: status code and raw body,
// with the given content type (application/json when empty).
func Relay(w http.ResponseWriter, status int, contentType string, body []byte) {
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		_ = err
	}
}
