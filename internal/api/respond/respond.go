// Package respond writes the JSON envelopes the API speaks: plain payloads
// on success and {"error": "..."} on failure.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

const contentType = "application/json"

type errorBody struct {
	Error string `json:"error"`
}

// JSON writes payload as the response body with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Error writes an error envelope with the given message. The message is the
// wire contract; err is only ever logged, never sent to the client.
func Error(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil && r != nil {
		logger := zerolog.Ctx(r.Context())
		event := logger.Warn()
		if status >= 500 {
			event = logger.Error()
		}
		event.
			Err(err).
			Int("status", status).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg(message)
	}

	JSON(w, status, errorBody{Error: message})
}

// Internal writes an opaque 500 for unexpected failures. In development and
// test the underlying error is surfaced to ease debugging.
func Internal(w http.ResponseWriter, r *http.Request, err error, env string) {
	message := "An unexpected error occurred"
	if (env == "development" || env == "test") && err != nil {
		message = err.Error()
	}
	Error(w, r, http.StatusInternalServerError, message, err)
}
