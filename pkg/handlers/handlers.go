// Package handlers provides HTTP response utilities for JSON APIs.
// These stateless functions standardize response formatting across handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/paginalab/pkg/validation"
)

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	Message string            `json:"message"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MessageResponse is the JSON body for operations that only report an outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondMessage writes {"message": msg}.
func RespondMessage(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, MessageResponse{Message: msg})
}

// RespondError logs err and writes a JSON error response.
// Client errors (4xx) use the error text as the message; validation errors
// also carry per-field messages. Server errors (5xx) use msg as the message and
// expose the underlying error text under "error".
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, msg string, err error) {
	body := ErrorResponse{Message: err.Error()}

	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "error", err, "status", status)
		body.Message = msg
		body.Error = err.Error()
	} else {
		logger.Warn("request rejected", "error", err, "status", status)
		var verr *validation.Error
		if errors.As(err, &verr) {
			body.Fields = verr.Fields
		}
	}

	RespondJSON(w, status, body)
}
