// Package handler contains the HTTP layer of the reference server. Handlers
// decode requests, call the service layer and encode the envelope the client
// expects: every body carries "success", and failures carry "error".
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"descgen/internal/apperror"
)

// errorResponse is the failure envelope. Every error body has this shape so
// the client can surface the text without caring which endpoint failed.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeJSON sends a JSON response with the given status code. Headers and
// status must be written before the body; Encode writes the body.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status and sends the failure
// envelope. The error text is passed through as-is: the client reports it
// verbatim, so generation-backend failures reach the user unmangled.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperror.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		status = http.StatusConflict
	}

	message := err.Error()
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	writeJSON(w, status, errorResponse{Success: false, Error: message})
}

// decodeJSON reads a request body into dst, rejecting non-JSON input.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.ValidationFailed("", "invalid JSON body")
	}
	return nil
}
