package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/globalpocket/backend/internal/auth"
	"github.com/globalpocket/backend/internal/service"
	"github.com/globalpocket/backend/internal/storage"
)

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// respondError maps a domain error to an HTTP status and writes it.
// Errors are logged but never fatal: the server stays up after any of them.
func respondError(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status >= 500 {
		slog.Error("Request error", "error", err)
		// Do not leak internals on 5xx.
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

// errorStatus classifies an error by the taxonomy: validation (400),
// authentication (401), conflict/referential-integrity (409), not-found (404),
// everything else store/transport (500).
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidType),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrSymbolRequired),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrEmailExists),
		errors.Is(err, storage.ErrAccountHasDebts):
		return http.StatusConflict
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON parses the request body into v. Malformed bodies, including
// non-numeric money amounts, fail here before any handler logic runs.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}
