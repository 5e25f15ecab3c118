package handler

// RESPONSE HELPERS:
// Every handler answers through writeJSON, writeNoContent or writeError, so
// success bodies are always JSON and every failure has the same shape:
//
//	{"error": true, "reason": "username taken"}
//
// The client shows "reason" to the user, so it must be human-readable.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/realspace/realspace/internal/apperror"
	"github.com/realspace/realspace/internal/auth"
	"github.com/realspace/realspace/internal/dto"
	"github.com/realspace/realspace/internal/repository"
)

// maxBodyBytes caps request bodies. Nothing in the API is close to it.
const maxBodyBytes = 1 << 20

// writeJSON sends data with the given status. Headers must be set before
// WriteHeader; anything after the first Write is ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeNoContent answers a successful DELETE. Clients require exactly 204.
func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps a domain error to a status code.
//
// ERROR MAPPING:
//
//	apperror.ErrValidation    -> 400
//	apperror.ErrUnauthorized  -> 401
//	apperror.ErrForbidden     -> 403
//	apperror.ErrNotFound      -> 404
//	apperror.ErrConflict      -> 409
//	apperror.ErrUnprocessable -> 422 ("username taken")
//	anything else             -> 500, details logged and never sent
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, statusOf(err), dto.APIError{Error: true, Reason: appErr.Message})
		return
	}

	slog.Error("unhandled error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, dto.APIError{
		Error:  true,
		Reason: "Internal server error",
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperror.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrUnprocessable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads the request body into dst. Unknown fields are ignored so
// older servers accept newer clients.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.ValidationFailed("body", "invalid JSON body")
	}
	return nil
}

// listOptions reads ?limit= and ?offset=. Missing or malformed values fall
// back to the store defaults.
func listOptions(r *http.Request) repository.ListOptions {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	return repository.ListOptions{Limit: limit, Offset: offset}
}

// viewer is the caller's user ID, or "" when anonymous.
func viewer(r *http.Request) string {
	id, _ := auth.UserIDFromContext(r.Context())
	return id
}
