// Package rest exposes the file search services over a JSON HTTP API for the
// browser front end.
package rest

import (
	"errors"
	"net/http"

	"github.com/custodia-labs/filesearch/internal/core/domain"
	"github.com/custodia-labs/filesearch/internal/logger"
)

// Errors returned when required ports are missing.
var (
	ErrMissingStoreService    = errors.New("rest: store service is required")
	ErrMissingDocumentService = errors.New("rest: document service is required")
	ErrMissingMediaService    = errors.New("rest: media service is required")
	ErrMissingSearchService   = errors.New("rest: search service is required")
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Detail string `json:"detail"`
}

// statusFor maps a service error to the HTTP status the caller sees.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrExtensionNotAllowed):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case domain.IsRateLimited(err):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as a {"detail": ...} body with the mapped status.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeJSON(w, status, errorBody{Detail: err.Error()})
}
