package httpapi

import (
	"errors"
	"net/http"

	"github.com/dcastelone/ep-media-upload/internal/access"
	"github.com/dcastelone/ep-media-upload/internal/broker"
	"github.com/dcastelone/ep-media-upload/internal/signer"
)

// Error categories returned to callers. Short, human-readable, and free of
// internal detail.
const (
	categoryInvalidInput    = "invalid_input"
	categoryUnauthenticated = "unauthenticated"
	categoryAccessDenied    = "access_denied"
	categoryNotFound        = "not_found"
	categoryRateLimited     = "rate_limited"
	categoryUnavailable     = "unavailable"
)

// mapError translates pipeline sentinel errors to an HTTP status and a
// caller-visible category. Unknown errors collapse to a generic 500; the
// detail belongs in the logs, not the response.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, broker.ErrInvalidInput):
		return http.StatusBadRequest, categoryInvalidInput
	case errors.Is(err, access.ErrUnauthenticated):
		return http.StatusUnauthorized, categoryUnauthenticated
	case errors.Is(err, access.ErrDenied):
		return http.StatusForbidden, categoryAccessDenied
	case errors.Is(err, signer.ErrNotFound):
		return http.StatusNotFound, categoryNotFound
	case errors.Is(err, broker.ErrRateLimited):
		return http.StatusTooManyRequests, categoryRateLimited
	case errors.Is(err, access.ErrUnavailable), errors.Is(err, broker.ErrMisconfigured):
		return http.StatusInternalServerError, categoryUnavailable
	default:
		return http.StatusInternalServerError, categoryUnavailable
	}
}
