package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/tasktrack-api/internal/api/shared"
	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/service"
	"github.com/phrazzld/tasktrack-api/internal/service/auth"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients. Note that ownership violations surface as NotFound,
// never Forbidden, so callers cannot probe for foreign task IDs.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors (including foreign-owned entities)
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Duplicate errors
	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Validation errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidTaskStatus),
		errors.Is(err, domain.ErrTaskTitleEmpty),
		errors.Is(err, service.ErrInvalidPagination),
		errors.Is(err, service.ErrInvalidStatusFilter),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for the given error.
// Internal details never cross the API boundary; they are logged instead.
func GetSafeErrorMessage(err error) string {
	switch {
	case store.IsNotFoundError(err):
		return "Not found"
	case store.IsDuplicateError(err):
		return "Already exists"
	case MapErrorToStatusCode(err) == http.StatusBadRequest:
		return err.Error()
	case MapErrorToStatusCode(err) == http.StatusUnauthorized:
		return "Unauthorized"
	default:
		return "Internal server error"
	}
}

// HandleAPIError writes an error response for err, using the override
// message when provided and the safe derived message otherwise.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
