package handler

import (
	"errors"
	"net/http"

	"assettrack/internal/tracker/model"
	"assettrack/internal/tracker/service"
)

// Helper to map service errors to HTTP status and body. The error message
// is surfaced as-is so the caller can see which invariant was violated.
func httpError(err error) (int, interface{}) {
	var status int
	var code string

	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
		code = "bad_request"
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
		code = "unauthorized"
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
		code = "forbidden"
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
		code = "conflict"
	case errors.Is(err, service.ErrSystemConfig):
		status = http.StatusInternalServerError
		code = "system_configuration"
	default:
		status = http.StatusInternalServerError
		code = "internal_error"
	}

	return status, model.ErrorResponse{
		Error: model.ErrorDetail{Code: code, Message: err.Error()},
	}
}
