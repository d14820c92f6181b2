package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"simpleevents/internal/delivery/http/helpers"
	"simpleevents/internal/domain"
)

// writeServiceError maps a service error to the response envelope. Rejected
// values are 400, unknown ids 404; anything else is logged and returned as 500.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var invalid *domain.InvalidValueError
	switch {
	case errors.As(err, &invalid):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, invalid.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
