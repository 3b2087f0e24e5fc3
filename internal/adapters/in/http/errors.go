package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// statusFor maps a failed operation to an HTTP status. Data integrity failures are
// the caller's data, not the service's health, and get 422.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrDriverNotFound),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
