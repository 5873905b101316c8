// Package shared holds response helpers common to the entity handlers.
package shared

import (
	"errors"
	"net/http"

	"epms/internal/domain/payroll"
	"epms/internal/transport/http/api"
)

// WriteDomainError translates service-layer failures into the JSON
// envelope. Validation and consistency failures carry the per-field
// issue list so the client can redisplay them; everything else is an
// opaque database error.
func WriteDomainError(w http.ResponseWriter, requestID string, err error) {
	if errors.Is(err, payroll.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "resource not found", requestID)
		return
	}
	if fieldErrs, ok := payroll.AsFieldErrors(err); ok {
		api.FailWithDetails(
			w,
			statusForFieldErrors(fieldErrs),
			"validation_error",
			"payload validation failed",
			map[string]any{"fields": fieldErrs},
			requestID,
		)
		return
	}
	api.Fail(w, http.StatusInternalServerError, "database_error", "database error", requestID)
}

func statusForFieldErrors(errs payroll.FieldErrors) int {
	if errs.Has(payroll.KindDuplicateKey) {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

// DecodeError writes the standard response for an unreadable JSON body.
func DecodeError(w http.ResponseWriter, requestID string) {
	api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", requestID)
}
