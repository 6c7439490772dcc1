package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"gastos/internal/adapter/http/dto"
	"gastos/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes. Validation
// failures are the caller's fault; persistence failures are ours.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrAmountScale),
		errors.Is(err, domain.ErrInstallmentOutOfRange),
		errors.Is(err, domain.ErrTooManyInstallments),
		errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrUnknownPaymentType),
		errors.Is(err, domain.ErrMissingDate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
