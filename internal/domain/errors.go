package domain

import "errors"

var (
	// Validation errors
	ErrEmptyName             = errors.New("expense name cannot be empty")
	ErrNegativeAmount        = errors.New("amount cannot be negative")
	ErrAmountScale           = errors.New("amount must have at most two decimal places")
	ErrInstallmentOutOfRange = errors.New("installment index out of range")
	ErrTooManyInstallments   = errors.New("installment count exceeds configured maximum")
	ErrUnknownCategory       = errors.New("unknown expense category")
	ErrUnknownPaymentType    = errors.New("unknown payment type")
	ErrMissingDate           = errors.New("expense date is required")

	// Persistence errors
	ErrConstraintViolated = errors.New("expense violates storage constraints")
	ErrStoreUnavailable   = errors.New("expense store unavailable")
)
