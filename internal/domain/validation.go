package domain

import (
	"fmt"
	"strings"
)

// DefaultCategories is the category set used when none is configured.
var DefaultCategories = []string{
	"Food",
	"Housing",
	"Transport",
	"Health",
	"Leisure",
	"Education",
	"Other",
}

// DefaultMaxInstallments bounds the installment count of a plan.
const DefaultMaxInstallments = 12

// Rules holds the configurable validation set: the accepted category list and
// the maximum installment count.
type Rules struct {
	Categories      []string
	MaxInstallments int
}

// NewRules builds a rule set, falling back to defaults for empty values.
func NewRules(categories []string, maxInstallments int) Rules {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	if maxInstallments < 1 {
		maxInstallments = DefaultMaxInstallments
	}

	return Rules{Categories: categories, MaxInstallments: maxInstallments}
}

// ValidateExpense checks a single installment record against the rule set.
func (r Rules) ValidateExpense(e Expense) error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if e.Amount.Exponent() < -2 {
		return fmt.Errorf("%w: got %s", ErrAmountScale, e.Amount)
	}
	if e.InstallmentTotal > r.MaxInstallments {
		return fmt.Errorf("%w: %d > %d", ErrTooManyInstallments, e.InstallmentTotal, r.MaxInstallments)
	}
	if e.Installment < 1 || e.Installment > e.InstallmentTotal {
		return fmt.Errorf("%w: index %d of %d", ErrInstallmentOutOfRange, e.Installment, e.InstallmentTotal)
	}
	if err := r.ValidateCategory(e.Category); err != nil {
		return err
	}
	if err := ValidatePaymentType(e.PaymentType); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return ErrMissingDate
	}

	return nil
}

// ValidatePlan checks an installment plan before expansion.
func (r Rules) ValidatePlan(p InstallmentPlan) error {
	if p.Installments < 1 || p.Installments > r.MaxInstallments {
		return fmt.Errorf("%w: %d (allowed 1..%d)", ErrTooManyInstallments, p.Installments, r.MaxInstallments)
	}

	probe := Expense{
		Name:             p.Name,
		Amount:           p.Amount,
		Installment:      1,
		InstallmentTotal: p.Installments,
		Category:         p.Category,
		PaymentType:      p.PaymentType,
		Date:             p.StartDate,
	}

	return r.ValidateExpense(probe)
}

// ValidateCategory checks membership in the configured category set.
func (r Rules) ValidateCategory(category string) error {
	for _, c := range r.Categories {
		if c == category {
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
}

// ValidatePaymentType checks membership in the fixed payment type set.
func ValidatePaymentType(pt PaymentType) error {
	for _, known := range PaymentTypes() {
		if pt == known {
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownPaymentType, pt)
}
