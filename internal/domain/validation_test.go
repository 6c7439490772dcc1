package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func validExpense() Expense {
	return Expense{
		Name:             "Groceries",
		Amount:           decimal.RequireFromString("54.30"),
		Installment:      1,
		InstallmentTotal: 3,
		Category:         "Food",
		PaymentType:      PaymentPIX,
		Date:             date(2024, time.May, 7),
	}
}

func TestRules_ValidateExpense(t *testing.T) {
	rules := NewRules(nil, 0)

	tests := []struct {
		name    string
		mutate  func(*Expense)
		wantErr error
	}{
		{
			name:   "valid expense",
			mutate: func(e *Expense) {},
		},
		{
			name:   "zero amount is allowed",
			mutate: func(e *Expense) { e.Amount = decimal.Zero },
		},
		{
			name:    "empty name",
			mutate:  func(e *Expense) { e.Name = "   " },
			wantErr: ErrEmptyName,
		},
		{
			name:    "negative amount",
			mutate:  func(e *Expense) { e.Amount = decimal.RequireFromString("-1.00") },
			wantErr: ErrNegativeAmount,
		},
		{
			name:    "amount with three decimal places",
			mutate:  func(e *Expense) { e.Amount = decimal.RequireFromString("10.999") },
			wantErr: ErrAmountScale,
		},
		{
			name:    "installment index zero",
			mutate:  func(e *Expense) { e.Installment = 0 },
			wantErr: ErrInstallmentOutOfRange,
		},
		{
			name:    "installment index above total",
			mutate:  func(e *Expense) { e.Installment = 4 },
			wantErr: ErrInstallmentOutOfRange,
		},
		{
			name:    "total above configured maximum",
			mutate:  func(e *Expense) { e.InstallmentTotal = DefaultMaxInstallments + 1 },
			wantErr: ErrTooManyInstallments,
		},
		{
			name:    "unknown category",
			mutate:  func(e *Expense) { e.Category = "Yachts" },
			wantErr: ErrUnknownCategory,
		},
		{
			name:    "unknown payment type",
			mutate:  func(e *Expense) { e.PaymentType = "Cheque" },
			wantErr: ErrUnknownPaymentType,
		},
		{
			name:    "zero date",
			mutate:  func(e *Expense) { e.Date = time.Time{} },
			wantErr: ErrMissingDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validExpense()
			tt.mutate(&e)

			err := rules.ValidateExpense(e)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRules_ValidatePlan(t *testing.T) {
	rules := NewRules([]string{"Food"}, 6)

	plan := InstallmentPlan{
		Name:         "Groceries",
		Amount:       decimal.RequireFromString("54.30"),
		Installments: 6,
		Category:     "Food",
		PaymentType:  PaymentDebit,
		StartDate:    date(2024, time.May, 7),
	}

	if err := rules.ValidatePlan(plan); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	plan.Installments = 7
	if err := rules.ValidatePlan(plan); !errors.Is(err, ErrTooManyInstallments) {
		t.Errorf("expected ErrTooManyInstallments, got %v", err)
	}

	plan.Installments = 0
	if err := rules.ValidatePlan(plan); !errors.Is(err, ErrTooManyInstallments) {
		t.Errorf("expected ErrTooManyInstallments for zero count, got %v", err)
	}
}

func TestNewRules_Defaults(t *testing.T) {
	rules := NewRules(nil, -1)

	if len(rules.Categories) != len(DefaultCategories) {
		t.Errorf("expected default categories, got %v", rules.Categories)
	}
	if rules.MaxInstallments != DefaultMaxInstallments {
		t.Errorf("expected default max installments %d, got %d", DefaultMaxInstallments, rules.MaxInstallments)
	}
}

func TestValidatePaymentType(t *testing.T) {
	for _, pt := range PaymentTypes() {
		if err := ValidatePaymentType(pt); err != nil {
			t.Errorf("expected %q to be valid: %v", pt, err)
		}
	}

	if err := ValidatePaymentType("Boleto"); !errors.Is(err, ErrUnknownPaymentType) {
		t.Errorf("expected ErrUnknownPaymentType, got %v", err)
	}
}
