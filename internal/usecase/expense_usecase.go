package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"gastos/internal/domain"
	"gastos/internal/infrastructure/metrics"
)

// ExpenseUseCase handles expense recording and retrieval.
type ExpenseUseCase struct {
	repo    ExpenseRepository
	rules   domain.Rules
	metrics *metrics.Metrics
}

// NewExpenseUseCase creates a new ExpenseUseCase. Metrics may be nil.
func NewExpenseUseCase(repo ExpenseRepository, rules domain.Rules, m *metrics.Metrics) *ExpenseUseCase {
	return &ExpenseUseCase{
		repo:    repo,
		rules:   rules,
		metrics: m,
	}
}

// RecordExpenseInput represents input for recording one installment record.
type RecordExpenseInput struct {
	Name             string
	Amount           decimal.Decimal
	Installment      int
	InstallmentTotal int
	Category         string
	PaymentType      domain.PaymentType
	Date             time.Time
}

// RecordExpense validates and persists one installment record, returning the
// stored record with its assigned ID. Siblings of the same plan are recorded
// by independent calls; a failure here never rolls back previously stored ones.
func (uc *ExpenseUseCase) RecordExpense(ctx context.Context, input RecordExpenseInput) (*domain.Expense, error) {
	expense := &domain.Expense{
		Name:             input.Name,
		Amount:           input.Amount,
		Installment:      input.Installment,
		InstallmentTotal: input.InstallmentTotal,
		Category:         input.Category,
		PaymentType:      input.PaymentType,
		Date:             normalizeDate(input.Date),
	}

	if err := uc.rules.ValidateExpense(*expense); err != nil {
		uc.countError("validation")
		return nil, err
	}

	if err := uc.repo.Create(ctx, expense); err != nil {
		uc.countError("persistence")
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ExpensesRecorded.Inc()
		amount, _ := expense.Amount.Float64()
		uc.metrics.ExpenseAmount.Observe(amount)
	}

	return expense, nil
}

// ListExpensesInput represents input for listing expenses.
type ListExpensesInput struct {
	// Month, when non-zero, restricts the listing to the calendar month
	// containing it.
	Month time.Time
}

// ListExpenses lists stored records ordered by date descending.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, input ListExpensesInput) ([]*domain.Expense, error) {
	var filter domain.ListFilter
	if !input.Month.IsZero() {
		filter.From, filter.To = domain.MonthWindow(input.Month)
	}

	return uc.repo.List(ctx, filter)
}

// Rules exposes the validation rule set, for surfaces that present the
// category list or the installment bound to the user.
func (uc *ExpenseUseCase) Rules() domain.Rules {
	return uc.rules
}

func (uc *ExpenseUseCase) countError(errorType string) {
	if uc.metrics != nil {
		uc.metrics.ExpenseErrors.WithLabelValues(errorType).Inc()
	}
}

func normalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
