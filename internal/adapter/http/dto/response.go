package dto

import (
	"github.com/shopspring/decimal"

	"gastos/internal/domain"
)

// ExpenseResponse represents an expense record in API responses.
type ExpenseResponse struct {
	ID               int64           `json:"id"`
	Name             string          `json:"nome"`
	Amount           decimal.Decimal `json:"valor"`
	Installment      int             `json:"parcela"`
	InstallmentTotal int             `json:"totalParcelas"`
	Category         string          `json:"categoria"`
	PaymentType      string          `json:"tipo"`
	Date             string          `json:"data"`
}

// ExpenseFromDomain converts a domain expense to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:               e.ID,
		Name:             e.Name,
		Amount:           e.Amount,
		Installment:      e.Installment,
		InstallmentTotal: e.InstallmentTotal,
		Category:         e.Category,
		PaymentType:      string(e.PaymentType),
		Date:             e.Date.Format(DateLayout),
	}
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []*domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e)
	}
	return result
}

// ToDomain converts a response back into a domain expense. The submitting
// client uses this to read stored records off the wire.
func (r *ExpenseResponse) ToDomain() (*domain.Expense, error) {
	input := CreateExpenseRequest{
		Name:             r.Name,
		Amount:           r.Amount,
		Installment:      r.Installment,
		InstallmentTotal: r.InstallmentTotal,
		Category:         r.Category,
		PaymentType:      r.PaymentType,
		Date:             r.Date,
	}

	parsed, err := input.ToUseCaseInput()
	if err != nil {
		return nil, err
	}

	return &domain.Expense{
		ID:               r.ID,
		Name:             parsed.Name,
		Amount:           parsed.Amount,
		Installment:      parsed.Installment,
		InstallmentTotal: parsed.InstallmentTotal,
		Category:         parsed.Category,
		PaymentType:      parsed.PaymentType,
		Date:             parsed.Date,
	}, nil
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
