package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gastos/internal/domain"
	"gastos/internal/usecase"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// CreateExpenseRequest represents a request to record one installment record.
// The wire contract keeps the Portuguese field names of the original form.
type CreateExpenseRequest struct {
	Name             string          `json:"nome"`
	Amount           decimal.Decimal `json:"valor"`
	Installment      int             `json:"parcela"`
	InstallmentTotal int             `json:"totalParcelas"`
	Category         string          `json:"categoria"`
	PaymentType      string          `json:"tipo"`
	Date             string          `json:"data"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateExpenseRequest) ToUseCaseInput() (usecase.RecordExpenseInput, error) {
	date, err := time.ParseInLocation(DateLayout, r.Date, time.UTC)
	if err != nil {
		return usecase.RecordExpenseInput{}, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}

	return usecase.RecordExpenseInput{
		Name:             r.Name,
		Amount:           r.Amount,
		Installment:      r.Installment,
		InstallmentTotal: r.InstallmentTotal,
		Category:         r.Category,
		PaymentType:      domain.PaymentType(r.PaymentType),
		Date:             date,
	}, nil
}
