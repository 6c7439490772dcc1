package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentPlan is one user-entered expense before expansion into its
// individual monthly installment records.
type InstallmentPlan struct {
	Name         string
	Amount       decimal.Decimal
	Installments int
	Category     string
	PaymentType  PaymentType
	StartDate    time.Time
}

// Expand materializes the plan into its installment records, in index order.
// Installment k (1-based) is dated AddMonths(StartDate, k-1) and carries the
// plan's full amount; every call returns a fresh slice.
func (p InstallmentPlan) Expand() []Expense {
	expenses := make([]Expense, 0, p.Installments)
	for k := 1; k <= p.Installments; k++ {
		expenses = append(expenses, Expense{
			Name:             p.Name,
			Amount:           p.Amount,
			Installment:      k,
			InstallmentTotal: p.Installments,
			Category:         p.Category,
			PaymentType:      p.PaymentType,
			Date:             AddMonths(p.StartDate, k-1),
		})
	}

	return expenses
}
