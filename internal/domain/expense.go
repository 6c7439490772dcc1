package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType identifies how an expense was paid.
type PaymentType string

const (
	PaymentCredit PaymentType = "Credit"
	PaymentDebit  PaymentType = "Debit"
	PaymentPIX    PaymentType = "PIX"
)

// PaymentTypes lists every accepted payment type.
func PaymentTypes() []PaymentType {
	return []PaymentType{PaymentCredit, PaymentDebit, PaymentPIX}
}

// ListFilter restricts a listing to an inclusive date window. Zero bounds
// are unbounded.
type ListFilter struct {
	From time.Time
	To   time.Time
}

// Expense represents one persisted installment record. Amount carries the
// full entered amount on every installment of a plan; it is never divided.
type Expense struct {
	ID               int64
	Name             string
	Amount           decimal.Decimal
	Installment      int
	InstallmentTotal int
	Category         string
	PaymentType      PaymentType
	Date             time.Time
}
