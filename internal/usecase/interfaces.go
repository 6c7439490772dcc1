package usecase

import (
	"context"
	"time"

	"gastos/internal/domain"
)

// ExpenseRepository defines data access for expense records.
type ExpenseRepository interface {
	// Create persists one record and fills in the store-assigned ID.
	Create(ctx context.Context, expense *domain.Expense) error
	// List returns records ordered by date descending (insertion order as
	// tie-break), optionally restricted to a date window.
	List(ctx context.Context, filter domain.ListFilter) ([]*domain.Expense, error)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
