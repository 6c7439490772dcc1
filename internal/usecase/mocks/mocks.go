package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"gastos/internal/domain"
)

// MockExpenseRepository is a mock implementation of ExpenseRepository.
type MockExpenseRepository struct {
	mu       sync.RWMutex
	expenses []*domain.Expense
	nextID   int64

	CreateFunc func(ctx context.Context, expense *domain.Expense) error
	ListFunc   func(ctx context.Context, filter domain.ListFilter) ([]*domain.Expense, error)
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{nextID: 1}
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	expense.ID = m.nextID
	m.nextID++
	stored := *expense
	m.expenses = append(m.expenses, &stored)
	return nil
}

func (m *MockExpenseRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Expense, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Expense
	for _, e := range m.expenses {
		if !filter.From.IsZero() && e.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && e.Date.After(filter.To) {
			continue
		}
		copied := *e
		result = append(result, &copied)
	}
	// Date descending, insertion order (ID ascending becomes descending) as tie-break.
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].ID > result[j].ID
		}
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

// MockIdempotencyStore is an in-memory mock of IdempotencyStore.
type MockIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{entries: make(map[string][]byte)}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.entries[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.entries[key] = response
	} else {
		m.entries[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = response
	return nil
}
