package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"gastos/internal/adapter/http/dto"
	"gastos/internal/adapter/http/middleware"
	"gastos/internal/domain"
)

// fakeStore is an in-memory stand-in for the expense service.
type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	received []dto.CreateExpenseRequest
	keys     []string

	// failOn makes the create with this 1-based request ordinal answer 500.
	failOn int
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1}
}

func (s *fakeStore) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /expenses", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		var req dto.CreateExpenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		s.received = append(s.received, req)
		s.keys = append(s.keys, r.Header.Get(middleware.IdempotencyKeyHeader))

		if s.failOn != 0 && len(s.received) == s.failOn {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "failed to record expense"})
			return
		}

		resp := dto.ExpenseResponse{
			ID:               s.nextID,
			Name:             req.Name,
			Amount:           req.Amount,
			Installment:      req.Installment,
			InstallmentTotal: req.InstallmentTotal,
			Category:         req.Category,
			PaymentType:      req.PaymentType,
			Date:             req.Date,
		}
		s.nextID++

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(resp)
	})
	return mux
}

func rentPlan(installments int) domain.InstallmentPlan {
	return domain.InstallmentPlan{
		Name:         "Rent",
		Amount:       decimal.RequireFromString("120.00"),
		Installments: installments,
		Category:     "Housing",
		PaymentType:  domain.PaymentDebit,
		StartDate:    time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestClient_SubmitPlan_Success(t *testing.T) {
	store := newFakeStore()
	server := httptest.NewServer(store.handler())
	defer server.Close()

	c := New(server.URL, 5*time.Second)

	created, err := c.SubmitPlan(context.Background(), rentPlan(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(created) != 3 {
		t.Fatalf("expected 3 stored records, got %d", len(created))
	}
	for i, e := range created {
		if e.ID == 0 {
			t.Errorf("record %d: expected store-assigned ID", i)
		}
		if e.Installment != i+1 {
			t.Errorf("record %d: expected index %d, got %d", i, i+1, e.Installment)
		}
	}

	// Submission happens in index order, one request per installment.
	if len(store.received) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(store.received))
	}
	for i, req := range store.received {
		if req.Installment != i+1 {
			t.Errorf("request %d: expected parcela %d, got %d", i, i+1, req.Installment)
		}
		if req.InstallmentTotal != 3 {
			t.Errorf("request %d: expected totalParcelas 3, got %d", i, req.InstallmentTotal)
		}
	}

	wantDates := []string{"2024-01-15", "2024-02-15", "2024-03-15"}
	for i, req := range store.received {
		if req.Date != wantDates[i] {
			t.Errorf("request %d: expected data %q, got %q", i, wantDates[i], req.Date)
		}
	}
}

func TestClient_SubmitPlan_UniqueIdempotencyKeys(t *testing.T) {
	store := newFakeStore()
	server := httptest.NewServer(store.handler())
	defer server.Close()

	c := New(server.URL, 5*time.Second)

	if _, err := c.SubmitPlan(context.Background(), rentPlan(3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]bool)
	for i, key := range store.keys {
		if key == "" {
			t.Errorf("request %d: missing idempotency key", i)
		}
		if seen[key] {
			t.Errorf("request %d: idempotency key %q reused", i, key)
		}
		seen[key] = true
	}
}

func TestClient_SubmitPlan_AbortsOnFirstFailure(t *testing.T) {
	store := newFakeStore()
	store.failOn = 2
	server := httptest.NewServer(store.handler())
	defer server.Close()

	c := New(server.URL, 5*time.Second)

	created, err := c.SubmitPlan(context.Background(), rentPlan(3))
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var planErr *PlanError
	if !errors.As(err, &planErr) {
		t.Fatalf("expected PlanError, got %T: %v", err, err)
	}

	if planErr.Failed != 2 {
		t.Errorf("expected failure at installment 2, got %d", planErr.Failed)
	}
	if planErr.Total != 3 {
		t.Errorf("expected total 3, got %d", planErr.Total)
	}
	if len(planErr.Created) != 1 {
		t.Errorf("expected exactly 1 persisted sibling, got %d", len(planErr.Created))
	}
	if len(created) != 1 {
		t.Errorf("expected 1 returned record, got %d", len(created))
	}

	// The third installment is never attempted.
	if len(store.received) != 2 {
		t.Errorf("expected 2 requests (third never attempted), got %d", len(store.received))
	}
}

func TestClient_ListExpenses(t *testing.T) {
	records := []dto.ExpenseResponse{
		{ID: 2, Name: "B", Amount: decimal.RequireFromString("2.00"), Installment: 1, InstallmentTotal: 1, Category: "Food", PaymentType: "PIX", Date: "2024-03-01"},
		{ID: 1, Name: "A", Amount: decimal.RequireFromString("1.00"), Installment: 1, InstallmentTotal: 1, Category: "Food", PaymentType: "PIX", Date: "2024-01-01"},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/expenses" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(records)
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second)

	expenses, err := c.ListExpenses(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(expenses) != 2 {
		t.Fatalf("expected 2 records, got %d", len(expenses))
	}
	if expenses[0].ID != 2 || expenses[1].ID != 1 {
		t.Errorf("expected order preserved from the wire, got %d then %d", expenses[0].ID, expenses[1].ID)
	}
	if !expenses[0].Date.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date: %s", expenses[0].Date)
	}
}

func TestClient_CreateExpense_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "failed to record expense", Message: "store unavailable"})
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second)

	expense := rentPlan(1).Expand()[0]
	if _, err := c.CreateExpense(context.Background(), expense, ""); err == nil {
		t.Fatal("expected error, got nil")
	}
}
