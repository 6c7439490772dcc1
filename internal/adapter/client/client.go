// Package client implements the API client used by the submitting actor. It
// expands an installment plan locally and issues one create request per
// installment, sequentially, the way the original entry form did.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"gastos/internal/adapter/http/dto"
	"gastos/internal/adapter/http/middleware"
	"gastos/internal/domain"
)

// Client talks to the expense service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// PlanError reports a partial plan submission: installments before Failed
// were persisted and stay persisted, the failing one and every later one were
// not. There is no rollback.
type PlanError struct {
	Failed  int // 1-based index of the installment whose create failed
	Total   int
	Created []*domain.Expense // siblings persisted before the failure
	Err     error
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("installment %d of %d failed after %d persisted: %v",
		e.Failed, e.Total, len(e.Created), e.Err)
}

func (e *PlanError) Unwrap() error { return e.Err }

// SubmitPlan expands the plan and submits each installment in index order,
// awaiting each response before issuing the next. On the first failure the
// remaining installments are never attempted and a single PlanError is
// returned. Each create carries a fresh ULID idempotency key so a retried
// request cannot double-insert.
func (c *Client) SubmitPlan(ctx context.Context, plan domain.InstallmentPlan) ([]*domain.Expense, error) {
	created := make([]*domain.Expense, 0, plan.Installments)

	for _, expense := range plan.Expand() {
		stored, err := c.CreateExpense(ctx, expense, ulid.Make().String())
		if err != nil {
			return created, &PlanError{
				Failed:  expense.Installment,
				Total:   plan.Installments,
				Created: created,
				Err:     err,
			}
		}
		created = append(created, stored)
	}

	return created, nil
}

// CreateExpense submits one installment record. An empty idempotencyKey
// omits the header.
func (c *Client) CreateExpense(ctx context.Context, expense domain.Expense, idempotencyKey string) (*domain.Expense, error) {
	payload := dto.CreateExpenseRequest{
		Name:             expense.Name,
		Amount:           expense.Amount,
		Installment:      expense.Installment,
		InstallmentTotal: expense.InstallmentTotal,
		Category:         expense.Category,
		PaymentType:      string(expense.PaymentType),
		Date:             expense.Date.Format(dto.DateLayout),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode expense: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/expenses", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set(middleware.IdempotencyKeyHeader, idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	defer resp.Body.Close()

	// An idempotent replay of an earlier create answers 200 with the
	// originally stored record.
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var stored dto.ExpenseResponse
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return stored.ToDomain()
}

// ListExpenses fetches all stored records, ordered by date descending.
func (c *Client) ListExpenses(ctx context.Context, month string) ([]*domain.Expense, error) {
	url := c.baseURL + "/expenses"
	if month != "" {
		url += "?month=" + month
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var records []*dto.ExpenseResponse
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	expenses := make([]*domain.Expense, 0, len(records))
	for _, rec := range records {
		expense, err := rec.ToDomain()
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	return expenses, nil
}

func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr dto.ErrorResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		return fmt.Errorf("api error (status %d): %s: %s", resp.StatusCode, apiErr.Error, apiErr.Message)
	}

	return fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(body))
}
