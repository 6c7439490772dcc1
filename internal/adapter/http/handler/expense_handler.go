package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"gastos/internal/adapter/http/dto"
	"gastos/internal/domain"
	"gastos/internal/usecase"
)

const monthLayout = "2006-01"

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	RecordExpense(ctx context.Context, input usecase.RecordExpenseInput) (*domain.Expense, error)
	ListExpenses(ctx context.Context, input usecase.ListExpensesInput) ([]*domain.Expense, error)
}

// ExpenseHandler handles expense-related HTTP requests.
type ExpenseHandler struct {
	expenseUC ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC}
}

// Create records one installment record.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.expenseUC.RecordExpense(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to record expense", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(expense))
}

// List lists stored records ordered by date descending. An optional
// month=YYYY-MM query parameter restricts the listing to one calendar month.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	var input usecase.ListExpensesInput

	if raw := r.URL.Query().Get("month"); raw != "" {
		month, err := time.ParseInLocation(monthLayout, raw, time.UTC)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month parameter", err.Error())
			return
		}
		input.Month = month
	}

	expenses, err := h.expenseUC.ListExpenses(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpensesFromDomain(expenses))
}
