package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"gastos/internal/domain"
	"gastos/internal/infrastructure/metrics"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
	metrics *metrics.Metrics
}

// NewExpenseRepository creates a new ExpenseRepository. Metrics may be nil.
func NewExpenseRepository(pool *pgxpool.Pool, m *metrics.Metrics) *ExpenseRepository {
	return &ExpenseRepository{
		pool:    pool,
		retrier: NewRetrier(),
		metrics: m,
	}
}

// Create persists one expense record and fills in the assigned ID.
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	query, args, err := buildInsertQuery(expense)
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	op := func() error {
		return r.pool.QueryRow(ctx, query, args...).Scan(&expense.ID)
	}

	defer r.observe("create")()
	if err := r.retrier.Retry(ctx, op); err != nil {
		if r.metrics != nil {
			r.metrics.DBErrors.WithLabelValues("create").Inc()
		}
		return mapPgError(err)
	}

	return nil
}

// List returns records ordered by date descending, ID descending as tie-break.
func (r *ExpenseRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Expense, error) {
	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	defer r.observe("list")()
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		if r.metrics != nil {
			r.metrics.DBErrors.WithLabelValues("list").Inc()
		}
		return nil, mapPgError(err)
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		var (
			e      domain.Expense
			amount pgtype.Numeric
			date   pgtype.Date
			pt     string
		)
		if err := rows.Scan(&e.ID, &e.Name, &amount, &e.Installment, &e.InstallmentTotal, &e.Category, &pt, &date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Amount = numericToDecimal(amount)
		e.PaymentType = domain.PaymentType(pt)
		e.Date = time.Date(date.Time.Year(), date.Time.Month(), date.Time.Day(), 0, 0, 0, 0, time.UTC)
		expenses = append(expenses, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err)
	}

	return expenses, nil
}

func buildInsertQuery(e *domain.Expense) (string, []any, error) {
	return psql.Insert("expenses").
		Columns("name", "amount", "installment", "installment_total", "category", "payment_type", "date").
		Values(e.Name, decimalToNumeric(e.Amount), e.Installment, e.InstallmentTotal, e.Category, string(e.PaymentType), e.Date).
		Suffix("RETURNING id").
		ToSql()
}

func buildListQuery(filter domain.ListFilter) (string, []any, error) {
	q := psql.Select("id", "name", "amount", "installment", "installment_total", "category", "payment_type", "date").
		From("expenses").
		OrderBy("date DESC", "id DESC")

	if !filter.From.IsZero() {
		q = q.Where(sq.GtOrEq{"date": filter.From})
	}
	if !filter.To.IsZero() {
		q = q.Where(sq.LtOrEq{"date": filter.To})
	}

	return q.ToSql()
}

// observe counts the query and returns a func recording its duration.
func (r *ExpenseRepository) observe(operation string) func() {
	if r.metrics == nil {
		return func() {}
	}

	r.metrics.DBQueries.WithLabelValues(operation).Inc()
	timer := prometheus.NewTimer(r.metrics.DBDuration.WithLabelValues(operation))

	return func() { timer.ObserveDuration() }
}

// mapPgError folds driver errors into the domain persistence taxonomy.
// Integrity violations (SQLSTATE class 23) mean the record itself is bad;
// everything else is treated as the store being unavailable.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == "23" {
			return fmt.Errorf("%w: %s", domain.ErrConstraintViolated, pgErr.Message)
		}
	}

	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
