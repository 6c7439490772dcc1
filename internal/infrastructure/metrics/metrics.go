package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Expense metrics
	ExpensesRecorded prometheus.Counter
	ExpenseAmount    prometheus.Histogram
	ExpenseErrors    *prometheus.CounterVec

	// Database metrics
	DBQueries  *prometheus.CounterVec
	DBDuration *prometheus.HistogramVec
	DBErrors   *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		ExpensesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gastos_expenses_recorded_total",
			Help: "Total number of expense records persisted",
		}),
		ExpenseAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gastos_expense_amount",
			Help:    "Recorded expense amounts",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000, 10000},
		}),
		ExpenseErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gastos_expense_errors_total",
				Help: "Total number of expense recording errors by type",
			},
			[]string{"error_type"},
		),

		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gastos_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gastos_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gastos_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),
	}
}
