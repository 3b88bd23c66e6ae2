package repositories

import (
	"context"
	"time"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
)

// ReportingRepositoryFacade defines the aggregate queries backing the dashboard and
// monthly reports. All ranges are half-open [from, to) on transaction_date.
type ReportingRepositoryFacade interface {
	// GetIncomeExpenseTotals returns total income and total expense for the range.
	GetIncomeExpenseTotals(ctx context.Context, userID string, from, to time.Time) (income int64, expense int64, err error)

	// GetExpenseByCategory returns per-category expense totals for the range,
	// sorted by total descending.
	GetExpenseByCategory(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryAmount, error)

	// GetDailyExpenseTotals returns expense totals keyed by day of month (1-based)
	// for the range. Days with no expense are absent from the map.
	GetDailyExpenseTotals(ctx context.Context, userID string, from, to time.Time) (map[int]int64, error)
}
