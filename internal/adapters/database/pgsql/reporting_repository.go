package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	portsrepo "github.com/pocketfin/pocket_finance_backend/internal/core/ports/repositories"
)

type reportingRepository struct {
	BaseRepository
}

// NewReportingRepository creates a new repository for aggregate report queries.
func NewReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*reportingRepository)(nil)

// GetIncomeExpenseTotals returns total income and total expense for the user
// in the half-open range [from, to).
func (r *reportingRepository) GetIncomeExpenseTotals(ctx context.Context, userID string, from, to time.Time) (int64, int64, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN transaction_type = 'INCOME' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN transaction_type = 'EXPENSE' THEN amount ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = $1
		  AND transaction_date >= $2
		  AND transaction_date < $3;
	`
	var income, expense int64
	if err := r.Pool.QueryRow(ctx, query, userID, from, to).Scan(&income, &expense); err != nil {
		return 0, 0, fmt.Errorf("failed to get income/expense totals for user %s: %w", userID, err)
	}
	return income, expense, nil
}

// GetExpenseByCategory returns per-category expense totals for the range,
// sorted by total descending.
func (r *reportingRepository) GetExpenseByCategory(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryAmount, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0) AS total
		FROM transactions
		WHERE user_id = $1
		  AND transaction_type = 'EXPENSE'
		  AND transaction_date >= $2
		  AND transaction_date < $3
		GROUP BY category
		ORDER BY total DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense by category for user %s: %w", userID, err)
	}
	defer rows.Close()

	var result []domain.CategoryAmount
	for rows.Next() {
		var ca domain.CategoryAmount
		if err := rows.Scan(&ca.Category, &ca.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category total row: %w", err)
		}
		result = append(result, ca)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category total rows: %w", err)
	}
	return result, nil
}

// GetDailyExpenseTotals returns expense totals keyed by 1-based day of month
// for the range.
func (r *reportingRepository) GetDailyExpenseTotals(ctx context.Context, userID string, from, to time.Time) (map[int]int64, error) {
	query := `
		SELECT EXTRACT(DAY FROM transaction_date)::int AS day, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1
		  AND transaction_type = 'EXPENSE'
		  AND transaction_date >= $2
		  AND transaction_date < $3
		GROUP BY day;
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily expense totals for user %s: %w", userID, err)
	}
	defer rows.Close()

	totals := make(map[int]int64)
	for rows.Next() {
		var day int
		var total int64
		if err := rows.Scan(&day, &total); err != nil {
			return nil, fmt.Errorf("failed to scan daily total row: %w", err)
		}
		totals[day] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily total rows: %w", err)
	}
	return totals, nil
}
