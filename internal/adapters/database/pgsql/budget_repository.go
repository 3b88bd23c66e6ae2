package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pocketfin/pocket_finance_backend/internal/apperrors"
	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	portsrepo "github.com/pocketfin/pocket_finance_backend/internal/core/ports/repositories"
	"github.com/pocketfin/pocket_finance_backend/internal/models"
	"github.com/pocketfin/pocket_finance_backend/internal/utils/mapping"
)

type budgetRepository struct {
	BaseRepository
}

// NewBudgetRepository creates a new repository for budget data.
func NewBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &budgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*budgetRepository)(nil)

const budgetColumns = `budget_id, user_id, category, monthly_limit, created_at, created_by, last_updated_at, last_updated_by`

func scanBudget(row pgx.Row) (*models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.UserID,
		&m.Category,
		&m.MonthlyLimit,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveBudget inserts a new budget. The (user_id, category) pair is unique.
func (r *budgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BudgetID, m.UserID, m.Category, m.MonthlyLimit,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("budget for category %q: %w", budget.Category, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save budget %s: %w", budget.BudgetID, err)
	}
	return nil
}

// FindBudgetByID retrieves a budget by its ID.
func (r *budgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`
	m, err := scanBudget(r.Pool.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget by ID %s: %w", budgetID, err)
	}
	b := mapping.ToDomainBudget(*m)
	return &b, nil
}

// ListBudgetsByUser retrieves all budgets belonging to a user, by category.
func (r *budgetRepository) ListBudgetsByUser(ctx context.Context, userID string) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 ORDER BY category ASC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets for user %s: %w", userID, err)
	}
	defer rows.Close()

	var ms []models.Budget
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budget rows: %w", err)
	}
	return mapping.ToDomainBudgetSlice(ms), nil
}

// UpdateBudget persists changes to an existing budget.
func (r *budgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		UPDATE budgets
		SET category = $2, monthly_limit = $3, last_updated_at = $4, last_updated_by = $5
		WHERE budget_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.BudgetID, m.Category, m.MonthlyLimit, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("budget for category %q: %w", budget.Category, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update budget %s: %w", budget.BudgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBudget removes a budget.
func (r *budgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetSpentByCategory returns per-category expense totals for the user in the
// half-open range [from, to).
func (r *budgetRepository) GetSpentByCategory(ctx context.Context, userID string, from, to time.Time) (map[string]int64, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1
		  AND transaction_type = 'EXPENSE'
		  AND transaction_date >= $2
		  AND transaction_date < $3
		GROUP BY category;
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get spent by category for user %s: %w", userID, err)
	}
	defer rows.Close()

	spent := make(map[string]int64)
	for rows.Next() {
		var category string
		var total int64
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("failed to scan spent row: %w", err)
		}
		spent[category] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate spent rows: %w", err)
	}
	return spent, nil
}
