package repositories

import (
	"context"
	"time"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
)

// BudgetRepositoryFacade defines persistence operations for budgets.
type BudgetRepositoryFacade interface {
	SaveBudget(ctx context.Context, budget domain.Budget) error
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	ListBudgetsByUser(ctx context.Context, userID string) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, budget domain.Budget) error
	DeleteBudget(ctx context.Context, budgetID string) error

	// GetSpentByCategory returns per-category expense totals for the user in
	// the half-open range [from, to). Categories with no expenses are absent.
	GetSpentByCategory(ctx context.Context, userID string, from, to time.Time) (map[string]int64, error)
}
