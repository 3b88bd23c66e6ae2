package services

import (
	"context"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	"github.com/pocketfin/pocket_finance_backend/internal/dto"
)

// BudgetSvcFacade defines the budget operations exposed to handlers.
// Returned budgets carry spent/remaining/percentage derived for the current
// calendar month.
type BudgetSvcFacade interface {
	CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error)
	GetBudgetByID(ctx context.Context, userID string, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, userID string, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, userID string, budgetID string) error
}
