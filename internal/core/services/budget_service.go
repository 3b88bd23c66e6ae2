package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketfin/pocket_finance_backend/internal/apperrors"
	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	portsrepo "github.com/pocketfin/pocket_finance_backend/internal/core/ports/repositories"
	portssvc "github.com/pocketfin/pocket_finance_backend/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_backend/internal/dto"
	"github.com/pocketfin/pocket_finance_backend/internal/middleware"
	"github.com/pocketfin/pocket_finance_backend/internal/utils"
)

// budgetService provides budget operations with current-month consumption
// derived at read time.
type budgetService struct {
	budgetRepo portsrepo.BudgetRepositoryFacade
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade) portssvc.BudgetSvcFacade {
	return &budgetService{budgetRepo: budgetRepo}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) findOwnedBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.UserID != userID {
		return nil, notOwnedErr(ctx, "budget", budgetID, userID)
	}
	return budget, nil
}

// deriveBudget fills the budget's consumption fields for the calendar month
// containing now.
func (s *budgetService) deriveBudget(ctx context.Context, budget *domain.Budget, now time.Time) error {
	from, to := utils.MonthWindow(now)
	spent, err := s.budgetRepo.GetSpentByCategory(ctx, budget.UserID, from, to)
	if err != nil {
		return fmt.Errorf("failed to derive spending for budget %s: %w", budget.BudgetID, err)
	}
	budget.DeriveConsumption(spent[budget.Category])
	return nil
}

// CreateBudget creates a monthly limit for a category. One budget exists per
// category per user.
func (s *budgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := utils.RoundToMinorUnits(req.MonthlyLimit)
	if limit <= 0 {
		return nil, fmt.Errorf("monthly limit must be positive: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID:     utils.NewID(utils.PrefixBudget),
		UserID:       userID,
		Category:     req.Category,
		MonthlyLimit: limit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		logger.Error("Failed to save budget", slog.String("budget_id", budget.BudgetID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	if err := s.deriveBudget(ctx, &budget, now); err != nil {
		return nil, err
	}
	logger.Info("Budget created", slog.String("budget_id", budget.BudgetID), slog.String("category", budget.Category))
	return &budget, nil
}

// GetBudgetByID returns the budget with current-month consumption.
func (s *budgetService) GetBudgetByID(ctx context.Context, userID string, budgetID string) (*domain.Budget, error) {
	budget, err := s.findOwnedBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	if err := s.deriveBudget(ctx, budget, time.Now()); err != nil {
		return nil, err
	}
	return budget, nil
}

// ListBudgets returns all the user's budgets with current-month consumption.
// One aggregate query covers every category.
func (s *budgetService) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgetsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if len(budgets) == 0 {
		return []domain.Budget{}, nil
	}

	from, to := utils.MonthWindow(time.Now())
	spent, err := s.budgetRepo.GetSpentByCategory(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to derive budget spending: %w", err)
	}
	for i := range budgets {
		budgets[i].DeriveConsumption(spent[budgets[i].Category])
	}
	return budgets, nil
}

// UpdateBudget applies the provided fields and returns the budget with
// consumption rederived against the new limit.
func (s *budgetService) UpdateBudget(ctx context.Context, userID string, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budget, err := s.findOwnedBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	if req.MonthlyLimit != nil {
		limit := utils.RoundToMinorUnits(*req.MonthlyLimit)
		if limit <= 0 {
			return nil, fmt.Errorf("monthly limit must be positive: %w", apperrors.ErrValidation)
		}
		budget.MonthlyLimit = limit
	}
	budget.LastUpdatedAt = time.Now()
	budget.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		logger.Error("Failed to update budget", slog.String("budget_id", budgetID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update budget %s: %w", budgetID, err)
	}

	if err := s.deriveBudget(ctx, budget, time.Now()); err != nil {
		return nil, err
	}
	return budget, nil
}

// DeleteBudget removes a budget. Transactions in the category are untouched.
func (s *budgetService) DeleteBudget(ctx context.Context, userID string, budgetID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwnedBudget(ctx, userID, budgetID); err != nil {
		return err
	}

	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		logger.Error("Failed to delete budget", slog.String("budget_id", budgetID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}

	logger.Info("Budget deleted", slog.String("budget_id", budgetID))
	return nil
}
