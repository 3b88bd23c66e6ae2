package dto

import (
	"time"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a budget. One budget
// row exists per category per user.
type CreateBudgetRequest struct {
	Category     string          `json:"category" binding:"required"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit" binding:"required"`
}

// UpdateBudgetRequest defines the mutable budget fields.
type UpdateBudgetRequest struct {
	MonthlyLimit *decimal.Decimal `json:"monthlyLimit"`
}

// BudgetResponse defines the data returned for a budget. Spent, Remaining,
// Percentage, and OverBudget are derived for the current calendar month and
// never accepted as input.
type BudgetResponse struct {
	BudgetID      string    `json:"budgetID"`
	Category      string    `json:"category"`
	MonthlyLimit  int64     `json:"monthlyLimit"`
	Spent         int64     `json:"spent"`
	Remaining     int64     `json:"remaining"`
	Percentage    int       `json:"percentage"`
	OverBudget    bool      `json:"overBudget"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToBudgetResponse converts a domain.Budget to BudgetResponse DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:      b.BudgetID,
		Category:      b.Category,
		MonthlyLimit:  b.MonthlyLimit,
		Spent:         b.Spent,
		Remaining:     b.Remaining,
		Percentage:    b.Percentage,
		OverBudget:    b.OverBudget,
		CreatedAt:     b.CreatedAt,
		LastUpdatedAt: b.LastUpdatedAt,
	}
}

// ToListBudgetResponse converts a slice of domain budgets to response DTOs.
func ToListBudgetResponse(budgets []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		res[i] = ToBudgetResponse(&budgets[i])
	}
	return res
}
