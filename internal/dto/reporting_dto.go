package dto

import (
	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
)

// MonthlyReportParams defines query parameters for the monthly report.
type MonthlyReportParams struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=1970"`
}

// CategoryAmountResponse pairs a category with an aggregated total.
type CategoryAmountResponse struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
}

// DashboardResponse holds the current-month dashboard figures.
type DashboardResponse struct {
	TotalBalance      int64                    `json:"totalBalance"`
	TotalIncome       int64                    `json:"totalIncome"`
	TotalExpense      int64                    `json:"totalExpense"`
	SavingsRate       int                      `json:"savingsRate"`
	ExpenseByCategory []CategoryAmountResponse `json:"expenseByCategory"`
	Budgets           []BudgetResponse         `json:"budgets"`
}

// MonthlyReportResponse holds a full month's aggregates.
type MonthlyReportResponse struct {
	Month             int                      `json:"month"`
	Year              int                      `json:"year"`
	TotalIncome       int64                    `json:"totalIncome"`
	TotalExpense      int64                    `json:"totalExpense"`
	DailyExpenses     []int64                  `json:"dailyExpenses"`
	ExpenseByCategory []CategoryAmountResponse `json:"expenseByCategory"`
}

func toCategoryAmounts(in []domain.CategoryAmount) []CategoryAmountResponse {
	res := make([]CategoryAmountResponse, len(in))
	for i, c := range in {
		res[i] = CategoryAmountResponse{Category: c.Category, Total: c.Total}
	}
	return res
}

// ToDashboardResponse converts a domain.DashboardSummary to its DTO.
func ToDashboardResponse(s *domain.DashboardSummary) DashboardResponse {
	return DashboardResponse{
		TotalBalance:      s.TotalBalance,
		TotalIncome:       s.TotalIncome,
		TotalExpense:      s.TotalExpense,
		SavingsRate:       s.SavingsRate,
		ExpenseByCategory: toCategoryAmounts(s.ExpenseByCategory),
		Budgets:           ToListBudgetResponse(s.Budgets),
	}
}

// ToMonthlyReportResponse converts a domain.MonthlyReport to its DTO.
func ToMonthlyReportResponse(r *domain.MonthlyReport) MonthlyReportResponse {
	return MonthlyReportResponse{
		Month:             r.Month,
		Year:              r.Year,
		TotalIncome:       r.TotalIncome,
		TotalExpense:      r.TotalExpense,
		DailyExpenses:     r.DailyExpenses,
		ExpenseByCategory: toCategoryAmounts(r.ExpenseByCategory),
	}
}
