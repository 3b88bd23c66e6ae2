package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pocketfin/pocket_finance_backend/internal/apperrors"
	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	portsrepo "github.com/pocketfin/pocket_finance_backend/internal/core/ports/repositories"
	portssvc "github.com/pocketfin/pocket_finance_backend/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_backend/internal/utils"
)

// reportingService assembles the dashboard summary and monthly reports from
// aggregate queries.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	walletRepo    portsrepo.WalletRepositoryFacade
	budgetRepo    portsrepo.BudgetRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, walletRepo portsrepo.WalletRepositoryFacade, budgetRepo portsrepo.BudgetRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		walletRepo:    walletRepo,
		budgetRepo:    budgetRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetDashboardSummary builds the current-month summary relative to now.
// TotalBalance covers all history; the monthly figures cover the calendar
// month containing now.
func (s *reportingService) GetDashboardSummary(ctx context.Context, userID string, now time.Time) (*domain.DashboardSummary, error) {
	from, to := utils.MonthWindow(now)

	totalBalance, err := s.walletRepo.GetTotalBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get total balance: %w", err)
	}

	income, expense, err := s.reportingRepo.GetIncomeExpenseTotals(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get income/expense totals: %w", err)
	}

	byCategory, err := s.reportingRepo.GetExpenseByCategory(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense by category: %w", err)
	}
	if byCategory == nil {
		byCategory = []domain.CategoryAmount{}
	}

	budgets, err := s.budgetRepo.ListBudgetsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	spent, err := s.budgetRepo.GetSpentByCategory(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to derive budget spending: %w", err)
	}
	for i := range budgets {
		budgets[i].DeriveConsumption(spent[budgets[i].Category])
	}
	// Most-consumed budgets first, uncapped so 180% sorts above 120%.
	sort.SliceStable(budgets, func(i, j int) bool {
		return budgets[i].UncappedPercentage() > budgets[j].UncappedPercentage()
	})
	if budgets == nil {
		budgets = []domain.Budget{}
	}

	return &domain.DashboardSummary{
		TotalBalance:      totalBalance,
		TotalIncome:       income,
		TotalExpense:      expense,
		SavingsRate:       domain.SavingsRate(income, expense),
		ExpenseByCategory: byCategory,
		Budgets:           budgets,
	}, nil
}

// GetMonthlyReport builds a full report for the requested calendar month.
// The daily series always has exactly as many entries as the month has days,
// zero-filled where nothing was spent.
func (s *reportingService) GetMonthlyReport(ctx context.Context, userID string, month int, year int) (*domain.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month %d out of range: %w", month, apperrors.ErrValidation)
	}

	from, to := utils.MonthRange(month, year)

	income, expense, err := s.reportingRepo.GetIncomeExpenseTotals(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get income/expense totals: %w", err)
	}

	byCategory, err := s.reportingRepo.GetExpenseByCategory(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense by category: %w", err)
	}
	if byCategory == nil {
		byCategory = []domain.CategoryAmount{}
	}

	dailyTotals, err := s.reportingRepo.GetDailyExpenseTotals(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily expense totals: %w", err)
	}

	days := utils.DaysInMonth(month, year)
	daily := make([]int64, days)
	for day, total := range dailyTotals {
		if day >= 1 && day <= days {
			daily[day-1] = total
		}
	}

	return &domain.MonthlyReport{
		Month:             month,
		Year:              year,
		TotalIncome:       income,
		TotalExpense:      expense,
		DailyExpenses:     daily,
		ExpenseByCategory: byCategory,
	}, nil
}
