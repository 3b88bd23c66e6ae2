package services

import (
	"context"
	"time"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
)

// ReportingSvcFacade defines the aggregate reporting operations.
type ReportingSvcFacade interface {
	// GetDashboardSummary builds the current-month summary relative to now.
	GetDashboardSummary(ctx context.Context, userID string, now time.Time) (*domain.DashboardSummary, error)
	// GetMonthlyReport builds a full report for the requested calendar month.
	GetMonthlyReport(ctx context.Context, userID string, month int, year int) (*domain.MonthlyReport, error)
}
