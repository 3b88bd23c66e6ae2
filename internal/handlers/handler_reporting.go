package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/pocketfin/pocket_finance_backend/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_backend/internal/dto"
	"github.com/pocketfin/pocket_finance_backend/internal/middleware"
)

// reportingHandler handles HTTP requests for aggregate reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.getDashboard)
		reports.GET("/monthly", h.getMonthlyReport)
	}
}

// getDashboard godoc
// @Summary Get the dashboard summary
// @Description Current-month totals, savings rate, expense breakdown, and budgets sorted most-consumed first
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.reportingService.GetDashboardSummary(c.Request.Context(), userID, time.Now())
	if err != nil {
		respondServiceError(c, err, "dashboard")
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(summary))
}

// getMonthlyReport godoc
// @Summary Get a monthly report
// @Description Totals, category breakdown, and a per-day expense series for the requested month
// @Tags reports
// @Produce  json
// @Param   month query int true "Month (1-12)"
// @Param   year query int true "Year"
// @Success 200 {object} dto.MonthlyReportResponse
// @Failure 400 {object} map[string]string "Invalid month or year"
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) getMonthlyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.MonthlyReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for getMonthlyReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.GetMonthlyReport(c.Request.Context(), userID, params.Month, params.Year)
	if err != nil {
		respondServiceError(c, err, "report")
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlyReportResponse(report))
}
