package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/pocketfin/pocket_finance_backend/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_backend/internal/core/services"
	"github.com/pocketfin/pocket_finance_backend/internal/dto"
	"github.com/pocketfin/pocket_finance_backend/internal/middleware"
)

// goalHandler handles HTTP requests related to savings goals and their
// transactions.
type goalHandler struct {
	goalService portssvc.GoalSvcFacade
}

func newGoalHandler(gs portssvc.GoalSvcFacade) *goalHandler {
	return &goalHandler{goalService: gs}
}

// registerGoalRoutes registers routes related to goals and goal transactions.
func registerGoalRoutes(rg *gin.RouterGroup, goalService portssvc.GoalSvcFacade) {
	h := newGoalHandler(goalService)

	goals := rg.Group("/goals")
	{
		goals.POST("", h.createGoal)
		goals.GET("", h.listGoals)
		goals.GET("/:id", h.getGoal)
		goals.PUT("/:id", h.updateGoal)
		goals.DELETE("/:id", h.deleteGoal)

		goals.POST("/:id/transactions", h.createGoalTransaction)
		goals.GET("/:id/transactions", h.listGoalTransactions)
		goals.PUT("/:id/transactions/:txnID", h.updateGoalTransaction)
		goals.DELETE("/:id/transactions/:txnID", h.deleteGoalTransaction)
	}
}

// createGoal godoc
// @Summary Create a goal
// @Description Creates a savings goal with zero progress
// @Tags goals
// @Accept  json
// @Produce  json
// @Param   goal body dto.CreateGoalRequest true "Goal details"
// @Success 201 {object} dto.GoalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /goals [post]
func (h *goalHandler) createGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createGoal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "goal")
		return
	}

	c.JSON(http.StatusCreated, dto.ToGoalResponse(goal))
}

// listGoals godoc
// @Summary List goals
// @Description Retrieves the user's goals with derived progress
// @Tags goals
// @Produce  json
// @Success 200 {array} dto.GoalResponse
// @Security BearerAuth
// @Router /goals [get]
func (h *goalHandler) listGoals(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "goal")
		return
	}

	c.JSON(http.StatusOK, dto.ToListGoalResponse(goals))
}

// getGoal godoc
// @Summary Get a goal
// @Description Retrieves a goal by id with derived progress
// @Tags goals
// @Produce  json
// @Param   id path string true "Goal ID"
// @Success 200 {object} dto.GoalResponse
// @Failure 404 {object} map[string]string "Goal not found"
// @Security BearerAuth
// @Router /goals/{id} [get]
func (h *goalHandler) getGoal(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	goal, err := h.goalService.GetGoalByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "goal")
		return
	}

	c.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}

// updateGoal godoc
// @Summary Update a goal
// @Description Amends goal fields; progress is rederived against the new target
// @Tags goals
// @Accept  json
// @Produce  json
// @Param   id path string true "Goal ID"
// @Param   goal body dto.UpdateGoalRequest true "Fields to update"
// @Success 200 {object} dto.GoalResponse
// @Failure 404 {object} map[string]string "Goal not found"
// @Security BearerAuth
// @Router /goals/{id} [put]
func (h *goalHandler) updateGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateGoal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "goal")
		return
	}

	c.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}

// deleteGoal godoc
// @Summary Delete a goal
// @Description Deletes the goal, its transaction history, and every linked wallet transaction
// @Tags goals
// @Produce  json
// @Param   id path string true "Goal ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Goal not found"
// @Security BearerAuth
// @Router /goals/{id} [delete]
func (h *goalHandler) deleteGoal(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, err, "goal")
		return
	}

	c.Status(http.StatusNoContent)
}

// createGoalTransaction godoc
// @Summary Record a goal top-up or withdrawal
// @Description Records goal activity; a wallet reference creates the mirrored wallet transaction atomically
// @Tags goals
// @Accept  json
// @Produce  json
// @Param   id path string true "Goal ID"
// @Param   transaction body dto.CreateGoalTransactionRequest true "Goal transaction details"
// @Success 201 {object} dto.GoalTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Withdrawal exceeds goal balance"
// @Security BearerAuth
// @Router /goals/{id}/transactions [post]
func (h *goalHandler) createGoalTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateGoalTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createGoalTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	gt, err := h.goalService.CreateGoalTransaction(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrGoalBalanceExceeded) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Withdrawal exceeds goal balance"})
			return
		}
		respondServiceError(c, err, "goal transaction")
		return
	}

	c.JSON(http.StatusCreated, dto.ToGoalTransactionResponse(gt))
}

// listGoalTransactions godoc
// @Summary List goal transactions
// @Description Retrieves the goal's top-ups and withdrawals, newest first
// @Tags goals
// @Produce  json
// @Param   id path string true "Goal ID"
// @Success 200 {array} dto.GoalTransactionResponse
// @Failure 404 {object} map[string]string "Goal not found"
// @Security BearerAuth
// @Router /goals/{id}/transactions [get]
func (h *goalHandler) listGoalTransactions(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	gts, err := h.goalService.ListGoalTransactions(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "goal transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToGoalTransactionResponses(gts))
}

// updateGoalTransaction godoc
// @Summary Update a goal transaction
// @Description Amends amount or note; a linked wallet transaction is amended atomically
// @Tags goals
// @Accept  json
// @Produce  json
// @Param   id path string true "Goal ID"
// @Param   txnID path string true "Goal Transaction ID"
// @Param   transaction body dto.UpdateGoalTransactionRequest true "Fields to update"
// @Success 200 {object} dto.GoalTransactionResponse
// @Failure 404 {object} map[string]string "Goal transaction not found"
// @Failure 422 {object} map[string]string "Amendment would overdraw the goal"
// @Security BearerAuth
// @Router /goals/{id}/transactions/{txnID} [put]
func (h *goalHandler) updateGoalTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateGoalTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateGoalTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	gt, err := h.goalService.UpdateGoalTransaction(c.Request.Context(), userID, c.Param("id"), c.Param("txnID"), req)
	if err != nil {
		if errors.Is(err, services.ErrGoalBalanceExceeded) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Amendment would overdraw the goal"})
			return
		}
		respondServiceError(c, err, "goal transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToGoalTransactionResponse(gt))
}

// deleteGoalTransaction godoc
// @Summary Delete a goal transaction
// @Description Deletes the goal transaction together with its linked wallet transaction
// @Tags goals
// @Produce  json
// @Param   id path string true "Goal ID"
// @Param   txnID path string true "Goal Transaction ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Goal transaction not found"
// @Security BearerAuth
// @Router /goals/{id}/transactions/{txnID} [delete]
func (h *goalHandler) deleteGoalTransaction(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.goalService.DeleteGoalTransaction(c.Request.Context(), userID, c.Param("id"), c.Param("txnID")); err != nil {
		respondServiceError(c, err, "goal transaction")
		return
	}

	c.Status(http.StatusNoContent)
}
