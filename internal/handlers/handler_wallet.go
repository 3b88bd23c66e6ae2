package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketfin/pocket_finance_backend/internal/apperrors"
	portssvc "github.com/pocketfin/pocket_finance_backend/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_backend/internal/dto"
	"github.com/pocketfin/pocket_finance_backend/internal/middleware"
)

// walletHandler handles HTTP requests related to wallets.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws}
}

// registerWalletRoutes registers routes related to wallets.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := newWalletHandler(walletService)

	wallets := rg.Group("/wallets")
	{
		wallets.POST("", h.createWallet)
		wallets.GET("", h.listWallets)
		wallets.GET("/:id", h.getWallet)
		wallets.PUT("/:id", h.updateWallet)
		wallets.DELETE("/:id", h.deleteWallet)
	}
}

// createWallet godoc
// @Summary Create a new wallet
// @Description Creates a wallet for the authenticated user; balance starts at zero
// @Tags wallets
// @Accept  json
// @Produce  json
// @Param   wallet body dto.CreateWalletRequest true "Wallet details"
// @Success 201 {object} dto.WalletResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /wallets [post]
func (h *walletHandler) createWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createWallet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	wallet, err := h.walletService.CreateWallet(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "wallet")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWalletResponse(wallet))
}

// listWallets godoc
// @Summary List wallets
// @Description Retrieves the user's wallets, each with its derived balance
// @Tags wallets
// @Produce  json
// @Success 200 {array} dto.WalletResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /wallets [get]
func (h *walletHandler) listWallets(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallets, err := h.walletService.ListWallets(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "wallet")
		return
	}

	c.JSON(http.StatusOK, dto.ToListWalletResponse(wallets))
}

// getWallet godoc
// @Summary Get a wallet
// @Description Retrieves a wallet by id with its derived balance
// @Tags wallets
// @Produce  json
// @Param   id path string true "Wallet ID"
// @Success 200 {object} dto.WalletResponse
// @Failure 404 {object} map[string]string "Wallet not found"
// @Security BearerAuth
// @Router /wallets/{id} [get]
func (h *walletHandler) getWallet(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallet, err := h.walletService.GetWalletByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "wallet")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// updateWallet godoc
// @Summary Update a wallet
// @Description Updates wallet display fields; the balance is never writable
// @Tags wallets
// @Accept  json
// @Produce  json
// @Param   id path string true "Wallet ID"
// @Param   wallet body dto.UpdateWalletRequest true "Fields to update"
// @Success 200 {object} dto.WalletResponse
// @Failure 404 {object} map[string]string "Wallet not found"
// @Security BearerAuth
// @Router /wallets/{id} [put]
func (h *walletHandler) updateWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateWallet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	wallet, err := h.walletService.UpdateWallet(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "wallet")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// deleteWallet godoc
// @Summary Delete a wallet
// @Description Deletes a wallet; its transactions survive with a null wallet reference
// @Tags wallets
// @Produce  json
// @Param   id path string true "Wallet ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Security BearerAuth
// @Router /wallets/{id} [delete]
func (h *walletHandler) deleteWallet(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.walletService.DeleteWallet(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, err, "wallet")
		return
	}

	c.Status(http.StatusNoContent)
}

// respondServiceError translates service errors into HTTP responses. Used by
// every resource handler so the error taxonomy stays uniform.
func respondServiceError(c *gin.Context, err error, resource string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		// Cross-user ids read as missing rather than confirming existence.
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": resource + " already exists"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	default:
		logger.Error("Unhandled service error", slog.String("resource", resource), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
