package dto

import (
	"time"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
)

// CreateWalletRequest defines the data needed to create a new wallet.
type CreateWalletRequest struct {
	Name       string            `json:"name" binding:"required"`
	WalletType domain.WalletType `json:"walletType" binding:"required,oneof=CASH BANK EWALLET OTHER"`
	Icon       string            `json:"icon"`
	Color      string            `json:"color"`
}

// UpdateWalletRequest defines the data allowed for updating a wallet.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateWalletRequest struct {
	Name       *string            `json:"name"`
	WalletType *domain.WalletType `json:"walletType" binding:"omitempty,oneof=CASH BANK EWALLET OTHER"`
	Icon       *string            `json:"icon"`
	Color      *string            `json:"color"`
}

// WalletResponse defines the data returned for a wallet. CurrentBalance is
// derived from transaction history and is never accepted as input.
type WalletResponse struct {
	WalletID       string            `json:"walletID"`
	Name           string            `json:"name"`
	WalletType     domain.WalletType `json:"walletType"`
	Icon           string            `json:"icon"`
	Color          string            `json:"color"`
	CurrentBalance int64             `json:"currentBalance"`
	CreatedAt      time.Time         `json:"createdAt"`
	LastUpdatedAt  time.Time         `json:"lastUpdatedAt"`
}

// ToWalletResponse converts a domain.Wallet to WalletResponse DTO.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID:       w.WalletID,
		Name:           w.Name,
		WalletType:     w.WalletType,
		Icon:           w.Icon,
		Color:          w.Color,
		CurrentBalance: w.Balance,
		CreatedAt:      w.CreatedAt,
		LastUpdatedAt:  w.LastUpdatedAt,
	}
}

// ToListWalletResponse converts a slice of domain.Wallet to response DTOs.
func ToListWalletResponse(wallets []domain.Wallet) []WalletResponse {
	res := make([]WalletResponse, len(wallets))
	for i := range wallets {
		res[i] = ToWalletResponse(&wallets[i])
	}
	return res
}
