package services

import (
	"context"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	"github.com/pocketfin/pocket_finance_backend/internal/dto"
)

// WalletSvcFacade defines the wallet operations exposed to handlers.
// Returned wallets always carry the derived balance.
type WalletSvcFacade interface {
	CreateWallet(ctx context.Context, userID string, req dto.CreateWalletRequest) (*domain.Wallet, error)
	GetWalletByID(ctx context.Context, userID string, walletID string) (*domain.Wallet, error)
	ListWallets(ctx context.Context, userID string) ([]domain.Wallet, error)
	UpdateWallet(ctx context.Context, userID string, walletID string, req dto.UpdateWalletRequest) (*domain.Wallet, error)
	DeleteWallet(ctx context.Context, userID string, walletID string) error
}
