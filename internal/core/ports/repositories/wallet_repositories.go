package repositories

import (
	"context"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
)

// WalletRepositoryFacade defines persistence operations for wallets.
// Balance accessors run aggregate queries over the transaction log; there is
// no stored balance column to read or update.
type WalletRepositoryFacade interface {
	SaveWallet(ctx context.Context, wallet domain.Wallet) error
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)
	ListWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error)
	UpdateWallet(ctx context.Context, wallet domain.Wallet) error
	DeleteWallet(ctx context.Context, walletID string) error

	// GetWalletBalance returns the signed sum of the wallet's transactions,
	// 0 for a wallet with no history.
	GetWalletBalance(ctx context.Context, walletID string) (int64, error)
	// GetTotalBalance returns the sum of all the user's wallet balances.
	GetTotalBalance(ctx context.Context, userID string) (int64, error)
}
