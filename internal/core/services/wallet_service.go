package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	portsrepo "github.com/pocketfin/pocket_finance_backend/internal/core/ports/repositories"
	portssvc "github.com/pocketfin/pocket_finance_backend/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_backend/internal/dto"
	"github.com/pocketfin/pocket_finance_backend/internal/middleware"
	"github.com/pocketfin/pocket_finance_backend/internal/utils"
)

// walletService provides wallet operations with read-time balance derivation.
type walletService struct {
	walletRepo portsrepo.WalletRepositoryFacade
}

// NewWalletService creates a new WalletService.
func NewWalletService(walletRepo portsrepo.WalletRepositoryFacade) portssvc.WalletSvcFacade {
	return &walletService{walletRepo: walletRepo}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// findOwnedWallet loads the wallet and verifies ownership.
func (s *walletService) findOwnedWallet(ctx context.Context, userID, walletID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.UserID != userID {
		return nil, notOwnedErr(ctx, "wallet", walletID, userID)
	}
	return wallet, nil
}

// CreateWallet creates a new wallet for the user. New wallets start with a
// zero derived balance.
func (s *walletService) CreateWallet(ctx context.Context, userID string, req dto.CreateWalletRequest) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	wallet := domain.Wallet{
		WalletID:   utils.NewID(utils.PrefixWallet),
		UserID:     userID,
		Name:       req.Name,
		WalletType: req.WalletType,
		Icon:       req.Icon,
		Color:      req.Color,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.walletRepo.SaveWallet(ctx, wallet); err != nil {
		logger.Error("Failed to save wallet", slog.String("wallet_id", wallet.WalletID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	logger.Info("Wallet created", slog.String("wallet_id", wallet.WalletID))
	return &wallet, nil
}

// GetWalletByID returns the wallet with its derived balance.
func (s *walletService) GetWalletByID(ctx context.Context, userID string, walletID string) (*domain.Wallet, error) {
	wallet, err := s.findOwnedWallet(ctx, userID, walletID)
	if err != nil {
		return nil, err
	}

	balance, err := s.walletRepo.GetWalletBalance(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive balance for wallet %s: %w", walletID, err)
	}
	wallet.Balance = balance
	return wallet, nil
}

// ListWallets returns all the user's wallets, each with its derived balance.
func (s *walletService) ListWallets(ctx context.Context, userID string) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.ListWalletsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}

	for i := range wallets {
		balance, err := s.walletRepo.GetWalletBalance(ctx, wallets[i].WalletID)
		if err != nil {
			return nil, fmt.Errorf("failed to derive balance for wallet %s: %w", wallets[i].WalletID, err)
		}
		wallets[i].Balance = balance
	}

	if wallets == nil {
		return []domain.Wallet{}, nil
	}
	return wallets, nil
}

// UpdateWallet applies the provided fields and returns the updated wallet
// with its derived balance.
func (s *walletService) UpdateWallet(ctx context.Context, userID string, walletID string, req dto.UpdateWalletRequest) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	wallet, err := s.findOwnedWallet(ctx, userID, walletID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		wallet.Name = *req.Name
	}
	if req.WalletType != nil {
		wallet.WalletType = *req.WalletType
	}
	if req.Icon != nil {
		wallet.Icon = *req.Icon
	}
	if req.Color != nil {
		wallet.Color = *req.Color
	}
	wallet.LastUpdatedAt = time.Now()
	wallet.LastUpdatedBy = userID

	if err := s.walletRepo.UpdateWallet(ctx, *wallet); err != nil {
		logger.Error("Failed to update wallet", slog.String("wallet_id", walletID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update wallet %s: %w", walletID, err)
	}

	balance, err := s.walletRepo.GetWalletBalance(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive balance for wallet %s: %w", walletID, err)
	}
	wallet.Balance = balance
	return wallet, nil
}

// DeleteWallet removes the wallet. Transactions referencing it keep existing
// with a null wallet reference, so overall history is preserved.
func (s *walletService) DeleteWallet(ctx context.Context, userID string, walletID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwnedWallet(ctx, userID, walletID); err != nil {
		return err
	}

	if err := s.walletRepo.DeleteWallet(ctx, walletID); err != nil {
		logger.Error("Failed to delete wallet", slog.String("wallet_id", walletID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete wallet %s: %w", walletID, err)
	}

	logger.Info("Wallet deleted", slog.String("wallet_id", walletID))
	return nil
}
