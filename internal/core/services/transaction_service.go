package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketfin/pocket_finance_backend/internal/apperrors"
	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	portsrepo "github.com/pocketfin/pocket_finance_backend/internal/core/ports/repositories"
	portssvc "github.com/pocketfin/pocket_finance_backend/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_backend/internal/dto"
	"github.com/pocketfin/pocket_finance_backend/internal/middleware"
	"github.com/pocketfin/pocket_finance_backend/internal/utils"
)

// fuzzyLinkTolerance bounds the created_at window used to resolve legacy
// savings transactions that predate the explicit transaction_id link.
const fuzzyLinkTolerance = 10 * time.Second

// ErrReservedCategory rejects direct writes in the reserved savings
// categories; those rows are managed through goal transactions.
var ErrReservedCategory = errors.New("category is reserved for goal savings linkage")

// transactionService provides wallet transaction operations. Amendments and
// deletions of savings-category rows propagate to the linked goal transaction
// so both sides of the linkage stay consistent.
type transactionService struct {
	txnRepo    portsrepo.TransactionRepositoryFacade
	walletRepo portsrepo.WalletRepositoryFacade
	goalRepo   portsrepo.GoalRepositoryFacade
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, walletRepo portsrepo.WalletRepositoryFacade, goalRepo portsrepo.GoalRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:    txnRepo,
		walletRepo: walletRepo,
		goalRepo:   goalRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) findOwnedTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.UserID != userID {
		return nil, notOwnedErr(ctx, "transaction", transactionID, userID)
	}
	return txn, nil
}

// verifyWallet confirms the referenced wallet exists and belongs to the user.
func (s *transactionService) verifyWallet(ctx context.Context, userID string, walletID *string) error {
	if walletID == nil {
		return nil
	}
	wallet, err := s.walletRepo.FindWalletByID(ctx, *walletID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("wallet %s: %w", *walletID, apperrors.ErrValidation)
		}
		return err
	}
	if wallet.UserID != userID {
		return notOwnedErr(ctx, "wallet", *walletID, userID)
	}
	return nil
}

// CreateTransaction records a new income or expense entry. The reserved
// savings categories are rejected here; they only enter the ledger through
// goal transactions.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if domain.IsReservedSavingsCategory(req.Category) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrReservedCategory)
	}
	amount := utils.RoundToMinorUnits(req.Amount)
	if amount < 0 {
		return nil, fmt.Errorf("amount must not be negative: %w", apperrors.ErrValidation)
	}
	if err := s.verifyWallet(ctx, userID, req.WalletID); err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:   utils.NewID(utils.PrefixTransaction),
		UserID:          userID,
		WalletID:        req.WalletID,
		TransactionDate: req.TransactionDate,
		TransactionType: req.TransactionType,
		Category:        req.Category,
		Amount:          amount,
		Note:            req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID))
	return &txn, nil
}

// GetTransactionByID retrieves one of the user's transactions.
func (s *transactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	return s.findOwnedTransaction(ctx, userID, transactionID)
}

// ListTransactions returns the user's transactions filtered by the query
// parameters, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	filter := portsrepo.TransactionListFilter{
		WalletID: params.WalletID,
		From:     params.From,
		To:       params.To,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}
	txns, err := s.txnRepo.ListTransactionsByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// UpdateTransaction applies the provided fields. For savings-category rows
// the amount and note changes are propagated onto the linked goal
// transaction; category, date, and wallet are immutable for those rows.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.findOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	reserved := domain.IsReservedSavingsCategory(txn.Category)
	if req.Category != nil {
		if reserved || domain.IsReservedSavingsCategory(*req.Category) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrReservedCategory)
		}
		txn.Category = *req.Category
	}
	if req.TransactionDate != nil {
		if reserved {
			return nil, fmt.Errorf("transaction date of a savings row is fixed by its goal linkage: %w", apperrors.ErrValidation)
		}
		txn.TransactionDate = *req.TransactionDate
	}
	if req.WalletID != nil {
		if reserved {
			return nil, fmt.Errorf("wallet of a savings row is fixed by its goal linkage: %w", apperrors.ErrValidation)
		}
		if err := s.verifyWallet(ctx, userID, req.WalletID); err != nil {
			return nil, err
		}
		txn.WalletID = req.WalletID
	}
	if req.Amount != nil {
		amount := utils.RoundToMinorUnits(*req.Amount)
		if amount < 0 {
			return nil, fmt.Errorf("amount must not be negative: %w", apperrors.ErrValidation)
		}
		txn.Amount = amount
	}
	if req.Note != nil {
		txn.Note = req.Note
	}
	now := time.Now()
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID

	if !reserved {
		if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
			logger.Error("Failed to update transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
		}
		return txn, nil
	}

	// Savings rows carry a goal transaction counterpart; both rows are
	// amended in one database transaction through the goal repository.
	gt, err := s.resolveLinkedGoalTransaction(ctx, txn)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if gt == nil {
		// Orphaned savings row, nothing to propagate to.
		if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
			return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
		}
		return txn, nil
	}

	if txn.Amount != gt.Amount {
		current, err := s.goalRepo.GetGoalCurrentAmount(ctx, gt.GoalID)
		if err != nil {
			return nil, fmt.Errorf("failed to derive current amount for goal %s: %w", gt.GoalID, err)
		}
		// The balance without this row, then with the amended amount.
		remainder := current - gt.SignedAmount()
		amended := *gt
		amended.Amount = txn.Amount
		if remainder+amended.SignedAmount() < 0 {
			return nil, fmt.Errorf("goal %s would go negative: %w", gt.GoalID, ErrGoalBalanceExceeded)
		}
	}

	gt.Amount = txn.Amount
	gt.Note = txn.Note
	if gt.TransactionID == nil {
		gt.TransactionID = &txn.TransactionID
	}
	gt.LastUpdatedAt = now
	gt.LastUpdatedBy = userID

	if err := s.goalRepo.UpdateGoalTransaction(ctx, *gt, txn); err != nil {
		logger.Error("Failed to propagate savings update", slog.String("transaction_id", transactionID), slog.String("goal_txn_id", gt.GoalTxnID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update savings transaction %s: %w", transactionID, err)
	}

	logger.Info("Savings transaction updated with goal propagation", slog.String("transaction_id", transactionID), slog.String("goal_txn_id", gt.GoalTxnID))
	return txn, nil
}

// DeleteTransaction removes a transaction. Savings-category rows take their
// linked goal transaction with them so goal progress stays truthful.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.findOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return err
	}

	if domain.IsReservedSavingsCategory(txn.Category) {
		gt, err := s.resolveLinkedGoalTransaction(ctx, txn)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if gt != nil {
			if err := s.goalRepo.DeleteGoalTransaction(ctx, gt.GoalTxnID, &txn.TransactionID); err != nil {
				logger.Error("Failed to delete savings pair", slog.String("transaction_id", transactionID), slog.String("goal_txn_id", gt.GoalTxnID), slog.String("error", err.Error()))
				return fmt.Errorf("failed to delete savings transaction %s: %w", transactionID, err)
			}
			logger.Info("Savings transaction deleted with linked goal transaction", slog.String("transaction_id", transactionID), slog.String("goal_txn_id", gt.GoalTxnID))
			return nil
		}
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		logger.Error("Failed to delete transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	return nil
}

// resolveLinkedGoalTransaction finds the goal transaction mirroring a
// savings-category wallet transaction. The explicit transaction_id link wins;
// legacy rows fall back to a fuzzy match on wallet, type, and creation time.
func (s *transactionService) resolveLinkedGoalTransaction(ctx context.Context, txn *domain.Transaction) (*domain.GoalTransaction, error) {
	gt, err := s.goalRepo.FindGoalTransactionByTransactionID(ctx, txn.TransactionID)
	if err == nil {
		return gt, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	gtType, ok := domain.GoalTxnTypeForCategory(txn.Category)
	if !ok || txn.WalletID == nil {
		return nil, apperrors.ErrNotFound
	}
	return s.goalRepo.FindGoalTransactionByFuzzyMatch(ctx, *txn.WalletID, gtType, txn.CreatedAt, fuzzyLinkTolerance)
}
