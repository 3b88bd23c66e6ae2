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

// ErrGoalBalanceExceeded rejects a withdrawal larger than the goal's derived
// current amount. Nothing is written when this fires.
var ErrGoalBalanceExceeded = errors.New("withdrawal exceeds goal balance")

// goalService provides savings goal operations, including the dual-write
// linkage between goal transactions and their mirrored wallet transactions.
type goalService struct {
	goalRepo   portsrepo.GoalRepositoryFacade
	walletRepo portsrepo.WalletRepositoryFacade
}

// NewGoalService creates a new GoalService.
func NewGoalService(goalRepo portsrepo.GoalRepositoryFacade, walletRepo portsrepo.WalletRepositoryFacade) portssvc.GoalSvcFacade {
	return &goalService{goalRepo: goalRepo, walletRepo: walletRepo}
}

var _ portssvc.GoalSvcFacade = (*goalService)(nil)

func (s *goalService) findOwnedGoal(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, notOwnedErr(ctx, "goal", goalID, userID)
	}
	return goal, nil
}

// deriveGoal fills the goal's derived progress fields.
func (s *goalService) deriveGoal(ctx context.Context, goal *domain.Goal, now time.Time) error {
	current, err := s.goalRepo.GetGoalCurrentAmount(ctx, goal.GoalID)
	if err != nil {
		return fmt.Errorf("failed to derive current amount for goal %s: %w", goal.GoalID, err)
	}
	goal.DeriveProgress(current, now)
	return nil
}

// CreateGoal creates a new savings goal with zero progress.
func (s *goalService) CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	target := utils.RoundToMinorUnits(req.TargetAmount)
	if target <= 0 {
		return nil, fmt.Errorf("target amount must be positive: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	goal := domain.Goal{
		GoalID:       utils.NewID(utils.PrefixGoal),
		UserID:       userID,
		Name:         req.Name,
		TargetAmount: target,
		Deadline:     req.Deadline,
		Icon:         req.Icon,
		Color:        req.Color,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		logger.Error("Failed to save goal", slog.String("goal_id", goal.GoalID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	goal.DeriveProgress(0, now)
	logger.Info("Goal created", slog.String("goal_id", goal.GoalID))
	return &goal, nil
}

// GetGoalByID returns the goal with its derived progress.
func (s *goalService) GetGoalByID(ctx context.Context, userID string, goalID string) (*domain.Goal, error) {
	goal, err := s.findOwnedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if err := s.deriveGoal(ctx, goal, time.Now()); err != nil {
		return nil, err
	}
	return goal, nil
}

// ListGoals returns all the user's goals with derived progress.
func (s *goalService) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	goals, err := s.goalRepo.ListGoalsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	now := time.Now()
	for i := range goals {
		if err := s.deriveGoal(ctx, &goals[i], now); err != nil {
			return nil, err
		}
	}
	if goals == nil {
		return []domain.Goal{}, nil
	}
	return goals, nil
}

// UpdateGoal applies the provided fields and returns the goal with derived
// progress recomputed against the possibly-changed target.
func (s *goalService) UpdateGoal(ctx context.Context, userID string, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	goal, err := s.findOwnedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		goal.Name = *req.Name
	}
	if req.TargetAmount != nil {
		target := utils.RoundToMinorUnits(*req.TargetAmount)
		if target <= 0 {
			return nil, fmt.Errorf("target amount must be positive: %w", apperrors.ErrValidation)
		}
		goal.TargetAmount = target
	}
	if req.Deadline != nil {
		goal.Deadline = req.Deadline
	}
	if req.Icon != nil {
		goal.Icon = *req.Icon
	}
	if req.Color != nil {
		goal.Color = *req.Color
	}
	goal.LastUpdatedAt = time.Now()
	goal.LastUpdatedBy = userID

	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		logger.Error("Failed to update goal", slog.String("goal_id", goalID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update goal %s: %w", goalID, err)
	}

	if err := s.deriveGoal(ctx, goal, time.Now()); err != nil {
		return nil, err
	}
	return goal, nil
}

// DeleteGoal removes the goal together with its transaction history and every
// linked wallet transaction, all in one database transaction.
func (s *goalService) DeleteGoal(ctx context.Context, userID string, goalID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwnedGoal(ctx, userID, goalID); err != nil {
		return err
	}

	if err := s.goalRepo.DeleteGoal(ctx, goalID); err != nil {
		logger.Error("Failed to delete goal", slog.String("goal_id", goalID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete goal %s: %w", goalID, err)
	}

	logger.Info("Goal deleted with transaction history", slog.String("goal_id", goalID))
	return nil
}

// CreateGoalTransaction records a top-up or withdrawal. A withdrawal larger
// than the derived current amount is rejected before anything is written.
// When a wallet is given, the mirrored wallet transaction is created in the
// same database transaction and the two rows reference each other.
func (s *goalService) CreateGoalTransaction(ctx context.Context, userID string, goalID string, req dto.CreateGoalTransactionRequest) (*domain.GoalTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	goal, err := s.findOwnedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	amount := utils.RoundToMinorUnits(req.Amount)
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
	}

	if req.GoalTxnType == domain.Withdraw {
		current, err := s.goalRepo.GetGoalCurrentAmount(ctx, goalID)
		if err != nil {
			return nil, fmt.Errorf("failed to derive current amount for goal %s: %w", goalID, err)
		}
		if amount > current {
			return nil, fmt.Errorf("goal %s holds %d: %w", goalID, current, ErrGoalBalanceExceeded)
		}
	}

	if req.WalletID != nil {
		wallet, err := s.walletRepo.FindWalletByID(ctx, *req.WalletID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("wallet %s: %w", *req.WalletID, apperrors.ErrValidation)
			}
			return nil, err
		}
		if wallet.UserID != userID {
			return nil, notOwnedErr(ctx, "wallet", *req.WalletID, userID)
		}
	}

	now := time.Now()
	gt := domain.GoalTransaction{
		GoalTxnID:   utils.NewID(utils.PrefixGoalTransaction),
		GoalID:      goal.GoalID,
		GoalTxnType: req.GoalTxnType,
		Amount:      amount,
		Note:        req.Note,
		WalletID:    req.WalletID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	var linkedTxn *domain.Transaction
	if req.WalletID != nil {
		note := goalMirrorNote(goal.Name, req.Note)
		linkedTxn = &domain.Transaction{
			TransactionID:   utils.NewID(utils.PrefixTransaction),
			UserID:          userID,
			WalletID:        req.WalletID,
			TransactionDate: now,
			TransactionType: gt.MirrorTransactionType(),
			Category:        gt.MirrorCategory(),
			Amount:          amount,
			Note:            note,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		gt.TransactionID = &linkedTxn.TransactionID
	}

	if err := s.goalRepo.SaveGoalTransaction(ctx, gt, linkedTxn); err != nil {
		logger.Error("Failed to save goal transaction", slog.String("goal_txn_id", gt.GoalTxnID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create goal transaction: %w", err)
	}

	logger.Info("Goal transaction created",
		slog.String("goal_txn_id", gt.GoalTxnID),
		slog.String("goal_id", goalID),
		slog.Bool("wallet_linked", linkedTxn != nil),
	)
	return &gt, nil
}

// ListGoalTransactions returns the goal's transaction history, newest first.
func (s *goalService) ListGoalTransactions(ctx context.Context, userID string, goalID string) ([]domain.GoalTransaction, error) {
	if _, err := s.findOwnedGoal(ctx, userID, goalID); err != nil {
		return nil, err
	}
	gts, err := s.goalRepo.ListGoalTransactions(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goal transactions for goal %s: %w", goalID, err)
	}
	if gts == nil {
		return []domain.GoalTransaction{}, nil
	}
	return gts, nil
}

// UpdateGoalTransaction amends the amount or note. When a linked wallet
// transaction exists, both rows are amended in one database transaction. A
// withdrawal amendment that would push the goal below zero is rejected.
func (s *goalService) UpdateGoalTransaction(ctx context.Context, userID string, goalID string, goalTxnID string, req dto.UpdateGoalTransactionRequest) (*domain.GoalTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwnedGoal(ctx, userID, goalID); err != nil {
		return nil, err
	}
	gt, err := s.goalRepo.FindGoalTransactionByID(ctx, goalTxnID)
	if err != nil {
		return nil, err
	}
	if gt.GoalID != goalID {
		return nil, notOwnedErr(ctx, "goal transaction", goalTxnID, userID)
	}

	if req.Amount != nil {
		amount := utils.RoundToMinorUnits(*req.Amount)
		if amount <= 0 {
			return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
		}
		current, err := s.goalRepo.GetGoalCurrentAmount(ctx, goalID)
		if err != nil {
			return nil, fmt.Errorf("failed to derive current amount for goal %s: %w", goalID, err)
		}
		// The balance without this row, then with the amended amount.
		remainder := current - gt.SignedAmount()
		amended := *gt
		amended.Amount = amount
		if remainder+amended.SignedAmount() < 0 {
			return nil, fmt.Errorf("goal %s would go negative: %w", goalID, ErrGoalBalanceExceeded)
		}
		gt.Amount = amount
	}
	if req.Note != nil {
		gt.Note = req.Note
	}
	gt.LastUpdatedAt = time.Now()
	gt.LastUpdatedBy = userID

	linkedTxn := s.mirrorForUpdate(gt, userID)

	if err := s.goalRepo.UpdateGoalTransaction(ctx, *gt, linkedTxn); err != nil {
		logger.Error("Failed to update goal transaction", slog.String("goal_txn_id", goalTxnID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update goal transaction %s: %w", goalTxnID, err)
	}

	logger.Info("Goal transaction updated", slog.String("goal_txn_id", goalTxnID), slog.Bool("wallet_linked", linkedTxn != nil))
	return gt, nil
}

// mirrorForUpdate builds the wallet-side row carrying the amended amount and
// note, or nil when the goal transaction has no linked wallet transaction.
func (s *goalService) mirrorForUpdate(gt *domain.GoalTransaction, userID string) *domain.Transaction {
	if gt.TransactionID == nil {
		return nil
	}
	return &domain.Transaction{
		TransactionID: *gt.TransactionID,
		UserID:        userID,
		Amount:        gt.Amount,
		Note:          gt.Note,
		AuditFields: domain.AuditFields{
			LastUpdatedAt: gt.LastUpdatedAt,
			LastUpdatedBy: userID,
		},
	}
}

// DeleteGoalTransaction removes the goal transaction and its linked wallet
// transaction, when one exists, in one database transaction.
func (s *goalService) DeleteGoalTransaction(ctx context.Context, userID string, goalID string, goalTxnID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwnedGoal(ctx, userID, goalID); err != nil {
		return err
	}
	gt, err := s.goalRepo.FindGoalTransactionByID(ctx, goalTxnID)
	if err != nil {
		return err
	}
	if gt.GoalID != goalID {
		return notOwnedErr(ctx, "goal transaction", goalTxnID, userID)
	}

	if err := s.goalRepo.DeleteGoalTransaction(ctx, goalTxnID, gt.TransactionID); err != nil {
		logger.Error("Failed to delete goal transaction", slog.String("goal_txn_id", goalTxnID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete goal transaction %s: %w", goalTxnID, err)
	}

	logger.Info("Goal transaction deleted", slog.String("goal_txn_id", goalTxnID), slog.Bool("wallet_linked", gt.TransactionID != nil))
	return nil
}

// goalMirrorNote composes the note stored on the mirrored wallet transaction.
func goalMirrorNote(goalName string, note *string) *string {
	n := goalName
	if note != nil && *note != "" {
		n = goalName + ": " + *note
	}
	return &n
}
