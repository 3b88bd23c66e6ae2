package repositories

import (
	"context"
	"time"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
)

// GoalRepositoryFacade defines persistence operations for goals and their
// transactions. The dual-write methods take both sides of the goal⇄wallet
// linkage and persist them inside a single database transaction so a crash
// can never leave one side without the other.
type GoalRepositoryFacade interface {
	SaveGoal(ctx context.Context, goal domain.Goal) error
	FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error)
	ListGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error)
	UpdateGoal(ctx context.Context, goal domain.Goal) error

	// DeleteGoal removes the goal, all its goal transactions, and every wallet
	// transaction linked from those goal transactions, atomically.
	DeleteGoal(ctx context.Context, goalID string) error

	// GetGoalCurrentAmount returns the signed sum of the goal's transactions,
	// 0 for a goal with no history.
	GetGoalCurrentAmount(ctx context.Context, goalID string) (int64, error)

	// SaveGoalTransaction persists the goal transaction and, when linkedTxn is
	// non-nil, the mirrored wallet transaction in the same database transaction.
	SaveGoalTransaction(ctx context.Context, gt domain.GoalTransaction, linkedTxn *domain.Transaction) error

	// UpdateGoalTransaction updates the goal transaction row and, when
	// linkedTxn is non-nil, the mirrored wallet transaction row atomically.
	UpdateGoalTransaction(ctx context.Context, gt domain.GoalTransaction, linkedTxn *domain.Transaction) error

	// DeleteGoalTransaction removes the goal transaction and, when
	// linkedTransactionID is non-nil, the mirrored wallet transaction atomically.
	DeleteGoalTransaction(ctx context.Context, goalTxnID string, linkedTransactionID *string) error

	FindGoalTransactionByID(ctx context.Context, goalTxnID string) (*domain.GoalTransaction, error)
	ListGoalTransactions(ctx context.Context, goalID string) ([]domain.GoalTransaction, error)

	// FindGoalTransactionByTransactionID resolves the goal transaction owning
	// the given linked wallet transaction id.
	FindGoalTransactionByTransactionID(ctx context.Context, transactionID string) (*domain.GoalTransaction, error)

	// FindGoalTransactionByFuzzyMatch resolves legacy rows that predate the
	// transaction_id link: same wallet, same semantic type, created within
	// +-tolerance of the given instant. Best effort only.
	FindGoalTransactionByFuzzyMatch(ctx context.Context, walletID string, gtType domain.GoalTransactionType, around time.Time, tolerance time.Duration) (*domain.GoalTransaction, error)
}
