package services

import (
	"context"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	"github.com/pocketfin/pocket_finance_backend/internal/dto"
)

// GoalSvcFacade defines the goal and goal transaction operations exposed to
// handlers. Goal transactions with a wallet create, amend, and delete their
// mirrored wallet transaction as part of the same operation.
type GoalSvcFacade interface {
	CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, error)
	GetGoalByID(ctx context.Context, userID string, goalID string) (*domain.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]domain.Goal, error)
	UpdateGoal(ctx context.Context, userID string, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, userID string, goalID string) error

	CreateGoalTransaction(ctx context.Context, userID string, goalID string, req dto.CreateGoalTransactionRequest) (*domain.GoalTransaction, error)
	ListGoalTransactions(ctx context.Context, userID string, goalID string) ([]domain.GoalTransaction, error)
	UpdateGoalTransaction(ctx context.Context, userID string, goalID string, goalTxnID string, req dto.UpdateGoalTransactionRequest) (*domain.GoalTransaction, error)
	DeleteGoalTransaction(ctx context.Context, userID string, goalID string, goalTxnID string) error
}
