package services

import (
	"context"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	"github.com/pocketfin/pocket_finance_backend/internal/dto"
)

// TransactionSvcFacade defines the transaction operations exposed to handlers.
// Updates and deletes of reserved-savings-category transactions propagate to
// the linked goal transaction.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, error)
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}
