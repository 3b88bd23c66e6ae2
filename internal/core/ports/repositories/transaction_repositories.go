package repositories

import (
	"context"
	"time"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
)

// TransactionListFilter narrows a transaction listing. Zero-value fields are
// ignored; Limit <= 0 falls back to the repository default.
type TransactionListFilter struct {
	WalletID *string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// TransactionRepositoryFacade defines persistence operations for wallet
// transactions. Pure CRUD plus filtered listing; linkage rules live in the
// services layer.
type TransactionRepositoryFacade interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactionsByUser(ctx context.Context, userID string, filter TransactionListFilter) ([]domain.Transaction, error)
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, transactionID string) error
}
