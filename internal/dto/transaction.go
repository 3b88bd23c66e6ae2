package dto

import (
	"time"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to create a transaction.
// Amount is accepted as a decimal and rounded to integer minor units before
// persistence.
type CreateTransactionRequest struct {
	TransactionDate time.Time              `json:"transactionDate" binding:"required"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=INCOME EXPENSE"`
	Category        string                 `json:"category" binding:"required"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	Note            *string                `json:"note"`
	WalletID        *string                `json:"walletID"`
}

// UpdateTransactionRequest defines the mutable transaction fields. Identity
// and type are immutable; pointers distinguish omitted fields.
type UpdateTransactionRequest struct {
	TransactionDate *time.Time       `json:"transactionDate"`
	Category        *string          `json:"category"`
	Amount          *decimal.Decimal `json:"amount"`
	Note            *string          `json:"note"`
	WalletID        *string          `json:"walletID"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit    int        `form:"limit,default=20"`
	Offset   int        `form:"offset,default=0"`
	WalletID *string    `form:"walletID"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	WalletID        *string                `json:"walletID"`
	TransactionDate time.Time              `json:"transactionDate"`
	TransactionType domain.TransactionType `json:"transactionType"`
	Category        string                 `json:"category"`
	Amount          int64                  `json:"amount"`
	Note            *string                `json:"note"`
	CreatedAt       time.Time              `json:"createdAt"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		WalletID:        t.WalletID,
		TransactionDate: t.TransactionDate,
		TransactionType: t.TransactionType,
		Category:        t.Category,
		Amount:          t.Amount,
		Note:            t.Note,
		CreatedAt:       t.CreatedAt,
		LastUpdatedAt:   t.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
