package models

import "time"

// TransactionType indicates income or expense.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Transaction represents a row of the transactions table.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	UserID          string          `db:"user_id"`
	WalletID        *string         `db:"wallet_id"` // Nullable
	TransactionDate time.Time       `db:"transaction_date"`
	TransactionType TransactionType `db:"transaction_type"`
	Category        string          `db:"category"`
	Amount          int64           `db:"amount"` // Minor units, non-negative
	Note            *string         `db:"note"`   // Nullable
	AuditFields
}
