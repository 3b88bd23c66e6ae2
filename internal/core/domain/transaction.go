package domain

import "time"

// TransactionType indicates whether a transaction adds to or subtracts from a wallet.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Reserved system categories. Transactions in these categories mirror goal
// activity and must stay synchronized with their goal transaction counterpart.
const (
	CategorySavings           = "Savings"
	CategorySavingsWithdrawal = "Savings Withdrawal"
)

// IsReservedSavingsCategory reports whether a category belongs to the goal
// linkage machinery rather than to the user.
func IsReservedSavingsCategory(category string) bool {
	return category == CategorySavings || category == CategorySavingsWithdrawal
}

// Transaction represents a single income or expense entry.
// Amounts are non-negative integers in minor currency units; the sign is
// carried by TransactionType.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (e.g., TXN-1693526400000)
	UserID          string          `json:"userID"`        // FK -> users.user_id
	WalletID        *string         `json:"walletID"`      // Nullable FK -> wallets.wallet_id
	TransactionDate time.Time       `json:"transactionDate"`
	TransactionType TransactionType `json:"transactionType"` // INCOME or EXPENSE
	Category        string          `json:"category"`
	Amount          int64           `json:"amount"` // Non-negative, minor units
	Note            *string         `json:"note"`   // Nullable
	AuditFields
}

// SignedAmount returns the amount with the sign implied by the transaction
// type: positive for income, negative for expense.
func (t Transaction) SignedAmount() int64 {
	if t.TransactionType == Expense {
		return -t.Amount
	}
	return t.Amount
}
