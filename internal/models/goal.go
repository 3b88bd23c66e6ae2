package models

import "time"

// Goal represents a row of the goals table. There is no current_amount
// column; the current amount is derived from goal_transactions.
type Goal struct {
	GoalID       string     `db:"goal_id"`
	UserID       string     `db:"user_id"`
	Name         string     `db:"name"`
	TargetAmount int64      `db:"target_amount"`
	Deadline     *time.Time `db:"deadline"` // Nullable
	Icon         string     `db:"icon"`
	Color        string     `db:"color"`
	AuditFields
}

// GoalTransactionType indicates a top-up or a withdrawal.
type GoalTransactionType string

const (
	TopUp    GoalTransactionType = "TOPUP"
	Withdraw GoalTransactionType = "WITHDRAW"
)

// GoalTransaction represents a row of the goal_transactions table.
// TransactionID links the mirrored wallet transaction when one exists.
type GoalTransaction struct {
	GoalTxnID     string              `db:"goal_txn_id"`
	GoalID        string              `db:"goal_id"`
	GoalTxnType   GoalTransactionType `db:"goal_txn_type"`
	Amount        int64               `db:"amount"`
	Note          *string             `db:"note"`           // Nullable
	WalletID      *string             `db:"wallet_id"`      // Nullable
	TransactionID *string             `db:"transaction_id"` // Nullable
	AuditFields
}
