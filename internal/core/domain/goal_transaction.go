package domain

// GoalTransactionType indicates the direction of a goal transaction.
type GoalTransactionType string

const (
	TopUp    GoalTransactionType = "TOPUP"
	Withdraw GoalTransactionType = "WITHDRAW"
)

// GoalTransaction represents a top-up or withdrawal against a goal.
// When WalletID is set, a mirrored wallet Transaction exists and its id is
// carried in TransactionID; amount/note changes and deletion must be applied
// to both sides together.
type GoalTransaction struct {
	GoalTxnID     string              `json:"goalTxnID"` // Primary Key (e.g., GTX-1693526400000)
	GoalID        string              `json:"goalID"`    // FK -> goals.goal_id
	GoalTxnType   GoalTransactionType `json:"goalTxnType"`
	Amount        int64               `json:"amount"`        // Non-negative, minor units
	Note          *string             `json:"note"`          // Nullable
	WalletID      *string             `json:"walletID"`      // Nullable: wallet funds moved from/to
	TransactionID *string             `json:"transactionID"` // Nullable: linked wallet transaction
	AuditFields
}

// SignedAmount returns the amount with the sign implied by the goal
// transaction type: positive for top-ups, negative for withdrawals.
func (g GoalTransaction) SignedAmount() int64 {
	if g.GoalTxnType == Withdraw {
		return -g.Amount
	}
	return g.Amount
}

// MirrorTransactionType maps a goal transaction type onto the wallet
// transaction type of its linked transaction: a top-up takes money out of the
// wallet (expense), a withdrawal puts it back (income).
func (g GoalTransaction) MirrorTransactionType() TransactionType {
	if g.GoalTxnType == Withdraw {
		return Income
	}
	return Expense
}

// MirrorCategory maps a goal transaction type onto the reserved category of
// its linked wallet transaction.
func (g GoalTransaction) MirrorCategory() string {
	if g.GoalTxnType == Withdraw {
		return CategorySavingsWithdrawal
	}
	return CategorySavings
}

// GoalTxnTypeForCategory resolves the goal transaction type implied by a
// reserved savings category. The second return is false for any other category.
func GoalTxnTypeForCategory(category string) (GoalTransactionType, bool) {
	switch category {
	case CategorySavings:
		return TopUp, true
	case CategorySavingsWithdrawal:
		return Withdraw, true
	default:
		return "", false
	}
}
