package dto

import (
	"time"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateGoalRequest defines the data needed to create a savings goal.
type CreateGoalRequest struct {
	Name         string          `json:"name" binding:"required"`
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required"`
	Deadline     *time.Time      `json:"deadline"`
	Icon         string          `json:"icon"`
	Color        string          `json:"color"`
}

// UpdateGoalRequest defines the mutable goal fields.
type UpdateGoalRequest struct {
	Name         *string          `json:"name"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
	Deadline     *time.Time       `json:"deadline"`
	Icon         *string          `json:"icon"`
	Color        *string          `json:"color"`
}

// GoalResponse defines the data returned for a goal. CurrentAmount,
// Percentage, and DaysRemaining are derived and never accepted as input.
type GoalResponse struct {
	GoalID        string     `json:"goalID"`
	Name          string     `json:"name"`
	TargetAmount  int64      `json:"targetAmount"`
	Deadline      *time.Time `json:"deadline"`
	Icon          string     `json:"icon"`
	Color         string     `json:"color"`
	CurrentAmount int64      `json:"currentAmount"`
	Percentage    int        `json:"percentage"`
	DaysRemaining *int       `json:"daysRemaining"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
}

// CreateGoalTransactionRequest defines a top-up or withdrawal against a goal.
// When WalletID is set, a mirrored wallet transaction is created as part of
// the same operation.
type CreateGoalTransactionRequest struct {
	GoalTxnType domain.GoalTransactionType `json:"goalTxnType" binding:"required,oneof=TOPUP WITHDRAW"`
	Amount      decimal.Decimal            `json:"amount" binding:"required"`
	Note        *string                    `json:"note"`
	WalletID    *string                    `json:"walletID"`
}

// UpdateGoalTransactionRequest defines the mutable goal transaction fields.
// Only amount and note are mirrored onto the linked wallet transaction.
type UpdateGoalTransactionRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Note   *string          `json:"note"`
}

// GoalTransactionResponse defines the data returned for a goal transaction.
type GoalTransactionResponse struct {
	GoalTxnID     string                     `json:"goalTxnID"`
	GoalID        string                     `json:"goalID"`
	GoalTxnType   domain.GoalTransactionType `json:"goalTxnType"`
	Amount        int64                      `json:"amount"`
	Note          *string                    `json:"note"`
	WalletID      *string                    `json:"walletID"`
	TransactionID *string                    `json:"transactionID"`
	CreatedAt     time.Time                  `json:"createdAt"`
	LastUpdatedAt time.Time                  `json:"lastUpdatedAt"`
}

// ToGoalResponse converts a domain.Goal to GoalResponse DTO.
func ToGoalResponse(g *domain.Goal) GoalResponse {
	return GoalResponse{
		GoalID:        g.GoalID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		Deadline:      g.Deadline,
		Icon:          g.Icon,
		Color:         g.Color,
		CurrentAmount: g.CurrentAmount,
		Percentage:    g.Percentage,
		DaysRemaining: g.DaysRemaining,
		CreatedAt:     g.CreatedAt,
		LastUpdatedAt: g.LastUpdatedAt,
	}
}

// ToListGoalResponse converts a slice of domain goals to response DTOs.
func ToListGoalResponse(goals []domain.Goal) []GoalResponse {
	res := make([]GoalResponse, len(goals))
	for i := range goals {
		res[i] = ToGoalResponse(&goals[i])
	}
	return res
}

// ToGoalTransactionResponse converts a domain.GoalTransaction to its DTO.
func ToGoalTransactionResponse(gt *domain.GoalTransaction) GoalTransactionResponse {
	return GoalTransactionResponse{
		GoalTxnID:     gt.GoalTxnID,
		GoalID:        gt.GoalID,
		GoalTxnType:   gt.GoalTxnType,
		Amount:        gt.Amount,
		Note:          gt.Note,
		WalletID:      gt.WalletID,
		TransactionID: gt.TransactionID,
		CreatedAt:     gt.CreatedAt,
		LastUpdatedAt: gt.LastUpdatedAt,
	}
}

// ToGoalTransactionResponses converts a slice of goal transactions to DTOs.
func ToGoalTransactionResponses(gts []domain.GoalTransaction) []GoalTransactionResponse {
	res := make([]GoalTransactionResponse, len(gts))
	for i := range gts {
		res[i] = ToGoalTransactionResponse(&gts[i])
	}
	return res
}
