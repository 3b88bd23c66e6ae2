package mapping

import (
	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	"github.com/pocketfin/pocket_finance_backend/internal/models"
)

// ToModelGoal converts a domain Goal to a model Goal
func ToModelGoal(d domain.Goal) models.Goal {
	return models.Goal{
		GoalID:       d.GoalID,
		UserID:       d.UserID,
		Name:         d.Name,
		TargetAmount: d.TargetAmount,
		Deadline:     d.Deadline,
		Icon:         d.Icon,
		Color:        d.Color,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGoal converts a model Goal to a domain Goal. Derived progress
// fields are filled separately by the caller.
func ToDomainGoal(m models.Goal) domain.Goal {
	return domain.Goal{
		GoalID:       m.GoalID,
		UserID:       m.UserID,
		Name:         m.Name,
		TargetAmount: m.TargetAmount,
		Deadline:     m.Deadline,
		Icon:         m.Icon,
		Color:        m.Color,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainGoalSlice converts model Goals to domain Goals
func ToDomainGoalSlice(ms []models.Goal) []domain.Goal {
	ds := make([]domain.Goal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGoal(m)
	}
	return ds
}

// ToModelGoalTransaction converts a domain GoalTransaction to its model
func ToModelGoalTransaction(d domain.GoalTransaction) models.GoalTransaction {
	return models.GoalTransaction{
		GoalTxnID:     d.GoalTxnID,
		GoalID:        d.GoalID,
		GoalTxnType:   models.GoalTransactionType(d.GoalTxnType),
		Amount:        d.Amount,
		Note:          d.Note,
		WalletID:      d.WalletID,
		TransactionID: d.TransactionID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGoalTransaction converts a model GoalTransaction to its domain form
func ToDomainGoalTransaction(m models.GoalTransaction) domain.GoalTransaction {
	return domain.GoalTransaction{
		GoalTxnID:     m.GoalTxnID,
		GoalID:        m.GoalID,
		GoalTxnType:   domain.GoalTransactionType(m.GoalTxnType),
		Amount:        m.Amount,
		Note:          m.Note,
		WalletID:      m.WalletID,
		TransactionID: m.TransactionID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainGoalTransactionSlice converts model GoalTransactions to domain form
func ToDomainGoalTransactionSlice(ms []models.GoalTransaction) []domain.GoalTransaction {
	ds := make([]domain.GoalTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGoalTransaction(m)
	}
	return ds
}
