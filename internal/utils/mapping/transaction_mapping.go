package mapping

import (
	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	"github.com/pocketfin/pocket_finance_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		UserID:          d.UserID,
		WalletID:        d.WalletID,
		TransactionDate: d.TransactionDate,
		TransactionType: models.TransactionType(d.TransactionType),
		Category:        d.Category,
		Amount:          d.Amount,
		Note:            d.Note,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		UserID:          m.UserID,
		WalletID:        m.WalletID,
		TransactionDate: m.TransactionDate,
		TransactionType: domain.TransactionType(m.TransactionType),
		Category:        m.Category,
		Amount:          m.Amount,
		Note:            m.Note,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
