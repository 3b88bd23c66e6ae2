package mapping

import (
	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	"github.com/pocketfin/pocket_finance_backend/internal/models"
)

// ToModelWallet converts a domain Wallet to a model Wallet
func ToModelWallet(d domain.Wallet) models.Wallet {
	return models.Wallet{
		WalletID:    d.WalletID,
		UserID:      d.UserID,
		Name:        d.Name,
		WalletType:  models.WalletType(d.WalletType),
		Icon:        d.Icon,
		Color:       d.Color,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWallet converts a model Wallet to a domain Wallet. The derived
// balance is filled separately by the caller.
func ToDomainWallet(m models.Wallet) domain.Wallet {
	return domain.Wallet{
		WalletID:    m.WalletID,
		UserID:      m.UserID,
		Name:        m.Name,
		WalletType:  domain.WalletType(m.WalletType),
		Icon:        m.Icon,
		Color:       m.Color,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainWalletSlice converts a slice of model Wallets to domain Wallets
func ToDomainWalletSlice(ms []models.Wallet) []domain.Wallet {
	ds := make([]domain.Wallet, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWallet(m)
	}
	return ds
}
