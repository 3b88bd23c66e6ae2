package models

// WalletType defines the kind of wallet.
type WalletType string

const (
	WalletCash    WalletType = "CASH"
	WalletBank    WalletType = "BANK"
	WalletEWallet WalletType = "EWALLET"
	WalletOther   WalletType = "OTHER"
)

// Wallet represents a row of the wallets table. There is no balance column;
// balances are derived from the transactions table.
type Wallet struct {
	WalletID   string     `db:"wallet_id"`
	UserID     string     `db:"user_id"`
	Name       string     `db:"name"`
	WalletType WalletType `db:"wallet_type"`
	Icon       string     `db:"icon"`
	Color      string     `db:"color"`
	AuditFields
}
