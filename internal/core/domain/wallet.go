package domain

// WalletType defines the kind of wallet an amount of money lives in.
type WalletType string

const (
	WalletCash    WalletType = "CASH"
	WalletBank    WalletType = "BANK"
	WalletEWallet WalletType = "EWALLET"
	WalletOther   WalletType = "OTHER"
)

// Wallet represents a container of funds within the core domain.
// Its balance is never stored; it is derived by summing the signed amounts
// of all transactions referencing the wallet (income adds, expense subtracts).
type Wallet struct {
	WalletID   string     `json:"walletID"` // Primary Key (e.g., WLT-1693526400000)
	UserID     string     `json:"userID"`   // FK -> users.user_id
	Name       string     `json:"name"`     // User-defined display name
	WalletType WalletType `json:"walletType"`
	Icon       string     `json:"icon"`  // Nullable display icon
	Color      string     `json:"color"` // Nullable display color
	AuditFields
	Balance int64 `json:"balance"` // Derived at read time, minor currency units
}
