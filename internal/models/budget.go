package models

// Budget represents a row of the budgets table. Derived consumption fields
// are computed at read time and never stored.
type Budget struct {
	BudgetID     string `db:"budget_id"`
	UserID       string `db:"user_id"`
	Category     string `db:"category"`
	MonthlyLimit int64  `db:"monthly_limit"`
	AuditFields
}
