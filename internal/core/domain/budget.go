package domain

// Budget holds a monthly spending limit for a single category.
// Spent/Remaining/Percentage are derived from the current calendar month's
// expense transactions at read time and never persisted.
type Budget struct {
	BudgetID     string `json:"budgetID"` // Primary Key (e.g., BGT-1693526400000)
	UserID       string `json:"userID"`   // FK -> users.user_id
	Category     string `json:"category"` // One budget row per category per user
	MonthlyLimit int64  `json:"monthlyLimit"`
	AuditFields
	Spent      int64 `json:"spent"`      // Derived: current-month expenses in Category
	Remaining  int64 `json:"remaining"`  // Derived: MonthlyLimit - Spent (may be negative)
	Percentage int   `json:"percentage"` // Derived: consumption capped at 100 for display
	OverBudget bool  `json:"overBudget"` // Derived: uncapped Spent > MonthlyLimit
}

// DeriveConsumption fills the derived budget fields from the given spent total.
// Percentage is capped at 100 for progress rendering; OverBudget uses the
// uncapped comparison so a 101% budget is still flagged.
func (b *Budget) DeriveConsumption(spent int64) {
	b.Spent = spent
	b.Remaining = b.MonthlyLimit - spent
	b.OverBudget = spent > b.MonthlyLimit
	if b.MonthlyLimit <= 0 {
		b.Percentage = 0
		return
	}
	pct := int(roundHalfUp(float64(spent) * 100 / float64(b.MonthlyLimit)))
	if pct > 100 {
		pct = 100
	}
	b.Percentage = pct
}

// UncappedPercentage reports consumption without the display cap.
func (b Budget) UncappedPercentage() int {
	if b.MonthlyLimit <= 0 {
		return 0
	}
	return int(roundHalfUp(float64(b.Spent) * 100 / float64(b.MonthlyLimit)))
}

func roundHalfUp(v float64) int64 {
	if v < 0 {
		return -int64(-v + 0.5)
	}
	return int64(v + 0.5)
}
