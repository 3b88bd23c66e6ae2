package domain

// CategoryAmount pairs a category with an aggregated total.
type CategoryAmount struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
}

// DashboardSummary holds the current-month figures shown on the dashboard.
// TotalBalance sums all wallets' derived balances, so it reflects full
// multi-period history rather than just the current month.
type DashboardSummary struct {
	TotalBalance      int64            `json:"totalBalance"`
	TotalIncome       int64            `json:"totalIncome"`
	TotalExpense      int64            `json:"totalExpense"`
	SavingsRate       int              `json:"savingsRate"` // round((income-expense)/income*100), 0 when income is 0
	ExpenseByCategory []CategoryAmount `json:"expenseByCategory"`
	Budgets           []Budget         `json:"budgets"` // Sorted most-consumed first
}

// MonthlyReport holds a full month's aggregates for a requested (month, year).
type MonthlyReport struct {
	Month             int              `json:"month"`
	Year              int              `json:"year"`
	TotalIncome       int64            `json:"totalIncome"`
	TotalExpense      int64            `json:"totalExpense"`
	DailyExpenses     []int64          `json:"dailyExpenses"` // Length = days in month, zero-filled
	ExpenseByCategory []CategoryAmount `json:"expenseByCategory"`
}

// SavingsRate computes round((income-expense)/income*100), or 0 when there is
// no income to rate against.
func SavingsRate(income, expense int64) int {
	if income <= 0 {
		return 0
	}
	return int(roundHalfUp(float64(income-expense) * 100 / float64(income)))
}
