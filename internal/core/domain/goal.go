package domain

import (
	"math"
	"time"
)

// Goal represents a savings goal. CurrentAmount is never stored; it is the
// signed sum of the goal's transactions (topup adds, withdraw subtracts).
type Goal struct {
	GoalID       string     `json:"goalID"` // Primary Key (e.g., GOL-1693526400000)
	UserID       string     `json:"userID"` // FK -> users.user_id
	Name         string     `json:"name"`
	TargetAmount int64      `json:"targetAmount"`
	Deadline     *time.Time `json:"deadline"` // Nullable target date
	Icon         string     `json:"icon"`
	Color        string     `json:"color"`
	AuditFields
	CurrentAmount int64 `json:"currentAmount"` // Derived at read time
	Percentage    int   `json:"percentage"`    // Derived: min(100, round(current/target*100))
	DaysRemaining *int  `json:"daysRemaining"` // Derived: ceil days until deadline, nil when no deadline
}

// DeriveProgress fills the derived goal fields from the given current amount
// relative to now.
func (g *Goal) DeriveProgress(current int64, now time.Time) {
	g.CurrentAmount = current
	g.Percentage = goalPercentage(current, g.TargetAmount)
	g.DaysRemaining = daysRemaining(g.Deadline, now)
}

func goalPercentage(current, target int64) int {
	if target <= 0 {
		return 0
	}
	pct := int(roundHalfUp(float64(current) * 100 / float64(target)))
	if pct > 100 {
		pct = 100
	}
	return pct
}

func daysRemaining(deadline *time.Time, now time.Time) *int {
	if deadline == nil {
		return nil
	}
	days := int(math.Ceil(deadline.Sub(now).Hours() / 24))
	return &days
}
