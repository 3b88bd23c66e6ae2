package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
)

func TestGoalDeriveProgress(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		target         int64
		current        int64
		wantPercentage int
	}{
		{name: "empty goal", target: 150000, current: 0, wantPercentage: 0},
		{name: "halfway", target: 150000, current: 75000, wantPercentage: 50},
		{name: "rounds half up", target: 150000, current: 2250, wantPercentage: 2},
		{name: "complete", target: 150000, current: 150000, wantPercentage: 100},
		{name: "overfunded caps at 100", target: 150000, current: 200000, wantPercentage: 100},
		{name: "net negative history", target: 150000, current: -500, wantPercentage: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := domain.Goal{TargetAmount: tt.target}
			g.DeriveProgress(tt.current, now)

			assert.Equal(t, tt.current, g.CurrentAmount)
			assert.Equal(t, tt.wantPercentage, g.Percentage)
			assert.Nil(t, g.DaysRemaining)
		})
	}
}

func TestGoalDaysRemaining(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	deadline := now.Add(72 * time.Hour)
	g := domain.Goal{TargetAmount: 100, Deadline: &deadline}
	g.DeriveProgress(0, now)
	require.NotNil(t, g.DaysRemaining)
	assert.Equal(t, 3, *g.DaysRemaining)

	// A partial day still counts as a remaining day.
	closeDeadline := now.Add(6 * time.Hour)
	g = domain.Goal{TargetAmount: 100, Deadline: &closeDeadline}
	g.DeriveProgress(0, now)
	require.NotNil(t, g.DaysRemaining)
	assert.Equal(t, 1, *g.DaysRemaining)

	// Past deadlines go negative rather than clamping, so callers can tell
	// how overdue a goal is.
	passed := now.Add(-48 * time.Hour)
	g = domain.Goal{TargetAmount: 100, Deadline: &passed}
	g.DeriveProgress(0, now)
	require.NotNil(t, g.DaysRemaining)
	assert.Equal(t, -2, *g.DaysRemaining)
}

func TestGoalTransactionSignedAmount(t *testing.T) {
	topup := domain.GoalTransaction{GoalTxnType: domain.TopUp, Amount: 5000}
	withdraw := domain.GoalTransaction{GoalTxnType: domain.Withdraw, Amount: 5000}

	assert.Equal(t, int64(5000), topup.SignedAmount())
	assert.Equal(t, int64(-5000), withdraw.SignedAmount())
}

func TestGoalTransactionMirrors(t *testing.T) {
	topup := domain.GoalTransaction{GoalTxnType: domain.TopUp}
	withdraw := domain.GoalTransaction{GoalTxnType: domain.Withdraw}

	assert.Equal(t, domain.Expense, topup.MirrorTransactionType())
	assert.Equal(t, domain.CategorySavings, topup.MirrorCategory())
	assert.Equal(t, domain.Income, withdraw.MirrorTransactionType())
	assert.Equal(t, domain.CategorySavingsWithdrawal, withdraw.MirrorCategory())
}

func TestGoalTxnTypeForCategory(t *testing.T) {
	gtType, ok := domain.GoalTxnTypeForCategory(domain.CategorySavings)
	require.True(t, ok)
	assert.Equal(t, domain.TopUp, gtType)

	gtType, ok = domain.GoalTxnTypeForCategory(domain.CategorySavingsWithdrawal)
	require.True(t, ok)
	assert.Equal(t, domain.Withdraw, gtType)

	_, ok = domain.GoalTxnTypeForCategory("Groceries")
	assert.False(t, ok)
}
