package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
)

func TestBudgetDeriveConsumption(t *testing.T) {
	tests := []struct {
		name           string
		limit          int64
		spent          int64
		wantRemaining  int64
		wantPercentage int
		wantOverBudget bool
	}{
		{name: "untouched", limit: 50000, spent: 0, wantRemaining: 50000, wantPercentage: 0, wantOverBudget: false},
		{name: "partial", limit: 50000, spent: 12500, wantRemaining: 37500, wantPercentage: 25, wantOverBudget: false},
		{name: "rounds half up", limit: 40000, spent: 10100, wantRemaining: 29900, wantPercentage: 25, wantOverBudget: false},
		{name: "exactly at limit", limit: 50000, spent: 50000, wantRemaining: 0, wantPercentage: 100, wantOverBudget: false},
		{name: "one over limit", limit: 50000, spent: 50001, wantRemaining: -1, wantPercentage: 100, wantOverBudget: true},
		{name: "far over limit caps display", limit: 10000, spent: 18000, wantRemaining: -8000, wantPercentage: 100, wantOverBudget: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := domain.Budget{MonthlyLimit: tt.limit}
			b.DeriveConsumption(tt.spent)

			assert.Equal(t, tt.spent, b.Spent)
			assert.Equal(t, tt.wantRemaining, b.Remaining)
			assert.Equal(t, tt.wantPercentage, b.Percentage)
			assert.Equal(t, tt.wantOverBudget, b.OverBudget)
		})
	}
}

func TestBudgetUncappedPercentage(t *testing.T) {
	b := domain.Budget{MonthlyLimit: 10000}
	b.DeriveConsumption(18000)

	assert.Equal(t, 100, b.Percentage)
	assert.Equal(t, 180, b.UncappedPercentage())
}

func TestBudgetZeroLimitPercentage(t *testing.T) {
	b := domain.Budget{MonthlyLimit: 0}
	b.DeriveConsumption(500)

	assert.Equal(t, 0, b.Percentage)
	assert.Equal(t, 0, b.UncappedPercentage())
	assert.True(t, b.OverBudget)
}
