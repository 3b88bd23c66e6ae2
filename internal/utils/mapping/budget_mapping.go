package mapping

import (
	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	"github.com/pocketfin/pocket_finance_backend/internal/models"
)

// ToModelBudget converts a domain Budget to a model Budget
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:     d.BudgetID,
		UserID:       d.UserID,
		Category:     d.Category,
		MonthlyLimit: d.MonthlyLimit,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a model Budget to a domain Budget. Derived
// consumption fields are filled separately by the caller.
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:     m.BudgetID,
		UserID:       m.UserID,
		Category:     m.Category,
		MonthlyLimit: m.MonthlyLimit,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBudgetSlice converts model Budgets to domain Budgets
func ToDomainBudgetSlice(ms []models.Budget) []domain.Budget {
	ds := make([]domain.Budget, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBudget(m)
	}
	return ds
}
