package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	portsrepo "github.com/pocketfin/pocket_finance_backend/internal/core/ports/repositories"
)

// --- Mock WalletRepository ---
type MockWalletRepository struct {
	mock.Mock
}

var _ portsrepo.WalletRepositoryFacade = (*MockWalletRepository)(nil)

func (m *MockWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) UpdateWallet(ctx context.Context, wallet domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) DeleteWallet(ctx context.Context, walletID string) error {
	args := m.Called(ctx, walletID)
	return args.Error(0)
}

func (m *MockWalletRepository) GetWalletBalance(ctx context.Context, walletID string) (int64, error) {
	args := m.Called(ctx, walletID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletRepository) GetTotalBalance(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, filter portsrepo.TransactionListFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

var _ portsrepo.BudgetRepositoryFacade = (*MockBudgetRepository)(nil)

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgetsByUser(ctx context.Context, userID string) ([]domain.Budget, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	args := m.Called(ctx, budgetID)
	return args.Error(0)
}

func (m *MockBudgetRepository) GetSpentByCategory(ctx context.Context, userID string, from, to time.Time) (map[string]int64, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// --- Mock GoalRepository ---
type MockGoalRepository struct {
	mock.Mock
}

var _ portsrepo.GoalRepositoryFacade = (*MockGoalRepository)(nil)

func (m *MockGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) ListGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) DeleteGoal(ctx context.Context, goalID string) error {
	args := m.Called(ctx, goalID)
	return args.Error(0)
}

func (m *MockGoalRepository) GetGoalCurrentAmount(ctx context.Context, goalID string) (int64, error) {
	args := m.Called(ctx, goalID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGoalRepository) SaveGoalTransaction(ctx context.Context, gt domain.GoalTransaction, linkedTxn *domain.Transaction) error {
	args := m.Called(ctx, gt, linkedTxn)
	return args.Error(0)
}

func (m *MockGoalRepository) UpdateGoalTransaction(ctx context.Context, gt domain.GoalTransaction, linkedTxn *domain.Transaction) error {
	args := m.Called(ctx, gt, linkedTxn)
	return args.Error(0)
}

func (m *MockGoalRepository) DeleteGoalTransaction(ctx context.Context, goalTxnID string, linkedTransactionID *string) error {
	args := m.Called(ctx, goalTxnID, linkedTransactionID)
	return args.Error(0)
}

func (m *MockGoalRepository) FindGoalTransactionByID(ctx context.Context, goalTxnID string) (*domain.GoalTransaction, error) {
	args := m.Called(ctx, goalTxnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalTransaction), args.Error(1)
}

func (m *MockGoalRepository) ListGoalTransactions(ctx context.Context, goalID string) ([]domain.GoalTransaction, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GoalTransaction), args.Error(1)
}

func (m *MockGoalRepository) FindGoalTransactionByTransactionID(ctx context.Context, transactionID string) (*domain.GoalTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalTransaction), args.Error(1)
}

func (m *MockGoalRepository) FindGoalTransactionByFuzzyMatch(ctx context.Context, walletID string, gtType domain.GoalTransactionType, around time.Time, tolerance time.Duration) (*domain.GoalTransaction, error) {
	args := m.Called(ctx, walletID, gtType, around, tolerance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalTransaction), args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetIncomeExpenseTotals(ctx context.Context, userID string, from, to time.Time) (int64, int64, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockReportingRepository) GetExpenseByCategory(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryAmount, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryAmount), args.Error(1)
}

func (m *MockReportingRepository) GetDailyExpenseTotals(ctx context.Context, userID string, from, to time.Time) (map[int]int64, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]int64), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
