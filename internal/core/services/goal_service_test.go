package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pocketfin/pocket_finance_backend/internal/apperrors"
	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	portssvc "github.com/pocketfin/pocket_finance_backend/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_backend/internal/core/services"
	"github.com/pocketfin/pocket_finance_backend/internal/dto"
)

type GoalServiceTestSuite struct {
	suite.Suite
	mockGoalRepo   *MockGoalRepository
	mockWalletRepo *MockWalletRepository
	service        portssvc.GoalSvcFacade

	userID string
	goal   domain.Goal
	wallet domain.Wallet
}

func (suite *GoalServiceTestSuite) SetupTest() {
	suite.mockGoalRepo = new(MockGoalRepository)
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.service = services.NewGoalService(suite.mockGoalRepo, suite.mockWalletRepo)

	suite.userID = "USR-1700000000000"
	suite.goal = domain.Goal{
		GoalID:       "GOL-1700000000001",
		UserID:       suite.userID,
		Name:         "New Laptop",
		TargetAmount: 150000,
	}
	suite.wallet = domain.Wallet{
		WalletID:   "WLT-1700000000002",
		UserID:     suite.userID,
		Name:       "Checking",
		WalletType: domain.WalletBank,
	}
}

func (suite *GoalServiceTestSuite) TestCreateGoalTransaction_TopUpWithoutWallet() {
	ctx := context.Background()
	req := dto.CreateGoalTransactionRequest{
		GoalTxnType: domain.TopUp,
		Amount:      decimal.NewFromInt(5000),
	}

	suite.mockGoalRepo.On("FindGoalByID", ctx, suite.goal.GoalID).Return(&suite.goal, nil).Once()
	suite.mockGoalRepo.On("SaveGoalTransaction", ctx, mock.AnythingOfType("domain.GoalTransaction"), mock.Anything).
		Run(func(args mock.Arguments) {
			gt := args.Get(1).(domain.GoalTransaction)
			suite.Equal(domain.TopUp, gt.GoalTxnType)
			suite.Equal(int64(5000), gt.Amount)
			suite.Nil(gt.WalletID)
			suite.Nil(gt.TransactionID)
			suite.Nil(args.Get(2))
		}).Return(nil).Once()

	gt, err := suite.service.CreateGoalTransaction(ctx, suite.userID, suite.goal.GoalID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(gt)
	suite.NotEmpty(gt.GoalTxnID)
	suite.mockGoalRepo.AssertExpectations(suite.T())
}

func (suite *GoalServiceTestSuite) TestCreateGoalTransaction_TopUpWithWalletCreatesMirror() {
	ctx := context.Background()
	req := dto.CreateGoalTransactionRequest{
		GoalTxnType: domain.TopUp,
		Amount:      decimal.NewFromInt(5000),
		WalletID:    &suite.wallet.WalletID,
	}

	suite.mockGoalRepo.On("FindGoalByID", ctx, suite.goal.GoalID).Return(&suite.goal, nil).Once()
	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.wallet.WalletID).Return(&suite.wallet, nil).Once()
	suite.mockGoalRepo.On("SaveGoalTransaction", ctx, mock.AnythingOfType("domain.GoalTransaction"), mock.AnythingOfType("*domain.Transaction")).
		Run(func(args mock.Arguments) {
			gt := args.Get(1).(domain.GoalTransaction)
			txn := args.Get(2).(*domain.Transaction)
			suite.Require().NotNil(txn)
			// The two rows reference each other and the mirror carries the
			// reserved category with the wallet-side type.
			suite.Require().NotNil(gt.TransactionID)
			suite.Equal(txn.TransactionID, *gt.TransactionID)
			suite.Equal(domain.Expense, txn.TransactionType)
			suite.Equal(domain.CategorySavings, txn.Category)
			suite.Equal(int64(5000), txn.Amount)
			suite.Equal(suite.wallet.WalletID, *txn.WalletID)
		}).Return(nil).Once()

	gt, err := suite.service.CreateGoalTransaction(ctx, suite.userID, suite.goal.GoalID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(gt)
	suite.mockGoalRepo.AssertExpectations(suite.T())
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *GoalServiceTestSuite) TestCreateGoalTransaction_WithdrawExactBalance() {
	ctx := context.Background()
	req := dto.CreateGoalTransactionRequest{
		GoalTxnType: domain.Withdraw,
		Amount:      decimal.NewFromInt(7000),
	}

	suite.mockGoalRepo.On("FindGoalByID", ctx, suite.goal.GoalID).Return(&suite.goal, nil).Once()
	suite.mockGoalRepo.On("GetGoalCurrentAmount", ctx, suite.goal.GoalID).Return(int64(7000), nil).Once()
	suite.mockGoalRepo.On("SaveGoalTransaction", ctx, mock.AnythingOfType("domain.GoalTransaction"), mock.Anything).Return(nil).Once()

	gt, err := suite.service.CreateGoalTransaction(ctx, suite.userID, suite.goal.GoalID, req)

	suite.Require().NoError(err)
	suite.Equal(int64(7000), gt.Amount)
	suite.mockGoalRepo.AssertExpectations(suite.T())
}

func (suite *GoalServiceTestSuite) TestCreateGoalTransaction_WithdrawOverBalanceRejected() {
	ctx := context.Background()
	req := dto.CreateGoalTransactionRequest{
		GoalTxnType: domain.Withdraw,
		Amount:      decimal.NewFromInt(7001),
	}

	suite.mockGoalRepo.On("FindGoalByID", ctx, suite.goal.GoalID).Return(&suite.goal, nil).Once()
	suite.mockGoalRepo.On("GetGoalCurrentAmount", ctx, suite.goal.GoalID).Return(int64(7000), nil).Once()

	gt, err := suite.service.CreateGoalTransaction(ctx, suite.userID, suite.goal.GoalID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrGoalBalanceExceeded)
	suite.Nil(gt)
	suite.mockGoalRepo.AssertNotCalled(suite.T(), "SaveGoalTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GoalServiceTestSuite) TestCreateGoalTransaction_GoalOfOtherUser() {
	ctx := context.Background()
	other := suite.goal
	other.UserID = "USR-9999999999999"

	suite.mockGoalRepo.On("FindGoalByID", ctx, suite.goal.GoalID).Return(&other, nil).Once()

	gt, err := suite.service.CreateGoalTransaction(ctx, suite.userID, suite.goal.GoalID, dto.CreateGoalTransactionRequest{
		GoalTxnType: domain.TopUp,
		Amount:      decimal.NewFromInt(100),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(gt)
}

func (suite *GoalServiceTestSuite) TestUpdateGoalTransaction_PropagatesToLinkedTransaction() {
	ctx := context.Background()
	linkedID := "TXN-1700000000003"
	existing := domain.GoalTransaction{
		GoalTxnID:     "GTX-1700000000004",
		GoalID:        suite.goal.GoalID,
		GoalTxnType:   domain.TopUp,
		Amount:        5000,
		WalletID:      &suite.wallet.WalletID,
		TransactionID: &linkedID,
	}
	newAmount := decimal.NewFromInt(6000)

	suite.mockGoalRepo.On("FindGoalByID", ctx, suite.goal.GoalID).Return(&suite.goal, nil).Once()
	suite.mockGoalRepo.On("FindGoalTransactionByID", ctx, existing.GoalTxnID).Return(&existing, nil).Once()
	suite.mockGoalRepo.On("GetGoalCurrentAmount", ctx, suite.goal.GoalID).Return(int64(5000), nil).Once()
	suite.mockGoalRepo.On("UpdateGoalTransaction", ctx, mock.AnythingOfType("domain.GoalTransaction"), mock.AnythingOfType("*domain.Transaction")).
		Run(func(args mock.Arguments) {
			gt := args.Get(1).(domain.GoalTransaction)
			txn := args.Get(2).(*domain.Transaction)
			suite.Equal(int64(6000), gt.Amount)
			suite.Require().NotNil(txn)
			suite.Equal(linkedID, txn.TransactionID)
			suite.Equal(int64(6000), txn.Amount)
		}).Return(nil).Once()

	gt, err := suite.service.UpdateGoalTransaction(ctx, suite.userID, suite.goal.GoalID, existing.GoalTxnID, dto.UpdateGoalTransactionRequest{
		Amount: &newAmount,
	})

	suite.Require().NoError(err)
	suite.Equal(int64(6000), gt.Amount)
	suite.mockGoalRepo.AssertExpectations(suite.T())
}

func (suite *GoalServiceTestSuite) TestUpdateGoalTransaction_NoLinkNoMirror() {
	ctx := context.Background()
	existing := domain.GoalTransaction{
		GoalTxnID:   "GTX-1700000000005",
		GoalID:      suite.goal.GoalID,
		GoalTxnType: domain.TopUp,
		Amount:      5000,
	}
	note := "final stretch"

	suite.mockGoalRepo.On("FindGoalByID", ctx, suite.goal.GoalID).Return(&suite.goal, nil).Once()
	suite.mockGoalRepo.On("FindGoalTransactionByID", ctx, existing.GoalTxnID).Return(&existing, nil).Once()
	suite.mockGoalRepo.On("UpdateGoalTransaction", ctx, mock.AnythingOfType("domain.GoalTransaction"), mock.Anything).
		Run(func(args mock.Arguments) {
			suite.Nil(args.Get(2))
		}).Return(nil).Once()

	gt, err := suite.service.UpdateGoalTransaction(ctx, suite.userID, suite.goal.GoalID, existing.GoalTxnID, dto.UpdateGoalTransactionRequest{
		Note: &note,
	})

	suite.Require().NoError(err)
	suite.Equal(&note, gt.Note)
	suite.mockGoalRepo.AssertExpectations(suite.T())
}

func (suite *GoalServiceTestSuite) TestUpdateGoalTransaction_WithdrawAmendmentOverdraw() {
	ctx := context.Background()
	existing := domain.GoalTransaction{
		GoalTxnID:   "GTX-1700000000006",
		GoalID:      suite.goal.GoalID,
		GoalTxnType: domain.Withdraw,
		Amount:      3000,
	}
	// Goal currently holds 2000 with this withdrawal of 3000 applied, so
	// anything above 5000 overdraws once the row is amended.
	newAmount := decimal.NewFromInt(5001)

	suite.mockGoalRepo.On("FindGoalByID", ctx, suite.goal.GoalID).Return(&suite.goal, nil).Once()
	suite.mockGoalRepo.On("FindGoalTransactionByID", ctx, existing.GoalTxnID).Return(&existing, nil).Once()
	suite.mockGoalRepo.On("GetGoalCurrentAmount", ctx, suite.goal.GoalID).Return(int64(2000), nil).Once()

	gt, err := suite.service.UpdateGoalTransaction(ctx, suite.userID, suite.goal.GoalID, existing.GoalTxnID, dto.UpdateGoalTransactionRequest{
		Amount: &newAmount,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrGoalBalanceExceeded)
	suite.Nil(gt)
	suite.mockGoalRepo.AssertNotCalled(suite.T(), "UpdateGoalTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GoalServiceTestSuite) TestDeleteGoalTransaction_PassesLinkedTransactionID() {
	ctx := context.Background()
	linkedID := "TXN-1700000000007"
	existing := domain.GoalTransaction{
		GoalTxnID:     "GTX-1700000000008",
		GoalID:        suite.goal.GoalID,
		GoalTxnType:   domain.TopUp,
		Amount:        5000,
		TransactionID: &linkedID,
	}

	suite.mockGoalRepo.On("FindGoalByID", ctx, suite.goal.GoalID).Return(&suite.goal, nil).Once()
	suite.mockGoalRepo.On("FindGoalTransactionByID", ctx, existing.GoalTxnID).Return(&existing, nil).Once()
	suite.mockGoalRepo.On("DeleteGoalTransaction", ctx, existing.GoalTxnID, &linkedID).Return(nil).Once()

	err := suite.service.DeleteGoalTransaction(ctx, suite.userID, suite.goal.GoalID, existing.GoalTxnID)

	suite.Require().NoError(err)
	suite.mockGoalRepo.AssertExpectations(suite.T())
}

func (suite *GoalServiceTestSuite) TestGetGoalByID_DerivesProgress() {
	ctx := context.Background()

	suite.mockGoalRepo.On("FindGoalByID", ctx, suite.goal.GoalID).Return(&suite.goal, nil).Once()
	suite.mockGoalRepo.On("GetGoalCurrentAmount", ctx, suite.goal.GoalID).Return(int64(75000), nil).Once()

	goal, err := suite.service.GetGoalByID(ctx, suite.userID, suite.goal.GoalID)

	suite.Require().NoError(err)
	suite.Equal(int64(75000), goal.CurrentAmount)
	suite.Equal(50, goal.Percentage)
	suite.Nil(goal.DaysRemaining)
}

func (suite *GoalServiceTestSuite) TestDeleteGoal_Cascades() {
	ctx := context.Background()

	suite.mockGoalRepo.On("FindGoalByID", ctx, suite.goal.GoalID).Return(&suite.goal, nil).Once()
	suite.mockGoalRepo.On("DeleteGoal", ctx, suite.goal.GoalID).Return(nil).Once()

	err := suite.service.DeleteGoal(ctx, suite.userID, suite.goal.GoalID)

	suite.Require().NoError(err)
	suite.mockGoalRepo.AssertExpectations(suite.T())
}

func (suite *GoalServiceTestSuite) TestCreateGoal_RejectsNonPositiveTarget() {
	ctx := context.Background()

	goal, err := suite.service.CreateGoal(ctx, suite.userID, dto.CreateGoalRequest{
		Name:         "Empty",
		TargetAmount: decimal.NewFromInt(0),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(goal)
}

func (suite *GoalServiceTestSuite) TestGetGoalByID_DeadlineDaysRemaining() {
	ctx := context.Background()
	deadline := time.Now().Add(72 * time.Hour)
	goal := suite.goal
	goal.Deadline = &deadline

	suite.mockGoalRepo.On("FindGoalByID", ctx, goal.GoalID).Return(&goal, nil).Once()
	suite.mockGoalRepo.On("GetGoalCurrentAmount", ctx, goal.GoalID).Return(int64(0), nil).Once()

	got, err := suite.service.GetGoalByID(ctx, suite.userID, goal.GoalID)

	suite.Require().NoError(err)
	suite.Require().NotNil(got.DaysRemaining)
	suite.Equal(3, *got.DaysRemaining)
}

func TestGoalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GoalServiceTestSuite))
}
