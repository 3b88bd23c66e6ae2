package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pocketfin/pocket_finance_backend/internal/apperrors"
	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	portssvc "github.com/pocketfin/pocket_finance_backend/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_backend/internal/core/services"
	"github.com/pocketfin/pocket_finance_backend/internal/dto"
)

type WalletServiceTestSuite struct {
	suite.Suite
	mockWalletRepo *MockWalletRepository
	service        portssvc.WalletSvcFacade

	userID string
}

func (suite *WalletServiceTestSuite) SetupTest() {
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.service = services.NewWalletService(suite.mockWalletRepo)

	suite.userID = "USR-1700000000000"
}

func (suite *WalletServiceTestSuite) TestCreateWallet() {
	ctx := context.Background()
	req := dto.CreateWalletRequest{
		Name:       "Daily Cash",
		WalletType: domain.WalletCash,
		Icon:       "wallet",
		Color:      "#4CAF50",
	}

	var saved domain.Wallet
	suite.mockWalletRepo.On("SaveWallet", ctx, mock.AnythingOfType("domain.Wallet")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Wallet)
		}).
		Return(nil).Once()

	wallet, err := suite.service.CreateWallet(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(saved.WalletID, wallet.WalletID)
	suite.Regexp(`^WLT-\d+$`, wallet.WalletID)
	suite.Equal(suite.userID, saved.UserID)
	suite.Equal("Daily Cash", saved.Name)
	suite.Equal(domain.WalletCash, saved.WalletType)
	suite.Equal(suite.userID, saved.CreatedBy)
	suite.Equal(int64(0), wallet.Balance)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestGetWalletByID_DerivesBalance() {
	ctx := context.Background()
	walletID := "WLT-1700000100000"
	stored := &domain.Wallet{WalletID: walletID, UserID: suite.userID, Name: "Bank", WalletType: domain.WalletBank}

	suite.mockWalletRepo.On("FindWalletByID", ctx, walletID).Return(stored, nil).Once()
	suite.mockWalletRepo.On("GetWalletBalance", ctx, walletID).Return(int64(48250), nil).Once()

	wallet, err := suite.service.GetWalletByID(ctx, suite.userID, walletID)

	suite.Require().NoError(err)
	suite.Equal(int64(48250), wallet.Balance)
}

func (suite *WalletServiceTestSuite) TestGetWalletByID_OtherUser() {
	ctx := context.Background()
	walletID := "WLT-1700000100000"
	stored := &domain.Wallet{WalletID: walletID, UserID: "USR-9999999999999"}

	suite.mockWalletRepo.On("FindWalletByID", ctx, walletID).Return(stored, nil).Once()

	wallet, err := suite.service.GetWalletByID(ctx, suite.userID, walletID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(wallet)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "GetWalletBalance", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestListWallets_DerivesEachBalance() {
	ctx := context.Background()
	stored := []domain.Wallet{
		{WalletID: "WLT-1", UserID: suite.userID, Name: "Cash"},
		{WalletID: "WLT-2", UserID: suite.userID, Name: "Bank"},
	}

	suite.mockWalletRepo.On("ListWalletsByUser", ctx, suite.userID).Return(stored, nil).Once()
	suite.mockWalletRepo.On("GetWalletBalance", ctx, "WLT-1").Return(int64(-500), nil).Once()
	suite.mockWalletRepo.On("GetWalletBalance", ctx, "WLT-2").Return(int64(120000), nil).Once()

	wallets, err := suite.service.ListWallets(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(wallets, 2)
	suite.Equal(int64(-500), wallets[0].Balance)
	suite.Equal(int64(120000), wallets[1].Balance)
}

func (suite *WalletServiceTestSuite) TestUpdateWallet_PartialFields() {
	ctx := context.Background()
	walletID := "WLT-1700000100000"
	stored := &domain.Wallet{WalletID: walletID, UserID: suite.userID, Name: "Old Name", WalletType: domain.WalletCash, Color: "#FFFFFF"}
	newName := "New Name"

	var updated domain.Wallet
	suite.mockWalletRepo.On("FindWalletByID", ctx, walletID).Return(stored, nil).Once()
	suite.mockWalletRepo.On("UpdateWallet", ctx, mock.AnythingOfType("domain.Wallet")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Wallet)
		}).
		Return(nil).Once()
	suite.mockWalletRepo.On("GetWalletBalance", ctx, walletID).Return(int64(0), nil).Once()

	wallet, err := suite.service.UpdateWallet(ctx, suite.userID, walletID, dto.UpdateWalletRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal("New Name", updated.Name)
	// Fields not present in the request keep their stored values.
	suite.Equal(domain.WalletCash, updated.WalletType)
	suite.Equal("#FFFFFF", updated.Color)
	suite.Equal("New Name", wallet.Name)
}

func (suite *WalletServiceTestSuite) TestDeleteWallet_NotFound() {
	ctx := context.Background()
	walletID := "WLT-1700000100000"

	suite.mockWalletRepo.On("FindWalletByID", ctx, walletID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteWallet(ctx, suite.userID, walletID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "DeleteWallet", mock.Anything, mock.Anything)
}

func TestWalletServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}
