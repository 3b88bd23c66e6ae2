package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pocketfin/pocket_finance_backend/internal/apperrors"
	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	portssvc "github.com/pocketfin/pocket_finance_backend/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_backend/internal/core/services"
	"github.com/pocketfin/pocket_finance_backend/internal/dto"
	"github.com/pocketfin/pocket_finance_backend/internal/handlers"
	"github.com/pocketfin/pocket_finance_backend/pkg/config"
)

// --- Mock GoalService ---
type MockGoalService struct {
	mock.Mock
}

func (m *MockGoalService) CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}
func (m *MockGoalService) GetGoalByID(ctx context.Context, userID string, goalID string) (*domain.Goal, error) {
	args := m.Called(ctx, userID, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}
func (m *MockGoalService) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Goal), args.Error(1)
}
func (m *MockGoalService) UpdateGoal(ctx context.Context, userID string, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error) {
	args := m.Called(ctx, userID, goalID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}
func (m *MockGoalService) DeleteGoal(ctx context.Context, userID string, goalID string) error {
	args := m.Called(ctx, userID, goalID)
	return args.Error(0)
}
func (m *MockGoalService) CreateGoalTransaction(ctx context.Context, userID string, goalID string, req dto.CreateGoalTransactionRequest) (*domain.GoalTransaction, error) {
	args := m.Called(ctx, userID, goalID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalTransaction), args.Error(1)
}
func (m *MockGoalService) ListGoalTransactions(ctx context.Context, userID string, goalID string) ([]domain.GoalTransaction, error) {
	args := m.Called(ctx, userID, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GoalTransaction), args.Error(1)
}
func (m *MockGoalService) UpdateGoalTransaction(ctx context.Context, userID string, goalID string, goalTxnID string, req dto.UpdateGoalTransactionRequest) (*domain.GoalTransaction, error) {
	args := m.Called(ctx, userID, goalID, goalTxnID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalTransaction), args.Error(1)
}
func (m *MockGoalService) DeleteGoalTransaction(ctx context.Context, userID string, goalID string, goalTxnID string) error {
	args := m.Called(ctx, userID, goalID, goalTxnID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.GoalSvcFacade = (*MockGoalService)(nil)

// --- Test Suite ---
type GoalHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockGoalService *MockGoalService
	jwtSecret       string

	userID string
	goalID string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *GoalHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "pfb-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *GoalHandlerTestSuite) authedRequest(method, url string, body any) *http.Request {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (suite *GoalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockGoalService = new(MockGoalService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // no swagger routes in tests
	}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Goal: suite.mockGoalService,
	})

	suite.userID = "USR-1700000000000"
	suite.goalID = "GOL-1700000400000"
}

// --- Test Cases ---

func (suite *GoalHandlerTestSuite) TestCreateGoalTransaction_Success() {
	walletID := "WLT-1700000100000"
	txnID := "TXN-1700000500001"
	expected := &domain.GoalTransaction{
		GoalTxnID:     "GTX-1700000500000",
		GoalID:        suite.goalID,
		GoalTxnType:   domain.TopUp,
		Amount:        5000,
		WalletID:      &walletID,
		TransactionID: &txnID,
	}

	suite.mockGoalService.On("CreateGoalTransaction",
		mock.Anything,
		suite.userID,
		suite.goalID,
		mock.MatchedBy(func(req dto.CreateGoalTransactionRequest) bool {
			return req.GoalTxnType == domain.TopUp && req.Amount.Equal(decimal.NewFromInt(5000))
		}),
	).Return(expected, nil).Once()

	body := map[string]any{
		"goalTxnType": "TOPUP",
		"amount":      5000,
		"walletID":    walletID,
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, fmt.Sprintf("/api/v1/goals/%s/transactions", suite.goalID), body))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.GoalTransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.GoalTxnID, resp.GoalTxnID)
	suite.Require().NotNil(resp.TransactionID)
	suite.Equal(txnID, *resp.TransactionID)
	suite.mockGoalService.AssertExpectations(suite.T())
}

func (suite *GoalHandlerTestSuite) TestCreateGoalTransaction_OverdrawReturns422() {
	suite.mockGoalService.On("CreateGoalTransaction",
		mock.Anything, suite.userID, suite.goalID, mock.AnythingOfType("dto.CreateGoalTransactionRequest"),
	).Return(nil, services.ErrGoalBalanceExceeded).Once()

	body := map[string]any{
		"goalTxnType": "WITHDRAW",
		"amount":      999999,
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, fmt.Sprintf("/api/v1/goals/%s/transactions", suite.goalID), body))

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *GoalHandlerTestSuite) TestCreateGoalTransaction_InvalidTypeRejected() {
	body := map[string]any{
		"goalTxnType": "SIDEWAYS",
		"amount":      100,
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, fmt.Sprintf("/api/v1/goals/%s/transactions", suite.goalID), body))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockGoalService.AssertNotCalled(suite.T(), "CreateGoalTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GoalHandlerTestSuite) TestGetGoal_ForbiddenReadsAsNotFound() {
	suite.mockGoalService.On("GetGoalByID", mock.Anything, suite.userID, suite.goalID).
		Return(nil, fmt.Errorf("goal %s: %w", suite.goalID, apperrors.ErrForbidden)).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/goals/"+suite.goalID, nil))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *GoalHandlerTestSuite) TestGetGoal_Success() {
	days := 30
	expected := &domain.Goal{
		GoalID:        suite.goalID,
		UserID:        suite.userID,
		Name:          "Emergency Fund",
		TargetAmount:  150000,
		CurrentAmount: 75000,
		Percentage:    50,
		DaysRemaining: &days,
	}

	suite.mockGoalService.On("GetGoalByID", mock.Anything, suite.userID, suite.goalID).Return(expected, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/goals/"+suite.goalID, nil))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.GoalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(75000), resp.CurrentAmount)
	suite.Equal(50, resp.Percentage)
	suite.Require().NotNil(resp.DaysRemaining)
	suite.Equal(30, *resp.DaysRemaining)
}

func (suite *GoalHandlerTestSuite) TestDeleteGoal_NoContent() {
	suite.mockGoalService.On("DeleteGoal", mock.Anything, suite.userID, suite.goalID).Return(nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodDelete, "/api/v1/goals/"+suite.goalID, nil))

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *GoalHandlerTestSuite) TestMissingTokenRejected() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/goals", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockGoalService.AssertNotCalled(suite.T(), "ListGoals", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestGoalHandler(t *testing.T) {
	suite.Run(t, new(GoalHandlerTestSuite))
}
