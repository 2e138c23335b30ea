package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tradeledger/trade_ledger_app/internal/apperrors"
	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portssvc "github.com/tradeledger/trade_ledger_app/internal/core/ports/services"
	"github.com/tradeledger/trade_ledger_app/internal/dto"
	"github.com/tradeledger/trade_ledger_app/internal/handlers"
	"github.com/tradeledger/trade_ledger_app/internal/platform/config"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	args := m.Called(ctx, userID, requestingUserID)
	return args.Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock OrderService ---
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, user *domain.User, req dto.CreateOrderRequest) (*domain.Order, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, user *domain.User, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, user, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) UpdateOrder(ctx context.Context, user *domain.User, orderID string, req dto.UpdateOrderRequest) (*domain.Order, error) {
	args := m.Called(ctx, user, orderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) DeleteOrder(ctx context.Context, user *domain.User, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, user, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, userID string, params dto.ListOrdersParams) ([]domain.Order, int, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

var _ portssvc.OrderSvcFacade = (*MockOrderService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) ReportByPerson(ctx context.Context, userID string, params dto.ReportParams) (*dto.ReportResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReportResponse), args.Error(1)
}

func (m *MockReportingService) GroupedByDate(ctx context.Context, userID string, params dto.GroupedReportParams) (*dto.GroupedReportResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GroupedReportResponse), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Test Suite ---
type OrderHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockUserService      *MockUserService
	mockOrderService     *MockOrderService
	mockReportingService *MockReportingService
	jwtSecret            string

	user *domain.User
}

func (suite *OrderHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "tla-test",
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

func (suite *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockUserService = new(MockUserService)
	suite.mockOrderService = new(MockOrderService)
	suite.mockReportingService = new(MockReportingService)

	suite.user = &domain.User{
		UserID:      uuid.NewString(),
		InventoryID: uuid.NewString(),
		Role:        domain.RoleUser,
	}

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // no swagger routes in tests
	}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		User:      suite.mockUserService,
		Order:     suite.mockOrderService,
		Reporting: suite.mockReportingService,
	})
}

// authedRequest performs the request with a valid bearer token for suite.user.
func (suite *OrderHandlerTestSuite) authedRequest(method, url string, body []byte) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.user.UserID))
	req.Header.Set("Content-Type", "application/json")

	suite.mockUserService.On("GetUserByID", mock.Anything, suite.user.UserID).Return(suite.user, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *OrderHandlerTestSuite) TestCreateOrder_Success() {
	orderID := uuid.NewString()
	personID := uuid.NewString()
	itemID := uuid.NewString()

	expected := &domain.Order{
		OrderID:       orderID,
		UserID:        suite.user.UserID,
		PersonID:      personID,
		Type:          domain.OrderSale,
		Status:        domain.OrderPending,
		AmountPaid:    decimal.NewFromInt(60),
		AmountPending: decimal.NewFromInt(40),
		TotalAmount:   decimal.NewFromInt(100),
	}
	suite.mockOrderService.On("CreateOrder", mock.Anything, suite.user, mock.MatchedBy(func(req dto.CreateOrderRequest) bool {
		return req.Type == "sale" && req.PersonID == personID && len(req.Items) == 1
	})).Return(expected, nil).Once()

	body, _ := json.Marshal(gin.H{
		"type":       "sale",
		"person":     personID,
		"amountPaid": "60",
		"purchaseItemList": []gin.H{
			{"item": itemID, "quantity": 2, "price": "50", "unit": "kilogram"},
		},
	})
	w := suite.authedRequest(http.MethodPost, "/v1/orders", body)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp dto.OrderResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(orderID, resp.OrderID)
	suite.Equal("pending", resp.Status)
	suite.mockOrderService.AssertExpectations(suite.T())
}

func (suite *OrderHandlerTestSuite) TestCreateOrder_ValidationErrorMapsTo400() {
	personID := uuid.NewString()

	suite.mockOrderService.On("CreateOrder", mock.Anything, suite.user, mock.Anything).
		Return(nil, apperrors.ErrValidation).Once()

	body, _ := json.Marshal(gin.H{
		"type":       "sale",
		"person":     personID,
		"amountPaid": "200",
		"purchaseItemList": []gin.H{
			{"item": uuid.NewString(), "quantity": 1, "price": "50", "unit": "number"},
		},
	})
	w := suite.authedRequest(http.MethodPost, "/v1/orders", body)

	suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())
}

func (suite *OrderHandlerTestSuite) TestGetOrder_NotFoundMapsTo404() {
	orderID := uuid.NewString()

	suite.mockOrderService.On("GetOrder", mock.Anything, suite.user, orderID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.authedRequest(http.MethodGet, "/v1/orders/"+orderID, nil)

	suite.Equal(http.StatusNotFound, w.Code, w.Body.String())
}

func (suite *OrderHandlerTestSuite) TestListOrders_Success() {
	suite.mockOrderService.On("ListOrders", mock.Anything, suite.user.UserID, mock.MatchedBy(func(params dto.ListOrdersParams) bool {
		return params.Status == "pending"
	})).Return([]domain.Order{{OrderID: uuid.NewString(), UserID: suite.user.UserID}}, 1, nil).Once()

	w := suite.authedRequest(http.MethodGet, "/v1/orders?status=pending", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.ListOrdersResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Orders, 1)
	suite.Equal(1, resp.TotalResults)
	suite.mockOrderService.AssertExpectations(suite.T())
}

func (suite *OrderHandlerTestSuite) TestReport_FailureIsGeneric500() {
	suite.mockReportingService.On("ReportByPerson", mock.Anything, suite.user.UserID, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.authedRequest(http.MethodGet, "/v1/orders/report", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Contains(w.Body.String(), "Failed to generate the report. Please try again.")
}

func (suite *OrderHandlerTestSuite) TestMissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/v1/orders", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestOrderHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}
