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
	"github.com/oakhost/oakhost_backend/internal/apperrors"
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	portssvc "github.com/oakhost/oakhost_backend/internal/core/ports/services"
	"github.com/oakhost/oakhost_backend/internal/dto"
	"github.com/oakhost/oakhost_backend/internal/handlers"
	"github.com/oakhost/oakhost_backend/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RatesService ---
type MockRatesService struct {
	mock.Mock
}

func (m *MockRatesService) GetRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}
func (m *MockRatesService) GetTldPricing(ctx context.Context, tld string) (*domain.TldPriceEntry, error) {
	args := m.Called(ctx, tld)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TldPriceEntry), args.Error(1)
}

var _ portssvc.RatesSvcFacade = (*MockRatesService)(nil)

// --- Mock QuoteService ---
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) Quote(ctx context.Context, domainName string, years int, idProtection bool) (*domain.DomainQuote, error) {
	args := m.Called(ctx, domainName, years, idProtection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DomainQuote), args.Error(1)
}
func (m *MockQuoteService) ConfirmQuote(ctx context.Context, quote domain.DomainQuote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

var _ portssvc.QuoteSvcFacade = (*MockQuoteService)(nil)

// --- Mock CheckoutService ---
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) CreateCheckout(ctx context.Context, customerID, customerEmail string, req dto.CreateCheckoutRequest) (*dto.CheckoutResponse, error) {
	args := m.Called(ctx, customerID, customerEmail, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CheckoutResponse), args.Error(1)
}
func (m *MockCheckoutService) CancelOrder(ctx context.Context, orderID, customerID string) error {
	args := m.Called(ctx, orderID, customerID)
	return args.Error(0)
}
func (m *MockCheckoutService) GetOrder(ctx context.Context, orderID, customerID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

var _ portssvc.CheckoutSvcFacade = (*MockCheckoutService)(nil)

// --- Mock ReconciliationService ---
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) Verify(ctx context.Context, sessionID string) (*dto.VerifyPaymentResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VerifyPaymentResponse), args.Error(1)
}

var _ portssvc.ReconciliationSvcFacade = (*MockReconciliationService)(nil)

// --- Mock ProvisioningService ---
type MockProvisioningService struct {
	mock.Mock
}

func (m *MockProvisioningService) DispatchOrder(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

var _ portssvc.ProvisioningSvcFacade = (*MockProvisioningService)(nil)

// --- Mock PendingDomainOrderService ---
type MockPendingDomainOrderService struct {
	mock.Mock
}

func (m *MockPendingDomainOrderService) SubmitPendingDomainOrder(ctx context.Context, req dto.CreatePendingDomainOrderRequest, userID string) (*domain.PendingDomainOrder, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingDomainOrder), args.Error(1)
}
func (m *MockPendingDomainOrderService) GetPendingDomainOrder(ctx context.Context, pendingOrderID string) (*domain.PendingDomainOrder, error) {
	args := m.Called(ctx, pendingOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingDomainOrder), args.Error(1)
}
func (m *MockPendingDomainOrderService) ListPendingDomainOrders(ctx context.Context, status *domain.PendingDomainOrderStatus, page, pageSize int) ([]domain.PendingDomainOrder, int, error) {
	args := m.Called(ctx, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.PendingDomainOrder), args.Int(1), args.Error(2)
}
func (m *MockPendingDomainOrderService) ApprovePendingDomainOrder(ctx context.Context, pendingOrderID, adminNotes, adminUserID string) (*domain.PendingDomainOrder, error) {
	args := m.Called(ctx, pendingOrderID, adminNotes, adminUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingDomainOrder), args.Error(1)
}
func (m *MockPendingDomainOrderService) RejectPendingDomainOrder(ctx context.Context, pendingOrderID, adminNotes, adminUserID string) (*domain.PendingDomainOrder, error) {
	args := m.Called(ctx, pendingOrderID, adminNotes, adminUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingDomainOrder), args.Error(1)
}
func (m *MockPendingDomainOrderService) MarkPendingDomainOrderPaid(ctx context.Context, pendingOrderID, adminUserID string) (*domain.PendingDomainOrder, error) {
	args := m.Called(ctx, pendingOrderID, adminUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingDomainOrder), args.Error(1)
}

var _ portssvc.PendingDomainOrderSvcFacade = (*MockPendingDomainOrderService)(nil)

// --- Test Suite ---
type CheckoutHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCheckout     *MockCheckoutService
	mockQuote        *MockQuoteService
	mockPendingOrder *MockPendingDomainOrderService
	jwtSecret        string
}

// identity claims issued by the external provider; the backend only validates.
type testClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// generateTestToken creates a dummy JWT for testing.
func (suite *CheckoutHandlerTestSuite) generateTestToken(userID, email, role string) string {
	claims := testClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockCheckout = new(MockCheckoutService)
	suite.mockQuote = new(MockQuoteService)
	suite.mockPendingOrder = new(MockPendingDomainOrderService)

	cfg := &config.Config{
		JWTSecret:           suite.jwtSecret,
		StripeWebhookSecret: "whsec_test",
		IsProduction:        true, // skips swagger route registration
	}
	services := &portssvc.ServiceContainer{
		Rates:              new(MockRatesService),
		Quote:              suite.mockQuote,
		Checkout:           suite.mockCheckout,
		Reconciliation:     new(MockReconciliationService),
		Provisioning:       new(MockProvisioningService),
		PendingDomainOrder: suite.mockPendingOrder,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *CheckoutHandlerTestSuite) doJSON(method, url, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *CheckoutHandlerTestSuite) TestCreateCheckout_Success() {
	customerID := uuid.NewString()
	orderID := uuid.NewString()
	reqBody := dto.CreateCheckoutRequest{HostingPlanRef: "starter"}

	suite.mockCheckout.On("CreateCheckout",
		mock.Anything,
		customerID,
		"user@example.com",
		mock.MatchedBy(func(r dto.CreateCheckoutRequest) bool {
			return r.HostingPlanRef == "starter" && r.DomainQuote == nil
		}),
	).Return(&dto.CheckoutResponse{
		RedirectURL: "https://checkout.stripe.com/c/pay/cs_test_123",
		OrderID:     orderID,
	}, nil).Once()

	token := suite.generateTestToken(customerID, "user@example.com", "")
	w := suite.doJSON(http.MethodPost, "/api/v1/checkout", token, reqBody)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.CheckoutResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(orderID, resp.OrderID)
	suite.Contains(resp.RedirectURL, "checkout.stripe.com")

	suite.mockCheckout.AssertExpectations(suite.T())
}

func (suite *CheckoutHandlerTestSuite) TestCreateCheckout_StaleQuoteConflict() {
	customerID := uuid.NewString()

	suite.mockCheckout.On("CreateCheckout", mock.Anything, customerID, "", mock.Anything).
		Return(nil, apperrors.ErrStaleQuote).Once()

	token := suite.generateTestToken(customerID, "", "")
	w := suite.doJSON(http.MethodPost, "/api/v1/checkout", token, dto.CreateCheckoutRequest{HostingPlanRef: "starter"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockCheckout.AssertExpectations(suite.T())
}

func (suite *CheckoutHandlerTestSuite) TestCreateCheckout_Unauthorized() {
	w := suite.doJSON(http.MethodPost, "/api/v1/checkout", "", dto.CreateCheckoutRequest{HostingPlanRef: "starter"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockCheckout.AssertNotCalled(suite.T(), "CreateCheckout")
}

func (suite *CheckoutHandlerTestSuite) TestCreateQuote_Success() {
	customerID := uuid.NewString()
	quotedAt := time.Now().UTC()

	suite.mockQuote.On("Quote", mock.Anything, "example.com", 2, true).
		Return(&domain.DomainQuote{
			Domain:       "example.com",
			Sld:          "example",
			Tld:          "com",
			Years:        2,
			IDProtection: true,
			UnitPrice:    decimal.RequireFromString("9.99"),
			AddonPrice:   decimal.RequireFromString("16.51"),
			TotalPrice:   decimal.RequireFromString("36.49"),
			CurrencyCode: "GBP",
			Available:    true,
			QuotedAt:     quotedAt,
		}, nil).Once()

	token := suite.generateTestToken(customerID, "", "")
	w := suite.doJSON(http.MethodPost, "/api/v1/quotes", token, dto.QuoteRequest{
		Domain:       "example.com",
		Years:        2,
		IDProtection: true,
	})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.QuoteResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("com", resp.Tld)
	suite.True(resp.TotalPrice.Equal(decimal.RequireFromString("36.49")))
	suite.True(resp.Available)

	suite.mockQuote.AssertExpectations(suite.T())
}

func (suite *CheckoutHandlerTestSuite) TestGetOrder_Success() {
	customerID := uuid.NewString()
	orderID := uuid.NewString()

	suite.mockCheckout.On("GetOrder", mock.Anything, orderID, customerID).
		Return(&domain.Order{
			OrderID:      orderID,
			CustomerID:   customerID,
			Items:        []domain.OrderItem{{Type: domain.OrderItemHosting, RefID: "starter", Price: decimal.RequireFromString("4.99")}},
			TotalAmount:  decimal.RequireFromString("4.99"),
			CurrencyCode: "GBP",
			Status:       domain.OrderStatusPending,
		}, nil).Once()

	token := suite.generateTestToken(customerID, "", "")
	w := suite.doJSON(http.MethodGet, "/api/v1/orders/"+orderID, token, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.OrderResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(orderID, resp.OrderID)
	suite.Equal(string(domain.OrderStatusPending), resp.Status)
	suite.Len(resp.Items, 1)

	suite.mockCheckout.AssertExpectations(suite.T())
}

func (suite *CheckoutHandlerTestSuite) TestApprovePendingDomainOrder_RequiresAdmin() {
	customerID := uuid.NewString()
	pendingOrderID := uuid.NewString()

	token := suite.generateTestToken(customerID, "user@example.com", "")
	w := suite.doJSON(http.MethodPost, "/api/v1/admin/domain-orders/"+pendingOrderID+"/approve", token,
		dto.ReviewPendingDomainOrderRequest{AdminNotes: "looks fine"})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockPendingOrder.AssertNotCalled(suite.T(), "ApprovePendingDomainOrder")
}

func (suite *CheckoutHandlerTestSuite) TestApprovePendingDomainOrder_AsAdmin() {
	adminID := uuid.NewString()
	pendingOrderID := uuid.NewString()

	suite.mockPendingOrder.On("ApprovePendingDomainOrder", mock.Anything, pendingOrderID, "verified registrant", adminID).
		Return(&domain.PendingDomainOrder{
			PendingOrderID: pendingOrderID,
			DomainName:     "example.com",
			Years:          1,
			Status:         domain.PendingDomainOrderStatusApproved,
			AdminNotes:     "verified registrant",
		}, nil).Once()

	token := suite.generateTestToken(adminID, "admin@example.com", "admin")
	w := suite.doJSON(http.MethodPost, "/api/v1/admin/domain-orders/"+pendingOrderID+"/approve", token,
		dto.ReviewPendingDomainOrderRequest{AdminNotes: "verified registrant"})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.PendingDomainOrderResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(string(domain.PendingDomainOrderStatusApproved), resp.Status)

	suite.mockPendingOrder.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestCheckoutHandler(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}
