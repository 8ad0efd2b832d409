package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oakhost/oakhost_backend/internal/apperrors"
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	portsgw "github.com/oakhost/oakhost_backend/internal/core/ports/gateways"
	"github.com/oakhost/oakhost_backend/internal/core/services"
	"github.com/oakhost/oakhost_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CheckoutServiceTestSuite struct {
	suite.Suite
	mockOrderRepo   *MockOrderRepository
	mockInvoiceRepo *MockInvoiceRepository
	mockQuotes      *MockQuoteConfirmer
	mockPayments    *MockPaymentGateway
	mockNotifier    *MockNotifier
	service         *services.CheckoutService
}

func (suite *CheckoutServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockQuotes = new(MockQuoteConfirmer)
	suite.mockPayments = new(MockPaymentGateway)
	suite.mockNotifier = new(MockNotifier)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := services.NewEventDispatcher(suite.mockNotifier, logger)

	plans := map[string]domain.HostingPlan{
		"starter": {
			Ref:          "starter",
			Name:         "Starter Hosting",
			MonthlyPrice: decimal.RequireFromString("4.99"),
			CurrencyCode: "GBP",
		},
	}

	suite.service = services.NewCheckoutService(
		suite.mockOrderRepo, suite.mockInvoiceRepo, suite.mockQuotes, suite.mockPayments,
		dispatcher, plans, "GBP",
		"https://shop.example/success?session_id={CHECKOUT_SESSION_ID}",
		"https://shop.example/cancelled",
		logger,
	)
}

// --- Test Cases ---

func (suite *CheckoutServiceTestSuite) TestCreateCheckout_HostingOnly() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockOrderRepo.On("SaveOrder", ctx, mock.MatchedBy(func(o domain.Order) bool {
		return o.Status == domain.OrderStatusPending &&
			o.CustomerID == customerID &&
			len(o.Items) == 1 &&
			o.Items[0].Type == domain.OrderItemHosting &&
			o.TotalAmount.Equal(decimal.RequireFromString("4.99"))
	})).Return(nil).Once()
	suite.mockPayments.On("ResolveCustomer", ctx, "alex@example.com", customerID).
		Return("cus_123", nil).Once()
	suite.mockPayments.On("CreateCheckoutSession", ctx, mock.MatchedBy(func(p portsgw.CheckoutSessionParams) bool {
		return p.CustomerID == "cus_123" && p.OrderID != "" &&
			len(p.Lines) == 1 && p.Lines[0].Recurring
	})).Return(&portsgw.CheckoutSession{SessionID: "cs_1", RedirectURL: "https://stripe.test/cs_1"}, nil).Once()
	suite.mockOrderRepo.On("SetOrderSessionID", ctx, mock.AnythingOfType("string"), "cs_1", customerID).
		Return(nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.MatchedBy(func(i domain.Invoice) bool {
		return i.Status == domain.InvoiceStatusPending &&
			i.StripeSessionID == "cs_1" &&
			i.Amount.Equal(decimal.RequireFromString("4.99"))
	})).Return(nil).Once()

	resp, err := suite.service.CreateCheckout(ctx, customerID, "alex@example.com", dto.CreateCheckoutRequest{
		HostingPlanRef: "starter",
	})

	suite.Require().NoError(err)
	suite.Equal("https://stripe.test/cs_1", resp.RedirectURL)
	suite.NotEmpty(resp.OrderID)

	suite.mockOrderRepo.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockPayments.AssertExpectations(suite.T())
	suite.mockQuotes.AssertNotCalled(suite.T(), "ConfirmQuote")
}

func (suite *CheckoutServiceTestSuite) TestCreateCheckout_DomainLineConfirmsQuote() {
	ctx := context.Background()
	customerID := uuid.NewString()
	quotedAt := time.Now().Add(-time.Minute)

	suite.mockQuotes.On("ConfirmQuote", ctx, mock.MatchedBy(func(q domain.DomainQuote) bool {
		return q.Domain == "example.com" && q.Years == 2 &&
			q.TotalPrice.Equal(decimal.RequireFromString("17.98"))
	})).Return(nil).Once()
	suite.mockOrderRepo.On("SaveOrder", ctx, mock.MatchedBy(func(o domain.Order) bool {
		item, ok := o.DomainItem()
		return ok && item.RefID == "example.com" && item.Years == 2
	})).Return(nil).Once()
	suite.mockPayments.On("ResolveCustomer", ctx, "alex@example.com", customerID).
		Return("cus_123", nil).Once()
	suite.mockPayments.On("CreateCheckoutSession", ctx, mock.MatchedBy(func(p portsgw.CheckoutSessionParams) bool {
		return len(p.Lines) == 1 && !p.Lines[0].Recurring
	})).Return(&portsgw.CheckoutSession{SessionID: "cs_2", RedirectURL: "https://stripe.test/cs_2"}, nil).Once()
	suite.mockOrderRepo.On("SetOrderSessionID", ctx, mock.AnythingOfType("string"), "cs_2", customerID).
		Return(nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	resp, err := suite.service.CreateCheckout(ctx, customerID, "alex@example.com", dto.CreateCheckoutRequest{
		DomainQuote: &dto.LockedDomainQuote{
			Domain:       "example.com",
			Years:        2,
			TotalPrice:   decimal.RequireFromString("17.98"),
			CurrencyCode: "GBP",
			QuotedAt:     quotedAt,
		},
	})

	suite.Require().NoError(err)
	suite.NotEmpty(resp.OrderID)
	suite.mockQuotes.AssertExpectations(suite.T())
}

func (suite *CheckoutServiceTestSuite) TestCreateCheckout_StaleQuoteRejected() {
	ctx := context.Background()

	suite.mockQuotes.On("ConfirmQuote", ctx, mock.AnythingOfType("domain.DomainQuote")).
		Return(apperrors.ErrStaleQuote).Once()

	resp, err := suite.service.CreateCheckout(ctx, uuid.NewString(), "alex@example.com", dto.CreateCheckoutRequest{
		DomainQuote: &dto.LockedDomainQuote{
			Domain:       "example.com",
			Years:        1,
			TotalPrice:   decimal.RequireFromString("8.99"),
			CurrencyCode: "GBP",
			QuotedAt:     time.Now(),
		},
	})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrStaleQuote)
	// Nothing is persisted and no provider call is made when validation fails.
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveOrder")
	suite.mockPayments.AssertNotCalled(suite.T(), "ResolveCustomer")
}

func (suite *CheckoutServiceTestSuite) TestCreateCheckout_EmptyRequestRejected() {
	resp, err := suite.service.CreateCheckout(context.Background(), uuid.NewString(), "alex@example.com", dto.CreateCheckoutRequest{})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CheckoutServiceTestSuite) TestCreateCheckout_UnknownPlanRejected() {
	resp, err := suite.service.CreateCheckout(context.Background(), uuid.NewString(), "alex@example.com", dto.CreateCheckoutRequest{
		HostingPlanRef: "enterprise",
	})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CheckoutServiceTestSuite) TestCreateCheckout_OrderPersistedBeforeProviderFailure() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockOrderRepo.On("SaveOrder", ctx, mock.AnythingOfType("domain.Order")).Return(nil).Once()
	suite.mockPayments.On("ResolveCustomer", ctx, "alex@example.com", customerID).
		Return("cus_123", nil).Once()
	suite.mockPayments.On("CreateCheckoutSession", ctx, mock.AnythingOfType("gateways.CheckoutSessionParams")).
		Return(nil, context.DeadlineExceeded).Once()

	resp, err := suite.service.CreateCheckout(ctx, customerID, "alex@example.com", dto.CreateCheckoutRequest{
		HostingPlanRef: "starter",
	})

	suite.Require().Error(err)
	suite.Nil(resp)
	// The pending order was persisted before the provider call, so the crash
	// window leaves a reconcilable record.
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *CheckoutServiceTestSuite) TestCancelOrder_Pending() {
	ctx := context.Background()
	customerID := uuid.NewString()
	orderID := uuid.NewString()

	order := &domain.Order{
		OrderID:    orderID,
		CustomerID: customerID,
		Status:     domain.OrderStatusPending,
	}
	suite.mockOrderRepo.On("FindOrderByID", ctx, orderID).Return(order, nil).Once()
	suite.mockOrderRepo.On("MarkOrderCancelledIfPending", ctx, orderID, customerID).Return(true, nil).Once()
	suite.mockNotifier.On("Publish", ctx, mock.MatchedBy(func(ev domain.Event) bool {
		return ev.Name == domain.EventOrderCancelled
	})).Return(nil).Once()

	err := suite.service.CancelOrder(ctx, orderID, customerID)

	suite.Require().NoError(err)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *CheckoutServiceTestSuite) TestCancelOrder_PaidRejected() {
	ctx := context.Background()
	customerID := uuid.NewString()
	orderID := uuid.NewString()

	order := &domain.Order{
		OrderID:    orderID,
		CustomerID: customerID,
		Status:     domain.OrderStatusPaid,
	}
	suite.mockOrderRepo.On("FindOrderByID", ctx, orderID).Return(order, nil).Once()

	err := suite.service.CancelOrder(ctx, orderID, customerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "MarkOrderCancelledIfPending")
	suite.mockNotifier.AssertNotCalled(suite.T(), "Publish")
}

func (suite *CheckoutServiceTestSuite) TestGetOrder_ForeignOrderHidden() {
	ctx := context.Background()
	orderID := uuid.NewString()

	order := &domain.Order{
		OrderID:    orderID,
		CustomerID: uuid.NewString(),
		Status:     domain.OrderStatusPending,
	}
	suite.mockOrderRepo.On("FindOrderByID", ctx, orderID).Return(order, nil).Once()

	got, err := suite.service.GetOrder(ctx, orderID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestCheckoutServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CheckoutServiceTestSuite))
}
