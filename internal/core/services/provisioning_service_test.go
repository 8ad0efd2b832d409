package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/oakhost/oakhost_backend/internal/apperrors"
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	"github.com/oakhost/oakhost_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ProvisioningServiceTestSuite struct {
	suite.Suite
	mockOrderRepo   *MockOrderRepository
	mockProvisioner *MockProvisioner
	mockNotifier    *MockNotifier
	service         *services.ProvisioningService
}

func (suite *ProvisioningServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockProvisioner = new(MockProvisioner)
	suite.mockNotifier = new(MockNotifier)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := services.NewEventDispatcher(suite.mockNotifier, logger)
	suite.service = services.NewProvisioningService(suite.mockOrderRepo, suite.mockProvisioner, dispatcher, logger)
}

func (suite *ProvisioningServiceTestSuite) paidOrderWithBothLines(orderID string) *domain.Order {
	return &domain.Order{
		OrderID:    orderID,
		CustomerID: uuid.NewString(),
		Status:     domain.OrderStatusPaid,
		Items: []domain.OrderItem{
			{Type: domain.OrderItemHosting, RefID: "starter", Price: decimal.RequireFromString("4.99")},
			{Type: domain.OrderItemDomain, RefID: "example.com", Years: 1, Price: decimal.RequireFromString("8.99")},
		},
	}
}

// --- Test Cases ---

func (suite *ProvisioningServiceTestSuite) TestDispatchOrder_AllLinesActivated() {
	ctx := context.Background()
	orderID := uuid.NewString()

	suite.mockOrderRepo.On("FindOrderByID", ctx, orderID).
		Return(suite.paidOrderWithBothLines(orderID), nil).Once()
	suite.mockProvisioner.On("Activate", ctx, "starter", domain.ProvisioningKindHosting).Return(nil).Once()
	suite.mockProvisioner.On("Activate", ctx, "example.com", domain.ProvisioningKindDomain).Return(nil).Once()
	suite.mockOrderRepo.On("MarkOrderProvisioningRequestedIfPaid", ctx, orderID, "provisioning").
		Return(true, nil).Once()
	suite.mockNotifier.On("Publish", ctx, mock.MatchedBy(func(ev domain.Event) bool {
		return ev.Name == domain.EventProvisioningRequested
	})).Return(nil).Once()

	err := suite.service.DispatchOrder(ctx, orderID)

	suite.Require().NoError(err)
	suite.mockProvisioner.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *ProvisioningServiceTestSuite) TestDispatchOrder_PartialFailureKeepsOrderPaid() {
	ctx := context.Background()
	orderID := uuid.NewString()

	suite.mockOrderRepo.On("FindOrderByID", ctx, orderID).
		Return(suite.paidOrderWithBothLines(orderID), nil).Once()
	suite.mockProvisioner.On("Activate", ctx, "starter", domain.ProvisioningKindHosting).Return(nil).Once()
	suite.mockProvisioner.On("Activate", ctx, "example.com", domain.ProvisioningKindDomain).
		Return(context.DeadlineExceeded).Once()
	suite.mockNotifier.On("Publish", ctx, mock.MatchedBy(func(ev domain.Event) bool {
		return ev.Name == domain.EventProvisioningDispatchFail
	})).Return(nil).Once()

	err := suite.service.DispatchOrder(ctx, orderID)

	suite.Require().Error(err)
	// The order stays paid so a retry can re-dispatch.
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "MarkOrderProvisioningRequestedIfPaid")
}

func (suite *ProvisioningServiceTestSuite) TestDispatchOrder_PendingOrderRejected() {
	ctx := context.Background()
	orderID := uuid.NewString()

	order := suite.paidOrderWithBothLines(orderID)
	order.Status = domain.OrderStatusPending
	suite.mockOrderRepo.On("FindOrderByID", ctx, orderID).Return(order, nil).Once()

	err := suite.service.DispatchOrder(ctx, orderID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockProvisioner.AssertNotCalled(suite.T(), "Activate")
}

func TestProvisioningServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProvisioningServiceTestSuite))
}
