package services_test

import (
	"context"
	"time"

	"github.com/oakhost/oakhost_backend/internal/core/domain"
	portsgw "github.com/oakhost/oakhost_backend/internal/core/ports/gateways"
	"github.com/stretchr/testify/mock"
)

// Shared mocks for the repository and gateway ports used across the service
// test suites.

// MockOrderRepository is a mock type for the OrderRepositoryFacade interface
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) SetOrderSessionID(ctx context.Context, orderID, sessionID string, updatedBy string) error {
	args := m.Called(ctx, orderID, sessionID, updatedBy)
	return args.Error(0)
}

func (m *MockOrderRepository) MarkOrderPaidIfPending(ctx context.Context, orderID string, paidAt time.Time, updatedBy string) (bool, error) {
	args := m.Called(ctx, orderID, paidAt, updatedBy)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) MarkOrderCancelledIfPending(ctx context.Context, orderID string, updatedBy string) (bool, error) {
	args := m.Called(ctx, orderID, updatedBy)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) MarkOrderProvisioningRequestedIfPaid(ctx context.Context, orderID string, updatedBy string) (bool, error) {
	args := m.Called(ctx, orderID, updatedBy)
	return args.Bool(0), args.Error(1)
}

// MockInvoiceRepository is a mock type for the InvoiceRepositoryFacade interface
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByOrderID(ctx context.Context, orderID string) (*domain.Invoice, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) MarkInvoicePaidIfPending(ctx context.Context, invoiceID string, paidAt time.Time, updatedBy string) (bool, error) {
	args := m.Called(ctx, invoiceID, paidAt, updatedBy)
	return args.Bool(0), args.Error(1)
}

// MockPaymentGateway is a mock type for the PaymentGateway interface
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) ResolveCustomer(ctx context.Context, email, name string) (string, error) {
	args := m.Called(ctx, email, name)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, params portsgw.CheckoutSessionParams) (*portsgw.CheckoutSession, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsgw.CheckoutSession), args.Error(1)
}

func (m *MockPaymentGateway) GetSession(ctx context.Context, sessionID string) (*portsgw.SessionStatus, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsgw.SessionStatus), args.Error(1)
}

// MockNotifier is a mock type for the Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(ctx context.Context, event domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockProvisioner is a mock type for the Provisioner interface
type MockProvisioner struct {
	mock.Mock
}

func (m *MockProvisioner) Activate(ctx context.Context, ref string, kind domain.ProvisioningKind) error {
	args := m.Called(ctx, ref, kind)
	return args.Error(0)
}

// MockQuoteConfirmer is a mock type for the QuoteConfirmer interface
type MockQuoteConfirmer struct {
	mock.Mock
}

func (m *MockQuoteConfirmer) ConfirmQuote(ctx context.Context, quote domain.DomainQuote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

// MockProvisioningSvc is a mock type for the ProvisioningSvcFacade interface
type MockProvisioningSvc struct {
	mock.Mock
}

func (m *MockProvisioningSvc) DispatchOrder(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// MockPendingDomainOrderRepository is a mock type for the PendingDomainOrderRepositoryFacade interface
type MockPendingDomainOrderRepository struct {
	mock.Mock
}

func (m *MockPendingDomainOrderRepository) FindPendingDomainOrderByID(ctx context.Context, pendingOrderID string) (*domain.PendingDomainOrder, error) {
	args := m.Called(ctx, pendingOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingDomainOrder), args.Error(1)
}

func (m *MockPendingDomainOrderRepository) ListPendingDomainOrders(ctx context.Context, status *domain.PendingDomainOrderStatus, page, pageSize int) ([]domain.PendingDomainOrder, int, error) {
	args := m.Called(ctx, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PendingDomainOrder), args.Int(1), args.Error(2)
}

func (m *MockPendingDomainOrderRepository) SavePendingDomainOrder(ctx context.Context, order domain.PendingDomainOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPendingDomainOrderRepository) UpdatePendingDomainOrderStatus(ctx context.Context, pendingOrderID string, from, to domain.PendingDomainOrderStatus, adminNotes string, updatedBy string) (bool, error) {
	args := m.Called(ctx, pendingOrderID, from, to, adminNotes, updatedBy)
	return args.Bool(0), args.Error(1)
}

// MockExchangeRateReader is a mock type for the ExchangeRateReader interface
type MockExchangeRateReader struct {
	mock.Mock
}

func (m *MockExchangeRateReader) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// MockTldPricingReader is a mock type for the TldPricingReader interface
type MockTldPricingReader struct {
	mock.Mock
}

func (m *MockTldPricingReader) FindTldPricing(ctx context.Context, tld string) (*domain.TldPriceEntry, error) {
	args := m.Called(ctx, tld)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TldPriceEntry), args.Error(1)
}

// MockDomainQuoter is a mock type for the DomainQuoter interface
type MockDomainQuoter struct {
	mock.Mock
}

func (m *MockDomainQuoter) Quote(ctx context.Context, domainName string, years int, idProtection bool) (*domain.DomainQuote, error) {
	args := m.Called(ctx, domainName, years, idProtection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DomainQuote), args.Error(1)
}
