package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oakhost/oakhost_backend/internal/apperrors"
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	portsgw "github.com/oakhost/oakhost_backend/internal/core/ports/gateways"
	portsrepo "github.com/oakhost/oakhost_backend/internal/core/ports/repositories"
	"github.com/oakhost/oakhost_backend/internal/dto"
	"github.com/oakhost/oakhost_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// QuoteConfirmer is the slice of the quote engine checkout needs: the binding
// re-validation of a locked quote.
type QuoteConfirmer interface {
	ConfirmQuote(ctx context.Context, quote domain.DomainQuote) error
}

// CheckoutService turns a hosting plan selection and/or a locked domain quote
// into a pending Order, a pending Invoice and a provider checkout session.
// The order is persisted before the provider call so a crash between the two
// leaves a reconcilable record rather than an untracked charge.
type CheckoutService struct {
	orderRepo          portsrepo.OrderRepositoryFacade
	invoiceRepo        portsrepo.InvoiceRepositoryFacade
	quotes             QuoteConfirmer
	payments           portsgw.PaymentGateway
	dispatcher         *EventDispatcher
	plans              map[string]domain.HostingPlan
	settlementCurrency string
	successURL         string
	cancelURL          string
	logger             *slog.Logger
}

// NewCheckoutService creates a new CheckoutService. plans is the static
// hosting plan catalog keyed by plan ref.
func NewCheckoutService(
	orderRepo portsrepo.OrderRepositoryFacade,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	quotes QuoteConfirmer,
	payments portsgw.PaymentGateway,
	dispatcher *EventDispatcher,
	plans map[string]domain.HostingPlan,
	settlementCurrency, successURL, cancelURL string,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:          orderRepo,
		invoiceRepo:        invoiceRepo,
		quotes:             quotes,
		payments:           payments,
		dispatcher:         dispatcher,
		plans:              plans,
		settlementCurrency: strings.ToUpper(settlementCurrency),
		successURL:         successURL,
		cancelURL:          cancelURL,
		logger:             logger,
	}
}

// CreateCheckout implements the unified checkout entry point.
func (s *CheckoutService) CreateCheckout(ctx context.Context, customerID, customerEmail string, req dto.CreateCheckoutRequest) (*dto.CheckoutResponse, error) {
	if req.HostingPlanRef == "" && req.DomainQuote == nil {
		return nil, apperrors.NewValidationError("checkout requires a hosting plan, a domain quote, or both")
	}

	var items []domain.OrderItem
	var lines []portsgw.SessionLine
	total := decimal.Zero

	if req.HostingPlanRef != "" {
		plan, ok := s.plans[req.HostingPlanRef]
		if !ok {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("hosting plan %q not found", req.HostingPlanRef))
		}
		items = append(items, domain.OrderItem{
			Type:        domain.OrderItemHosting,
			RefID:       plan.Ref,
			Description: plan.Name,
			Price:       plan.MonthlyPrice,
		})
		lines = append(lines, portsgw.SessionLine{
			Description: plan.Name,
			Amount:      plan.MonthlyPrice,
			Recurring:   true,
			Quantity:    1,
		})
		total = total.Add(plan.MonthlyPrice)
	}

	if req.DomainQuote != nil {
		quote := domain.DomainQuote{
			Domain:       req.DomainQuote.Domain,
			Years:        req.DomainQuote.Years,
			IDProtection: req.DomainQuote.IDProtection,
			TotalPrice:   req.DomainQuote.TotalPrice,
			CurrencyCode: req.DomainQuote.CurrencyCode,
			QuotedAt:     req.DomainQuote.QuotedAt,
		}
		if err := s.quotes.ConfirmQuote(ctx, quote); err != nil {
			return nil, err
		}
		desc := fmt.Sprintf("Domain registration %s (%d year(s))", quote.Domain, quote.Years)
		if quote.IDProtection {
			desc += " with ID protection"
		}
		items = append(items, domain.OrderItem{
			Type:        domain.OrderItemDomain,
			RefID:       strings.ToLower(quote.Domain),
			Description: desc,
			Price:       quote.TotalPrice,
			Years:       quote.Years,
		})
		lines = append(lines, portsgw.SessionLine{
			Description: desc,
			Amount:      quote.TotalPrice,
			Quantity:    1,
		})
		total = total.Add(quote.TotalPrice)
	}

	order := domain.Order{
		OrderID:      uuid.NewString(),
		CustomerID:   customerID,
		Items:        items,
		TotalAmount:  total,
		CurrencyCode: s.settlementCurrency,
		Status:       domain.OrderStatusPending,
		AuditFields:  domain.NewAuditFields(customerID),
	}
	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	providerCustomerID, err := s.payments.ResolveCustomer(ctx, customerEmail, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve payment customer: %w", err)
	}

	session, err := s.payments.CreateCheckoutSession(ctx, portsgw.CheckoutSessionParams{
		CustomerID:   providerCustomerID,
		OrderID:      order.OrderID,
		CurrencyCode: s.settlementCurrency,
		SuccessURL:   s.successURL,
		CancelURL:    s.cancelURL,
		Lines:        lines,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	if err := s.orderRepo.SetOrderSessionID(ctx, order.OrderID, session.SessionID, customerID); err != nil {
		return nil, fmt.Errorf("failed to record session on order: %w", err)
	}

	invoiceNumber, err := s.newInvoiceNumber()
	if err != nil {
		return nil, err
	}
	invoice := domain.Invoice{
		InvoiceID:       uuid.NewString(),
		CustomerID:      customerID,
		OrderID:         order.OrderID,
		InvoiceNumber:   invoiceNumber,
		Amount:          total,
		CurrencyCode:    s.settlementCurrency,
		Status:          domain.InvoiceStatusPending,
		StripeSessionID: session.SessionID,
		AuditFields:     domain.NewAuditFields(customerID),
	}
	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.logger.InfoContext(ctx, "checkout session created",
		slog.String("orderID", order.OrderID),
		slog.String("sessionID", session.SessionID))

	return &dto.CheckoutResponse{
		RedirectURL: session.RedirectURL,
		OrderID:     order.OrderID,
	}, nil
}

// CancelOrder transitions a pending order to cancelled. Cancelling an already
// paid or cancelled order is rejected; the caller must own the order.
func (s *CheckoutService) CancelOrder(ctx context.Context, orderID, customerID string) error {
	order, err := s.loadOwnedOrder(ctx, orderID, customerID)
	if err != nil {
		return err
	}
	if !order.Status.CanTransitionTo(domain.OrderStatusCancelled) {
		return fmt.Errorf("%w: order %s is %s and cannot be cancelled",
			apperrors.ErrInvalidTransition, orderID, order.Status)
	}
	did, err := s.orderRepo.MarkOrderCancelledIfPending(ctx, orderID, customerID)
	if err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}
	if !did {
		return fmt.Errorf("%w: order %s is no longer pending", apperrors.ErrInvalidTransition, orderID)
	}
	s.dispatcher.Dispatch(ctx, []domain.Event{{
		Name:       domain.EventOrderCancelled,
		SubjectID:  customerID,
		OccurredAt: time.Now(),
		Properties: map[string]any{"orderID": orderID},
	}})
	return nil
}

// GetOrder retrieves an order owned by the given customer.
func (s *CheckoutService) GetOrder(ctx context.Context, orderID, customerID string) (*domain.Order, error) {
	return s.loadOwnedOrder(ctx, orderID, customerID)
}

// loadOwnedOrder fetches an order and enforces ownership. A foreign order is
// reported as not found rather than forbidden to avoid leaking its existence.
func (s *CheckoutService) loadOwnedOrder(ctx context.Context, orderID, customerID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("order %s not found", orderID))
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	if order.CustomerID != customerID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order %s not found", orderID))
	}
	return order, nil
}

func (s *CheckoutService) newInvoiceNumber() (string, error) {
	suffix, err := utils.GenerateSecureRandomString(4)
	if err != nil {
		return "", fmt.Errorf("failed to generate invoice number: %w", err)
	}
	return "INV-" + strings.ToUpper(suffix), nil
}
