package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oakhost/oakhost_backend/internal/apperrors"
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	portsgw "github.com/oakhost/oakhost_backend/internal/core/ports/gateways"
	portsrepo "github.com/oakhost/oakhost_backend/internal/core/ports/repositories"
	portssvc "github.com/oakhost/oakhost_backend/internal/core/ports/services"
	"github.com/oakhost/oakhost_backend/internal/dto"
)

// ReconciliationService settles orders against the payment provider's view of
// a checkout session. Exactly-once settlement rests on the compare-and-set
// order transition: whichever caller flips pending to paid runs the side
// effects, every other caller sees the already-paid order and returns the same
// response.
type ReconciliationService struct {
	orderRepo    portsrepo.OrderRepositoryFacade
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	payments     portsgw.PaymentGateway
	provisioning portssvc.ProvisioningSvcFacade
	dispatcher   *EventDispatcher
	maxAttempts  int
	baseDelay    time.Duration
	logger       *slog.Logger
}

// NewReconciliationService creates a new ReconciliationService. maxAttempts
// bounds the provider polls per Verify call; delays between attempts double
// from baseDelay.
func NewReconciliationService(
	orderRepo portsrepo.OrderRepositoryFacade,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	payments portsgw.PaymentGateway,
	provisioning portssvc.ProvisioningSvcFacade,
	dispatcher *EventDispatcher,
	maxAttempts int,
	baseDelay time.Duration,
	logger *slog.Logger,
) *ReconciliationService {
	if maxAttempts < 1 {
		maxAttempts = 4
	}
	if baseDelay <= 0 {
		baseDelay = 2 * time.Second
	}
	return &ReconciliationService{
		orderRepo:    orderRepo,
		invoiceRepo:  invoiceRepo,
		payments:     payments,
		provisioning: provisioning,
		dispatcher:   dispatcher,
		maxAttempts:  maxAttempts,
		baseDelay:    baseDelay,
		logger:       logger,
	}
}

// Verify polls the provider session until it reports paid or attempts run
// out. An unsettled session is not an error: the caller gets "unsettled" and
// the webhook or a later poll completes settlement.
func (s *ReconciliationService) Verify(ctx context.Context, sessionID string) (*dto.VerifyPaymentResponse, error) {
	if sessionID == "" {
		return nil, apperrors.NewValidationError("session id is required")
	}

	status, err := s.pollSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	orderID := status.OrderID
	if orderID == "" {
		// Sessions not created by this backend carry no order metadata.
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no order linked to session %s", sessionID))
	}

	if !status.Paid {
		s.logger.InfoContext(ctx, "session still unpaid after retries",
			slog.String("sessionID", sessionID),
			slog.String("orderID", orderID))
		return &dto.VerifyPaymentResponse{PaymentStatus: dto.PaymentStatusUnsettled, OrderID: orderID}, nil
	}

	if err := s.settle(ctx, orderID, sessionID); err != nil {
		return nil, err
	}
	return &dto.VerifyPaymentResponse{PaymentStatus: dto.PaymentStatusPaid, OrderID: orderID}, nil
}

// pollSession fetches session status with bounded exponential backoff: an
// immediate attempt, then baseDelay, 2x, 4x... for the remaining attempts,
// stopping early once the session reports paid.
func (s *ReconciliationService) pollSession(ctx context.Context, sessionID string) (*portsgw.SessionStatus, error) {
	var status *portsgw.SessionStatus
	delay := s.baseDelay
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
		var err error
		status, err = s.payments.GetSession(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch session %s: %w", sessionID, err)
		}
		if status.Paid {
			return status, nil
		}
	}
	return status, nil
}

// settle performs the pending -> paid transition and, only when this call won
// the transition, runs the side effects: invoice settlement, provisioning
// dispatch and the payment-confirmed event.
func (s *ReconciliationService) settle(ctx context.Context, orderID, sessionID string) error {
	paidAt := time.Now()
	did, err := s.orderRepo.MarkOrderPaidIfPending(ctx, orderID, paidAt, "reconciliation")
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	if !did {
		// Another verification (webhook vs redirect poll) already settled it.
		s.logger.InfoContext(ctx, "order already settled",
			slog.String("orderID", orderID), slog.String("sessionID", sessionID))
		return nil
	}

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to fetch settled order: %w", err)
	}

	if err := s.settleInvoice(ctx, orderID, paidAt); err != nil {
		// The order is paid; a lagging invoice is an ops concern, not a
		// reason to report failure to the payer.
		s.logger.ErrorContext(ctx, "failed to settle invoice",
			slog.String("orderID", orderID), slog.String("error", err.Error()))
	}

	if err := s.provisioning.DispatchOrder(ctx, orderID); err != nil {
		s.logger.ErrorContext(ctx, "provisioning dispatch failed",
			slog.String("orderID", orderID), slog.String("error", err.Error()))
	}

	s.dispatcher.Dispatch(ctx, []domain.Event{{
		Name:       domain.EventPaymentConfirmed,
		SubjectID:  order.CustomerID,
		OccurredAt: paidAt,
		Properties: map[string]any{
			"orderID":   orderID,
			"sessionID": sessionID,
			"amount":    order.TotalAmount.String(),
			"currency":  order.CurrencyCode,
		},
	}})
	return nil
}

func (s *ReconciliationService) settleInvoice(ctx context.Context, orderID string, paidAt time.Time) error {
	invoice, err := s.invoiceRepo.FindInvoiceByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Checkout crashed between order and invoice creation.
			return nil
		}
		return err
	}
	_, err = s.invoiceRepo.MarkInvoicePaidIfPending(ctx, invoice.InvoiceID, paidAt, "reconciliation")
	return err
}
