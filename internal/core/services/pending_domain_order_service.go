package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/oakhost/oakhost_backend/internal/apperrors"
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	portsrepo "github.com/oakhost/oakhost_backend/internal/core/ports/repositories"
	"github.com/oakhost/oakhost_backend/internal/dto"
)

// DomainQuoter is the slice of the quote engine the manual-review path needs.
type DomainQuoter interface {
	Quote(ctx context.Context, domainName string, years int, idProtection bool) (*domain.DomainQuote, error)
}

// PendingDomainOrderService drives the manual-review purchase path for
// registrations an operator must vet before money moves.
type PendingDomainOrderService struct {
	repo       portsrepo.PendingDomainOrderRepositoryFacade
	quotes     DomainQuoter
	dispatcher *EventDispatcher
	logger     *slog.Logger
}

// NewPendingDomainOrderService creates a new PendingDomainOrderService.
func NewPendingDomainOrderService(repo portsrepo.PendingDomainOrderRepositoryFacade, quotes DomainQuoter, dispatcher *EventDispatcher, logger *slog.Logger) *PendingDomainOrderService {
	return &PendingDomainOrderService{
		repo:       repo,
		quotes:     quotes,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// SubmitPendingDomainOrder records a manual-review purchase request. The
// price is a non-binding estimate from the quote engine; the reviewer sees it
// alongside the request but the customer is not charged here.
func (s *PendingDomainOrderService) SubmitPendingDomainOrder(ctx context.Context, req dto.CreatePendingDomainOrderRequest, userID string) (*domain.PendingDomainOrder, error) {
	quote, err := s.quotes.Quote(ctx, req.DomainName, req.Years, false)
	if err != nil {
		return nil, err
	}

	order := domain.PendingDomainOrder{
		PendingOrderID:    uuid.NewString(),
		UserID:            userID,
		DomainName:        quote.Domain,
		Years:             req.Years,
		TotalEstimate:     quote.TotalPrice,
		CurrencyCode:      quote.CurrencyCode,
		HostingPackageRef: req.HostingPackageRef,
		Status:            domain.PendingDomainOrderStatusPendingReview,
		AuditFields:       domain.NewAuditFields(userID),
	}
	if err := s.repo.SavePendingDomainOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save pending domain order: %w", err)
	}

	s.dispatcher.Dispatch(ctx, []domain.Event{{
		Name:       domain.EventDomainOrderSubmitted,
		SubjectID:  userID,
		OccurredAt: time.Now(),
		Properties: map[string]any{
			"pendingOrderID": order.PendingOrderID,
			"domain":         order.DomainName,
			"estimate":       order.TotalEstimate.String(),
		},
	}})
	return &order, nil
}

// GetPendingDomainOrder retrieves a manual-review order by ID.
func (s *PendingDomainOrderService) GetPendingDomainOrder(ctx context.Context, pendingOrderID string) (*domain.PendingDomainOrder, error) {
	order, err := s.repo.FindPendingDomainOrderByID(ctx, pendingOrderID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListPendingDomainOrders lists manual-review orders for the admin queue.
func (s *PendingDomainOrderService) ListPendingDomainOrders(ctx context.Context, status *domain.PendingDomainOrderStatus, page, pageSize int) ([]domain.PendingDomainOrder, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.ListPendingDomainOrders(ctx, status, page, pageSize)
}

// ApprovePendingDomainOrder moves PENDING_REVIEW -> APPROVED.
func (s *PendingDomainOrderService) ApprovePendingDomainOrder(ctx context.Context, pendingOrderID, adminNotes, adminUserID string) (*domain.PendingDomainOrder, error) {
	return s.transition(ctx, pendingOrderID, domain.PendingDomainOrderStatusApproved, adminNotes, adminUserID, domain.EventDomainOrderApproved)
}

// RejectPendingDomainOrder moves PENDING_REVIEW -> REJECTED. REJECTED is
// terminal; the customer must submit a fresh request.
func (s *PendingDomainOrderService) RejectPendingDomainOrder(ctx context.Context, pendingOrderID, adminNotes, adminUserID string) (*domain.PendingDomainOrder, error) {
	return s.transition(ctx, pendingOrderID, domain.PendingDomainOrderStatusRejected, adminNotes, adminUserID, domain.EventDomainOrderRejected)
}

// MarkPendingDomainOrderPaid moves APPROVED -> PAID once the operator has
// collected payment out of band.
func (s *PendingDomainOrderService) MarkPendingDomainOrderPaid(ctx context.Context, pendingOrderID, adminUserID string) (*domain.PendingDomainOrder, error) {
	return s.transition(ctx, pendingOrderID, domain.PendingDomainOrderStatusPaid, "", adminUserID, "")
}

func (s *PendingDomainOrderService) transition(ctx context.Context, pendingOrderID string, to domain.PendingDomainOrderStatus, adminNotes, adminUserID, eventName string) (*domain.PendingDomainOrder, error) {
	order, err := s.repo.FindPendingDomainOrderByID(ctx, pendingOrderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: pending domain order %s cannot move from %s to %s",
			apperrors.ErrInvalidTransition, pendingOrderID, order.Status, to)
	}

	did, err := s.repo.UpdatePendingDomainOrderStatus(ctx, pendingOrderID, order.Status, to, adminNotes, adminUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to update pending domain order status: %w", err)
	}
	if !did {
		// A concurrent reviewer decided first.
		return nil, fmt.Errorf("%w: pending domain order %s is no longer %s",
			apperrors.ErrInvalidTransition, pendingOrderID, order.Status)
	}

	order.Status = to
	if adminNotes != "" {
		order.AdminNotes = adminNotes
	}
	order.LastUpdatedBy = adminUserID
	order.LastUpdatedAt = time.Now()

	if eventName != "" {
		s.dispatcher.Dispatch(ctx, []domain.Event{{
			Name:       eventName,
			SubjectID:  order.UserID,
			OccurredAt: time.Now(),
			Properties: map[string]any{
				"pendingOrderID": pendingOrderID,
				"domain":         order.DomainName,
				"reviewedBy":     adminUserID,
			},
		}})
	}

	s.logger.InfoContext(ctx, "pending domain order transitioned",
		slog.String("pendingOrderID", pendingOrderID),
		slog.String("to", string(to)),
		slog.String("by", adminUserID))
	return order, nil
}
