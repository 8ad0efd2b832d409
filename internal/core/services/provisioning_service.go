package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oakhost/oakhost_backend/internal/apperrors"
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	portsgw "github.com/oakhost/oakhost_backend/internal/core/ports/gateways"
	portsrepo "github.com/oakhost/oakhost_backend/internal/core/ports/repositories"
)

// ProvisioningService dispatches paid orders to the downstream activation
// service. A failed activation for one line does not block the others; the
// order only advances to provisioning_requested when every line dispatched.
type ProvisioningService struct {
	orderRepo   portsrepo.OrderRepositoryFacade
	provisioner portsgw.Provisioner
	dispatcher  *EventDispatcher
	logger      *slog.Logger
}

// NewProvisioningService creates a new ProvisioningService.
func NewProvisioningService(orderRepo portsrepo.OrderRepositoryFacade, provisioner portsgw.Provisioner, dispatcher *EventDispatcher, logger *slog.Logger) *ProvisioningService {
	return &ProvisioningService{
		orderRepo:   orderRepo,
		provisioner: provisioner,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// DispatchOrder activates every line of a paid order. Only a paid order may
// dispatch; a pending or cancelled order is rejected, and a fully dispatched
// order advances to provisioning_requested exactly once.
func (s *ProvisioningService) DispatchOrder(ctx context.Context, orderID string) error {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to fetch order: %w", err)
	}
	if order.Status != domain.OrderStatusPaid {
		return fmt.Errorf("%w: order %s is %s, only paid orders dispatch",
			apperrors.ErrInvalidTransition, orderID, order.Status)
	}

	var failed []string
	for _, item := range order.Items {
		kind := domain.ProvisioningKindHosting
		if item.Type == domain.OrderItemDomain {
			kind = domain.ProvisioningKindDomain
		}
		if err := s.provisioner.Activate(ctx, item.RefID, kind); err != nil {
			failed = append(failed, item.RefID)
			s.logger.ErrorContext(ctx, "activation failed",
				slog.String("orderID", orderID),
				slog.String("ref", item.RefID),
				slog.String("kind", string(kind)),
				slog.String("error", err.Error()))
			s.dispatcher.Dispatch(ctx, []domain.Event{{
				Name:       domain.EventProvisioningDispatchFail,
				SubjectID:  order.CustomerID,
				OccurredAt: time.Now(),
				Properties: map[string]any{
					"orderID": orderID,
					"ref":     item.RefID,
					"kind":    string(kind),
					"error":   err.Error(),
				},
			}})
		}
	}
	if len(failed) > 0 {
		// The order stays paid so a retry can re-dispatch all lines.
		return fmt.Errorf("activation failed for %d of %d order lines", len(failed), len(order.Items))
	}

	did, err := s.orderRepo.MarkOrderProvisioningRequestedIfPaid(ctx, orderID, "provisioning")
	if err != nil {
		return fmt.Errorf("failed to advance order status: %w", err)
	}
	if did {
		s.dispatcher.Dispatch(ctx, []domain.Event{{
			Name:       domain.EventProvisioningRequested,
			SubjectID:  order.CustomerID,
			OccurredAt: time.Now(),
			Properties: map[string]any{"orderID": orderID},
		}})
	}
	return nil
}
