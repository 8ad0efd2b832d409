package services

import (
	"context"

	"github.com/oakhost/oakhost_backend/internal/core/domain"
	"github.com/oakhost/oakhost_backend/internal/dto"
)

// PendingDomainOrderSvcFacade drives the manual-review purchase path. Status
// moves monotonically along PENDING_REVIEW -> {APPROVED | REJECTED} -> PAID;
// REJECTED is terminal and any other move fails with ErrInvalidTransition.
type PendingDomainOrderSvcFacade interface {
	SubmitPendingDomainOrder(ctx context.Context, req dto.CreatePendingDomainOrderRequest, userID string) (*domain.PendingDomainOrder, error)
	GetPendingDomainOrder(ctx context.Context, pendingOrderID string) (*domain.PendingDomainOrder, error)
	ListPendingDomainOrders(ctx context.Context, status *domain.PendingDomainOrderStatus, page, pageSize int) ([]domain.PendingDomainOrder, int, error)
	ApprovePendingDomainOrder(ctx context.Context, pendingOrderID, adminNotes, adminUserID string) (*domain.PendingDomainOrder, error)
	RejectPendingDomainOrder(ctx context.Context, pendingOrderID, adminNotes, adminUserID string) (*domain.PendingDomainOrder, error)
	MarkPendingDomainOrderPaid(ctx context.Context, pendingOrderID, adminUserID string) (*domain.PendingDomainOrder, error)
}
