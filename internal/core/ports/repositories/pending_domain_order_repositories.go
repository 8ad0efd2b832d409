package repositories

import (
	"context"

	"github.com/oakhost/oakhost_backend/internal/core/domain"
)

// PendingDomainOrderReader defines read operations for manual-review domain orders
type PendingDomainOrderReader interface {
	// FindPendingDomainOrderByID retrieves a pending domain order by its ID.
	FindPendingDomainOrderByID(ctx context.Context, pendingOrderID string) (*domain.PendingDomainOrder, error)

	// ListPendingDomainOrders lists orders, optionally filtered by status, with
	// offset pagination. Returns the page and the total row count.
	ListPendingDomainOrders(ctx context.Context, status *domain.PendingDomainOrderStatus, page, pageSize int) ([]domain.PendingDomainOrder, int, error)
}

// PendingDomainOrderWriter defines write operations for manual-review domain orders
type PendingDomainOrderWriter interface {
	// SavePendingDomainOrder persists a new order in status PENDING_REVIEW.
	SavePendingDomainOrder(ctx context.Context, order domain.PendingDomainOrder) error

	// UpdatePendingDomainOrderStatus transitions from -> to with compare-and-set
	// semantics: the write only happens while the row is still in the expected
	// from status. Returns true when this call performed the transition.
	UpdatePendingDomainOrderStatus(ctx context.Context, pendingOrderID string, from, to domain.PendingDomainOrderStatus, adminNotes string, updatedBy string) (bool, error)
}

// PendingDomainOrderRepositoryFacade combines all pending-domain-order repository interfaces
type PendingDomainOrderRepositoryFacade interface {
	PendingDomainOrderReader
	PendingDomainOrderWriter
}
