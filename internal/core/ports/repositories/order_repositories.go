package repositories

import (
	"context"
	"time"

	"github.com/oakhost/oakhost_backend/internal/core/domain"
)

// OrderReader defines read operations for order data
type OrderReader interface {
	// FindOrderByID retrieves an order by its ID.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
}

// OrderWriter defines write operations for order data. Status transitions are
// compare-and-set: they only write when the current status matches the
// expected predecessor and report whether a row was actually updated, so
// concurrent writers converge without double-firing side effects.
type OrderWriter interface {
	// SaveOrder persists a new order in status pending.
	SaveOrder(ctx context.Context, order domain.Order) error

	// SetOrderSessionID records the payment-provider session on a pending order.
	SetOrderSessionID(ctx context.Context, orderID, sessionID string, updatedBy string) error

	// MarkOrderPaidIfPending transitions pending -> paid. Returns true when this
	// call performed the transition, false when the order was no longer pending.
	MarkOrderPaidIfPending(ctx context.Context, orderID string, paidAt time.Time, updatedBy string) (bool, error)

	// MarkOrderCancelledIfPending transitions pending -> cancelled. It has no
	// effect once the order is paid.
	MarkOrderCancelledIfPending(ctx context.Context, orderID string, updatedBy string) (bool, error)

	// MarkOrderProvisioningRequestedIfPaid transitions paid -> provisioning_requested.
	MarkOrderProvisioningRequestedIfPaid(ctx context.Context, orderID string, updatedBy string) (bool, error)
}

// OrderRepositoryFacade combines all order-related repository interfaces
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}
