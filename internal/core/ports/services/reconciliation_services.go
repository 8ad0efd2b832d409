package services

import (
	"context"

	"github.com/oakhost/oakhost_backend/internal/dto"
)

// ReconciliationSvcFacade verifies payment-provider session status and settles
// the matching Order/Invoice exactly once. Both the user-facing redirect poll
// and the provider webhook funnel into Verify; concurrent calls for the same
// session converge on one paid state, one provisioning dispatch and one
// notification.
type ReconciliationSvcFacade interface {
	Verify(ctx context.Context, sessionID string) (*dto.VerifyPaymentResponse, error)
}

// ProvisioningSvcFacade enqueues downstream activation once payment is
// confirmed. Dispatch is fire-and-forget relative to the payment path:
// activation failures surface via the notifier and never revert paid state.
type ProvisioningSvcFacade interface {
	DispatchOrder(ctx context.Context, orderID string) error
}
