package domain

import "time"

// Event names emitted by the core for the notification/audit collaborator.
const (
	EventPaymentConfirmed         = "payment_confirmed"
	EventOrderCancelled           = "order_cancelled"
	EventDomainOrderSubmitted     = "domain_order_submitted"
	EventDomainOrderApproved      = "domain_order_approved"
	EventDomainOrderRejected      = "domain_order_rejected"
	EventProvisioningRequested    = "provisioning_requested"
	EventProvisioningDispatchFail = "provisioning_dispatch_failed"
)

// Event is a post-commit domain event. Core services append events to their
// results instead of calling notification plumbing inline; a dispatcher drains
// them after the state change has committed. Delivery is best-effort and its
// failure never affects the originating transaction.
type Event struct {
	Name       string         `json:"name"`
	SubjectID  string         `json:"subjectID"` // customer/user the event concerns
	OccurredAt time.Time      `json:"occurredAt"`
	Properties map[string]any `json:"properties,omitempty"`
}
