package domain

import (
	"github.com/shopspring/decimal"
)

// PendingDomainOrderStatus is the manual-review lifecycle state.
type PendingDomainOrderStatus string

const (
	PendingDomainOrderStatusPendingReview PendingDomainOrderStatus = "PENDING_REVIEW"
	PendingDomainOrderStatusApproved      PendingDomainOrderStatus = "APPROVED"
	PendingDomainOrderStatusRejected      PendingDomainOrderStatus = "REJECTED"
	PendingDomainOrderStatusPaid          PendingDomainOrderStatus = "PAID"
)

// pendingDomainOrderTransitions enumerates the monotonic manual-review flow:
// PENDING_REVIEW -> {APPROVED | REJECTED} -> PAID, with REJECTED terminal.
var pendingDomainOrderTransitions = map[PendingDomainOrderStatus][]PendingDomainOrderStatus{
	PendingDomainOrderStatusPendingReview: {PendingDomainOrderStatusApproved, PendingDomainOrderStatusRejected},
	PendingDomainOrderStatusApproved:      {PendingDomainOrderStatusPaid},
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
func (s PendingDomainOrderStatus) CanTransitionTo(next PendingDomainOrderStatus) bool {
	for _, allowed := range pendingDomainOrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PendingDomainOrder is a registrar purchase that requires human verification
// before the customer is charged. It is a deliberately separate, slower-path
// state machine from the automated Order flow and is never merged with it.
type PendingDomainOrder struct {
	PendingOrderID    string                   `json:"pendingOrderID"`
	UserID            string                   `json:"userID"`
	DomainName        string                   `json:"domainName"`
	Years             int                      `json:"years"`
	TotalEstimate     decimal.Decimal          `json:"totalEstimate"`
	CurrencyCode      string                   `json:"currencyCode"`
	HostingPackageRef string                   `json:"hostingPackageRef,omitempty"`
	Status            PendingDomainOrderStatus `json:"status"`
	AdminNotes        string                   `json:"adminNotes,omitempty"`
	AuditFields
}
