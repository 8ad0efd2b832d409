package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an Order.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	// OrderStatusProvisioningRequested is the terminal success state, entered
	// after a successful dispatch to provisioning. Dispatch failures leave the
	// order at paid; payment and provisioning are decoupled failure domains.
	OrderStatusProvisioningRequested OrderStatus = "provisioning_requested"
	OrderStatusCancelled             OrderStatus = "cancelled"
)

// orderTransitions enumerates the allowed status transitions. No state is ever
// revisited.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusProvisioningRequested},
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible from s.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// OrderItemType distinguishes the two kinds of line item an order may carry.
type OrderItemType string

const (
	OrderItemHosting OrderItemType = "hosting"
	OrderItemDomain  OrderItemType = "domain"
)

// OrderItem is one line of an order. Price is the locked amount carried in
// from the quote or plan catalog, never re-derived at settlement time.
type OrderItem struct {
	Type        OrderItemType   `json:"type"`
	RefID       string          `json:"refID"` // hosting plan id or domain name
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Years       int             `json:"years,omitempty"` // domain items only
}

// Order is the durable record of a customer's intent to purchase hosting and/or
// a domain. It is owned exclusively by the checkout/reconciliation pair; after
// paid it is never mutated except by the provisioning-status annotation.
type Order struct {
	OrderID         string          `json:"orderID"`
	CustomerID      string          `json:"customerID"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	CurrencyCode    string          `json:"currencyCode"`
	Status          OrderStatus     `json:"status"`
	StripeSessionID string          `json:"stripeSessionID"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	AuditFields
}

// DomainItem returns the domain line item, if the order has one.
func (o Order) DomainItem() (OrderItem, bool) {
	for _, it := range o.Items {
		if it.Type == OrderItemDomain {
			return it, true
		}
	}
	return OrderItem{}, false
}

// HostingItem returns the hosting line item, if the order has one.
func (o Order) HostingItem() (OrderItem, bool) {
	for _, it := range o.Items {
		if it.Type == OrderItemHosting {
			return it, true
		}
	}
	return OrderItem{}, false
}
