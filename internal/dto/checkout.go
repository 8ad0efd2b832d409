package dto

import (
	"time"

	"github.com/oakhost/oakhost_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCheckoutRequest defines the payload for the unified checkout entry
// point. At least one of HostingPlanRef and DomainQuote must be present.
type CreateCheckoutRequest struct {
	HostingPlanRef string             `json:"hostingPlanRef,omitempty"`
	DomainQuote    *LockedDomainQuote `json:"domainQuote,omitempty"`
}

// CheckoutResponse contains the provider-hosted redirect target and the
// durable order created for reconciliation.
type CheckoutResponse struct {
	RedirectURL string `json:"redirectUrl"`
	OrderID     string `json:"orderId"`
}

// OrderItemResponse is one order line in API responses.
type OrderItemResponse struct {
	Type        string          `json:"type"`
	RefID       string          `json:"refId"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Years       int             `json:"years,omitempty"`
}

// OrderResponse defines the API response for an order.
type OrderResponse struct {
	OrderID      string              `json:"orderId"`
	CustomerID   string              `json:"customerId"`
	Items        []OrderItemResponse `json:"items"`
	TotalAmount  decimal.Decimal     `json:"totalAmount"`
	CurrencyCode string              `json:"currencyCode"`
	Status       string              `json:"status"`
	PaidAt       *time.Time          `json:"paidAt,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// ToOrderResponse converts a domain.Order to OrderResponse DTO
func ToOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			Type:        string(it.Type),
			RefID:       it.RefID,
			Description: it.Description,
			Price:       it.Price,
			Years:       it.Years,
		}
	}
	return OrderResponse{
		OrderID:      o.OrderID,
		CustomerID:   o.CustomerID,
		Items:        items,
		TotalAmount:  o.TotalAmount,
		CurrencyCode: o.CurrencyCode,
		Status:       string(o.Status),
		PaidAt:       o.PaidAt,
		CreatedAt:    o.CreatedAt,
	}
}
