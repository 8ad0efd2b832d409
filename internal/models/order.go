package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is one element of the orders.items JSONB column.
type OrderItem struct {
	Type        string          `json:"type"`
	RefID       string          `json:"refID"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Years       int             `json:"years,omitempty"`
}

// Order is the orders row.
type Order struct {
	OrderID         string          `json:"orderID"`
	CustomerID      string          `json:"customerID"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	CurrencyCode    string          `json:"currencyCode"`
	Status          string          `json:"status"`
	StripeSessionID *string         `json:"stripeSessionID,omitempty"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	AuditFields
}
