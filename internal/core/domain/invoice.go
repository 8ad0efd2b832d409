package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the settlement state of an Invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending  InvoiceStatus = "pending"
	InvoiceStatusPaid     InvoiceStatus = "paid"
	InvoiceStatusFailed   InvoiceStatus = "failed"
	InvoiceStatusRefunded InvoiceStatus = "refunded"
)

// Invoice is the settlement record attached to an Order. Marking an already
// paid invoice as paid is a no-op, not an error.
type Invoice struct {
	InvoiceID       string          `json:"invoiceID"`
	CustomerID      string          `json:"customerID"`
	OrderID         string          `json:"orderID"`
	InvoiceNumber   string          `json:"invoiceNumber"` // unique, e.g. "INV-4F2A9C01"
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	Status          InvoiceStatus   `json:"status"`
	StripeSessionID string          `json:"stripeSessionID"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	AuditFields
}
