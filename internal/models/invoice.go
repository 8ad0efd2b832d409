package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the invoices row. invoice_number carries a unique constraint.
type Invoice struct {
	InvoiceID       string          `json:"invoiceID"`
	CustomerID      string          `json:"customerID"`
	OrderID         string          `json:"orderID"`
	InvoiceNumber   string          `json:"invoiceNumber"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	Status          string          `json:"status"`
	StripeSessionID string          `json:"stripeSessionID"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	AuditFields
}
