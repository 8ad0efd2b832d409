package gateways

import (
	"context"

	"github.com/shopspring/decimal"
)

// SessionLine is one line item on a provider checkout session. Amount is the
// locked price in the settlement currency, never a fresh quote.
type SessionLine struct {
	Description string
	Amount      decimal.Decimal
	Recurring   bool // recurring lines bill monthly, one-time lines bill once
	Quantity    int64
}

// CheckoutSessionParams describes the provider session to create. OrderID is
// embedded in session metadata and is the sole linkage reconciliation uses;
// matching by amount or customer alone is never reliable.
type CheckoutSessionParams struct {
	CustomerID   string
	OrderID      string
	CurrencyCode string
	SuccessURL   string
	CancelURL    string
	Lines        []SessionLine
}

// CheckoutSession is the created provider session.
type CheckoutSession struct {
	SessionID   string
	RedirectURL string
}

// SessionStatus is the provider's settlement view of a session.
type SessionStatus struct {
	SessionID string
	Paid      bool
	OrderID   string // order id read back from session metadata
}

// PaymentGateway wraps the external payment provider (Stripe).
type PaymentGateway interface {
	// ResolveCustomer returns the provider customer id for an email, creating
	// the customer only when none exists. Lookup-before-create is mandatory so
	// repeated checkouts never create duplicate customer records.
	ResolveCustomer(ctx context.Context, email, name string) (string, error)

	// CreateCheckoutSession creates a provider-hosted checkout session and
	// returns its redirect URL.
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)

	// GetSession retrieves the session's settlement status for reconciliation.
	GetSession(ctx context.Context, sessionID string) (*SessionStatus, error)
}
