package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/oakhost/oakhost_backend/internal/apperrors"
	portsgw "github.com/oakhost/oakhost_backend/internal/core/ports/gateways"
	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

// orderIDMetadataKey is the session metadata key carrying the order linkage.
// Reconciliation matches sessions to orders by this key only.
const orderIDMetadataKey = "order_id"

// StripeGateway implements the PaymentGateway port on the Stripe API.
type StripeGateway struct {
	sc *client.API
}

// NewStripeGateway creates a gateway bound to the given secret key.
func NewStripeGateway(secretKey string) *StripeGateway {
	return NewStripeGatewayWithBackends(secretKey, nil)
}

// NewStripeGatewayWithBackends creates a gateway with explicit backends. Tests
// use it to point the client at a local server.
func NewStripeGatewayWithBackends(secretKey string, backends *stripe.Backends) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, backends)
	return &StripeGateway{sc: sc}
}

// ResolveCustomer finds the Stripe customer for an email, creating one only
// when none exists. Lookup-before-create keeps repeated checkouts from
// accumulating duplicate customer records.
func (g *StripeGateway) ResolveCustomer(ctx context.Context, email, name string) (string, error) {
	listParams := &stripe.CustomerListParams{Email: stripe.String(email)}
	listParams.Context = ctx
	listParams.Filters.AddFilter("limit", "", "1")

	iter := g.sc.Customers.List(listParams)
	for iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", apperrors.NewAppError(502, "failed to look up payment customer", err)
	}

	createParams := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	createParams.Context = ctx
	if name != "" {
		createParams.Name = stripe.String(name)
	}
	cust, err := g.sc.Customers.New(createParams)
	if err != nil {
		return "", apperrors.NewAppError(502, "failed to create payment customer", err)
	}
	return cust.ID, nil
}

// CreateCheckoutSession creates the provider-hosted checkout session. Sessions
// with a recurring line use subscription mode, which also accepts the one-time
// domain line; domain-only sessions use payment mode.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, params portsgw.CheckoutSessionParams) (*portsgw.CheckoutSession, error) {
	if len(params.Lines) == 0 {
		return nil, apperrors.NewValidationError("checkout session needs at least one line item")
	}

	mode := stripe.CheckoutSessionModePayment
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(params.Lines))
	for _, line := range params.Lines {
		priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency: stripe.String(strings.ToLower(params.CurrencyCode)),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(line.Description),
			},
			// Stripe amounts are integral minor units (pence for GBP).
			UnitAmount: stripe.Int64(line.Amount.Shift(2).Round(0).IntPart()),
		}
		if line.Recurring {
			mode = stripe.CheckoutSessionModeSubscription
			priceData.Recurring = &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
				Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
			}
		}
		quantity := line.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: priceData,
			Quantity:  stripe.Int64(quantity),
		})
	}

	sessionParams := &stripe.CheckoutSessionParams{
		Customer:   stripe.String(params.CustomerID),
		Mode:       stripe.String(string(mode)),
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
		LineItems:  lineItems,
	}
	sessionParams.Context = ctx
	sessionParams.AddMetadata(orderIDMetadataKey, params.OrderID)

	sess, err := g.sc.CheckoutSessions.New(sessionParams)
	if err != nil {
		return nil, apperrors.NewAppError(502, "failed to create checkout session", err)
	}

	return &portsgw.CheckoutSession{
		SessionID:   sess.ID,
		RedirectURL: sess.URL,
	}, nil
}

// GetSession retrieves a session's settlement status and the order id embedded
// in its metadata.
func (g *StripeGateway) GetSession(ctx context.Context, sessionID string) (*portsgw.SessionStatus, error) {
	getParams := &stripe.CheckoutSessionParams{}
	getParams.Context = ctx

	sess, err := g.sc.CheckoutSessions.Get(sessionID, getParams)
	if err != nil {
		return nil, apperrors.NewAppError(502, fmt.Sprintf("failed to retrieve checkout session %s", sessionID), err)
	}

	return &portsgw.SessionStatus{
		SessionID: sess.ID,
		Paid:      sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		OrderID:   sess.Metadata[orderIDMetadataKey],
	}, nil
}
