package services

import (
	"context"

	"github.com/oakhost/oakhost_backend/internal/core/domain"
	"github.com/oakhost/oakhost_backend/internal/dto"
)

// CheckoutSvcFacade is the single checkout entry point, parameterized by an
// optional hosting line and an optional locked domain quote. It replaces the
// separate hosting-only / domain-only / combined flows.
type CheckoutSvcFacade interface {
	// CreateCheckout persists a pending Order and Invoice, resolves the payment
	// provider customer (lookup-before-create by email), creates the provider
	// checkout session with the order id in its metadata, and returns the
	// provider-hosted redirect URL.
	CreateCheckout(ctx context.Context, customerID, customerEmail string, req dto.CreateCheckoutRequest) (*dto.CheckoutResponse, error)

	// CancelOrder transitions a pending order to cancelled. It has no effect
	// once the order is paid.
	CancelOrder(ctx context.Context, orderID, customerID string) error

	// GetOrder retrieves an order owned by the given customer.
	GetOrder(ctx context.Context, orderID, customerID string) (*domain.Order, error)
}
