package repositories

import (
	"context"

	"github.com/oakhost/oakhost_backend/internal/core/domain"
)

// ExchangeRateReader defines read operations over the currency_rates table.
// The table is refreshed by an out-of-band sync job; the core never writes it.
type ExchangeRateReader interface {
	// FindExchangeRate retrieves the most recently fetched rate for a pair.
	// Returns apperrors.ErrNotFound when no row exists.
	FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)
}

// TldPricingReader defines read operations over the domain_tld_pricing table.
// Like the rate table, it is materialized out-of-band and read-only here.
type TldPricingReader interface {
	// FindTldPricing retrieves the price table row for a TLD.
	// Returns apperrors.ErrNotFound when the TLD has no row.
	FindTldPricing(ctx context.Context, tld string) (*domain.TldPriceEntry, error)
}
