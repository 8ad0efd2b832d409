package services

import (
	"context"

	"github.com/oakhost/oakhost_backend/internal/core/domain"
)

// RatesSvcFacade is the read path over the currency and TLD pricing cache.
// It never refreshes the backing tables; that is an out-of-band sync job.
type RatesSvcFacade interface {
	// GetRate returns the latest rate for a pair. When no row exists it falls
	// back to the configured default so quoting never fails outright on
	// missing rate data.
	GetRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)

	// GetTldPricing returns the price table row for a TLD, or
	// apperrors.ErrTldNotPriced when the TLD has no row. Missing pricing is
	// never guessed.
	GetTldPricing(ctx context.Context, tld string) (*domain.TldPriceEntry, error)
}
