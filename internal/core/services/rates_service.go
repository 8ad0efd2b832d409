package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oakhost/oakhost_backend/internal/apperrors"
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	portsrepo "github.com/oakhost/oakhost_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// RatesService is the read path over the currency and TLD pricing cache. The
// backing tables are refreshed by an out-of-band sync job; this service never
// writes them.
type RatesService struct {
	rateRepo    portsrepo.ExchangeRateReader
	pricingRepo portsrepo.TldPricingReader

	// fallbackRate is the documented default used only when no row exists for
	// its pair, so quoting never fails outright on missing rate data.
	fallbackRate domain.ExchangeRate
}

// NewRatesService creates a new RatesService with the given fallback rate.
func NewRatesService(rateRepo portsrepo.ExchangeRateReader, pricingRepo portsrepo.TldPricingReader, fallbackRate domain.ExchangeRate) *RatesService {
	return &RatesService{
		rateRepo:     rateRepo,
		pricingRepo:  pricingRepo,
		fallbackRate: fallbackRate,
	}
}

// GetRate returns the latest cached rate for a currency pair. A cache miss on
// the fallback pair returns the configured fallback constant; any other miss
// propagates not-found.
func (s *RatesService) GetRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	fromCode := strings.ToUpper(fromCurrencyCode)
	toCode := strings.ToUpper(toCurrencyCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	rate, err := s.rateRepo.FindExchangeRate(ctx, fromCode, toCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) &&
			fromCode == s.fallbackRate.FromCurrencyCode && toCode == s.fallbackRate.ToCurrencyCode {
			fallback := s.fallbackRate
			fallback.FetchedAt = time.Now()
			return &fallback, nil
		}
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}

	if rate.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: cached rate for %s/%s is not positive", apperrors.ErrValidation, fromCode, toCode)
	}
	return rate, nil
}

// GetTldPricing returns the price table row for a TLD. A missing row is
// surfaced as ErrTldNotPriced; prices are never guessed.
func (s *RatesService) GetTldPricing(ctx context.Context, tld string) (*domain.TldPriceEntry, error) {
	tld = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tld), "."))
	if tld == "" {
		return nil, fmt.Errorf("%w: tld must not be empty", apperrors.ErrValidation)
	}

	entry, err := s.pricingRepo.FindTldPricing(ctx, tld)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrTldNotPriced, tld)
		}
		return nil, fmt.Errorf("failed to get tld pricing in service: %w", err)
	}
	return entry, nil
}
