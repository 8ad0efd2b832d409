package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oakhost/oakhost_backend/internal/apperrors"
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	portsgw "github.com/oakhost/oakhost_backend/internal/core/ports/gateways"
	"github.com/shopspring/decimal"
)

// QuoteService computes locked, margin-adjusted domain prices in the
// settlement currency.
type QuoteService struct {
	rates              RatesReader
	registrar          portsgw.RegistrarGateway
	settlementCurrency string
	idProtectionUSD    decimal.Decimal
	maxQuoteAge        time.Duration
}

// RatesReader is the slice of the rates service the quote engine needs.
type RatesReader interface {
	GetRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)
	GetTldPricing(ctx context.Context, tld string) (*domain.TldPriceEntry, error)
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(rates RatesReader, registrar portsgw.RegistrarGateway, settlementCurrency string, idProtectionUSD decimal.Decimal, maxQuoteAge time.Duration) *QuoteService {
	if maxQuoteAge <= 0 {
		maxQuoteAge = 30 * time.Minute
	}
	return &QuoteService{
		rates:              rates,
		registrar:          registrar,
		settlementCurrency: strings.ToUpper(settlementCurrency),
		idProtectionUSD:    idProtectionUSD,
		maxQuoteAge:        maxQuoteAge,
	}
}

// Quote prices a domain registration over the given term. This is the
// non-binding path: a registrar API error degrades to "assume available"
// because a false "unavailable" shown to a browsing user is worse than a soft
// assumption. The binding re-check happens in ConfirmQuote.
func (s *QuoteService) Quote(ctx context.Context, domainName string, years int, idProtection bool) (*domain.DomainQuote, error) {
	if years < 1 {
		return nil, fmt.Errorf("%w: years must be at least 1", apperrors.ErrValidation)
	}

	sld, tld, err := domain.SplitDomainName(domainName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	unit, addon, total, err := s.price(ctx, tld, years, idProtection)
	if err != nil {
		return nil, err
	}

	available, premium := true, false
	availability, err := s.registrar.CheckAvailability(ctx, sld, tld)
	if err == nil {
		available = availability.Available
		premium = availability.Premium
	}
	// A registrar error leaves the assumed values in place; the quote is
	// non-binding and checkout re-checks before charging.

	return &domain.DomainQuote{
		Domain:       strings.ToLower(sld + "." + tld),
		Sld:          sld,
		Tld:          tld,
		Years:        years,
		IDProtection: idProtection,
		UnitPrice:    unit,
		AddonPrice:   addon,
		TotalPrice:   total,
		CurrencyCode: s.settlementCurrency,
		Available:    available,
		Premium:      premium,
		QuotedAt:     time.Now(),
	}, nil
}

// ConfirmQuote validates a locked quote immediately before checkout charges
// it. The price is re-derived and must match the locked total exactly; the
// availability check is binding, so registrar errors propagate and a taken
// domain blocks the purchase.
func (s *QuoteService) ConfirmQuote(ctx context.Context, quote domain.DomainQuote) error {
	sld, tld, err := domain.SplitDomainName(quote.Domain)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if quote.QuotedAt.IsZero() || time.Since(quote.QuotedAt) > s.maxQuoteAge {
		return fmt.Errorf("%w: quote for %s expired", apperrors.ErrStaleQuote, quote.Domain)
	}
	if !strings.EqualFold(quote.CurrencyCode, s.settlementCurrency) {
		return fmt.Errorf("%w: quote currency %s does not match settlement currency %s",
			apperrors.ErrValidation, quote.CurrencyCode, s.settlementCurrency)
	}

	_, _, total, err := s.price(ctx, tld, quote.Years, quote.IDProtection)
	if err != nil {
		return err
	}
	if !total.Equal(quote.TotalPrice) {
		return fmt.Errorf("%w: current price %s for %s does not match locked price %s",
			apperrors.ErrStaleQuote, total, quote.Domain, quote.TotalPrice)
	}

	availability, err := s.registrar.CheckAvailability(ctx, sld, tld)
	if err != nil {
		// Fail closed: never charge for a domain we could not verify.
		return fmt.Errorf("availability check failed for %s: %w", quote.Domain, err)
	}
	if !availability.Available {
		return fmt.Errorf("%w: %s", apperrors.ErrDomainUnavailable, quote.Domain)
	}
	return nil
}

// price derives (unit, addon, total) for a term. The base price scales
// linearly with years; the ID-protection add-on is a fixed USD amount per year
// converted at the current margin-adjusted rate. Totals round half-up to 2dp.
func (s *QuoteService) price(ctx context.Context, tld string, years int, idProtection bool) (unit, addon, total decimal.Decimal, err error) {
	pricing, err := s.rates.GetTldPricing(ctx, tld)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	base, ok := pricing.BasePrice()
	if !ok {
		return decimal.Zero, decimal.Zero, decimal.Zero,
			fmt.Errorf("%w: %q has no 1-year registration price", apperrors.ErrTldNotPriced, tld)
	}

	yearsDec := decimal.NewFromInt(int64(years))
	total = base.Mul(yearsDec)

	addon = decimal.Zero
	if idProtection {
		rate, rateErr := s.rates.GetRate(ctx, "USD", s.settlementCurrency)
		if rateErr != nil {
			return decimal.Zero, decimal.Zero, decimal.Zero,
				fmt.Errorf("failed to convert id protection price: %w", rateErr)
		}
		addon = s.idProtectionUSD.Mul(rate.EffectiveRate()).Mul(yearsDec).Round(2)
		total = total.Add(addon)
	}

	return base, addon, total.Round(2), nil
}
