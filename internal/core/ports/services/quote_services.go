package services

import (
	"context"

	"github.com/oakhost/oakhost_backend/internal/core/domain"
)

// QuoteSvcFacade computes locked, margin-adjusted domain prices.
type QuoteSvcFacade interface {
	// Quote prices a domain registration over the given term in the settlement
	// currency. This is the non-binding path: a registrar API error degrades to
	// "assume available" rather than failing the quote.
	Quote(ctx context.Context, domainName string, years int, idProtection bool) (*domain.DomainQuote, error)

	// ConfirmQuote re-derives the price for a locked quote and performs a
	// binding availability check before checkout charges it. A price mismatch
	// returns apperrors.ErrStaleQuote; registrar errors propagate (fail closed),
	// and a taken domain returns apperrors.ErrDomainUnavailable.
	ConfirmQuote(ctx context.Context, quote domain.DomainQuote) error
}
