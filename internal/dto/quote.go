package dto

import (
	"time"

	"github.com/oakhost/oakhost_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// QuoteRequest defines the payload for pricing a domain registration.
type QuoteRequest struct {
	Domain       string `json:"domain" binding:"required,fqdn,domainname"`
	Years        int    `json:"years" binding:"required,min=1,max=10"`
	IDProtection bool   `json:"idProtection"`
}

// QuoteResponse defines the API response containing a locked quote. The client
// must carry it verbatim into checkout; prices are never recomputed silently.
type QuoteResponse struct {
	Domain       string          `json:"domain"`
	Tld          string          `json:"tld"`
	Years        int             `json:"years"`
	IDProtection bool            `json:"idProtection"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	AddonPrice   decimal.Decimal `json:"addonPrice"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	CurrencyCode string          `json:"currencyCode"`
	Available    bool            `json:"available"`
	Premium      bool            `json:"premium"`
	QuotedAt     time.Time       `json:"quotedAt"`
}

// ToQuoteResponse converts a domain.DomainQuote to QuoteResponse DTO
func ToQuoteResponse(q *domain.DomainQuote) QuoteResponse {
	return QuoteResponse{
		Domain:       q.Domain,
		Tld:          q.Tld,
		Years:        q.Years,
		IDProtection: q.IDProtection,
		UnitPrice:    q.UnitPrice,
		AddonPrice:   q.AddonPrice,
		TotalPrice:   q.TotalPrice,
		CurrencyCode: q.CurrencyCode,
		Available:    q.Available,
		Premium:      q.Premium,
		QuotedAt:     q.QuotedAt,
	}
}

// LockedDomainQuote is the quote as locked at quote time, submitted back by
// the client when checking out. Checkout validates it against current pricing
// and rejects on mismatch rather than re-quoting.
type LockedDomainQuote struct {
	Domain       string          `json:"domain" binding:"required,fqdn,domainname"`
	Years        int             `json:"years" binding:"required,min=1,max=10"`
	IDProtection bool            `json:"idProtection"`
	TotalPrice   decimal.Decimal `json:"totalPrice" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	QuotedAt     time.Time       `json:"quotedAt" binding:"required"`
}
