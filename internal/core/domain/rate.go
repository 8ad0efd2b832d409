package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate between two currencies together with
// the merchant margin applied on top when converting customer-facing prices.
// Rows are refreshed by an out-of-band sync job; the core only reads them.
// Invariants: Rate > 0, Margin in [0, 1).
type ExchangeRate struct {
	RateID           string          `json:"rateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"` // e.g. "USD"
	ToCurrencyCode   string          `json:"toCurrencyCode"`   // e.g. "GBP"
	Rate             decimal.Decimal `json:"rate"`
	Margin           decimal.Decimal `json:"margin"`
	FetchedAt        time.Time       `json:"fetchedAt"`
	AuditFields
}

// EffectiveRate returns the customer-facing rate: rate * (1 + margin).
func (r ExchangeRate) EffectiveRate() decimal.Decimal {
	return r.Rate.Mul(decimal.NewFromInt(1).Add(r.Margin))
}
