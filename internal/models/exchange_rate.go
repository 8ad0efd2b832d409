package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the currency_rates row. Refreshed by the scheduled sync job;
// read-only from the application's perspective.
type ExchangeRate struct {
	RateID           string          `json:"rateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Margin           decimal.Decimal `json:"margin"`
	FetchedAt        time.Time       `json:"fetchedAt"`
	AuditFields
}
