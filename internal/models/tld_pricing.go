package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TldPricing is the domain_tld_pricing row, unique by tld. The per-term
// registration prices are stored as a JSONB object keyed by term in years.
type TldPricing struct {
	Tld                     string                  `json:"tld"`
	Category                string                  `json:"category"`
	RegistrationPriceByTerm map[int]decimal.Decimal `json:"registrationPriceByTerm"`
	RenewalPrice            decimal.Decimal         `json:"renewalPrice"`
	TransferPrice           decimal.Decimal         `json:"transferPrice"`
	CurrencyCode            string                  `json:"currencyCode"`
	Source                  string                  `json:"source"`
	UpdatedAt               time.Time               `json:"updatedAt"`
}
