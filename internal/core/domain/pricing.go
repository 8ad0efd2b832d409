package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TldCategory classifies a top-level domain.
type TldCategory string

const (
	TldCategoryGeneric     TldCategory = "gTLD"
	TldCategoryCountryCode TldCategory = "ccTLD"
	TldCategorySponsored   TldCategory = "sTLD"
)

// TldPriceEntry holds the registrar price table for one TLD, unique by TLD.
// Rows are created/updated by a bulk import job; the core only reads them.
type TldPriceEntry struct {
	Tld                     string                  `json:"tld"` // e.g. "com", "co.uk"
	Category                TldCategory             `json:"category"`
	RegistrationPriceByTerm map[int]decimal.Decimal `json:"registrationPriceByTerm"` // keyed by term in years (1, 2, 5, 10)
	RenewalPrice            decimal.Decimal         `json:"renewalPrice"`
	TransferPrice           decimal.Decimal         `json:"transferPrice"`
	CurrencyCode            string                  `json:"currencyCode"`
	Source                  string                  `json:"source"` // registrar the row was imported from
	UpdatedAt               time.Time               `json:"updatedAt"`
}

// BasePrice returns the 1-year registration price. The quote engine scales it
// linearly by the requested term.
func (e TldPriceEntry) BasePrice() (decimal.Decimal, bool) {
	p, ok := e.RegistrationPriceByTerm[1]
	return p, ok
}
