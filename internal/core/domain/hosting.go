package domain

import "github.com/shopspring/decimal"

// HostingPlan is one entry of the hosting catalog. The catalog is read-only
// reference data injected at bootstrap; plan management is out of scope here.
type HostingPlan struct {
	Ref          string          `json:"ref"`
	Name         string          `json:"name"`
	MonthlyPrice decimal.Decimal `json:"monthlyPrice"`
	CurrencyCode string          `json:"currencyCode"`
}
