package dto

import (
	"time"

	"github.com/oakhost/oakhost_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateResponse defines the API response for a cached exchange rate.
type ExchangeRateResponse struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Margin           decimal.Decimal `json:"margin"`
	FetchedAt        time.Time       `json:"fetchedAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(r *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		FromCurrencyCode: r.FromCurrencyCode,
		ToCurrencyCode:   r.ToCurrencyCode,
		Rate:             r.Rate,
		Margin:           r.Margin,
		FetchedAt:        r.FetchedAt,
	}
}

// TldPricingResponse defines the API response for a TLD price table row.
type TldPricingResponse struct {
	Tld                     string                  `json:"tld"`
	Category                string                  `json:"category"`
	RegistrationPriceByTerm map[int]decimal.Decimal `json:"registrationPriceByTerm"`
	RenewalPrice            decimal.Decimal         `json:"renewalPrice"`
	TransferPrice           decimal.Decimal         `json:"transferPrice"`
	CurrencyCode            string                  `json:"currencyCode"`
	UpdatedAt               time.Time               `json:"updatedAt"`
}

// ToTldPricingResponse converts a domain.TldPriceEntry to TldPricingResponse DTO
func ToTldPricingResponse(e *domain.TldPriceEntry) TldPricingResponse {
	return TldPricingResponse{
		Tld:                     e.Tld,
		Category:                string(e.Category),
		RegistrationPriceByTerm: e.RegistrationPriceByTerm,
		RenewalPrice:            e.RenewalPrice,
		TransferPrice:           e.TransferPrice,
		CurrencyCode:            e.CurrencyCode,
		UpdatedAt:               e.UpdatedAt,
	}
}
