package mapping

import (
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	"github.com/oakhost/oakhost_backend/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		RateID:           d.RateID,
		FromCurrencyCode: d.FromCurrencyCode,
		ToCurrencyCode:   d.ToCurrencyCode,
		Rate:             d.Rate,
		Margin:           d.Margin,
		FetchedAt:        d.FetchedAt,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		RateID:           m.RateID,
		FromCurrencyCode: m.FromCurrencyCode,
		ToCurrencyCode:   m.ToCurrencyCode,
		Rate:             m.Rate,
		Margin:           m.Margin,
		FetchedAt:        m.FetchedAt,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTldPricing converts a model TldPricing to a domain TldPriceEntry
func ToDomainTldPricing(m models.TldPricing) domain.TldPriceEntry {
	return domain.TldPriceEntry{
		Tld:                     m.Tld,
		Category:                domain.TldCategory(m.Category),
		RegistrationPriceByTerm: m.RegistrationPriceByTerm,
		RenewalPrice:            m.RenewalPrice,
		TransferPrice:           m.TransferPrice,
		CurrencyCode:            m.CurrencyCode,
		Source:                  m.Source,
		UpdatedAt:               m.UpdatedAt,
	}
}
