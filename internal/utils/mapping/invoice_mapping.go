package mapping

import (
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	"github.com/oakhost/oakhost_backend/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:       d.InvoiceID,
		CustomerID:      d.CustomerID,
		OrderID:         d.OrderID,
		InvoiceNumber:   d.InvoiceNumber,
		Amount:          d.Amount,
		CurrencyCode:    d.CurrencyCode,
		Status:          string(d.Status),
		StripeSessionID: d.StripeSessionID,
		PaidAt:          d.PaidAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:       m.InvoiceID,
		CustomerID:      m.CustomerID,
		OrderID:         m.OrderID,
		InvoiceNumber:   m.InvoiceNumber,
		Amount:          m.Amount,
		CurrencyCode:    m.CurrencyCode,
		Status:          domain.InvoiceStatus(m.Status),
		StripeSessionID: m.StripeSessionID,
		PaidAt:          m.PaidAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
