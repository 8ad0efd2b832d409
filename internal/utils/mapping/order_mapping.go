package mapping

import (
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	"github.com/oakhost/oakhost_backend/internal/models"
)

// ToModelOrder converts a domain Order to a model Order. An order without a
// provider session yet maps to a nil session ID so the row stores NULL and
// stays outside the partial unique index on stripe_session_id.
func ToModelOrder(d domain.Order) models.Order {
	var sessionID *string
	if d.StripeSessionID != "" {
		s := d.StripeSessionID
		sessionID = &s
	}
	items := make([]models.OrderItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = models.OrderItem{
			Type:        string(it.Type),
			RefID:       it.RefID,
			Description: it.Description,
			Price:       it.Price,
			Years:       it.Years,
		}
	}
	return models.Order{
		OrderID:         d.OrderID,
		CustomerID:      d.CustomerID,
		Items:           items,
		TotalAmount:     d.TotalAmount,
		CurrencyCode:    d.CurrencyCode,
		Status:          string(d.Status),
		StripeSessionID: sessionID,
		PaidAt:          d.PaidAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrder converts a model Order to a domain Order
func ToDomainOrder(m models.Order) domain.Order {
	var sessionID string
	if m.StripeSessionID != nil {
		sessionID = *m.StripeSessionID
	}
	items := make([]domain.OrderItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = domain.OrderItem{
			Type:        domain.OrderItemType(it.Type),
			RefID:       it.RefID,
			Description: it.Description,
			Price:       it.Price,
			Years:       it.Years,
		}
	}
	return domain.Order{
		OrderID:         m.OrderID,
		CustomerID:      m.CustomerID,
		Items:           items,
		TotalAmount:     m.TotalAmount,
		CurrencyCode:    m.CurrencyCode,
		Status:          domain.OrderStatus(m.Status),
		StripeSessionID: sessionID,
		PaidAt:          m.PaidAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
