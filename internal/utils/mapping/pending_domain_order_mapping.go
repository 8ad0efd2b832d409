package mapping

import (
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	"github.com/oakhost/oakhost_backend/internal/models"
)

// ToModelPendingDomainOrder converts a domain PendingDomainOrder to its model
func ToModelPendingDomainOrder(d domain.PendingDomainOrder) models.PendingDomainOrder {
	return models.PendingDomainOrder{
		PendingOrderID:    d.PendingOrderID,
		UserID:            d.UserID,
		DomainName:        d.DomainName,
		Years:             d.Years,
		TotalEstimate:     d.TotalEstimate,
		CurrencyCode:      d.CurrencyCode,
		HostingPackageRef: d.HostingPackageRef,
		Status:            string(d.Status),
		AdminNotes:        d.AdminNotes,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPendingDomainOrder converts a model PendingDomainOrder to its domain type
func ToDomainPendingDomainOrder(m models.PendingDomainOrder) domain.PendingDomainOrder {
	return domain.PendingDomainOrder{
		PendingOrderID:    m.PendingOrderID,
		UserID:            m.UserID,
		DomainName:        m.DomainName,
		Years:             m.Years,
		TotalEstimate:     m.TotalEstimate,
		CurrencyCode:      m.CurrencyCode,
		HostingPackageRef: m.HostingPackageRef,
		Status:            domain.PendingDomainOrderStatus(m.Status),
		AdminNotes:        m.AdminNotes,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
