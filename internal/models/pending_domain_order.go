package models

import (
	"github.com/shopspring/decimal"
)

// PendingDomainOrder is the pending_domain_orders row (manual-review path).
type PendingDomainOrder struct {
	PendingOrderID    string          `json:"pendingOrderID"`
	UserID            string          `json:"userID"`
	DomainName        string          `json:"domainName"`
	Years             int             `json:"years"`
	TotalEstimate     decimal.Decimal `json:"totalEstimate"`
	CurrencyCode      string          `json:"currencyCode"`
	HostingPackageRef string          `json:"hostingPackageRef"`
	Status            string          `json:"status"`
	AdminNotes        string          `json:"adminNotes"`
	AuditFields
}
