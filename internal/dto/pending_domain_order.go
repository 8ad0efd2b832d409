package dto

import (
	"time"

	"github.com/oakhost/oakhost_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePendingDomainOrderRequest defines the payload for submitting a domain
// purchase that requires manual review before charging.
type CreatePendingDomainOrderRequest struct {
	DomainName        string `json:"domainName" binding:"required,fqdn,domainname"`
	Years             int    `json:"years" binding:"required,min=1,max=10"`
	HostingPackageRef string `json:"hostingPackageRef,omitempty"`
}

// ReviewPendingDomainOrderRequest carries the reviewer's notes for an approve
// or reject decision.
type ReviewPendingDomainOrderRequest struct {
	AdminNotes string `json:"adminNotes" binding:"max=2000"`
}

// PendingDomainOrderResponse defines the API response for a manual-review order.
type PendingDomainOrderResponse struct {
	PendingOrderID    string          `json:"pendingOrderId"`
	UserID            string          `json:"userId"`
	DomainName        string          `json:"domainName"`
	Years             int             `json:"years"`
	TotalEstimate     decimal.Decimal `json:"totalEstimate"`
	CurrencyCode      string          `json:"currencyCode"`
	HostingPackageRef string          `json:"hostingPackageRef,omitempty"`
	Status            string          `json:"status"`
	AdminNotes        string          `json:"adminNotes,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	LastUpdatedAt     time.Time       `json:"lastUpdatedAt"`
}

// ToPendingDomainOrderResponse converts a domain.PendingDomainOrder to its DTO
func ToPendingDomainOrderResponse(o *domain.PendingDomainOrder) PendingDomainOrderResponse {
	return PendingDomainOrderResponse{
		PendingOrderID:    o.PendingOrderID,
		UserID:            o.UserID,
		DomainName:        o.DomainName,
		Years:             o.Years,
		TotalEstimate:     o.TotalEstimate,
		CurrencyCode:      o.CurrencyCode,
		HostingPackageRef: o.HostingPackageRef,
		Status:            string(o.Status),
		AdminNotes:        o.AdminNotes,
		CreatedAt:         o.CreatedAt,
		LastUpdatedAt:     o.LastUpdatedAt,
	}
}

// ListPendingDomainOrdersResponse is a paginated list of manual-review orders.
type ListPendingDomainOrdersResponse struct {
	Items    []PendingDomainOrderResponse `json:"items"`
	Total    int                          `json:"total"`
	Page     int                          `json:"page"`
	PageSize int                          `json:"pageSize"`
}
