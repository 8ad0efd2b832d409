package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oakhost/oakhost_backend/internal/apperrors"
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	portssvc "github.com/oakhost/oakhost_backend/internal/core/ports/services"
	"github.com/oakhost/oakhost_backend/internal/dto"
	"github.com/oakhost/oakhost_backend/internal/middleware"
)

// pendingDomainOrderHandler handles the manual-review domain purchase path:
// customers submit, admins review.
type pendingDomainOrderHandler struct {
	pendingOrderService portssvc.PendingDomainOrderSvcFacade
}

// newPendingDomainOrderHandler creates a new pendingDomainOrderHandler.
func newPendingDomainOrderHandler(ps portssvc.PendingDomainOrderSvcFacade) *pendingDomainOrderHandler {
	return &pendingDomainOrderHandler{
		pendingOrderService: ps,
	}
}

// registerPendingDomainOrderRoutes registers the customer-facing submission
// routes and the admin review routes.
func registerPendingDomainOrderRoutes(rg *gin.RouterGroup, pendingOrderService portssvc.PendingDomainOrderSvcFacade) {
	h := newPendingDomainOrderHandler(pendingOrderService)

	domainOrders := rg.Group("/domain-orders")
	{
		domainOrders.POST("", h.submitPendingDomainOrder)
		domainOrders.GET("/:pendingOrderID", h.getPendingDomainOrder)
	}

	admin := rg.Group("/admin/domain-orders", middleware.RequireAdmin())
	{
		admin.GET("", h.listPendingDomainOrders)
		admin.POST("/:pendingOrderID/approve", h.approvePendingDomainOrder)
		admin.POST("/:pendingOrderID/reject", h.rejectPendingDomainOrder)
		admin.POST("/:pendingOrderID/mark-paid", h.markPendingDomainOrderPaid)
	}
}

// submitPendingDomainOrder godoc
// @Summary Submit a domain order for manual review
// @Description Records a domain purchase request that an operator must approve before the customer is charged. The response carries a non-binding price estimate.
// @Tags domain-orders
// @Accept  json
// @Produce  json
// @Param   order body dto.CreatePendingDomainOrderRequest true "Domain, term and optional hosting package"
// @Success 201 {object} dto.PendingDomainOrderResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "TLD not priced"
// @Failure 500 {object} map[string]string "Failed to submit domain order"
// @Security BearerAuth
// @Router /domain-orders [post]
func (h *pendingDomainOrderHandler) submitPendingDomainOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePendingDomainOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitPendingDomainOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.pendingOrderService.SubmitPendingDomainOrder(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTldNotPriced) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to submit pending domain order", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit domain order"})
		}
		return
	}

	logger.Info("Pending domain order submitted", slog.String("pending_order_id", order.PendingOrderID))
	c.JSON(http.StatusCreated, dto.ToPendingDomainOrderResponse(order))
}

// getPendingDomainOrder godoc
// @Summary Get a manual-review domain order
// @Tags domain-orders
// @Produce  json
// @Param   pendingOrderID path string true "Pending order ID"
// @Success 200 {object} dto.PendingDomainOrderResponse
// @Failure 404 {object} map[string]string "Pending order not found"
// @Failure 500 {object} map[string]string "Failed to retrieve domain order"
// @Security BearerAuth
// @Router /domain-orders/{pendingOrderID} [get]
func (h *pendingDomainOrderHandler) getPendingDomainOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pendingOrderID := c.Param("pendingOrderID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.pendingOrderService.GetPendingDomainOrder(c.Request.Context(), pendingOrderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pending order not found"})
		} else {
			logger.Error("Failed to get pending domain order", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve domain order"})
		}
		return
	}

	// Owners and admins may read; everyone else sees not-found.
	role, _ := middleware.GetUserRoleFromContext(c)
	if order.UserID != userID && role != middleware.RoleAdmin {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pending order not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPendingDomainOrderResponse(order))
}

// listPendingDomainOrders godoc
// @Summary List manual-review domain orders
// @Description Lists domain orders for the admin review queue, optionally filtered by status.
// @Tags admin
// @Produce  json
// @Param   status query string false "Filter by status" Enums(PENDING_REVIEW, APPROVED, REJECTED, PAID)
// @Param   page query int false "Page number (1-based)"
// @Param   pageSize query int false "Page size (max 100)"
// @Success 200 {object} dto.ListPendingDomainOrdersResponse
// @Failure 400 {object} map[string]string "Invalid status filter"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 500 {object} map[string]string "Failed to list domain orders"
// @Security BearerAuth
// @Router /admin/domain-orders [get]
func (h *pendingDomainOrderHandler) listPendingDomainOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var statusFilter *domain.PendingDomainOrderStatus
	if raw := c.Query("status"); raw != "" {
		status := domain.PendingDomainOrderStatus(raw)
		switch status {
		case domain.PendingDomainOrderStatusPendingReview,
			domain.PendingDomainOrderStatusApproved,
			domain.PendingDomainOrderStatusRejected,
			domain.PendingDomainOrderStatusPaid:
			statusFilter = &status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	orders, total, err := h.pendingOrderService.ListPendingDomainOrders(c.Request.Context(), statusFilter, page, pageSize)
	if err != nil {
		logger.Error("Failed to list pending domain orders", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list domain orders"})
		return
	}

	items := make([]dto.PendingDomainOrderResponse, len(orders))
	for i := range orders {
		items[i] = dto.ToPendingDomainOrderResponse(&orders[i])
	}
	c.JSON(http.StatusOK, dto.ListPendingDomainOrdersResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// approvePendingDomainOrder godoc
// @Summary Approve a manual-review domain order
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   pendingOrderID path string true "Pending order ID"
// @Param   review body dto.ReviewPendingDomainOrderRequest false "Reviewer notes"
// @Success 200 {object} dto.PendingDomainOrderResponse
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Pending order not found"
// @Failure 409 {object} map[string]string "Order is not awaiting review"
// @Failure 500 {object} map[string]string "Failed to approve domain order"
// @Security BearerAuth
// @Router /admin/domain-orders/{pendingOrderID}/approve [post]
func (h *pendingDomainOrderHandler) approvePendingDomainOrder(c *gin.Context) {
	h.review(c, h.pendingOrderService.ApprovePendingDomainOrder)
}

// rejectPendingDomainOrder godoc
// @Summary Reject a manual-review domain order
// @Description Rejects the order. REJECTED is terminal; the customer must submit a fresh request.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   pendingOrderID path string true "Pending order ID"
// @Param   review body dto.ReviewPendingDomainOrderRequest false "Reviewer notes"
// @Success 200 {object} dto.PendingDomainOrderResponse
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Pending order not found"
// @Failure 409 {object} map[string]string "Order is not awaiting review"
// @Failure 500 {object} map[string]string "Failed to reject domain order"
// @Security BearerAuth
// @Router /admin/domain-orders/{pendingOrderID}/reject [post]
func (h *pendingDomainOrderHandler) rejectPendingDomainOrder(c *gin.Context) {
	h.review(c, h.pendingOrderService.RejectPendingDomainOrder)
}

// markPendingDomainOrderPaid godoc
// @Summary Mark an approved domain order as paid
// @Description Records out-of-band payment for an approved order.
// @Tags admin
// @Produce  json
// @Param   pendingOrderID path string true "Pending order ID"
// @Success 200 {object} dto.PendingDomainOrderResponse
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Pending order not found"
// @Failure 409 {object} map[string]string "Order is not approved"
// @Failure 500 {object} map[string]string "Failed to mark domain order paid"
// @Security BearerAuth
// @Router /admin/domain-orders/{pendingOrderID}/mark-paid [post]
func (h *pendingDomainOrderHandler) markPendingDomainOrderPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pendingOrderID := c.Param("pendingOrderID")

	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.pendingOrderService.MarkPendingDomainOrderPaid(c.Request.Context(), pendingOrderID, adminUserID)
	if err != nil {
		h.writeReviewError(c, logger, pendingOrderID, err)
		return
	}

	logger.Info("Pending domain order marked paid", slog.String("pending_order_id", pendingOrderID))
	c.JSON(http.StatusOK, dto.ToPendingDomainOrderResponse(order))
}

// review handles the shared approve/reject flow.
func (h *pendingDomainOrderHandler) review(c *gin.Context, decide func(ctx context.Context, pendingOrderID, adminNotes, adminUserID string) (*domain.PendingDomainOrder, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pendingOrderID := c.Param("pendingOrderID")

	var req dto.ReviewPendingDomainOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := decide(c.Request.Context(), pendingOrderID, req.AdminNotes, adminUserID)
	if err != nil {
		h.writeReviewError(c, logger, pendingOrderID, err)
		return
	}

	logger.Info("Pending domain order reviewed",
		slog.String("pending_order_id", pendingOrderID),
		slog.String("status", string(order.Status)))
	c.JSON(http.StatusOK, dto.ToPendingDomainOrderResponse(order))
}

func (h *pendingDomainOrderHandler) writeReviewError(c *gin.Context, logger *slog.Logger, pendingOrderID string, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pending order not found"})
	} else if errors.Is(err, apperrors.ErrInvalidTransition) {
		logger.Warn("Review rejected", slog.String("pending_order_id", pendingOrderID), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else {
		logger.Error("Failed to review pending domain order", slog.String("pending_order_id", pendingOrderID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process review"})
	}
}
