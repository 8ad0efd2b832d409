package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oakhost/oakhost_backend/internal/apperrors"
	portssvc "github.com/oakhost/oakhost_backend/internal/core/ports/services"
	"github.com/oakhost/oakhost_backend/internal/dto"
	"github.com/oakhost/oakhost_backend/internal/middleware"
)

// checkoutHandler handles HTTP requests for checkout and order management.
type checkoutHandler struct {
	checkoutService portssvc.CheckoutSvcFacade
}

// newCheckoutHandler creates a new checkoutHandler.
func newCheckoutHandler(cs portssvc.CheckoutSvcFacade) *checkoutHandler {
	return &checkoutHandler{
		checkoutService: cs,
	}
}

// registerCheckoutRoutes registers routes related to checkout and orders.
func registerCheckoutRoutes(rg *gin.RouterGroup, checkoutService portssvc.CheckoutSvcFacade) {
	h := newCheckoutHandler(checkoutService)

	rg.POST("/checkout", h.createCheckout)

	orders := rg.Group("/orders")
	{
		orders.GET("/:orderID", h.getOrder)
		orders.POST("/:orderID/cancel", h.cancelOrder)
	}
}

// createCheckout godoc
// @Summary Create a checkout session
// @Description Creates a pending order and invoice for the selected hosting plan and/or locked domain quote, then returns the payment provider's hosted checkout URL. The quote is re-validated against current pricing and a binding availability check before anything is charged.
// @Tags checkout
// @Accept  json
// @Produce  json
// @Param   checkout body dto.CreateCheckoutRequest true "Hosting plan ref and/or locked domain quote"
// @Success 201 {object} dto.CheckoutResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Hosting plan not found"
// @Failure 409 {object} map[string]string "Quote stale or domain no longer available"
// @Failure 502 {object} map[string]string "Registrar unavailable"
// @Failure 500 {object} map[string]string "Failed to create checkout session"
// @Security BearerAuth
// @Router /checkout [post]
func (h *checkoutHandler) createCheckout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCheckout", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	customerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Customer ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	customerEmail, _ := middleware.GetUserEmailFromContext(c)

	resp, err := h.checkoutService.CreateCheckout(c.Request.Context(), customerID, customerEmail, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating checkout", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrTldNotPriced):
			logger.Warn("Checkout references unknown plan or TLD", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrStaleQuote), errors.Is(err, apperrors.ErrDomainUnavailable):
			logger.Warn("Checkout rejected on quote re-validation", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrRegistrarUnavailable):
			logger.Error("Registrar unavailable during checkout", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Registrar unavailable, please retry"})
		default:
			logger.Error("Failed to create checkout", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		}
		return
	}

	logger.Info("Checkout session created", slog.String("order_id", resp.OrderID))
	c.JSON(http.StatusCreated, resp)
}

// getOrder godoc
// @Summary Get an order
// @Description Retrieves an order owned by the authenticated customer
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Failed to retrieve order"
// @Security BearerAuth
// @Router /orders/{orderID} [get]
func (h *checkoutHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	customerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.checkoutService.GetOrder(c.Request.Context(), orderID, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			logger.Error("Failed to get order", slog.String("order_id", orderID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// cancelOrder godoc
// @Summary Cancel a pending order
// @Description Cancels an order that has not been paid yet. Paid orders cannot be cancelled through this endpoint.
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 204 "Order cancelled"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 409 {object} map[string]string "Order is no longer pending"
// @Failure 500 {object} map[string]string "Failed to cancel order"
// @Security BearerAuth
// @Router /orders/{orderID}/cancel [post]
func (h *checkoutHandler) cancelOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	customerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.checkoutService.CancelOrder(c.Request.Context(), orderID, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else if errors.Is(err, apperrors.ErrInvalidTransition) {
			logger.Warn("Cancel rejected", slog.String("order_id", orderID), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to cancel order", slog.String("order_id", orderID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		}
		return
	}

	logger.Info("Order cancelled", slog.String("order_id", orderID))
	c.Status(http.StatusNoContent)
}
