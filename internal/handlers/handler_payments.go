package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oakhost/oakhost_backend/internal/apperrors"
	portssvc "github.com/oakhost/oakhost_backend/internal/core/ports/services"
	"github.com/oakhost/oakhost_backend/internal/middleware"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/webhook"
)

// maxWebhookBodyBytes bounds the webhook payload read; Stripe events are small.
const maxWebhookBodyBytes = 65536

// paymentsHandler handles payment verification and the Stripe webhook. Both
// paths funnel into the reconciliation service, which settles each session
// exactly once no matter how many callers race.
type paymentsHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
	webhookSecret         string
}

// newPaymentsHandler creates a new paymentsHandler.
func newPaymentsHandler(rs portssvc.ReconciliationSvcFacade, webhookSecret string) *paymentsHandler {
	return &paymentsHandler{
		reconciliationService: rs,
		webhookSecret:         webhookSecret,
	}
}

// registerPaymentRoutes registers the authenticated verification route.
func registerPaymentRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newPaymentsHandler(reconciliationService, "")

	rg.GET("/payments/verify", h.verifyPayment)
}

// registerWebhookRoutes registers the unauthenticated provider webhook.
// Authenticity is established by signature verification, not by a bearer token.
func registerWebhookRoutes(r *gin.Engine, reconciliationService portssvc.ReconciliationSvcFacade, webhookSecret string) {
	h := newPaymentsHandler(reconciliationService, webhookSecret)

	r.POST("/webhooks/stripe", h.stripeWebhook)
}

// verifyPayment godoc
// @Summary Verify a checkout session's payment
// @Description Polls the payment provider for the session's settlement status with bounded retries. Returns "paid" once settled or "unsettled" when the provider still reports unpaid; an unsettled session is completed later by the provider webhook.
// @Tags payments
// @Produce  json
// @Param   session_id query string true "Payment provider checkout session ID"
// @Success 200 {object} dto.VerifyPaymentResponse
// @Failure 400 {object} map[string]string "Missing session_id"
// @Failure 404 {object} map[string]string "No order linked to the session"
// @Failure 500 {object} map[string]string "Failed to verify payment"
// @Security BearerAuth
// @Router /payments/verify [get]
func (h *paymentsHandler) verifyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id query parameter is required"})
		return
	}

	logger = logger.With(slog.String("session_id", sessionID))

	resp, err := h.reconciliationService.Verify(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No order linked to session")
			c.JSON(http.StatusNotFound, gin.H{"error": "No order linked to this session"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to verify payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify payment"})
		}
		return
	}

	logger.Info("Payment verification completed", slog.String("payment_status", resp.PaymentStatus))
	c.JSON(http.StatusOK, resp)
}

// stripeWebhook handles checkout.session.completed events from Stripe. The
// payload signature is verified against the endpoint secret before anything is
// trusted. Settlement reuses the same reconciliation path as the user-facing
// verify poll, so a webhook landing before or after the poll makes no
// difference to the outcome.
func (h *paymentsHandler) stripeWebhook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		logger.Warn("Failed to read webhook payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read payload"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		logger.Warn("Webhook signature verification failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	if event.Type != "checkout.session.completed" {
		// Other event types are acknowledged and ignored.
		c.Status(http.StatusOK)
		return
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		logger.Error("Failed to parse checkout session from webhook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event payload"})
		return
	}

	logger = logger.With(slog.String("session_id", session.ID))

	if _, err := h.reconciliationService.Verify(c.Request.Context(), session.ID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// A session from another environment or product; acknowledge so
			// Stripe stops retrying.
			logger.Warn("Webhook session has no linked order")
			c.Status(http.StatusOK)
			return
		}
		logger.Error("Failed to settle webhook session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process event"})
		return
	}

	logger.Info("Webhook session settled")
	c.Status(http.StatusOK)
}
