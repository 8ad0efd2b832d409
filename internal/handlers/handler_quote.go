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

// quoteHandler handles HTTP requests for domain price quotes.
type quoteHandler struct {
	quoteService portssvc.QuoteSvcFacade
}

// newQuoteHandler creates a new quoteHandler.
func newQuoteHandler(qs portssvc.QuoteSvcFacade) *quoteHandler {
	return &quoteHandler{
		quoteService: qs,
	}
}

// registerQuoteRoutes registers routes related to domain quotes.
func registerQuoteRoutes(rg *gin.RouterGroup, quoteService portssvc.QuoteSvcFacade) {
	h := newQuoteHandler(quoteService)

	rg.POST("/quotes", h.createQuote)
}

// createQuote godoc
// @Summary Quote a domain registration
// @Description Prices a domain registration over the requested term in the settlement currency, including the optional ID protection add-on. The quote is locked: checkout validates the submitted quote against current pricing and rejects on mismatch.
// @Tags quotes
// @Accept  json
// @Produce  json
// @Param   quote body dto.QuoteRequest true "Domain, term and add-on selection"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "TLD not priced"
// @Failure 500 {object} map[string]string "Failed to compute quote"
// @Security BearerAuth
// @Router /quotes [post]
func (h *quoteHandler) createQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateQuote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("domain", req.Domain), slog.Int("years", req.Years))

	quote, err := h.quoteService.Quote(c.Request.Context(), req.Domain, req.Years, req.IDProtection)
	if err != nil {
		if errors.Is(err, apperrors.ErrTldNotPriced) {
			logger.Warn("TLD not priced for quote")
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error computing quote", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute quote", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute quote"})
		}
		return
	}

	logger.Info("Quote computed", slog.String("total", quote.TotalPrice.String()), slog.Bool("available", quote.Available))
	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}
