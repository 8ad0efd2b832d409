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

// pricingHandler handles HTTP requests for the cached exchange rates and TLD
// price tables.
type pricingHandler struct {
	ratesService portssvc.RatesSvcFacade
}

// newPricingHandler creates a new pricingHandler.
func newPricingHandler(rs portssvc.RatesSvcFacade) *pricingHandler {
	return &pricingHandler{
		ratesService: rs,
	}
}

// registerPricingRoutes registers routes related to pricing data.
func registerPricingRoutes(rg *gin.RouterGroup, ratesService portssvc.RatesSvcFacade) {
	h := newPricingHandler(ratesService)

	pricing := rg.Group("/pricing")
	{
		pricing.GET("/rates/:from/:to", h.getExchangeRate)
		pricing.GET("/tlds/:tld", h.getTldPricing)
	}
}

// getExchangeRate godoc
// @Summary Get a cached exchange rate
// @Description Retrieves the latest cached rate and margin for a currency pair
// @Tags pricing
// @Produce  json
// @Param   from path string true "From Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   to   path string true "To Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code format"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Security BearerAuth
// @Router /pricing/rates/{from}/{to} [get]
func (h *pricingHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := c.Param("from")
	toCode := c.Param("to")

	logger = logger.With(slog.String("from_code", fromCode), slog.String("to_code", toCode))

	rate, err := h.ratesService.GetRate(c.Request.Context(), fromCode, toCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error getting exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Exchange rate not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Exchange rate not found"})
		} else {
			logger.Error("Failed to get exchange rate from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// getTldPricing godoc
// @Summary Get the price table for a TLD
// @Description Retrieves the registration, renewal and transfer prices for a TLD
// @Tags pricing
// @Produce  json
// @Param   tld path string true "TLD without the leading dot, e.g. com or co.uk"
// @Success 200 {object} dto.TldPricingResponse
// @Failure 404 {object} map[string]string "TLD not priced"
// @Failure 500 {object} map[string]string "Failed to retrieve TLD pricing"
// @Security BearerAuth
// @Router /pricing/tlds/{tld} [get]
func (h *pricingHandler) getTldPricing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tld := c.Param("tld")

	entry, err := h.ratesService.GetTldPricing(c.Request.Context(), tld)
	if err != nil {
		if errors.Is(err, apperrors.ErrTldNotPriced) {
			logger.Warn("TLD not priced", slog.String("tld", tld))
			c.JSON(http.StatusNotFound, gin.H{"error": "TLD not priced"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get TLD pricing from service", slog.String("tld", tld), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve TLD pricing"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTldPricingResponse(entry))
}
