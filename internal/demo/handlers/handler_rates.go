package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/money_field_kit/internal/apperrors"
	"github.com/SscSPs/money_field_kit/internal/demo/dto"
	"github.com/SscSPs/money_field_kit/internal/demo/ports"
	"github.com/SscSPs/money_field_kit/internal/middleware"
	"github.com/SscSPs/money_field_kit/pkg/exchange"
	"github.com/gin-gonic/gin"
)

// ratesHandler handles HTTP requests related to exchange rates.
type ratesHandler struct {
	ratesService ports.RatesSvcFacade
}

// newRatesHandler creates a new ratesHandler.
func newRatesHandler(rs ports.RatesSvcFacade) *ratesHandler {
	return &ratesHandler{
		ratesService: rs,
	}
}

// RegisterRateRoutes registers routes related to exchange rates.
func RegisterRateRoutes(rg *gin.RouterGroup, ratesService ports.RatesSvcFacade) {
	h := newRatesHandler(ratesService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.listRates)
		rates.POST("/refresh", h.refreshRates)
		rates.GET("/:from/:to", h.getRate)
	}
}

// listRates godoc
// @Summary List stored exchange rates
// @Description Retrieves every rate stored for the active backend together with the last fetch time
// @Tags rates
// @Produce  json
// @Success 200 {object} dto.ListRatesResponse
// @Failure 500 {object} map[string]string "Failed to list rates"
// @Router /rates [get]
func (h *ratesHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to list exchange rates")

	rates, err := h.ratesService.ListRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list rates from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rates"})
		return
	}

	var lastFetched *time.Time
	fetchedAt, err := h.ratesService.LastFetched(c.Request.Context())
	if err != nil && !errors.Is(err, exchange.ErrNeverFetched) {
		logger.Error("Failed to get last fetch time from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rates"})
		return
	}
	if err == nil {
		lastFetched = &fetchedAt
	}

	logger.Info("Rates listed successfully", slog.Int("count", len(rates)))
	c.JSON(http.StatusOK, dto.ToListRatesResponse(rates, lastFetched))
}

// getRate godoc
// @Summary Get a conversion rate
// @Description Retrieves the conversion rate between two currencies, deriving cross rates through the base currency when needed
// @Tags rates
// @Produce  json
// @Param   from path string true "Source currency code (3 letters)"
// @Param   to path string true "Target currency code (3 letters)"
// @Success 200 {object} dto.GetRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code"
// @Failure 404 {object} map[string]string "Rate not found"
// @Failure 500 {object} map[string]string "Failed to retrieve rate"
// @Router /rates/{from}/{to} [get]
func (h *ratesHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := c.Param("from")
	toCode := c.Param("to")

	logger = logger.With(slog.String("from", fromCode), slog.String("to", toCode))
	logger.Info("Received request to get exchange rate")

	rate, err := h.ratesService.GetRate(c.Request.Context(), fromCode, toCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid currency code", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, exchange.ErrRateNotFound) || errors.Is(err, exchange.ErrNeverFetched) {
			logger.Warn("Rate not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Rate not found"})
		} else {
			logger.Error("Failed to get rate from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rate"})
		}
		return
	}

	logger.Info("Rate retrieved successfully")
	c.JSON(http.StatusOK, dto.GetRateResponse{
		From: fromCode,
		To:   toCode,
		Rate: rate,
	})
}

// refreshRates godoc
// @Summary Refresh exchange rates
// @Description Fetches fresh rates from the active backend and stores them
// @Tags rates
// @Produce  json
// @Success 202 {object} map[string]string "Refresh completed"
// @Failure 500 {object} map[string]string "Failed to refresh rates"
// @Router /rates/refresh [post]
func (h *ratesHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to refresh exchange rates")

	if err := h.ratesService.RefreshRates(c.Request.Context()); err != nil {
		logger.Error("Failed to refresh rates in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh rates"})
		return
	}

	logger.Info("Rates refreshed successfully")
	c.JSON(http.StatusAccepted, gin.H{"status": "rates refreshed"})
}
