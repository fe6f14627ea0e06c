package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.PUT("", h.upsertExchangeRate)
		rates.GET("/convert", h.convert)
		rates.GET("/health", h.rateHealth)
	}
}

// upsertExchangeRate godoc
// @Summary Create or replace an exchange rate
// @Description Stores the rate of a currency pair effective from a date, replacing an existing rate for the same pair and date
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.UpsertExchangeRateRequest true "Exchange rate details"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown currency"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save exchange rate"
// @Security BearerAuth
// @Router /exchange-rates [put]
func (h *exchangeRateHandler) upsertExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	rate, err := h.rateService.UpsertRate(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to save exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// convert godoc
// @Summary Convert an amount to the base currency
// @Description Uses the latest rate effective on or before the date. converted is null when no rate is available.
// @Tags exchange-rates
// @Produce  json
// @Param   amount query string true "Amount"
// @Param   from query string true "Source currency code"
// @Param   date query string false "Conversion date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to convert amount"
// @Security BearerAuth
// @Router /exchange-rates/convert [get]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ConvertParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(params.Amount))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount: " + err.Error()})
		return
	}
	date := asOfOrToday(params.Date)

	converted, err := h.rateService.ConvertToBase(c.Request.Context(), amount, params.From, date)
	if err != nil {
		respondError(c, logger, err, "Failed to convert amount")
		return
	}

	c.JSON(http.StatusOK, dto.ConvertResponse{
		Amount:       amount,
		FromCurrency: params.From,
		BaseCurrency: h.rateService.BaseCurrency(),
		Date:         date,
		Converted:    converted,
	})
}

// rateHealth godoc
// @Summary Report exchange rate freshness
// @Description Classifies the latest rate of every active foreign currency as fresh, stale or missing
// @Tags exchange-rates
// @Produce  json
// @Success 200 {object} dto.RateHealthResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to check rate health"
// @Security BearerAuth
// @Router /exchange-rates/health [get]
func (h *exchangeRateHandler) rateHealth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	health, err := h.rateService.RateHealth(c.Request.Context(), today())
	if err != nil {
		respondError(c, logger, err, "Failed to check rate health")
		return
	}

	c.JSON(http.StatusOK, dto.RateHealthResponse{
		BaseCurrency: h.rateService.BaseCurrency(),
		StaleAfter:   h.rateService.StaleAfterDays(),
		Currencies:   health,
	})
}
