package handler

import (
	"time"

	"receipt-ledger/internal/adapter/http/dto"
	"receipt-ledger/internal/core/domain"
	"receipt-ledger/internal/core/ports"
	"receipt-ledger/pkg/apperror"
	"receipt-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler handles the revenue dashboard and eco impact endpoints.
type AnalyticsHandler struct {
	analyticsSvc    ports.AnalyticsService
	defaultCurrency domain.Currency
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsSvc ports.AnalyticsService, defaultCurrency domain.Currency) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc, defaultCurrency: defaultCurrency}
}

// Revenue handles GET /api/v1/analytics/revenue?timeframe=week&currency=SGD.
// Timeframe defaults to week; currency defaults to the configured currency.
// Receipts in other currencies are excluded from the report, not converted.
func (h *AnalyticsHandler) Revenue(c *gin.Context) {
	tf := domain.TimeframeWeek
	if raw := c.Query("timeframe"); raw != "" {
		parsed, err := domain.ParseTimeframe(raw)
		if err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
		tf = parsed
	}

	currency := h.defaultCurrency
	if raw := c.Query("currency"); raw != "" {
		parsed, err := domain.ParseCurrency(raw)
		if err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
		currency = parsed
	}

	report := h.analyticsSvc.Revenue(tf, currency, time.Now())
	response.OK(c, dto.ToRevenueReportResponse(report))
}

// Eco handles GET /api/v1/analytics/eco.
func (h *AnalyticsHandler) Eco(c *gin.Context) {
	eco := h.analyticsSvc.Eco(time.Now())
	response.OK(c, dto.EcoReportResponse{
		CO2AvoidedKg: eco.CO2AvoidedKg,
		WaterSavedL:  eco.WaterSavedL,
		TreesSaved:   eco.TreesSaved,
	})
}
