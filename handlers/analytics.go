package handlers

import (
	"net/http"

	"mentorhub/services/analytics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnalyticsHandler serves the mentor dashboard aggregates and exports.
type AnalyticsHandler struct {
	Service analytics.AnalyticsService
}

func NewAnalyticsHandler(svc analytics.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{Service: svc}
}

// GetAnalyticsHandler handles GET /api/analytics?period.
func (h *AnalyticsHandler) GetAnalyticsHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, _ := identity(c)

	period := c.DefaultQuery("period", analytics.PeriodMonth)
	stats, err := h.Service.DashboardStats(c.Request.Context(), userID, period)
	if err != nil {
		logger.Error("analytics aggregation failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportHandler handles POST /api/analytics/export with body {period, format}.
func (h *AnalyticsHandler) ExportHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, _ := identity(c)

	var req struct {
		Period string `json:"period"`
		Format string `json:"format"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if req.Period == "" {
		req.Period = analytics.PeriodMonth
	}
	if req.Format == "" {
		req.Format = analytics.FormatJSON
	}

	data, contentType, err := h.Service.Export(c.Request.Context(), userID, req.Period, req.Format)
	if err != nil {
		logger.Error("export failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=sessions."+req.Format)
	c.Data(http.StatusOK, contentType, data)
}
