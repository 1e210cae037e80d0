package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"backend/internal/analytics"
	"backend/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnalyticsHandler exposes one GET endpoint per KPI. All endpoints accept
// the same filter query parameters.
type AnalyticsHandler interface {
	GetSessionMetrics(c *gin.Context)
	GetPainPointClustering(c *gin.Context)
	GetVolumeTrends(c *gin.Context)
	GetUserEngagement(c *gin.Context)
	GetUserRetention(c *gin.Context)
	GetQueryCategories(c *gin.Context)
	GetReturningUserBehavior(c *gin.Context)
	GetUserSegmentation(c *gin.Context)
	GetTimePatterns(c *gin.Context)
	GetConversationLength(c *gin.Context)
	GetPlatformAnalytics(c *gin.Context)
	GetSentimentAnalysis(c *gin.Context)
}

type analyticsHandler struct {
	service analytics.AnalyticsService
	logger  *zap.Logger
}

// NewAnalyticsHandler creates the KPI endpoint handler.
func NewAnalyticsHandler(service analytics.AnalyticsService, logger *zap.Logger) AnalyticsHandler {
	return &analyticsHandler{service: service, logger: logger}
}

// timestampLayouts are the accepted start_date/end_date formats: RFC 3339,
// ISO 8601 without offset, and bare date.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseFilters extracts and validates the filter query parameters. On
// failure it writes a 400 with the specific message and returns ok=false.
func (h *analyticsHandler) parseFilters(c *gin.Context) (*models.AnalyticsFilters, bool) {
	startRaw := c.Query("start_date")
	endRaw := c.Query("end_date")
	if startRaw == "" || endRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return nil, false
	}

	startDate, err := parseTimestamp(startRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date is not a valid ISO 8601 timestamp"})
		return nil, false
	}
	endDate, err := parseTimestamp(endRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date is not a valid ISO 8601 timestamp"})
		return nil, false
	}

	filters := &models.AnalyticsFilters{
		StartDate:      startDate,
		EndDate:        endDate,
		ProductContext: c.Query("product_context"),
		Environment:    c.Query("environment"),
		UserID:         c.Query("user_id"),
		UserType:       c.DefaultQuery("user_type", models.UserTypeAll),
	}

	if err := filters.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	return filters, true
}

// handleKPI runs one KPI computation and writes the response. Validation
// and configuration errors surface specifically as 400; execution failures
// are reported generically.
func handleKPI[T any](h *analyticsHandler, c *gin.Context, compute func(context.Context, *models.AnalyticsFilters) (T, error)) {
	filters, ok := h.parseFilters(c)
	if !ok {
		return
	}

	result, err := compute(c.Request.Context(), filters)
	if err != nil {
		var validationErr *models.ValidationError
		var configErr *models.ConfigurationError
		if errors.As(err, &validationErr) || errors.As(err, &configErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to compute KPI", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analytics data"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSessionMetrics handles GET /api/analytics/session-metrics
func (h *analyticsHandler) GetSessionMetrics(c *gin.Context) {
	handleKPI(h, c, h.service.SessionMetrics)
}

// GetPainPointClustering handles GET /api/analytics/pain-point-clustering.
// This endpoint may take longer to respond because classification runs one
// external call per query in range.
func (h *analyticsHandler) GetPainPointClustering(c *gin.Context) {
	handleKPI(h, c, h.service.PainPointClustering)
}

// GetVolumeTrends handles GET /api/analytics/volume-trends
func (h *analyticsHandler) GetVolumeTrends(c *gin.Context) {
	handleKPI(h, c, h.service.VolumeTrends)
}

// GetUserEngagement handles GET /api/analytics/user-engagement
func (h *analyticsHandler) GetUserEngagement(c *gin.Context) {
	handleKPI(h, c, h.service.UserEngagement)
}

// GetUserRetention handles GET /api/analytics/user-retention
func (h *analyticsHandler) GetUserRetention(c *gin.Context) {
	handleKPI(h, c, h.service.UserRetention)
}

// GetQueryCategories handles GET /api/analytics/query-categories
func (h *analyticsHandler) GetQueryCategories(c *gin.Context) {
	handleKPI(h, c, h.service.QueryCategories)
}

// GetReturningUserBehavior handles GET /api/analytics/returning-user-behavior
func (h *analyticsHandler) GetReturningUserBehavior(c *gin.Context) {
	handleKPI(h, c, h.service.ReturningUserBehavior)
}

// GetUserSegmentation handles GET /api/analytics/user-segmentation
func (h *analyticsHandler) GetUserSegmentation(c *gin.Context) {
	handleKPI(h, c, h.service.UserSegmentation)
}

// GetTimePatterns handles GET /api/analytics/time-patterns
func (h *analyticsHandler) GetTimePatterns(c *gin.Context) {
	handleKPI(h, c, h.service.TimePatterns)
}

// GetConversationLength handles GET /api/analytics/conversation-length
func (h *analyticsHandler) GetConversationLength(c *gin.Context) {
	handleKPI(h, c, h.service.ConversationLength)
}

// GetPlatformAnalytics handles GET /api/analytics/platform-analytics
func (h *analyticsHandler) GetPlatformAnalytics(c *gin.Context) {
	handleKPI(h, c, h.service.PlatformAnalytics)
}

// GetSentimentAnalysis handles GET /api/analytics/sentiment-analysis
func (h *analyticsHandler) GetSentimentAnalysis(c *gin.Context) {
	handleKPI(h, c, h.service.SentimentAnalysis)
}
