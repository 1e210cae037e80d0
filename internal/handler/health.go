package handler

import (
	"net/http"

	"backend/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthHandler reports service and database status.
type HealthHandler interface {
	GetRoot(c *gin.Context)
	GetHealth(c *gin.Context)
}

type healthHandler struct {
	repo   repository.AnalyticsRepository
	logger *zap.Logger
}

// NewHealthHandler creates the health/service-info handler.
func NewHealthHandler(repo repository.AnalyticsRepository, logger *zap.Logger) HealthHandler {
	return &healthHandler{repo: repo, logger: logger}
}

// GetRoot handles GET /
func (h *healthHandler) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Chatbot Analytics API",
		"version": "1.0.0",
		"status":  "running",
	})
}

// GetHealth handles GET /health. It verifies connectivity by probing both
// interaction-log tables.
func (h *healthHandler) GetHealth(c *gin.Context) {
	counts, err := h.repo.TableRowCounts(c.Request.Context())
	if err != nil {
		h.logger.Error("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": gin.H{"status": "error", "error": err.Error()},
		})
		return
	}

	tables := gin.H{}
	for table, count := range counts {
		tables[table] = gin.H{"exists": true, "row_count": count}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": gin.H{"status": "connected", "tables": tables},
	})
}
