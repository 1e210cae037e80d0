package server

import (
	"net/http"

	"backend/internal/config"
	"backend/internal/handler"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	log    *logrus.Logger
}

func NewServer(cfg *config.Config, analyticsHandler handler.AnalyticsHandler, healthHandler handler.HealthHandler, logger *zap.Logger, log *logrus.Logger) *Server {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())

	s := &Server{
		router: router,
		log:    log,
	}

	// Ping route for health check
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	router.GET("/", healthHandler.GetRoot)
	router.GET("/health", healthHandler.GetHealth)

	// Analytics routes, all behind bearer-token auth
	authRequired := router.Group("/api/analytics")
	authRequired.Use(middleware.AuthMiddleware([]byte(cfg.Auth.JWTSecret), cfg.Auth.DevMode, logger))
	{
		authRequired.GET("/session-metrics", analyticsHandler.GetSessionMetrics)
		authRequired.GET("/pain-point-clustering", analyticsHandler.GetPainPointClustering)
		authRequired.GET("/volume-trends", analyticsHandler.GetVolumeTrends)
		authRequired.GET("/user-engagement", analyticsHandler.GetUserEngagement)
		authRequired.GET("/user-retention", analyticsHandler.GetUserRetention)
		authRequired.GET("/query-categories", analyticsHandler.GetQueryCategories)
		authRequired.GET("/returning-user-behavior", analyticsHandler.GetReturningUserBehavior)
		authRequired.GET("/user-segmentation", analyticsHandler.GetUserSegmentation)
		authRequired.GET("/time-patterns", analyticsHandler.GetTimePatterns)
		authRequired.GET("/conversation-length", analyticsHandler.GetConversationLength)
		authRequired.GET("/platform-analytics", analyticsHandler.GetPlatformAnalytics)
		authRequired.GET("/sentiment-analysis", analyticsHandler.GetSentimentAnalysis)
	}

	return s
}

func (s *Server) Run(addr string) {
	s.log.Infof("Server starting on port %s...", addr)
	if err := s.router.Run(addr); err != nil {
		s.log.Fatalf("Server failed to start: %v", err)
	}
}
