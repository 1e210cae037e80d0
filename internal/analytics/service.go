package analytics

import (
	"context"
	"math"

	"backend/internal/models"
	"backend/internal/repository"

	"go.uber.org/zap"
)

// Generator is the external text-generation service used for pain-point
// classification. Calls may fail; failures are absorbed per item.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AnalyticsService computes the KPI summaries for a validated filter set.
type AnalyticsService interface {
	SessionMetrics(ctx context.Context, f *models.AnalyticsFilters) (*models.SessionMetricsResult, error)
	PainPointClustering(ctx context.Context, f *models.AnalyticsFilters) (*models.PainPointClusteringResult, error)
	VolumeTrends(ctx context.Context, f *models.AnalyticsFilters) (*models.VolumeTrendsResult, error)
	UserEngagement(ctx context.Context, f *models.AnalyticsFilters) (*models.UserEngagementResult, error)
	UserRetention(ctx context.Context, f *models.AnalyticsFilters) (*models.UserRetentionResult, error)
	QueryCategories(ctx context.Context, f *models.AnalyticsFilters) (*models.QueryCategoriesResult, error)
	ReturningUserBehavior(ctx context.Context, f *models.AnalyticsFilters) (*models.ReturningUserBehaviorResult, error)
	UserSegmentation(ctx context.Context, f *models.AnalyticsFilters) (*models.UserSegmentationResult, error)
	TimePatterns(ctx context.Context, f *models.AnalyticsFilters) (*models.TimePatternsResult, error)
	ConversationLength(ctx context.Context, f *models.AnalyticsFilters) (*models.ConversationLengthResult, error)
	PlatformAnalytics(ctx context.Context, f *models.AnalyticsFilters) (*models.PlatformAnalyticsResult, error)
	SentimentAnalysis(ctx context.Context, f *models.AnalyticsFilters) (*models.SentimentAnalysisResult, error)
}

type analyticsService struct {
	repo      repository.AnalyticsRepository
	generator Generator
	scorer    Scorer
	logger    *zap.Logger
}

// NewAnalyticsService creates the KPI computation service.
func NewAnalyticsService(repo repository.AnalyticsRepository, generator Generator, scorer Scorer, logger *zap.Logger) AnalyticsService {
	return &analyticsService{
		repo:      repo,
		generator: generator,
		scorer:    scorer,
		logger:    logger,
	}
}

// round2 rounds to 2 decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round3 rounds to 3 decimal places, half away from zero.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// percentage computes count/total as a rounded percentage; an empty
// denominator yields 0.0.
func percentage(count, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return round2(float64(count) / float64(total) * 100)
}
