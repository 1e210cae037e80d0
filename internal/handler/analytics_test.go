package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/internal/handler"
	"backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubService returns canned results for each KPI.
type stubService struct {
	sessionMetrics *models.SessionMetricsResult
	err            error
	gotFilters     *models.AnalyticsFilters
}

func (s *stubService) SessionMetrics(ctx context.Context, f *models.AnalyticsFilters) (*models.SessionMetricsResult, error) {
	s.gotFilters = f
	if s.err != nil {
		return nil, s.err
	}
	if s.sessionMetrics != nil {
		return s.sessionMetrics, nil
	}
	return &models.SessionMetricsResult{FiltersApplied: f.Applied()}, nil
}

func (s *stubService) PainPointClustering(ctx context.Context, f *models.AnalyticsFilters) (*models.PainPointClusteringResult, error) {
	s.gotFilters = f
	return &models.PainPointClusteringResult{Clusters: []models.Cluster{}, FiltersApplied: f.Applied()}, s.err
}

func (s *stubService) VolumeTrends(ctx context.Context, f *models.AnalyticsFilters) (*models.VolumeTrendsResult, error) {
	s.gotFilters = f
	return &models.VolumeTrendsResult{DailyData: []models.DailyVolumePoint{}, FiltersApplied: f.Applied()}, s.err
}

func (s *stubService) UserEngagement(ctx context.Context, f *models.AnalyticsFilters) (*models.UserEngagementResult, error) {
	s.gotFilters = f
	return &models.UserEngagementResult{FiltersApplied: f.Applied()}, s.err
}

func (s *stubService) UserRetention(ctx context.Context, f *models.AnalyticsFilters) (*models.UserRetentionResult, error) {
	s.gotFilters = f
	return &models.UserRetentionResult{FiltersApplied: f.Applied()}, s.err
}

func (s *stubService) QueryCategories(ctx context.Context, f *models.AnalyticsFilters) (*models.QueryCategoriesResult, error) {
	s.gotFilters = f
	return &models.QueryCategoriesResult{Categories: []models.CategoryBreakdown{}, FiltersApplied: f.Applied()}, s.err
}

func (s *stubService) ReturningUserBehavior(ctx context.Context, f *models.AnalyticsFilters) (*models.ReturningUserBehaviorResult, error) {
	s.gotFilters = f
	return &models.ReturningUserBehaviorResult{FiltersApplied: f.Applied()}, s.err
}

func (s *stubService) UserSegmentation(ctx context.Context, f *models.AnalyticsFilters) (*models.UserSegmentationResult, error) {
	s.gotFilters = f
	return &models.UserSegmentationResult{Segments: []models.UserSegment{}, FiltersApplied: f.Applied()}, s.err
}

func (s *stubService) TimePatterns(ctx context.Context, f *models.AnalyticsFilters) (*models.TimePatternsResult, error) {
	s.gotFilters = f
	return &models.TimePatternsResult{ByHour: []models.HourBucket{}, ByDay: []models.DayBucket{}, FiltersApplied: f.Applied()}, s.err
}

func (s *stubService) ConversationLength(ctx context.Context, f *models.AnalyticsFilters) (*models.ConversationLengthResult, error) {
	s.gotFilters = f
	return &models.ConversationLengthResult{Distribution: []models.LengthBucket{}, FiltersApplied: f.Applied()}, s.err
}

func (s *stubService) PlatformAnalytics(ctx context.Context, f *models.AnalyticsFilters) (*models.PlatformAnalyticsResult, error) {
	s.gotFilters = f
	return &models.PlatformAnalyticsResult{
		ByLanguage:     []models.LanguageBreakdown{},
		ByVoice:        []models.InputTypeBreakdown{},
		ByMobile:       []models.PlatformBreakdown{},
		FiltersApplied: f.Applied(),
	}, s.err
}

func (s *stubService) SentimentAnalysis(ctx context.Context, f *models.AnalyticsFilters) (*models.SentimentAnalysisResult, error) {
	s.gotFilters = f
	return &models.SentimentAnalysisResult{
		SentimentDistribution: []models.SentimentBucket{},
		MostPositiveMessages:  []models.ScoredMessage{},
		MostNegativeMessages:  []models.ScoredMessage{},
		FiltersApplied:        f.Applied(),
	}, s.err
}

func newTestRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewAnalyticsHandler(svc, zap.NewNop())

	router := gin.New()
	router.GET("/api/analytics/session-metrics", h.GetSessionMetrics)
	router.GET("/api/analytics/user-retention", h.GetUserRetention)
	router.GET("/api/analytics/sentiment-analysis", h.GetSentimentAnalysis)
	return router
}

func doGet(router *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	router.ServeHTTP(w, req)
	return w
}

const validQuery = "start_date=2024-01-01T00:00:00Z&end_date=2024-01-31T00:00:00Z&product_context=pool"

func TestGetSessionMetricsOK(t *testing.T) {
	svc := &stubService{sessionMetrics: &models.SessionMetricsResult{
		TotalSessions:            3,
		NegativeFeedbackSessions: 1,
		PositiveFeedbackSessions: 1,
		AvgResponseTime:          1.5,
	}}
	router := newTestRouter(svc)

	w := doGet(router, "/api/analytics/session-metrics?"+validQuery)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(3), body["total_sessions"])
	assert.Equal(t, 1.5, body["avg_response_time"])

	require.NotNil(t, svc.gotFilters)
	assert.Equal(t, models.ContextPool, svc.gotFilters.ProductContext)
	assert.Equal(t, models.UserTypeAll, svc.gotFilters.UserType)
}

func TestOptionalFiltersForwarded(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc)

	w := doGet(router, "/api/analytics/user-retention?"+validQuery+"&environment=production&user_id=u1&user_type=internal")
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, svc.gotFilters)
	assert.Equal(t, "production", svc.gotFilters.Environment)
	assert.Equal(t, "u1", svc.gotFilters.UserID)
	assert.Equal(t, models.UserTypeInternal, svc.gotFilters.UserType)
}

func TestValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"missing dates", "product_context=pool"},
		{"bad start date", "start_date=nope&end_date=2024-01-31T00:00:00Z&product_context=pool"},
		{"unknown context", "start_date=2024-01-01T00:00:00Z&end_date=2024-01-31T00:00:00Z&product_context=garden"},
		{"unknown user type", validQuery + "&user_type=guest"},
		{"inverted range", "start_date=2024-02-01T00:00:00Z&end_date=2024-01-01T00:00:00Z&product_context=pool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{}
			router := newTestRouter(svc)

			w := doGet(router, "/api/analytics/session-metrics?"+tt.query)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			// Rejected before any KPI computation runs.
			assert.Nil(t, svc.gotFilters)
		})
	}
}

func TestDateOnlyTimestampsAccepted(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc)

	w := doGet(router, "/api/analytics/session-metrics?start_date=2024-01-01&end_date=2024-01-31&product_context=landscape")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExecutionFailureIsGeneric(t *testing.T) {
	svc := &stubService{err: errors.New("connection reset by peer")}
	router := newTestRouter(svc)

	w := doGet(router, "/api/analytics/sentiment-analysis?"+validQuery)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to retrieve analytics data", body["error"])
	assert.NotContains(t, w.Body.String(), "connection reset")
}
