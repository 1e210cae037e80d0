package analytics_test

import (
	"context"

	"backend/internal/analytics"
	"backend/internal/models"

	"go.uber.org/zap"
)

// stubRepo returns canned rows per KPI query.
type stubRepo struct {
	sessionMetrics *models.SessionMetricsRow
	daily          []models.DailyVolumeRow
	engagement     *models.EngagementRow
	userSessions   []models.UserSessionsRow
	categories     []models.CategoryCountRow
	returning      []models.ReturningUserRow
	segmentation   []models.UserSessionsRow
	queries        []models.UserQueryRow
	timePatterns   []models.TimePatternRow
	lengths        []models.ConversationLengthRow
	platform       []models.PlatformRow
	err            error
}

func (r *stubRepo) SessionMetrics(ctx context.Context, f *models.AnalyticsFilters) (*models.SessionMetricsRow, error) {
	return r.sessionMetrics, r.err
}

func (r *stubRepo) DailyVolume(ctx context.Context, f *models.AnalyticsFilters) ([]models.DailyVolumeRow, error) {
	return r.daily, r.err
}

func (r *stubRepo) Engagement(ctx context.Context, f *models.AnalyticsFilters) (*models.EngagementRow, error) {
	return r.engagement, r.err
}

func (r *stubRepo) UserSessionCounts(ctx context.Context, f *models.AnalyticsFilters) ([]models.UserSessionsRow, error) {
	return r.userSessions, r.err
}

func (r *stubRepo) CategoryCounts(ctx context.Context, f *models.AnalyticsFilters) ([]models.CategoryCountRow, error) {
	return r.categories, r.err
}

func (r *stubRepo) ReturningUsers(ctx context.Context, f *models.AnalyticsFilters) ([]models.ReturningUserRow, error) {
	return r.returning, r.err
}

func (r *stubRepo) SegmentationCounts(ctx context.Context, f *models.AnalyticsFilters) ([]models.UserSessionsRow, error) {
	return r.segmentation, r.err
}

func (r *stubRepo) UserQueries(ctx context.Context, f *models.AnalyticsFilters) ([]models.UserQueryRow, error) {
	return r.queries, r.err
}

func (r *stubRepo) TimePatterns(ctx context.Context, f *models.AnalyticsFilters) ([]models.TimePatternRow, error) {
	return r.timePatterns, r.err
}

func (r *stubRepo) ConversationLengths(ctx context.Context, f *models.AnalyticsFilters) ([]models.ConversationLengthRow, error) {
	return r.lengths, r.err
}

func (r *stubRepo) PlatformCounts(ctx context.Context, f *models.AnalyticsFilters) ([]models.PlatformRow, error) {
	return r.platform, r.err
}

func (r *stubRepo) TableRowCounts(ctx context.Context) (map[string]int64, error) {
	return map[string]int64{"interaction_log": 0, "landscape_interaction_log": 0}, r.err
}

// stubGenerator records prompts and returns a canned response or error.
type stubGenerator struct {
	response string
	err      error
	calls    int
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	return g.response, g.err
}

// stubScorer maps message text to a fixed compound score.
type stubScorer struct {
	compounds map[string]float64
	calls     int
}

func (s *stubScorer) Score(text string) analytics.SentimentScores {
	s.calls++
	return analytics.SentimentScores{Compound: s.compounds[text]}
}

func newService(repo *stubRepo, gen *stubGenerator, scorer *stubScorer) analytics.AnalyticsService {
	if gen == nil {
		gen = &stubGenerator{response: "0"}
	}
	if scorer == nil {
		scorer = &stubScorer{compounds: map[string]float64{}}
	}
	return analytics.NewAnalyticsService(repo, gen, scorer, zap.NewNop())
}
