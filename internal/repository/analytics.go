package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// AnalyticsRepository runs the per-KPI queries against the context-selected
// interaction log. It is read-only: absence of matching rows yields an empty
// slice (or nil single row), never an error.
type AnalyticsRepository interface {
	SessionMetrics(ctx context.Context, f *models.AnalyticsFilters) (*models.SessionMetricsRow, error)
	DailyVolume(ctx context.Context, f *models.AnalyticsFilters) ([]models.DailyVolumeRow, error)
	Engagement(ctx context.Context, f *models.AnalyticsFilters) (*models.EngagementRow, error)
	UserSessionCounts(ctx context.Context, f *models.AnalyticsFilters) ([]models.UserSessionsRow, error)
	CategoryCounts(ctx context.Context, f *models.AnalyticsFilters) ([]models.CategoryCountRow, error)
	ReturningUsers(ctx context.Context, f *models.AnalyticsFilters) ([]models.ReturningUserRow, error)
	SegmentationCounts(ctx context.Context, f *models.AnalyticsFilters) ([]models.UserSessionsRow, error)
	UserQueries(ctx context.Context, f *models.AnalyticsFilters) ([]models.UserQueryRow, error)
	TimePatterns(ctx context.Context, f *models.AnalyticsFilters) ([]models.TimePatternRow, error)
	ConversationLengths(ctx context.Context, f *models.AnalyticsFilters) ([]models.ConversationLengthRow, error)
	PlatformCounts(ctx context.Context, f *models.AnalyticsFilters) ([]models.PlatformRow, error)
	TableRowCounts(ctx context.Context) (map[string]int64, error)
}

type analyticsRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewAnalyticsRepository creates the sqlx-backed analytics repository.
func NewAnalyticsRepository(db *sqlx.DB, logger *zap.Logger) AnalyticsRepository {
	return &analyticsRepository{db: db, logger: logger}
}

func (r *analyticsRepository) SessionMetrics(ctx context.Context, f *models.AnalyticsFilters) (*models.SessionMetricsRow, error) {
	query, args, err := sessionMetricsQuery(f)
	if err != nil {
		return nil, err
	}

	var row models.SessionMetricsRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("session metrics query failed", zap.Error(err))
		return nil, fmt.Errorf("session metrics query: %w", err)
	}
	return &row, nil
}

func (r *analyticsRepository) DailyVolume(ctx context.Context, f *models.AnalyticsFilters) ([]models.DailyVolumeRow, error) {
	query, args, err := volumeTrendsQuery(f)
	if err != nil {
		return nil, err
	}

	var rows []models.DailyVolumeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("volume trends query failed", zap.Error(err))
		return nil, fmt.Errorf("volume trends query: %w", err)
	}
	return rows, nil
}

func (r *analyticsRepository) Engagement(ctx context.Context, f *models.AnalyticsFilters) (*models.EngagementRow, error) {
	query, args, err := userEngagementQuery(f)
	if err != nil {
		return nil, err
	}

	var row models.EngagementRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("user engagement query failed", zap.Error(err))
		return nil, fmt.Errorf("user engagement query: %w", err)
	}
	return &row, nil
}

func (r *analyticsRepository) UserSessionCounts(ctx context.Context, f *models.AnalyticsFilters) ([]models.UserSessionsRow, error) {
	query, args, err := userRetentionQuery(f)
	if err != nil {
		return nil, err
	}

	var rows []models.UserSessionsRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("user retention query failed", zap.Error(err))
		return nil, fmt.Errorf("user retention query: %w", err)
	}
	return rows, nil
}

func (r *analyticsRepository) CategoryCounts(ctx context.Context, f *models.AnalyticsFilters) ([]models.CategoryCountRow, error) {
	query, args, err := queryCategoriesQuery(f)
	if err != nil {
		return nil, err
	}

	var rows []models.CategoryCountRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("query categories query failed", zap.Error(err))
		return nil, fmt.Errorf("query categories query: %w", err)
	}
	return rows, nil
}

func (r *analyticsRepository) ReturningUsers(ctx context.Context, f *models.AnalyticsFilters) ([]models.ReturningUserRow, error) {
	query, args, err := returningUserBehaviorQuery(f)
	if err != nil {
		return nil, err
	}

	var rows []models.ReturningUserRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("returning user behavior query failed", zap.Error(err))
		return nil, fmt.Errorf("returning user behavior query: %w", err)
	}
	return rows, nil
}

func (r *analyticsRepository) SegmentationCounts(ctx context.Context, f *models.AnalyticsFilters) ([]models.UserSessionsRow, error) {
	query, args, err := userSegmentationQuery(f)
	if err != nil {
		return nil, err
	}

	var rows []models.UserSessionsRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("user segmentation query failed", zap.Error(err))
		return nil, fmt.Errorf("user segmentation query: %w", err)
	}
	return rows, nil
}

func (r *analyticsRepository) UserQueries(ctx context.Context, f *models.AnalyticsFilters) ([]models.UserQueryRow, error) {
	query, args, err := userQueriesQuery(f)
	if err != nil {
		return nil, err
	}

	var rows []models.UserQueryRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("user queries query failed", zap.Error(err))
		return nil, fmt.Errorf("user queries query: %w", err)
	}
	return rows, nil
}

func (r *analyticsRepository) TimePatterns(ctx context.Context, f *models.AnalyticsFilters) ([]models.TimePatternRow, error) {
	query, args, err := timePatternsQuery(f)
	if err != nil {
		return nil, err
	}

	var rows []models.TimePatternRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("time patterns query failed", zap.Error(err))
		return nil, fmt.Errorf("time patterns query: %w", err)
	}
	return rows, nil
}

func (r *analyticsRepository) ConversationLengths(ctx context.Context, f *models.AnalyticsFilters) ([]models.ConversationLengthRow, error) {
	query, args, err := conversationLengthQuery(f)
	if err != nil {
		return nil, err
	}

	var rows []models.ConversationLengthRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("conversation length query failed", zap.Error(err))
		return nil, fmt.Errorf("conversation length query: %w", err)
	}
	return rows, nil
}

func (r *analyticsRepository) PlatformCounts(ctx context.Context, f *models.AnalyticsFilters) ([]models.PlatformRow, error) {
	query, args, err := platformAnalyticsQuery(f)
	if err != nil {
		return nil, err
	}

	var rows []models.PlatformRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("platform analytics query failed", zap.Error(err))
		return nil, fmt.Errorf("platform analytics query: %w", err)
	}
	return rows, nil
}

// TableRowCounts probes both interaction-log tables for the health check.
func (r *analyticsRepository) TableRowCounts(ctx context.Context) (map[string]int64, error) {
	tables := []string{"interaction_log", "landscape_interaction_log"}
	counts := make(map[string]int64, len(tables))
	for _, table := range tables {
		var count int64
		if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+table); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts[table] = count
	}
	return counts, nil
}
