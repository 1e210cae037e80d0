package repository

import (
	"fmt"
	"strings"

	"backend/internal/models"
)

// querySpec is the per-KPI projection/grouping/ordering specification
// appended around the shared filter clause.
type querySpec struct {
	Select     string
	ExtraWhere string
	GroupBy    string
	OrderBy    string
}

// buildWhere translates the filters into a conjunctive WHERE clause with
// positional bound parameters. Values are never interpolated into the
// query text.
func buildWhere(f *models.AnalyticsFilters) (string, []interface{}) {
	conditions := []string{"time_stamp >= $1", "time_stamp <= $2"}
	args := []interface{}{f.StartDate, f.EndDate}

	if f.Environment != "" {
		args = append(args, f.Environment)
		conditions = append(conditions, fmt.Sprintf("environment = $%d", len(args)))
	}

	if f.UserID != "" {
		args = append(args, f.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}

	switch f.UserType {
	case models.UserTypeInternal:
		conditions = append(conditions, "user_id IN (SELECT user_id FROM internal_users)")
	case models.UserTypeExternal:
		conditions = append(conditions, "user_id NOT IN (SELECT user_id FROM internal_users)")
	}

	return strings.Join(conditions, " AND "), args
}

// buildQuery assembles a complete query against the context-selected table.
func buildQuery(f *models.AnalyticsFilters, spec querySpec) (string, []interface{}, error) {
	table, err := f.TableName()
	if err != nil {
		return "", nil, err
	}

	where, args := buildWhere(f)
	if spec.ExtraWhere != "" {
		where = where + " AND " + spec.ExtraWhere
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s", spec.Select, table, where)
	if spec.GroupBy != "" {
		query += " GROUP BY " + spec.GroupBy
	}
	if spec.OrderBy != "" {
		query += " ORDER BY " + spec.OrderBy
	}

	return query, args, nil
}

// Per-KPI query specifications. ORDER BY clauses are pinned even where the
// aggregator does not require ordering, so peak/most-active tie-breaks are
// reproducible across runs.

func sessionMetricsQuery(f *models.AnalyticsFilters) (string, []interface{}, error) {
	return buildQuery(f, querySpec{
		Select: `COUNT(DISTINCT session_id) AS total_sessions,
		COUNT(DISTINCT CASE WHEN user_feedback = '-1' THEN session_id END) AS negative_feedback_sessions,
		COUNT(DISTINCT CASE WHEN user_feedback = '1' THEN session_id END) AS positive_feedback_sessions,
		AVG(response_time) AS avg_response_time`,
	})
}

func volumeTrendsQuery(f *models.AnalyticsFilters) (string, []interface{}, error) {
	return buildQuery(f, querySpec{
		Select:  "DATE(time_stamp) AS date, COUNT(DISTINCT session_id) AS session_count",
		GroupBy: "DATE(time_stamp)",
		OrderBy: "date",
	})
}

func userEngagementQuery(f *models.AnalyticsFilters) (string, []interface{}, error) {
	return buildQuery(f, querySpec{
		Select: "COUNT(DISTINCT user_id) AS unique_users, COUNT(DISTINCT session_id) AS total_conversations",
	})
}

func userRetentionQuery(f *models.AnalyticsFilters) (string, []interface{}, error) {
	return buildQuery(f, querySpec{
		Select:  "user_id, COUNT(DISTINCT session_id) AS session_count",
		GroupBy: "user_id",
		OrderBy: "user_id",
	})
}

func queryCategoriesQuery(f *models.AnalyticsFilters) (string, []interface{}, error) {
	return buildQuery(f, querySpec{
		Select:  "query_category, COUNT(DISTINCT session_id) AS session_count",
		GroupBy: "query_category",
		OrderBy: "session_count DESC, query_category",
	})
}

func returningUserBehaviorQuery(f *models.AnalyticsFilters) (string, []interface{}, error) {
	return buildQuery(f, querySpec{
		Select: `user_id,
		COUNT(DISTINCT session_id) AS session_count,
		MIN(DATE(time_stamp)) AS first_chat_date,
		MAX(DATE(time_stamp)) AS last_chat_date,
		MAX(DATE(time_stamp)) - MIN(DATE(time_stamp)) AS active_days`,
		ExtraWhere: "user_id IS NOT NULL",
		GroupBy:    "user_id",
		OrderBy:    "user_id",
	})
}

func userSegmentationQuery(f *models.AnalyticsFilters) (string, []interface{}, error) {
	return buildQuery(f, querySpec{
		Select:  "user_id, COUNT(DISTINCT session_id) AS session_count",
		GroupBy: "user_id",
		OrderBy: "user_id",
	})
}

func userQueriesQuery(f *models.AnalyticsFilters) (string, []interface{}, error) {
	return buildQuery(f, querySpec{
		Select:     "id, session_id, input AS user_query",
		ExtraWhere: "input IS NOT NULL AND input != ''",
		OrderBy:    "time_stamp, id",
	})
}

func timePatternsQuery(f *models.AnalyticsFilters) (string, []interface{}, error) {
	return buildQuery(f, querySpec{
		Select: `EXTRACT(HOUR FROM time_stamp)::int AS hour_of_day,
		EXTRACT(DOW FROM time_stamp)::int AS day_of_week,
		COUNT(DISTINCT session_id) AS session_count`,
		GroupBy: "EXTRACT(HOUR FROM time_stamp), EXTRACT(DOW FROM time_stamp)",
		OrderBy: "hour_of_day, day_of_week",
	})
}

func conversationLengthQuery(f *models.AnalyticsFilters) (string, []interface{}, error) {
	return buildQuery(f, querySpec{
		Select:  "session_id, COUNT(*) AS message_count",
		GroupBy: "session_id",
		OrderBy: "session_id",
	})
}

func platformAnalyticsQuery(f *models.AnalyticsFilters) (string, []interface{}, error) {
	return buildQuery(f, querySpec{
		Select: `chat_language, is_voice_input, is_mobile_app,
		COUNT(DISTINCT session_id) AS session_count,
		COUNT(DISTINCT user_id) AS user_count`,
		GroupBy: "chat_language, is_voice_input, is_mobile_app",
		OrderBy: "chat_language, is_voice_input, is_mobile_app",
	})
}
