package models

import (
	"database/sql"
	"time"
)

// Typed row records, one shape per KPI query. The source tables carry
// nullable columns, so fields that can come back NULL use sql.Null types.

// SessionMetricsRow is the single aggregate row behind KPI #1.
type SessionMetricsRow struct {
	TotalSessions            int             `db:"total_sessions"`
	NegativeFeedbackSessions int             `db:"negative_feedback_sessions"`
	PositiveFeedbackSessions int             `db:"positive_feedback_sessions"`
	AvgResponseTime          sql.NullFloat64 `db:"avg_response_time"`
}

// DailyVolumeRow is one calendar day of session counts (KPI #3).
type DailyVolumeRow struct {
	Date         time.Time `db:"date"`
	SessionCount int       `db:"session_count"`
}

// EngagementRow is the single aggregate row behind KPI #4.
type EngagementRow struct {
	UniqueUsers        int `db:"unique_users"`
	TotalConversations int `db:"total_conversations"`
}

// UserSessionsRow is one user with its distinct session count
// (KPIs #5 and #9).
type UserSessionsRow struct {
	UserID       string `db:"user_id"`
	SessionCount int    `db:"session_count"`
}

// CategoryCountRow is one query category with its session count (KPI #6).
type CategoryCountRow struct {
	Category     sql.NullString `db:"query_category"`
	SessionCount int            `db:"session_count"`
}

// ReturningUserRow carries per-user session counts and activity span
// (KPI #8).
type ReturningUserRow struct {
	UserID        string    `db:"user_id"`
	SessionCount  int       `db:"session_count"`
	FirstChatDate time.Time `db:"first_chat_date"`
	LastChatDate  time.Time `db:"last_chat_date"`
	ActiveDays    int       `db:"active_days"`
}

// UserQueryRow is one free-text user input (KPIs #2 and #13).
type UserQueryRow struct {
	ID        int64  `db:"id"`
	SessionID string `db:"session_id"`
	UserQuery string `db:"user_query"`
}

// TimePatternRow is an (hour-of-day, day-of-week, count) triple (KPI #10).
type TimePatternRow struct {
	HourOfDay    int `db:"hour_of_day"`
	DayOfWeek    int `db:"day_of_week"`
	SessionCount int `db:"session_count"`
}

// ConversationLengthRow is one session with its message count (KPI #11).
type ConversationLengthRow struct {
	SessionID    string `db:"session_id"`
	MessageCount int    `db:"message_count"`
}

// PlatformRow is one (language, voice, mobile) combination with its
// session and user counts (KPI #12).
type PlatformRow struct {
	ChatLanguage sql.NullString `db:"chat_language"`
	IsVoiceInput sql.NullBool   `db:"is_voice_input"`
	IsMobileApp  sql.NullBool   `db:"is_mobile_app"`
	SessionCount int            `db:"session_count"`
	UserCount    int            `db:"user_count"`
}
