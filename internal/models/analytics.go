package models

// KPI response shapes. Field names match the JSON contract consumed by the
// analytics console. Every shape carries the echoed filters, and slices are
// always non-nil so an empty result serializes as [] rather than null.

// SessionMetricsResult is KPI #1.
type SessionMetricsResult struct {
	TotalSessions            int            `json:"total_sessions"`
	NegativeFeedbackSessions int            `json:"negative_feedback_sessions"`
	PositiveFeedbackSessions int            `json:"positive_feedback_sessions"`
	AvgResponseTime          float64        `json:"avg_response_time"`
	FiltersApplied           FiltersApplied `json:"filters_applied"`
}

// Cluster is one pain-point bucket in KPI #2.
type Cluster struct {
	ClusterID      int      `json:"cluster_id"`
	ClusterName    string   `json:"cluster_name"`
	Count          int      `json:"count"`
	Percentage     float64  `json:"percentage"`
	ExampleQueries []string `json:"example_queries"`
}

// PainPointClusteringResult is KPI #2.
type PainPointClusteringResult struct {
	TotalQueries   int            `json:"total_queries"`
	Clusters       []Cluster      `json:"clusters"`
	FiltersApplied FiltersApplied `json:"filters_applied"`
}

// DailyVolumePoint is one day in the volume trend series.
type DailyVolumePoint struct {
	Date         string `json:"date"`
	SessionCount int    `json:"session_count"`
}

// VolumeTrendsResult is KPI #3.
type VolumeTrendsResult struct {
	AvgSessionsPerDay float64            `json:"avg_sessions_per_day"`
	PeakDay           *string            `json:"peak_day"`
	PeakDaySessions   int                `json:"peak_day_sessions"`
	LowestDay         *string            `json:"lowest_day"`
	LowestDaySessions int                `json:"lowest_day_sessions"`
	TotalDays         int                `json:"total_days"`
	TotalSessions     int                `json:"total_sessions"`
	DailyData         []DailyVolumePoint `json:"daily_data"`
	FiltersApplied    FiltersApplied     `json:"filters_applied"`
}

// UserEngagementResult is KPI #4.
type UserEngagementResult struct {
	UniqueUsers             int            `json:"unique_users"`
	TotalConversations      int            `json:"total_conversations"`
	AvgConversationsPerUser float64        `json:"avg_conversations_per_user"`
	FiltersApplied          FiltersApplied `json:"filters_applied"`
}

// UserRetentionResult is KPI #5.
type UserRetentionResult struct {
	TotalUsers               int            `json:"total_users"`
	ReturningUsers           int            `json:"returning_users"`
	OneTimeUsers             int            `json:"one_time_users"`
	ReturningUsersPercentage float64        `json:"returning_users_percentage"`
	OneTimeUsersPercentage   float64        `json:"one_time_users_percentage"`
	FiltersApplied           FiltersApplied `json:"filters_applied"`
}

// CategoryBreakdown is one bucket in KPI #6.
type CategoryBreakdown struct {
	Category     string  `json:"category"`
	SessionCount int     `json:"session_count"`
	Percentage   float64 `json:"percentage"`
}

// QueryCategoriesResult is KPI #6.
type QueryCategoriesResult struct {
	TotalSessions  int                 `json:"total_sessions"`
	Categories     []CategoryBreakdown `json:"categories"`
	FiltersApplied FiltersApplied      `json:"filters_applied"`
}

// ReturningUserBehaviorResult is KPI #8.
type ReturningUserBehaviorResult struct {
	ReturningUsersCount       int            `json:"returning_users_count"`
	AvgSessionsPerReturning   float64        `json:"avg_sessions_per_returning_user"`
	MostActiveUserID          *string        `json:"most_active_user_id"`
	MostActiveUserSessions    int            `json:"most_active_user_sessions"`
	AvgDaysBetweenFirstLast   float64        `json:"avg_days_between_first_last"`
	LongestActiveUserSpanDays int            `json:"longest_active_user_span_days"`
	FiltersApplied            FiltersApplied `json:"filters_applied"`
}

// UserSegment is one activity bucket in KPI #9.
type UserSegment struct {
	SegmentName string  `json:"segment_name"`
	UserCount   int     `json:"user_count"`
	Percentage  float64 `json:"percentage"`
}

// UserSegmentationResult is KPI #9.
type UserSegmentationResult struct {
	TotalUsers     int            `json:"total_users"`
	Segments       []UserSegment  `json:"segments"`
	FiltersApplied FiltersApplied `json:"filters_applied"`
}

// HourBucket is one slot of the dense 24-hour histogram.
type HourBucket struct {
	Hour         int `json:"hour"`
	SessionCount int `json:"session_count"`
}

// DayBucket is one slot of the dense 7-day histogram.
type DayBucket struct {
	Day          string `json:"day"`
	DayNumber    int    `json:"day_number"`
	SessionCount int    `json:"session_count"`
}

// TimePatternsResult is KPI #10.
type TimePatternsResult struct {
	ByHour           []HourBucket   `json:"by_hour"`
	ByDay            []DayBucket    `json:"by_day"`
	PeakHour         *int           `json:"peak_hour"`
	PeakHourSessions int            `json:"peak_hour_sessions"`
	PeakDay          *string        `json:"peak_day"`
	PeakDaySessions  int            `json:"peak_day_sessions"`
	FiltersApplied   FiltersApplied `json:"filters_applied"`
}

// LengthBucket is one conversation-length bucket in KPI #11.
type LengthBucket struct {
	Category     string  `json:"category"`
	SessionCount int     `json:"session_count"`
	Percentage   float64 `json:"percentage"`
}

// ConversationLengthResult is KPI #11.
type ConversationLengthResult struct {
	TotalSessions          int            `json:"total_sessions"`
	AvgMessagesPerSession  float64        `json:"avg_messages_per_session"`
	Distribution           []LengthBucket `json:"distribution"`
	LongestSessionMessages int            `json:"longest_session_messages"`
	FiltersApplied         FiltersApplied `json:"filters_applied"`
}

// LanguageBreakdown is one language bucket in KPI #12.
type LanguageBreakdown struct {
	Language     string  `json:"language"`
	SessionCount int     `json:"session_count"`
	UserCount    int     `json:"user_count"`
	Percentage   float64 `json:"percentage"`
}

// InputTypeBreakdown is the voice-vs-text split in KPI #12.
type InputTypeBreakdown struct {
	InputType    string  `json:"input_type"`
	SessionCount int     `json:"session_count"`
	Percentage   float64 `json:"percentage"`
}

// PlatformBreakdown is the mobile-vs-web split in KPI #12.
type PlatformBreakdown struct {
	Platform     string  `json:"platform"`
	SessionCount int     `json:"session_count"`
	Percentage   float64 `json:"percentage"`
}

// PlatformAnalyticsResult is KPI #12.
type PlatformAnalyticsResult struct {
	ByLanguage     []LanguageBreakdown  `json:"by_language"`
	ByVoice        []InputTypeBreakdown `json:"by_voice"`
	ByMobile       []PlatformBreakdown  `json:"by_mobile"`
	FiltersApplied FiltersApplied       `json:"filters_applied"`
}

// SentimentBucket is one category of the sentiment distribution.
type SentimentBucket struct {
	Category        string   `json:"category"`
	Count           int      `json:"count"`
	Percentage      float64  `json:"percentage"`
	ExampleMessages []string `json:"example_messages"`
}

// ScoredMessage pairs a message with its compound sentiment score.
type ScoredMessage struct {
	Message string  `json:"message"`
	Score   float64 `json:"score"`
}

// SentimentAnalysisResult is KPI #13.
type SentimentAnalysisResult struct {
	TotalMessages         int               `json:"total_messages"`
	AvgSentimentScore     float64           `json:"avg_sentiment_score"`
	SentimentDistribution []SentimentBucket `json:"sentiment_distribution"`
	MostPositiveMessages  []ScoredMessage   `json:"most_positive_messages"`
	MostNegativeMessages  []ScoredMessage   `json:"most_negative_messages"`
	FiltersApplied        FiltersApplied    `json:"filters_applied"`
}
