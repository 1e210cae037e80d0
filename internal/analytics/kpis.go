package analytics

import (
	"context"
	"sort"

	"backend/internal/models"
)

// sortLanguagesBySessions orders language buckets descending by session
// count; the stable sort keeps first-encountered order for ties.
func sortLanguagesBySessions(langs []models.LanguageBreakdown) {
	sort.SliceStable(langs, func(i, j int) bool {
		return langs[i].SessionCount > langs[j].SessionCount
	})
}

// dayNames indexes Postgres DOW values (0=Sunday).
var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

const dateLayout = "2006-01-02"

// SessionMetrics is KPI #1: distinct session counts, feedback counts and
// average response time over the filtered range.
func (s *analyticsService) SessionMetrics(ctx context.Context, f *models.AnalyticsFilters) (*models.SessionMetricsResult, error) {
	row, err := s.repo.SessionMetrics(ctx, f)
	if err != nil {
		return nil, err
	}

	result := &models.SessionMetricsResult{FiltersApplied: f.Applied()}
	if row == nil {
		return result, nil
	}

	result.TotalSessions = row.TotalSessions
	result.NegativeFeedbackSessions = row.NegativeFeedbackSessions
	result.PositiveFeedbackSessions = row.PositiveFeedbackSessions
	if row.AvgResponseTime.Valid {
		result.AvgResponseTime = round2(row.AvgResponseTime.Float64)
	}
	return result, nil
}

// VolumeTrends is KPI #3: per-day session counts with mean, peak and
// lowest days. Ties are broken by the first day encountered in
// ascending-date order.
func (s *analyticsService) VolumeTrends(ctx context.Context, f *models.AnalyticsFilters) (*models.VolumeTrendsResult, error) {
	rows, err := s.repo.DailyVolume(ctx, f)
	if err != nil {
		return nil, err
	}

	result := &models.VolumeTrendsResult{
		DailyData:      []models.DailyVolumePoint{},
		FiltersApplied: f.Applied(),
	}
	if len(rows) == 0 {
		return result, nil
	}

	totalSessions := 0
	peak, lowest := 0, 0
	for i, row := range rows {
		totalSessions += row.SessionCount
		if row.SessionCount > rows[peak].SessionCount {
			peak = i
		}
		if row.SessionCount < rows[lowest].SessionCount {
			lowest = i
		}
		result.DailyData = append(result.DailyData, models.DailyVolumePoint{
			Date:         row.Date.Format(dateLayout),
			SessionCount: row.SessionCount,
		})
	}

	peakDay := rows[peak].Date.Format(dateLayout)
	lowestDay := rows[lowest].Date.Format(dateLayout)

	result.AvgSessionsPerDay = round2(float64(totalSessions) / float64(len(rows)))
	result.PeakDay = &peakDay
	result.PeakDaySessions = rows[peak].SessionCount
	result.LowestDay = &lowestDay
	result.LowestDaySessions = rows[lowest].SessionCount
	result.TotalDays = len(rows)
	result.TotalSessions = totalSessions
	return result, nil
}

// UserEngagement is KPI #4: distinct users, distinct sessions and the
// derived sessions-per-user mean.
func (s *analyticsService) UserEngagement(ctx context.Context, f *models.AnalyticsFilters) (*models.UserEngagementResult, error) {
	row, err := s.repo.Engagement(ctx, f)
	if err != nil {
		return nil, err
	}

	result := &models.UserEngagementResult{FiltersApplied: f.Applied()}
	if row == nil {
		return result, nil
	}

	result.UniqueUsers = row.UniqueUsers
	result.TotalConversations = row.TotalConversations
	if row.UniqueUsers > 0 {
		result.AvgConversationsPerUser = round2(float64(row.TotalConversations) / float64(row.UniqueUsers))
	}
	return result, nil
}

// UserRetention is KPI #5: one-time (1 session) vs returning (2+ sessions)
// user split.
func (s *analyticsService) UserRetention(ctx context.Context, f *models.AnalyticsFilters) (*models.UserRetentionResult, error) {
	rows, err := s.repo.UserSessionCounts(ctx, f)
	if err != nil {
		return nil, err
	}

	result := &models.UserRetentionResult{FiltersApplied: f.Applied()}
	if len(rows) == 0 {
		return result, nil
	}

	oneTime := 0
	for _, row := range rows {
		if row.SessionCount == 1 {
			oneTime++
		}
	}
	total := len(rows)
	returning := total - oneTime

	result.TotalUsers = total
	result.OneTimeUsers = oneTime
	result.ReturningUsers = returning
	result.OneTimeUsersPercentage = percentage(oneTime, total)
	result.ReturningUsersPercentage = percentage(returning, total)
	return result, nil
}

// QueryCategories is KPI #6: session counts per category label, with the
// null label normalized to "uncategorized".
func (s *analyticsService) QueryCategories(ctx context.Context, f *models.AnalyticsFilters) (*models.QueryCategoriesResult, error) {
	rows, err := s.repo.CategoryCounts(ctx, f)
	if err != nil {
		return nil, err
	}

	result := &models.QueryCategoriesResult{
		Categories:     []models.CategoryBreakdown{},
		FiltersApplied: f.Applied(),
	}
	if len(rows) == 0 {
		return result, nil
	}

	total := 0
	for _, row := range rows {
		total += row.SessionCount
	}

	for _, row := range rows {
		name := "uncategorized"
		if row.Category.Valid && row.Category.String != "" {
			name = row.Category.String
		}
		result.Categories = append(result.Categories, models.CategoryBreakdown{
			Category:     name,
			SessionCount: row.SessionCount,
			Percentage:   percentage(row.SessionCount, total),
		})
	}
	result.TotalSessions = total
	return result, nil
}

// ReturningUserBehavior is KPI #8: activity statistics over the cohort of
// users with 2+ sessions.
func (s *analyticsService) ReturningUserBehavior(ctx context.Context, f *models.AnalyticsFilters) (*models.ReturningUserBehaviorResult, error) {
	rows, err := s.repo.ReturningUsers(ctx, f)
	if err != nil {
		return nil, err
	}

	result := &models.ReturningUserBehaviorResult{FiltersApplied: f.Applied()}

	var returning []models.ReturningUserRow
	for _, row := range rows {
		if row.SessionCount >= 2 {
			returning = append(returning, row)
		}
	}
	if len(returning) == 0 {
		return result, nil
	}

	totalSessions, totalSpan := 0, 0
	mostActive, longestSpan := 0, 0
	for i, row := range returning {
		totalSessions += row.SessionCount
		totalSpan += row.ActiveDays
		if row.SessionCount > returning[mostActive].SessionCount {
			mostActive = i
		}
		if row.ActiveDays > returning[longestSpan].ActiveDays {
			longestSpan = i
		}
	}

	mostActiveID := returning[mostActive].UserID

	result.ReturningUsersCount = len(returning)
	result.AvgSessionsPerReturning = round2(float64(totalSessions) / float64(len(returning)))
	result.MostActiveUserID = &mostActiveID
	result.MostActiveUserSessions = returning[mostActive].SessionCount
	result.AvgDaysBetweenFirstLast = round2(float64(totalSpan) / float64(len(returning)))
	result.LongestActiveUserSpanDays = returning[longestSpan].ActiveDays
	return result, nil
}

// UserSegmentation is KPI #9: users bucketed by activity level. The three
// segments are always emitted in fixed order, empty or not.
func (s *analyticsService) UserSegmentation(ctx context.Context, f *models.AnalyticsFilters) (*models.UserSegmentationResult, error) {
	rows, err := s.repo.SegmentationCounts(ctx, f)
	if err != nil {
		return nil, err
	}

	result := &models.UserSegmentationResult{
		Segments:       []models.UserSegment{},
		FiltersApplied: f.Applied(),
	}
	if len(rows) == 0 {
		return result, nil
	}

	total := len(rows)
	low, medium, high := 0, 0, 0
	for _, row := range rows {
		switch {
		case row.SessionCount == 1:
			low++
		case row.SessionCount <= 5:
			medium++
		default:
			high++
		}
	}

	result.TotalUsers = total
	result.Segments = []models.UserSegment{
		{SegmentName: "Low Activity (1 chat)", UserCount: low, Percentage: percentage(low, total)},
		{SegmentName: "Medium Activity (2-5 chats)", UserCount: medium, Percentage: percentage(medium, total)},
		{SegmentName: "High Activity (6+ chats)", UserCount: high, Percentage: percentage(high, total)},
	}
	return result, nil
}

// TimePatterns is KPI #10: dense hour-of-day and day-of-week histograms
// with their peaks.
func (s *analyticsService) TimePatterns(ctx context.Context, f *models.AnalyticsFilters) (*models.TimePatternsResult, error) {
	rows, err := s.repo.TimePatterns(ctx, f)
	if err != nil {
		return nil, err
	}

	result := &models.TimePatternsResult{
		ByHour:         []models.HourBucket{},
		ByDay:          []models.DayBucket{},
		FiltersApplied: f.Applied(),
	}
	if len(rows) == 0 {
		return result, nil
	}

	var hourCounts [24]int
	var dayCounts [7]int
	for _, row := range rows {
		if row.HourOfDay >= 0 && row.HourOfDay < 24 {
			hourCounts[row.HourOfDay] += row.SessionCount
		}
		if row.DayOfWeek >= 0 && row.DayOfWeek < 7 {
			dayCounts[row.DayOfWeek] += row.SessionCount
		}
	}

	peakHour, peakDay := 0, 0
	for h := 0; h < 24; h++ {
		result.ByHour = append(result.ByHour, models.HourBucket{Hour: h, SessionCount: hourCounts[h]})
		if hourCounts[h] > hourCounts[peakHour] {
			peakHour = h
		}
	}
	for d := 0; d < 7; d++ {
		result.ByDay = append(result.ByDay, models.DayBucket{Day: dayNames[d], DayNumber: d, SessionCount: dayCounts[d]})
		if dayCounts[d] > dayCounts[peakDay] {
			peakDay = d
		}
	}

	peakDayName := dayNames[peakDay]
	result.PeakHour = &peakHour
	result.PeakHourSessions = hourCounts[peakHour]
	result.PeakDay = &peakDayName
	result.PeakDaySessions = dayCounts[peakDay]
	return result, nil
}

// ConversationLength is KPI #11: messages-per-session statistics with
// fixed length buckets.
func (s *analyticsService) ConversationLength(ctx context.Context, f *models.AnalyticsFilters) (*models.ConversationLengthResult, error) {
	rows, err := s.repo.ConversationLengths(ctx, f)
	if err != nil {
		return nil, err
	}

	result := &models.ConversationLengthResult{
		Distribution:   []models.LengthBucket{},
		FiltersApplied: f.Applied(),
	}
	if len(rows) == 0 {
		return result, nil
	}

	total := len(rows)
	totalMessages, longest := 0, 0
	short, medium, long := 0, 0, 0
	for _, row := range rows {
		totalMessages += row.MessageCount
		if row.MessageCount > longest {
			longest = row.MessageCount
		}
		switch {
		case row.MessageCount <= 2:
			short++
		case row.MessageCount <= 5:
			medium++
		default:
			long++
		}
	}

	result.TotalSessions = total
	result.AvgMessagesPerSession = round2(float64(totalMessages) / float64(total))
	result.LongestSessionMessages = longest
	result.Distribution = []models.LengthBucket{
		{Category: "Short (1-2 messages)", SessionCount: short, Percentage: percentage(short, total)},
		{Category: "Medium (3-5 messages)", SessionCount: medium, Percentage: percentage(medium, total)},
		{Category: "Long (6+ messages)", SessionCount: long, Percentage: percentage(long, total)},
	}
	return result, nil
}

// PlatformAnalytics is KPI #12: language, voice-vs-text and mobile-vs-web
// breakdowns, each against its own total.
func (s *analyticsService) PlatformAnalytics(ctx context.Context, f *models.AnalyticsFilters) (*models.PlatformAnalyticsResult, error) {
	rows, err := s.repo.PlatformCounts(ctx, f)
	if err != nil {
		return nil, err
	}

	result := &models.PlatformAnalyticsResult{
		ByLanguage:     []models.LanguageBreakdown{},
		ByVoice:        []models.InputTypeBreakdown{},
		ByMobile:       []models.PlatformBreakdown{},
		FiltersApplied: f.Applied(),
	}
	if len(rows) == 0 {
		return result, nil
	}

	type langTotals struct {
		sessions int
		users    int
	}
	langOrder := []string{}
	langAggregated := map[string]*langTotals{}
	textSessions, voiceSessions := 0, 0
	webSessions, mobileSessions := 0, 0

	for _, row := range rows {
		lang := "unknown"
		if row.ChatLanguage.Valid && row.ChatLanguage.String != "" {
			lang = row.ChatLanguage.String
		}
		if _, ok := langAggregated[lang]; !ok {
			langAggregated[lang] = &langTotals{}
			langOrder = append(langOrder, lang)
		}
		langAggregated[lang].sessions += row.SessionCount
		langAggregated[lang].users += row.UserCount

		if row.IsVoiceInput.Valid && row.IsVoiceInput.Bool {
			voiceSessions += row.SessionCount
		} else {
			textSessions += row.SessionCount
		}
		if row.IsMobileApp.Valid && row.IsMobileApp.Bool {
			mobileSessions += row.SessionCount
		} else {
			webSessions += row.SessionCount
		}
	}

	totalLangSessions := 0
	for _, totals := range langAggregated {
		totalLangSessions += totals.sessions
	}
	for _, lang := range langOrder {
		totals := langAggregated[lang]
		result.ByLanguage = append(result.ByLanguage, models.LanguageBreakdown{
			Language:     lang,
			SessionCount: totals.sessions,
			UserCount:    totals.users,
			Percentage:   percentage(totals.sessions, totalLangSessions),
		})
	}
	// Descending by session count; first-encountered order breaks ties.
	sortLanguagesBySessions(result.ByLanguage)

	totalVoice := textSessions + voiceSessions
	result.ByVoice = []models.InputTypeBreakdown{
		{InputType: "Text", SessionCount: textSessions, Percentage: percentage(textSessions, totalVoice)},
		{InputType: "Voice", SessionCount: voiceSessions, Percentage: percentage(voiceSessions, totalVoice)},
	}

	totalMobile := webSessions + mobileSessions
	result.ByMobile = []models.PlatformBreakdown{
		{Platform: "Web", SessionCount: webSessions, Percentage: percentage(webSessions, totalMobile)},
		{Platform: "Mobile", SessionCount: mobileSessions, Percentage: percentage(mobileSessions, totalMobile)},
	}
	return result, nil
}
