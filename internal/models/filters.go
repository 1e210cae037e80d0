package models

import (
	"time"
)

// Product contexts routing analytics queries to one of the two
// parallel interaction logs.
const (
	ContextPool      = "pool"
	ContextLandscape = "landscape"
)

// User type filter values.
const (
	UserTypeAll      = "all"
	UserTypeInternal = "internal"
	UserTypeExternal = "external"
)

var contextTables = map[string]string{
	ContextPool:      "interaction_log",
	ContextLandscape: "landscape_interaction_log",
}

// AnalyticsFilters is the canonical filter model for all analytics queries.
// Filters are applied at the SQL level, never post-filtered in Go.
type AnalyticsFilters struct {
	StartDate      time.Time
	EndDate        time.Time
	ProductContext string
	Environment    string
	UserID         string
	UserType       string // "all", "internal" or "external"
}

// Validate checks that the filter fields are inside their allowed domains.
// An inverted date range is rejected here rather than silently producing an
// empty result set.
func (f *AnalyticsFilters) Validate() error {
	if f.StartDate.IsZero() || f.EndDate.IsZero() {
		return &ValidationError{Field: "start_date", Message: "start_date and end_date are required"}
	}
	if f.EndDate.Before(f.StartDate) {
		return &ValidationError{Field: "start_date", Message: "start_date must not be after end_date"}
	}
	if _, ok := contextTables[f.ProductContext]; !ok {
		return &ValidationError{Field: "product_context", Message: "product_context must be 'pool' or 'landscape'"}
	}
	switch f.UserType {
	case UserTypeAll, UserTypeInternal, UserTypeExternal:
	default:
		return &ValidationError{Field: "user_type", Message: "user_type must be 'all', 'internal' or 'external'"}
	}
	return nil
}

// TableName resolves the product context to the physical table name.
func (f *AnalyticsFilters) TableName() (string, error) {
	table, ok := contextTables[f.ProductContext]
	if !ok {
		return "", &ConfigurationError{Message: "invalid product_context: " + f.ProductContext}
	}
	return table, nil
}

// FiltersApplied echoes the filter values on every KPI response so a
// consumer can correlate results back to the request.
type FiltersApplied struct {
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	ProductContext string  `json:"product_context"`
	Environment    *string `json:"environment"`
	UserID         *string `json:"user_id"`
}

// Applied builds the echo block for a KPI response.
func (f *AnalyticsFilters) Applied() FiltersApplied {
	applied := FiltersApplied{
		StartDate:      f.StartDate.Format(time.RFC3339),
		EndDate:        f.EndDate.Format(time.RFC3339),
		ProductContext: f.ProductContext,
	}
	if f.Environment != "" {
		env := f.Environment
		applied.Environment = &env
	}
	if f.UserID != "" {
		uid := f.UserID
		applied.UserID = &uid
	}
	return applied
}
