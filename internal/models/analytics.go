package models

import "time"

// DashboardStats summarises interaction volume and quality.
type DashboardStats struct {
	TotalQueries      int64           `json:"total_queries"`
	TodayQueries      int64           `json:"today_queries"`
	WeekQueries       int64           `json:"week_queries"`
	MonthQueries      int64           `json:"month_queries"`
	SuccessRate       float64         `json:"success_rate"`
	AvgResponseTimeMS float64         `json:"avg_response_time_ms"`
	UserTypeBreakdown []UserTypeCount `json:"user_type_breakdown"`
}

// UserTypeCount is the number of interactions for one caller classification.
type UserTypeCount struct {
	UserType string `json:"user_type"`
	Count    int64  `json:"count"`
}

// RecentQuery is a single row of the recent-queries feed.
type RecentQuery struct {
	Timestamp      time.Time `json:"timestamp"`
	UserType       string    `json:"user_type"`
	Query          string    `json:"query"`
	Success        bool      `json:"success"`
	MatchedCaseID  *string   `json:"matched_case_id"`
	ResponseTimeMS *float64  `json:"response_time_ms"`
}

// PopularQuery is a query text and how often it was asked.
type PopularQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// HourlyActivity is the interaction count for one hour of today (UTC).
type HourlyActivity struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

// DailyTrend is the per-day total and successful interaction count.
type DailyTrend struct {
	Date       string `json:"date"`
	Total      int64  `json:"total"`
	Successful int64  `json:"successful"`
}
