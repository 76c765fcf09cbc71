package db

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"callhelper/internal/models"
)

// LogInteraction appends an interaction to the log. ID and Timestamp are
// filled in when unset.
func (d *DB) LogInteraction(ctx context.Context, in *models.Interaction) error {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}

	_, err := d.Pool.Exec(ctx, `
		INSERT INTO interaction_logs (id, timestamp, interaction_type, user_type, query,
			success, response_time_ms, matched_case_id, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, in.ID, in.Timestamp, in.Type, in.UserType, in.Query,
		in.Success, in.ResponseTimeMS, in.MatchedCaseID, in.ErrorMessage)
	if err != nil {
		return fmt.Errorf("failed to log interaction: %w", err)
	}
	return nil
}

// GetDashboardStats summarises the interaction log. Day boundaries are UTC.
func (d *DB) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	today := dayStart(time.Now())
	weekAgo := today.AddDate(0, 0, -7)
	monthAgo := today.AddDate(0, 0, -30)

	var stats models.DashboardStats
	var successful int64
	err := d.Pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE timestamp >= $1),
			COUNT(*) FILTER (WHERE timestamp >= $2),
			COUNT(*) FILTER (WHERE timestamp >= $3),
			COUNT(*) FILTER (WHERE success),
			COALESCE(AVG(response_time_ms), 0)
		FROM interaction_logs
	`, today, weekAgo, monthAgo).Scan(
		&stats.TotalQueries,
		&stats.TodayQueries,
		&stats.WeekQueries,
		&stats.MonthQueries,
		&successful,
		&stats.AvgResponseTimeMS,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}

	stats.SuccessRate = successRate(successful, stats.TotalQueries)
	stats.AvgResponseTimeMS = round2(stats.AvgResponseTimeMS)

	rows, err := d.Pool.Query(ctx, `
		SELECT user_type, COUNT(*)
		FROM interaction_logs
		GROUP BY user_type
		ORDER BY COUNT(*) DESC, user_type
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load user type breakdown: %w", err)
	}
	defer rows.Close()

	stats.UserTypeBreakdown = []models.UserTypeCount{}
	for rows.Next() {
		var u models.UserTypeCount
		if err := rows.Scan(&u.UserType, &u.Count); err != nil {
			return nil, err
		}
		stats.UserTypeBreakdown = append(stats.UserTypeBreakdown, u)
	}

	return &stats, rows.Err()
}

// GetRecentQueries returns the newest interactions first.
func (d *DB) GetRecentQueries(ctx context.Context, limit int) ([]models.RecentQuery, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT timestamp, user_type, query, success, matched_case_id, response_time_ms
		FROM interaction_logs
		ORDER BY timestamp DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	queries := []models.RecentQuery{}
	for rows.Next() {
		var q models.RecentQuery
		if err := rows.Scan(&q.Timestamp, &q.UserType, &q.Query, &q.Success, &q.MatchedCaseID, &q.ResponseTimeMS); err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}

// GetPopularQueries returns the most frequently asked query texts.
func (d *DB) GetPopularQueries(ctx context.Context, limit int) ([]models.PopularQuery, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT query, COUNT(*)
		FROM interaction_logs
		GROUP BY query
		ORDER BY COUNT(*) DESC, query
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	popular := []models.PopularQuery{}
	for rows.Next() {
		var p models.PopularQuery
		if err := rows.Scan(&p.Query, &p.Count); err != nil {
			return nil, err
		}
		popular = append(popular, p)
	}
	return popular, rows.Err()
}

// GetHourlyActivity returns today's interaction counts for all 24 UTC hours.
func (d *DB) GetHourlyActivity(ctx context.Context) ([]models.HourlyActivity, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT EXTRACT(HOUR FROM timestamp AT TIME ZONE 'UTC')::int AS hour, COUNT(*)
		FROM interaction_logs
		WHERE timestamp >= $1
		GROUP BY hour
	`, dayStart(time.Now()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int64)
	for rows.Next() {
		var hour int
		var count int64
		if err := rows.Scan(&hour, &count); err != nil {
			return nil, err
		}
		counts[hour] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return fillHours(counts), nil
}

// GetDailyTrends returns per-day totals for the last days days, oldest first.
func (d *DB) GetDailyTrends(ctx context.Context, days int) ([]models.DailyTrend, error) {
	since := dayStart(time.Now()).AddDate(0, 0, -days)

	rows, err := d.Pool.Query(ctx, `
		SELECT to_char(timestamp AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
			COUNT(*),
			COUNT(*) FILTER (WHERE success)
		FROM interaction_logs
		WHERE timestamp >= $1
		GROUP BY day
		ORDER BY day
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trends := []models.DailyTrend{}
	for rows.Next() {
		var t models.DailyTrend
		if err := rows.Scan(&t.Date, &t.Total, &t.Successful); err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}
	return trends, rows.Err()
}

// GetInteractionCounts returns interaction totals by type and outcome for metrics export.
func (d *DB) GetInteractionCounts(ctx context.Context) ([]models.InteractionCount, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT interaction_type, success, COUNT(*)
		FROM interaction_logs
		GROUP BY interaction_type, success
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.InteractionCount
	for rows.Next() {
		var c models.InteractionCount
		var success bool
		if err := rows.Scan(&c.Type, &success, &c.Count); err != nil {
			return nil, err
		}
		c.Outcome = models.OutcomeFailure
		if success {
			c.Outcome = models.OutcomeSuccess
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// DeleteInteractionsBefore prunes log rows older than cutoff and returns how
// many were removed.
func (d *DB) DeleteInteractionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := d.Pool.Exec(ctx, `DELETE FROM interaction_logs WHERE timestamp < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// dayStart returns midnight UTC of t's UTC day.
func dayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fillHours(counts map[int]int64) []models.HourlyActivity {
	hours := make([]models.HourlyActivity, 24)
	for h := range hours {
		hours[h] = models.HourlyActivity{Hour: h, Count: counts[h]}
	}
	return hours
}

func successRate(successful, total int64) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(successful) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
