package api

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"callhelper/internal/models"
)

const (
	defaultFeedLimit = 10
	maxFeedLimit     = 100
	defaultTrendDays = 7
	maxTrendDays     = 90
)

// AnalyticsStore is the interaction log queried by the analytics endpoints.
type AnalyticsStore interface {
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
	GetRecentQueries(ctx context.Context, limit int) ([]models.RecentQuery, error)
	GetPopularQueries(ctx context.Context, limit int) ([]models.PopularQuery, error)
	GetHourlyActivity(ctx context.Context) ([]models.HourlyActivity, error)
	GetDailyTrends(ctx context.Context, days int) ([]models.DailyTrend, error)
}

// AnalyticsHandler serves interaction statistics as JSON.
type AnalyticsHandler struct {
	store AnalyticsStore
}

// NewAnalyticsHandler creates a new API analytics handler.
func NewAnalyticsHandler(store AnalyticsStore) *AnalyticsHandler {
	return &AnalyticsHandler{store: store}
}

// Stats handles GET /api/analytics/stats.
func (h *AnalyticsHandler) Stats(c fiber.Ctx) error {
	stats, err := h.store.GetDashboardStats(c.Context())
	if err != nil {
		return analyticsError(c, "stats", err)
	}
	return jsonSuccess(c, stats)
}

// Recent handles GET /api/analytics/recent?limit=N.
func (h *AnalyticsHandler) Recent(c fiber.Ctx) error {
	rows, err := h.store.GetRecentQueries(c.Context(), queryInt(c, "limit", defaultFeedLimit, maxFeedLimit))
	if err != nil {
		return analyticsError(c, "recent", err)
	}
	return jsonSuccess(c, rows)
}

// Popular handles GET /api/analytics/popular?limit=N.
func (h *AnalyticsHandler) Popular(c fiber.Ctx) error {
	rows, err := h.store.GetPopularQueries(c.Context(), queryInt(c, "limit", defaultFeedLimit, maxFeedLimit))
	if err != nil {
		return analyticsError(c, "popular", err)
	}
	return jsonSuccess(c, rows)
}

// Hourly handles GET /api/analytics/hourly.
func (h *AnalyticsHandler) Hourly(c fiber.Ctx) error {
	rows, err := h.store.GetHourlyActivity(c.Context())
	if err != nil {
		return analyticsError(c, "hourly", err)
	}
	return jsonSuccess(c, rows)
}

// Trends handles GET /api/analytics/trends?days=N.
func (h *AnalyticsHandler) Trends(c fiber.Ctx) error {
	rows, err := h.store.GetDailyTrends(c.Context(), queryInt(c, "days", defaultTrendDays, maxTrendDays))
	if err != nil {
		return analyticsError(c, "trends", err)
	}
	return jsonSuccess(c, rows)
}

func analyticsError(c fiber.Ctx, report string, err error) error {
	slog.Error("analytics query failed", "report", report, "error", err)
	return jsonError(c, fiber.StatusInternalServerError, "failed to load analytics")
}

// queryInt parses a positive integer query parameter, clamped to ceiling.
func queryInt(c fiber.Ctx, key string, fallback, ceiling int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return min(n, ceiling)
}
