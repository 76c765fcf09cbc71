package server

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"callhelper/internal/chat"
	"callhelper/internal/handlers"
	"callhelper/internal/handlers/api"
	"callhelper/internal/matching"
	"callhelper/internal/middleware"
)

// Store is the repository surface the routes need. *db.DB satisfies it.
type Store interface {
	handlers.Pinger
	handlers.CaseStore
	api.AnalyticsStore
}

// Deps are the services wired into the routes.
type Deps struct {
	Store Store
	Gate  *matching.Gate
	Chat  *chat.Service
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, deps Deps) error {
	authMiddleware := middleware.NewAuthMiddleware(s.Cfg)

	probeHandler := handlers.NewProbeHandler(deps.Store)
	searchHandler := handlers.NewSearchHandler(deps.Gate, s.Cfg)
	adminHandler := handlers.NewAdminHandler(deps.Store, s.Cfg)
	resolveHandler := api.NewResolveHandler(deps.Gate)
	chatHandler := api.NewChatHandler(deps.Chat)
	analyticsHandler := api.NewAnalyticsHandler(deps.Store)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Auth routes - admin pages are open when OIDC is not configured
	if s.Cfg.IsAuthEnabled() {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg)
		if err != nil {
			return err
		}
		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
		s.App.Get("/auth/logout", authHandler.Logout)
	} else {
		slog.Warn("OIDC_ISSUER not set, admin pages are not protected")
	}

	// Agent-facing pages
	s.App.Get("/", authMiddleware.LoadAdmin, searchHandler.Index)
	s.App.Post("/search", searchHandler.Search)

	// Case administration
	admin := s.App.Group("/admin", authMiddleware.RequireAdmin)
	admin.Get("/", adminHandler.List)
	admin.Get("/add", adminHandler.New)
	admin.Post("/add", adminHandler.Create)
	admin.Get("/edit/:id", adminHandler.Edit)
	admin.Post("/edit/:id", adminHandler.Update)
	admin.Post("/delete/:id", adminHandler.Delete)

	// JSON API
	apiGroup := s.App.Group("/api")
	apiGroup.Post("/resolve", resolveHandler.Resolve)
	apiGroup.Post("/chat", chatHandler.Chat)

	analytics := apiGroup.Group("/analytics", authMiddleware.RequireAdmin)
	analytics.Get("/stats", analyticsHandler.Stats)
	analytics.Get("/recent", analyticsHandler.Recent)
	analytics.Get("/popular", analyticsHandler.Popular)
	analytics.Get("/hourly", analyticsHandler.Hourly)
	analytics.Get("/trends", analyticsHandler.Trends)

	return nil
}
