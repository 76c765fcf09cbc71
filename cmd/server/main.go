package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"callhelper/internal/bootstrap"
	"callhelper/internal/chat"
	"callhelper/internal/config"
	"callhelper/internal/db"
	"callhelper/internal/email"
	"callhelper/internal/jobs"
	"callhelper/internal/logging"
	"callhelper/internal/metrics"
	"callhelper/internal/server"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg := config.Load()
	slog.SetDefault(logging.New("callhelper", cfg.LogLevel))

	if err := run(cfg); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		return err
	}

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return err
	}
	slog.Info("migrations completed")

	if cfg.SeedDevCases {
		n, err := database.SeedDevCases(ctx, false)
		if err != nil {
			return err
		}
		slog.Info("seeded development cases", "inserted", n)
	}

	metrics.Init(database)

	gate, err := bootstrap.BuildGate(bootstrap.GuardSource(cfg, database), yamlCfg)
	if err != nil {
		return err
	}

	var escalator chat.Escalator
	if notifier := email.NewNotifier(cfg); notifier.CanEscalate() {
		escalator = notifier
		slog.Info("chat escalation by email enabled", "to", cfg.EscalationEmail)
	}

	chatStorage, sessionStorage := bootstrap.Storage(cfg)
	chatService := bootstrap.NewChatService(cfg, yamlCfg, gate, chatStorage, escalator)

	srv := server.New(cfg, server.Options{Sessions: sessionStorage})
	if err := srv.RegisterRoutes(ctx, server.Deps{Store: database, Gate: gate, Chat: chatService}); err != nil {
		return err
	}

	if pruner := jobs.NewRetentionPruner(database, cfg.RetentionInterval, cfg.AnalyticsRetentionDays); pruner != nil {
		go pruner.Start(ctx)
	}

	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()
	slog.Info("server started", "addr", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	cancel()
	if err := srv.Shutdown(); err != nil {
		return err
	}
	metrics.Wait()
	slog.Info("server exited")
	return nil
}
